package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound is returned when an order or wallet does not exist or does not belong to the caller.
	ErrNotFound = errors.New("not found")
	// ErrInvalidState is returned when an order is not in a status that allows the operation.
	ErrInvalidState = errors.New("invalid state")
	// ErrWalletUnavailable is returned when the wallet is inactive or suspended.
	ErrWalletUnavailable = errors.New("wallet unavailable")
	// ErrInsufficientFunds is returned when the balance is lower than the required amount.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrTransient is returned on lock contention, conflicts or timeouts. Safe to retry by the caller.
	ErrTransient = errors.New("transient failure, retry later")
	// ErrInvalidInput is returned when request values fail validation.
	ErrInvalidInput = errors.New("invalid input")
)

// InvalidStateError carries the current order status.
type InvalidStateError struct {
	Status string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("order is %s", e.Status)
}

func (e *InvalidStateError) Is(target error) bool {
	return target == ErrInvalidState
}

// InsufficientFundsError carries the current balance and the required amount.
type InsufficientFundsError struct {
	Balance  decimal.Decimal
	Required decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient balance: have %s, need %s", e.Balance, e.Required)
}

func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}

// postgres error codes treated as transient
var transientCodes = map[string]struct{}{
	"40001": {}, // serialization_failure
	"40P01": {}, // deadlock_detected
	"55P03": {}, // lock_not_available
	"57014": {}, // query_canceled
}

const (
	uniqueViolation   = "23505"
	numericOutOfRange = "22003"
)

// maxAmount is the exclusive upper bound of NUMERIC(20,2) money columns.
var maxAmount = decimal.New(1, 18)

// isTransient reports whether err comes from contention or a deadline.
func isTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		_, ok := transientCodes[pgErr.Code]
		return ok
	}
	return false
}

// isUniqueViolation reports whether err is a unique constraint violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// classify maps infrastructure errors to the service taxonomy, leaving business errors untouched.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidState) || errors.Is(err, ErrWalletUnavailable) ||
		errors.Is(err, ErrInsufficientFunds) || errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrTransient) {
		return err
	}
	if isTransient(err) {
		return fmt.Errorf("%w: %w", ErrTransient, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == numericOutOfRange {
		return fmt.Errorf("%w: amount out of range", ErrInvalidInput)
	}
	return err
}

// validAmount reports whether amount is positive, fits the money columns and
// has at most two decimal places.
func validAmount(amount decimal.Decimal) bool {
	return amount.IsPositive() && amount.LessThan(maxAmount) && amount.Equal(amount.Round(2))
}
