package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-wallet-payments/internal/logger"
	"github.com/sbilibin2017/gw-wallet-payments/internal/metrics"
	"github.com/sbilibin2017/gw-wallet-payments/internal/models"
)

// PaymentService pays orders from wallets and refunds paid orders.
type PaymentService struct {
	tx          TxManager
	orderReader OrderReader
	orderWriter OrderWriter
	walletR     WalletReader
	walletW     WalletWriter
	ledgerW     TransactionWriter
	ledgerR     TransactionReader
	notify      notifier
}

// NewPaymentService creates a new PaymentService. cache and publisher may be nil.
func NewPaymentService(
	tx TxManager,
	orderReader OrderReader,
	orderWriter OrderWriter,
	walletR WalletReader,
	walletW WalletWriter,
	ledgerW TransactionWriter,
	ledgerR TransactionReader,
	cache WalletCache,
	publisher EventPublisher,
) *PaymentService {
	return &PaymentService{
		tx:          tx,
		orderReader: orderReader,
		orderWriter: orderWriter,
		walletR:     walletR,
		walletW:     walletW,
		ledgerW:     ledgerW,
		ledgerR:     ledgerR,
		notify:      notifier{cache: cache, publisher: publisher},
	}
}

// PayOrderWithWallet debits the order total from the caller's wallet, records a
// payment entry and confirms the order, all in one transaction.
//
// Preconditions are checked in this order: the order exists and belongs to
// userID (ErrNotFound), the order is pending (InvalidStateError), the wallet
// exists and is active (ErrWalletUnavailable), the balance covers the total
// (InsufficientFundsError). Lock contention and timeouts yield ErrTransient.
func (s *PaymentService) PayOrderWithWallet(ctx context.Context, orderID, userID uuid.UUID) (*models.WalletDB, *models.OrderDB, error) {
	started := time.Now()

	var (
		wallet *models.WalletDB
		order  *models.OrderDB
		entry  *models.TransactionDB
	)
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		// order first, then wallet
		o, err := s.orderReader.GetByIDForUpdate(ctx, orderID)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if o.UserID != userID {
			return ErrNotFound
		}
		if o.Status != models.OrderStatusPending {
			return &InvalidStateError{Status: o.Status}
		}

		w, err := s.walletR.GetByUserIDForUpdate(ctx, userID)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrWalletUnavailable
		}
		if err != nil {
			return err
		}
		if !w.IsActive() {
			return ErrWalletUnavailable
		}
		if w.Balance.LessThan(o.TotalAmount) {
			return &InsufficientFundsError{Balance: w.Balance, Required: o.TotalAmount}
		}

		change, err := s.walletW.Debit(ctx, w.WalletID, o.TotalAmount)
		if errors.Is(err, sql.ErrNoRows) {
			return &InsufficientFundsError{Balance: w.Balance, Required: o.TotalAmount}
		}
		if err != nil {
			return err
		}

		e := &models.TransactionDB{
			TransactionID: uuid.New(),
			WalletID:      w.WalletID,
			Type:          models.TransactionTypePayment,
			Amount:        o.TotalAmount,
			Description:   fmt.Sprintf("Payment for order %s", o.OrderID),
			OrderID:       &o.OrderID,
			Status:        models.TransactionStatusCompleted,
			BalanceBefore: change.Before,
			BalanceAfter:  change.After,
			CreatedBy:     &userID,
		}
		if err := s.ledgerW.Insert(ctx, e); err != nil {
			if isUniqueViolation(err) {
				return &InvalidStateError{Status: models.OrderStatusConfirmed}
			}
			return err
		}

		ok, err := s.orderWriter.CompareAndSetStatus(ctx, o.OrderID, models.OrderStatusPending, models.OrderStatusConfirmed)
		if err != nil {
			return err
		}
		if !ok {
			return s.currentState(ctx, o.OrderID)
		}

		w.Balance = change.After
		o.Status = models.OrderStatusConfirmed
		wallet, order, entry = w, o, e
		return nil
	})
	if err != nil {
		err = classify(err)
		metrics.ObservePayment(paymentResult(err), started)
		logger.Log.Warnw("order payment failed", "orderID", orderID, "userID", userID, "error", err)
		return nil, nil, err
	}

	metrics.ObservePayment(metrics.ResultSuccess, started)
	logger.Log.Infow("order paid with wallet", "orderID", orderID, "userID", userID,
		"amount", entry.Amount, "balance_before", entry.BalanceBefore, "balance_after", entry.BalanceAfter)
	s.notify.committed(ctx, userID, entry)
	return wallet, order, nil
}

// RefundOrder credits the payment of a confirmed order back to the owner's
// wallet, records a refund entry and cancels the order in one transaction.
func (s *PaymentService) RefundOrder(ctx context.Context, adminID, orderID uuid.UUID, reason string) (*models.WalletDB, *models.OrderDB, error) {
	reason = strings.TrimSpace(reason)

	var (
		wallet *models.WalletDB
		order  *models.OrderDB
		entry  *models.TransactionDB
	)
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		o, err := s.orderReader.GetByIDForUpdate(ctx, orderID)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if o.Status != models.OrderStatusConfirmed {
			return &InvalidStateError{Status: o.Status}
		}

		payment, err := s.ledgerR.GetCompletedByOrder(ctx, o.OrderID, models.TransactionTypePayment)
		if errors.Is(err, sql.ErrNoRows) {
			// confirmed without a wallet payment, nothing to refund
			return &InvalidStateError{Status: o.Status}
		}
		if err != nil {
			return err
		}

		w, err := s.walletR.GetByUserIDForUpdate(ctx, o.UserID)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		change, err := s.walletW.Credit(ctx, w.WalletID, payment.Amount)
		if err != nil {
			return err
		}

		description := fmt.Sprintf("Refund for order %s", o.OrderID)
		if reason != "" {
			description += ": " + reason
		}
		e := &models.TransactionDB{
			TransactionID: uuid.New(),
			WalletID:      w.WalletID,
			Type:          models.TransactionTypeRefund,
			Amount:        payment.Amount,
			Description:   description,
			OrderID:       &o.OrderID,
			Status:        models.TransactionStatusCompleted,
			BalanceBefore: change.Before,
			BalanceAfter:  change.After,
			CreatedBy:     &adminID,
		}
		if err := s.ledgerW.Insert(ctx, e); err != nil {
			if isUniqueViolation(err) {
				return &InvalidStateError{Status: models.OrderStatusCancelled}
			}
			return err
		}

		ok, err := s.orderWriter.CompareAndSetStatus(ctx, o.OrderID, models.OrderStatusConfirmed, models.OrderStatusCancelled)
		if err != nil {
			return err
		}
		if !ok {
			return s.currentState(ctx, o.OrderID)
		}

		w.Balance = change.After
		o.Status = models.OrderStatusCancelled
		wallet, order, entry = w, o, e
		return nil
	})
	if err != nil {
		err = classify(err)
		logger.Log.Warnw("order refund failed", "orderID", orderID, "adminID", adminID, "error", err)
		return nil, nil, err
	}

	logger.Log.Infow("order refunded", "orderID", orderID, "adminID", adminID, "amount", entry.Amount)
	s.notify.committed(ctx, order.UserID, entry)
	return wallet, order, nil
}

// currentState builds the InvalidStateError for an order whose status changed under the CAS.
func (s *PaymentService) currentState(ctx context.Context, orderID uuid.UUID) error {
	o, err := s.orderReader.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	return &InvalidStateError{Status: o.Status}
}

func paymentResult(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return metrics.ResultNotFound
	case errors.Is(err, ErrInvalidState):
		return metrics.ResultInvalidState
	case errors.Is(err, ErrWalletUnavailable):
		return metrics.ResultWalletUnavailable
	case errors.Is(err, ErrInsufficientFunds):
		return metrics.ResultInsufficientFunds
	case errors.Is(err, ErrTransient):
		return metrics.ResultTransient
	}
	return metrics.ResultError
}
