package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Ledger entry types
const (
	TransactionTypeDeposit  = "deposit"
	TransactionTypeWithdraw = "withdraw"
	TransactionTypePayment  = "payment"
	TransactionTypeRefund   = "refund"
)

// Ledger entry statuses
const (
	TransactionStatusPending   = "pending"
	TransactionStatusCompleted = "completed"
	TransactionStatusFailed    = "failed"
	TransactionStatusCancelled = "cancelled"
)

// TransactionDB is a ledger entry. Completed entries are immutable.
type TransactionDB struct {
	TransactionID uuid.UUID       `json:"id" db:"id"`
	WalletID      uuid.UUID       `json:"wallet_id" db:"wallet_id"`
	Type          string          `json:"type" db:"type"`
	Amount        decimal.Decimal `json:"amount" db:"amount"`
	Description   string          `json:"description" db:"description"`
	OrderID       *uuid.UUID      `json:"order_id,omitempty" db:"order_id"`
	Status        string          `json:"status" db:"status"`
	BalanceBefore decimal.Decimal `json:"balance_before" db:"balance_before"`
	BalanceAfter  decimal.Decimal `json:"balance_after" db:"balance_after"`
	CreatedBy     *uuid.UUID      `json:"created_by,omitempty" db:"created_by"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" db:"updated_at"`
}

// TransactionWithOwner is a ledger entry joined with the wallet owner for admin listings.
type TransactionWithOwner struct {
	TransactionDB
	UserID   uuid.UUID `json:"user_id" db:"user_id"`
	Username string    `json:"username" db:"username"`
	Email    string    `json:"email" db:"email"`
}

// IsCredit reports whether entries of type t increase the balance.
func IsCredit(t string) bool {
	return t == TransactionTypeDeposit || t == TransactionTypeRefund
}

// ValidTransactionType reports whether t is a known ledger entry type.
func ValidTransactionType(t string) bool {
	switch t {
	case TransactionTypeDeposit, TransactionTypeWithdraw, TransactionTypePayment, TransactionTypeRefund:
		return true
	}
	return false
}

// ValidTransactionStatus reports whether s is a known ledger entry status.
func ValidTransactionStatus(s string) bool {
	switch s {
	case TransactionStatusPending, TransactionStatusCompleted, TransactionStatusFailed, TransactionStatusCancelled:
		return true
	}
	return false
}

// SignedAmount returns the amount with the sign it applies to the balance.
func (t *TransactionDB) SignedAmount() decimal.Decimal {
	if IsCredit(t.Type) {
		return t.Amount
	}
	return t.Amount.Neg()
}

// Transaction is the event published to Kafka for every committed ledger entry.
type Transaction struct {
	TransactionID string          `json:"transaction_id"` // TransactionID is the ledger entry id.
	Timestamp     int64           `json:"timestamp"`      // Timestamp is the Unix timestamp (in seconds) of the commit.
	WalletID      string          `json:"wallet_id"`      // WalletID is the debited or credited wallet.
	UserID        string          `json:"user_id"`        // UserID is the wallet owner.
	OrderID       string          `json:"order_id,omitempty"`
	Operation     string          `json:"operation"` // Operation is the ledger entry type.
	Amount        decimal.Decimal `json:"amount"`
	BalanceBefore decimal.Decimal `json:"balance_before"`
	BalanceAfter  decimal.Decimal `json:"balance_after"`
}

// NewTransactionEvent builds the Kafka event for a committed ledger entry.
func NewTransactionEvent(entry *TransactionDB, userID uuid.UUID) Transaction {
	ev := Transaction{
		TransactionID: entry.TransactionID.String(),
		Timestamp:     entry.CreatedAt.Unix(),
		WalletID:      entry.WalletID.String(),
		UserID:        userID.String(),
		Operation:     entry.Type,
		Amount:        entry.Amount,
		BalanceBefore: entry.BalanceBefore,
		BalanceAfter:  entry.BalanceAfter,
	}
	if entry.OrderID != nil {
		ev.OrderID = entry.OrderID.String()
	}
	return ev
}
