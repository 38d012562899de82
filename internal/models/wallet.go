package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Wallet statuses
const (
	WalletStatusActive    = "active"
	WalletStatusInactive  = "inactive"
	WalletStatusSuspended = "suspended"
)

// WalletDB represents a wallet row in the database
type WalletDB struct {
	WalletID  uuid.UUID       `json:"id" db:"id"`                 // Unique wallet identifier
	UserID    uuid.UUID       `json:"user_id" db:"user_id"`       // Owner, one wallet per user
	Balance   decimal.Decimal `json:"balance" db:"balance"`       // Current balance, never negative
	Status    string          `json:"status" db:"status"`         // active, inactive or suspended
	CreatedAt time.Time       `json:"created_at" db:"created_at"` // Timestamp when the wallet was created
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"` // Timestamp of the last wallet update
}

// IsActive reports whether the wallet can be used for payments.
func (w *WalletDB) IsActive() bool {
	return w.Status == WalletStatusActive
}

// WalletWithOwner is a wallet joined with its owner for admin listings.
type WalletWithOwner struct {
	WalletDB
	Username string `json:"username" db:"username"`
	Email    string `json:"email" db:"email"`
	FullName string `json:"full_name" db:"full_name"`
}

// BalanceChange is the snapshot produced by a debit or credit.
type BalanceChange struct {
	Before decimal.Decimal `json:"balance_before"`
	After  decimal.Decimal `json:"balance_after"`
}

// ValidWalletStatus reports whether s is a known wallet status.
func ValidWalletStatus(s string) bool {
	switch s {
	case WalletStatusActive, WalletStatusInactive, WalletStatusSuspended:
		return true
	}
	return false
}
