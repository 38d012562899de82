package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Pagination defaults
const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
	// MaxPage keeps (Page-1)*Limit far from int overflow.
	MaxPage = 1_000_000
)

// Page is a 1-based page request.
type Page struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Offset returns the SQL offset for the page.
func (p Page) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Normalize clamps page and limit into the supported range.
func (p Page) Normalize() Page {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Page > MaxPage {
		p.Page = MaxPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// TransactionFilter narrows ledger listings. Zero values mean "any".
type TransactionFilter struct {
	Page
	WalletID *uuid.UUID
	UserID   *uuid.UUID
	OrderID  *uuid.UUID
	Type     string
	Status   string
	Query    string
	From     *time.Time
	To       *time.Time
}

// WalletFilter narrows admin wallet listings.
type WalletFilter struct {
	Page
	Status string
	Query  string
	From   *time.Time
	To     *time.Time
}

// OrderFilter narrows order listings.
type OrderFilter struct {
	Page
	UserID uuid.UUID
	Status string
}

// PageResult is a page of items with totals.
type PageResult[T any] struct {
	Items      []T   `json:"items"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// NewPageResult builds a PageResult computing the page count.
func NewPageResult[T any](items []T, p Page, total int64) PageResult[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := 0
	if p.Limit > 0 {
		totalPages = int((total + int64(p.Limit) - 1) / int64(p.Limit))
	}
	return PageResult[T]{Items: items, Page: p.Page, Limit: p.Limit, Total: total, TotalPages: totalPages}
}

// TypeTotal is the sum and count of completed ledger entries of one type.
type TypeTotal struct {
	Type   string          `json:"type" db:"type"`
	Count  int64           `json:"count" db:"count"`
	Amount decimal.Decimal `json:"amount" db:"amount"`
}

// Summary is the admin aggregate over wallets and ledger entries.
type Summary struct {
	WalletCount  int64           `json:"wallet_count"`
	TotalBalance decimal.Decimal `json:"total_balance"`
	ByType       []TypeTotal     `json:"by_type"`
}
