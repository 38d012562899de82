package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order statuses
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// Payment methods
const (
	PaymentMethodWallet = "wallet"
	PaymentMethodCOD    = "cod"
)

// OrderDB is the payment-relevant slice of an order.
type OrderDB struct {
	OrderID         uuid.UUID       `json:"id" db:"id"`
	UserID          uuid.UUID       `json:"user_id" db:"user_id"`
	TotalAmount     decimal.Decimal `json:"total_amount" db:"total_amount"`
	Status          string          `json:"status" db:"status"`
	PaymentMethod   string          `json:"payment_method" db:"payment_method"`
	ShippingAddress string          `json:"shipping_address" db:"shipping_address"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at" db:"updated_at"`
	Items           []OrderItemDB   `json:"items,omitempty" db:"-"`
}

// OrderItemDB is one line of an order.
type OrderItemDB struct {
	ItemID      uuid.UUID       `json:"id" db:"id"`
	OrderID     uuid.UUID       `json:"order_id" db:"order_id"`
	ProductID   string          `json:"product_id" db:"product_id"`
	ProductName string          `json:"product_name" db:"product_name"`
	Size        string          `json:"size" db:"size"`
	Color       string          `json:"color" db:"color"`
	Quantity    int             `json:"quantity" db:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price" db:"unit_price"`
}

// LineTotal returns quantity * unit price.
func (i *OrderItemDB) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// ValidOrderStatus reports whether s is a known order status.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// fulfilment transitions an admin may apply directly
var fulfilmentTransitions = map[string]string{
	OrderStatusConfirmed: OrderStatusShipped,
	OrderStatusShipped:   OrderStatusDelivered,
}

// CanAdvance reports whether an order in status from may be moved to to by fulfilment.
func CanAdvance(from, to string) bool {
	next, ok := fulfilmentTransitions[from]
	return ok && next == to
}
