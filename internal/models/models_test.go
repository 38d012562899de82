package models

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPage_Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   Page
		want Page
	}{
		{"defaults", Page{}, Page{Page: 1, Limit: 20}},
		{"kept", Page{Page: 3, Limit: 50}, Page{Page: 3, Limit: 50}},
		{"clamped limit", Page{Page: 2, Limit: 1000}, Page{Page: 2, Limit: 100}},
		{"negative page", Page{Page: -4, Limit: 10}, Page{Page: 1, Limit: 10}},
		{"huge page", Page{Page: math.MaxInt, Limit: 20}, Page{Page: MaxPage, Limit: 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize())
		})
	}
}

func TestPage_Offset(t *testing.T) {
	assert.Equal(t, 0, Page{Page: 1, Limit: 20}.Offset())
	assert.Equal(t, 40, Page{Page: 3, Limit: 20}.Offset())
	assert.Positive(t, Page{Page: math.MaxInt, Limit: 20}.Normalize().Offset())
}

func TestNewPageResult(t *testing.T) {
	res := NewPageResult[int](nil, Page{Page: 1, Limit: 20}, 41)
	assert.Equal(t, 3, res.TotalPages)
	assert.NotNil(t, res.Items)
	assert.Empty(t, res.Items)
}

func TestTransactionDB_SignedAmount(t *testing.T) {
	amount := decimal.NewFromInt(60000)

	for _, typ := range []string{TransactionTypeDeposit, TransactionTypeRefund} {
		tx := TransactionDB{Type: typ, Amount: amount}
		assert.True(t, tx.SignedAmount().Equal(amount), typ)
	}
	for _, typ := range []string{TransactionTypeWithdraw, TransactionTypePayment} {
		tx := TransactionDB{Type: typ, Amount: amount}
		assert.True(t, tx.SignedAmount().Equal(amount.Neg()), typ)
	}
}

func TestCanAdvance(t *testing.T) {
	assert.True(t, CanAdvance(OrderStatusConfirmed, OrderStatusShipped))
	assert.True(t, CanAdvance(OrderStatusShipped, OrderStatusDelivered))
	assert.False(t, CanAdvance(OrderStatusPending, OrderStatusConfirmed))
	assert.False(t, CanAdvance(OrderStatusConfirmed, OrderStatusDelivered))
	assert.False(t, CanAdvance(OrderStatusDelivered, OrderStatusShipped))
}

func TestOrderItemDB_LineTotal(t *testing.T) {
	item := OrderItemDB{Quantity: 3, UnitPrice: decimal.RequireFromString("19999.50")}
	assert.Equal(t, "59998.5", item.LineTotal().String())
}

func TestValidators(t *testing.T) {
	assert.True(t, ValidWalletStatus(WalletStatusSuspended))
	assert.False(t, ValidWalletStatus("frozen"))
	assert.True(t, ValidTransactionType(TransactionTypePayment))
	assert.False(t, ValidTransactionType("transfer"))
	assert.True(t, ValidTransactionStatus(TransactionStatusCancelled))
	assert.False(t, ValidTransactionStatus("done"))
	assert.True(t, ValidOrderStatus(OrderStatusDelivered))
	assert.False(t, ValidOrderStatus("paid"))
}
