package handlers

//go:generate mockgen -source=pay_order.go -destination=pay_order_mock.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-wallet-payments/internal/models"
)

// OrderPayer defines the interface for paying an order from the wallet.
type OrderPayer interface {
	PayOrderWithWallet(ctx context.Context, orderID, userID uuid.UUID) (*models.WalletDB, *models.OrderDB, error)
}

// PayOrderRequest represents the request body for paying an order.
// swagger:model PayOrderRequest
type PayOrderRequest struct {
	// Order to pay
	// required: true
	OrderID string `json:"order_id"`
}

// PayOrderResponse carries the wallet and order after payment.
// swagger:model PayOrderResponse
type PayOrderResponse struct {
	Wallet *models.WalletDB `json:"wallet"`
	Order  *models.OrderDB  `json:"order"`
}

// NewPayOrderHandler pays a pending order with the caller's wallet balance.
// @Summary Pay order with wallet
// @Description Debits the wallet, records a payment entry and confirms the order in one transaction
// @Tags wallet
// @Accept json
// @Produce json
// @Param request body PayOrderRequest true "Order to pay"
// @Success 200 {object} SuccessResponse{data=PayOrderResponse}
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Wallet inactive or suspended"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Order not pending"
// @Failure 422 {object} ErrorResponse "Insufficient balance"
// @Failure 503 {object} ErrorResponse "Lock contention, retry"
// @Router /wallet/pay-order [post]
// @Security Bearer
func NewPayOrderHandler(svc OrderPayer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsOrFail(w, r)
		if !ok {
			return
		}

		var req PayOrderRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, r, err)
			return
		}
		orderID, err := parseUUID("order_id", req.OrderID)
		if err != nil {
			writeError(w, r, err)
			return
		}

		wallet, order, err := svc.PayOrderWithWallet(r.Context(), orderID, claims.UserID)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeData(w, r, http.StatusOK, PayOrderResponse{Wallet: wallet, Order: order})
	}
}

// RegisterPayOrderHandler registers the route for paying an order.
func RegisterPayOrderHandler(r chi.Router, h http.HandlerFunc) {
	r.Post("/wallet/pay-order", h)
}
