package handlers

//go:generate mockgen -source=order_cancel.go -destination=order_cancel_mock.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-wallet-payments/internal/models"
)

// OrderCanceller defines the interface for cancelling a pending order.
type OrderCanceller interface {
	CancelOrder(ctx context.Context, userID, orderID uuid.UUID) (*models.OrderDB, error)
}

// NewCancelOrderHandler cancels the caller's pending order.
// @Summary Cancel order
// @Description Only pending orders can be cancelled by their owner
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} SuccessResponse{data=models.OrderDB}
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /orders/{id}/cancel [post]
// @Security Bearer
func NewCancelOrderHandler(svc OrderCanceller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsOrFail(w, r)
		if !ok {
			return
		}

		orderID, err := pathUUID(r, "id")
		if err != nil {
			writeError(w, r, err)
			return
		}

		order, err := svc.CancelOrder(r.Context(), claims.UserID, orderID)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeData(w, r, http.StatusOK, order)
	}
}

// RegisterCancelOrderHandler registers the order cancellation route.
func RegisterCancelOrderHandler(r chi.Router, h http.HandlerFunc) {
	r.Post("/orders/{id}/cancel", h)
}
