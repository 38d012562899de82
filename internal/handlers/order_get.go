package handlers

//go:generate mockgen -source=order_get.go -destination=order_get_mock.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-wallet-payments/internal/models"
)

// OrderGetter defines the interface for reading one order.
type OrderGetter interface {
	GetOrder(ctx context.Context, userID, orderID uuid.UUID, isAdmin bool) (*models.OrderDB, error)
}

// NewGetOrderHandler returns an order with its items. Admins may read any order.
// @Summary Get order
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} SuccessResponse{data=models.OrderDB}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /orders/{id} [get]
// @Security Bearer
func NewGetOrderHandler(svc OrderGetter) http.HandlerFunc {
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

		order, err := svc.GetOrder(r.Context(), claims.UserID, orderID, isAdmin(claims))
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeData(w, r, http.StatusOK, order)
	}
}

// RegisterGetOrderHandler registers the order detail route.
func RegisterGetOrderHandler(r chi.Router, h http.HandlerFunc) {
	r.Get("/orders/{id}", h)
}
