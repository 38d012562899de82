package handlers

//go:generate mockgen -source=order_status.go -destination=order_status_mock.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-wallet-payments/internal/models"
)

// OrderStatusUpdater defines the interface for fulfilment transitions.
type OrderStatusUpdater interface {
	UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status string) (*models.OrderDB, error)
}

// NewOrderStatusHandler moves a paid order through fulfilment.
// @Summary Update order status
// @Description Admin fulfilment transition, confirmed to shipped or shipped to delivered
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param request body StatusRequest true "New status"
// @Success 200 {object} SuccessResponse{data=models.OrderDB}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /orders/admin/{id}/status [patch]
// @Security Bearer
func NewOrderStatusHandler(svc OrderStatusUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := pathUUID(r, "id")
		if err != nil {
			writeError(w, r, err)
			return
		}

		var req StatusRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, r, err)
			return
		}

		order, err := svc.UpdateOrderStatus(r.Context(), orderID, req.Status)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeData(w, r, http.StatusOK, order)
	}
}

// RegisterOrderStatusHandler registers the admin order status route.
func RegisterOrderStatusHandler(r chi.Router, h http.HandlerFunc) {
	r.Patch("/orders/admin/{id}/status", h)
}
