package handlers

//go:generate mockgen -source=order_list.go -destination=order_list_mock.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sbilibin2017/gw-wallet-payments/internal/models"
)

// OrderLister defines the interface for listing the caller's orders.
type OrderLister interface {
	ListMyOrders(ctx context.Context, f models.OrderFilter) (models.PageResult[models.OrderDB], error)
}

// NewListOrdersHandler lists the caller's orders, newest first.
// @Summary List my orders
// @Tags orders
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Param status query string false "Order status"
// @Success 200 {object} SuccessResponse{data=models.PageResult[models.OrderDB]}
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /orders [get]
// @Security Bearer
func NewListOrdersHandler(svc OrderLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsOrFail(w, r)
		if !ok {
			return
		}

		page, err := queryPage(r)
		if err != nil {
			writeError(w, r, err)
			return
		}

		result, err := svc.ListMyOrders(r.Context(), models.OrderFilter{
			Page:   page,
			UserID: claims.UserID,
			Status: r.URL.Query().Get("status"),
		})
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeData(w, r, http.StatusOK, result)
	}
}

// RegisterListOrdersHandler registers the order listing route.
func RegisterListOrdersHandler(r chi.Router, h http.HandlerFunc) {
	r.Get("/orders", h)
}
