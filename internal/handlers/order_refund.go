package handlers

//go:generate mockgen -source=order_refund.go -destination=order_refund_mock.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-wallet-payments/internal/models"
)

// OrderRefunder defines the interface for refunding a paid order.
type OrderRefunder interface {
	RefundOrder(ctx context.Context, adminID, orderID uuid.UUID, reason string) (*models.WalletDB, *models.OrderDB, error)
}

// RefundRequest is the body of a refund request.
// swagger:model RefundRequest
type RefundRequest struct {
	Reason string `json:"reason"`
}

// NewRefundOrderHandler refunds a confirmed wallet order and cancels it.
// @Summary Refund order
// @Description Credits the payment back to the owner's wallet and cancels the order
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param request body RefundRequest false "Refund reason"
// @Success 200 {object} SuccessResponse{data=PayOrderResponse}
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /orders/admin/{id}/refund [post]
// @Security Bearer
func NewRefundOrderHandler(svc OrderRefunder) http.HandlerFunc {
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

		var req RefundRequest
		if r.ContentLength != 0 {
			if err := decodeJSON(r, &req); err != nil {
				writeError(w, r, err)
				return
			}
		}

		wallet, order, err := svc.RefundOrder(r.Context(), claims.UserID, orderID, req.Reason)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeData(w, r, http.StatusOK, PayOrderResponse{Wallet: wallet, Order: order})
	}
}

// RegisterRefundOrderHandler registers the admin refund route.
func RegisterRefundOrderHandler(r chi.Router, h http.HandlerFunc) {
	r.Post("/orders/admin/{id}/refund", h)
}
