package handlers

//go:generate mockgen -source=order_create.go -destination=order_create_mock.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-wallet-payments/internal/models"
	"github.com/sbilibin2017/gw-wallet-payments/internal/services"
	"github.com/shopspring/decimal"
)

// OrderCreator defines the interface for placing orders.
type OrderCreator interface {
	CreateOrder(ctx context.Context, userID uuid.UUID, in services.CreateOrderInput) (*models.OrderDB, error)
}

// OrderItemRequest is one line of a new order.
// swagger:model OrderItemRequest
type OrderItemRequest struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Size        string          `json:"size"`
	Color       string          `json:"color"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price" swaggertype:"number"`
}

// CreateOrderRequest is the body for placing an order.
// swagger:model CreateOrderRequest
type CreateOrderRequest struct {
	Items []OrderItemRequest `json:"items"`
	// wallet or cod, defaults to wallet
	PaymentMethod   string `json:"payment_method"`
	ShippingAddress string `json:"shipping_address"`
}

// NewCreateOrderHandler places a pending order for the caller.
// @Summary Create order
// @Description Validates items, computes the total and stores a pending order
// @Tags orders
// @Accept json
// @Produce json
// @Param request body CreateOrderRequest true "Order"
// @Success 201 {object} SuccessResponse{data=models.OrderDB}
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /orders [post]
// @Security Bearer
func NewCreateOrderHandler(svc OrderCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsOrFail(w, r)
		if !ok {
			return
		}

		var req CreateOrderRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, r, err)
			return
		}

		in := services.CreateOrderInput{
			PaymentMethod:   req.PaymentMethod,
			ShippingAddress: req.ShippingAddress,
			Items:           make([]models.OrderItemDB, 0, len(req.Items)),
		}
		for _, item := range req.Items {
			in.Items = append(in.Items, models.OrderItemDB{
				ProductID:   item.ProductID,
				ProductName: item.ProductName,
				Size:        item.Size,
				Color:       item.Color,
				Quantity:    item.Quantity,
				UnitPrice:   item.UnitPrice,
			})
		}

		order, err := svc.CreateOrder(r.Context(), claims.UserID, in)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeData(w, r, http.StatusCreated, order)
	}
}

// RegisterCreateOrderHandler registers the order creation route.
func RegisterCreateOrderHandler(r chi.Router, h http.HandlerFunc) {
	r.Post("/orders", h)
}
