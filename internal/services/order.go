package services

//go:generate mockgen -source=order.go -destination=order_mock.go -package=services

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-wallet-payments/internal/logger"
	"github.com/sbilibin2017/gw-wallet-payments/internal/models"
	"github.com/shopspring/decimal"
)

// OrderReader defines order read operations.
type OrderReader interface {
	GetByID(ctx context.Context, orderID uuid.UUID) (*models.OrderDB, error)
	GetByIDForUpdate(ctx context.Context, orderID uuid.UUID) (*models.OrderDB, error)
	GetItems(ctx context.Context, orderID uuid.UUID) ([]models.OrderItemDB, error)
	ListByUser(ctx context.Context, f models.OrderFilter) ([]models.OrderDB, int64, error)
}

// OrderWriter defines order write operations.
type OrderWriter interface {
	Create(ctx context.Context, order *models.OrderDB) error
	CompareAndSetStatus(ctx context.Context, orderID uuid.UUID, from, to string) (bool, error)
}

// CreateOrderInput holds the caller-supplied part of a new order.
type CreateOrderInput struct {
	Items           []models.OrderItemDB
	PaymentMethod   string
	ShippingAddress string
}

// OrderService handles the order lifecycle outside of payment.
type OrderService struct {
	tx     TxManager
	reader OrderReader
	writer OrderWriter
}

// NewOrderService creates a new OrderService.
func NewOrderService(tx TxManager, reader OrderReader, writer OrderWriter) *OrderService {
	return &OrderService{tx: tx, reader: reader, writer: writer}
}

// CreateOrder validates the items, computes the total and stores a pending order.
func (s *OrderService) CreateOrder(ctx context.Context, userID uuid.UUID, in CreateOrderInput) (*models.OrderDB, error) {
	if len(in.Items) == 0 {
		return nil, ErrInvalidInput
	}
	method := in.PaymentMethod
	if method == "" {
		method = models.PaymentMethodWallet
	}
	if method != models.PaymentMethodWallet && method != models.PaymentMethodCOD {
		return nil, ErrInvalidInput
	}

	total := decimal.Zero
	items := make([]models.OrderItemDB, 0, len(in.Items))
	for _, item := range in.Items {
		item.ProductID = strings.TrimSpace(item.ProductID)
		if item.ProductID == "" || item.Quantity <= 0 || item.Quantity > math.MaxInt32 {
			return nil, ErrInvalidInput
		}
		if item.UnitPrice.IsNegative() || !item.UnitPrice.LessThan(maxAmount) || !item.UnitPrice.Equal(item.UnitPrice.Round(2)) {
			return nil, ErrInvalidInput
		}
		if item.ProductName == "" {
			item.ProductName = item.ProductID
		}
		total = total.Add(item.LineTotal())
		items = append(items, item)
	}
	if !validAmount(total) {
		return nil, ErrInvalidInput
	}

	order := &models.OrderDB{
		UserID:          userID,
		TotalAmount:     total,
		Status:          models.OrderStatusPending,
		PaymentMethod:   method,
		ShippingAddress: strings.TrimSpace(in.ShippingAddress),
		Items:           items,
	}
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		return s.writer.Create(ctx, order)
	})
	if err != nil {
		logger.Log.Errorw("failed to create order", "userID", userID, "error", err)
		return nil, classify(err)
	}

	logger.Log.Infow("order created", "orderID", order.OrderID, "userID", userID, "total", order.TotalAmount)
	return order, nil
}

// GetOrder returns the order with its items. Non-admin callers only see their own orders.
func (s *OrderService) GetOrder(ctx context.Context, userID, orderID uuid.UUID, isAdmin bool) (*models.OrderDB, error) {
	order, err := s.reader.GetByID(ctx, orderID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		logger.Log.Errorw("failed to get order", "orderID", orderID, "error", err)
		return nil, classify(err)
	}
	if !isAdmin && order.UserID != userID {
		return nil, ErrNotFound
	}

	items, err := s.reader.GetItems(ctx, orderID)
	if err != nil {
		logger.Log.Errorw("failed to get order items", "orderID", orderID, "error", err)
		return nil, classify(err)
	}
	order.Items = items
	return order, nil
}

// ListMyOrders returns a page of the user's orders, newest first.
func (s *OrderService) ListMyOrders(ctx context.Context, f models.OrderFilter) (models.PageResult[models.OrderDB], error) {
	if f.Status != "" && !models.ValidOrderStatus(f.Status) {
		return models.PageResult[models.OrderDB]{}, ErrInvalidInput
	}
	f.Page = f.Page.Normalize()

	orders, total, err := s.reader.ListByUser(ctx, f)
	if err != nil {
		logger.Log.Errorw("failed to list orders", "userID", f.UserID, "error", err)
		return models.PageResult[models.OrderDB]{}, classify(err)
	}
	return models.NewPageResult(orders, f.Page, total), nil
}

// CancelOrder cancels the caller's pending order.
func (s *OrderService) CancelOrder(ctx context.Context, userID, orderID uuid.UUID) (*models.OrderDB, error) {
	var order *models.OrderDB
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		o, err := s.reader.GetByIDForUpdate(ctx, orderID)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if o.UserID != userID {
			return ErrNotFound
		}
		if err := s.transition(ctx, o, models.OrderStatusPending, models.OrderStatusCancelled); err != nil {
			return err
		}
		order = o
		return nil
	})
	if err != nil {
		logger.Log.Warnw("failed to cancel order", "orderID", orderID, "userID", userID, "error", err)
		return nil, classify(err)
	}

	logger.Log.Infow("order cancelled", "orderID", orderID, "userID", userID)
	return order, nil
}

// UpdateOrderStatus applies an admin fulfilment transition: confirmed to shipped, shipped to delivered.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status string) (*models.OrderDB, error) {
	if !models.ValidOrderStatus(status) {
		return nil, ErrInvalidInput
	}

	var order *models.OrderDB
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		o, err := s.reader.GetByIDForUpdate(ctx, orderID)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if !models.CanAdvance(o.Status, status) {
			return &InvalidStateError{Status: o.Status}
		}
		if err := s.transition(ctx, o, o.Status, status); err != nil {
			return err
		}
		order = o
		return nil
	})
	if err != nil {
		logger.Log.Warnw("failed to update order status", "orderID", orderID, "status", status, "error", err)
		return nil, classify(err)
	}

	logger.Log.Infow("order status updated", "orderID", orderID, "status", status)
	return order, nil
}

func (s *OrderService) transition(ctx context.Context, o *models.OrderDB, from, to string) error {
	if o.Status != from {
		return &InvalidStateError{Status: o.Status}
	}
	ok, err := s.writer.CompareAndSetStatus(ctx, o.OrderID, from, to)
	if err != nil {
		return err
	}
	if !ok {
		return &InvalidStateError{Status: o.Status}
	}
	o.Status = to
	return nil
}
