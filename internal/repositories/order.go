package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-wallet-payments/internal/models"
)

const orderColumns = `id, user_id, total_amount, status, payment_method, shipping_address, created_at, updated_at`

// OrderRepository handles the payment-relevant slice of orders.
type OrderRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewOrderRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *OrderRepository {
	return &OrderRepository{db: db, txGetter: txGetter}
}

// Create inserts the order header and its items. Call inside a transaction.
func (r *OrderRepository) Create(ctx context.Context, order *models.OrderDB) error {
	const headerQuery = `
		INSERT INTO orders (id, user_id, total_amount, status, payment_method, shipping_address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	const itemQuery = `
		INSERT INTO order_items (id, order_id, product_id, product_name, size, color, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	exec := executor(ctx, r.db, r.txGetter)

	if order.OrderID == uuid.Nil {
		order.OrderID = uuid.New()
	}
	args := []any{order.OrderID, order.UserID, order.TotalAmount, order.Status, order.PaymentMethod, order.ShippingAddress}
	err := exec.QueryRowxContext(ctx, headerQuery, args...).Scan(&order.CreatedAt, &order.UpdatedAt)
	logQuery(headerQuery, args, order.OrderID, err)
	if err != nil {
		return err
	}

	for i := range order.Items {
		item := &order.Items[i]
		if item.ItemID == uuid.Nil {
			item.ItemID = uuid.New()
		}
		item.OrderID = order.OrderID
		itemArgs := []any{item.ItemID, item.OrderID, item.ProductID, item.ProductName, item.Size, item.Color, item.Quantity, item.UnitPrice}
		_, err := exec.ExecContext(ctx, itemQuery, itemArgs...)
		logQuery(itemQuery, itemArgs, item.ItemID, err)
		if err != nil {
			return err
		}
	}
	return nil
}

// GetByID returns the order header or sql.ErrNoRows.
func (r *OrderRepository) GetByID(ctx context.Context, orderID uuid.UUID) (*models.OrderDB, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	return r.get(ctx, query, orderID)
}

// GetByIDForUpdate returns the order header and locks its row until the
// surrounding transaction ends.
func (r *OrderRepository) GetByIDForUpdate(ctx context.Context, orderID uuid.UUID) (*models.OrderDB, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE id = $1 FOR UPDATE`
	return r.get(ctx, query, orderID)
}

func (r *OrderRepository) get(ctx context.Context, query string, orderID uuid.UUID) (*models.OrderDB, error) {
	var order models.OrderDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &order, query, orderID)
	logQuery(query, []any{orderID}, order.Status, err)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetItems returns the order's line items.
func (r *OrderRepository) GetItems(ctx context.Context, orderID uuid.UUID) ([]models.OrderItemDB, error) {
	const query = `
		SELECT id, order_id, product_id, product_name, size, color, quantity, unit_price
		FROM order_items
		WHERE order_id = $1
		ORDER BY product_id, id
	`

	var items []models.OrderItemDB
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &items, query, orderID)
	logQuery(query, []any{orderID}, len(items), err)
	return items, err
}

// ListByUser returns a page of the user's orders, newest first, and the total count.
func (r *OrderRepository) ListByUser(ctx context.Context, f models.OrderFilter) ([]models.OrderDB, int64, error) {
	var w whereBuilder
	w.add("user_id = $%d", f.UserID)
	if f.Status != "" {
		w.add("status = $%d", f.Status)
	}

	exec := executor(ctx, r.db, r.txGetter)

	countQuery := `SELECT COUNT(*) FROM orders` + w.sql()
	var total int64
	err := sqlx.GetContext(ctx, exec, &total, countQuery, w.args...)
	logQuery(countQuery, w.args, total, err)
	if err != nil {
		return nil, 0, err
	}

	listQuery := `SELECT ` + orderColumns + ` FROM orders` + w.sql() +
		` ORDER BY created_at DESC, id LIMIT ` + w.next(f.Limit) + ` OFFSET ` + w.next(f.Offset())
	var orders []models.OrderDB
	err = sqlx.SelectContext(ctx, exec, &orders, listQuery, w.args...)
	logQuery(listQuery, w.args, len(orders), err)
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// CompareAndSetStatus moves the order from status from to status to.
// It reports false when the order is missing or no longer in status from.
func (r *OrderRepository) CompareAndSetStatus(ctx context.Context, orderID uuid.UUID, from, to string) (bool, error) {
	const query = `
		UPDATE orders
		SET status = $3, updated_at = NOW()
		WHERE id = $1 AND status = $2
	`

	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, orderID, from, to)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}
	logQuery(query, []any{orderID, from, to}, rowsAffected, err)
	if err != nil {
		return false, err
	}
	return rowsAffected == 1, nil
}
