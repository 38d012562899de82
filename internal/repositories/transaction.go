package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-wallet-payments/internal/models"
)

const transactionColumns = `t.id, t.wallet_id, t.type, t.amount, t.description, t.order_id, t.status,
	t.balance_before, t.balance_after, t.created_by, t.created_at, t.updated_at`

// TransactionWriteRepository inserts ledger entries.
type TransactionWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewTransactionWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *TransactionWriteRepository {
	return &TransactionWriteRepository{db: db, txGetter: txGetter}
}

// Insert stores a ledger entry. Id and timestamps are assigned here when empty.
func (r *TransactionWriteRepository) Insert(ctx context.Context, entry *models.TransactionDB) error {
	const query = `
		INSERT INTO transactions (id, wallet_id, type, amount, description, order_id, status,
			balance_before, balance_after, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	if entry.TransactionID == uuid.Nil {
		entry.TransactionID = uuid.New()
	}
	args := []any{
		entry.TransactionID, entry.WalletID, entry.Type, entry.Amount, entry.Description, entry.OrderID,
		entry.Status, entry.BalanceBefore, entry.BalanceAfter, entry.CreatedBy,
	}

	row := executor(ctx, r.db, r.txGetter).QueryRowxContext(ctx, query, args...)
	err := row.Scan(&entry.CreatedAt, &entry.UpdatedAt)
	logQuery(query, args, entry.TransactionID, err)
	return err
}

// TransactionReadRepository reads ledger entries.
type TransactionReadRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewTransactionReadRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *TransactionReadRepository {
	return &TransactionReadRepository{db: db, txGetter: txGetter}
}

// GetCompletedByOrder returns the completed entry of type typ linked to the order, or sql.ErrNoRows.
func (r *TransactionReadRepository) GetCompletedByOrder(ctx context.Context, orderID uuid.UUID, typ string) (*models.TransactionDB, error) {
	const query = `
		SELECT ` + transactionColumns + `
		FROM transactions t
		WHERE t.order_id = $1 AND t.type = $2 AND t.status = 'completed'
	`

	var entry models.TransactionDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &entry, query, orderID, typ)
	logQuery(query, []any{orderID, typ}, entry.TransactionID, err)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// List returns a page of ledger entries joined with their wallet owner, newest first, and the total match count.
func (r *TransactionReadRepository) List(ctx context.Context, f models.TransactionFilter) ([]models.TransactionWithOwner, int64, error) {
	var w whereBuilder
	if f.WalletID != nil {
		w.add("t.wallet_id = $%d", *f.WalletID)
	}
	if f.UserID != nil {
		w.add("wl.user_id = $%d", *f.UserID)
	}
	if f.OrderID != nil {
		w.add("t.order_id = $%d", *f.OrderID)
	}
	if f.Type != "" {
		w.add("t.type = $%d", f.Type)
	}
	if f.Status != "" {
		w.add("t.status = $%d", f.Status)
	}
	if f.From != nil {
		w.add("t.created_at >= $%d", *f.From)
	}
	if f.To != nil {
		w.add("t.created_at <= $%d", *f.To)
	}
	if f.Query != "" {
		w.add(`(u.username ILIKE $%d ESCAPE '\' OR u.email ILIKE $%d ESCAPE '\' OR u.full_name ILIKE $%d ESCAPE '\' OR t.description ILIKE $%d ESCAPE '\')`, likeContains(f.Query))
	}

	const from = `
		FROM transactions t
		JOIN wallets wl ON wl.id = t.wallet_id
		JOIN users u ON u.id = wl.user_id`

	exec := executor(ctx, r.db, r.txGetter)

	countQuery := `SELECT COUNT(*)` + from + w.sql()
	var total int64
	err := sqlx.GetContext(ctx, exec, &total, countQuery, w.args...)
	logQuery(countQuery, w.args, total, err)
	if err != nil {
		return nil, 0, err
	}

	listQuery := `SELECT ` + transactionColumns + `, wl.user_id, u.username, u.email` + from + w.sql() +
		` ORDER BY t.created_at DESC, t.id LIMIT ` + w.next(f.Limit) + ` OFFSET ` + w.next(f.Offset())

	var items []models.TransactionWithOwner
	err = sqlx.SelectContext(ctx, exec, &items, listQuery, w.args...)
	logQuery(listQuery, w.args, len(items), err)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
