package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-wallet-payments/internal/models"
)

// AdminReadRepository serves read-only admin views. It never locks rows.
type AdminReadRepository struct {
	db *sqlx.DB
}

func NewAdminReadRepository(db *sqlx.DB) *AdminReadRepository {
	return &AdminReadRepository{db: db}
}

// ListWallets returns a page of wallets joined with their owners and the total match count.
func (r *AdminReadRepository) ListWallets(ctx context.Context, f models.WalletFilter) ([]models.WalletWithOwner, int64, error) {
	var w whereBuilder
	if f.Status != "" {
		w.add("w.status = $%d", f.Status)
	}
	if f.From != nil {
		w.add("w.created_at >= $%d", *f.From)
	}
	if f.To != nil {
		w.add("w.created_at <= $%d", *f.To)
	}
	if f.Query != "" {
		w.add(`(u.username ILIKE $%d ESCAPE '\' OR u.email ILIKE $%d ESCAPE '\' OR u.full_name ILIKE $%d ESCAPE '\')`, likeContains(f.Query))
	}

	const from = ` FROM wallets w JOIN users u ON u.id = w.user_id`

	countQuery := `SELECT COUNT(*)` + from + w.sql()
	var total int64
	err := r.db.GetContext(ctx, &total, countQuery, w.args...)
	logQuery(countQuery, w.args, total, err)
	if err != nil {
		return nil, 0, err
	}

	listQuery := `SELECT w.id, w.user_id, w.balance, w.status, w.created_at, w.updated_at,
		u.username, u.email, u.full_name` + from + w.sql() +
		` ORDER BY w.created_at DESC, w.id LIMIT ` + w.next(f.Limit) + ` OFFSET ` + w.next(f.Offset())

	var items []models.WalletWithOwner
	err = r.db.SelectContext(ctx, &items, listQuery, w.args...)
	logQuery(listQuery, w.args, len(items), err)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Summary returns the total balance across wallets and per-type sums of completed ledger entries.
func (r *AdminReadRepository) Summary(ctx context.Context) (*models.Summary, error) {
	const walletsQuery = `SELECT COUNT(*) AS wallet_count, COALESCE(SUM(balance), 0) AS total_balance FROM wallets`
	const byTypeQuery = `
		SELECT type, COUNT(*) AS count, COALESCE(SUM(amount), 0) AS amount
		FROM transactions
		WHERE status = 'completed'
		GROUP BY type
		ORDER BY type
	`

	var summary models.Summary
	row := r.db.QueryRowxContext(ctx, walletsQuery)
	err := row.Scan(&summary.WalletCount, &summary.TotalBalance)
	logQuery(walletsQuery, nil, summary.TotalBalance, err)
	if err != nil {
		return nil, err
	}

	err = r.db.SelectContext(ctx, &summary.ByType, byTypeQuery)
	logQuery(byTypeQuery, nil, len(summary.ByType), err)
	if err != nil {
		return nil, err
	}
	if summary.ByType == nil {
		summary.ByType = []models.TypeTotal{}
	}
	return &summary, nil
}
