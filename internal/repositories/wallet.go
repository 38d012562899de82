package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-wallet-payments/internal/models"
	"github.com/shopspring/decimal"
)

// ErrNonPositiveAmount is returned by Debit and Credit for amounts <= 0.
var ErrNonPositiveAmount = errors.New("amount must be positive")

const walletColumns = `id, user_id, balance, status, created_at, updated_at`

// WalletWriterRepository handles wallet write operations.
// Debit and Credit are the only statements that change wallets.balance.
type WalletWriterRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewWalletWriterRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *WalletWriterRepository {
	return &WalletWriterRepository{db: db, txGetter: txGetter}
}

// Create creates a zero-balance active wallet for the user if none exists and returns the user's wallet.
func (r *WalletWriterRepository) Create(ctx context.Context, userID uuid.UUID) (*models.WalletDB, error) {
	const insert = `
		INSERT INTO wallets (id, user_id, balance, status, created_at, updated_at)
		VALUES ($1, $2, 0, 'active', NOW(), NOW())
		ON CONFLICT (user_id) DO NOTHING
	`
	const query = `SELECT ` + walletColumns + ` FROM wallets WHERE user_id = $1`

	exec := executor(ctx, r.db, r.txGetter)

	walletID := uuid.New()
	_, err := exec.ExecContext(ctx, insert, walletID, userID)
	logQuery(insert, []any{walletID, userID}, nil, err)
	if err != nil {
		return nil, err
	}

	var wallet models.WalletDB
	err = sqlx.GetContext(ctx, exec, &wallet, query, userID)
	logQuery(query, []any{userID}, wallet.WalletID, err)
	if err != nil {
		return nil, err
	}
	return &wallet, nil
}

// Debit decreases the balance by amount and returns the before/after snapshot.
// Returns sql.ErrNoRows when the wallet is missing or the balance is lower than amount.
func (r *WalletWriterRepository) Debit(ctx context.Context, walletID uuid.UUID, amount decimal.Decimal) (models.BalanceChange, error) {
	const query = `
		UPDATE wallets
		SET balance = balance - $2, updated_at = NOW()
		WHERE id = $1 AND balance >= $2
		RETURNING balance
	`
	if !amount.IsPositive() {
		return models.BalanceChange{}, ErrNonPositiveAmount
	}

	var after decimal.Decimal
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &after, query, walletID, amount)
	logQuery(query, []any{walletID, amount}, after, err)
	if err != nil {
		return models.BalanceChange{}, err
	}
	return models.BalanceChange{Before: after.Add(amount), After: after}, nil
}

// Credit increases the balance by amount and returns the before/after snapshot.
// Returns sql.ErrNoRows when the wallet is missing.
func (r *WalletWriterRepository) Credit(ctx context.Context, walletID uuid.UUID, amount decimal.Decimal) (models.BalanceChange, error) {
	const query = `
		UPDATE wallets
		SET balance = balance + $2, updated_at = NOW()
		WHERE id = $1
		RETURNING balance
	`
	if !amount.IsPositive() {
		return models.BalanceChange{}, ErrNonPositiveAmount
	}

	var after decimal.Decimal
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &after, query, walletID, amount)
	logQuery(query, []any{walletID, amount}, after, err)
	if err != nil {
		return models.BalanceChange{}, err
	}
	return models.BalanceChange{Before: after.Sub(amount), After: after}, nil
}

// SetStatus changes the wallet status. Returns sql.ErrNoRows for unknown wallets.
func (r *WalletWriterRepository) SetStatus(ctx context.Context, walletID uuid.UUID, status string) (*models.WalletDB, error) {
	const query = `
		UPDATE wallets
		SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + walletColumns

	var wallet models.WalletDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &wallet, query, walletID, status)
	logQuery(query, []any{walletID, status}, wallet.Status, err)
	if err != nil {
		return nil, err
	}
	return &wallet, nil
}

// WalletReaderRepository handles wallet read operations
type WalletReaderRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewWalletReaderRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *WalletReaderRepository {
	return &WalletReaderRepository{db: db, txGetter: txGetter}
}

// GetByUserID returns the user's wallet or sql.ErrNoRows.
func (r *WalletReaderRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.WalletDB, error) {
	const query = `SELECT ` + walletColumns + ` FROM wallets WHERE user_id = $1`
	return r.get(ctx, query, userID)
}

// GetByUserIDForUpdate returns the user's wallet and locks its row until the
// surrounding transaction ends. Must be called inside TxManager.WithinTx.
func (r *WalletReaderRepository) GetByUserIDForUpdate(ctx context.Context, userID uuid.UUID) (*models.WalletDB, error) {
	const query = `SELECT ` + walletColumns + ` FROM wallets WHERE user_id = $1 FOR UPDATE`
	return r.get(ctx, query, userID)
}

// GetByID returns the wallet or sql.ErrNoRows.
func (r *WalletReaderRepository) GetByID(ctx context.Context, walletID uuid.UUID) (*models.WalletDB, error) {
	const query = `SELECT ` + walletColumns + ` FROM wallets WHERE id = $1`
	return r.get(ctx, query, walletID)
}

func (r *WalletReaderRepository) get(ctx context.Context, query string, arg uuid.UUID) (*models.WalletDB, error) {
	var wallet models.WalletDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &wallet, query, arg)
	logQuery(query, []any{arg}, wallet.Balance, err)
	if err != nil {
		return nil, err
	}
	return &wallet, nil
}
