package services

//go:generate mockgen -source=wallet.go -destination=wallet_mock.go -package=services

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-wallet-payments/internal/logger"
	"github.com/sbilibin2017/gw-wallet-payments/internal/models"
	"github.com/shopspring/decimal"
)

// TxManager runs fn inside one database transaction carried by ctx.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// WalletWriter defines wallet write operations.
type WalletWriter interface {
	Create(ctx context.Context, userID uuid.UUID) (*models.WalletDB, error)
	Debit(ctx context.Context, walletID uuid.UUID, amount decimal.Decimal) (models.BalanceChange, error)
	Credit(ctx context.Context, walletID uuid.UUID, amount decimal.Decimal) (models.BalanceChange, error)
	SetStatus(ctx context.Context, walletID uuid.UUID, status string) (*models.WalletDB, error)
}

// WalletReader defines wallet read operations.
type WalletReader interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.WalletDB, error)
	GetByUserIDForUpdate(ctx context.Context, userID uuid.UUID) (*models.WalletDB, error)
	GetByID(ctx context.Context, walletID uuid.UUID) (*models.WalletDB, error)
}

// TransactionWriter appends ledger entries.
type TransactionWriter interface {
	Insert(ctx context.Context, entry *models.TransactionDB) error
}

// TransactionReader reads ledger entries.
type TransactionReader interface {
	GetCompletedByOrder(ctx context.Context, orderID uuid.UUID, typ string) (*models.TransactionDB, error)
	List(ctx context.Context, f models.TransactionFilter) ([]models.TransactionWithOwner, int64, error)
}

// WalletCache caches wallets by owner. DeleteWallet bumps the wallet version,
// SetWalletIfVersion stores only while the version is unchanged.
type WalletCache interface {
	GetWallet(ctx context.Context, userID uuid.UUID) (*models.WalletDB, error)
	WalletVersion(ctx context.Context, userID uuid.UUID) (int64, error)
	SetWalletIfVersion(ctx context.Context, wallet *models.WalletDB, version int64) (bool, error)
	DeleteWallet(ctx context.Context, userID uuid.UUID) error
}

// WalletService handles wallet reads and admin balance adjustments.
type WalletService struct {
	tx        TxManager
	writeRepo WalletWriter
	readRepo  WalletReader
	ledgerW   TransactionWriter
	ledgerR   TransactionReader
	cache     WalletCache
	notify    notifier
}

// NewWalletService creates a new WalletService. cache and publisher may be nil.
func NewWalletService(
	tx TxManager,
	writeRepo WalletWriter,
	readRepo WalletReader,
	ledgerW TransactionWriter,
	ledgerR TransactionReader,
	cache WalletCache,
	publisher EventPublisher,
) *WalletService {
	return &WalletService{
		tx:        tx,
		writeRepo: writeRepo,
		readRepo:  readRepo,
		ledgerW:   ledgerW,
		ledgerR:   ledgerR,
		cache:     cache,
		notify:    notifier{cache: cache, publisher: publisher},
	}
}

// GetMyWallet returns the user's wallet, creating it on first access.
func (s *WalletService) GetMyWallet(ctx context.Context, userID uuid.UUID) (*models.WalletDB, error) {
	var (
		version   int64
		cacheable bool
	)
	if s.cache != nil {
		if wallet, err := s.cache.GetWallet(ctx, userID); err == nil {
			return wallet, nil
		}
		// read before the database so a commit in between invalidates the fill
		v, err := s.cache.WalletVersion(ctx, userID)
		if err != nil {
			logger.Log.Warnw("failed to read wallet cache version", "userID", userID, "error", err)
		} else {
			version, cacheable = v, true
		}
	}

	wallet, err := s.readRepo.GetByUserID(ctx, userID)
	if errors.Is(err, sql.ErrNoRows) {
		logger.Log.Infow("wallet missing, creating", "userID", userID)
		wallet, err = s.writeRepo.Create(ctx, userID)
	}
	if err != nil {
		logger.Log.Errorw("failed to get wallet", "userID", userID, "error", err)
		return nil, classify(err)
	}

	if cacheable {
		stored, err := s.cache.SetWalletIfVersion(ctx, wallet, version)
		switch {
		case err != nil:
			logger.Log.Warnw("failed to cache wallet", "userID", userID, "error", err)
		case !stored:
			logger.Log.Debugw("wallet changed while loading, not cached", "userID", userID)
		}
	}
	return wallet, nil
}

// ListMyTransactions returns a page of the user's own ledger entries, newest first.
func (s *WalletService) ListMyTransactions(ctx context.Context, userID uuid.UUID, f models.TransactionFilter) (models.PageResult[models.TransactionWithOwner], error) {
	f.UserID = &userID
	f.WalletID = nil
	f.Query = ""
	return s.ListTransactions(ctx, f)
}

// ListTransactions returns a page of ledger entries matching the filter.
func (s *WalletService) ListTransactions(ctx context.Context, f models.TransactionFilter) (models.PageResult[models.TransactionWithOwner], error) {
	if f.Type != "" && !models.ValidTransactionType(f.Type) {
		return models.PageResult[models.TransactionWithOwner]{}, ErrInvalidInput
	}
	if f.Status != "" && !models.ValidTransactionStatus(f.Status) {
		return models.PageResult[models.TransactionWithOwner]{}, ErrInvalidInput
	}
	f.Page = f.Page.Normalize()

	items, total, err := s.ledgerR.List(ctx, f)
	if err != nil {
		logger.Log.Errorw("failed to list transactions", "error", err)
		return models.PageResult[models.TransactionWithOwner]{}, classify(err)
	}
	return models.NewPageResult(items, f.Page, total), nil
}

// Deposit credits the user's wallet on behalf of an admin.
// Deposits are accepted for wallets in any status.
func (s *WalletService) Deposit(ctx context.Context, adminID, userID uuid.UUID, amount decimal.Decimal, description string) (*models.WalletDB, *models.TransactionDB, error) {
	return s.adjust(ctx, adminID, userID, models.TransactionTypeDeposit, amount, description)
}

// Withdraw debits the user's wallet on behalf of an admin.
func (s *WalletService) Withdraw(ctx context.Context, adminID, userID uuid.UUID, amount decimal.Decimal, description string) (*models.WalletDB, *models.TransactionDB, error) {
	return s.adjust(ctx, adminID, userID, models.TransactionTypeWithdraw, amount, description)
}

func (s *WalletService) adjust(ctx context.Context, adminID, userID uuid.UUID, typ string, amount decimal.Decimal, description string) (*models.WalletDB, *models.TransactionDB, error) {
	if !validAmount(amount) {
		return nil, nil, ErrInvalidInput
	}
	description = strings.TrimSpace(description)
	if description == "" {
		description = "Admin " + typ
	}

	var (
		wallet *models.WalletDB
		entry  *models.TransactionDB
	)
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		w, err := s.readRepo.GetByUserIDForUpdate(ctx, userID)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		var change models.BalanceChange
		if typ == models.TransactionTypeDeposit {
			change, err = s.writeRepo.Credit(ctx, w.WalletID, amount)
		} else {
			if w.Balance.LessThan(amount) {
				return &InsufficientFundsError{Balance: w.Balance, Required: amount}
			}
			change, err = s.writeRepo.Debit(ctx, w.WalletID, amount)
			if errors.Is(err, sql.ErrNoRows) {
				return &InsufficientFundsError{Balance: w.Balance, Required: amount}
			}
		}
		if err != nil {
			return err
		}

		e := &models.TransactionDB{
			TransactionID: uuid.New(),
			WalletID:      w.WalletID,
			Type:          typ,
			Amount:        amount,
			Description:   description,
			Status:        models.TransactionStatusCompleted,
			BalanceBefore: change.Before,
			BalanceAfter:  change.After,
			CreatedBy:     &adminID,
		}
		if err := s.ledgerW.Insert(ctx, e); err != nil {
			return err
		}

		w.Balance = change.After
		wallet, entry = w, e
		return nil
	})
	if err != nil {
		logger.Log.Errorw("failed to adjust wallet", "operation", typ, "userID", userID, "amount", amount, "error", err)
		return nil, nil, classify(err)
	}

	logger.Log.Infow("wallet adjusted", "operation", typ, "userID", userID, "adminID", adminID,
		"amount", amount, "balance_after", entry.BalanceAfter)
	s.notify.committed(ctx, userID, entry)
	return wallet, entry, nil
}

// SetWalletStatus changes the wallet status. The balance is untouched.
func (s *WalletService) SetWalletStatus(ctx context.Context, walletID uuid.UUID, status string) (*models.WalletDB, error) {
	if !models.ValidWalletStatus(status) {
		return nil, ErrInvalidInput
	}

	wallet, err := s.writeRepo.SetStatus(ctx, walletID, status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		logger.Log.Errorw("failed to set wallet status", "walletID", walletID, "status", status, "error", err)
		return nil, classify(err)
	}

	logger.Log.Infow("wallet status changed", "walletID", walletID, "status", status)
	s.notify.invalidate(ctx, wallet.UserID)
	return wallet, nil
}
