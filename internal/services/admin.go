package services

//go:generate mockgen -source=admin.go -destination=admin_mock.go -package=services

import (
	"context"

	"github.com/sbilibin2017/gw-wallet-payments/internal/logger"
	"github.com/sbilibin2017/gw-wallet-payments/internal/models"
)

// AdminReader defines the read-only admin queries over wallets.
type AdminReader interface {
	ListWallets(ctx context.Context, f models.WalletFilter) ([]models.WalletWithOwner, int64, error)
	Summary(ctx context.Context) (*models.Summary, error)
}

// SummaryCache caches the admin summary.
type SummaryCache interface {
	GetSummary(ctx context.Context) (*models.Summary, error)
	SetSummary(ctx context.Context, summary *models.Summary) error
}

// AdminService serves admin listings and aggregates. It never takes row locks.
type AdminService struct {
	reader AdminReader
	cache  SummaryCache
}

// NewAdminService creates a new AdminService. cache may be nil.
func NewAdminService(reader AdminReader, cache SummaryCache) *AdminService {
	return &AdminService{reader: reader, cache: cache}
}

// ListWallets returns a page of wallets with their owners.
func (s *AdminService) ListWallets(ctx context.Context, f models.WalletFilter) (models.PageResult[models.WalletWithOwner], error) {
	if f.Status != "" && !models.ValidWalletStatus(f.Status) {
		return models.PageResult[models.WalletWithOwner]{}, ErrInvalidInput
	}
	f.Page = f.Page.Normalize()

	wallets, total, err := s.reader.ListWallets(ctx, f)
	if err != nil {
		logger.Log.Errorw("failed to list wallets", "error", err)
		return models.PageResult[models.WalletWithOwner]{}, classify(err)
	}
	return models.NewPageResult(wallets, f.Page, total), nil
}

// Summary returns wallet and ledger aggregates, served from cache when fresh.
func (s *AdminService) Summary(ctx context.Context) (*models.Summary, error) {
	if s.cache != nil {
		if summary, err := s.cache.GetSummary(ctx); err == nil {
			return summary, nil
		}
	}

	summary, err := s.reader.Summary(ctx)
	if err != nil {
		logger.Log.Errorw("failed to compute summary", "error", err)
		return nil, classify(err)
	}

	if s.cache != nil {
		if err := s.cache.SetSummary(ctx, summary); err != nil {
			logger.Log.Warnw("failed to cache summary", "error", err)
		}
	}
	return summary, nil
}
