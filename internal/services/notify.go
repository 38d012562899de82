package services

//go:generate mockgen -source=notify.go -destination=notify_mock.go -package=services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-wallet-payments/internal/logger"
	"github.com/sbilibin2017/gw-wallet-payments/internal/metrics"
	"github.com/sbilibin2017/gw-wallet-payments/internal/models"
)

// publishTimeout bounds event publishing after commit.
const publishTimeout = 2 * time.Second

// EventPublisher publishes committed ledger entries.
type EventPublisher interface {
	Publish(ctx context.Context, ev models.Transaction) error
}

// notifier runs the side effects of a committed balance change.
// Failures are logged and never reported to the caller, the ledger is already durable.
type notifier struct {
	cache     WalletCache
	publisher EventPublisher
}

func (n notifier) invalidate(ctx context.Context, userID uuid.UUID) {
	if n.cache == nil {
		return
	}
	if err := n.cache.DeleteWallet(ctx, userID); err != nil {
		logger.Log.Warnw("failed to invalidate wallet cache", "userID", userID, "error", err)
	}
}

func (n notifier) committed(ctx context.Context, userID uuid.UUID, entry *models.TransactionDB) {
	n.invalidate(ctx, userID)
	metrics.ObserveLedgerEntry(entry.Type, entry.Amount)

	if n.publisher == nil {
		return
	}
	// the request may finish before the broker answers
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := n.publisher.Publish(ctx, models.NewTransactionEvent(entry, userID)); err != nil {
		logger.Log.Errorw("failed to publish ledger entry", "transaction_id", entry.TransactionID, "error", err)
	}
}
