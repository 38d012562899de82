package services

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-wallet-payments/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestNotifier_CommittedPublishesWithBoundedContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	cache := NewMockWalletCache(ctrl)
	publisher := NewMockEventPublisher(ctrl)
	n := notifier{cache: cache, publisher: publisher}

	// the request context is already gone when the side effects run
	reqCtx, cancel := context.WithCancel(context.Background())
	cancel()

	cache.EXPECT().DeleteWallet(gomock.Any(), userID).Return(nil)
	publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, ev models.Transaction) error {
			assert.NoError(t, ctx.Err())
			deadline, ok := ctx.Deadline()
			assert.True(t, ok)
			assert.LessOrEqual(t, time.Until(deadline), publishTimeout)
			assert.Equal(t, userID.String(), ev.UserID)
			return nil
		})

	n.committed(reqCtx, userID, &models.TransactionDB{
		TransactionID: uuid.New(),
		WalletID:      uuid.New(),
		Type:          models.TransactionTypeDeposit,
		Amount:        dec("10"),
	})
}

func TestNotifier_NilDependencies(t *testing.T) {
	n := notifier{}
	assert.NotPanics(t, func() {
		n.committed(context.Background(), uuid.New(), &models.TransactionDB{Type: models.TransactionTypeDeposit, Amount: dec("1")})
	})
}
