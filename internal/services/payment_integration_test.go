package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-wallet-payments/internal/models"
	"github.com/sbilibin2017/gw-wallet-payments/internal/repositories"
	"github.com/sbilibin2017/gw-wallet-payments/internal/services"
	"github.com/sbilibin2017/gw-wallet-payments/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type integrationEnv struct {
	db       *sqlx.DB
	payments *services.PaymentService
	wallets  *services.WalletService
	ledger   *repositories.TransactionReadRepository
}

func newIntegrationEnv(t *testing.T) *integrationEnv {
	db, cleanup := testutil.SetupPostgres(t)
	t.Cleanup(cleanup)

	txGetter := repositories.GetTxFromContext
	txm := repositories.NewTxManager(db, 5*time.Second)
	orders := repositories.NewOrderRepository(db, txGetter)
	walletR := repositories.NewWalletReaderRepository(db, txGetter)
	walletW := repositories.NewWalletWriterRepository(db, txGetter)
	ledgerW := repositories.NewTransactionWriteRepository(db, txGetter)
	ledgerR := repositories.NewTransactionReadRepository(db, txGetter)

	return &integrationEnv{
		db:       db,
		payments: services.NewPaymentService(txm, orders, orders, walletR, walletW, ledgerW, ledgerR, nil, nil),
		wallets:  services.NewWalletService(txm, walletW, walletR, ledgerW, ledgerR, nil, nil),
		ledger:   ledgerR,
	}
}

func (e *integrationEnv) entries(t *testing.T, userID uuid.UUID) []models.TransactionWithOwner {
	items, _, err := e.ledger.List(context.Background(), models.TransactionFilter{
		Page:   models.Page{Page: 1, Limit: models.MaxLimit},
		UserID: &userID,
	})
	require.NoError(t, err)
	return items
}

func TestPayOrderWithWallet_Integration(t *testing.T) {
	env := newIntegrationEnv(t)
	ctx := context.Background()

	t.Run("sufficient balance", func(t *testing.T) {
		userID := testutil.InsertUser(t, env.db, "scenario1", models.RoleUser)
		testutil.InsertWallet(t, env.db, userID, "100000.00", models.WalletStatusActive)
		orderID := testutil.InsertOrder(t, env.db, userID, "60000.00", models.OrderStatusPending)

		wallet, order, err := env.payments.PayOrderWithWallet(ctx, orderID, userID)
		require.NoError(t, err)
		assert.True(t, wallet.Balance.Equal(decimal.NewFromInt(40000)))
		assert.Equal(t, models.OrderStatusConfirmed, order.Status)

		assert.True(t, testutil.Balance(t, env.db, userID).Equal(decimal.NewFromInt(40000)))
		assert.Equal(t, models.OrderStatusConfirmed, testutil.OrderStatus(t, env.db, orderID))

		entries := env.entries(t, userID)
		require.Len(t, entries, 1)
		e := entries[0]
		assert.Equal(t, models.TransactionTypePayment, e.Type)
		assert.Equal(t, models.TransactionStatusCompleted, e.Status)
		assert.True(t, e.Amount.Equal(decimal.NewFromInt(60000)))
		assert.True(t, e.BalanceBefore.Equal(decimal.NewFromInt(100000)))
		assert.True(t, e.BalanceAfter.Equal(decimal.NewFromInt(40000)))
		require.NotNil(t, e.OrderID)
		assert.Equal(t, orderID, *e.OrderID)

		// paying again hits the status gate
		_, _, err = env.payments.PayOrderWithWallet(ctx, orderID, userID)
		var stateErr *services.InvalidStateError
		require.ErrorAs(t, err, &stateErr)
		assert.Equal(t, models.OrderStatusConfirmed, stateErr.Status)
		assert.True(t, testutil.Balance(t, env.db, userID).Equal(decimal.NewFromInt(40000)))
		assert.Len(t, env.entries(t, userID), 1)
	})

	t.Run("insufficient balance", func(t *testing.T) {
		userID := testutil.InsertUser(t, env.db, "scenario2", models.RoleUser)
		testutil.InsertWallet(t, env.db, userID, "50000.00", models.WalletStatusActive)
		orderID := testutil.InsertOrder(t, env.db, userID, "60000.00", models.OrderStatusPending)

		_, _, err := env.payments.PayOrderWithWallet(ctx, orderID, userID)
		assert.ErrorIs(t, err, services.ErrInsufficientFunds)

		assert.True(t, testutil.Balance(t, env.db, userID).Equal(decimal.NewFromInt(50000)))
		assert.Equal(t, models.OrderStatusPending, testutil.OrderStatus(t, env.db, orderID))
		assert.Empty(t, env.entries(t, userID))
	})

	t.Run("suspended wallet", func(t *testing.T) {
		userID := testutil.InsertUser(t, env.db, "suspended", models.RoleUser)
		testutil.InsertWallet(t, env.db, userID, "100000.00", models.WalletStatusSuspended)
		orderID := testutil.InsertOrder(t, env.db, userID, "60000.00", models.OrderStatusPending)

		_, _, err := env.payments.PayOrderWithWallet(ctx, orderID, userID)
		assert.ErrorIs(t, err, services.ErrWalletUnavailable)
		assert.Equal(t, models.OrderStatusPending, testutil.OrderStatus(t, env.db, orderID))
	})

	t.Run("order of another user", func(t *testing.T) {
		ownerID := testutil.InsertUser(t, env.db, "owner", models.RoleUser)
		strangerID := testutil.InsertUser(t, env.db, "stranger", models.RoleUser)
		testutil.InsertWallet(t, env.db, strangerID, "100000.00", models.WalletStatusActive)
		orderID := testutil.InsertOrder(t, env.db, ownerID, "10.00", models.OrderStatusPending)

		_, _, err := env.payments.PayOrderWithWallet(ctx, orderID, strangerID)
		assert.ErrorIs(t, err, services.ErrNotFound)
	})
}

func TestPayOrderWithWallet_ConcurrentDoublePay(t *testing.T) {
	env := newIntegrationEnv(t)
	ctx := context.Background()

	userID := testutil.InsertUser(t, env.db, "racer", models.RoleUser)
	testutil.InsertWallet(t, env.db, userID, "100000.00", models.WalletStatusActive)
	orderID := testutil.InsertOrder(t, env.db, userID, "30000.00", models.OrderStatusPending)

	const attempts = 10
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	start := make(chan struct{})
	wg.Add(attempts)
	for i := 0; i < attempts; i++ {
		go func() {
			defer wg.Done()
			<-start
			_, _, err := env.payments.PayOrderWithWallet(ctx, orderID, userID)
			mu.Lock()
			errs = append(errs, err)
			mu.Unlock()
		}()
	}
	close(start)
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.True(t, errors.Is(err, services.ErrInvalidState) || errors.Is(err, services.ErrTransient), "unexpected error: %v", err)
	}
	assert.Equal(t, 1, succeeded)

	assert.True(t, testutil.Balance(t, env.db, userID).Equal(decimal.NewFromInt(70000)))
	assert.Equal(t, models.OrderStatusConfirmed, testutil.OrderStatus(t, env.db, orderID))

	payments, total, err := env.ledger.List(ctx, models.TransactionFilter{
		Page:    models.Page{Page: 1, Limit: 10},
		OrderID: &orderID,
		Type:    models.TransactionTypePayment,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, payments, 1)
}

// The signed sum of completed entries always equals the balance change.
func TestLedger_SignedSumMatchesBalance(t *testing.T) {
	env := newIntegrationEnv(t)
	ctx := context.Background()

	adminID := testutil.InsertUser(t, env.db, "admin", models.RoleAdmin)
	userID := testutil.InsertUser(t, env.db, "shopper", models.RoleUser)
	testutil.InsertWallet(t, env.db, userID, "0.00", models.WalletStatusActive)
	initial := testutil.Balance(t, env.db, userID)

	_, _, err := env.wallets.Deposit(ctx, adminID, userID, decimal.RequireFromString("1000.50"), "top up")
	require.NoError(t, err)
	_, _, err = env.wallets.Withdraw(ctx, adminID, userID, decimal.RequireFromString("0.50"), "correction")
	require.NoError(t, err)

	paid := testutil.InsertOrder(t, env.db, userID, "300.00", models.OrderStatusPending)
	_, _, err = env.payments.PayOrderWithWallet(ctx, paid, userID)
	require.NoError(t, err)

	refunded := testutil.InsertOrder(t, env.db, userID, "200.00", models.OrderStatusPending)
	_, _, err = env.payments.PayOrderWithWallet(ctx, refunded, userID)
	require.NoError(t, err)
	_, order, err := env.payments.RefundOrder(ctx, adminID, refunded, "out of stock")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, order.Status)

	tooBig := testutil.InsertOrder(t, env.db, userID, "5000.00", models.OrderStatusPending)
	_, _, err = env.payments.PayOrderWithWallet(ctx, tooBig, userID)
	require.ErrorIs(t, err, services.ErrInsufficientFunds)

	_, _, err = env.payments.RefundOrder(ctx, adminID, refunded, "again")
	require.ErrorIs(t, err, services.ErrInvalidState)

	sum := decimal.Zero
	for _, e := range env.entries(t, userID) {
		if e.Status == models.TransactionStatusCompleted {
			sum = sum.Add(e.SignedAmount())
		}
	}
	current := testutil.Balance(t, env.db, userID)
	assert.True(t, current.Equal(decimal.RequireFromString("700")), "balance %s", current)
	assert.True(t, sum.Equal(current.Sub(initial)), "sum %s", sum)
}
