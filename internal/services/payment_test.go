package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sbilibin2017/gw-wallet-payments/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type paymentMocks struct {
	tx        *MockTxManager
	orderR    *MockOrderReader
	orderW    *MockOrderWriter
	walletR   *MockWalletReader
	walletW   *MockWalletWriter
	ledgerW   *MockTransactionWriter
	ledgerR   *MockTransactionReader
	cache     *MockWalletCache
	publisher *MockEventPublisher
}

func newPaymentMocks(ctrl *gomock.Controller) *paymentMocks {
	return &paymentMocks{
		tx:        NewMockTxManager(ctrl),
		orderR:    NewMockOrderReader(ctrl),
		orderW:    NewMockOrderWriter(ctrl),
		walletR:   NewMockWalletReader(ctrl),
		walletW:   NewMockWalletWriter(ctrl),
		ledgerW:   NewMockTransactionWriter(ctrl),
		ledgerR:   NewMockTransactionReader(ctrl),
		cache:     NewMockWalletCache(ctrl),
		publisher: NewMockEventPublisher(ctrl),
	}
}

func (m *paymentMocks) service() *PaymentService {
	return NewPaymentService(m.tx, m.orderR, m.orderW, m.walletR, m.walletW, m.ledgerW, m.ledgerR, m.cache, m.publisher)
}

// runInTx makes the mock TxManager call fn directly.
func runInTx(tx *MockTxManager) {
	tx.EXPECT().WithinTx(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		})
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestPaymentService_PayOrderWithWallet(t *testing.T) {
	userID := uuid.New()
	orderID := uuid.New()
	walletID := uuid.New()

	pendingOrder := func() *models.OrderDB {
		return &models.OrderDB{OrderID: orderID, UserID: userID, TotalAmount: dec("60000"), Status: models.OrderStatusPending}
	}
	activeWallet := func(balance string) *models.WalletDB {
		return &models.WalletDB{WalletID: walletID, UserID: userID, Balance: dec(balance), Status: models.WalletStatusActive}
	}

	tests := []struct {
		name        string
		setupMocks  func(m *paymentMocks)
		wantErr     error
		wantStatus  string
		wantBalance string
	}{
		{
			name: "success",
			setupMocks: func(m *paymentMocks) {
				runInTx(m.tx)
				m.orderR.EXPECT().GetByIDForUpdate(gomock.Any(), orderID).Return(pendingOrder(), nil)
				m.walletR.EXPECT().GetByUserIDForUpdate(gomock.Any(), userID).Return(activeWallet("100000"), nil)
				m.walletW.EXPECT().Debit(gomock.Any(), walletID, dec("60000")).
					Return(models.BalanceChange{Before: dec("100000"), After: dec("40000")}, nil)
				m.ledgerW.EXPECT().Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, e *models.TransactionDB) error {
						assert.Equal(t, models.TransactionTypePayment, e.Type)
						assert.Equal(t, models.TransactionStatusCompleted, e.Status)
						assert.True(t, e.Amount.Equal(dec("60000")))
						assert.True(t, e.BalanceBefore.Equal(dec("100000")))
						assert.True(t, e.BalanceAfter.Equal(dec("40000")))
						require.NotNil(t, e.OrderID)
						assert.Equal(t, orderID, *e.OrderID)
						assert.Equal(t, &userID, e.CreatedBy)
						return nil
					})
				m.orderW.EXPECT().CompareAndSetStatus(gomock.Any(), orderID, models.OrderStatusPending, models.OrderStatusConfirmed).Return(true, nil)
				m.cache.EXPECT().DeleteWallet(gomock.Any(), userID).Return(nil)
				m.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, ev models.Transaction) error {
						assert.Equal(t, models.TransactionTypePayment, ev.Operation)
						assert.Equal(t, orderID.String(), ev.OrderID)
						return nil
					})
			},
			wantBalance: "40000",
		},
		{
			name: "publish failure does not fail the payment",
			setupMocks: func(m *paymentMocks) {
				runInTx(m.tx)
				m.orderR.EXPECT().GetByIDForUpdate(gomock.Any(), orderID).Return(pendingOrder(), nil)
				m.walletR.EXPECT().GetByUserIDForUpdate(gomock.Any(), userID).Return(activeWallet("60000"), nil)
				m.walletW.EXPECT().Debit(gomock.Any(), walletID, dec("60000")).
					Return(models.BalanceChange{Before: dec("60000"), After: dec("0")}, nil)
				m.ledgerW.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
				m.orderW.EXPECT().CompareAndSetStatus(gomock.Any(), orderID, models.OrderStatusPending, models.OrderStatusConfirmed).Return(true, nil)
				m.cache.EXPECT().DeleteWallet(gomock.Any(), userID).Return(errors.New("redis down"))
				m.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))
			},
			wantBalance: "0",
		},
		{
			name: "order not found",
			setupMocks: func(m *paymentMocks) {
				runInTx(m.tx)
				m.orderR.EXPECT().GetByIDForUpdate(gomock.Any(), orderID).Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrNotFound,
		},
		{
			name: "order of another user",
			setupMocks: func(m *paymentMocks) {
				runInTx(m.tx)
				o := pendingOrder()
				o.UserID = uuid.New()
				m.orderR.EXPECT().GetByIDForUpdate(gomock.Any(), orderID).Return(o, nil)
			},
			wantErr: ErrNotFound,
		},
		{
			name: "order already confirmed",
			setupMocks: func(m *paymentMocks) {
				runInTx(m.tx)
				o := pendingOrder()
				o.Status = models.OrderStatusConfirmed
				m.orderR.EXPECT().GetByIDForUpdate(gomock.Any(), orderID).Return(o, nil)
			},
			wantErr:    ErrInvalidState,
			wantStatus: models.OrderStatusConfirmed,
		},
		{
			name: "wallet missing",
			setupMocks: func(m *paymentMocks) {
				runInTx(m.tx)
				m.orderR.EXPECT().GetByIDForUpdate(gomock.Any(), orderID).Return(pendingOrder(), nil)
				m.walletR.EXPECT().GetByUserIDForUpdate(gomock.Any(), userID).Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrWalletUnavailable,
		},
		{
			name: "wallet suspended",
			setupMocks: func(m *paymentMocks) {
				runInTx(m.tx)
				w := activeWallet("100000")
				w.Status = models.WalletStatusSuspended
				m.orderR.EXPECT().GetByIDForUpdate(gomock.Any(), orderID).Return(pendingOrder(), nil)
				m.walletR.EXPECT().GetByUserIDForUpdate(gomock.Any(), userID).Return(w, nil)
			},
			wantErr: ErrWalletUnavailable,
		},
		{
			name: "insufficient funds",
			setupMocks: func(m *paymentMocks) {
				runInTx(m.tx)
				m.orderR.EXPECT().GetByIDForUpdate(gomock.Any(), orderID).Return(pendingOrder(), nil)
				m.walletR.EXPECT().GetByUserIDForUpdate(gomock.Any(), userID).Return(activeWallet("50000"), nil)
			},
			wantErr: ErrInsufficientFunds,
		},
		{
			name: "debit guard rejects",
			setupMocks: func(m *paymentMocks) {
				runInTx(m.tx)
				m.orderR.EXPECT().GetByIDForUpdate(gomock.Any(), orderID).Return(pendingOrder(), nil)
				m.walletR.EXPECT().GetByUserIDForUpdate(gomock.Any(), userID).Return(activeWallet("100000"), nil)
				m.walletW.EXPECT().Debit(gomock.Any(), walletID, dec("60000")).Return(models.BalanceChange{}, sql.ErrNoRows)
			},
			wantErr: ErrInsufficientFunds,
		},
		{
			name: "second payment entry for the order",
			setupMocks: func(m *paymentMocks) {
				runInTx(m.tx)
				m.orderR.EXPECT().GetByIDForUpdate(gomock.Any(), orderID).Return(pendingOrder(), nil)
				m.walletR.EXPECT().GetByUserIDForUpdate(gomock.Any(), userID).Return(activeWallet("100000"), nil)
				m.walletW.EXPECT().Debit(gomock.Any(), walletID, dec("60000")).
					Return(models.BalanceChange{Before: dec("100000"), After: dec("40000")}, nil)
				m.ledgerW.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(&pgconn.PgError{Code: "23505"})
			},
			wantErr:    ErrInvalidState,
			wantStatus: models.OrderStatusConfirmed,
		},
		{
			name: "ledger insert fails",
			setupMocks: func(m *paymentMocks) {
				runInTx(m.tx)
				m.orderR.EXPECT().GetByIDForUpdate(gomock.Any(), orderID).Return(pendingOrder(), nil)
				m.walletR.EXPECT().GetByUserIDForUpdate(gomock.Any(), userID).Return(activeWallet("100000"), nil)
				m.walletW.EXPECT().Debit(gomock.Any(), walletID, dec("60000")).
					Return(models.BalanceChange{Before: dec("100000"), After: dec("40000")}, nil)
				m.ledgerW.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))
			},
			wantErr: errors.New("disk full"),
		},
		{
			name: "order changed under the status gate",
			setupMocks: func(m *paymentMocks) {
				runInTx(m.tx)
				m.orderR.EXPECT().GetByIDForUpdate(gomock.Any(), orderID).Return(pendingOrder(), nil)
				m.walletR.EXPECT().GetByUserIDForUpdate(gomock.Any(), userID).Return(activeWallet("100000"), nil)
				m.walletW.EXPECT().Debit(gomock.Any(), walletID, dec("60000")).
					Return(models.BalanceChange{Before: dec("100000"), After: dec("40000")}, nil)
				m.ledgerW.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
				m.orderW.EXPECT().CompareAndSetStatus(gomock.Any(), orderID, models.OrderStatusPending, models.OrderStatusConfirmed).Return(false, nil)
				o := pendingOrder()
				o.Status = models.OrderStatusCancelled
				m.orderR.EXPECT().GetByID(gomock.Any(), orderID).Return(o, nil)
			},
			wantErr:    ErrInvalidState,
			wantStatus: models.OrderStatusCancelled,
		},
		{
			name: "deadlock is transient",
			setupMocks: func(m *paymentMocks) {
				runInTx(m.tx)
				m.orderR.EXPECT().GetByIDForUpdate(gomock.Any(), orderID).Return(nil, &pgconn.PgError{Code: "40P01"})
			},
			wantErr: ErrTransient,
		},
		{
			name: "transaction timeout is transient",
			setupMocks: func(m *paymentMocks) {
				m.tx.EXPECT().WithinTx(gomock.Any(), gomock.Any()).Return(context.DeadlineExceeded)
			},
			wantErr: ErrTransient,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			m := newPaymentMocks(ctrl)
			tt.setupMocks(m)

			wallet, order, err := m.service().PayOrderWithWallet(context.Background(), orderID, userID)
			if tt.wantErr != nil {
				require.Error(t, err)
				if errors.Is(err, tt.wantErr) {
					assert.ErrorIs(t, err, tt.wantErr)
				} else {
					assert.EqualError(t, err, tt.wantErr.Error())
				}
				if tt.wantStatus != "" {
					var stateErr *InvalidStateError
					require.ErrorAs(t, err, &stateErr)
					assert.Equal(t, tt.wantStatus, stateErr.Status)
				}
				assert.Nil(t, wallet)
				assert.Nil(t, order)
				return
			}

			require.NoError(t, err)
			assert.True(t, wallet.Balance.Equal(dec(tt.wantBalance)), "balance %s", wallet.Balance)
			assert.Equal(t, models.OrderStatusConfirmed, order.Status)
		})
	}
}

func TestPaymentService_PayOrderWithWallet_InsufficientFundsDetails(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID, orderID := uuid.New(), uuid.New()
	m := newPaymentMocks(ctrl)
	runInTx(m.tx)
	m.orderR.EXPECT().GetByIDForUpdate(gomock.Any(), orderID).
		Return(&models.OrderDB{OrderID: orderID, UserID: userID, TotalAmount: dec("60000"), Status: models.OrderStatusPending}, nil)
	m.walletR.EXPECT().GetByUserIDForUpdate(gomock.Any(), userID).
		Return(&models.WalletDB{WalletID: uuid.New(), UserID: userID, Balance: dec("50000"), Status: models.WalletStatusActive}, nil)

	_, _, err := m.service().PayOrderWithWallet(context.Background(), orderID, userID)

	var fundsErr *InsufficientFundsError
	require.ErrorAs(t, err, &fundsErr)
	assert.True(t, fundsErr.Balance.Equal(dec("50000")))
	assert.True(t, fundsErr.Required.Equal(dec("60000")))
}

func TestPaymentService_RefundOrder(t *testing.T) {
	adminID := uuid.New()
	userID := uuid.New()
	orderID := uuid.New()
	walletID := uuid.New()

	confirmedOrder := func() *models.OrderDB {
		return &models.OrderDB{OrderID: orderID, UserID: userID, TotalAmount: dec("60000"), Status: models.OrderStatusConfirmed}
	}
	payment := &models.TransactionDB{TransactionID: uuid.New(), WalletID: walletID, Type: models.TransactionTypePayment, Amount: dec("60000")}

	tests := []struct {
		name       string
		setupMocks func(m *paymentMocks)
		wantErr    error
		wantStatus string
	}{
		{
			name: "success",
			setupMocks: func(m *paymentMocks) {
				runInTx(m.tx)
				m.orderR.EXPECT().GetByIDForUpdate(gomock.Any(), orderID).Return(confirmedOrder(), nil)
				m.ledgerR.EXPECT().GetCompletedByOrder(gomock.Any(), orderID, models.TransactionTypePayment).Return(payment, nil)
				m.walletR.EXPECT().GetByUserIDForUpdate(gomock.Any(), userID).
					Return(&models.WalletDB{WalletID: walletID, UserID: userID, Balance: dec("40000"), Status: models.WalletStatusSuspended}, nil)
				m.walletW.EXPECT().Credit(gomock.Any(), walletID, dec("60000")).
					Return(models.BalanceChange{Before: dec("40000"), After: dec("100000")}, nil)
				m.ledgerW.EXPECT().Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, e *models.TransactionDB) error {
						assert.Equal(t, models.TransactionTypeRefund, e.Type)
						assert.Equal(t, &adminID, e.CreatedBy)
						assert.Contains(t, e.Description, "damaged")
						return nil
					})
				m.orderW.EXPECT().CompareAndSetStatus(gomock.Any(), orderID, models.OrderStatusConfirmed, models.OrderStatusCancelled).Return(true, nil)
				m.cache.EXPECT().DeleteWallet(gomock.Any(), userID).Return(nil)
				m.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "order not found",
			setupMocks: func(m *paymentMocks) {
				runInTx(m.tx)
				m.orderR.EXPECT().GetByIDForUpdate(gomock.Any(), orderID).Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrNotFound,
		},
		{
			name: "pending order",
			setupMocks: func(m *paymentMocks) {
				runInTx(m.tx)
				o := confirmedOrder()
				o.Status = models.OrderStatusPending
				m.orderR.EXPECT().GetByIDForUpdate(gomock.Any(), orderID).Return(o, nil)
			},
			wantErr:    ErrInvalidState,
			wantStatus: models.OrderStatusPending,
		},
		{
			name: "confirmed without payment",
			setupMocks: func(m *paymentMocks) {
				runInTx(m.tx)
				m.orderR.EXPECT().GetByIDForUpdate(gomock.Any(), orderID).Return(confirmedOrder(), nil)
				m.ledgerR.EXPECT().GetCompletedByOrder(gomock.Any(), orderID, models.TransactionTypePayment).Return(nil, sql.ErrNoRows)
			},
			wantErr:    ErrInvalidState,
			wantStatus: models.OrderStatusConfirmed,
		},
		{
			name: "already refunded",
			setupMocks: func(m *paymentMocks) {
				runInTx(m.tx)
				m.orderR.EXPECT().GetByIDForUpdate(gomock.Any(), orderID).Return(confirmedOrder(), nil)
				m.ledgerR.EXPECT().GetCompletedByOrder(gomock.Any(), orderID, models.TransactionTypePayment).Return(payment, nil)
				m.walletR.EXPECT().GetByUserIDForUpdate(gomock.Any(), userID).
					Return(&models.WalletDB{WalletID: walletID, UserID: userID, Balance: dec("40000"), Status: models.WalletStatusActive}, nil)
				m.walletW.EXPECT().Credit(gomock.Any(), walletID, dec("60000")).
					Return(models.BalanceChange{Before: dec("40000"), After: dec("100000")}, nil)
				m.ledgerW.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(&pgconn.PgError{Code: "23505"})
			},
			wantErr:    ErrInvalidState,
			wantStatus: models.OrderStatusCancelled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			m := newPaymentMocks(ctrl)
			tt.setupMocks(m)

			wallet, order, err := m.service().RefundOrder(context.Background(), adminID, orderID, " damaged ")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				if tt.wantStatus != "" {
					var stateErr *InvalidStateError
					require.ErrorAs(t, err, &stateErr)
					assert.Equal(t, tt.wantStatus, stateErr.Status)
				}
				return
			}

			require.NoError(t, err)
			assert.True(t, wallet.Balance.Equal(dec("100000")))
			assert.Equal(t, models.OrderStatusCancelled, order.Status)
		})
	}
}
