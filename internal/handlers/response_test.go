package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-wallet-payments/internal/models"
	"github.com/sbilibin2017/gw-wallet-payments/internal/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
		check          func(t *testing.T, env envelope)
	}{
		{
			name:           "not_found",
			err:            services.ErrNotFound,
			expectedStatus: http.StatusNotFound,
			expectedCode:   CodeNotFound,
		},
		{
			name:           "invalid_state_with_status",
			err:            fmt.Errorf("pay: %w", &services.InvalidStateError{Status: models.OrderStatusConfirmed}),
			expectedStatus: http.StatusConflict,
			expectedCode:   CodeInvalidState,
			check: func(t *testing.T, env envelope) {
				assert.Equal(t, models.OrderStatusConfirmed, env.CurrentStatus)
			},
		},
		{
			name:           "wallet_unavailable",
			err:            services.ErrWalletUnavailable,
			expectedStatus: http.StatusForbidden,
			expectedCode:   CodeWalletUnavailable,
		},
		{
			name: "insufficient_funds_with_amounts",
			err: &services.InsufficientFundsError{
				Balance:  decimal.NewFromInt(50000),
				Required: decimal.NewFromInt(60000),
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedCode:   CodeInsufficientFunds,
			check: func(t *testing.T, env envelope) {
				assert.Equal(t, "Insufficient balance", env.Message)
				assert.Equal(t, "50000", env.Balance)
				assert.Equal(t, "60000", env.Required)
			},
		},
		{
			name:           "transient",
			err:            fmt.Errorf("%w: %w", services.ErrTransient, errors.New("deadlock detected")),
			expectedStatus: http.StatusServiceUnavailable,
			expectedCode:   CodeTransient,
			check: func(t *testing.T, env envelope) {
				assert.Equal(t, services.ErrTransient.Error(), env.Message)
			},
		},
		{
			name:           "invalid_input",
			err:            services.ErrInvalidInput,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   CodeInvalidInput,
		},
		{
			name:           "user_exists",
			err:            services.ErrUserAlreadyExists,
			expectedStatus: http.StatusConflict,
			expectedCode:   CodeUserExists,
		},
		{
			name:           "unknown_user_hidden_as_invalid_credentials",
			err:            services.ErrUserDoesNotExist,
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   CodeUnauthorized,
			check: func(t *testing.T, env envelope) {
				assert.Equal(t, services.ErrInvalidCredentials.Error(), env.Message)
			},
		},
		{
			name:           "internal",
			err:            errors.New("connection refused"),
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   CodeInternal,
			check: func(t *testing.T, env envelope) {
				assert.Equal(t, internalErrorMessage, env.Message)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			env := decodeEnvelope(t, rec)
			assert.False(t, env.Success)
			assert.Equal(t, tt.expectedCode, env.Code)
			if tt.check != nil {
				tt.check(t, env)
			}
		})
	}
}

func TestQueryTransactionFilter(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet,
		"/?page=2&limit=500&type=payment&status=completed&q=%20anna%20&from=2024-01-01&to=2024-01-31T10:00:00Z", nil)

	f, err := queryTransactionFilter(req)
	require.NoError(t, err)

	assert.Equal(t, 2, f.Page.Page)
	assert.Equal(t, models.MaxLimit, f.Limit)
	assert.Equal(t, models.TransactionTypePayment, f.Type)
	assert.Equal(t, models.TransactionStatusCompleted, f.Status)
	assert.Equal(t, "anna", f.Query)
	require.NotNil(t, f.From)
	require.NotNil(t, f.To)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), *f.From)
	assert.Equal(t, time.Date(2024, 1, 31, 10, 0, 0, 0, time.UTC), *f.To)
}

func TestQueryTime(t *testing.T) {
	t.Run("bare_to_date_covers_whole_day", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/?to=2024-03-05", nil)
		got, err := queryTime(req, "to", true)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 3, 5, 23, 59, 59, 999999999, time.UTC), *got)
	})

	t.Run("empty", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		got, err := queryTime(req, "from", false)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("invalid", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/?from=yesterday", nil)
		_, err := queryTime(req, "from", false)
		assert.ErrorIs(t, err, services.ErrInvalidInput)
	})
}

func TestQueryPage_Invalid(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?page=abc", nil)
	_, err := queryPage(req)
	assert.ErrorIs(t, err, services.ErrInvalidInput)
}

func TestQueryPage_HugePageIsClamped(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?page=9223372036854775807&limit=20", nil)
	page, err := queryPage(req)
	require.NoError(t, err)
	assert.Equal(t, models.MaxPage, page.Page)
	assert.GreaterOrEqual(t, page.Offset(), 0)
}

func TestQueryUUID(t *testing.T) {
	id := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/?user_id="+id.String(), nil)
	got, err := queryUUID(req, "user_id")
	require.NoError(t, err)
	assert.Equal(t, id, *got)

	req = httptest.NewRequest(http.MethodGet, "/?user_id=nope", nil)
	_, err = queryUUID(req, "user_id")
	assert.ErrorIs(t, err, services.ErrInvalidInput)
}
