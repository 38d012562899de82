package handlers

import (
	"net/http"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-wallet-payments/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminTransactionsHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockTransactionLister(ctrl)
	handler := NewAdminTransactionsHandler(mockSvc)
	adminID := uuid.New()
	userID := uuid.New()
	orderID := uuid.New()

	t.Run("filters", func(t *testing.T) {
		mockSvc.EXPECT().
			ListTransactions(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, f models.TransactionFilter) (models.PageResult[models.TransactionWithOwner], error) {
				require.NotNil(t, f.UserID)
				require.NotNil(t, f.OrderID)
				assert.Equal(t, userID, *f.UserID)
				assert.Equal(t, orderID, *f.OrderID)
				assert.Nil(t, f.WalletID)
				assert.Equal(t, models.TransactionTypePayment, f.Type)
				return models.NewPageResult([]models.TransactionWithOwner(nil), f.Page, 0), nil
			})

		rec := serve(RegisterAdminTransactionsHandler, handler, newRequest(http.MethodGet,
			"/wallet/admin/transactions?type=payment&user_id="+userID.String()+"&order_id="+orderID.String(), nil, adminID, adminRole))

		assert.Equal(t, http.StatusOK, rec.Code)
		var got models.PageResult[models.TransactionWithOwner]
		decodeData(t, decodeEnvelope(t, rec), &got)
		assert.NotNil(t, got.Items)
		assert.Zero(t, got.Total)
	})

	t.Run("bad_user_id", func(t *testing.T) {
		rec := serve(RegisterAdminTransactionsHandler, handler,
			newRequest(http.MethodGet, "/wallet/admin/transactions?user_id=abc", nil, adminID, adminRole))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, CodeInvalidInput, decodeEnvelope(t, rec).Code)
	})
}
