package handlers

import (
	"net/http"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-wallet-payments/internal/models"
	"github.com/sbilibin2017/gw-wallet-payments/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestMyTransactionsHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockMyTransactionsLister(ctrl)
	handler := NewMyTransactionsHandler(mockSvc)
	userID := uuid.New()

	t.Run("passes_filters", func(t *testing.T) {
		mockSvc.EXPECT().
			ListMyTransactions(gomock.Any(), userID, gomock.Any()).
			DoAndReturn(func(_ any, _ uuid.UUID, f models.TransactionFilter) (models.PageResult[models.TransactionWithOwner], error) {
				assert.Equal(t, 3, f.Page.Page)
				assert.Equal(t, 10, f.Limit)
				assert.Equal(t, models.TransactionTypeRefund, f.Type)
				assert.NotNil(t, f.From)
				assert.Nil(t, f.To)
				return models.NewPageResult([]models.TransactionWithOwner{}, f.Page, 21), nil
			})

		rec := serve(RegisterMyTransactionsHandler, handler,
			newRequest(http.MethodGet, "/wallet/my-transactions?page=3&limit=10&type=refund&from=2024-05-01", nil, userID, userRole))

		assert.Equal(t, http.StatusOK, rec.Code)
		var got models.PageResult[models.TransactionWithOwner]
		decodeData(t, decodeEnvelope(t, rec), &got)
		assert.Equal(t, int64(21), got.Total)
		assert.Equal(t, 3, got.TotalPages)
		assert.Empty(t, got.Items)
	})

	t.Run("bad_date", func(t *testing.T) {
		rec := serve(RegisterMyTransactionsHandler, handler,
			newRequest(http.MethodGet, "/wallet/my-transactions?to=31-01-2024", nil, userID, userRole))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("bad_type", func(t *testing.T) {
		mockSvc.EXPECT().
			ListMyTransactions(gomock.Any(), userID, gomock.Any()).
			Return(models.PageResult[models.TransactionWithOwner]{}, services.ErrInvalidInput)

		rec := serve(RegisterMyTransactionsHandler, handler,
			newRequest(http.MethodGet, "/wallet/my-transactions?type=gift", nil, userID, userRole))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
