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

func TestAdminWalletsHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockWalletLister(ctrl)
	handler := NewAdminWalletsHandler(mockSvc)
	adminID := uuid.New()

	t.Run("filters", func(t *testing.T) {
		mockSvc.EXPECT().
			ListWallets(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, f models.WalletFilter) (models.PageResult[models.WalletWithOwner], error) {
				assert.Equal(t, models.WalletStatusSuspended, f.Status)
				assert.Equal(t, "anna", f.Query)
				assert.Equal(t, models.DefaultLimit, f.Limit)
				assert.NotNil(t, f.From)
				items := []models.WalletWithOwner{{Username: "anna"}}
				return models.NewPageResult(items, f.Page, 1), nil
			})

		rec := serve(RegisterAdminWalletsHandler, handler,
			newRequest(http.MethodGet, "/wallet/admin/wallets?status=suspended&q=anna&from=2024-01-01", nil, adminID, adminRole))

		assert.Equal(t, http.StatusOK, rec.Code)
		var got models.PageResult[models.WalletWithOwner]
		decodeData(t, decodeEnvelope(t, rec), &got)
		require.Len(t, got.Items, 1)
		assert.Equal(t, "anna", got.Items[0].Username)
	})

	t.Run("bad_limit", func(t *testing.T) {
		rec := serve(RegisterAdminWalletsHandler, handler,
			newRequest(http.MethodGet, "/wallet/admin/wallets?limit=ten", nil, adminID, adminRole))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
