package handlers

import (
	"net/http"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-wallet-payments/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminSummaryHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockSummaryGetter(ctrl)
	handler := NewAdminSummaryHandler(mockSvc)

	mockSvc.EXPECT().Summary(gomock.Any()).Return(&models.Summary{
		WalletCount:  3,
		TotalBalance: decimal.NewFromInt(150000),
		ByType: []models.TypeTotal{
			{Type: models.TransactionTypeDeposit, Count: 2, Amount: decimal.NewFromInt(210000)},
		},
	}, nil)

	rec := serve(RegisterAdminSummaryHandler, handler,
		newRequest(http.MethodGet, "/wallet/admin/summary", nil, uuid.New(), adminRole))

	assert.Equal(t, http.StatusOK, rec.Code)
	var got models.Summary
	decodeData(t, decodeEnvelope(t, rec), &got)
	assert.Equal(t, int64(3), got.WalletCount)
	assert.True(t, decimal.NewFromInt(150000).Equal(got.TotalBalance))
	require.Len(t, got.ByType, 1)
	assert.Equal(t, int64(2), got.ByType[0].Count)
}
