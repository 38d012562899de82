package handlers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-wallet-payments/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMyWalletHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockMyWalletGetter(ctrl)
	handler := NewMyWalletHandler(mockSvc)
	userID := uuid.New()

	t.Run("success", func(t *testing.T) {
		wallet := &models.WalletDB{
			WalletID: uuid.New(),
			UserID:   userID,
			Balance:  decimal.NewFromInt(100000),
			Status:   models.WalletStatusActive,
		}
		mockSvc.EXPECT().GetMyWallet(gomock.Any(), userID).Return(wallet, nil)

		rec := serve(RegisterMyWalletHandler, handler, newRequest(http.MethodGet, "/wallet/my-wallet", nil, userID, userRole))

		assert.Equal(t, http.StatusOK, rec.Code)
		var got models.WalletDB
		decodeData(t, decodeEnvelope(t, rec), &got)
		assert.Equal(t, wallet.WalletID, got.WalletID)
		assert.True(t, wallet.Balance.Equal(got.Balance))
	})

	t.Run("no_claims", func(t *testing.T) {
		rec := serve(RegisterMyWalletHandler, handler, newRequest(http.MethodGet, "/wallet/my-wallet", nil, uuid.Nil, ""))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("internal_error", func(t *testing.T) {
		mockSvc.EXPECT().GetMyWallet(gomock.Any(), userID).Return(nil, errors.New("db down"))

		rec := serve(RegisterMyWalletHandler, handler, newRequest(http.MethodGet, "/wallet/my-wallet", nil, userID, userRole))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, CodeInternal, decodeEnvelope(t, rec).Code)
	})
}
