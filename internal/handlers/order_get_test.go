package handlers

import (
	"net/http"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-wallet-payments/internal/models"
	"github.com/sbilibin2017/gw-wallet-payments/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrderHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockOrderGetter(ctrl)
	handler := NewGetOrderHandler(mockSvc)
	userID := uuid.New()
	orderID := uuid.New()

	t.Run("owner", func(t *testing.T) {
		mockSvc.EXPECT().GetOrder(gomock.Any(), userID, orderID, false).
			Return(&models.OrderDB{OrderID: orderID, Items: []models.OrderItemDB{{ProductID: "sku-1"}}}, nil)

		rec := serve(RegisterGetOrderHandler, handler, newRequest(http.MethodGet, "/orders/"+orderID.String(), nil, userID, userRole))

		assert.Equal(t, http.StatusOK, rec.Code)
		var got models.OrderDB
		decodeData(t, decodeEnvelope(t, rec), &got)
		require.Len(t, got.Items, 1)
	})

	t.Run("admin_reads_any", func(t *testing.T) {
		adminID := uuid.New()
		mockSvc.EXPECT().GetOrder(gomock.Any(), adminID, orderID, true).Return(&models.OrderDB{OrderID: orderID}, nil)

		rec := serve(RegisterGetOrderHandler, handler, newRequest(http.MethodGet, "/orders/"+orderID.String(), nil, adminID, adminRole))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("someone_elses", func(t *testing.T) {
		mockSvc.EXPECT().GetOrder(gomock.Any(), userID, orderID, false).Return(nil, services.ErrNotFound)

		rec := serve(RegisterGetOrderHandler, handler, newRequest(http.MethodGet, "/orders/"+orderID.String(), nil, userID, userRole))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("bad_id", func(t *testing.T) {
		rec := serve(RegisterGetOrderHandler, handler, newRequest(http.MethodGet, "/orders/123", nil, userID, userRole))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
