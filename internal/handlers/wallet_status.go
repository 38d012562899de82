package handlers

//go:generate mockgen -source=wallet_status.go -destination=wallet_status_mock.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-wallet-payments/internal/models"
)

// WalletStatusSetter defines the interface for changing a wallet's status.
type WalletStatusSetter interface {
	SetWalletStatus(ctx context.Context, walletID uuid.UUID, status string) (*models.WalletDB, error)
}

// StatusRequest is the body of status change requests.
// swagger:model StatusRequest
type StatusRequest struct {
	// New status
	// required: true
	Status string `json:"status"`
}

// NewWalletStatusHandler activates, deactivates or suspends a wallet.
// @Summary Set wallet status
// @Description Admin change of a wallet's status. The balance is not touched.
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Wallet ID"
// @Param request body StatusRequest true "New status"
// @Success 200 {object} SuccessResponse{data=models.WalletDB}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /wallet/admin/wallets/{id}/status [patch]
// @Security Bearer
func NewWalletStatusHandler(svc WalletStatusSetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		walletID, err := pathUUID(r, "id")
		if err != nil {
			writeError(w, r, err)
			return
		}

		var req StatusRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, r, err)
			return
		}

		wallet, err := svc.SetWalletStatus(r.Context(), walletID, req.Status)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeData(w, r, http.StatusOK, wallet)
	}
}

// RegisterWalletStatusHandler registers the wallet status route.
func RegisterWalletStatusHandler(r chi.Router, h http.HandlerFunc) {
	r.Patch("/wallet/admin/wallets/{id}/status", h)
}
