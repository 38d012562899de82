package handlers

//go:generate mockgen -source=my_wallet.go -destination=my_wallet_mock.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-wallet-payments/internal/models"
)

// MyWalletGetter defines the interface for reading the caller's wallet.
type MyWalletGetter interface {
	GetMyWallet(ctx context.Context, userID uuid.UUID) (*models.WalletDB, error)
}

// NewMyWalletHandler returns the authenticated user's wallet.
// @Summary Get my wallet
// @Description Returns the wallet of the authenticated user, creating it on first access
// @Tags wallet
// @Produce json
// @Success 200 {object} SuccessResponse{data=models.WalletDB}
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /wallet/my-wallet [get]
// @Security Bearer
func NewMyWalletHandler(svc MyWalletGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsOrFail(w, r)
		if !ok {
			return
		}

		wallet, err := svc.GetMyWallet(r.Context(), claims.UserID)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeData(w, r, http.StatusOK, wallet)
	}
}

// RegisterMyWalletHandler registers the route for reading the caller's wallet.
func RegisterMyWalletHandler(r chi.Router, h http.HandlerFunc) {
	r.Get("/wallet/my-wallet", h)
}
