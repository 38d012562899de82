package handlers

//go:generate mockgen -source=withdraw.go -destination=withdraw_mock.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-wallet-payments/internal/models"
	"github.com/shopspring/decimal"
)

// WalletWithdrawer defines the interface for admin deductions.
type WalletWithdrawer interface {
	Withdraw(ctx context.Context, adminID, userID uuid.UUID, amount decimal.Decimal, description string) (*models.WalletDB, *models.TransactionDB, error)
}

// NewWithdrawHandler debits a user's wallet.
// @Summary Withdraw funds
// @Description Admin deduction from a user's wallet
// @Tags admin
// @Accept json
// @Produce json
// @Param request body AdjustRequest true "Withdraw request"
// @Success 200 {object} SuccessResponse{data=AdjustResponse}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "Insufficient balance"
// @Router /wallet/admin/withdraw [post]
// @Security Bearer
func NewWithdrawHandler(svc WalletWithdrawer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsOrFail(w, r)
		if !ok {
			return
		}

		var req AdjustRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, r, err)
			return
		}
		userID, err := parseUUID("userId", req.UserID)
		if err != nil {
			writeError(w, r, err)
			return
		}

		wallet, entry, err := svc.Withdraw(r.Context(), claims.UserID, userID, req.Amount, req.Description)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeData(w, r, http.StatusOK, AdjustResponse{Wallet: wallet, Transaction: entry})
	}
}

// RegisterWithdrawHandler registers the admin withdraw route.
func RegisterWithdrawHandler(r chi.Router, h http.HandlerFunc) {
	r.Post("/wallet/admin/withdraw", h)
}
