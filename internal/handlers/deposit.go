package handlers

//go:generate mockgen -source=deposit.go -destination=deposit_mock.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-wallet-payments/internal/models"
	"github.com/shopspring/decimal"
)

// WalletDepositor defines the interface for admin top-ups.
type WalletDepositor interface {
	Deposit(ctx context.Context, adminID, userID uuid.UUID, amount decimal.Decimal, description string) (*models.WalletDB, *models.TransactionDB, error)
}

// AdjustRequest is the body of admin deposit and withdraw requests.
// swagger:model AdjustRequest
type AdjustRequest struct {
	// Wallet owner
	// required: true
	UserID string `json:"userId"`
	// Positive amount with at most two decimal places
	// required: true
	// example: 50000
	Amount decimal.Decimal `json:"amount" swaggertype:"number"`
	// Free text stored on the ledger entry
	Description string `json:"description"`
}

// AdjustResponse carries the wallet and the recorded ledger entry.
// swagger:model AdjustResponse
type AdjustResponse struct {
	Wallet      *models.WalletDB      `json:"wallet"`
	Transaction *models.TransactionDB `json:"transaction"`
}

// NewDepositHandler credits a user's wallet.
// @Summary Deposit funds
// @Description Admin top-up of a user's wallet
// @Tags admin
// @Accept json
// @Produce json
// @Param request body AdjustRequest true "Deposit request"
// @Success 200 {object} SuccessResponse{data=AdjustResponse}
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /wallet/admin/deposit [post]
// @Security Bearer
func NewDepositHandler(svc WalletDepositor) http.HandlerFunc {
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

		wallet, entry, err := svc.Deposit(r.Context(), claims.UserID, userID, req.Amount, req.Description)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeData(w, r, http.StatusOK, AdjustResponse{Wallet: wallet, Transaction: entry})
	}
}

// RegisterDepositHandler registers the admin deposit route.
func RegisterDepositHandler(r chi.Router, h http.HandlerFunc) {
	r.Post("/wallet/admin/deposit", h)
}
