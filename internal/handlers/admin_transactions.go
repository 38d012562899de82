package handlers

//go:generate mockgen -source=admin_transactions.go -destination=admin_transactions_mock.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sbilibin2017/gw-wallet-payments/internal/models"
)

// TransactionLister defines the interface for the admin ledger listing.
type TransactionLister interface {
	ListTransactions(ctx context.Context, f models.TransactionFilter) (models.PageResult[models.TransactionWithOwner], error)
}

// NewAdminTransactionsHandler lists ledger entries across all wallets, newest first.
// @Summary List transactions
// @Description Admin listing of ledger entries with owner details
// @Tags admin
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Param type query string false "deposit, withdraw, payment or refund"
// @Param status query string false "pending, completed, failed or cancelled"
// @Param q query string false "Matches owner username, email or description"
// @Param user_id query string false "Wallet owner"
// @Param wallet_id query string false "Wallet"
// @Param order_id query string false "Related order"
// @Param from query string false "Start of range, RFC3339 or YYYY-MM-DD"
// @Param to query string false "End of range, RFC3339 or YYYY-MM-DD"
// @Success 200 {object} SuccessResponse{data=models.PageResult[models.TransactionWithOwner]}
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /wallet/admin/transactions [get]
// @Security Bearer
func NewAdminTransactionsHandler(svc TransactionLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, err := queryTransactionFilter(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		if f.UserID, err = queryUUID(r, "user_id"); err != nil {
			writeError(w, r, err)
			return
		}
		if f.WalletID, err = queryUUID(r, "wallet_id"); err != nil {
			writeError(w, r, err)
			return
		}
		if f.OrderID, err = queryUUID(r, "order_id"); err != nil {
			writeError(w, r, err)
			return
		}

		result, err := svc.ListTransactions(r.Context(), f)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeData(w, r, http.StatusOK, result)
	}
}

// RegisterAdminTransactionsHandler registers the admin ledger listing route.
func RegisterAdminTransactionsHandler(r chi.Router, h http.HandlerFunc) {
	r.Get("/wallet/admin/transactions", h)
}
