package handlers

//go:generate mockgen -source=my_transactions.go -destination=my_transactions_mock.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-wallet-payments/internal/models"
)

// MyTransactionsLister defines the interface for listing the caller's ledger entries.
type MyTransactionsLister interface {
	ListMyTransactions(ctx context.Context, userID uuid.UUID, f models.TransactionFilter) (models.PageResult[models.TransactionWithOwner], error)
}

// NewMyTransactionsHandler lists the authenticated user's ledger entries, newest first.
// @Summary List my transactions
// @Description Paginated ledger entries of the authenticated user
// @Tags wallet
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Param type query string false "deposit, withdraw, payment or refund"
// @Param status query string false "pending, completed, failed or cancelled"
// @Param from query string false "Start of range, RFC3339 or YYYY-MM-DD"
// @Param to query string false "End of range, RFC3339 or YYYY-MM-DD"
// @Success 200 {object} SuccessResponse{data=models.PageResult[models.TransactionWithOwner]}
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /wallet/my-transactions [get]
// @Security Bearer
func NewMyTransactionsHandler(svc MyTransactionsLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsOrFail(w, r)
		if !ok {
			return
		}

		f, err := queryTransactionFilter(r)
		if err != nil {
			writeError(w, r, err)
			return
		}

		page, err := svc.ListMyTransactions(r.Context(), claims.UserID, f)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeData(w, r, http.StatusOK, page)
	}
}

// RegisterMyTransactionsHandler registers the route for the caller's ledger.
func RegisterMyTransactionsHandler(r chi.Router, h http.HandlerFunc) {
	r.Get("/wallet/my-transactions", h)
}
