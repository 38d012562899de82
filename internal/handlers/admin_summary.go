package handlers

//go:generate mockgen -source=admin_summary.go -destination=admin_summary_mock.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sbilibin2017/gw-wallet-payments/internal/models"
)

// SummaryGetter defines the interface for the admin aggregates.
type SummaryGetter interface {
	Summary(ctx context.Context) (*models.Summary, error)
}

// NewAdminSummaryHandler returns wallet and ledger aggregates.
// @Summary Wallet summary
// @Description Total balance, wallet count and completed entry totals per type
// @Tags admin
// @Produce json
// @Success 200 {object} SuccessResponse{data=models.Summary}
// @Failure 403 {object} ErrorResponse
// @Router /wallet/admin/summary [get]
// @Security Bearer
func NewAdminSummaryHandler(svc SummaryGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := svc.Summary(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeData(w, r, http.StatusOK, summary)
	}
}

// RegisterAdminSummaryHandler registers the admin summary route.
func RegisterAdminSummaryHandler(r chi.Router, h http.HandlerFunc) {
	r.Get("/wallet/admin/summary", h)
}
