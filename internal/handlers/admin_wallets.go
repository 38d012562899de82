package handlers

//go:generate mockgen -source=admin_wallets.go -destination=admin_wallets_mock.go -package=handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/sbilibin2017/gw-wallet-payments/internal/models"
)

// WalletLister defines the interface for the admin wallet listing.
type WalletLister interface {
	ListWallets(ctx context.Context, f models.WalletFilter) (models.PageResult[models.WalletWithOwner], error)
}

// NewAdminWalletsHandler lists wallets with their owners.
// @Summary List wallets
// @Description Admin listing of wallets filtered by status, owner text and creation date
// @Tags admin
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Param status query string false "active, inactive or suspended"
// @Param q query string false "Matches username, email or full name"
// @Param from query string false "Created at or after, RFC3339 or YYYY-MM-DD"
// @Param to query string false "Created at or before, RFC3339 or YYYY-MM-DD"
// @Success 200 {object} SuccessResponse{data=models.PageResult[models.WalletWithOwner]}
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /wallet/admin/wallets [get]
// @Security Bearer
func NewAdminWalletsHandler(svc WalletLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := queryPage(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		f := models.WalletFilter{
			Page:   page,
			Status: r.URL.Query().Get("status"),
			Query:  strings.TrimSpace(r.URL.Query().Get("q")),
		}
		if f.From, f.To, err = queryRange(r); err != nil {
			writeError(w, r, err)
			return
		}

		result, err := svc.ListWallets(r.Context(), f)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeData(w, r, http.StatusOK, result)
	}
}

// RegisterAdminWalletsHandler registers the admin wallet listing route.
func RegisterAdminWalletsHandler(r chi.Router, h http.HandlerFunc) {
	r.Get("/wallet/admin/wallets", h)
}
