package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-wallet-payments/internal/jwt"
	"github.com/sbilibin2017/gw-wallet-payments/internal/logger"
	"github.com/sbilibin2017/gw-wallet-payments/internal/models"
	"github.com/sbilibin2017/gw-wallet-payments/internal/services"
	"github.com/shopspring/decimal"
)

// Error codes returned in the failure envelope
const (
	CodeNotFound          = "NOT_FOUND"
	CodeInvalidState      = "INVALID_STATE"
	CodeWalletUnavailable = "WALLET_UNAVAILABLE"
	CodeInsufficientFunds = "INSUFFICIENT_FUNDS"
	CodeTransient         = "TRANSIENT"
	CodeInvalidInput      = "INVALID_INPUT"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeUserExists        = "USER_EXISTS"
	CodeInternal          = "INTERNAL"
)

const (
	internalErrorMessage = "Internal server error"
	invalidBodyMessage   = "invalid request body"
	unauthorizedMessage  = "Unauthorized"
	dateLayout           = "2006-01-02"
)

// SuccessResponse is the envelope for successful responses.
type SuccessResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// ErrorResponse is the envelope for failed responses.
type ErrorResponse struct {
	Success       bool             `json:"success"`
	Message       string           `json:"message"`
	Code          string           `json:"code"`
	CurrentStatus string           `json:"current_status,omitempty"`
	Balance       *decimal.Decimal `json:"balance,omitempty"`
	Required      *decimal.Decimal `json:"required,omitempty"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	render.Status(r, status)
	render.JSON(w, r, v)
}

func writeData(w http.ResponseWriter, r *http.Request, status int, data any) {
	writeJSON(w, r, status, SuccessResponse{Success: true, Data: data})
}

func writeFailure(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	writeJSON(w, r, status, ErrorResponse{Message: message, Code: code})
}

// writeError maps a service error onto the failure envelope.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	resp := ErrorResponse{Message: err.Error()}
	status := http.StatusInternalServerError

	var stateErr *services.InvalidStateError
	var fundsErr *services.InsufficientFundsError

	switch {
	case errors.As(err, &stateErr):
		status, resp.Code = http.StatusConflict, CodeInvalidState
		resp.CurrentStatus = stateErr.Status
	case errors.As(err, &fundsErr):
		status, resp.Code = http.StatusUnprocessableEntity, CodeInsufficientFunds
		resp.Message = "Insufficient balance"
		resp.Balance, resp.Required = &fundsErr.Balance, &fundsErr.Required
	case errors.Is(err, services.ErrInsufficientFunds):
		status, resp.Code = http.StatusUnprocessableEntity, CodeInsufficientFunds
	case errors.Is(err, services.ErrInvalidState):
		status, resp.Code = http.StatusConflict, CodeInvalidState
	case errors.Is(err, services.ErrNotFound):
		status, resp.Code = http.StatusNotFound, CodeNotFound
	case errors.Is(err, services.ErrWalletUnavailable):
		status, resp.Code = http.StatusForbidden, CodeWalletUnavailable
	case errors.Is(err, services.ErrTransient):
		status, resp.Code = http.StatusServiceUnavailable, CodeTransient
		resp.Message = services.ErrTransient.Error()
	case errors.Is(err, services.ErrInvalidInput):
		status, resp.Code = http.StatusBadRequest, CodeInvalidInput
	case errors.Is(err, services.ErrUserAlreadyExists):
		status, resp.Code = http.StatusConflict, CodeUserExists
	case errors.Is(err, services.ErrUserDoesNotExist), errors.Is(err, services.ErrInvalidCredentials):
		status, resp.Code = http.StatusUnauthorized, CodeUnauthorized
		resp.Message = services.ErrInvalidCredentials.Error()
	default:
		resp.Code = CodeInternal
		resp.Message = internalErrorMessage
	}

	if status >= http.StatusInternalServerError {
		logger.Log.Errorw("request failed", "method", r.Method, "uri", r.RequestURI, "err", err)
	}
	writeJSON(w, r, status, resp)
}

func decodeJSON(r *http.Request, v any) error {
	if err := render.DecodeJSON(r.Body, v); err != nil {
		return fmt.Errorf("%w: %s", services.ErrInvalidInput, invalidBodyMessage)
	}
	return nil
}

// claimsOrFail returns the caller's claims or writes 401.
func claimsOrFail(w http.ResponseWriter, r *http.Request) (*jwt.Claims, bool) {
	claims, ok := jwt.ClaimsFromContext(r.Context())
	if !ok {
		writeFailure(w, r, http.StatusUnauthorized, CodeUnauthorized, unauthorizedMessage)
		return nil, false
	}
	return claims, true
}

func isAdmin(claims *jwt.Claims) bool {
	return claims.Role == models.RoleAdmin
}

func parseUUID(name, value string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s must be a valid uuid", services.ErrInvalidInput, name)
	}
	return id, nil
}

func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	return parseUUID(name, chi.URLParam(r, name))
}

func queryUUID(r *http.Request, name string) (*uuid.UUID, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil, nil
	}
	id, err := parseUUID(name, v)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func queryInt(r *http.Request, name string) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", services.ErrInvalidInput, name)
	}
	return n, nil
}

func queryPage(r *http.Request) (models.Page, error) {
	page, err := queryInt(r, "page")
	if err != nil {
		return models.Page{}, err
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		return models.Page{}, err
	}
	return models.Page{Page: page, Limit: limit}.Normalize(), nil
}

// queryTime accepts RFC3339 or a bare date. A bare "to" date covers the whole day.
func queryTime(r *http.Request, name string, endOfDay bool) (*time.Time, error) {
	v := strings.TrimSpace(r.URL.Query().Get(name))
	if v == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return &t, nil
	}
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be RFC3339 or YYYY-MM-DD", services.ErrInvalidInput, name)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

func queryRange(r *http.Request) (from, to *time.Time, err error) {
	if from, err = queryTime(r, "from", false); err != nil {
		return nil, nil, err
	}
	if to, err = queryTime(r, "to", true); err != nil {
		return nil, nil, err
	}
	return from, to, nil
}

// queryTransactionFilter reads the shared ledger listing filters.
func queryTransactionFilter(r *http.Request) (models.TransactionFilter, error) {
	var f models.TransactionFilter
	page, err := queryPage(r)
	if err != nil {
		return f, err
	}
	f.Page = page

	q := r.URL.Query()
	f.Type = q.Get("type")
	f.Status = q.Get("status")
	f.Query = strings.TrimSpace(q.Get("q"))

	if f.From, f.To, err = queryRange(r); err != nil {
		return f, err
	}
	return f, nil
}
