package handlers

//go:generate mockgen -source=login.go -destination=login_mock.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Loginer defines the interface for authenticating users.
type Loginer interface {
	Login(ctx context.Context, username, password string) (string, error)
}

// LoginRequest represents the login payload.
// swagger:model LoginRequest
type LoginRequest struct {
	// Username of the user
	// required: true
	// example: john_doe
	Username string `json:"username"`
	// Password of the user
	// required: true
	// example: secret123
	Password string `json:"password"`
}

// LoginResponse carries the issued token.
// swagger:model LoginResponse
type LoginResponse struct {
	// JWT to be sent as a bearer token
	Token string `json:"token"`
}

// NewLoginHandler authenticates a user and returns a JWT.
// @Summary Login
// @Description Authenticate with username and password and receive a JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} SuccessResponse{data=LoginResponse}
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/login [post]
func NewLoginHandler(svc Loginer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, r, err)
			return
		}

		token, err := svc.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeData(w, r, http.StatusOK, LoginResponse{Token: token})
	}
}

// RegisterLoginHandler registers the login route.
func RegisterLoginHandler(r chi.Router, h http.HandlerFunc) {
	r.Post("/auth/login", h)
}
