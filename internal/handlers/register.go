package handlers

//go:generate mockgen -source=register.go -destination=register_mock.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-wallet-payments/internal/services"
)

// Registerer defines the interface for registering users.
type Registerer interface {
	Register(ctx context.Context, in services.RegisterInput) (uuid.UUID, error)
}

// RegisterRequest represents the request body for user registration.
// swagger:model RegisterRequest
type RegisterRequest struct {
	// Username of the user
	// required: true
	// example: john_doe
	Username string `json:"username"`
	// Password of the user
	// required: true
	// example: secret123
	Password string `json:"password"`
	// Email of the user
	// required: true
	// example: john@example.com
	Email string `json:"email"`
	// Display name of the user
	// example: John Doe
	FullName string `json:"full_name"`
}

// RegisterResponse represents the data returned after registration.
// swagger:model RegisterResponse
type RegisterResponse struct {
	// Identifier of the new user
	// example: 6f1c1f8e-2f0b-4b8e-9b4e-0c3f7c9a1d2e
	UserID uuid.UUID `json:"user_id"`
}

// NewRegisterHandler creates a user together with an empty wallet.
// @Summary Register a new user
// @Description Register a new user and create an empty wallet for them
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "User registration info"
// @Success 201 {object} SuccessResponse{data=RegisterResponse}
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /auth/register [post]
func NewRegisterHandler(svc Registerer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, r, err)
			return
		}

		userID, err := svc.Register(r.Context(), services.RegisterInput{
			Username: req.Username,
			Password: req.Password,
			Email:    req.Email,
			FullName: req.FullName,
		})
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeData(w, r, http.StatusCreated, RegisterResponse{UserID: userID})
	}
}

// RegisterRegisterHandler registers the registration route.
func RegisterRegisterHandler(r chi.Router, h http.HandlerFunc) {
	r.Post("/auth/register", h)
}
