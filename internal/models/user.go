package models

import (
	"time"

	"github.com/google/uuid"
)

// Supported user roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// UserDB represents a user record in the database
type UserDB struct {
	UserID       uuid.UUID `json:"id" db:"id"`                 // Primary key
	Username     string    `json:"username" db:"username"`     // Unique username
	Email        string    `json:"email" db:"email"`           // Unique email
	FullName     string    `json:"full_name" db:"full_name"`   // Display name
	PasswordHash string    `json:"-" db:"password_hash"`       // Bcrypt hash
	Role         string    `json:"role" db:"role"`             // user or admin
	CreatedAt    time.Time `json:"created_at" db:"created_at"` // Creation timestamp
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"` // Last update timestamp
}
