package services

//go:generate mockgen -source=auth.go -destination=auth_mock.go -package=services

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-wallet-payments/internal/logger"
	"github.com/sbilibin2017/gw-wallet-payments/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// Error variables
var (
	ErrUserAlreadyExists  = errors.New("username or email already exists")
	ErrUserDoesNotExist   = errors.New("username does not exist")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

const minPasswordLength = 6

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByUsernameOrEmail(ctx context.Context, username *string, email *string) (*models.UserDB, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Save(ctx context.Context, user *models.UserDB) (uuid.UUID, error)
}

// WalletCreator opens the wallet of a new user.
type WalletCreator interface {
	Create(ctx context.Context, userID uuid.UUID) (*models.WalletDB, error)
}

// JWTGenerator defines an interface for generating JWT tokens.
type JWTGenerator interface {
	Generate(ctx context.Context, userID uuid.UUID, role string) (string, error)
}

// RegisterInput holds the registration form.
type RegisterInput struct {
	Username string
	Password string
	Email    string
	FullName string
}

// AuthService handles registration and login.
type AuthService struct {
	tx      TxManager
	reader  UserReader
	writer  UserWriter
	wallets WalletCreator
	jwt     JWTGenerator
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(tx TxManager, reader UserReader, writer UserWriter, wallets WalletCreator, jwt JWTGenerator) *AuthService {
	return &AuthService{
		tx:      tx,
		reader:  reader,
		writer:  writer,
		wallets: wallets,
		jwt:     jwt,
	}
}

// Register creates a user with role user and an empty active wallet in one transaction.
func (svc *AuthService) Register(ctx context.Context, in RegisterInput) (uuid.UUID, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	if in.Username == "" || len(in.Password) < minPasswordLength {
		return uuid.Nil, ErrInvalidInput
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return uuid.Nil, ErrInvalidInput
	}

	user, err := svc.reader.GetByUsernameOrEmail(ctx, &in.Username, &in.Email)
	if err != nil {
		logger.Log.Errorw("failed to check user exists", "err", err)
		return uuid.Nil, err
	}
	if user != nil {
		logger.Log.Errorw("user already exists", "username", in.Username, "email", in.Email)
		return uuid.Nil, ErrUserAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return uuid.Nil, err
	}

	var userID uuid.UUID
	err = svc.tx.WithinTx(ctx, func(ctx context.Context) error {
		id, err := svc.writer.Save(ctx, &models.UserDB{
			Username:     in.Username,
			Email:        in.Email,
			FullName:     strings.TrimSpace(in.FullName),
			PasswordHash: string(hashedPassword),
			Role:         models.RoleUser,
		})
		if err != nil {
			if isUniqueViolation(err) {
				return ErrUserAlreadyExists
			}
			return err
		}
		if _, err := svc.wallets.Create(ctx, id); err != nil {
			return err
		}
		userID = id
		return nil
	})
	if err != nil {
		logger.Log.Errorw("failed to save user", "err", err)
		return uuid.Nil, classify(err)
	}

	logger.Log.Infow("user registered", "userID", userID, "username", in.Username)
	return userID, nil
}

// Login authenticates a user and returns a JWT token carrying the user's role.
func (svc *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := svc.reader.GetByUsernameOrEmail(ctx, &username, nil)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return "", err
	}
	if user == nil {
		logger.Log.Errorw("user does not exist", "username", username)
		return "", ErrUserDoesNotExist
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Log.Errorw("invalid credentials", "username", username)
		return "", ErrInvalidCredentials
	}

	token, err := svc.jwt.Generate(ctx, user.UserID, user.Role)
	if err != nil {
		logger.Log.Errorw("failed to generate JWT", "err", err)
		return "", err
	}

	return token, nil
}
