package repositories

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-wallet-payments/internal/models"
	"github.com/sbilibin2017/gw-wallet-payments/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserWriteRepository_Save(t *testing.T) {
	db, teardown := testutil.SetupPostgres(t)
	defer teardown()

	repo := NewUserWriteRepository(db, GetTxFromContext)
	ctx := context.Background()

	id, err := repo.Save(ctx, &models.UserDB{Username: "alice", Email: "alice@example.com", FullName: "Alice", PasswordHash: "hash"})
	require.NoError(t, err)

	user, err := NewUserReadRepository(db).GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, "Alice", user.FullName)
	assert.Equal(t, "hash", user.PasswordHash)
	assert.Equal(t, models.RoleUser, user.Role)

	_, err = repo.Save(ctx, &models.UserDB{Username: "alice", Email: "other@example.com", PasswordHash: "hash"})
	assert.Error(t, err)
}

func TestUserReadRepository_GetByUsernameOrEmail(t *testing.T) {
	db, teardown := testutil.SetupPostgres(t)
	defer teardown()

	writeRepo := NewUserWriteRepository(db, GetTxFromContext)
	readRepo := NewUserReadRepository(db)
	ctx := context.Background()

	_, err := writeRepo.Save(ctx, &models.UserDB{Username: "charlie", Email: "charlie@example.com", PasswordHash: "secret"})
	require.NoError(t, err)
	_, err = writeRepo.Save(ctx, &models.UserDB{Username: "dave", Email: "dave@example.com", PasswordHash: "secret2", Role: models.RoleAdmin})
	require.NoError(t, err)

	t.Run("ByUsername", func(t *testing.T) {
		username := "charlie"
		user, err := readRepo.GetByUsernameOrEmail(ctx, &username, nil)
		assert.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "charlie", user.Username)
	})

	t.Run("ByEmail", func(t *testing.T) {
		email := "dave@example.com"
		user, err := readRepo.GetByUsernameOrEmail(ctx, nil, &email)
		assert.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "dave", user.Username)
		assert.Equal(t, models.RoleAdmin, user.Role)
	})

	t.Run("UsernameTakenEmailFree", func(t *testing.T) {
		username := "charlie"
		email := "new@example.com"
		user, err := readRepo.GetByUsernameOrEmail(ctx, &username, &email)
		assert.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "charlie", user.Username)
	})

	t.Run("NotFound", func(t *testing.T) {
		username := "nonexistent"
		user, err := readRepo.GetByUsernameOrEmail(ctx, &username, nil)
		assert.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("GetByIDNotFound", func(t *testing.T) {
		_, err := readRepo.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}
