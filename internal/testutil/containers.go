// Package testutil starts throwaway PostgreSQL and Redis containers for integration tests.
package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/gw-wallet-payments/internal/migrations"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// SetupPostgres starts PostgreSQL, applies the schema migrations and returns a pool.
func SetupPostgres(t *testing.T) (*sqlx.DB, func()) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_PASSWORD": "secret", "POSTGRES_DB": "testdb", "POSTGRES_USER": "postgres"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://postgres:secret@%s:%s/testdb?sslmode=disable", host, port.Port())
	db, err := sqlx.Connect("pgx", dsn)
	require.NoError(t, err)

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	require.NoError(t, migrations.Up(db.DB))

	return db, func() {
		db.Close()
		container.Terminate(ctx)
	}
}

// SetupRedis starts Redis and returns a connected client.
func SetupRedis(t *testing.T) (*redis.Client, func()) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7.0-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp"),
	}
	redisC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := redisC.Host(ctx)
	require.NoError(t, err)
	port, err := redisC.MappedPort(ctx, "6379")
	require.NoError(t, err)

	rdb := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%s", host, port.Port()),
	})
	require.NoError(t, rdb.Ping(ctx).Err())

	return rdb, func() {
		rdb.Close()
		redisC.Terminate(ctx)
	}
}

// InsertUser inserts a user and returns its id.
func InsertUser(t *testing.T, db *sqlx.DB, username, role string) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := db.Exec(`INSERT INTO users (id, username, email, full_name, password_hash, role) VALUES ($1, $2, $3, $4, $5, $6)`,
		id, username, username+"@example.com", username, "hash", role)
	require.NoError(t, err)
	return id
}

// InsertWallet inserts a wallet with the given balance and status and returns its id.
func InsertWallet(t *testing.T, db *sqlx.DB, userID uuid.UUID, balance, status string) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := db.Exec(`INSERT INTO wallets (id, user_id, balance, status) VALUES ($1, $2, $3, $4)`, id, userID, balance, status)
	require.NoError(t, err)
	return id
}

// InsertOrder inserts an order with one line item for total and returns its id.
func InsertOrder(t *testing.T, db *sqlx.DB, userID uuid.UUID, total, status string) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := db.Exec(`INSERT INTO orders (id, user_id, total_amount, status) VALUES ($1, $2, $3, $4)`, id, userID, total, status)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO order_items (id, order_id, product_id, quantity, unit_price) VALUES ($1, $2, $3, 1, $4)`,
		uuid.New(), id, "sku-1", total)
	require.NoError(t, err)
	return id
}

// Balance reads the wallet balance of the user.
func Balance(t *testing.T, db *sqlx.DB, userID uuid.UUID) decimal.Decimal {
	t.Helper()
	var balance decimal.Decimal
	require.NoError(t, db.Get(&balance, `SELECT balance FROM wallets WHERE user_id = $1`, userID))
	return balance
}

// OrderStatus reads the order status.
func OrderStatus(t *testing.T, db *sqlx.DB, orderID uuid.UUID) string {
	t.Helper()
	var status string
	require.NoError(t, db.Get(&status, `SELECT status FROM orders WHERE id = $1`, orderID))
	return status
}
