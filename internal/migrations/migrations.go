package migrations

import (
	"database/sql"
	"embed"
	"errors"

	"github.com/golang-migrate/migrate/v4"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/sbilibin2017/gw-wallet-payments/internal/logger"
)

//go:embed sql/*.sql
var files embed.FS

// Up applies all pending schema migrations to db.
func Up(db *sql.DB) error {
	src, err := iofs.New(files, "sql")
	if err != nil {
		return err
	}

	driver, err := pgxmigrate.WithInstance(db, &pgxmigrate.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithInstance("iofs", src, "pgx5", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Log.Infow("schema is up to date")
		return nil
	}
	if err != nil {
		return err
	}

	version, dirty, _ := m.Version()
	logger.Log.Infow("schema migrated", "version", version, "dirty", dirty)
	return nil
}
