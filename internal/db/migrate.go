package db

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/tern/v2/migrate"
	"github.com/sirupsen/logrus"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const versionTable = "public.schema_version"

func migrationFiles() (fs.FS, error) {
	return fs.Sub(migrationsFS, "migrations")
}

// loadMigrator reads the embedded migrations into a tern migrator. A nil conn
// loads without touching the database.
func loadMigrator(ctx context.Context, conn *pgx.Conn) (*migrate.Migrator, error) {
	m, err := migrate.NewMigrator(ctx, conn, versionTable)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrator: %w", err)
	}

	files, err := migrationFiles()
	if err != nil {
		return nil, fmt.Errorf("failed to open migrations: %w", err)
	}

	if err := m.LoadMigrations(files); err != nil {
		return nil, fmt.Errorf("failed to load migrations: %w", err)
	}

	return m, nil
}

// RunMigrations brings the schema up to the latest embedded migration.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool, logger *logrus.Logger) error {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer conn.Release()

	m, err := loadMigrator(ctx, conn.Conn())
	if err != nil {
		return err
	}

	m.OnStart = func(sequence int32, name, direction, _ string) {
		logger.WithFields(logrus.Fields{
			"sequence":  sequence,
			"migration": name,
			"direction": direction,
		}).Info("applying migration")
	}

	if err := m.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	version, err := m.GetCurrentVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	logger.WithField("version", version).Info("schema up to date")

	return nil
}
