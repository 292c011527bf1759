package testutils

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"

	alliancemigrations "github.com/Panther-Scouting/reef-scout/app/modules/alliance/infrastructure/repositories/migrations"
	fieldmigrations "github.com/Panther-Scouting/reef-scout/app/modules/field/infrastructure/repositories/migrations"
	statsmigrations "github.com/Panther-Scouting/reef-scout/app/modules/stats/infrastructure/repositories/migrations"
	teammigrations "github.com/Panther-Scouting/reef-scout/app/modules/team/infrastructure/repositories/migrations"
	"github.com/Panther-Scouting/reef-scout/integration_tests/containers"
)

// TestDB bundles a migrated database with the container backing it.
type TestDB struct {
	DB        *bun.DB
	ConnStr   string
	container *postgres.PostgresContainer
}

// SetupTestDB starts a Postgres container and runs every module migration.
func SetupTestDB(ctx context.Context) (*TestDB, error) {
	container, connStr, err := containers.SetupPostgresContainer(ctx)
	if err != nil {
		return nil, err
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(connStr)))
	db := bun.NewDB(sqldb, pgdialect.New())

	if err := runMigrations(ctx, db); err != nil {
		db.Close()
		container.Terminate(ctx)
		return nil, err
	}

	return &TestDB{DB: db, ConnStr: connStr, container: container}, nil
}

// Teardown closes the connection and stops the container.
func (t *TestDB) Teardown(ctx context.Context) {
	t.DB.Close()
	t.container.Terminate(ctx)
}

func runMigrations(ctx context.Context, db *bun.DB) error {
	modules := []struct {
		name       string
		migrations *migrate.Migrations
	}{
		{"team", teammigrations.Migrations},
		{"alliance", alliancemigrations.Migrations},
		{"stats", statsmigrations.Migrations},
		{"field", fieldmigrations.Migrations},
	}

	for _, mod := range modules {
		migrator := migrate.NewMigrator(db, mod.migrations)
		if err := migrator.Init(ctx); err != nil {
			return fmt.Errorf("failed to initialize migration tables for %s: %w", mod.name, err)
		}
		if _, err := migrator.Migrate(ctx); err != nil {
			return fmt.Errorf("failed to run %s migrations: %w", mod.name, err)
		}
	}
	return nil
}
