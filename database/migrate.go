// Package database holds the schema of the Postgres table backend.
package database

import (
	"context"
	_ "embed"

	"github.com/ougirez/statdash/internal/pkg/store/xpgx"
)

//go:embed migrations/000001_init.up.sql
var initMigrationUp string

//go:embed migrations/000001_init.down.sql
var initMigrationDown string

// MigrateUp creates the sheet tables; it is safe to run repeatedly.
func MigrateUp(ctx context.Context, db xpgx.Querier) error {
	_, err := db.Exec(ctx, initMigrationUp)
	return err
}

func MigrateDown(ctx context.Context, db xpgx.Querier) error {
	_, err := db.Exec(ctx, initMigrationDown)
	return err
}
