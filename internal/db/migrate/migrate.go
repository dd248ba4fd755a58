// Package migrate applies the embedded goose migrations.
package migrate

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	migrations "github.com/gokatarajesh/trivia-api/db"
)

const (
	CommandUp     = "up"
	CommandDown   = "down"
	CommandStatus = "status"
)

func init() {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetTableName("goose_db_version")
}

// Run executes one goose command against db.
func Run(ctx context.Context, db *sql.DB, command string) error {
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	switch command {
	case CommandUp:
		return goose.UpContext(ctx, db, migrations.MigrationsDir)
	case CommandDown:
		return goose.DownContext(ctx, db, migrations.MigrationsDir)
	case CommandStatus:
		return goose.StatusContext(ctx, db, migrations.MigrationsDir)
	default:
		return fmt.Errorf("unknown migration command %q (use up, down or status)", command)
	}
}
