package cli

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"notekeeper/internal/migrations"
	"notekeeper/internal/repositories/notes"
	"notekeeper/internal/repositories/users"

	_ "modernc.org/sqlite"
)

// Repositories bundles the local stores opened over one database handle.
type Repositories struct {
	Notes notes.Repository
	Users users.Repository
	DB    *sql.DB
}

// RunMigrations applies the embedded schema migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens the local SQLite file, migrates it and returns the
// repositories over it.
func InitDatabase(ctx context.Context, dsn string) (*Repositories, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		return nil, err
	}

	return &Repositories{
		Notes: notes.NewSQLiteRepository(db),
		Users: users.NewSQLiteRepository(db),
		DB:    db,
	}, nil
}
