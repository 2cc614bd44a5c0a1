package dbmigrate

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Run executes one goose command ("up", "down", "status", ...) against dbURL.
// goose keeps its own version table, so running "up" on a database that is
// already current is a no-op.
func Run(command string, dbURL string, dir string) error {
	if dbURL == "" {
		return errors.New("no database URL configured")
	}
	if dir == "" {
		dir = DefaultMigrationsDir
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("database unreachable: %w", err)
	}

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if err := goose.Run(command, db, dir); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}

	return nil
}
