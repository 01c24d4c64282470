// Package sqlitedb provides database/sql construction for the embedded
// SQLite backend (modernc.org/sqlite, cgo free).
package sqlitedb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jrazmi/todolist/sdk/environment"
	"modernc.org/sqlite"
)

// Options represents the exportable database configuration.
type Options struct {
	Path        string        `toml:"path" env:"SQLITE_PATH" default:"todolist.db"`
	BusyTimeout time.Duration `toml:"busy_timeout" env:"SQLITE_BUSY_TIMEOUT" default:"5s"`
}

// NewFromEnv opens the SQLite database configured from environment variables.
func NewFromEnv(prefix string) (*sql.DB, error) {
	var cfg Options
	if err := environment.ParseEnvTags(prefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing sqlite config: %w", err)
	}
	return Open(cfg)
}

// Open opens the SQLite database at the configured path. Use ":memory:" for
// an ephemeral database.
func Open(cfg Options) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)",
		cfg.Path, cfg.BusyTimeout.Milliseconds())

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	// The driver serializes writes; a single connection avoids SQLITE_BUSY
	// on concurrent writers.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite database: %w", err)
	}

	return db, nil
}

// StatusCheck returns nil if it can successfully talk to the database.
func StatusCheck(ctx context.Context, db *sql.DB) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Second)
		defer cancel()
	}

	return db.PingContext(ctx)
}

// IsUnavailable reports whether the error is a transient driver failure such
// as a locked or busy database, as opposed to a normal query outcome.
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var serr *sqlite.Error
	if errors.As(err, &serr) {
		// SQLITE_BUSY (5) and SQLITE_LOCKED (6).
		code := serr.Code() & 0xff
		return code == 5 || code == 6
	}

	return false
}
