// Package storage persists workouts by name. FileStore keeps one YAML
// record per workout in a directory; SQLiteStore and PostgresStore keep
// them in database tables.
package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/akyro/liftlog/internal/config"
	"github.com/akyro/liftlog/internal/models"
)

var (
	// ErrNotFound means no record exists for the requested name.
	ErrNotFound = errors.New("workout not found")
	// ErrCorruptRecord means a record exists but cannot be parsed into a
	// valid workout.
	ErrCorruptRecord = errors.New("corrupt workout record")
	// ErrIO wraps faults from the underlying storage medium.
	ErrIO = errors.New("storage I/O failure")
)

// Store saves, loads, lists and deletes workouts keyed by name.
//
// Save replaces any existing record with the same name and never leaves a
// partially written record visible. Load never returns a partially
// populated workout: it returns ErrNotFound or ErrCorruptRecord instead.
// Delete returns ErrNotFound when there is nothing to delete.
type Store interface {
	Save(ctx context.Context, w *models.Workout) error
	Load(ctx context.Context, name string) (*models.Workout, error)
	List(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, name string) error
	Close() error
}

// Compile-time checks: every backend satisfies Store.
var (
	_ Store = (*FileStore)(nil)
	_ Store = (*SQLiteStore)(nil)
	_ Store = (*PostgresStore)(nil)
)

// Open returns the backend selected by cfg.Driver.
func Open(ctx context.Context, cfg config.StorageConfig, log *slog.Logger) (Store, error) {
	switch cfg.Driver {
	case config.DriverFile, "":
		return NewFileStore(cfg.Dir, log)
	case config.DriverSQLite:
		return NewSQLiteStore(cfg.SQLitePath, log)
	case config.DriverPostgres:
		return NewPostgresStore(ctx, cfg.Postgres.DSN(), log)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

func ioErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrIO, err)
}

func corruptErr(name string, err error) error {
	return fmt.Errorf("workout %q: %w: %w", name, ErrCorruptRecord, err)
}

func notFoundErr(name string) error {
	return fmt.Errorf("workout %q: %w", name, ErrNotFound)
}
