package storage

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/akyro/liftlog/internal/models"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// PostgresStore keeps workouts in PostgreSQL. Each Save runs in a single
// transaction, so a replacement is all-or-nothing.
type PostgresStore struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

// NewPostgresStore applies pending migrations, then opens a connection pool
// to dsn and checks it with a ping.
func NewPostgresStore(ctx context.Context, dsn string, log *slog.Logger) (*PostgresStore, error) {
	if err := RunMigrations(dsn); err != nil {
		return nil, ioErr("migrating postgres", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, ioErr("creating pool", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, ioErr("pinging database", err)
	}
	return &PostgresStore{pool: pool, log: log}, nil
}

// RunMigrations applies every pending migration embedded in the binary.
func RunMigrations(dsn string) error {
	src, err := iofs.New(migrationFS, "migrations")
	if err != nil {
		return fmt.Errorf("loading migrations: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, dsn)
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}

// Save validates w and replaces its rows in one transaction.
func (s *PostgresStore) Save(ctx context.Context, w *models.Workout) error {
	if err := w.Validate(); err != nil {
		return err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return ioErr("beginning transaction", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`INSERT INTO workouts (name) VALUES ($1)
		 ON CONFLICT (name) DO UPDATE SET updated_at = now()`,
		w.Name); err != nil {
		return ioErr(fmt.Sprintf("upserting workout %q", w.Name), err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM exercises WHERE workout_name = $1`, w.Name); err != nil {
		return ioErr(fmt.Sprintf("clearing exercises for %q", w.Name), err)
	}

	batch := &pgx.Batch{}
	for _, r := range models.ExerciseRows(w) {
		batch.Queue(
			`INSERT INTO exercises (workout_name, position, name, sets, reps, weight, muscle_group)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			r.WorkoutName, r.Position, r.Name, r.Sets, r.Reps, r.Weight, r.MuscleGroup)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return ioErr(fmt.Sprintf("inserting exercises for %q", w.Name), err)
	}

	if err := tx.Commit(ctx); err != nil {
		return ioErr(fmt.Sprintf("committing workout %q", w.Name), err)
	}
	s.log.Debug("workout saved", "name", w.Name, "exercises", w.Size())
	return nil
}

// Load reads the workout and its exercises in position order.
func (s *PostgresStore) Load(ctx context.Context, name string) (*models.Workout, error) {
	var row models.WorkoutRow
	err := s.pool.QueryRow(ctx,
		`SELECT name, created_at, updated_at FROM workouts WHERE name = $1`, name,
	).Scan(&row.Name, &row.CreatedAt, &row.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFoundErr(name)
		}
		return nil, ioErr(fmt.Sprintf("querying workout %q", name), err)
	}

	rows, err := s.pool.Query(ctx,
		`SELECT workout_name, position, name, sets, reps, weight, muscle_group
		 FROM exercises WHERE workout_name = $1 ORDER BY position ASC`, name)
	if err != nil {
		return nil, ioErr(fmt.Sprintf("querying exercises for %q", name), err)
	}
	defer rows.Close()

	w := models.NewWorkout(row.Name)
	for rows.Next() {
		var r models.ExerciseRow
		if err := rows.Scan(&r.WorkoutName, &r.Position, &r.Name, &r.Sets, &r.Reps, &r.Weight, &r.MuscleGroup); err != nil {
			return nil, corruptErr(name, fmt.Errorf("scanning exercise: %w", err))
		}
		if r.Position != w.Size() {
			return nil, corruptErr(name, fmt.Errorf("exercise position %d, want %d", r.Position, w.Size()))
		}
		w.AddExercise(r.Exercise())
	}
	if err := rows.Err(); err != nil {
		return nil, ioErr(fmt.Sprintf("reading exercises for %q", name), err)
	}

	if err := w.Validate(); err != nil {
		s.log.Warn("corrupt workout record", "name", name, "error", err)
		return nil, corruptErr(name, err)
	}
	return w, nil
}

// List returns every workout name in byte order, matching the other
// backends regardless of the database collation.
func (s *PostgresStore) List(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT name FROM workouts ORDER BY name COLLATE "C" ASC`)
	if err != nil {
		return nil, ioErr("listing workouts", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, ioErr("scanning workout name", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, ioErr("listing workouts", err)
	}
	return names, nil
}

// Delete removes the workout; its exercises go with it via ON DELETE CASCADE.
func (s *PostgresStore) Delete(ctx context.Context, name string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM workouts WHERE name = $1`, name)
	if err != nil {
		return ioErr(fmt.Sprintf("deleting workout %q", name), err)
	}
	if tag.RowsAffected() == 0 {
		return notFoundErr(name)
	}
	s.log.Debug("workout deleted", "name", name)
	return nil
}

// Close closes the connection pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
