package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/akyro/liftlog/internal/models"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS workouts (
	name       TEXT PRIMARY KEY,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE IF NOT EXISTS exercises (
	workout_name TEXT    NOT NULL,
	position     INTEGER NOT NULL,
	name         TEXT    NOT NULL,
	sets         INTEGER NOT NULL,
	reps         INTEGER NOT NULL,
	weight       REAL    NOT NULL,
	muscle_group TEXT    NOT NULL,
	PRIMARY KEY (workout_name, position)
);`

// SQLiteStore keeps workouts in a SQLite database. Each Save runs in a
// single transaction, so a replacement is all-or-nothing.
type SQLiteStore struct {
	db  *sql.DB
	log *slog.Logger
}

// NewSQLiteStore opens (or creates) the database at path.
func NewSQLiteStore(path string, log *slog.Logger) (*SQLiteStore, error) {
	if path == "" {
		return nil, errors.New("sqlite store: path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, ioErr(fmt.Sprintf("creating db dir %s", dir), err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, ioErr("opening sqlite db", err)
	}
	// One connection keeps every statement on the same database handle.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, ioErr("creating tables", err)
	}
	return &SQLiteStore{db: db, log: log}, nil
}

// Save validates w and replaces its rows in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, w *models.Workout) error {
	if err := w.Validate(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ioErr("beginning transaction", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO workouts (name) VALUES (?)
		 ON CONFLICT (name) DO UPDATE SET updated_at = CURRENT_TIMESTAMP`,
		w.Name); err != nil {
		return ioErr(fmt.Sprintf("upserting workout %q", w.Name), err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM exercises WHERE workout_name = ?`, w.Name); err != nil {
		return ioErr(fmt.Sprintf("clearing exercises for %q", w.Name), err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO exercises (workout_name, position, name, sets, reps, weight, muscle_group)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return ioErr("preparing exercise insert", err)
	}
	defer stmt.Close()

	for _, r := range models.ExerciseRows(w) {
		if _, err := stmt.ExecContext(ctx,
			r.WorkoutName, r.Position, r.Name, r.Sets, r.Reps, r.Weight, r.MuscleGroup); err != nil {
			return ioErr(fmt.Sprintf("inserting exercise %d of %q", r.Position+1, w.Name), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return ioErr(fmt.Sprintf("committing workout %q", w.Name), err)
	}
	s.log.Debug("workout saved", "name", w.Name, "exercises", w.Size())
	return nil
}

// Load reads the workout and its exercises in position order.
func (s *SQLiteStore) Load(ctx context.Context, name string) (*models.Workout, error) {
	var row models.WorkoutRow
	err := s.db.QueryRowContext(ctx,
		`SELECT name, created_at, updated_at FROM workouts WHERE name = ?`, name,
	).Scan(&row.Name, &row.CreatedAt, &row.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFoundErr(name)
		}
		return nil, ioErr(fmt.Sprintf("querying workout %q", name), err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT workout_name, position, name, sets, reps, weight, muscle_group
		 FROM exercises WHERE workout_name = ? ORDER BY position ASC`, name)
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

// List returns every workout name in ascending order.
func (s *SQLiteStore) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM workouts ORDER BY name ASC`)
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

// Delete removes the workout and its exercises.
func (s *SQLiteStore) Delete(ctx context.Context, name string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ioErr("beginning transaction", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM workouts WHERE name = ?`, name)
	if err != nil {
		return ioErr(fmt.Sprintf("deleting workout %q", name), err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return ioErr(fmt.Sprintf("deleting workout %q", name), err)
	}
	if affected == 0 {
		return notFoundErr(name)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM exercises WHERE workout_name = ?`, name); err != nil {
		return ioErr(fmt.Sprintf("deleting exercises for %q", name), err)
	}

	if err := tx.Commit(); err != nil {
		return ioErr(fmt.Sprintf("committing delete of %q", name), err)
	}
	s.log.Debug("workout deleted", "name", name)
	return nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
