package storage

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"testing"

	"github.com/akyro/liftlog/internal/config"
	"github.com/akyro/liftlog/internal/models"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// backends returns a fresh instance of every Store implementation. The
// PostgreSQL store joins when LIFTLOG_TEST_POSTGRES_DSN names a scratch
// database; its tables are emptied first.
func backends(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()

	fs, err := NewFileStore(filepath.Join(dir, "files"), discardLogger())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	db, err := NewSQLiteStore(filepath.Join(dir, "liftlog.db"), discardLogger())
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() {
		fs.Close()
		db.Close()
	})
	stores := map[string]Store{"file": fs, "sqlite": db}

	if dsn := os.Getenv("LIFTLOG_TEST_POSTGRES_DSN"); dsn != "" {
		pg, err := NewPostgresStore(context.Background(), dsn, discardLogger())
		if err != nil {
			t.Fatalf("NewPostgresStore: %v", err)
		}
		if _, err := pg.pool.Exec(context.Background(), `TRUNCATE workouts CASCADE`); err != nil {
			t.Fatalf("truncating: %v", err)
		}
		t.Cleanup(func() { pg.Close() })
		stores["postgres"] = pg
	}
	return stores
}

func pushDay() *models.Workout {
	w := models.NewWorkout("Push Day")
	w.AddExercise(models.NewExercise("Bench Press", 4, 8, 80, "Chest"))
	w.AddExercise(models.NewExercise("Overhead Press", 3, 10, 40, "Shoulders"))
	w.AddExercise(models.NewExercise("Dips", 3, 12, 0, "Triceps"))
	w.AddExercise(models.NewExercise("Bench Press", 2, 5, 92.5, "Chest"))
	return w
}

// TestRoundTrip verifies that Save followed by Load returns an equal
// workout, including duplicate exercise names and order.
func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			want := pushDay()
			if err := s.Save(ctx, want); err != nil {
				t.Fatalf("Save: %v", err)
			}
			got, err := s.Load(ctx, want.Name)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if !got.Equal(want) {
				t.Errorf("Load = %+v, want %+v", got, want)
			}
			if got.TotalVolume() != want.TotalVolume() {
				t.Errorf("TotalVolume = %v, want %v", got.TotalVolume(), want.TotalVolume())
			}
		})
	}
}

// TestRoundTripEmptyWorkout verifies a workout with zero exercises survives
// a round trip and is listed.
func TestRoundTripEmptyWorkout(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if err := s.Save(ctx, models.NewWorkout("Rest")); err != nil {
				t.Fatalf("Save: %v", err)
			}
			got, err := s.Load(ctx, "Rest")
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if got.Name != "Rest" || got.Size() != 0 {
				t.Errorf("Load = %+v, want empty workout named Rest", got)
			}
			names, err := s.List(ctx)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if !reflect.DeepEqual(names, []string{"Rest"}) {
				t.Errorf("List = %v, want [Rest]", names)
			}
		})
	}
}

// TestUnusualNames verifies that names with path separators, percent signs
// and leading dots are stored, listed and loaded under their exact name.
func TestUnusualNames(t *testing.T) {
	ctx := context.Background()
	names := []string{"a/b", "100%", ".hidden", "Push Day", "..", "Día de pierna"}

	for backend, s := range backends(t) {
		t.Run(backend, func(t *testing.T) {
			for _, n := range names {
				w := models.NewWorkout(n)
				w.AddExercise(models.NewExercise("Squat", 5, 5, 100, "Quads"))
				if err := s.Save(ctx, w); err != nil {
					t.Fatalf("Save(%q): %v", n, err)
				}
			}

			got, err := s.List(ctx)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			want := []string{"..", ".hidden", "100%", "Día de pierna", "Push Day", "a/b"}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("List = %q, want %q", got, want)
			}

			for _, n := range names {
				w, err := s.Load(ctx, n)
				if err != nil {
					t.Errorf("Load(%q): %v", n, err)
					continue
				}
				if w.Name != n {
					t.Errorf("Load(%q).Name = %q", n, w.Name)
				}
			}
		})
	}
}

// TestLongAndCaseVariantNames verifies that names far longer than a file
// name component, and names differing only in case, are kept as separate
// workouts.
func TestLongAndCaseVariantNames(t *testing.T) {
	ctx := context.Background()
	long := strings.Repeat("é", 80) + " " + strings.Repeat("深蹲", 60)
	names := []string{long, "Push Day", "push day"}

	for backend, s := range backends(t) {
		t.Run(backend, func(t *testing.T) {
			for i, n := range names {
				w := models.NewWorkout(n)
				w.AddExercise(models.NewExercise("Squat", 5, 5, float64(100+i), "Quads"))
				if err := s.Save(ctx, w); err != nil {
					t.Fatalf("Save(%q): %v", n, err)
				}
			}

			got, err := s.List(ctx)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			want := append([]string(nil), names...)
			sort.Strings(want)
			if !reflect.DeepEqual(got, want) {
				t.Errorf("List = %q, want %q", got, want)
			}

			for i, n := range names {
				w, err := s.Load(ctx, n)
				if err != nil {
					t.Errorf("Load(%q): %v", n, err)
					continue
				}
				if w.Name != n || w.Exercises[0].Weight != float64(100+i) {
					t.Errorf("Load(%q) = %q weight %v", n, w.Name, w.Exercises[0].Weight)
				}
			}

			if err := s.Delete(ctx, long); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if _, err := s.Load(ctx, long); !errors.Is(err, ErrNotFound) {
				t.Errorf("Load after Delete = %v, want ErrNotFound", err)
			}
		})
	}
}

// TestSaveOverwrites verifies that saving under an existing name replaces
// the record instead of merging with it.
func TestSaveOverwrites(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if err := s.Save(ctx, pushDay()); err != nil {
				t.Fatalf("Save: %v", err)
			}

			replacement := models.NewWorkout("Push Day")
			replacement.AddExercise(models.NewExercise("Push-up", 3, 20, 0, "Chest"))
			for range 2 {
				if err := s.Save(ctx, replacement); err != nil {
					t.Fatalf("Save: %v", err)
				}
			}

			got, err := s.Load(ctx, "Push Day")
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if !got.Equal(replacement) {
				t.Errorf("Load = %+v, want %+v", got, replacement)
			}
			names, _ := s.List(ctx)
			if len(names) != 1 {
				t.Errorf("List = %v, want one name", names)
			}
		})
	}
}

// TestSaveRejectsInvalid verifies that an invalid workout is never stored.
func TestSaveRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			w := models.NewWorkout("Bad")
			w.AddExercise(models.NewExercise("Squat", -1, 5, 100, "Quads"))

			err := s.Save(ctx, w)
			var verr *models.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Save error = %v, want ValidationError", err)
			}
			if _, err := s.Load(ctx, "Bad"); !errors.Is(err, ErrNotFound) {
				t.Errorf("Load after rejected save = %v, want ErrNotFound", err)
			}
		})
	}
}

// TestLoadMissing verifies ErrNotFound for names that were never saved.
func TestLoadMissing(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			w, err := s.Load(ctx, "nope")
			if !errors.Is(err, ErrNotFound) {
				t.Errorf("Load error = %v, want ErrNotFound", err)
			}
			if w != nil {
				t.Errorf("Load returned %+v alongside error", w)
			}
		})
	}
}

// TestDelete verifies that Delete removes a record and reports ErrNotFound
// the second time.
func TestDelete(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if err := s.Save(ctx, pushDay()); err != nil {
				t.Fatalf("Save: %v", err)
			}
			if err := s.Delete(ctx, "Push Day"); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if _, err := s.Load(ctx, "Push Day"); !errors.Is(err, ErrNotFound) {
				t.Errorf("Load after delete = %v, want ErrNotFound", err)
			}
			if err := s.Delete(ctx, "Push Day"); !errors.Is(err, ErrNotFound) {
				t.Errorf("second Delete = %v, want ErrNotFound", err)
			}
			names, err := s.List(ctx)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(names) != 0 {
				t.Errorf("List = %v, want empty", names)
			}
		})
	}
}

// TestListEmpty verifies an empty store lists no names and a non-nil slice.
func TestListEmpty(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			names, err := s.List(ctx)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if names == nil || len(names) != 0 {
				t.Errorf("List = %#v, want empty non-nil slice", names)
			}
		})
	}
}

// TestOpen verifies driver selection from config.
func TestOpen(t *testing.T) {
	dir := t.TempDir()

	ctx := context.Background()

	s, err := Open(ctx, config.StorageConfig{Driver: config.DriverFile, Dir: dir}, discardLogger())
	if err != nil {
		t.Fatalf("Open(file): %v", err)
	}
	if _, ok := s.(*FileStore); !ok {
		t.Errorf("Open(file) = %T, want *FileStore", s)
	}
	s.Close()

	s, err = Open(ctx, config.StorageConfig{Driver: config.DriverSQLite, SQLitePath: filepath.Join(dir, "x.db")}, discardLogger())
	if err != nil {
		t.Fatalf("Open(sqlite): %v", err)
	}
	if _, ok := s.(*SQLiteStore); !ok {
		t.Errorf("Open(sqlite) = %T, want *SQLiteStore", s)
	}
	s.Close()

	if _, err := Open(ctx, config.StorageConfig{Driver: "mongodb"}, discardLogger()); err == nil {
		t.Error("Open(mongodb) succeeded, want error")
	}

	unreachable := config.StorageConfig{
		Driver:   config.DriverPostgres,
		Postgres: config.DatabaseConfig{Host: "127.0.0.1", Port: 1, Name: "liftlog", User: "lifter"},
	}
	if _, err := Open(ctx, unreachable, discardLogger()); !errors.Is(err, ErrIO) {
		t.Errorf("Open(unreachable postgres) = %v, want ErrIO", err)
	}
}
