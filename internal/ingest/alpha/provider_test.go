package alpha

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/akyro/liftlog/internal/models"
	"github.com/akyro/liftlog/internal/storage"
)

func newTestProvider(t *testing.T) (*Provider, storage.Store) {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := storage.NewFileStore(t.TempDir(), log)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	return NewProvider(store, log), store
}

// TestIngestSavesWorkouts verifies an import stores one workout per session.
func TestIngestSavesWorkouts(t *testing.T) {
	ctx := context.Background()
	p, store := newTestProvider(t)

	result, err := p.Ingest(ctx, strings.NewReader(twoSessions), false)
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if result.SessionsReceived != 2 {
		t.Errorf("sessions = %d, want 2", result.SessionsReceived)
	}
	if len(result.WorkoutsSaved) != 2 {
		t.Errorf("saved = %v, want 2 workouts", result.WorkoutsSaved)
	}
	if result.ExercisesSaved != 6 {
		t.Errorf("exercises = %d, want 6", result.ExercisesSaved)
	}
	if result.WarmupsSkipped != 2 {
		t.Errorf("warmups = %d, want 2", result.WarmupsSkipped)
	}

	w, err := store.Load(ctx, "Lower A")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if w.Exercise(0).Name != "Romanian Deadlift" || w.Exercise(0).MuscleGroup != "Legs" {
		t.Errorf("exercise 1 = %+v", w.Exercise(0))
	}
}

// TestIngestSkipsExisting verifies that existing workouts are left alone
// unless overwrite is requested.
func TestIngestSkipsExisting(t *testing.T) {
	ctx := context.Background()
	p, store := newTestProvider(t)

	name := "Upper A"
	mine := models.NewWorkout(name)
	mine.AddExercise(models.NewExercise("Push-up", 3, 20, 0, "Chest"))
	if err := store.Save(ctx, mine); err != nil {
		t.Fatalf("Save: %v", err)
	}

	result, err := p.Ingest(ctx, strings.NewReader(twoSessions), false)
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if len(result.WorkoutsSkipped) != 1 || result.WorkoutsSkipped[0] != name {
		t.Errorf("skipped = %v, want [%s]", result.WorkoutsSkipped, name)
	}
	got, _ := store.Load(ctx, name)
	if !got.Equal(mine) {
		t.Errorf("existing workout was replaced: %+v", got)
	}

	result, err = p.Ingest(ctx, strings.NewReader(twoSessions), true)
	if err != nil {
		t.Fatalf("Ingest overwrite: %v", err)
	}
	if len(result.WorkoutsSkipped) != 0 {
		t.Errorf("skipped with overwrite = %v", result.WorkoutsSkipped)
	}
	got, _ = store.Load(ctx, name)
	if got.Exercise(0).Name != "Incline Press" {
		t.Errorf("overwrite did not replace workout: %+v", got)
	}
}

// TestIngestParseError verifies that malformed exports save nothing.
func TestIngestParseError(t *testing.T) {
	ctx := context.Background()
	p, store := newTestProvider(t)

	_, err := p.Ingest(ctx, strings.NewReader("1;100;5;1\n"), false)
	var perr *ParseError
	if !errors.As(err, &perr) || perr.Line != 1 {
		t.Fatalf("Ingest error = %v, want ParseError on line 1", err)
	}
	names, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("List = %v, want empty", names)
	}
}
