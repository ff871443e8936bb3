package alpha

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/akyro/liftlog/internal/ingest"
	"github.com/akyro/liftlog/internal/storage"
)

// Provider imports Alpha Progression CSV exports into a workout store.
type Provider struct {
	store storage.Store
	log   *slog.Logger
}

// NewProvider creates a new Alpha Progression import provider.
func NewProvider(store storage.Store, log *slog.Logger) *Provider {
	return &Provider{store: store, log: log}
}

// Ingest parses a CSV export and saves one workout per session. Workouts
// whose name already exists are skipped unless overwrite is set.
func (p *Provider) Ingest(ctx context.Context, r io.Reader, overwrite bool) (*ingest.Result, error) {
	sessions, err := Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing CSV: %w", err)
	}

	existing, err := p.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing existing workouts: %w", err)
	}
	have := make(map[string]bool, len(existing))
	for _, name := range existing {
		have[name] = true
	}

	workouts, stats := ToWorkouts(sessions)
	result := &ingest.Result{
		SessionsReceived: len(sessions),
		SetsReceived:     stats.WorkingSets + stats.WarmupSets,
		WarmupsSkipped:   stats.WarmupSets,
		SetsRejected:     stats.RejectedSets,
		WorkoutsSaved:    []string{},
	}

	for _, w := range workouts {
		if have[w.Name] && !overwrite {
			p.log.Info("workout exists, skipping", "name", w.Name)
			result.WorkoutsSkipped = append(result.WorkoutsSkipped, w.Name)
			continue
		}
		if err := p.store.Save(ctx, w); err != nil {
			return result, fmt.Errorf("saving workout %q: %w", w.Name, err)
		}
		p.log.Info("workout imported", "name", w.Name, "exercises", w.Size(), "volume", w.TotalVolume())
		result.WorkoutsSaved = append(result.WorkoutsSaved, w.Name)
		result.ExercisesSaved += w.Size()
	}

	return result, nil
}
