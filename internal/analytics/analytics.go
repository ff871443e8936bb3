// Package analytics derives read-only views of a workout: volume breakdown,
// top and bottom contributors, push/pull/legs split, and comparisons.
//
// Every function takes the workout explicitly and computes a fresh result.
// Nothing is cached between calls.
package analytics

import (
	"fmt"
	"sort"

	"github.com/akyro/liftlog/internal/models"
)

// Share is one exercise's contribution to a workout's total volume.
type Share struct {
	Index    int             `json:"index"`
	Exercise models.Exercise `json:"exercise"`
	Volume   float64         `json:"volume"`
	Fraction float64         `json:"fraction"`
}

// Split holds the fraction of total volume in each category bucket.
// Volume from CategoryOther exercises is in none of them.
type Split struct {
	Push float64 `json:"push"`
	Pull float64 `json:"pull"`
	Legs float64 `json:"legs"`
}

// Summary holds the headline numbers for one workout.
type Summary struct {
	Name        string           `json:"name"`
	Exercises   int              `json:"exercises"`
	TotalSets   int              `json:"total_sets"`
	TotalReps   int              `json:"total_reps"`
	TotalVolume float64          `json:"total_volume"`
	Highest     *models.Exercise `json:"highest_volume_exercise,omitempty"`
}

// VolumeBreakdown returns every exercise's share of total volume in
// insertion order. Returns nil when the workout has no volume.
func VolumeBreakdown(w *models.Workout) []Share {
	total := w.TotalVolume()
	if total == 0 {
		return nil
	}
	return shares(w, total)
}

// TopN returns up to n exercises ordered by volume, highest first.
// Equal volumes keep insertion order.
func TopN(w *models.Workout, n int) []Share {
	checkN(n)
	s := shares(w, w.TotalVolume())
	sort.SliceStable(s, func(i, j int) bool { return s[i].Volume > s[j].Volume })
	return s[:min(n, len(s))]
}

// BottomN returns up to n exercises ordered by volume, lowest first.
// Equal volumes keep insertion order. Workouts with fewer than two
// exercises have no meaningful bottom and yield an empty result.
func BottomN(w *models.Workout, n int) []Share {
	checkN(n)
	if w.Size() < 2 {
		return []Share{}
	}
	s := shares(w, w.TotalVolume())
	sort.SliceStable(s, func(i, j int) bool { return s[i].Volume < s[j].Volume })
	return s[:min(n, len(s))]
}

// HighestVolumeExercise returns the exercise with the most volume, the first
// one on ties. Panics on an empty workout; callers check Size first.
func HighestVolumeExercise(w *models.Workout) models.Exercise {
	if w.Size() == 0 {
		panic(fmt.Sprintf("analytics: HighestVolumeExercise called on empty workout %q", w.Name))
	}
	best := w.Exercises[0]
	for _, e := range w.Exercises[1:] {
		if e.Volume() > best.Volume() {
			best = e
		}
	}
	return best
}

// VolumePercentageSplit returns the fraction of total volume per category.
// All buckets are zero when the workout has no volume.
func VolumePercentageSplit(w *models.Workout) Split {
	total := w.TotalVolume()
	if total == 0 {
		return Split{}
	}

	var push, pull, legs float64
	for _, e := range w.Exercises {
		switch e.Category() {
		case models.CategoryPush:
			push += e.Volume()
		case models.CategoryPull:
			pull += e.Volume()
		case models.CategoryLegs:
			legs += e.Volume()
		}
	}
	return Split{Push: push / total, Pull: pull / total, Legs: legs / total}
}

// Summarize returns totals and, for non-empty workouts, the highest-volume
// exercise.
func Summarize(w *models.Workout) Summary {
	s := Summary{
		Name:        w.Name,
		Exercises:   w.Size(),
		TotalSets:   w.TotalSets(),
		TotalReps:   w.TotalReps(),
		TotalVolume: w.TotalVolume(),
	}
	if w.Size() > 0 {
		h := HighestVolumeExercise(w)
		s.Highest = &h
	}
	return s
}

// Report bundles every analytics view of one workout. Breakdown is empty,
// not nil, when the workout has no volume.
type Report struct {
	Name        string           `json:"name"`
	TotalVolume float64          `json:"total_volume"`
	Breakdown   []Share          `json:"breakdown"`
	Top         []Share          `json:"top"`
	Bottom      []Share          `json:"bottom"`
	Split       Split            `json:"split"`
	Highest     *models.Exercise `json:"highest_volume_exercise,omitempty"`
}

// Analyze computes a Report with top and bottom lists of up to n entries.
func Analyze(w *models.Workout, n int) Report {
	r := Report{
		Name:        w.Name,
		TotalVolume: w.TotalVolume(),
		Breakdown:   VolumeBreakdown(w),
		Top:         TopN(w, n),
		Bottom:      BottomN(w, n),
		Split:       VolumePercentageSplit(w),
	}
	if r.Breakdown == nil {
		r.Breakdown = []Share{}
	}
	if w.Size() > 0 {
		h := HighestVolumeExercise(w)
		r.Highest = &h
	}
	return r
}

// shares builds one Share per exercise. Fractions are zero when total is zero.
func shares(w *models.Workout, total float64) []Share {
	out := make([]Share, 0, w.Size())
	for i, e := range w.Exercises {
		v := e.Volume()
		var frac float64
		if total > 0 {
			frac = v / total
		}
		out = append(out, Share{Index: i, Exercise: e, Volume: v, Fraction: frac})
	}
	return out
}

func checkN(n int) {
	if n < 0 {
		panic(fmt.Sprintf("analytics: negative n %d", n))
	}
}
