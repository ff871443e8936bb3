package alpha

import (
	"fmt"
	"strings"

	"github.com/akyro/liftlog/internal/models"
)

// muscleKeywords is checked in order; the first group with a keyword
// contained in the lowercased exercise name wins. Legs comes first so
// "leg press" and "leg curl" are not claimed by Push or Pull, and Push comes
// before Pull so "lateral raise" is not read as "lat".
var muscleKeywords = []struct {
	group    string
	keywords []string
}{
	{"Legs", []string{"squat", "lunge", "leg", "calf", "calves", "deadlift", "hip thrust", "glute", "hamstring", "quad", "step-up", "adductor", "abductor", "hyperextension"}},
	{"Push", []string{"press", "bench", "dip", "push", "fly", "flye", "tricep", "lateral raise", "front raise", "chest", "shoulder"}},
	{"Pull", []string{"row", "pull", "curl", "chin", "lat", "shrug", "bicep", "face pull"}},
}

// InferMuscleGroup guesses Legs, Push or Pull from an exercise name, falling
// back to "Other".
func InferMuscleGroup(exercise string) string {
	name := strings.ToLower(exercise)
	for _, g := range muscleKeywords {
		for _, kw := range g.keywords {
			if strings.Contains(name, kw) {
				return g.group
			}
		}
	}
	return string(models.CategoryOther)
}

// ConvertStats counts what a conversion kept and dropped.
type ConvertStats struct {
	WorkingSets  int
	WarmupSets   int
	RejectedSets int
}

// ToWorkouts turns parsed sessions into workouts, one per session.
//
// Warmup sets are dropped. Consecutive working sets with the same weight and
// reps become a single exercise whose set count is the run length. Sets that
// would not validate (zero reps, negative load) are rejected and counted.
// Session names that occur more than once get the session date appended, and
// a numeric suffix if the date still collides.
func ToWorkouts(sessions []models.AlphaSession) ([]*models.Workout, ConvertStats) {
	var stats ConvertStats
	names := workoutNames(sessions)

	workouts := make([]*models.Workout, 0, len(sessions))
	for i, s := range sessions {
		w := models.NewWorkout(names[i])
		for _, ex := range s.Exercises {
			group := InferMuscleGroup(ex.Name)
			for _, e := range collapseSets(ex, group, &stats) {
				w.AddExercise(e)
			}
		}
		workouts = append(workouts, w)
	}
	return workouts, stats
}

func collapseSets(ex models.AlphaExercise, group string, stats *ConvertStats) []models.Exercise {
	var out []models.Exercise
	var run *models.Exercise

	for _, set := range ex.Sets {
		if set.IsWarmup {
			stats.WarmupSets++
			continue
		}
		stats.WorkingSets++
		e := models.NewExercise(ex.Name, 1, set.Reps, set.Weight, group)
		if e.Validate() != nil {
			stats.RejectedSets++
			continue
		}
		if run != nil && run.Reps == e.Reps && run.Weight == e.Weight {
			run.Sets++
			continue
		}
		if run != nil {
			out = append(out, *run)
		}
		run = &e
	}
	if run != nil {
		out = append(out, *run)
	}
	return out
}

// workoutNames gives every session a distinct workout name. A generated
// name never reuses one already taken in the batch, including a session
// whose own name happens to look like a generated one.
func workoutNames(sessions []models.AlphaSession) []string {
	counts := make(map[string]int, len(sessions))
	for _, s := range sessions {
		counts[s.Name]++
	}
	taken := make(map[string]bool, len(sessions))
	for _, s := range sessions {
		if counts[s.Name] == 1 {
			taken[s.Name] = true
		}
	}

	names := make([]string, len(sessions))
	for i, s := range sessions {
		if counts[s.Name] == 1 {
			names[i] = s.Name
			continue
		}
		base := fmt.Sprintf("%s %s", s.Name, s.Date.Format("2006-01-02"))
		name := base
		for n := 2; taken[name]; n++ {
			name = fmt.Sprintf("%s (%d)", base, n)
		}
		taken[name] = true
		names[i] = name
	}
	return names
}
