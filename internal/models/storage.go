package models

import "time"

// WorkoutRow is a row in the workouts table.
type WorkoutRow struct {
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ExerciseRow is a row in the exercises table. Position keeps insertion
// order within the owning workout.
type ExerciseRow struct {
	WorkoutName string
	Position    int
	Name        string
	Sets        int
	Reps        int
	Weight      float64
	MuscleGroup string
}

// Exercise converts the row back into an Exercise.
func (r ExerciseRow) Exercise() Exercise {
	return NewExercise(r.Name, r.Sets, r.Reps, r.Weight, r.MuscleGroup)
}

// ExerciseRows flattens a workout into table rows.
func ExerciseRows(w *Workout) []ExerciseRow {
	rows := make([]ExerciseRow, 0, len(w.Exercises))
	for i, e := range w.Exercises {
		rows = append(rows, ExerciseRow{
			WorkoutName: w.Name,
			Position:    i,
			Name:        e.Name,
			Sets:        e.Sets,
			Reps:        e.Reps,
			Weight:      e.Weight,
			MuscleGroup: e.MuscleGroup,
		})
	}
	return rows
}
