package models

import (
	"fmt"
	"strings"
)

// Workout is a named, ordered collection of exercises. Exercise order is
// insertion order and duplicate names are allowed.
type Workout struct {
	Name      string     `json:"name"`
	Exercises []Exercise `json:"exercises"`
}

// NewWorkout creates an empty workout.
func NewWorkout(name string) *Workout {
	return &Workout{Name: name, Exercises: []Exercise{}}
}

// AddExercise appends e to the workout.
func (w *Workout) AddExercise(e Exercise) {
	w.Exercises = append(w.Exercises, e)
}

// Size returns the number of exercises.
func (w *Workout) Size() int {
	return len(w.Exercises)
}

// TotalVolume sums the volume of every exercise.
func (w *Workout) TotalVolume() float64 {
	var total float64
	for _, e := range w.Exercises {
		total += e.Volume()
	}
	return total
}

// TotalSets sums sets across exercises.
func (w *Workout) TotalSets() int {
	var total int
	for _, e := range w.Exercises {
		total += e.Sets
	}
	return total
}

// TotalReps sums reps across exercises.
func (w *Workout) TotalReps() int {
	var total int
	for _, e := range w.Exercises {
		total += e.Reps
	}
	return total
}

// Exercise returns a copy of the exercise at index i.
// Panics if i is out of range.
func (w *Workout) Exercise(i int) Exercise {
	return *w.at(i)
}

// SetExerciseName replaces the name of the exercise at index i.
func (w *Workout) SetExerciseName(i int, name string) error {
	e := w.at(i)
	if err := ValidateExerciseName(name); err != nil {
		return err
	}
	e.Name = name
	return nil
}

// SetExerciseSets replaces the set count of the exercise at index i.
func (w *Workout) SetExerciseSets(i int, sets int) error {
	e := w.at(i)
	if err := ValidateCount("sets", sets); err != nil {
		return err
	}
	next := *e
	next.Sets = sets
	if err := w.validateReplacement(i, next); err != nil {
		return err
	}
	*e = next
	return nil
}

// SetExerciseReps replaces the rep count of the exercise at index i.
func (w *Workout) SetExerciseReps(i int, reps int) error {
	e := w.at(i)
	if err := ValidateCount("reps", reps); err != nil {
		return err
	}
	next := *e
	next.Reps = reps
	if err := w.validateReplacement(i, next); err != nil {
		return err
	}
	*e = next
	return nil
}

// SetExerciseWeight replaces the weight of the exercise at index i.
func (w *Workout) SetExerciseWeight(i int, weight float64) error {
	e := w.at(i)
	if err := ValidateWeight(weight); err != nil {
		return err
	}
	next := *e
	next.Weight = weight
	if err := w.validateReplacement(i, next); err != nil {
		return err
	}
	*e = next
	return nil
}

// SetExerciseMuscleGroup replaces the muscle group of the exercise at index i.
func (w *Workout) SetExerciseMuscleGroup(i int, group string) error {
	e := w.at(i)
	if err := ValidateMuscleGroup(group); err != nil {
		return err
	}
	e.MuscleGroup = group
	return nil
}

// at returns a pointer to the exercise at index i. Out-of-range indices are
// a caller bug, not a runtime condition.
func (w *Workout) at(i int) *Exercise {
	if i < 0 || i >= len(w.Exercises) {
		panic(fmt.Sprintf("models: exercise index %d out of range [0, %d)", i, len(w.Exercises)))
	}
	return &w.Exercises[i]
}

// validateReplacement checks that swapping in e at index i keeps both the
// exercise volume and the workout total finite.
func (w *Workout) validateReplacement(i int, e Exercise) error {
	if err := ValidateVolume(e.Volume()); err != nil {
		return err
	}
	total := e.Volume()
	for j, other := range w.Exercises {
		if j != i {
			total += other.Volume()
		}
	}
	return ValidateVolume(total)
}

// Validate checks the workout name, every exercise and the total volume.
func (w *Workout) Validate() error {
	if err := ValidateWorkoutName(w.Name); err != nil {
		return err
	}
	for i, e := range w.Exercises {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("exercise %d: %w", i+1, err)
		}
	}
	return ValidateVolume(w.TotalVolume())
}

// ValidateWorkoutName requires a non-blank workout name.
func ValidateWorkoutName(name string) error {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Field: "workout name", Reason: "must not be blank"}
	}
	return nil
}

// Equal reports whether both workouts have the same name and the same
// exercises in the same order. A nil and an empty exercise list are equal.
func (w *Workout) Equal(other *Workout) bool {
	if w == nil || other == nil {
		return w == other
	}
	if w.Name != other.Name || len(w.Exercises) != len(other.Exercises) {
		return false
	}
	for i := range w.Exercises {
		if w.Exercises[i] != other.Exercises[i] {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the workout.
func (w *Workout) Clone() *Workout {
	c := &Workout{Name: w.Name, Exercises: make([]Exercise, len(w.Exercises))}
	copy(c.Exercises, w.Exercises)
	return c
}
