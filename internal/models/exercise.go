package models

import (
	"fmt"
	"math"
	"strings"
	"unicode"
)

// Exercise is a single logged movement within a workout.
type Exercise struct {
	Name        string  `json:"name" yaml:"name"`
	Sets        int     `json:"sets" yaml:"sets"`
	Reps        int     `json:"reps" yaml:"reps"`
	Weight      float64 `json:"weight" yaml:"weight"`
	MuscleGroup string  `json:"muscle_group" yaml:"muscle_group"`
}

// NewExercise builds an exercise without validating it. Callers that accept
// user input should call Validate before adding it to a workout.
func NewExercise(name string, sets, reps int, weight float64, muscleGroup string) Exercise {
	return Exercise{
		Name:        name,
		Sets:        sets,
		Reps:        reps,
		Weight:      weight,
		MuscleGroup: muscleGroup,
	}
}

// Volume returns sets × reps × weight.
func (e Exercise) Volume() float64 {
	return float64(e.Sets) * float64(e.Reps) * e.Weight
}

// Category classifies the exercise's muscle group.
func (e Exercise) Category() Category {
	c, _ := ClassifyMuscleGroup(e.MuscleGroup)
	return c
}

// Validate checks every field against the exercise invariants.
func (e Exercise) Validate() error {
	if err := ValidateExerciseName(e.Name); err != nil {
		return err
	}
	if err := ValidateCount("sets", e.Sets); err != nil {
		return err
	}
	if err := ValidateCount("reps", e.Reps); err != nil {
		return err
	}
	if err := ValidateWeight(e.Weight); err != nil {
		return err
	}
	if err := ValidateVolume(e.Volume()); err != nil {
		return err
	}
	return ValidateMuscleGroup(e.MuscleGroup)
}

// ValidateExerciseName requires a non-blank name with at least one letter.
func ValidateExerciseName(name string) error {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Field: "name", Reason: "must not be blank"}
	}
	if !strings.ContainsFunc(name, unicode.IsLetter) {
		return &ValidationError{Field: "name", Reason: "must contain at least one letter"}
	}
	return nil
}

// ValidateCount requires a positive whole number (sets, reps).
func ValidateCount(field string, n int) error {
	if n < 1 {
		return &ValidationError{Field: field, Reason: fmt.Sprintf("must be at least 1, got %d", n)}
	}
	return nil
}

// ValidateWeight requires a finite, non-negative weight.
func ValidateWeight(w float64) error {
	if math.IsNaN(w) || math.IsInf(w, 0) {
		return &ValidationError{Field: "weight", Reason: "must be a finite number"}
	}
	if w < 0 {
		return &ValidationError{Field: "weight", Reason: fmt.Sprintf("must not be negative, got %g", w)}
	}
	return nil
}

// ValidateVolume rejects a volume that overflowed float64. Each factor can
// be valid on its own while their product is not.
func ValidateVolume(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &ValidationError{Field: "volume", Reason: "sets x reps x weight is too large"}
	}
	return nil
}

// ValidateMuscleGroup requires a non-blank muscle group.
func ValidateMuscleGroup(group string) error {
	if strings.TrimSpace(group) == "" {
		return &ValidationError{Field: "muscle_group", Reason: "must not be blank"}
	}
	return nil
}

// ValidationError reports a scalar that violates an exercise or workout
// invariant. It is returned before any state changes.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
