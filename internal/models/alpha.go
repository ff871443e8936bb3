package models

import "time"

// AlphaSession is one session parsed from an Alpha Progression CSV export.
type AlphaSession struct {
	Name      string
	Date      time.Time
	Duration  string
	Exercises []AlphaExercise
}

// AlphaExercise is one exercise block within a session.
type AlphaExercise struct {
	Number     int
	Name       string
	Equipment  string
	TargetReps int
	Sets       []AlphaSet
}

// AlphaSet is a single logged set. Weight is in whatever unit the export
// used; bodyweight-plus sets carry only the added load.
type AlphaSet struct {
	Number           int
	Weight           float64
	IsBodyweightPlus bool
	Reps             int
	RIR              float64
	IsWarmup         bool
}

// WorkingSets returns the non-warmup sets in logged order.
func (e AlphaExercise) WorkingSets() []AlphaSet {
	var sets []AlphaSet
	for _, s := range e.Sets {
		if !s.IsWarmup {
			sets = append(sets, s)
		}
	}
	return sets
}
