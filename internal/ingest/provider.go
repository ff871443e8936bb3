// Package ingest holds types shared by the workout import providers.
package ingest

// Result holds the outcome of an import.
type Result struct {
	SessionsReceived int `json:"sessions_received"`
	SetsReceived     int `json:"sets_received"`
	WarmupsSkipped   int `json:"warmups_skipped"`
	SetsRejected     int `json:"sets_rejected"`
	ExercisesSaved   int `json:"exercises_saved"`

	WorkoutsSaved   []string `json:"workouts_saved"`
	WorkoutsSkipped []string `json:"workouts_skipped,omitempty"`
}
