package mcp

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/akyro/liftlog/internal/models"
	"github.com/akyro/liftlog/internal/storage"
	"github.com/mark3labs/mcp-go/mcp"
)

func newTestHandlers(t *testing.T) (*handlers, *storage.FileStore) {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := storage.NewFileStore(t.TempDir(), log)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	push := models.NewWorkout("Push Day")
	push.AddExercise(models.NewExercise("Bench", 4, 8, 135, "Push"))
	push.AddExercise(models.NewExercise("Squat", 5, 5, 185, "Legs"))
	pull := models.NewWorkout("Pull Day")
	pull.AddExercise(models.NewExercise("Row", 4, 10, 95, "Back"))
	pull.AddExercise(models.NewExercise("Squat", 3, 5, 185, "Legs"))
	for _, w := range []*models.Workout{push, pull} {
		if err := store.Save(context.Background(), w); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}
	return &handlers{ds: store, log: log}, store
}

func callTool(name string, args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

// resultJSON decodes the text content of a successful tool result.
func resultJSON(t *testing.T, res *mcp.CallToolResult, v any) {
	t.Helper()
	if res.IsError {
		t.Fatalf("tool returned error result: %+v", res.Content)
	}
	if len(res.Content) == 0 {
		t.Fatal("tool returned no content")
	}
	text, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content type = %T, want TextContent", res.Content[0])
	}
	if err := json.Unmarshal([]byte(text.Text), v); err != nil {
		t.Fatalf("decode tool result: %v", err)
	}
}

// TestListWorkoutsTool verifies names come back sorted.
func TestListWorkoutsTool(t *testing.T) {
	h, _ := newTestHandlers(t)
	res, err := h.listWorkouts(context.Background(), callTool("list_workouts", nil))
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	resultJSON(t, res, &names)
	if len(names) != 2 || names[0] != "Pull Day" || names[1] != "Push Day" {
		t.Errorf("names = %v, want [Pull Day Push Day]", names)
	}
}

// TestGetWorkoutTool verifies the workout and summary are returned.
func TestGetWorkoutTool(t *testing.T) {
	h, _ := newTestHandlers(t)
	res, err := h.getWorkout(context.Background(), callTool("get_workout", map[string]any{"name": "Push Day"}))
	if err != nil {
		t.Fatal(err)
	}
	var got struct {
		Workout models.Workout `json:"workout"`
		Summary struct {
			TotalVolume float64 `json:"total_volume"`
		} `json:"summary"`
	}
	resultJSON(t, res, &got)
	if got.Workout.Size() != 2 {
		t.Errorf("exercises = %d, want 2", got.Workout.Size())
	}
	if got.Summary.TotalVolume != 8945 {
		t.Errorf("total_volume = %v, want 8945", got.Summary.TotalVolume)
	}
}

// TestGetWorkoutToolErrors verifies missing arguments and unknown names
// produce tool errors rather than protocol errors.
func TestGetWorkoutToolErrors(t *testing.T) {
	h, _ := newTestHandlers(t)
	ctx := context.Background()

	res, err := h.getWorkout(ctx, callTool("get_workout", nil))
	if err != nil || !res.IsError {
		t.Errorf("missing name: err=%v isError=%v, want tool error", err, res.IsError)
	}
	res, err = h.getWorkout(ctx, callTool("get_workout", map[string]any{"name": "Leg Day"}))
	if err != nil || !res.IsError {
		t.Errorf("unknown name: err=%v isError=%v, want tool error", err, res.IsError)
	}
}

// brokenRecord names its workout but is missing exercise fields.
const brokenRecord = "format: liftlog.workout/v1\nname: Broken\nexercises:\n  - name: Bench\n"

// TestGetWorkoutToolCorrupt verifies a corrupt record is a tool error.
func TestGetWorkoutToolCorrupt(t *testing.T) {
	h, store := newTestHandlers(t)
	if err := os.WriteFile(store.RecordPath("Broken"), []byte(brokenRecord), 0o644); err != nil {
		t.Fatal(err)
	}
	res, err := h.getWorkout(context.Background(), callTool("get_workout", map[string]any{"name": "Broken"}))
	if err != nil || !res.IsError {
		t.Errorf("corrupt record: err=%v isError=%v, want tool error", err, res.IsError)
	}
}

// TestAnalyzeWorkoutTool verifies the split and rankings for the reference
// workout.
func TestAnalyzeWorkoutTool(t *testing.T) {
	h, _ := newTestHandlers(t)
	res, err := h.analyzeWorkout(context.Background(), callTool("analyze_workout", map[string]any{"name": "Push Day", "n": 1}))
	if err != nil {
		t.Fatal(err)
	}
	var got struct {
		Top []struct {
			Exercise models.Exercise `json:"exercise"`
		} `json:"top"`
		Split struct {
			Push float64 `json:"push"`
			Legs float64 `json:"legs"`
		} `json:"split"`
	}
	resultJSON(t, res, &got)
	if len(got.Top) != 1 || got.Top[0].Exercise.Name != "Squat" {
		t.Errorf("top = %+v, want [Squat]", got.Top)
	}
	if got.Split.Push != 4320.0/8945 || got.Split.Legs != 4625.0/8945 {
		t.Errorf("split = %+v", got.Split)
	}
}

// TestAnalyzeWorkoutToolNegativeN verifies a negative n is rejected.
func TestAnalyzeWorkoutToolNegativeN(t *testing.T) {
	h, _ := newTestHandlers(t)
	res, err := h.analyzeWorkout(context.Background(), callTool("analyze_workout", map[string]any{"name": "Push Day", "n": -2}))
	if err != nil || !res.IsError {
		t.Errorf("err=%v isError=%v, want tool error", err, res.IsError)
	}
}

// TestCompareWorkoutsTool verifies common and unique exercise names.
func TestCompareWorkoutsTool(t *testing.T) {
	h, _ := newTestHandlers(t)
	res, err := h.compareWorkouts(context.Background(), callTool("compare_workouts", map[string]any{"a": "Push Day", "b": "Pull Day"}))
	if err != nil {
		t.Fatal(err)
	}
	var got struct {
		VolumeA   float64  `json:"volume_a"`
		VolumeB   float64  `json:"volume_b"`
		Larger    string   `json:"larger"`
		Common    []string `json:"common_exercises"`
		UniqueToA []string `json:"unique_to_a"`
		UniqueToB []string `json:"unique_to_b"`
	}
	resultJSON(t, res, &got)
	if got.VolumeA != 8945 || got.VolumeB != 6575 {
		t.Errorf("volumes = %v, %v, want 8945, 6575", got.VolumeA, got.VolumeB)
	}
	if got.Larger != "a" {
		t.Errorf("larger = %q, want a", got.Larger)
	}
	if len(got.Common) != 1 || got.Common[0] != "Squat" {
		t.Errorf("common = %v, want [Squat]", got.Common)
	}
	if len(got.UniqueToA) != 1 || got.UniqueToA[0] != "Bench" {
		t.Errorf("unique_to_a = %v, want [Bench]", got.UniqueToA)
	}
	if len(got.UniqueToB) != 1 || got.UniqueToB[0] != "Row" {
		t.Errorf("unique_to_b = %v, want [Row]", got.UniqueToB)
	}
}

// TestWorkoutsResource verifies the resource lists summaries and flags
// unreadable records.
func TestWorkoutsResource(t *testing.T) {
	h, store := newTestHandlers(t)
	if err := os.WriteFile(store.RecordPath("Broken"), []byte(brokenRecord), 0o644); err != nil {
		t.Fatal(err)
	}

	var req mcp.ReadResourceRequest
	req.Params.URI = "liftlog://workouts"
	contents, err := h.workouts(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	text, ok := contents[0].(mcp.TextResourceContents)
	if !ok {
		t.Fatalf("contents type = %T", contents[0])
	}
	var got struct {
		Workouts []struct {
			Name string `json:"name"`
		} `json:"workouts"`
		Unreadable []string `json:"unreadable"`
	}
	if err := json.Unmarshal([]byte(text.Text), &got); err != nil {
		t.Fatal(err)
	}
	if len(got.Workouts) != 2 {
		t.Errorf("workouts = %+v, want 2", got.Workouts)
	}
	if len(got.Unreadable) != 1 || got.Unreadable[0] != "Broken" {
		t.Errorf("unreadable = %v, want [Broken]", got.Unreadable)
	}
}

// TestNewBuildsServer verifies the server builds over a local store.
func TestNewBuildsServer(t *testing.T) {
	h, store := newTestHandlers(t)
	if s := New(store, "test", h.log); s == nil {
		t.Fatal("New returned nil")
	}
}
