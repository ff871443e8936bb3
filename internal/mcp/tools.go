package mcp

import (
	"context"
	"errors"

	"github.com/akyro/liftlog/internal/analytics"
	"github.com/akyro/liftlog/internal/models"
	"github.com/akyro/liftlog/internal/storage"
	"github.com/mark3labs/mcp-go/mcp"
)

const defaultRankSize = 3

// --- Tool definitions ---

var toolListWorkouts = mcp.NewTool("list_workouts",
	mcp.WithDescription("List the names of all stored workouts in ascending order."),
)

var toolGetWorkout = mcp.NewTool("get_workout",
	mcp.WithDescription("Get one workout's exercises (name, sets, reps, weight, muscle group) plus totals and its highest-volume exercise."),
	mcp.WithString("name", mcp.Required(), mcp.Description("Workout name exactly as listed by list_workouts")),
)

var toolAnalyzeWorkout = mcp.NewTool("analyze_workout",
	mcp.WithDescription("Volume analysis for one workout: per-exercise share of total volume, top and bottom N exercises by volume, and the push/pull/legs split as fractions of total volume."),
	mcp.WithString("name", mcp.Required(), mcp.Description("Workout name")),
	mcp.WithNumber("n", mcp.Description("How many exercises to include in the top and bottom lists. Defaults to 3."), mcp.Min(0)),
)

var toolCompareWorkouts = mcp.NewTool("compare_workouts",
	mcp.WithDescription("Compare two workouts: total volumes, the absolute and relative volume difference, which is larger, and which exercise names are shared or unique to each."),
	mcp.WithString("a", mcp.Required(), mcp.Description("First workout name")),
	mcp.WithString("b", mcp.Required(), mcp.Description("Second workout name")),
)

// --- Tool handlers ---

func (h *handlers) listWorkouts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	names, err := h.ds.List(ctx)
	if err != nil {
		h.log.Error("mcp list_workouts", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(names)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name parameter is required"), nil
	}

	w, errResult := h.load(ctx, "get_workout", name)
	if errResult != nil {
		return errResult, nil
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"workout": w,
		"summary": analytics.Summarize(w),
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) analyzeWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name parameter is required"), nil
	}
	n := req.GetInt("n", defaultRankSize)
	if n < 0 {
		return mcp.NewToolResultError("n must not be negative"), nil
	}

	w, errResult := h.load(ctx, "analyze_workout", name)
	if errResult != nil {
		return errResult, nil
	}

	result, err := mcp.NewToolResultJSON(analytics.Analyze(w, n))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) compareWorkouts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	nameA, err := req.RequireString("a")
	if err != nil {
		return mcp.NewToolResultError("a parameter is required"), nil
	}
	nameB, err := req.RequireString("b")
	if err != nil {
		return mcp.NewToolResultError("b parameter is required"), nil
	}

	a, errResult := h.load(ctx, "compare_workouts", nameA)
	if errResult != nil {
		return errResult, nil
	}
	b, errResult := h.load(ctx, "compare_workouts", nameB)
	if errResult != nil {
		return errResult, nil
	}

	result, err := mcp.NewToolResultJSON(analytics.Compare(a, b))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

// load fetches a workout and converts failures into a tool error result.
func (h *handlers) load(ctx context.Context, tool, name string) (*models.Workout, *mcp.CallToolResult) {
	w, err := h.ds.Load(ctx, name)
	switch {
	case err == nil:
		return w, nil
	case errors.Is(err, storage.ErrNotFound):
		return nil, mcp.NewToolResultError("workout not found: " + name)
	case errors.Is(err, storage.ErrCorruptRecord):
		h.log.Warn("mcp "+tool, "name", name, "error", err)
		return nil, mcp.NewToolResultError("workout record is corrupt: " + name)
	default:
		h.log.Error("mcp "+tool, "name", name, "error", err)
		return nil, mcp.NewToolResultError("query failed: " + err.Error())
	}
}
