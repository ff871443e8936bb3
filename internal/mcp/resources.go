package mcp

import (
	"context"
	"encoding/json"

	"github.com/akyro/liftlog/internal/analytics"
	"github.com/mark3labs/mcp-go/mcp"
)

// workouts lists every workout with its summary. Records that fail to load
// are reported by name instead of failing the whole resource.
func (h *handlers) workouts(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	names, err := h.ds.List(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]analytics.Summary, 0, len(names))
	var unreadable []string
	for _, name := range names {
		w, err := h.ds.Load(ctx, name)
		if err != nil {
			h.log.Warn("workouts resource: load failed", "name", name, "error", err)
			unreadable = append(unreadable, name)
			continue
		}
		summaries = append(summaries, analytics.Summarize(w))
	}

	data, err := json.Marshal(map[string]any{
		"workouts":   summaries,
		"unreadable": unreadable,
	})
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
