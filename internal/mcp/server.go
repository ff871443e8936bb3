// Package mcp serves read-only workout tools over the Model Context
// Protocol.
package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("liftlog", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("liftlog strength-training log. List stored workouts, read their exercises, analyze volume distribution, and compare two workouts. Weights are in the unit the user logged them in."),
	)

	h := &handlers{ds: ds, log: log}

	s.AddTools(
		server.ServerTool{Tool: toolListWorkouts, Handler: h.listWorkouts},
		server.ServerTool{Tool: toolGetWorkout, Handler: h.getWorkout},
		server.ServerTool{Tool: toolAnalyzeWorkout, Handler: h.analyzeWorkout},
		server.ServerTool{Tool: toolCompareWorkouts, Handler: h.compareWorkouts},
	)

	s.AddResources(
		server.ServerResource{Resource: resWorkouts, Handler: h.workouts},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

var resWorkouts = mcp.NewResource(
	"liftlog://workouts",
	"Workouts",
	mcp.WithResourceDescription("Every stored workout with its headline totals"),
	mcp.WithMIMEType("application/json"),
)
