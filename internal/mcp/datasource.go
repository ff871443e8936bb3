package mcp

import (
	"context"

	"github.com/akyro/liftlog/internal/models"
	"github.com/akyro/liftlog/internal/storage"
)

// DataSource is the read-only view of workouts the MCP tools need. Both
// storage backends (local) and HTTPClient (remote via REST API) satisfy it.
type DataSource interface {
	List(ctx context.Context) ([]string, error)
	Load(ctx context.Context, name string) (*models.Workout, error)
}

// Compile-time checks: every backend satisfies DataSource.
var (
	_ DataSource = (*storage.FileStore)(nil)
	_ DataSource = (*storage.SQLiteStore)(nil)
	_ DataSource = (*HTTPClient)(nil)
)
