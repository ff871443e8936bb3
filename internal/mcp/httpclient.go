package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/akyro/liftlog/internal/models"
	"github.com/akyro/liftlog/internal/storage"
)

// HTTPClient implements DataSource by calling the liftlog REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but the
// workouts live behind a running `liftlog serve`.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPClient creates an HTTPClient targeting the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// get fetches path and maps 404 and 422 to the storage sentinels so tool
// handlers treat local and remote sources alike.
func (c *HTTPClient) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %s: %w: %w", path, storage.ErrIO, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read body: %w: %w", storage.ErrIO, err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return body, nil
	case http.StatusNotFound:
		return nil, fmt.Errorf("httpclient: %s: %w", path, storage.ErrNotFound)
	case http.StatusUnprocessableEntity:
		return nil, fmt.Errorf("httpclient: %s: %w", path, storage.ErrCorruptRecord)
	default:
		return nil, fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, body)
	}
}

// List returns every workout name known to the server.
func (c *HTTPClient) List(ctx context.Context) ([]string, error) {
	body, err := c.get(ctx, "/api/v1/workouts")
	if err != nil {
		return nil, err
	}

	var names []string
	if err := json.Unmarshal(body, &names); err != nil {
		return nil, fmt.Errorf("httpclient: decode workout names: %w", err)
	}
	return names, nil
}

// Load fetches one workout by name.
func (c *HTTPClient) Load(ctx context.Context, name string) (*models.Workout, error) {
	body, err := c.get(ctx, "/api/v1/workouts/"+url.PathEscape(name))
	if err != nil {
		return nil, err
	}

	var resp struct {
		Workout *models.Workout `json:"workout"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("httpclient: decode workout: %w", err)
	}
	if resp.Workout == nil {
		return nil, fmt.Errorf("httpclient: workout %q: %w", name, storage.ErrCorruptRecord)
	}
	if err := resp.Workout.Validate(); err != nil {
		return nil, fmt.Errorf("httpclient: workout %q: %w: %w", name, storage.ErrCorruptRecord, err)
	}
	return resp.Workout, nil
}
