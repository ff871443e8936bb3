package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/akyro/liftlog/internal/models"
	"github.com/akyro/liftlog/internal/storage"
)

// newTestServer creates an httptest server that routes requests to handler functions
// keyed by escaped path. Verifies the HTTP client sends correct paths.
func newTestServer(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.URL.EscapedPath()]
		if !ok {
			t.Errorf("unexpected request path: %s", r.URL.EscapedPath())
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))
}

func writeTestJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Fatal(err)
	}
}

// TestHTTPClientList verifies the client parses the name array.
func TestHTTPClientList(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/workouts": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(t, w, []string{"Leg Day", "Push Day"})
		},
	})
	defer ts.Close()

	names, err := NewHTTPClient(ts.URL + "/").List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 2 || names[0] != "Leg Day" {
		t.Errorf("names = %v, want [Leg Day Push Day]", names)
	}
}

// TestHTTPClientLoad verifies names are path-escaped and the workout is
// decoded from the response envelope.
func TestHTTPClientLoad(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/workouts/a%2Fb": func(w http.ResponseWriter, r *http.Request) {
			wo := models.NewWorkout("a/b")
			wo.AddExercise(models.NewExercise("Squat", 5, 5, 100, "Legs"))
			writeTestJSON(t, w, map[string]any{"workout": wo})
		},
	})
	defer ts.Close()

	w, err := NewHTTPClient(ts.URL).Load(context.Background(), "a/b")
	if err != nil {
		t.Fatal(err)
	}
	if w.Name != "a/b" || w.Size() != 1 || w.TotalVolume() != 2500 {
		t.Errorf("workout = %+v", w)
	}
}

// TestHTTPClientErrors verifies status codes map onto storage sentinels.
func TestHTTPClientErrors(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/workouts/missing": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		},
		"/api/v1/workouts/broken": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
		},
		"/api/v1/workouts/invalid": func(w http.ResponseWriter, r *http.Request) {
			wo := models.NewWorkout("invalid")
			wo.AddExercise(models.NewExercise("Squat", 0, 5, 100, "Legs"))
			writeTestJSON(t, w, map[string]any{"workout": wo})
		},
		"/api/v1/workouts/boom": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL)
	ctx := context.Background()

	if _, err := client.Load(ctx, "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("missing: err = %v, want ErrNotFound", err)
	}
	if _, err := client.Load(ctx, "broken"); !errors.Is(err, storage.ErrCorruptRecord) {
		t.Errorf("broken: err = %v, want ErrCorruptRecord", err)
	}
	if _, err := client.Load(ctx, "invalid"); !errors.Is(err, storage.ErrCorruptRecord) {
		t.Errorf("invalid: err = %v, want ErrCorruptRecord", err)
	}
	if _, err := client.Load(ctx, "boom"); err == nil {
		t.Error("boom: expected error")
	}
}
