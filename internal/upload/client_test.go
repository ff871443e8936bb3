package upload

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func newTestClient(url, key string) *Client {
	c := NewClient(url+"/", key)
	c.backoff = time.Millisecond
	return c
}

// TestUploadAlpha verifies the request shape and the decoded result.
func TestUploadAlpha(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/import/alpha" {
			t.Errorf("request = %s %s", r.Method, r.URL.Path)
		}
		if got := r.URL.Query().Get("overwrite"); got != "true" {
			t.Errorf("overwrite = %q, want true", got)
		}
		if got := r.Header.Get("X-API-Key"); got != "secret" {
			t.Errorf("X-API-Key = %q, want secret", got)
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != "csv" {
			t.Errorf("body = %q", body)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"sessions_received":2,"exercises_saved":5,"workouts_saved":["A","B"]}`))
	}))
	defer srv.Close()

	result, err := newTestClient(srv.URL, "secret").UploadAlpha(context.Background(), []byte("csv"), true)
	if err != nil {
		t.Fatalf("UploadAlpha: %v", err)
	}
	if result.SessionsReceived != 2 || result.ExercisesSaved != 5 || len(result.WorkoutsSaved) != 2 {
		t.Errorf("result = %+v", result)
	}
}

// TestUploadAlphaRetriesServerErrors verifies 5xx responses are retried.
func TestUploadAlphaRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"sessions_received":1,"workouts_saved":["A"]}`))
	}))
	defer srv.Close()

	result, err := newTestClient(srv.URL, "").UploadAlpha(context.Background(), []byte("csv"), false)
	if err != nil {
		t.Fatalf("UploadAlpha: %v", err)
	}
	if calls.Load() != 3 {
		t.Errorf("calls = %d, want 3", calls.Load())
	}
	if result.SessionsReceived != 1 {
		t.Errorf("sessions = %d, want 1", result.SessionsReceived)
	}
}

// TestUploadAlphaGivesUp verifies the error after the last attempt.
func TestUploadAlphaGivesUp(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, "").UploadAlpha(context.Background(), []byte("csv"), false)
	var se *StatusError
	if !errors.As(err, &se) || se.Code != http.StatusInternalServerError {
		t.Fatalf("err = %v, want wrapped 500 StatusError", err)
	}
	if calls.Load() != maxAttempts {
		t.Errorf("calls = %d, want %d", calls.Load(), maxAttempts)
	}
}

// TestUploadAlphaClientErrorNotRetried verifies 4xx responses fail at once.
func TestUploadAlphaClientErrorNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"missing API key"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, "").UploadAlpha(context.Background(), []byte("csv"), false)
	var se *StatusError
	if !errors.As(err, &se) || se.Code != http.StatusUnauthorized {
		t.Fatalf("err = %v, want 401 StatusError", err)
	}
	if calls.Load() != 1 {
		t.Errorf("calls = %d, want 1", calls.Load())
	}
}
