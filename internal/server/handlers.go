package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/akyro/liftlog/internal/analytics"
	"github.com/akyro/liftlog/internal/models"
	"github.com/akyro/liftlog/internal/storage"
	"github.com/go-chi/chi/v5"
)

const defaultRankSize = 3

// maxWorkoutBytes caps the body of a PUT /workouts/{name} request.
const maxWorkoutBytes = 1 << 20

// workoutResponse is returned by the get and put endpoints.
type workoutResponse struct {
	Workout *models.Workout   `json:"workout"`
	Summary analytics.Summary `json:"summary"`
}

// putWorkoutRequest is the body of PUT /workouts/{name}. Name may be
// omitted; when present it must match the path.
type putWorkoutRequest struct {
	Name      string            `json:"name"`
	Exercises []models.Exercise `json:"exercises"`
}

func (s *Server) handleListWorkouts(w http.ResponseWriter, r *http.Request) {
	names, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, names)
}

func (s *Server) handleGetWorkout(w http.ResponseWriter, r *http.Request) {
	name, ok := workoutName(w, r)
	if !ok {
		return
	}
	wo, err := s.store.Load(r.Context(), name)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, workoutResponse{Workout: wo, Summary: analytics.Summarize(wo)})
}

func (s *Server) handlePutWorkout(w http.ResponseWriter, r *http.Request) {
	name, ok := workoutName(w, r)
	if !ok {
		return
	}

	var req putWorkoutRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxWorkoutBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.Name != "" && req.Name != name {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": fmt.Sprintf("body name %q does not match path name %q", req.Name, name),
		})
		return
	}

	wo := models.NewWorkout(name)
	for _, e := range req.Exercises {
		wo.AddExercise(e)
	}
	if err := s.store.Save(r.Context(), wo); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.log.Info("workout saved", "name", name, "exercises", wo.Size())
	writeJSON(w, http.StatusOK, workoutResponse{Workout: wo, Summary: analytics.Summarize(wo)})
}

func (s *Server) handleDeleteWorkout(w http.ResponseWriter, r *http.Request) {
	name, ok := workoutName(w, r)
	if !ok {
		return
	}
	if err := s.store.Delete(r.Context(), name); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.log.Info("workout deleted", "name", name)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAnalyzeWorkout(w http.ResponseWriter, r *http.Request) {
	name, ok := workoutName(w, r)
	if !ok {
		return
	}

	n := defaultRankSize
	if v := r.URL.Query().Get("n"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "n must be a non-negative integer"})
			return
		}
		n = parsed
	}

	wo, err := s.store.Load(r.Context(), name)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, analytics.Analyze(wo, n))
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	nameA, nameB := q.Get("a"), q.Get("b")
	if nameA == "" || nameB == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "a and b parameters required"})
		return
	}

	a, err := s.store.Load(r.Context(), nameA)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	b, err := s.store.Load(r.Context(), nameB)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, analytics.Compare(a, b))
}

// workoutName extracts the {name} path parameter. chi matches on the raw
// path when the URL carries escapes such as %2F, so those are decoded here.
func workoutName(w http.ResponseWriter, r *http.Request) (string, bool) {
	name := chi.URLParam(r, "name")
	if r.URL.RawPath != "" {
		decoded, err := url.PathUnescape(name)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid workout name encoding"})
			return "", false
		}
		name = decoded
	}
	return name, true
}

// writeError maps store and validation errors to HTTP status codes.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *models.ValidationError
	var tooBig *http.MaxBytesError
	switch {
	case errors.As(err, &tooBig):
		writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{
			"error": fmt.Sprintf("request body exceeds %d bytes", tooBig.Limit),
		})
	case errors.Is(err, storage.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, storage.ErrCorruptRecord):
		// Checked before ValidationError: a corrupt record may wrap one.
		s.log.Warn("corrupt record", "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		s.log.Error("request failed", "path", r.URL.Path, "error", err, "request_id", requestIDFromContext(r))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
