package server

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/akyro/liftlog/internal/export"
	"github.com/akyro/liftlog/internal/ingest/alpha"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// maxImportBytes caps the size of an uploaded Alpha Progression export.
const maxImportBytes = 32 << 20

func (s *Server) handleAlphaImport(w http.ResponseWriter, r *http.Request) {
	if s.alpha == nil {
		writeJSON(w, http.StatusNotImplemented, map[string]string{"error": "import not configured"})
		return
	}

	overwrite := false
	if v := r.URL.Query().Get("overwrite"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "overwrite must be a boolean"})
			return
		}
		overwrite = parsed
	}

	body := http.MaxBytesReader(w, r.Body, maxImportBytes)
	result, err := s.alpha.Ingest(r.Context(), body, overwrite)
	if err != nil {
		var perr *alpha.ParseError
		if errors.As(err, &perr) {
			s.log.Warn("alpha import rejected", "line", perr.Line, "error", err)
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleExportWorkout(w http.ResponseWriter, r *http.Request) {
	name, ok := workoutName(w, r)
	if !ok {
		return
	}
	wo, err := s.store.Load(r.Context(), name)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := export.Write(wo, &buf); err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "workout.xlsx"))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
