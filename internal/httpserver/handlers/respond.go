package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/alarmbridge/alarmbridge/internal/httpserver/deps"
	"github.com/alarmbridge/alarmbridge/internal/scheduler"
)

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// coordinatorFrom resolves the {ucr} route parameter to its coordinator.
// Writes a 404 and returns nil when the context is not configured.
func coordinatorFrom(d deps.Deps, w http.ResponseWriter, r *http.Request) *scheduler.Coordinator {
	key := chi.URLParam(r, "ucr")
	coord, ok := d.Coordinators[key]
	if !ok {
		writeError(w, http.StatusNotFound, "unknown account-context")
		return nil
	}
	return coord
}
