package handlers

import (
	"net/http"

	"github.com/alarmbridge/alarmbridge/internal/httpserver/deps"
	"github.com/alarmbridge/alarmbridge/internal/logger"
)

// RawSnapshot serves the latest raw payload cached in Redis for an
// account-context. Useful for inspecting exactly what the remote returned.
func RawSnapshot(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		coord := coordinatorFrom(d, w, r)
		if coord == nil {
			return
		}
		if d.Store == nil {
			writeError(w, http.StatusNotFound, "snapshot cache disabled")
			return
		}

		raw, err := d.Store.GetSnapshot(r.Context(), coord.UCRID())
		if err != nil {
			d.Logger.Error("failed to read cached snapshot",
				logger.String("account", coord.Name()),
				logger.Error(err))
			writeError(w, http.StatusInternalServerError, "snapshot cache unavailable")
			return
		}
		if raw == nil {
			writeError(w, http.StatusNotFound, "no cached snapshot")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write(raw)
	}
}

// DeleteSnapshot drops the cached payload of an account-context. The next
// successful refresh repopulates it.
func DeleteSnapshot(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		coord := coordinatorFrom(d, w, r)
		if coord == nil {
			return
		}
		if d.Store == nil {
			writeError(w, http.StatusNotFound, "snapshot cache disabled")
			return
		}

		if err := d.Store.DeleteSnapshot(r.Context(), coord.UCRID()); err != nil {
			d.Logger.Error("failed to delete cached snapshot",
				logger.String("account", coord.Name()),
				logger.Error(err))
			writeError(w, http.StatusInternalServerError, "snapshot cache unavailable")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
