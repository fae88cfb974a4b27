package handlers

import (
	"net/http"
	"time"

	"github.com/alarmbridge/alarmbridge/internal/httpserver/deps"
)

// Events lists the calendar entries of an account-context inside an
// inclusive [start,end] window given as RFC 3339 query parameters.
func Events(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		coord := coordinatorFrom(d, w, r)
		if coord == nil {
			return
		}
		acc := coord.Accessor()
		if acc == nil {
			writeError(w, http.StatusServiceUnavailable, "no snapshot yet")
			return
		}

		start, err := time.Parse(time.RFC3339, r.URL.Query().Get("start"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid or missing start parameter")
			return
		}
		end, err := time.Parse(time.RFC3339, r.URL.Query().Get("end"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid or missing end parameter")
			return
		}

		writeJSON(w, http.StatusOK, acc.Events(start, end))
	}
}
