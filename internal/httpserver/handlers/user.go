package handlers

import (
	"net/http"

	"github.com/alarmbridge/alarmbridge/internal/httpserver/deps"
)

// User returns the identity bundle of an account-context.
func User(d deps.Deps) http.HandlerFunc {
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
		writeJSON(w, http.StatusOK, acc.User())
	}
}
