package handlers

import (
	"net/http"

	"github.com/alarmbridge/alarmbridge/internal/httpserver/deps"
	"github.com/alarmbridge/alarmbridge/internal/logger"
)

// Refresh triggers an immediate out-of-band refresh for every coordinator.
func Refresh(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		triggered := 0
		for _, key := range d.Order {
			coord := d.Coordinators[key]
			if coord.TriggerRefresh() {
				triggered++
				continue
			}
			d.Logger.Warn("refresh already in progress",
				logger.String("account", coord.Name()))
		}

		if triggered == 0 {
			writeError(w, http.StatusTooManyRequests, "refresh already in progress")
			return
		}
		d.Logger.Info("manual refresh triggered via endpoint",
			logger.Int("contexts", triggered),
			logger.String("remote_ip", r.RemoteAddr))
		writeJSON(w, http.StatusAccepted, map[string]int{"triggered": triggered})
	}
}
