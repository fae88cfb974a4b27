package handlers

import (
	"net/http"

	"github.com/alarmbridge/alarmbridge/internal/domain"
	"github.com/alarmbridge/alarmbridge/internal/httpserver/deps"
)

type alarmResponse struct {
	Title      string                  `json:"title"`
	HasOpen    bool                    `json:"has_open"`
	Attributes *domain.AlarmAttributes `json:"attributes,omitempty"`
}

// Alarm reports the most recent alarm of an account-context.
func Alarm(d deps.Deps) http.HandlerFunc {
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
		resp := alarmResponse{
			Title:   acc.LastAlarm(),
			HasOpen: acc.HasOpenAlarms(),
		}
		if attrs, ok := acc.LastAlarmAttributes(); ok {
			resp.Attributes = &attrs
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
