package handlers

import (
	"net/http"
	"time"

	"github.com/alarmbridge/alarmbridge/internal/httpserver/deps"
	"github.com/alarmbridge/alarmbridge/internal/logger"
)

type contextReadiness struct {
	Account     string     `json:"account"`
	UCR         string     `json:"ucr,omitempty"`
	Ready       bool       `json:"ready"`
	Stale       bool       `json:"stale"`
	NeedsReauth bool       `json:"needs_reauth"`
	LastSuccess *time.Time `json:"last_success,omitempty"`
	LastError   string     `json:"last_error,omitempty"`
	CachedAt    *time.Time `json:"cached_at,omitempty"`
}

type readyzResponse struct {
	Status   string             `json:"status"`
	Contexts []contextReadiness `json:"contexts"`
}

// Readyz reports ready only when every coordinator has published a
// snapshot. A stale context is still ready: readers keep the last good
// snapshot by design.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := readyzResponse{Status: "ok"}
		status := http.StatusOK

		for _, key := range d.Order {
			coord := d.Coordinators[key]
			cr := contextReadiness{
				Account:     coord.Name(),
				UCR:         coord.UCRID(),
				Ready:       coord.Ready(),
				Stale:       coord.Stale(),
				NeedsReauth: coord.NeedsReauth(),
			}
			if ts := coord.LastSuccess(); !ts.IsZero() {
				cr.LastSuccess = &ts
			}
			if err := coord.LastError(); err != nil {
				cr.LastError = err.Error()
			}
			if d.Store != nil {
				cached, err := d.Store.LastRefresh(r.Context(), coord.UCRID())
				if err != nil {
					d.Logger.Warn("failed to read cache refresh time",
						logger.String("account", coord.Name()),
						logger.Error(err))
				} else if !cached.IsZero() {
					cr.CachedAt = &cached
				}
			}
			if !cr.Ready {
				resp.Status = "unavailable"
				status = http.StatusServiceUnavailable
			}
			resp.Contexts = append(resp.Contexts, cr)
		}

		writeJSON(w, status, resp)
	}
}
