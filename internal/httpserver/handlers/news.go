package handlers

import (
	"net/http"

	"github.com/alarmbridge/alarmbridge/internal/domain"
	"github.com/alarmbridge/alarmbridge/internal/httpserver/deps"
)

type newsResponse struct {
	Title      string                 `json:"title"`
	Attributes *domain.NewsAttributes `json:"attributes,omitempty"`
}

// News reports the most recent announcement of an account-context.
func News(d deps.Deps) http.HandlerFunc {
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
		resp := newsResponse{Title: acc.LastNews()}
		if attrs, ok := acc.LastNewsAttributes(); ok {
			resp.Attributes = &attrs
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
