package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/alarmbridge/alarmbridge/internal/divera"
	"github.com/alarmbridge/alarmbridge/internal/domain"
	"github.com/alarmbridge/alarmbridge/internal/httpserver/deps"
	"github.com/alarmbridge/alarmbridge/internal/logger"
)

type statusResponse struct {
	State      string                 `json:"state"`
	Attributes domain.StateAttributes `json:"attributes"`
	Options    []string               `json:"options"`
}

// Status reports the current availability state of an account-context.
func Status(d deps.Deps) http.HandlerFunc {
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
		writeJSON(w, http.StatusOK, statusResponse{
			State:      acc.UserState(),
			Attributes: acc.UserStateAttributes(),
			Options:    acc.AllStateNames(),
		})
	}
}

type setStatusRequest struct {
	Name string `json:"name,omitempty"`
	ID   *int64 `json:"id,omitempty"`
}

// SetStatus pushes a status change for an account-context and triggers an
// out-of-band refresh to reconcile. Transport failures propagate to the
// caller so a user-initiated change can report failure.
func SetStatus(d deps.Deps) http.HandlerFunc {
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
		if !acc.UsergroupAllowed() {
			writeError(w, http.StatusForbidden, "usergroup not permitted to set status")
			return
		}

		var req setStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Name == "" && req.ID == nil {
			writeError(w, http.StatusBadRequest, "either name or id is required")
			return
		}

		var err error
		if req.ID != nil {
			err = acc.SetUserStateByID(r.Context(), *req.ID)
		} else {
			err = acc.SetUserStateByName(r.Context(), req.Name)
		}

		switch {
		case errors.Is(err, domain.ErrStateNotFound):
			writeError(w, http.StatusNotFound, err.Error())
			return
		case errors.Is(err, divera.ErrAuth):
			writeError(w, http.StatusUnauthorized, "access key rejected")
			return
		case errors.Is(err, divera.ErrConnection):
			writeError(w, http.StatusBadGateway, "remote service unreachable")
			return
		case err != nil:
			writeError(w, http.StatusInternalServerError, "status change failed")
			return
		}

		if !coord.TriggerRefresh() {
			d.Logger.Warn("refresh already pending after status change",
				logger.String("account", coord.Name()))
		}
		writeJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
	}
}
