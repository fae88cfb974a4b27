package handlers

import (
	"net/http"

	"github.com/alarmbridge/alarmbridge/internal/domain"
	"github.com/alarmbridge/alarmbridge/internal/httpserver/deps"
)

type vehicleResponse struct {
	ID         string                    `json:"id"`
	Status     string                    `json:"status"`
	Attributes *domain.VehicleAttributes `json:"attributes,omitempty"`
}

// Vehicles lists every tracked vehicle of an account-context with its
// current FMS status and telemetry.
func Vehicles(d deps.Deps) http.HandlerFunc {
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

		ids := acc.VehicleIDs()
		vehicles := make([]vehicleResponse, 0, len(ids))
		for _, id := range ids {
			v := vehicleResponse{
				ID:     id,
				Status: acc.VehicleStatus(id),
			}
			if attrs, ok := acc.VehicleAttributes(id); ok {
				v.Attributes = &attrs
			}
			vehicles = append(vehicles, v)
		}
		writeJSON(w, http.StatusOK, vehicles)
	}
}
