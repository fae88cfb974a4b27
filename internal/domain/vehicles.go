package domain

import (
	"sort"
	"strconv"
	"time"

	"github.com/alarmbridge/alarmbridge/internal/logger"
)

// VehicleAttributes is the telemetry bundle of one tracked vehicle.
type VehicleAttributes struct {
	Fullname      string    `json:"fullname"`
	Shortname     string    `json:"shortname"`
	Name          string    `json:"name"`
	FMSStatusNote string    `json:"fmsstatus_note"`
	FMSStatusTS   time.Time `json:"fmsstatus_ts"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	OPTA          string    `json:"opta"`
	ISSI          string    `json:"issi"`
	Number        string    `json:"number"`
}

// VehicleIDs lists the ids of all tracked vehicles, numerically sorted.
func (a *Accessor) VehicleIDs() []string {
	ids := make([]string, 0, len(a.snap.Data.Cluster.Vehicle))
	for id := range a.snap.Data.Cluster.Vehicle {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		left, _ := strconv.ParseInt(ids[i], 10, 64)
		right, _ := strconv.ParseInt(ids[j], 10, 64)
		return left < right
	})
	return ids
}

// VehicleStatus returns a vehicle's current FMS status id. A missing
// vehicle or field is logged and degrades to the placeholder.
func (a *Accessor) VehicleStatus(vehicleID string) string {
	vehicle, ok := a.snap.Data.Cluster.Vehicle[vehicleID]
	if !ok || vehicle.FMSStatusID == nil {
		a.logger.Warn("vehicle status unavailable",
			logger.String("vehicle", vehicleID))
		return StateUnknown
	}
	return strconv.FormatInt(*vehicle.FMSStatusID, 10)
}

// VehicleAttributes returns a vehicle's telemetry bundle with its status
// timestamp converted to the configured zone. ok is false (and the miss is
// logged) when the vehicle is absent from the snapshot.
func (a *Accessor) VehicleAttributes(vehicleID string) (VehicleAttributes, bool) {
	vehicle, ok := a.snap.Data.Cluster.Vehicle[vehicleID]
	if !ok {
		a.logger.Warn("vehicle missing from snapshot",
			logger.String("vehicle", vehicleID))
		return VehicleAttributes{}, false
	}
	return VehicleAttributes{
		Fullname:      vehicle.Fullname,
		Shortname:     vehicle.Shortname,
		Name:          vehicle.Name,
		FMSStatusNote: vehicle.FMSStatusNote,
		FMSStatusTS:   a.localTime(vehicle.FMSStatusTS),
		Latitude:      vehicle.Latitude,
		Longitude:     vehicle.Longitude,
		OPTA:          vehicle.OPTA,
		ISSI:          vehicle.ISSI,
		Number:        vehicle.Number,
	}, true
}
