package domain

import (
	"fmt"
	"strconv"
	"time"

	"github.com/alarmbridge/alarmbridge/internal/divera"
	"github.com/alarmbridge/alarmbridge/internal/logger"
)

// AlarmAttributes is the full attribute bundle of the most recent alarm.
type AlarmAttributes struct {
	ID            int64     `json:"id"`
	ForeignID     string    `json:"foreign_id"`
	Text          string    `json:"text"`
	Date          time.Time `json:"date"`
	Address       string    `json:"address"`
	Latitude      string    `json:"latitude"`
	Longitude     string    `json:"longitude"`
	Groups        []string  `json:"groups"`
	Priority      bool      `json:"priority"`
	Closed        bool      `json:"closed"`
	New           bool      `json:"new"`
	SelfAddressed bool      `json:"self_addressed"`
	Answered      string    `json:"answered"`
}

// HasOpenAlarms reports whether any alarm in sorting order is not closed.
func (a *Accessor) HasOpenAlarms() bool {
	cat := a.snap.Data.Alarm
	for _, id := range cat.Sorting {
		if !cat.Get(id).Closed {
			return true
		}
	}
	return false
}

// LastAlarm returns the title of the most recent alarm, or the placeholder
// when none exist.
func (a *Accessor) LastAlarm() string {
	alarm, ok := a.snap.Data.Alarm.Latest()
	if !ok {
		return StateUnknown
	}
	if alarm.Title == "" {
		return StateUnknown
	}
	return alarm.Title
}

// LastAlarmAttributes returns the most recent alarm's attribute bundle.
// ok is false when the snapshot holds no alarms.
func (a *Accessor) LastAlarmAttributes() (AlarmAttributes, bool) {
	alarm, ok := a.snap.Data.Alarm.Latest()
	if !ok {
		return AlarmAttributes{}, false
	}
	return AlarmAttributes{
		ID:            alarm.ID,
		ForeignID:     alarm.ForeignID,
		Text:          alarm.Text,
		Date:          a.localTime(alarm.Date),
		Address:       alarm.Address,
		Latitude:      strconv.FormatFloat(alarm.Latitude, 'f', -1, 64),
		Longitude:     strconv.FormatFloat(alarm.Longitude, 'f', -1, 64),
		Groups:        a.alarmGroupNames(alarm),
		Priority:      alarm.Priority,
		Closed:        alarm.Closed,
		New:           alarm.New,
		SelfAddressed: alarm.UCRSelfAddressed,
		Answered:      a.answeredState(alarm),
	}, true
}

// alarmGroupNames resolves an alarm's responding groups. Local cluster
// lookup wins; ids absent there fall back to the alarm's cross-unit table,
// which yields "<group> (<cluster>)". Ids absent from both contribute
// nothing rather than failing the whole bundle.
func (a *Accessor) alarmGroupNames(alarm divera.Alarm) []string {
	meta := alarm.CrossUnitMeta
	names := make([]string, 0, len(alarm.Groups))
	for _, groupID := range alarm.Groups {
		if name, ok := a.GroupNameByID(groupID); ok {
			names = append(names, name)
			continue
		}
		cug, ok := meta.Groups[strconv.FormatInt(groupID, 10)]
		if !ok {
			continue
		}
		clusterName := meta.Clusters[strconv.FormatInt(cug.ClusterID, 10)].Name
		names = append(names, fmt.Sprintf("%s (%s)", cug.Name, clusterName))
	}
	return names
}

// answeredState names the state the active account-context answered the
// alarm with, scanning each state's set of answering contexts. Contexts
// that appear nowhere report NotAnswered.
func (a *Accessor) answeredState(alarm divera.Alarm) string {
	ucrID := strconv.FormatInt(a.ActiveUCR(), 10)
	for stateID, contexts := range alarm.UCRAnswered {
		if _, ok := contexts[ucrID]; !ok {
			continue
		}
		id, err := strconv.ParseInt(stateID, 10, 64)
		if err != nil {
			a.logger.Warn("malformed state id in answer table",
				logger.String("state_id", stateID))
			continue
		}
		return a.StateNameByID(id)
	}
	return NotAnswered
}

// GroupNameByID resolves a responding-group id within the polled cluster.
func (a *Accessor) GroupNameByID(groupID int64) (string, bool) {
	group, ok := a.snap.Data.Cluster.Group[strconv.FormatInt(groupID, 10)]
	if !ok {
		return "", false
	}
	return group.Name, true
}
