package domain

import (
	"time"

	"github.com/alarmbridge/alarmbridge/internal/divera"
)

// CalendarEvent is one calendar entry with its epochs converted to the
// configured zone.
type CalendarEvent struct {
	UID         int64     `json:"uid"`
	Summary     string    `json:"summary"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
}

func (a *Accessor) mapEvent(ev divera.Event) CalendarEvent {
	return CalendarEvent{
		UID:         ev.ID,
		Summary:     ev.Title,
		Start:       a.localTime(ev.Start),
		End:         a.localTime(ev.End),
		Location:    ev.Address,
		Description: ev.Text,
	}
}

// LastEvent returns the most recent calendar entry. ok is false when the
// snapshot holds no events.
func (a *Accessor) LastEvent() (CalendarEvent, bool) {
	ev, ok := a.snap.Data.Events.Latest()
	if !ok {
		return CalendarEvent{}, false
	}
	return a.mapEvent(ev), true
}

// Events returns every calendar entry starting at or after start and ending
// at or before end, in sorting order. Both bounds are inclusive.
func (a *Accessor) Events(start, end time.Time) []CalendarEvent {
	cat := a.snap.Data.Events
	events := make([]CalendarEvent, 0, len(cat.Sorting))
	for _, id := range cat.Sorting {
		ev := a.mapEvent(cat.Get(id))
		if !ev.Start.Before(start) && !ev.End.After(end) {
			events = append(events, ev)
		}
	}
	return events
}
