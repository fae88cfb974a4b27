package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLastNews(t *testing.T) {
	a := newTestAccessor(t, snapshotFixture, nil)
	assert.Equal(t, "Meeting", a.LastNews())

	empty := newTestAccessor(t, noAlarmsFixture, nil)
	assert.Equal(t, StateUnknown, empty.LastNews())
}

func TestLastNewsAttributes(t *testing.T) {
	a := newTestAccessor(t, snapshotFixture, nil)

	attrs, ok := a.LastNewsAttributes()
	require.True(t, ok)

	assert.Equal(t, int64(3), attrs.ID)
	assert.Equal(t, "Annual meeting", attrs.Text)
	assert.Equal(t, time.Unix(1699990000, 0).UTC(), attrs.Date)
	assert.Equal(t, "0", attrs.Latitude)
	assert.Equal(t, "0", attrs.Longitude)
	// Group 99 has no local entry; announcements carry no cross-unit
	// table, so it is dropped.
	assert.Equal(t, []string{"Rescue 1"}, attrs.Groups)
	assert.False(t, attrs.New)
	assert.True(t, attrs.SelfAddressed)

	_, ok = newTestAccessor(t, noAlarmsFixture, nil).LastNewsAttributes()
	assert.False(t, ok)
}
