package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailabilitySlots(t *testing.T) {
	tests := []struct {
		name     string
		avail    *Availability
		expected []DaySlot
	}{
		{
			name:     "nil availability",
			avail:    nil,
			expected: nil,
		},
		{
			name: "paired by position",
			avail: &Availability{
				Days: []string{"Monday", "Wednesday"},
				TimeSlots: []TimeSlot{
					{StartTime: "09:00", EndTime: "10:00"},
					{StartTime: "14:00", EndTime: "16:00"},
				},
			},
			expected: []DaySlot{
				{Index: 0, Day: "Monday", Slot: TimeSlot{StartTime: "09:00", EndTime: "10:00"}},
				{Index: 1, Day: "Wednesday", Slot: TimeSlot{StartTime: "14:00", EndTime: "16:00"}},
			},
		},
		{
			name: "duplicate days are separate pairs",
			avail: &Availability{
				Days: []string{"Monday", "Monday"},
				TimeSlots: []TimeSlot{
					{StartTime: "09:00", EndTime: "10:00"},
					{StartTime: "11:00", EndTime: "12:00"},
				},
			},
			expected: []DaySlot{
				{Index: 0, Day: "Monday", Slot: TimeSlot{StartTime: "09:00", EndTime: "10:00"}},
				{Index: 1, Day: "Monday", Slot: TimeSlot{StartTime: "11:00", EndTime: "12:00"}},
			},
		},
		{
			name: "unmatched entries are dropped",
			avail: &Availability{
				Days:      []string{"Monday", "Tuesday", "Friday"},
				TimeSlots: []TimeSlot{{StartTime: "10:00", EndTime: "12:00"}},
			},
			expected: []DaySlot{
				{Index: 0, Day: "Monday", Slot: TimeSlot{StartTime: "10:00", EndTime: "12:00"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.avail.Slots()
			if tt.expected == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestAvailabilityAdd(t *testing.T) {
	a := Availability{
		Days:      []string{"Monday"},
		TimeSlots: []TimeSlot{{StartTime: "09:00", EndTime: "10:00"}},
	}
	a.Add("Friday", "14:00", "15:00")

	assert.Equal(t, []string{"Monday", "Friday"}, a.Days)
	assert.Equal(t, []TimeSlot{
		{StartTime: "09:00", EndTime: "10:00"},
		{StartTime: "14:00", EndTime: "15:00"},
	}, a.TimeSlots)

	// no ordering check on the slot itself
	a.Add("Friday", "15:00", "14:00")
	assert.Equal(t, 3, a.Len())
}

func TestAvailabilityJSON(t *testing.T) {
	raw := `{"days":["Monday"],"time_slots":[{"start_time":"09:00","end_time":"10:00"}]}`
	var a Availability
	require.NoError(t, json.Unmarshal([]byte(raw), &a))
	assert.Equal(t, "09:00-10:00", a.Slots()[0].Slot.Range())

	out, err := json.Marshal(a)
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(out))
}

func TestParseCategory(t *testing.T) {
	c, ok := ParseCategory(" Personal Development ")
	assert.True(t, ok)
	assert.Equal(t, CategoryPersonalDevelopment, c)
	assert.Equal(t, "Personal Development", c.Title())

	_, ok = ParseCategory("cooking")
	assert.False(t, ok)

	assert.True(t, CategoryArts.Valid())
	assert.False(t, Category("Arts").Valid())
}

func TestSessionStatusTransitions(t *testing.T) {
	assert.True(t, StatusPending.CanTransition(StatusCompleted))
	assert.True(t, StatusPending.CanTransition(StatusCancelled))
	assert.False(t, StatusPending.CanTransition(StatusPending))
	assert.False(t, StatusCompleted.CanTransition(StatusCancelled))
	assert.False(t, StatusCancelled.CanTransition(StatusCompleted))
	assert.False(t, SessionStatus("archived").CanTransition(StatusCompleted))
}

func TestNextWeekDates(t *testing.T) {
	tests := []struct {
		name   string
		now    time.Time
		monday time.Time
	}{
		{
			name:   "from a thursday",
			now:    time.Date(2026, time.October, 15, 13, 30, 0, 0, time.UTC),
			monday: time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "from a monday",
			now:    time.Date(2026, time.October, 19, 8, 0, 0, 0, time.UTC),
			monday: time.Date(2026, time.October, 26, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "from a sunday",
			now:    time.Date(2026, time.October, 18, 22, 0, 0, 0, time.UTC),
			monday: time.Date(2026, time.October, 26, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "from a saturday",
			now:    time.Date(2026, time.October, 17, 9, 0, 0, 0, time.UTC),
			monday: time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dates := NextWeekDates(tt.now)
			require.Len(t, dates, 7)
			assert.Equal(t, tt.monday, dates["Monday"])
			assert.Equal(t, tt.monday.AddDate(0, 0, 6), dates["Sunday"])
			assert.Equal(t, time.Friday, dates["Friday"].Weekday())
		})
	}
}

func TestSkillHasAnyTag(t *testing.T) {
	s := Skill{Tags: []string{"Python", "Programming"}}
	assert.True(t, s.HasAnyTag([]string{"Cooking", "Python"}))
	assert.False(t, s.HasAnyTag([]string{"python"}))
	assert.False(t, s.HasAnyTag(nil))
}
