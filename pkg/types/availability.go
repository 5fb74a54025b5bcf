package types

import "time"

// Weekdays are the day names accepted in an availability, Monday first.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// TimeSlot is a wall clock range in "HH:MM" form.
type TimeSlot struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// Range formats the slot as "{start}-{end}".
func (t TimeSlot) Range() string {
	return t.StartTime + "-" + t.EndTime
}

// Availability is an owner's declared schedule. Days and TimeSlots are
// paired by position: TimeSlots[i] is the slot offered on Days[i].
type Availability struct {
	Days      []string   `json:"days"`
	TimeSlots []TimeSlot `json:"time_slots"`
}

// DaySlot is one bookable (day, slot) pair of an Availability.
type DaySlot struct {
	Index int
	Day   string
	Slot  TimeSlot
}

// Slots returns the positional pairing as an explicit tuple list. Entries
// without a counterpart in the other list are not bookable and are left out.
func (a *Availability) Slots() []DaySlot {
	if a == nil {
		return nil
	}
	n := min(len(a.Days), len(a.TimeSlots))
	slots := make([]DaySlot, 0, n)
	for i := 0; i < n; i++ {
		slots = append(slots, DaySlot{Index: i, Day: a.Days[i], Slot: a.TimeSlots[i]})
	}
	return slots
}

// Add appends one day and its slot. Duplicates are kept and start is not
// checked against end.
func (a *Availability) Add(day, start, end string) {
	a.Days = append(a.Days, day)
	a.TimeSlots = append(a.TimeSlots, TimeSlot{StartTime: start, EndTime: end})
}

// Len is the number of bookable pairs.
func (a *Availability) Len() int {
	return len(a.Slots())
}

// IsWeekday reports whether day is one of Weekdays, matched exactly.
func IsWeekday(day string) bool {
	for _, d := range Weekdays {
		if d == day {
			return true
		}
	}
	return false
}

// NextWeekDates maps each weekday name to its date in the coming week. Weeks
// start on Sunday, so the coming week's Monday is eight days after a Sunday
// and seven days after a Monday.
func NextWeekDates(now time.Time) map[string]time.Time {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())

	monday := today.AddDate(0, 0, 8-int(today.Weekday()))

	dates := make(map[string]time.Time, len(Weekdays))
	for i, day := range Weekdays {
		dates[day] = monday.AddDate(0, 0, i)
	}
	return dates
}
