// Package booking implements the skill detail booking flow: pick one
// (day, slot) pair of a skill's availability, confirm it, and register a
// session with the API.
package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/skillswap/skillswap/internal/common/apperrors"
	"github.com/skillswap/skillswap/internal/view"
	"github.com/skillswap/skillswap/pkg/types"
)

// State is the position of a Flow in the booking state machine.
type State int

const (
	Browsing State = iota
	SlotSelected
	Confirming
	Booked
)

func (s State) String() string {
	switch s {
	case Browsing:
		return "browsing"
	case SlotSelected:
		return "slot selected"
	case Confirming:
		return "confirming"
	case Booked:
		return "booked"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

var (
	// ErrNoSelection is returned when confirmation is requested without a slot.
	ErrNoSelection = apperrors.ErrValidation.New("select a day and time slot first")
	// ErrNoSuchSlot is returned when a selection does not name an offered slot.
	ErrNoSuchSlot = apperrors.ErrValidation.New("no such slot in this skill's availability")
	// ErrWrongState is returned for actions the current state does not allow.
	ErrWrongState = apperrors.New("action not allowed in the current booking state")
)

// Registrar registers sessions.
type Registrar interface {
	RegisterSession(ctx context.Context, req types.SessionRequest) (*types.Session, error)
}

// Confirmation is what the confirmation view shows. Credits is the viewer's
// balance for display only; nothing checks it against Price.
type Confirmation struct {
	Date     string    `json:"date"`
	Start    string    `json:"start_time"`
	End      string    `json:"end_time"`
	Price    int       `json:"price"`
	Credits  int       `json:"credits"`
	NextDate time.Time `json:"next_date"`
}

// Flow is the booking state machine for one skill and one viewer.
type Flow struct {
	scope  *view.Scope
	api    Registrar
	skill  types.Skill
	viewer types.User
	slots  []types.DaySlot
	now    func() time.Time

	mu         sync.Mutex
	state      State
	selected   *types.DaySlot
	err        error
	session    *types.Session
	submitting bool
}

// NewFlow starts browsing the availability of skill on behalf of viewer.
// Requests are owned by scope.
func NewFlow(scope *view.Scope, api Registrar, skill types.Skill, viewer types.User) *Flow {
	return &Flow{
		scope:  scope,
		api:    api,
		skill:  skill,
		viewer: viewer,
		slots:  skill.Availability.Slots(),
		now:    time.Now,
	}
}

// Slots returns every bookable (day, slot) pair in availability order.
func (f *Flow) Slots() []types.DaySlot {
	return append([]types.DaySlot(nil), f.slots...)
}

// Days returns the distinct offered days in the order they first appear.
func (f *Flow) Days() []string {
	seen := make(map[string]bool)
	var days []string
	for _, s := range f.slots {
		if !seen[s.Day] {
			seen[s.Day] = true
			days = append(days, s.Day)
		}
	}
	return days
}

// SlotsFor returns the pairs offered on day. Only the slot at the day's own
// position belongs to it.
func (f *Flow) SlotsFor(day string) []types.DaySlot {
	var out []types.DaySlot
	for _, s := range f.slots {
		if s.Day == day {
			out = append(out, s)
		}
	}
	return out
}

// Select picks the pair at index in Slots, replacing any prior selection.
func (f *Flow) Select(index int) error {
	if index < 0 || index >= len(f.slots) {
		return ErrNoSuchSlot
	}
	return f.selectSlot(f.slots[index])
}

// SelectSlot picks the pair offered on day from start to end.
func (f *Flow) SelectSlot(day, start, end string) error {
	for _, s := range f.slots {
		if s.Day == day && s.Slot.StartTime == start && s.Slot.EndTime == end {
			return f.selectSlot(s)
		}
	}
	return ErrNoSuchSlot
}

func (f *Flow) selectSlot(s types.DaySlot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == Confirming {
		return ErrWrongState
	}
	f.selected = &s
	f.state = SlotSelected
	return nil
}

// Selected returns the current selection.
func (f *Flow) Selected() (types.DaySlot, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.selected == nil {
		return types.DaySlot{}, false
	}
	return *f.selected, true
}

// RequestConfirmation opens the confirmation view for the selected pair.
func (f *Flow) RequestConfirmation() (Confirmation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.selected == nil {
		return Confirmation{}, ErrNoSelection
	}
	if f.state != SlotSelected {
		return Confirmation{}, ErrWrongState
	}
	f.state = Confirming
	f.err = nil
	return f.confirmation(), nil
}

func (f *Flow) confirmation() Confirmation {
	s := *f.selected
	return Confirmation{
		Date:     s.Day,
		Start:    s.Slot.StartTime,
		End:      s.Slot.EndTime,
		Price:    f.skill.Price,
		Credits:  f.viewer.Credits,
		NextDate: types.NextWeekDates(f.now())[s.Day],
	}
}

// Confirm registers the session. On success the flow is Booked and the
// confirmation closes; balances and availability are left to the server. On
// failure the flow stays Confirming with the error kept for display, and
// Confirm may be called again.
func (f *Flow) Confirm(ctx context.Context) (*types.Session, error) {
	f.mu.Lock()
	if f.state != Confirming || f.submitting {
		f.mu.Unlock()
		return nil, ErrWrongState
	}
	f.submitting = true
	req := BuildRequest(f.skill, f.viewer, *f.selected)
	f.mu.Unlock()

	var session *types.Session
	err := view.Apply(f.scope, ctx, func(ctx context.Context) (*types.Session, error) {
		return f.api.RegisterSession(ctx, req)
	}, func(s *types.Session, err error) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.submitting = false
		if err != nil {
			log.Ctx(ctx).Debug().Err(err).Int64("skill_id", req.SkillID).Msg("booking failed")
			f.err = err
			return
		}
		f.state = Booked
		f.selected = nil
		f.err = nil
		f.session = s
		session = s
	})
	if errors.Is(err, view.ErrReleased) {
		f.mu.Lock()
		f.submitting = false
		f.mu.Unlock()
		return nil, err
	}
	if err != nil {
		return nil, err
	}
	return session, nil
}

// Cancel closes the confirmation view, keeping the selection and clearing
// only the error.
func (f *Flow) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == Confirming && !f.submitting {
		f.state = SlotSelected
		f.err = nil
	}
}

// State returns the current state.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Err returns the error shown in the confirmation view, if any.
func (f *Flow) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// Session returns the booked session once the flow is Booked.
func (f *Flow) Session() *types.Session {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.session
}

// BuildRequest is the session registration sent for booking slot of skill.
// The viewer is recorded as the teacher and the skill's owner as the
// student, matching what the production front-end has always sent.
func BuildRequest(skill types.Skill, viewer types.User, slot types.DaySlot) types.SessionRequest {
	return types.SessionRequest{
		SkillID:   skill.ID,
		TeacherID: viewer.ID,
		StudentID: skill.UserID,
		Date:      slot.Day,
		Time:      slot.Slot.Range(),
	}
}
