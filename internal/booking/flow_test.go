package booking

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/skillswap/skillswap/internal/common/apperrors"
	"github.com/skillswap/skillswap/internal/common/httpclient"
	"github.com/skillswap/skillswap/internal/fakeapi"
	"github.com/skillswap/skillswap/internal/view"
	"github.com/skillswap/skillswap/pkg/api"
	"github.com/skillswap/skillswap/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingRegistrar struct {
	requests []types.SessionRequest
	err      error
}

func (r *recordingRegistrar) RegisterSession(ctx context.Context, req types.SessionRequest) (*types.Session, error) {
	r.requests = append(r.requests, req)
	if r.err != nil {
		return nil, r.err
	}
	return &types.Session{
		ID: 1, SkillID: req.SkillID, TeacherID: req.TeacherID, StudentID: req.StudentID,
		Date: req.Date, Time: req.Time, Status: types.StatusPending,
	}, nil
}

func mondaySkill() types.Skill {
	return types.Skill{
		ID:     5,
		UserID: 7,
		Name:   "Guitar",
		Price:  10,
		Availability: &types.Availability{
			Days: []string{"Monday", "Wednesday", "Monday"},
			TimeSlots: []types.TimeSlot{
				{StartTime: "09:00", EndTime: "10:00"},
				{StartTime: "14:00", EndTime: "15:00"},
				{StartTime: "18:00", EndTime: "19:00"},
			},
		},
	}
}

func newFlow(t *testing.T, reg Registrar) *Flow {
	t.Helper()
	scope := view.NewScope(context.Background())
	t.Cleanup(scope.Close)
	f := NewFlow(scope, reg, mondaySkill(), types.User{ID: 3, Credits: 25})
	f.now = func() time.Time { return time.Date(2026, time.October, 15, 12, 0, 0, 0, time.UTC) }
	return f
}

func TestBuildRequestRoles(t *testing.T) {
	skill := mondaySkill()
	req := BuildRequest(skill, types.User{ID: 3}, skill.Availability.Slots()[0])
	assert.Equal(t, types.SessionRequest{
		SkillID:   5,
		TeacherID: 3,
		StudentID: 7,
		Date:      "Monday",
		Time:      "09:00-10:00",
	}, req)
}

func TestAvailabilityGrid(t *testing.T) {
	f := newFlow(t, &recordingRegistrar{})
	assert.Equal(t, []string{"Monday", "Wednesday"}, f.Days())

	monday := f.SlotsFor("Monday")
	require.Len(t, monday, 2)
	assert.Equal(t, "09:00-10:00", monday[0].Slot.Range())
	assert.Equal(t, "18:00-19:00", monday[1].Slot.Range())

	// only Wednesday's own slot is listed under Wednesday
	wed := f.SlotsFor("Wednesday")
	require.Len(t, wed, 1)
	assert.Equal(t, "14:00", wed[0].Slot.StartTime)
	assert.Empty(t, f.SlotsFor("Friday"))
}

func TestBookingHappyPath(t *testing.T) {
	reg := &recordingRegistrar{}
	f := newFlow(t, reg)
	assert.Equal(t, Browsing, f.State())

	_, err := f.RequestConfirmation()
	assert.ErrorIs(t, err, ErrNoSelection)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	require.NoError(t, f.Select(1))
	require.NoError(t, f.SelectSlot("Monday", "09:00", "10:00"))
	sel, ok := f.Selected()
	require.True(t, ok)
	assert.Equal(t, 0, sel.Index)
	assert.Equal(t, SlotSelected, f.State())

	c, err := f.RequestConfirmation()
	require.NoError(t, err)
	assert.Equal(t, Confirming, f.State())
	assert.Equal(t, "Monday", c.Date)
	assert.Equal(t, "09:00", c.Start)
	assert.Equal(t, "10:00", c.End)
	assert.Equal(t, 10, c.Price)
	assert.Equal(t, 25, c.Credits)
	assert.Equal(t, time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC), c.NextDate)

	// selection is frozen while confirming
	assert.ErrorIs(t, f.Select(2), ErrWrongState)

	session, err := f.Confirm(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Booked, f.State())
	assert.Equal(t, types.StatusPending, session.Status)
	assert.Same(t, session, f.Session())
	require.Len(t, reg.requests, 1)
	assert.Equal(t, types.SessionRequest{SkillID: 5, TeacherID: 3, StudentID: 7, Date: "Monday", Time: "09:00-10:00"}, reg.requests[0])

	_, err = f.Confirm(context.Background())
	assert.ErrorIs(t, err, ErrWrongState)
}

func TestBookingFailureStaysConfirming(t *testing.T) {
	srv := fakeapi.New()
	srv.AddUser(types.User{ID: 3, Name: "Viewer", Credits: 25})
	srv.AddUser(types.User{ID: 7, Name: "Owner", Credits: 60})
	skill := mondaySkill()
	srv.AddSkill(skill)
	client := api.NewClient(httpclient.NewTestClient(httpclient.StaticConfig("http://localhost:8000"), srv))

	scope := view.NewScope(context.Background())
	defer scope.Close()
	f := NewFlow(scope, client, skill, types.User{ID: 3, Credits: 25})

	require.NoError(t, f.SelectSlot("Monday", "09:00", "10:00"))
	_, err := f.RequestConfirmation()
	require.NoError(t, err)

	srv.FailNext("POST /sessions/register", http.StatusBadRequest, "slot taken")
	_, err = f.Confirm(context.Background())
	require.Error(t, err)
	assert.Equal(t, Confirming, f.State())
	require.Error(t, f.Err())
	assert.Equal(t, "slot taken", f.Err().Error())
	assert.Nil(t, f.Session())
	_, selected := f.Selected()
	assert.True(t, selected)

	// retry succeeds against the server
	session, err := f.Confirm(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Booked, f.State())
	assert.NoError(t, f.Err())
	stored, ok := srv.Session(session.ID)
	require.True(t, ok)
	assert.Equal(t, int64(3), stored.TeacherID)
	assert.Equal(t, int64(7), stored.StudentID)
}

func TestCancelClearsOnlyError(t *testing.T) {
	reg := &recordingRegistrar{err: apperrors.ErrAPI.New("slot taken")}
	f := newFlow(t, reg)
	require.NoError(t, f.Select(2))
	_, err := f.RequestConfirmation()
	require.NoError(t, err)
	_, err = f.Confirm(context.Background())
	require.Error(t, err)

	f.Cancel()
	assert.Equal(t, SlotSelected, f.State())
	assert.NoError(t, f.Err())
	sel, ok := f.Selected()
	require.True(t, ok)
	assert.Equal(t, 2, sel.Index)
}

func TestConfirmAfterScopeClosed(t *testing.T) {
	reg := &recordingRegistrar{}
	scope := view.NewScope(context.Background())
	f := NewFlow(scope, reg, mondaySkill(), types.User{ID: 3})
	require.NoError(t, f.Select(0))
	_, err := f.RequestConfirmation()
	require.NoError(t, err)

	scope.Close()
	_, err = f.Confirm(context.Background())
	assert.True(t, errors.Is(err, view.ErrReleased))
	assert.Empty(t, reg.requests)
	assert.Equal(t, Confirming, f.State())
	assert.NoError(t, f.Err())
}

type closingRegistrar struct {
	scope *view.Scope
}

func (r closingRegistrar) RegisterSession(ctx context.Context, req types.SessionRequest) (*types.Session, error) {
	r.scope.Close()
	return &types.Session{ID: 9, SkillID: req.SkillID}, nil
}

func TestConfirmClosedDuringRequest(t *testing.T) {
	scope := view.NewScope(context.Background())
	f := NewFlow(scope, closingRegistrar{scope: scope}, mondaySkill(), types.User{ID: 3})
	require.NoError(t, f.Select(0))
	_, err := f.RequestConfirmation()
	require.NoError(t, err)

	session, err := f.Confirm(context.Background())
	assert.ErrorIs(t, err, view.ErrReleased)
	assert.Nil(t, session)
	assert.Equal(t, Confirming, f.State())
	assert.Nil(t, f.Session())
	assert.NoError(t, f.Err())
}

func TestSelectUnknownSlot(t *testing.T) {
	f := newFlow(t, &recordingRegistrar{})
	assert.ErrorIs(t, f.Select(3), ErrNoSuchSlot)
	assert.ErrorIs(t, f.Select(-1), ErrNoSuchSlot)
	assert.ErrorIs(t, f.SelectSlot("Wednesday", "09:00", "10:00"), ErrNoSuchSlot)
	assert.Equal(t, Browsing, f.State())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "slot selected", SlotSelected.String())
	assert.Equal(t, "State(9)", State(9).String())
}
