package sessionflow

import (
	"context"
	"net/http"
	"testing"

	"github.com/skillswap/skillswap/internal/common/apperrors"
	"github.com/skillswap/skillswap/internal/common/httpclient"
	"github.com/skillswap/skillswap/internal/fakeapi"
	"github.com/skillswap/skillswap/internal/view"
	"github.com/skillswap/skillswap/pkg/api"
	"github.com/skillswap/skillswap/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type statusCall struct {
	id     int64
	status types.SessionStatus
}

type stubAPI struct {
	session   types.Session
	skill     types.Skill
	statusErr error
	onUpdate  func()
	calls     []statusCall
	reviews   []types.Review
}

func (s *stubAPI) FetchSession(ctx context.Context, id int64) (*types.Session, error) {
	se := s.session
	return &se, nil
}

func (s *stubAPI) FetchSkill(ctx context.Context, id int64) (*types.Skill, error) {
	sk := s.skill
	return &sk, nil
}

func (s *stubAPI) UpdateSessionStatus(ctx context.Context, id int64, status types.SessionStatus) (*types.Session, error) {
	s.calls = append(s.calls, statusCall{id, status})
	if s.onUpdate != nil {
		s.onUpdate()
	}
	if s.statusErr != nil {
		return nil, s.statusErr
	}
	return &types.Session{ID: id, Status: status}, nil
}

func (s *stubAPI) SubmitReview(ctx context.Context, sessionID int64, review types.Review) (*types.Review, error) {
	review.ID = int64(len(s.reviews) + 1)
	s.reviews = append(s.reviews, review)
	return &review, nil
}

func pendingSession() types.Session {
	return types.Session{ID: 42, SkillID: 5, TeacherID: 3, StudentID: 7, Date: "Monday", Time: "09:00-10:00", Status: types.StatusPending}
}

func load(t *testing.T, stub *stubAPI) *Flow {
	t.Helper()
	scope := view.NewScope(context.Background())
	t.Cleanup(scope.Close)
	f, err := Load(context.Background(), scope, stub, stub.session.ID)
	require.NoError(t, err)
	return f
}

func TestCompleteAsStudent(t *testing.T) {
	stub := &stubAPI{session: pendingSession(), skill: types.Skill{ID: 5, Price: 10}}
	f := load(t, stub)
	student := &types.User{ID: 7}

	assert.True(t, f.CanComplete(student))
	notice, err := f.RequestCompletion(student)
	require.NoError(t, err)
	assert.Equal(t, 10, notice.Credits)
	assert.True(t, f.Confirming())

	before := f.Session()
	require.NoError(t, f.ConfirmCompletion(context.Background()))
	assert.Equal(t, []statusCall{{42, types.StatusCompleted}}, stub.calls)

	after := f.Session()
	assert.Equal(t, types.StatusCompleted, after.Status)
	before.Status = types.StatusCompleted
	assert.Equal(t, before, after)
	assert.False(t, f.Confirming())
	assert.False(t, f.CanComplete(student))
}

func TestCompleteGuards(t *testing.T) {
	stub := &stubAPI{session: pendingSession(), skill: types.Skill{ID: 5, Price: 10}}
	f := load(t, stub)

	assert.False(t, f.CanComplete(&types.User{ID: 3}))
	assert.False(t, f.CanComplete(nil))
	_, err := f.RequestCompletion(&types.User{ID: 3})
	assert.ErrorIs(t, err, ErrNotStudent)
	assert.ErrorIs(t, f.ConfirmCompletion(context.Background()), ErrNotConfirming)

	stub.session.Status = types.StatusCancelled
	f = load(t, stub)
	_, err = f.RequestCompletion(&types.User{ID: 7})
	assert.ErrorIs(t, err, ErrNotPending)
	assert.Empty(t, stub.calls)
}

func TestCompleteFailureKeepsStatus(t *testing.T) {
	stub := &stubAPI{
		session:   pendingSession(),
		skill:     types.Skill{ID: 5, Price: 10},
		statusErr: apperrors.ErrAPI.New("Session not found.").SetStatusCode(http.StatusNotFound),
	}
	f := load(t, stub)
	_, err := f.RequestCompletion(&types.User{ID: 7})
	require.NoError(t, err)

	err = f.ConfirmCompletion(context.Background())
	require.Error(t, err)
	assert.Equal(t, types.StatusPending, f.Session().Status)
	assert.EqualError(t, f.Err(), "Session not found.")
	assert.True(t, f.Confirming())

	f.CancelCompletion()
	assert.False(t, f.Confirming())
}

func TestCompleteAfterClose(t *testing.T) {
	stub := &stubAPI{session: pendingSession(), skill: types.Skill{ID: 5}}
	scope := view.NewScope(context.Background())
	f, err := Load(context.Background(), scope, stub, 42)
	require.NoError(t, err)
	_, err = f.RequestCompletion(&types.User{ID: 7})
	require.NoError(t, err)

	scope.Close()
	assert.ErrorIs(t, f.ConfirmCompletion(context.Background()), view.ErrReleased)
	assert.Equal(t, types.StatusPending, f.Session().Status)
	assert.Empty(t, stub.calls)
}

func TestCompleteClosedDuringRequest(t *testing.T) {
	stub := &stubAPI{session: pendingSession(), skill: types.Skill{ID: 5}}
	scope := view.NewScope(context.Background())
	f, err := Load(context.Background(), scope, stub, 42)
	require.NoError(t, err)
	_, err = f.RequestCompletion(&types.User{ID: 7})
	require.NoError(t, err)
	stub.onUpdate = scope.Close

	assert.ErrorIs(t, f.ConfirmCompletion(context.Background()), view.ErrReleased)
	assert.Len(t, stub.calls, 1)
	assert.Equal(t, types.StatusPending, f.Session().Status)
	assert.True(t, f.Confirming())
}

func TestLoadFailure(t *testing.T) {
	srv := fakeapi.New()
	client := api.NewClient(httpclient.NewTestClient(httpclient.StaticConfig("http://localhost:8000"), srv))
	scope := view.NewScope(context.Background())
	defer scope.Close()

	_, err := Load(context.Background(), scope, client, 1)
	require.Error(t, err)
	assert.Equal(t, "Session not found.", err.Error())

	// session exists but its skill does not
	srv.AddSession(types.Session{ID: 1, SkillID: 9, TeacherID: 1, StudentID: 2})
	_, err = Load(context.Background(), scope, client, 1)
	require.Error(t, err)
	assert.Equal(t, "Skill not found.", err.Error())
}

func TestCompleteTransfersCreditsOnServer(t *testing.T) {
	srv := fakeapi.New()
	srv.Seed()
	client := api.NewClient(httpclient.NewTestClient(httpclient.StaticConfig("http://localhost:8000"), srv))
	scope := view.NewScope(context.Background())
	defer scope.Close()

	// seeded session 1: teacher 12, student 1 (alice), skill 1 price 15
	f, err := Load(context.Background(), scope, client, 1)
	require.NoError(t, err)
	alice := &types.User{ID: 1}
	_, err = f.RequestCompletion(alice)
	require.NoError(t, err)
	require.NoError(t, f.ConfirmCompletion(context.Background()))

	teacher, _ := srv.User(fakeapi.DemoProfileID)
	assert.Equal(t, fakeapi.DefaultCredits+15, teacher.Credits)

	review, err := f.SubmitReview(context.Background(), alice, 5, "Great class")
	require.NoError(t, err)
	assert.Equal(t, int64(1), review.ID)
	require.Len(t, srv.Reviews(), 1)
	assert.Equal(t, int64(fakeapi.DemoProfileID), srv.Reviews()[0].TeacherID)
}

func TestSubmitReviewGuards(t *testing.T) {
	stub := &stubAPI{session: pendingSession(), skill: types.Skill{ID: 5}}
	f := load(t, stub)
	_, err := f.SubmitReview(context.Background(), &types.User{ID: 7}, 5, "")
	assert.ErrorIs(t, err, ErrNotCompleted)

	stub.session.Status = types.StatusCompleted
	f = load(t, stub)
	_, err = f.SubmitReview(context.Background(), &types.User{ID: 3}, 5, "")
	assert.ErrorIs(t, err, ErrNotStudent)

	for rating, msg := range map[int]string{0: "Rating must be at least 1", 6: "Rating must be at most 5"} {
		_, err = f.SubmitReview(context.Background(), &types.User{ID: 7}, rating, "")
		require.Error(t, err)
		assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
		assert.Equal(t, msg, err.Error())
	}
	assert.Empty(t, stub.reviews)

	r, err := f.SubmitReview(context.Background(), &types.User{ID: 7}, 3, "ok")
	require.NoError(t, err)
	assert.Equal(t, types.Review{ID: 1, SessionID: 42, TeacherID: 3, Rating: 3, Comment: "ok", FromUser: 7}, *r)
}

func TestBadge(t *testing.T) {
	assert.Equal(t, Amber, Badge(types.StatusPending))
	assert.Equal(t, Green, Badge(types.StatusCompleted))
	assert.Equal(t, Red, Badge(types.StatusCancelled))
	assert.Equal(t, Gray, Badge("archived"))
}

func TestUpcomingAndHistory(t *testing.T) {
	sessions := []types.Session{
		{ID: 1, TeacherID: 12, StudentID: 1, Status: types.StatusPending},
		{ID: 2, TeacherID: 2, StudentID: 12, Status: types.StatusCompleted},
		{ID: 3, TeacherID: 12, StudentID: 3, Status: types.StatusCancelled},
		{ID: 4, TeacherID: 12, StudentID: 12, Status: "archived"},
	}
	var upcoming []int64
	for _, s := range Upcoming(sessions) {
		upcoming = append(upcoming, s.ID)
	}
	assert.Equal(t, []int64{1, 3, 4}, upcoming)

	teaching, learning := History(sessions, 12)
	assert.Len(t, teaching, 3)
	require.Len(t, learning, 2)
	assert.Equal(t, int64(2), learning[0].ID)
}
