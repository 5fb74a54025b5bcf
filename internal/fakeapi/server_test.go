package fakeapi

import (
	"net/http"
	"testing"

	"github.com/skillswap/skillswap/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func newSeeded(t *testing.T) *Server {
	t.Helper()
	s := New()
	s.Seed()
	return s
}

func TestSkills(t *testing.T) {
	s := newSeeded(t)

	rsp := executeTestRequest(t, s, http.MethodGet, "/skills", "")
	require.Equal(t, http.StatusOK, rsp.Code)
	checkHeader(t, rsp.Result().Header)
	assert.Equal(t, int64(4), gjson.Get(rsp.Body.String(), "#").Int())
	assert.Equal(t, "Tiong Bahru", gjson.Get(rsp.Body.String(), "0.location").String())

	rsp = executeTestRequest(t, s, http.MethodGet, "/skills/1", "")
	require.Equal(t, http.StatusOK, rsp.Code)
	assert.Equal(t, "Python Basics", gjson.Get(rsp.Body.String(), "name").String())
	assert.Equal(t, "Monday", gjson.Get(rsp.Body.String(), "availability.days.0").String())

	rsp = executeTestRequest(t, s, http.MethodGet, "/skills/99", "")
	assert.Equal(t, http.StatusNotFound, rsp.Code)
	assert.JSONEq(t, `{"detail":"Skill not found."}`, rsp.Body.String())

	rsp = executeTestRequest(t, s, http.MethodGet, "/skills/abc", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rsp.Code)
}

func TestSearchSkills(t *testing.T) {
	s := newSeeded(t)
	tests := []struct {
		name  string
		query string
		names []string
	}{
		{"all", "", []string{"Python Basics", "Photography Masterclass", "Morning Yoga", "Public Speaking"}},
		{"category", "?category=arts", []string{"Photography Masterclass"}},
		{"location", "?location=bugis", []string{"Morning Yoga"}},
		{"max price", "?max_price=12", []string{"Morning Yoga", "Public Speaking"}},
		{"tags", "?tags=camera&tags=fitness", []string{"Photography Masterclass", "Morning Yoga"}},
		{"combined", "?location=tiong&max_price=15", []string{"Python Basics", "Public Speaking"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rsp := executeTestRequest(t, s, http.MethodGet, "/skills/search"+tt.query, "")
			require.Equal(t, http.StatusOK, rsp.Code)
			var names []string
			for _, n := range gjson.Get(rsp.Body.String(), "#.name").Array() {
				names = append(names, n.String())
			}
			assert.Equal(t, tt.names, names)
		})
	}
}

func TestUsers(t *testing.T) {
	s := newSeeded(t)

	rsp := executeTestRequest(t, s, http.MethodGet, "/users/12", "")
	require.Equal(t, http.StatusOK, rsp.Code)
	assert.Equal(t, "Sam Lee", gjson.Get(rsp.Body.String(), "name").String())
	assert.Equal(t, int64(1), gjson.Get(rsp.Body.String(), "skills.#").Int())

	rsp = executeTestRequest(t, s, http.MethodPost, "/users/register",
		`{"name":"Dana","email":"dana@example.com","location":"Yishun","language":"English","interests":["Yoga"]}`)
	require.Equal(t, http.StatusOK, rsp.Code)
	id := gjson.Get(rsp.Body.String(), "id").Int()
	assert.Equal(t, int64(13), id)
	u, ok := s.User(id)
	require.True(t, ok)
	assert.Equal(t, DefaultCredits, u.Credits)

	rsp = executeTestRequest(t, s, http.MethodPost, "/users/register",
		`{"name":"Dana","email":"DANA@example.com","location":"Yishun","language":"English"}`)
	assert.Equal(t, http.StatusBadRequest, rsp.Code)
	assert.JSONEq(t, `{"detail":"Email already exists."}`, rsp.Body.String())

	rsp = executeTestRequest(t, s, http.MethodGet, "/users", "")
	require.Equal(t, http.StatusOK, rsp.Code)
	assert.Equal(t, int64(4), gjson.Get(rsp.Body.String(), "#").Int())

	rsp = executeTestRequest(t, s, http.MethodGet, "/users/12/suggested-skills", "")
	require.Equal(t, http.StatusOK, rsp.Code)
	assert.Equal(t, []any{"Python Basics", "Morning Yoga"}, gjson.Get(rsp.Body.String(), "suggested_skills.#.name").Value())
}

func TestAddSkill(t *testing.T) {
	s := newSeeded(t)
	rsp := executeTestRequest(t, s, http.MethodPost, "/users/12/skills",
		`{"name":"Watercolour","category":"arts","description":"Paint","price":5,"online":false,"tags":["Painting"],
		  "availability":{"days":["Friday"],"time_slots":[{"start_time":"14:00","end_time":"15:00"}]}}`)
	require.Equal(t, http.StatusOK, rsp.Code)
	id := gjson.Get(rsp.Body.String(), "skill_id").Int()
	assert.Equal(t, int64(5), id)

	rsp = executeTestRequest(t, s, http.MethodGet, "/skills/5", "")
	require.Equal(t, http.StatusOK, rsp.Code)
	assert.Equal(t, "Tiong Bahru", gjson.Get(rsp.Body.String(), "location").String())
	assert.Equal(t, "14:00", gjson.Get(rsp.Body.String(), "availability.time_slots.0.start_time").String())

	rsp = executeTestRequest(t, s, http.MethodPost, "/users/99/skills", `{"name":"x"}`)
	assert.Equal(t, http.StatusNotFound, rsp.Code)
	assert.JSONEq(t, `{"detail":"User not found."}`, rsp.Body.String())
}

func TestSessionLifecycle(t *testing.T) {
	s := newSeeded(t)

	// teacher 12 books skill 1 owned by alice (1)
	rsp := executeTestRequest(t, s, http.MethodPost, "/sessions/register",
		`{"skill_id":1,"teacher_id":12,"student_id":1,"date":"Wednesday","time":"14:00-16:00"}`)
	require.Equal(t, http.StatusOK, rsp.Code)
	id := gjson.Get(rsp.Body.String(), "session_id").Int()
	alice, _ := s.User(1)
	assert.Equal(t, DefaultCredits-15, alice.Credits)

	rsp = executeTestRequest(t, s, http.MethodPost, "/sessions/register",
		`{"skill_id":1,"teacher_id":12,"student_id":1,"date":"Wednesday","time":"14:00-16:00"}`)
	assert.Equal(t, http.StatusBadRequest, rsp.Code)
	assert.JSONEq(t, `{"detail":"Time slot already booked."}`, rsp.Body.String())

	rsp = executeTestRequest(t, s, http.MethodGet, "/users/12/sessions", "")
	require.Equal(t, http.StatusOK, rsp.Code)
	assert.Equal(t, int64(2), gjson.Get(rsp.Body.String(), "sessions.#").Int())

	rsp = executeTestRequest(t, s, http.MethodPatch, "/sessions/"+itoa(id)+"/status?status=completed", "")
	require.Equal(t, http.StatusOK, rsp.Code)
	assert.Equal(t, "Session status updated to 'completed' successfully.", gjson.Get(rsp.Body.String(), "message").String())
	se, _ := s.Session(id)
	assert.Equal(t, types.StatusCompleted, se.Status)
	me, _ := s.User(12)
	assert.Equal(t, DefaultCredits+15, me.Credits)

	rsp = executeTestRequest(t, s, http.MethodPatch, "/sessions/"+itoa(id)+"/status?status=cancelled", "")
	assert.Equal(t, http.StatusBadRequest, rsp.Code)
	assert.JSONEq(t, `{"detail":"Session is already completed."}`, rsp.Body.String())

	rsp = executeTestRequest(t, s, http.MethodPost, "/sessions/"+itoa(id)+"/review",
		`{"session_id":0,"teacher_id":12,"rating":5,"comment":"great","from_user":1}`)
	require.Equal(t, http.StatusOK, rsp.Code)
	rsp = executeTestRequest(t, s, http.MethodGet, "/users/12/reviews", "")
	require.Equal(t, http.StatusOK, rsp.Code)
	assert.Equal(t, itoa(id), gjson.Get(rsp.Body.String(), "reviews.0.session_id").String())

	rsp = executeTestRequest(t, s, http.MethodGet, "/users/1/reviews", "")
	assert.Equal(t, http.StatusNotFound, rsp.Code)
	assert.JSONEq(t, `{"detail":"No reviews found for this teacher."}`, rsp.Body.String())
}

func TestFailNext(t *testing.T) {
	s := newSeeded(t)
	s.FailNext("POST /sessions/register", http.StatusConflict, "slot taken")

	body := `{"skill_id":1,"teacher_id":12,"student_id":1,"date":"Monday","time":"14:00-16:00"}`
	rsp := executeTestRequest(t, s, http.MethodPost, "/sessions/register", body)
	assert.Equal(t, http.StatusConflict, rsp.Code)
	assert.JSONEq(t, `{"detail":"slot taken"}`, rsp.Body.String())

	rsp = executeTestRequest(t, s, http.MethodPost, "/sessions/register", body)
	assert.Equal(t, http.StatusOK, rsp.Code)

	reqs := s.Requests("POST /sessions/register")
	require.Len(t, reqs, 2)
	assert.JSONEq(t, body, string(reqs[0].Body))
}

func TestCORS(t *testing.T) {
	s := New(Options{HandleCORS: true})
	req := executeTestRequestWithOrigin(t, s)
	assert.Equal(t, "*", req.Header().Get("Access-Control-Allow-Origin"))
}
