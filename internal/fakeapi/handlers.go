package fakeapi

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/skillswap/skillswap/internal/common/httpx"
	"github.com/skillswap/skillswap/pkg/types"
)

// suggestionsPerInterest caps matches per interest, as the backend does.
const suggestionsPerInterest = 5

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, &httpx.Error{
			StatusCode:  http.StatusUnprocessableEntity,
			Description: "value is not a valid integer",
		}
	}
	return id, nil
}

func ok(v any) (*httpx.Response, error) {
	return &httpx.Response{StatusCode: http.StatusOK, Response: v}, nil
}

func (s *Server) listSkills(r *http.Request) (*httpx.Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ok(s.sortedSkills(nil))
}

func (s *Server) getSkill(r *http.Request) (*httpx.Response, error) {
	id, err := pathID(r)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sk, found := s.skills[id]
	if !found {
		return nil, httpx.ErrNotFound("Skill")
	}
	return ok(sk)
}

func (s *Server) searchSkills(r *http.Request) (*httpx.Response, error) {
	q := r.URL.Query()
	category := q.Get("category")
	location := strings.ToLower(q.Get("location"))
	tags := q["tags"]
	maxPrice := 0
	if v := q.Get("max_price"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return nil, &httpx.Error{StatusCode: http.StatusUnprocessableEntity, Description: "max_price is not a valid integer"}
		}
		maxPrice = p
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return ok(s.sortedSkills(func(sk *types.Skill) bool {
		if category != "" && string(sk.Category) != category {
			return false
		}
		if location != "" && !strings.Contains(strings.ToLower(sk.Location), location) {
			return false
		}
		if maxPrice > 0 && sk.Price > maxPrice {
			return false
		}
		if len(tags) > 0 && !containsAnyFold(sk.Tags, tags) {
			return false
		}
		return true
	}))
}

func (s *Server) listUsers(r *http.Request) (*httpx.Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	users := make([]types.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, *u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return ok(users)
}

func (s *Server) registerUser(r *http.Request) (*httpx.Response, error) {
	var reg types.Registration
	if err := httpx.GetRequestData(r, &reg); err != nil {
		return nil, err
	}
	if reg.Name == "" || reg.Email == "" {
		return nil, &httpx.Error{StatusCode: http.StatusUnprocessableEntity, Description: "name and email are required"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, reg.Email) {
			return nil, httpx.ErrInvalidRequest("Email already exists.")
		}
	}
	u := &types.User{
		ID:        assignID(0, &s.nextUser),
		Name:      reg.Name,
		Email:     reg.Email,
		Location:  reg.Location,
		Language:  reg.Language,
		Credits:   DefaultCredits,
		Interests: append([]string{}, reg.Interests...),
	}
	s.users[u.ID] = u
	log.Ctx(r.Context()).Debug().Int64("user_id", u.ID).Msg("user registered")
	return ok(map[string]any{"id": u.ID, "message": "User successfully registered."})
}

func (s *Server) getUser(r *http.Request) (*httpx.Response, error) {
	id, err := pathID(r)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, found := s.users[id]
	if !found {
		return nil, httpx.ErrNotFound("User")
	}
	out := *u
	out.Skills = s.sortedSkills(func(sk *types.Skill) bool { return sk.UserID == id })
	return ok(out)
}

func (s *Server) addSkill(r *http.Request) (*httpx.Response, error) {
	id, err := pathID(r)
	if err != nil {
		return nil, err
	}
	var draft types.SkillDraft
	if err := httpx.GetRequestData(r, &draft); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, found := s.users[id]; !found {
		return nil, httpx.ErrNotFound("User")
	}
	sk := types.Skill{
		UserID:      id,
		Name:        draft.Name,
		Category:    draft.Category,
		Description: draft.Description,
		Price:       draft.Price,
		Online:      draft.Online,
		Tags:        draft.Tags,
	}
	if av := draft.Availability; len(av.Days) > 0 || len(av.TimeSlots) > 0 {
		sk.Availability = &av
	}
	skillID := s.insertSkill(sk)
	return ok(map[string]any{"message": "Skill added successfully.", "skill_id": skillID})
}

func (s *Server) userSessions(r *http.Request) (*httpx.Response, error) {
	id, err := pathID(r)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sessions := make([]types.Session, 0)
	for _, se := range s.sessions {
		if se.TeacherID == id || se.StudentID == id {
			sessions = append(sessions, *se)
		}
	}
	sort.Slice(sessions, func(i, j int) bool { return sessions[i].ID < sessions[j].ID })
	return ok(map[string]any{"user_id": id, "sessions": sessions})
}

func (s *Server) suggestedSkills(r *http.Request) (*httpx.Response, error) {
	id, err := pathID(r)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, found := s.users[id]
	if !found {
		return nil, httpx.ErrNotFound("User")
	}
	if len(u.Interests) == 0 {
		return ok(map[string]any{"message": "No interests found for the user.", "suggested_skills": []types.Skill{}})
	}

	seen := make(map[int64]bool)
	suggestions := make([]types.Skill, 0)
	for _, interest := range u.Interests {
		matches := s.sortedSkills(func(sk *types.Skill) bool {
			return containsAnyFold(sk.Tags, []string{interest}) ||
				strings.Contains(strings.ToLower(string(sk.Category)), strings.ToLower(interest))
		})
		sort.SliceStable(matches, func(i, j int) bool { return matches[i].Price < matches[j].Price })
		if len(matches) > suggestionsPerInterest {
			matches = matches[:suggestionsPerInterest]
		}
		for _, sk := range matches {
			if !seen[sk.ID] {
				seen[sk.ID] = true
				suggestions = append(suggestions, sk)
			}
		}
	}
	return ok(map[string]any{"user_id": id, "suggested_skills": suggestions})
}

func (s *Server) teacherReviews(r *http.Request) (*httpx.Response, error) {
	id, err := pathID(r)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	reviews := make([]types.Review, 0)
	for _, rv := range s.reviews {
		if rv.TeacherID == id {
			reviews = append(reviews, rv)
		}
	}
	if len(reviews) == 0 {
		return nil, &httpx.Error{StatusCode: http.StatusNotFound, Description: "No reviews found for this teacher."}
	}
	return ok(map[string]any{"teacher_id": id, "reviews": reviews})
}

func (s *Server) getSession(r *http.Request) (*httpx.Response, error) {
	id, err := pathID(r)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	se, found := s.sessions[id]
	if !found {
		return nil, httpx.ErrNotFound("Session")
	}
	return ok(se)
}

// registerSession holds the skill price from the student until completion.
func (s *Server) registerSession(r *http.Request) (*httpx.Response, error) {
	var req types.SessionRequest
	if err := httpx.GetRequestData(r, &req); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, found := s.users[req.TeacherID]; !found {
		return nil, &httpx.Error{StatusCode: http.StatusNotFound, Description: "Teacher not found."}
	}
	student, found := s.users[req.StudentID]
	if !found {
		return nil, &httpx.Error{StatusCode: http.StatusNotFound, Description: fmt.Sprintf("Student with ID %d not found.", req.StudentID)}
	}
	sk, found := s.skills[req.SkillID]
	if !found {
		return nil, httpx.ErrNotFound("Skill")
	}
	for _, se := range s.sessions {
		if se.SkillID == req.SkillID && se.Date == req.Date && se.Time == req.Time && se.Status != types.StatusCancelled {
			return nil, httpx.ErrInvalidRequest("Time slot already booked.")
		}
	}
	if student.Credits < sk.Price {
		return nil, httpx.ErrInvalidRequest(fmt.Sprintf("Student with ID %d does not have enough credits.", req.StudentID))
	}
	student.Credits -= sk.Price

	se := &types.Session{
		ID:        assignID(0, &s.nextSession),
		SkillID:   req.SkillID,
		TeacherID: req.TeacherID,
		StudentID: req.StudentID,
		Date:      req.Date,
		Time:      req.Time,
		Status:    types.StatusPending,
	}
	s.sessions[se.ID] = se
	return ok(map[string]any{
		"message":         "Session registered successfully.",
		"session_id":      se.ID,
		"credits_on_hold": sk.Price,
	})
}

// updateSessionStatus moves a pending session on. Completion pays the teacher.
func (s *Server) updateSessionStatus(r *http.Request) (*httpx.Response, error) {
	id, err := pathID(r)
	if err != nil {
		return nil, err
	}
	status := types.SessionStatus(r.URL.Query().Get("status"))
	if status == "" {
		return nil, &httpx.Error{StatusCode: http.StatusUnprocessableEntity, Description: "status is required"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	se, found := s.sessions[id]
	if !found {
		return nil, httpx.ErrNotFound("Session")
	}
	if !status.Terminal() {
		return nil, httpx.ErrInvalidRequest(fmt.Sprintf("Invalid status '%s'.", status))
	}
	if !se.Status.CanTransition(status) {
		return nil, httpx.ErrInvalidRequest(fmt.Sprintf("Session is already %s.", se.Status))
	}
	se.Status = status

	switch status {
	case types.StatusCompleted:
		if sk, found := s.skills[se.SkillID]; found {
			if teacher, found := s.users[se.TeacherID]; found {
				teacher.Credits += sk.Price
			}
		}
	case types.StatusCancelled:
		if sk, found := s.skills[se.SkillID]; found {
			if student, found := s.users[se.StudentID]; found {
				student.Credits += sk.Price
			}
		}
	}
	return ok(map[string]any{"message": fmt.Sprintf("Session status updated to '%s' successfully.", status)})
}

func (s *Server) reviewSession(r *http.Request) (*httpx.Response, error) {
	id, err := pathID(r)
	if err != nil {
		return nil, err
	}
	var rv types.Review
	if err := httpx.GetRequestData(r, &rv); err != nil {
		return nil, err
	}
	if rv.Rating < 1 || rv.Rating > 5 {
		return nil, httpx.ErrInvalidRequest("Rating must be between 1 and 5.")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, found := s.sessions[id]; !found {
		return nil, httpx.ErrNotFound("Session")
	}
	rv.ID = assignID(0, &s.nextReview)
	rv.SessionID = id
	s.reviews = append(s.reviews, rv)
	return ok(map[string]any{"message": "Review submitted successfully.", "review_id": rv.ID})
}

func containsAnyFold(have, want []string) bool {
	for _, w := range want {
		w = strings.ToLower(w)
		for _, h := range have {
			if strings.Contains(strings.ToLower(h), w) {
				return true
			}
		}
	}
	return false
}
