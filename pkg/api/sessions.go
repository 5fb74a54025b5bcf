package api

import (
	"context"

	"github.com/skillswap/skillswap/pkg/types"
)

// FetchSession fetches one session.
func (c *Client) FetchSession(ctx context.Context, id int64) (*types.Session, error) {
	body, err := c.http.GetResource(ctx, idPath("/sessions", id), nil, msgFetchSession)
	if err != nil {
		return nil, err
	}
	var session types.Session
	if err := decode(body, &session, msgFetchSession); err != nil {
		return nil, err
	}
	return &session, nil
}

// FetchUpcomingSessions lists the sessions where the user is teacher or student.
func (c *Client) FetchUpcomingSessions(ctx context.Context, userID int64) ([]types.Session, error) {
	body, err := c.http.GetResource(ctx, idPath("/users", userID, "sessions"), nil, msgFetchUpcoming)
	if err != nil {
		return nil, err
	}
	var sessions []types.Session
	if err := decodeList(body, "sessions", &sessions, msgFetchUpcoming); err != nil {
		return nil, err
	}
	return sessions, nil
}

// UpdateSessionStatus sets the status of a session. The server answers with a
// message; the returned session only carries the id and the new status.
func (c *Client) UpdateSessionStatus(ctx context.Context, id int64, status types.SessionStatus) (*types.Session, error) {
	body, err := c.http.PatchResource(ctx, idPath("/sessions", id, "status"),
		map[string]string{"status": string(status)}, nil, msgUpdateStatus)
	if err != nil {
		return nil, err
	}
	if isResource(body, "id", "status", "skill_id") {
		var session types.Session
		if err := decode(body, &session, msgUpdateStatus); err != nil {
			return nil, err
		}
		return &session, nil
	}
	return &types.Session{ID: id, Status: status}, nil
}

// RegisterSession books a session. The returned session is built from req, the
// id acknowledged by the server and the pending status.
func (c *Client) RegisterSession(ctx context.Context, req types.SessionRequest) (*types.Session, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	body, err := c.http.CreateResource(ctx, "/sessions/register", data, msgRegisterSession)
	if err != nil {
		return nil, err
	}
	if isResource(body, "id", "skill_id", "status") {
		var session types.Session
		if err := decode(body, &session, msgRegisterSession); err != nil {
			return nil, err
		}
		return &session, nil
	}
	id, _ := ackID(body, "session_id", "id")
	return &types.Session{
		ID:        id,
		SkillID:   req.SkillID,
		TeacherID: req.TeacherID,
		StudentID: req.StudentID,
		Date:      req.Date,
		Time:      req.Time,
		Status:    types.StatusPending,
	}, nil
}

// SubmitReview posts a review for a session.
func (c *Client) SubmitReview(ctx context.Context, sessionID int64, review types.Review) (*types.Review, error) {
	review.SessionID = sessionID
	data, err := json.Marshal(review)
	if err != nil {
		return nil, err
	}
	body, err := c.http.CreateResource(ctx, idPath("/sessions", sessionID, "review"), data, msgSubmitReview)
	if err != nil {
		return nil, err
	}
	if id, ok := ackID(body, "review_id", "id"); ok {
		review.ID = id
	}
	return &review, nil
}
