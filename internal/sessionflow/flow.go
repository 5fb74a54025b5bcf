// Package sessionflow implements the session detail view: show a session
// with its skill and let the student of a pending session complete it,
// which releases the skill's price to the teacher on the server.
package sessionflow

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/skillswap/skillswap/internal/common/apperrors"
	"github.com/skillswap/skillswap/internal/common/validation"
	"github.com/skillswap/skillswap/internal/view"
	"github.com/skillswap/skillswap/pkg/types"
)

var (
	// ErrNotStudent is returned when someone other than the student tries to complete or review.
	ErrNotStudent = apperrors.ErrValidation.New("only the student of this session can do that")
	// ErrNotPending is returned when completing a session that is no longer pending.
	ErrNotPending = apperrors.ErrValidation.New("session is not pending")
	// ErrNotCompleted is returned when reviewing a session that has not been completed.
	ErrNotCompleted = apperrors.ErrValidation.New("session is not completed")
	// ErrNotConfirming is returned by ConfirmCompletion without a prior RequestCompletion.
	ErrNotConfirming = apperrors.New("completion was not requested")
)

// API is the part of the SkillSwap API the session view uses.
type API interface {
	FetchSession(ctx context.Context, id int64) (*types.Session, error)
	FetchSkill(ctx context.Context, id int64) (*types.Skill, error)
	UpdateSessionStatus(ctx context.Context, id int64, status types.SessionStatus) (*types.Session, error)
	SubmitReview(ctx context.Context, sessionID int64, review types.Review) (*types.Review, error)
}

// CompletionNotice is shown before completing: the credits released to the teacher.
type CompletionNotice struct {
	Credits int `json:"credits"`
}

// Flow is the state of one session view.
type Flow struct {
	scope *view.Scope
	api   API

	mu         sync.Mutex
	session    types.Session
	skill      types.Skill
	confirming bool
	err        error
}

// Load fetches the session and then its skill. Any failure fails the whole view.
func Load(ctx context.Context, scope *view.Scope, api API, sessionID int64) (*Flow, error) {
	session, err := view.Run(scope, ctx, func(ctx context.Context) (*types.Session, error) {
		return api.FetchSession(ctx, sessionID)
	})
	if err != nil {
		return nil, err
	}
	skill, err := view.Run(scope, ctx, func(ctx context.Context) (*types.Skill, error) {
		return api.FetchSkill(ctx, session.SkillID)
	})
	if err != nil {
		return nil, err
	}
	return &Flow{scope: scope, api: api, session: *session, skill: *skill}, nil
}

// Session returns the session as currently known.
func (f *Flow) Session() types.Session {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.session
}

// Skill returns the session's skill.
func (f *Flow) Skill() types.Skill {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.skill
}

// CanComplete reports whether viewer may complete the session: it is pending
// and viewer is its student.
func (f *Flow) CanComplete(viewer *types.User) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.canComplete(viewer) == nil
}

func (f *Flow) canComplete(viewer *types.User) error {
	if f.session.Status != types.StatusPending {
		return ErrNotPending
	}
	if viewer == nil || viewer.ID != f.session.StudentID {
		return ErrNotStudent
	}
	return nil
}

// RequestCompletion opens the completion confirmation.
func (f *Flow) RequestCompletion(viewer *types.User) (CompletionNotice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.canComplete(viewer); err != nil {
		return CompletionNotice{}, err
	}
	f.confirming = true
	return CompletionNotice{Credits: f.skill.Price}, nil
}

// Confirming reports whether the completion confirmation is open.
func (f *Flow) Confirming() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.confirming
}

// ConfirmCompletion asks the server to complete the session. On success only
// the local status changes and the confirmation closes. On failure the status
// is kept and the error is stored for display.
func (f *Flow) ConfirmCompletion(ctx context.Context) error {
	f.mu.Lock()
	if !f.confirming {
		f.mu.Unlock()
		return ErrNotConfirming
	}
	id := f.session.ID
	f.mu.Unlock()

	return view.Apply(f.scope, ctx, func(ctx context.Context) (*types.Session, error) {
		return f.api.UpdateSessionStatus(ctx, id, types.StatusCompleted)
	}, func(_ *types.Session, err error) {
		f.mu.Lock()
		defer f.mu.Unlock()
		if err != nil {
			log.Ctx(ctx).Debug().Err(err).Int64("session_id", id).Msg("completion failed")
			f.err = err
			return
		}
		f.session.Status = types.StatusCompleted
		f.confirming = false
		f.err = nil
	})
}

// CancelCompletion closes the confirmation.
func (f *Flow) CancelCompletion() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.confirming = false
}

// Err returns the last action error.
func (f *Flow) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// SubmitReview rates the teacher of a completed session. Only the student may review.
func (f *Flow) SubmitReview(ctx context.Context, viewer *types.User, rating int, comment string) (*types.Review, error) {
	f.mu.Lock()
	session := f.session
	f.mu.Unlock()

	if session.Status != types.StatusCompleted {
		return nil, ErrNotCompleted
	}
	if viewer == nil || viewer.ID != session.StudentID {
		return nil, ErrNotStudent
	}
	review := types.Review{
		SessionID: session.ID,
		TeacherID: session.TeacherID,
		Rating:    rating,
		Comment:   comment,
		FromUser:  viewer.ID,
	}
	if err := validation.Check(review); err != nil {
		return nil, err
	}
	return view.Run(f.scope, ctx, func(ctx context.Context) (*types.Review, error) {
		return f.api.SubmitReview(ctx, session.ID, review)
	})
}
