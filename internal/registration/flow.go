// Package registration implements the two step sign-up form. Step one
// collects the required profile fields, step two collects interests, and
// submission creates the user and makes it the active profile.
package registration

import (
	"context"
	"errors"
	"sync"

	"github.com/skillswap/skillswap/internal/common/apperrors"
	"github.com/skillswap/skillswap/internal/common/validation"
	"github.com/skillswap/skillswap/internal/view"
	"github.com/skillswap/skillswap/pkg/types"
)

// Step is the form page being shown.
type Step int

const (
	StepDetails   Step = 1
	StepInterests Step = 2
)

// Fields of step one, in display order.
var Fields = []string{"name", "email", "location", "language"}

var (
	// ErrUnknownField is returned by SetField for fields the form does not have.
	ErrUnknownField = apperrors.ErrValidation.New("unknown registration field")
	// ErrWrongStep is returned for actions not available on the current step.
	ErrWrongStep = apperrors.New("action not available on this step")
)

// API is the part of the SkillSwap API registration uses.
type API interface {
	RegisterUser(ctx context.Context, reg types.Registration) (*types.User, error)
	FetchUser(ctx context.Context, id int64) (*types.User, error)
}

// ProfileSetter receives the newly registered profile.
type ProfileSetter interface {
	Set(u *types.User)
}

// Flow is the registration form state.
type Flow struct {
	scope   *view.Scope
	api     API
	profile ProfileSetter

	mu     sync.Mutex
	step   Step
	form   types.Registration
	errors map[string]string
}

// NewFlow starts a registration on step one.
func NewFlow(scope *view.Scope, api API, profile ProfileSetter) *Flow {
	return &Flow{
		scope:   scope,
		api:     api,
		profile: profile,
		step:    StepDetails,
		form:    types.Registration{Interests: []string{}},
		errors:  map[string]string{},
	}
}

// Step returns the current step.
func (f *Flow) Step() Step {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step
}

// Form returns a copy of the values entered so far.
func (f *Flow) Form() types.Registration {
	f.mu.Lock()
	defer f.mu.Unlock()
	form := f.form
	form.Interests = append([]string{}, f.form.Interests...)
	return form
}

// Errors returns the per-field messages from the last Next.
func (f *Flow) Errors() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]string, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

// SetField sets one step one field by its JSON name.
func (f *Flow) SetField(name, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch name {
	case "name":
		f.form.Name = value
	case "email":
		f.form.Email = value
	case "location":
		f.form.Location = value
	case "language":
		f.form.Language = value
	default:
		return ErrUnknownField
	}
	return nil
}

// Next validates step one and moves to step two. With any required field
// empty the flow stays on step one and the messages are kept per field.
func (f *Flow) Next() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step != StepDetails {
		return ErrWrongStep
	}
	f.errors = map[string]string{}
	if err := validation.Check(f.form); err != nil {
		var ves apperrors.ValidationErrors
		if errors.As(err, &ves) {
			f.errors = ves.Messages()
		}
		return err
	}
	f.step = StepInterests
	return nil
}

// Back returns to step one, keeping everything entered.
func (f *Flow) Back() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step == StepInterests {
		f.step = StepDetails
	}
}

// AddInterest appends interest as typed. Duplicates are kept.
func (f *Flow) AddInterest(interest string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step != StepInterests {
		return ErrWrongStep
	}
	f.form.Interests = append(f.form.Interests, interest)
	return nil
}

// Submit registers the user, fetches the created profile by the returned id
// and makes it the active profile.
func (f *Flow) Submit(ctx context.Context) (*types.User, error) {
	f.mu.Lock()
	if f.step != StepInterests {
		f.mu.Unlock()
		return nil, ErrWrongStep
	}
	form := f.form
	form.Interests = append([]string{}, f.form.Interests...)
	f.mu.Unlock()

	created, err := view.Run(f.scope, ctx, func(ctx context.Context) (*types.User, error) {
		return f.api.RegisterUser(ctx, form)
	})
	if err != nil {
		return nil, err
	}
	var user *types.User
	err = view.Apply(f.scope, ctx, func(ctx context.Context) (*types.User, error) {
		return f.api.FetchUser(ctx, created.ID)
	}, func(u *types.User, err error) {
		if err == nil {
			f.profile.Set(u)
			user = u
		}
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}
