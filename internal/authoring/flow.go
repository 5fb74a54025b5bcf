// Package authoring holds the form used to post a new skill under the
// current user.
package authoring

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/mitchellh/mapstructure"
	"github.com/skillswap/skillswap/internal/common/apperrors"
	"github.com/skillswap/skillswap/internal/common/validation"
	"github.com/skillswap/skillswap/internal/view"
	"github.com/skillswap/skillswap/pkg/types"
)

// Creator is the part of the SkillSwap API the form submits to.
type Creator interface {
	AddSkill(ctx context.Context, userID int64, draft types.SkillDraft) (*types.Skill, error)
}

// Form holds the values as entered. Price stays text until Draft parses it.
type Form struct {
	Name         string             `mapstructure:"name"`
	Category     string             `mapstructure:"category"`
	Description  string             `mapstructure:"description"`
	Price        string             `mapstructure:"price"`
	Online       bool               `mapstructure:"online"`
	Tags         []string           `mapstructure:"tags"`
	Availability types.Availability `mapstructure:"-"`
}

// Draft converts the form into the payload sent to the API. Tags are
// trimmed and empty ones dropped. Errors are apperrors.ValidationErrors.
func (f Form) Draft() (types.SkillDraft, error) {
	draft := types.SkillDraft{
		Name:         strings.TrimSpace(f.Name),
		Category:     types.Category(f.Category),
		Description:  strings.TrimSpace(f.Description),
		Online:       f.Online,
		Tags:         cleanTags(f.Tags),
		Availability: f.Availability,
	}
	if c, ok := types.ParseCategory(f.Category); ok {
		draft.Category = c
	}

	var errs apperrors.ValidationErrors
	priceParseFailed := false
	price := strings.TrimSpace(f.Price)
	if price != "" {
		n, err := strconv.Atoi(price)
		if err != nil {
			priceParseFailed = true
			errs = append(errs, apperrors.ValidationError{Field: "price", Value: f.Price, ErrStr: "Price must be a whole number"})
		} else {
			draft.Price = n
		}
	}

	if err := validation.Check(draft); err != nil {
		ves, ok := err.(apperrors.ValidationErrors)
		if !ok {
			return types.SkillDraft{}, err
		}
		for _, ve := range ves {
			if ve.Field == "price" && priceParseFailed {
				continue
			}
			errs = append(errs, ve)
		}
	}
	if len(errs) > 0 {
		return types.SkillDraft{}, errs
	}
	return draft, nil
}

// cleanTags trims each tag. Empty entries such as the middle of "a, ,b" are
// kept.
func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		out = append(out, strings.TrimSpace(t))
	}
	return out
}

// Flow is the skill authoring form of one user.
type Flow struct {
	scope  *view.Scope
	api    Creator
	userID int64

	mu   sync.Mutex
	form Form
	err  error
}

// NewFlow starts an empty form for the user with the given id.
func NewFlow(scope *view.Scope, api Creator, userID int64) *Flow {
	return &Flow{scope: scope, api: api, userID: userID}
}

// Form returns a copy of the form.
func (f *Flow) Form() Form {
	f.mu.Lock()
	defer f.mu.Unlock()
	form := f.form
	form.Tags = append([]string(nil), f.form.Tags...)
	form.Availability = types.Availability{
		Days:      append([]string(nil), f.form.Availability.Days...),
		TimeSlots: append([]types.TimeSlot(nil), f.form.Availability.TimeSlots...),
	}
	return form
}

// Decode sets the fields present in values. Values are weakly typed: a
// price may be a number or text, online may be "true", and tags may be a
// list or one comma separated string. Unknown keys are rejected.
func (f *Flow) Decode(values map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	form := f.form
	if _, ok := values["tags"]; ok {
		form.Tags = nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToSliceHookFunc(","),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &form,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(values); err != nil {
		return apperrors.ErrValidation.MsgErr("invalid skill form", err)
	}
	form.Tags = cleanTags(form.Tags)
	f.form = form
	return nil
}

// AddAvailability appends one day and slot when all three values are
// non-empty and reports whether it did.
func (f *Flow) AddAvailability(day, start, end string) bool {
	if day == "" || start == "" || end == "" {
		return false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.form.Availability.Add(day, start, end)
	return true
}

// Submit validates the form and creates the skill under the flow's user.
// A failure is kept in Err and the form is left as it was.
func (f *Flow) Submit(ctx context.Context) (*types.Skill, error) {
	f.mu.Lock()
	draft, err := f.form.Draft()
	f.mu.Unlock()
	if err != nil {
		f.setErr(err)
		return nil, err
	}

	var skill *types.Skill
	err = view.Apply(f.scope, ctx, func(ctx context.Context) (*types.Skill, error) {
		return f.api.AddSkill(ctx, f.userID, draft)
	}, func(s *types.Skill, err error) {
		f.setErr(err)
		skill = s
	})
	if err != nil {
		return nil, err
	}
	return skill, nil
}

// Err returns the error of the last Submit.
func (f *Flow) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

func (f *Flow) setErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}
