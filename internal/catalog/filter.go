// Package catalog filters the skill listing shown on the home page. All
// functions are pure: they never modify their input and return the same
// result for the same arguments.
package catalog

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/skillswap/skillswap/internal/common/apperrors"
	"github.com/skillswap/skillswap/pkg/types"
)

// Card limits used when rendering skill listings.
const (
	CardNameLength        = 20
	CardDescriptionLength = 80
)

// Locations offered by the location filter.
var Locations = []string{"Tiong Bahru", "Bukit Timah", "Bugis", "Clementi", "Yishun"}

// Filter is the user's current search. Empty strings and a nil MaxPrice
// mean the criterion is unset.
type Filter struct {
	Query    string
	Category string
	Location string
	MaxPrice *int
}

// Match reports whether s satisfies every set criterion. The query matches
// name or description case-insensitively; category and location must be
// equal; price must not exceed MaxPrice.
func (f Filter) Match(s types.Skill) bool {
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(s.Name), q) &&
			!strings.Contains(strings.ToLower(s.Description), q) {
			return false
		}
	}
	if f.Category != "" && string(s.Category) != f.Category {
		return false
	}
	if f.Location != "" && s.Location != f.Location {
		return false
	}
	if f.MaxPrice != nil && s.Price > *f.MaxPrice {
		return false
	}
	return true
}

// Apply returns the skills matching f, in input order.
func (f Filter) Apply(skills []types.Skill) []types.Skill {
	out := make([]types.Skill, 0, len(skills))
	for _, s := range skills {
		if f.Match(s) {
			out = append(out, s)
		}
	}
	return out
}

// Nearby returns skills whose location contains the profile's location. An
// empty profile location is contained in every location, so all skills match.
func Nearby(skills []types.Skill, profile *types.User) []types.Skill {
	if profile == nil {
		return []types.Skill{}
	}
	out := make([]types.Skill, 0)
	for _, s := range skills {
		if strings.Contains(s.Location, profile.Location) {
			out = append(out, s)
		}
	}
	return out
}

// ForYou returns skills carrying at least one tag among the profile's interests.
func ForYou(skills []types.Skill, profile *types.User) []types.Skill {
	out := make([]types.Skill, 0)
	if profile == nil {
		return out
	}
	for _, s := range skills {
		if s.HasAnyTag(profile.Interests) {
			out = append(out, s)
		}
	}
	return out
}

// ParseMaxPrice reads the price limit field. An empty field is unset.
func ParseMaxPrice(v string) (*int, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	p, err := strconv.Atoi(v)
	if err != nil || p < 0 {
		return nil, apperrors.ValidationErrors{{
			Field:  "max_price",
			Value:  v,
			ErrStr: "Max price must be a non-negative whole number",
		}}
	}
	return &p, nil
}

// Truncate shortens text to n runes followed by "...".
func Truncate(text string, n int) string {
	if utf8.RuneCountInString(text) <= n {
		return text
	}
	return string([]rune(text)[:n]) + "..."
}
