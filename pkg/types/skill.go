// Package types holds the SkillSwap data model shared by the API client,
// the flows and the command line front-end. Field names follow the JSON
// shapes served by the SkillSwap API.
package types

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Category is the closed set of skill categories.
type Category string

const (
	CategoryTechnology          Category = "technology"
	CategoryArts                Category = "arts"
	CategoryPersonalDevelopment Category = "personal development"
	CategoryHealth              Category = "health"
	CategoryOther               Category = "other"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryTechnology,
	CategoryArts,
	CategoryPersonalDevelopment,
	CategoryHealth,
	CategoryOther,
}

// ParseCategory matches s against the known categories ignoring case and
// surrounding whitespace.
func ParseCategory(s string) (Category, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, c := range Categories {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Title renders the category for display, e.g. "Personal Development".
func (c Category) Title() string {
	return cases.Title(language.English).String(string(c))
}

// Skill is a teachable offering posted by a user.
type Skill struct {
	ID           int64         `json:"id"`
	UserID       int64         `json:"user_id"`
	Name         string        `json:"name"`
	Category     Category      `json:"category"`
	Description  string        `json:"description"`
	Price        int           `json:"price"`
	Online       bool          `json:"online"`
	Tags         []string      `json:"tags"`
	Location     string        `json:"location"`
	Availability *Availability `json:"availability,omitempty"`
}

// HasAnyTag reports whether any of the skill tags is contained in set.
func (s Skill) HasAnyTag(set []string) bool {
	for _, tag := range s.Tags {
		for _, want := range set {
			if tag == want {
				return true
			}
		}
	}
	return false
}

// SkillDraft is the payload for creating a skill. The server assigns the
// identifier and owner.
type SkillDraft struct {
	Name         string       `json:"name" mapstructure:"name" validate:"required"`
	Category     Category     `json:"category" mapstructure:"category" validate:"required,category"`
	Description  string       `json:"description" mapstructure:"description" validate:"required"`
	Price        int          `json:"price" mapstructure:"price" validate:"min=0"`
	Online       bool         `json:"online" mapstructure:"online"`
	Tags         []string     `json:"tags" mapstructure:"tags"`
	Availability Availability `json:"availability" mapstructure:"-"`
}

// SearchQuery holds the server side search parameters for /skills/search.
type SearchQuery struct {
	Category string
	Location string
	MaxPrice int
	Tags     []string
}
