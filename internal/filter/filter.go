// Package filter computes the visible subset of the lesson catalog.
package filter

import (
	"slices"
	"strings"

	"github.com/uklc/lessons/internal/model"
)

// Criteria holds the search text, the structured dimensions and the selected
// tag set. An empty string means "any".
type Criteria struct {
	Search    string   `json:"search,omitempty"`
	Week      string   `json:"week,omitempty"`
	Programme string   `json:"programme,omitempty"`
	Level     string   `json:"level,omitempty"`
	Focus     string   `json:"focus,omitempty"`
	Tags      []string `json:"tags,omitempty"`
}

// IsZero reports whether no filter is active.
func (c Criteria) IsZero() bool {
	return c.Search == "" && c.Week == "" && c.Programme == "" &&
		c.Level == "" && c.Focus == "" && len(c.Tags) == 0
}

// Clear resets search and every dimension in one step.
func (c Criteria) Clear() Criteria {
	return Criteria{}
}

// ToggleTag selects tag, or deselects it if already selected.
func (c Criteria) ToggleTag(tag string) Criteria {
	if i := slices.Index(c.Tags, tag); i >= 0 {
		c.Tags = slices.Delete(slices.Clone(c.Tags), i, i+1)
		return c
	}
	c.Tags = append(slices.Clone(c.Tags), tag)
	return c
}

// Match reports whether l satisfies every active part of the criteria.
func (c Criteria) Match(l model.Lesson) bool {
	if c.Search != "" {
		q := strings.ToLower(c.Search)
		if !strings.Contains(strings.ToLower(l.Title), q) &&
			!strings.Contains(strings.ToLower(l.Description), q) {
			return false
		}
	}
	if !matchDim(c.Week, l.Week) ||
		!matchDim(c.Programme, l.Programme) ||
		!matchDim(c.Level, l.Level) ||
		!matchDim(c.Focus, l.Focus) {
		return false
	}
	for _, tag := range c.Tags {
		if !l.HasTag(tag) {
			return false
		}
	}
	return true
}

func matchDim(want, got string) bool {
	return want == "" || want == got
}

// Apply returns the lessons matching c, in their original order. The result
// never aliases the input slice.
func Apply(lessons []model.Lesson, c Criteria) []model.Lesson {
	out := make([]model.Lesson, 0, len(lessons))
	for _, l := range lessons {
		if c.Match(l) {
			out = append(out, l)
		}
	}
	return out
}
