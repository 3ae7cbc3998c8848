// Package model defines the lesson catalog data types.
package model

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Lesson represents a single catalog record describing one teachable unit.
type Lesson struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Week        string    `json:"week"`
	Programme   string    `json:"programme"`
	Level       string    `json:"level"`
	Focus       string    `json:"focus"`
	Description string    `json:"description,omitempty"`
	Tags        []string  `json:"tags"`
	PDFPath     string    `json:"pdfPath,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	Revision    int       `json:"revision,omitempty"`
}

// Draft holds the caller-supplied fields of a lesson before an id is assigned.
type Draft struct {
	Title       string
	Week        string
	Programme   string
	Level       string
	Focus       string
	Description string
	Tags        []string
	PDFPath     string
}

// Known values for the structured dimensions.
var (
	Weeks      = []string{"Week A", "Week B", "Week C", "Week D"}
	Programmes = []string{"Connection", "Action", "Purpose"}
	Levels     = []string{"Level 1", "Level 2", "Level 3", "Level 4"}
	Focuses    = []string{"Language Focus", "Leadership Focus", "Culture Focus"}
	CommonTags = []string{
		"A1", "A2", "B1", "B2", "C1", "C2",
		"Outdoor Lesson", "Art Lesson", "Science Lesson", "Technology Lesson",
		"Grammar", "Speaking", "Writing", "Reading", "Listening",
	}
)

// HasTag reports whether the lesson carries tag.
func (l Lesson) HasTag(tag string) bool {
	return slices.Contains(l.Tags, tag)
}

// Clone returns a copy that shares no slices with l.
func (l Lesson) Clone() Lesson {
	l.Tags = slices.Clone(l.Tags)
	return l
}

// Validate checks the lesson is acceptable for persistence. Values of the
// structured dimensions are only checked for presence, not against the
// known lists.
func (l Lesson) Validate() error {
	var missing []string
	for _, f := range []struct {
		name, value string
	}{
		{"title", l.Title},
		{"week", l.Week},
		{"programme", l.Programme},
		{"level", l.Level},
		{"focus", l.Focus},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields: %s", ErrValidation, strings.Join(missing, ", "))
	}
	if l.PDFPath != "" {
		if _, err := ParseDocumentRef(l.PDFPath); err != nil {
			return err
		}
	}
	return nil
}

// Lesson builds a lesson from the draft without id, timestamp or revision.
func (d Draft) Lesson() Lesson {
	return Lesson{
		Title:       d.Title,
		Week:        d.Week,
		Programme:   d.Programme,
		Level:       d.Level,
		Focus:       d.Focus,
		Description: d.Description,
		Tags:        slices.Clone(d.Tags),
		PDFPath:     d.PDFPath,
	}
}

// Validate applies the lesson validation rules to the draft.
func (d Draft) Validate() error {
	return d.Lesson().Validate()
}
