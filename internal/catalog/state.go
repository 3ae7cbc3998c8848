// Package catalog holds the lesson collection, its view state and the
// lifecycle operations that mutate and persist it.
package catalog

import (
	"slices"

	"github.com/uklc/lessons/internal/filter"
	"github.com/uklc/lessons/internal/model"
)

// State is the complete application state: the persisted collection and the
// active filter criteria.
type State struct {
	Lessons  []model.Lesson  `json:"lessons"`
	Criteria filter.Criteria `json:"criteria"`
}

// Visible returns the lessons passing the current criteria.
func (s State) Visible() []model.Lesson {
	return filter.Apply(s.Lessons, s.Criteria)
}

// Action is a discrete state transition understood by Reduce.
type Action interface {
	isAction()
}

type (
	SetSearch    struct{ Text string }
	SetWeek      struct{ Value string }
	SetProgramme struct{ Value string }
	SetLevel     struct{ Value string }
	SetFocus     struct{ Value string }
	ToggleTag    struct{ Tag string }
	ClearFilters struct{}

	// replaceLessons is only issued after a confirmed write.
	replaceLessons struct{ lessons []model.Lesson }
)

func (SetSearch) isAction()      {}
func (SetWeek) isAction()        {}
func (SetProgramme) isAction()   {}
func (SetLevel) isAction()       {}
func (SetFocus) isAction()       {}
func (ToggleTag) isAction()      {}
func (ClearFilters) isAction()   {}
func (replaceLessons) isAction() {}

// Reduce returns the state that results from applying a to s. s is never
// modified.
func Reduce(s State, a Action) State {
	next := State{Lessons: s.Lessons, Criteria: s.Criteria}
	next.Criteria.Tags = slices.Clone(s.Criteria.Tags)

	switch a := a.(type) {
	case SetSearch:
		next.Criteria.Search = a.Text
	case SetWeek:
		next.Criteria.Week = a.Value
	case SetProgramme:
		next.Criteria.Programme = a.Value
	case SetLevel:
		next.Criteria.Level = a.Value
	case SetFocus:
		next.Criteria.Focus = a.Value
	case ToggleTag:
		next.Criteria = next.Criteria.ToggleTag(a.Tag)
	case ClearFilters:
		next.Criteria = next.Criteria.Clear()
	case replaceLessons:
		next.Lessons = cloneLessons(a.lessons)
	}
	return next
}

func cloneLessons(lessons []model.Lesson) []model.Lesson {
	out := make([]model.Lesson, len(lessons))
	for i, l := range lessons {
		out[i] = l.Clone()
	}
	return out
}
