package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/uklc/lessons/internal/filter"
	"github.com/uklc/lessons/internal/model"
)

func TestReduce_DoesNotMutateInput(t *testing.T) {
	s := State{
		Lessons:  []model.Lesson{{ID: "1", Title: "One", Tags: []string{"A1"}}},
		Criteria: filter.Criteria{Tags: []string{"A1"}},
	}

	next := Reduce(s, ToggleTag{Tag: "B1"})
	assert.Equal(t, []string{"A1", "B1"}, next.Criteria.Tags)
	assert.Equal(t, []string{"A1"}, s.Criteria.Tags)

	next = Reduce(s, replaceLessons{lessons: []model.Lesson{{ID: "2"}}})
	assert.Equal(t, "1", s.Lessons[0].ID)
	assert.Equal(t, "2", next.Lessons[0].ID)
}

func TestReduce_Dimensions(t *testing.T) {
	s := State{}
	s = Reduce(s, SetSearch{Text: "verbs"})
	s = Reduce(s, SetWeek{Value: "Week A"})
	s = Reduce(s, SetProgramme{Value: "Action"})
	s = Reduce(s, SetLevel{Value: "Level 3"})
	s = Reduce(s, SetFocus{Value: "Culture Focus"})

	assert.Equal(t, filter.Criteria{
		Search:    "verbs",
		Week:      "Week A",
		Programme: "Action",
		Level:     "Level 3",
		Focus:     "Culture Focus",
	}, s.Criteria)

	s = Reduce(s, ClearFilters{})
	assert.True(t, s.Criteria.IsZero())
}

func TestComputeStats(t *testing.T) {
	lessons := []model.Lesson{
		{Week: "Week A", Programme: "Action", Level: "Level 1", Focus: "Culture Focus", Tags: []string{"A1", "Outdoor Lesson"}, PDFPath: "https://contoso.sharepoint.com/a.pdf"},
		{Week: "Week A", Programme: "Purpose", Level: "Level 2", Focus: "Culture Focus", Tags: []string{"A1"}, PDFPath: "data:application/pdf;base64,JVBERi0xLjQ="},
		{Week: "Week B", Programme: "Purpose", Level: "Level 2", Focus: "Language Focus"},
	}

	st := ComputeStats(lessons)
	assert.Equal(t, 3, st.TotalLessons)
	assert.Equal(t, 1, st.WithLink)
	assert.Equal(t, 1, st.WithEmbedded)
	assert.Equal(t, 2, st.Weeks["Week A"])
	assert.Equal(t, 2, st.Programmes["Purpose"])
	assert.Equal(t, 2, st.Levels["Level 2"])
	assert.Equal(t, 1, st.Focuses["Language Focus"])
	assert.Equal(t, 2, st.Tags["A1"])
	assert.Equal(t, 1, st.Tags["Outdoor Lesson"])
}
