package catalog

import (
	"github.com/uklc/lessons/internal/model"
)

// Stats summarises the collection.
type Stats struct {
	TotalLessons int            `json:"total_lessons"`
	WithLink     int            `json:"with_link"`
	WithEmbedded int            `json:"with_embedded"`
	StoredBytes  int            `json:"stored_bytes,omitempty"`
	Weeks        map[string]int `json:"weeks"`
	Programmes   map[string]int `json:"programmes"`
	Levels       map[string]int `json:"levels"`
	Focuses      map[string]int `json:"focuses"`
	Tags         map[string]int `json:"tags"`
}

// ComputeStats counts lessons per dimension and per tag.
func ComputeStats(lessons []model.Lesson) *Stats {
	st := &Stats{
		TotalLessons: len(lessons),
		Weeks:        map[string]int{},
		Programmes:   map[string]int{},
		Levels:       map[string]int{},
		Focuses:      map[string]int{},
		Tags:         map[string]int{},
	}

	for _, l := range lessons {
		st.Weeks[l.Week]++
		st.Programmes[l.Programme]++
		st.Levels[l.Level]++
		st.Focuses[l.Focus]++
		for _, t := range l.Tags {
			st.Tags[t]++
		}
		if l.PDFPath == "" {
			continue
		}
		if ref, err := model.ParseDocumentRef(l.PDFPath); err == nil {
			switch ref.Kind {
			case model.DocumentLink:
				st.WithLink++
			case model.DocumentEmbedded:
				st.WithEmbedded++
			}
		}
	}

	return st
}

// Stats returns statistics for the current collection.
func (m *Manager) Stats() *Stats {
	return ComputeStats(m.Lessons())
}
