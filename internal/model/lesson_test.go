package model

import (
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validLesson() Lesson {
	return Lesson{
		Title:     "Past Tense Practice",
		Week:      "Week B",
		Programme: "Connection",
		Level:     "Level 2",
		Focus:     "Language Focus",
		Tags:      []string{"B1", "Grammar"},
	}
}

func TestValidate_OK(t *testing.T) {
	require.NoError(t, validLesson().Validate())
}

func TestValidate_MissingFields(t *testing.T) {
	l := validLesson()
	l.Title = "   "
	l.Focus = ""

	err := l.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Contains(t, err.Error(), "title")
	assert.Contains(t, err.Error(), "focus")
	assert.NotContains(t, err.Error(), "week")
}

func TestValidate_UnknownEnumValueAccepted(t *testing.T) {
	l := validLesson()
	l.Week = "Week Z"
	assert.NoError(t, l.Validate())
}

func TestValidate_DocumentLinks(t *testing.T) {
	tests := []struct {
		name string
		ref  string
		ok   bool
	}{
		{"empty", "", true},
		{"sharepoint subdomain", "https://contoso.sharepoint.com/doc.pdf", true},
		{"sharepoint apex", "https://sharepoint.com/doc.pdf", true},
		{"sharepoint scheme", "sharepoint://sites/uklc/doc.pdf", true},
		{"dropbox", "https://dropbox.com/doc.pdf", false},
		{"lookalike host", "https://sharepoint.com.evil.io/doc.pdf", false},
		{"domain in query", "https://example.com/?u=sharepoint.com", false},
		{"embedded", "data:application/pdf;base64," + base64.StdEncoding.EncodeToString([]byte("%PDF-1.4")), true},
		{"embedded not base64", "data:application/pdf,%PDF-1.4", false},
		{"embedded bad payload", "data:application/pdf;base64,@@@", false},
		{"embedded with params", "data:application/pdf;name=a.pdf;base64,JVBERi0=", true},
		{"embedded media type prefix", "data:application/pdfx;base64,AAAA", false},
		{"embedded other media type", "data:text/plain;base64,AAAA", false},
		{"embedded empty payload", "data:application/pdf;base64,", false},
		{"sharepoint scheme opaque", "sharepoint:anything", false},
		{"sharepoint scheme no host", "sharepoint:///doc.pdf", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := validLesson()
			l.PDFPath = tt.ref
			err := l.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrValidation)
			}
		})
	}
}

func TestParseDocumentRef_Embedded(t *testing.T) {
	raw := []byte("%PDF-1.7\n1 0 obj\n")
	uri, err := EncodePDF(raw)
	require.NoError(t, err)

	ref, err := ParseDocumentRef(uri)
	require.NoError(t, err)
	assert.Equal(t, DocumentEmbedded, ref.Kind)
	assert.Equal(t, raw, ref.Data)
	assert.Equal(t, "application/pdf", ref.MediaType())
}

func TestParseDocumentRef_Link(t *testing.T) {
	ref, err := ParseDocumentRef("https://contoso.sharepoint.com/doc.pdf")
	require.NoError(t, err)
	assert.Equal(t, DocumentLink, ref.Kind)
	assert.Nil(t, ref.Data)
}

func TestEncodePDF_RejectsNonPDF(t *testing.T) {
	_, err := EncodePDF([]byte("hello, plain text"))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCloneDoesNotShareTags(t *testing.T) {
	l := validLesson()
	c := l.Clone()
	c.Tags[0] = "C2"
	assert.Equal(t, "B1", l.Tags[0])
	assert.True(t, l.HasTag("Grammar"))
	assert.False(t, l.HasTag("grammar"))
}

func TestDraftLesson(t *testing.T) {
	d := Draft{Title: "Picnic", Week: "Week A", Programme: "Action", Level: "Level 1", Focus: "Culture Focus", Tags: []string{"Outdoor Lesson"}}
	require.NoError(t, d.Validate())

	l := d.Lesson()
	assert.Empty(t, l.ID)
	assert.True(t, l.CreatedAt.IsZero())
	d.Tags[0] = "changed"
	assert.Equal(t, "Outdoor Lesson", l.Tags[0])
}
