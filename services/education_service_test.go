package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEducationServiceRendersLibrary(t *testing.T) {
	svc := NewEducationService()

	sections := svc.Sections()
	require.NotEmpty(t, sections)

	for _, sec := range sections {
		assert.NotEmpty(t, sec.Slug)
		assert.NotEmpty(t, sec.Title)
		assert.NotEmpty(t, sec.HTML, "section %s must be rendered", sec.Slug)
	}

	// Markdown emphasis comes out as HTML.
	sec, err := svc.Section("volume-expansion")
	require.NoError(t, err)
	assert.Contains(t, string(sec.HTML), "<strong>3000 ml of fluid</strong>")
}

func TestEducationServiceUnknownSlug(t *testing.T) {
	svc := NewEducationService()

	_, err := svc.Section("no-such-article")
	assert.Error(t, err)
}
