package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TiltTrack/tilt-track-backend/types"
)

func TestComposeFeedbackEmailSubject(t *testing.T) {
	tests := []struct {
		category types.FeedbackCategory
		want     string
	}{
		{types.FeedbackCategoryBug, "[Bug Report] from a@example.com"},
		{types.FeedbackCategoryFeature, "[Feature Request] from a@example.com"},
		{types.FeedbackCategoryFeedback, "[General Feedback] from a@example.com"},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			msg, err := ComposeFeedbackEmail(tt.category, "Something worth reporting here.", "a@example.com", "team@tilttrack.app")
			require.NoError(t, err)
			assert.Equal(t, tt.want, msg.Subject)
		})
	}
}

func TestComposeFeedbackEmailBodies(t *testing.T) {
	body := "The **chart** is broken.\n\n- on mobile\n- on tablet"

	msg, err := ComposeFeedbackEmail(types.FeedbackCategoryBug, body, "a@example.com", "team@tilttrack.app")
	require.NoError(t, err)

	assert.Equal(t, "team@tilttrack.app", msg.To)
	assert.Equal(t, "a@example.com", msg.ReplyTo)

	// Plain text carries the raw markdown.
	assert.Contains(t, msg.Text, "From: a@example.com")
	assert.Contains(t, msg.Text, "Type: Bug Report")
	assert.Contains(t, msg.Text, "**chart**")

	// HTML carries the rendered markdown.
	assert.Contains(t, msg.HTML, "<strong>chart</strong>")
	assert.Contains(t, msg.HTML, "<li>on mobile</li>")
	assert.NotContains(t, msg.HTML, "**chart**")
}

func TestComposeFeedbackEmailEscapesHTMLInFields(t *testing.T) {
	msg, err := ComposeFeedbackEmail(types.FeedbackCategoryFeedback, "A perfectly fine message.", `"<script>"@example.com`, "team@tilttrack.app")
	require.NoError(t, err)
	assert.NotContains(t, msg.HTML, "<script>")
}
