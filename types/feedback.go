package types

// FeedbackCategory classifies a feedback submission.
type FeedbackCategory string

const (
	FeedbackCategoryBug      FeedbackCategory = "bug"
	FeedbackCategoryFeature  FeedbackCategory = "feature"
	FeedbackCategoryFeedback FeedbackCategory = "feedback"
)

// Label returns the human-readable label used in the email subject.
func (c FeedbackCategory) Label() string {
	switch c {
	case FeedbackCategoryBug:
		return "Bug Report"
	case FeedbackCategoryFeature:
		return "Feature Request"
	case FeedbackCategoryFeedback:
		return "General Feedback"
	default:
		return ""
	}
}

// Valid reports whether the category is one of the known values.
func (c FeedbackCategory) Valid() bool {
	return c.Label() != ""
}

// FeedbackSubmission is the request body for submitting feedback. It is
// forwarded by email and never persisted.
type FeedbackSubmission struct {
	Category  FeedbackCategory `json:"type" form:"type" binding:"required"`
	Message   string           `json:"message" form:"message" binding:"required"`
	UserEmail string           `json:"userEmail" form:"userEmail" binding:"required"`
}

// FeedbackResponse is the uniform response shape of the feedback endpoint.
type FeedbackResponse struct {
	Success bool    `json:"success"`
	Error   *string `json:"error"`
}

// FeedbackQuota is the single shared counter record tracking how many
// feedback emails have been accepted on the current calendar day.
// Count is only meaningful together with ResetDate: if ResetDate is not
// today, the stored count is treated as zero.
type FeedbackQuota struct {
	Count     int    `json:"count"`
	ResetDate string `json:"resetDate"` // yyyy-MM-dd in server time
}
