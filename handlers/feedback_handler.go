package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/TiltTrack/tilt-track-backend/errors"
	"github.com/TiltTrack/tilt-track-backend/logger"
	"github.com/TiltTrack/tilt-track-backend/services"
	"github.com/TiltTrack/tilt-track-backend/types"
)

// FeedbackHandler exposes the feedback submission endpoint.
//
// The endpoint keeps its own response envelope: every outcome, success or
// failure, is reported as {"success": bool, "error": string|null} so the
// submitting client has a single shape to parse. Errors therefore do not
// flow through the shared error-handler middleware.
type FeedbackHandler struct {
	feedbackService *services.FeedbackService
}

// NewFeedbackHandler creates a new FeedbackHandler.
func NewFeedbackHandler(feedbackService *services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService}
}

// SubmitFeedback godoc
// @Summary      Submit feedback
// @Description  Validates a feedback submission and forwards it by email
// @Tags         feedback
// @Accept       json
// @Produce      json
// @Param        body  body      types.FeedbackSubmission  true  "Feedback payload"
// @Success      200   {object}  types.FeedbackResponse
// @Failure      400   {object}  types.FeedbackResponse
// @Failure      429   {object}  types.FeedbackResponse
// @Failure      500   {object}  types.FeedbackResponse
// @Router       /feedback [post]
func (h *FeedbackHandler) SubmitFeedback(c *gin.Context) {
	// ShouldBind accepts JSON and form-encoded bodies alike.
	var sub types.FeedbackSubmission
	if err := c.ShouldBind(&sub); err != nil {
		respondFeedbackError(c, http.StatusBadRequest, "Invalid form data")
		return
	}

	if err := h.feedbackService.Submit(c.Request.Context(), sub); err != nil {
		status, message := feedbackErrorResponse(err)
		respondFeedbackError(c, status, message)
		return
	}

	c.JSON(http.StatusOK, types.FeedbackResponse{Success: true, Error: nil})
}

// feedbackErrorResponse maps a pipeline failure to a status code and a
// client-safe message. Internal details never leave the server.
func feedbackErrorResponse(err error) (int, string) {
	appError, ok := err.(*apperrors.AppError)
	if !ok {
		logger.GetLogger().Errorw("Unexpected feedback pipeline error", "error", err)
		return http.StatusInternalServerError, "Failed to send feedback"
	}

	switch appError.Type {
	case apperrors.ValidationError:
		msg := appError.Message
		if appError.Detail != "" {
			msg = appError.Detail
		}
		return appError.GetHTTPStatus(), msg
	case apperrors.RateLimitError, apperrors.ConfigurationError:
		return appError.GetHTTPStatus(), appError.Message
	case apperrors.DeliveryError:
		return appError.GetHTTPStatus(), "Failed to send feedback, please try again later"
	default:
		return appError.GetHTTPStatus(), "Failed to send feedback"
	}
}

func respondFeedbackError(c *gin.Context, status int, message string) {
	c.JSON(status, types.FeedbackResponse{Success: false, Error: &message})
}
