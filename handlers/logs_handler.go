package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TiltTrack/tilt-track-backend/services"
	"github.com/TiltTrack/tilt-track-backend/types"
)

// LogsHandler exposes the seven observation log collections. Every
// collection has the same surface: POST to append, GET to list newest
// first.
type LogsHandler struct {
	tracking *services.TrackingService
}

// NewLogsHandler creates a new LogsHandler.
func NewLogsHandler(tracking *services.TrackingService) *LogsHandler {
	return &LogsHandler{tracking: tracking}
}

// CreateSymptomLog handles POST /logs/symptoms.
func (h *LogsHandler) CreateSymptomLog(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req types.SymptomLogCreate
	if !bindJSONOrError(c, &req) {
		return
	}
	entry, err := h.tracking.LogSymptom(c.Request.Context(), userID, req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// ListSymptomLogs handles GET /logs/symptoms.
func (h *LogsHandler) ListSymptomLogs(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	entries, err := h.tracking.ListSymptoms(c.Request.Context(), userID, listParams(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// CreateExerciseLog handles POST /logs/exercise.
func (h *LogsHandler) CreateExerciseLog(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req types.ExerciseLogCreate
	if !bindJSONOrError(c, &req) {
		return
	}
	entry, err := h.tracking.LogExercise(c.Request.Context(), userID, req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// ListExerciseLogs handles GET /logs/exercise.
func (h *LogsHandler) ListExerciseLogs(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	entries, err := h.tracking.ListExercises(c.Request.Context(), userID, listParams(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// CreateIntakeLog handles POST /logs/intake.
func (h *LogsHandler) CreateIntakeLog(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req types.IntakeLogCreate
	if !bindJSONOrError(c, &req) {
		return
	}
	entry, err := h.tracking.LogIntake(c.Request.Context(), userID, req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// ListIntakeLogs handles GET /logs/intake.
func (h *LogsHandler) ListIntakeLogs(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	entries, err := h.tracking.ListIntake(c.Request.Context(), userID, listParams(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// CreateSleepLog handles POST /logs/sleep.
func (h *LogsHandler) CreateSleepLog(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req types.SleepLogCreate
	if !bindJSONOrError(c, &req) {
		return
	}
	entry, err := h.tracking.LogSleep(c.Request.Context(), userID, req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// ListSleepLogs handles GET /logs/sleep.
func (h *LogsHandler) ListSleepLogs(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	entries, err := h.tracking.ListSleep(c.Request.Context(), userID, listParams(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// CreateCompressionLog handles POST /logs/compression.
func (h *LogsHandler) CreateCompressionLog(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req types.CompressionLogCreate
	if !bindJSONOrError(c, &req) {
		return
	}
	entry, err := h.tracking.LogCompression(c.Request.Context(), userID, req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// ListCompressionLogs handles GET /logs/compression.
func (h *LogsHandler) ListCompressionLogs(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	entries, err := h.tracking.ListCompression(c.Request.Context(), userID, listParams(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// CreateCountermeasureLog handles POST /logs/countermeasures.
func (h *LogsHandler) CreateCountermeasureLog(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req types.CountermeasureLogCreate
	if !bindJSONOrError(c, &req) {
		return
	}
	entry, err := h.tracking.LogCountermeasure(c.Request.Context(), userID, req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// ListCountermeasureLogs handles GET /logs/countermeasures.
func (h *LogsHandler) ListCountermeasureLogs(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	entries, err := h.tracking.ListCountermeasures(c.Request.Context(), userID, listParams(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// CreateCoolingLog handles POST /logs/cooling.
func (h *LogsHandler) CreateCoolingLog(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req types.CoolingLogCreate
	if !bindJSONOrError(c, &req) {
		return
	}
	entry, err := h.tracking.LogCooling(c.Request.Context(), userID, req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// ListCoolingLogs handles GET /logs/cooling.
func (h *LogsHandler) ListCoolingLogs(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	entries, err := h.tracking.ListCooling(c.Request.Context(), userID, listParams(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
