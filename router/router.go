package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/TiltTrack/tilt-track-backend/config"
	"github.com/TiltTrack/tilt-track-backend/handlers"
	"github.com/TiltTrack/tilt-track-backend/middleware"
)

// Dependencies holds everything required for setting up routes.
type Dependencies struct {
	Config           *config.Config
	JWTValidator     middleware.Validator
	RedisClient      *redis.Client
	FeedbackHandler  *handlers.FeedbackHandler
	LogsHandler      *handlers.LogsHandler
	ActivityHandler  *handlers.ActivityHandler
	DashboardHandler *handlers.DashboardHandler
	UserHandler      *handlers.UserHandler
	EducationHandler *handlers.EducationHandler
	HealthHandler    *handlers.HealthHandler
}

// SetupRouter configures and returns the main Gin engine with all routes.
func SetupRouter(deps Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(&deps.Config.Server))

	// Health and metrics routes, no auth.
	r.GET("/health", deps.HealthHandler.DetailedHealth)
	r.GET("/health/liveness", deps.HealthHandler.LivenessCheck)
	r.GET("/health/readiness", deps.HealthHandler.ReadinessCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/v1")
	{
		// Education content is public.
		v1.GET("/education", deps.EducationHandler.ListSections)
		v1.GET("/education/:slug", deps.EducationHandler.GetSection)

		authRoutes := v1.Group("")
		authRoutes.Use(middleware.AuthMiddleware(deps.JWTValidator))
		{
			// The per-IP limiter sits in front of the shared daily email
			// quota so one client cannot burn it alone.
			feedbackLimiter := middleware.IPRateLimiter(
				deps.RedisClient,
				"feedback",
				deps.Config.RateLimit.RequestsPerMinute,
				time.Duration(deps.Config.RateLimit.WindowSeconds)*time.Second,
			)
			authRoutes.POST("/feedback", feedbackLimiter, deps.FeedbackHandler.SubmitFeedback)

			userRoutes := authRoutes.Group("/users")
			{
				userRoutes.GET("/me", deps.UserHandler.GetMe)
				userRoutes.PATCH("/me", deps.UserHandler.UpdateMe)
				userRoutes.DELETE("/me", deps.UserHandler.DeleteMe)
			}

			logRoutes := authRoutes.Group("/logs")
			{
				logRoutes.POST("/symptoms", deps.LogsHandler.CreateSymptomLog)
				logRoutes.GET("/symptoms", deps.LogsHandler.ListSymptomLogs)
				logRoutes.POST("/exercise", deps.LogsHandler.CreateExerciseLog)
				logRoutes.GET("/exercise", deps.LogsHandler.ListExerciseLogs)
				logRoutes.POST("/intake", deps.LogsHandler.CreateIntakeLog)
				logRoutes.GET("/intake", deps.LogsHandler.ListIntakeLogs)
				logRoutes.POST("/sleep", deps.LogsHandler.CreateSleepLog)
				logRoutes.GET("/sleep", deps.LogsHandler.ListSleepLogs)
				logRoutes.POST("/compression", deps.LogsHandler.CreateCompressionLog)
				logRoutes.GET("/compression", deps.LogsHandler.ListCompressionLogs)
				logRoutes.POST("/countermeasures", deps.LogsHandler.CreateCountermeasureLog)
				logRoutes.GET("/countermeasures", deps.LogsHandler.ListCountermeasureLogs)
				logRoutes.POST("/cooling", deps.LogsHandler.CreateCoolingLog)
				logRoutes.GET("/cooling", deps.LogsHandler.ListCoolingLogs)
			}

			authRoutes.GET("/activity", deps.ActivityHandler.ListActivity)
			authRoutes.GET("/dashboard/summary", deps.DashboardHandler.Summary)
		}
	}

	return r
}
