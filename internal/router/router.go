package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/stemsi/lessonlab-backend/internal/config"
	"github.com/stemsi/lessonlab-backend/internal/handler"
	"github.com/stemsi/lessonlab-backend/internal/middleware"
	"github.com/stemsi/lessonlab-backend/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Lesson     *handler.LessonHandler
	Attendance *handler.AttendanceHandler
	Task       *handler.TaskHandler
	Quiz       *handler.QuizHandler
	Stats      *handler.StatsHandler
	WS         *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(handlers *Handlers, cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Verification runs spawn subprocesses; keep submissions throttled.
	submitLimiter := middleware.NewRateLimiter(10, time.Minute)

	api := router.Group("/api/v1")
	{
		api.GET("/lessons/current", handlers.Lesson.GetCurrent)

		users := api.Group("/users/:user_id")
		{
			users.POST("/attendance", handlers.Attendance.Register)
			users.POST("/task", handlers.Task.AssignTask)
			users.POST("/solution", submitLimiter.Middleware(), handlers.Task.SubmitSolution)
			users.GET("/stats", handlers.Stats.GetStats)

			users.POST("/quiz/start", handlers.Quiz.Start)
			users.GET("/quiz/question", handlers.Quiz.GetQuestion)
			users.POST("/quiz/answer", handlers.Quiz.Answer)
		}
	}

	// ─── WebSocket ─────────────────────────────────────────────────────
	router.GET("/ws/v1/users/:user_id/verifications/stream", handlers.WS.VerificationStream)

	return router
}
