package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/jmcpheron/ccc-schedule/internal/config"
	"github.com/jmcpheron/ccc-schedule/internal/handler"
	"github.com/jmcpheron/ccc-schedule/internal/middleware"
	"github.com/jmcpheron/ccc-schedule/internal/response"
	"github.com/jmcpheron/ccc-schedule/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Schedule *handler.ScheduleHandler
	Ingest   *handler.IngestHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
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
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// ─── 1. Public Schedule Group ──────────────────────────────────────
	api := router.Group("/api/v1")
	{
		api.GET("/sources", handlers.Ingest.ListSources)
		api.GET("/schedules", handlers.Schedule.ListSchedules)

		// Published documents change at most a few times a day; let
		// clients cache the raw document briefly.
		api.GET("/schedules/:college",
			middleware.CacheControl(300),
			handlers.Schedule.GetSchedule,
		)
		api.GET("/schedules/:college/courses", handlers.Schedule.FilterCourses)
		api.GET("/schedules/:college/filters", handlers.Schedule.GetFilters)
	}

	// Rate limiter for ingest routes (30 requests per minute per IP).
	ingestLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 2. Admin Group (Ingest Token) ─────────────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(middleware.RequireIngestToken(authService))
	{
		adminAPI.POST("/schedules/:college",
			ingestLimiter.Middleware(),
			handlers.Ingest.IngestSchedule,
		)
		adminAPI.POST("/transform", handlers.Ingest.TransformFeed)
	}

	return router
}
