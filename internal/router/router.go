package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/crist-12/malla-curricular/internal/config"
	"github.com/crist-12/malla-curricular/internal/handler"
	"github.com/crist-12/malla-curricular/internal/middleware"
	"github.com/crist-12/malla-curricular/internal/response"
	"github.com/crist-12/malla-curricular/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth   *handler.AuthHandler
	Guide  *handler.GuideHandler
	Public *handler.PublicHandler
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
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
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

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/signup", handlers.Auth.SignUp)
		auth.POST("/signin", handlers.Auth.SignIn)

		// Authenticated profile routes
		auth.POST("/signout", middleware.RequireJWT(authService), handlers.Auth.SignOut)
		auth.GET("/me", middleware.RequireJWT(authService), middleware.CheckActiveSession(authService), handlers.Auth.Me)
	}

	// ─── 2. Guides Group (JWT + Active Session) ────────────────────────
	guides := router.Group("/api/v1/guides")
	guides.Use(
		middleware.RequireJWT(authService),
		middleware.CheckActiveSession(authService),
	)
	{
		guides.GET("", handlers.Guide.List)
		guides.POST("", handlers.Guide.Create)
		guides.GET("/:id", handlers.Guide.Get)
		guides.PATCH("/:id/visibility", handlers.Guide.SetVisibility)
		guides.PATCH("/:id/theme", handlers.Guide.SetTheme)
		guides.POST("/:id/subjects", handlers.Guide.AddSubject)
		guides.PATCH("/:id/subjects/:subject_id/status", handlers.Guide.ChangeSubjectStatus)
		guides.GET("/:id/export", handlers.Guide.Export)
	}

	// ─── 3. Public Group ───────────────────────────────────────────────
	// Listing needs no token; cloning copies into the caller's account so
	// it does.
	public := router.Group("/api/v1/public")
	{
		public.GET("/guides", handlers.Public.List)
		public.GET("/guides/:id", middleware.OptionalJWT(authService), handlers.Public.Get)
		public.POST("/guides/:id/clone",
			middleware.RequireJWT(authService),
			middleware.CheckActiveSession(authService),
			handlers.Public.Clone,
		)
	}

	return router
}
