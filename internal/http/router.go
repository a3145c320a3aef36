package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/careerpath/careerpath-backend/internal/http/handlers"
	httpMW "github.com/careerpath/careerpath-backend/internal/http/middleware"
	"github.com/careerpath/careerpath-backend/internal/observability"
	"github.com/careerpath/careerpath-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	ServiceName    string
	AllowedOrigins []string
	Metrics        *observability.Metrics
	RateLimiter    *httpMW.RateLimiter

	AuthMiddleware *httpMW.AuthMiddleware

	AuthHandler         *httpH.AuthHandler
	UserHandler         *httpH.UserHandler
	AssessmentHandler   *httpH.AssessmentHandler
	ResourceHandler     *httpH.ResourceHandler
	DashboardHandler    *httpH.DashboardHandler
	NotificationHandler *httpH.NotificationHandler
	PublicHandler       *httpH.PublicHandler
	HealthHandler       *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.AttachRequestContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.AllowedOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	limited := func(h gin.HandlerFunc) []gin.HandlerFunc {
		if cfg.RateLimiter == nil {
			return []gin.HandlerFunc{h}
		}
		return []gin.HandlerFunc{cfg.RateLimiter.Middleware(), h}
	}

	api := r.Group("/api")
	{
		// Auth (public)
		if cfg.AuthHandler != nil {
			api.POST("/register", limited(cfg.AuthHandler.Register)...)
			api.POST("/login", limited(cfg.AuthHandler.Login)...)
			api.POST("/refresh", cfg.AuthHandler.Refresh)
		}

		// Forms (public)
		if cfg.PublicHandler != nil {
			api.POST("/waitlist", limited(cfg.PublicHandler.JoinWaitlist)...)
			api.POST("/contact", limited(cfg.PublicHandler.Contact)...)
		}

		// Assessments (guests allowed)
		if cfg.AssessmentHandler != nil {
			api.GET("/questions", cfg.AssessmentHandler.Questions)
			optional := api.Group("/")
			if cfg.AuthMiddleware != nil {
				optional.Use(cfg.AuthMiddleware.OptionalAuth())
			}
			optional.POST("/quiz", limited(cfg.AssessmentHandler.SubmitQuiz)...)
			optional.GET("/results/:id", cfg.AssessmentHandler.GetResult)
		}
	}

	protected := api.Group("/")
	{
		// Middleware
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Auth (protected)
		if cfg.AuthHandler != nil {
			protected.POST("/logout", cfg.AuthHandler.Logout)
		}

		// User
		if cfg.UserHandler != nil {
			protected.GET("/me", cfg.UserHandler.GetMe)
			protected.PATCH("/user/profile", cfg.UserHandler.UpdateProfile)
			protected.GET("/user/assessments", cfg.UserHandler.ListAssessments)
			protected.GET("/user/sidebar-stats", cfg.UserHandler.SidebarStats)
		}

		// Dashboard
		if cfg.DashboardHandler != nil {
			protected.GET("/dashboard", cfg.DashboardHandler.Summary)
		}

		// Saved resources
		if cfg.ResourceHandler != nil {
			protected.POST("/resources/save", cfg.ResourceHandler.ToggleSave)
			protected.GET("/resources/saved", cfg.ResourceHandler.ListSaved)
		}

		// Notifications
		if cfg.NotificationHandler != nil {
			protected.GET("/notifications", cfg.NotificationHandler.List)
			protected.POST("/notifications/read-all", cfg.NotificationHandler.MarkAllRead)
		}
	}

	return r
}
