package app

import (
	"github.com/gin-gonic/gin"

	"github.com/careerpath/careerpath-backend/internal/http"
	httpH "github.com/careerpath/careerpath-backend/internal/http/handlers"
	httpMW "github.com/careerpath/careerpath-backend/internal/http/middleware"
	"github.com/careerpath/careerpath-backend/internal/observability"
	"github.com/careerpath/careerpath-backend/internal/platform/logger"
)

type Middleware struct {
	Auth        *httpMW.AuthMiddleware
	RateLimiter *httpMW.RateLimiter
}

type Handlers struct {
	Health       *httpH.HealthHandler
	Auth         *httpH.AuthHandler
	User         *httpH.UserHandler
	Assessment   *httpH.AssessmentHandler
	Resource     *httpH.ResourceHandler
	Dashboard    *httpH.DashboardHandler
	Notification *httpH.NotificationHandler
	Public       *httpH.PublicHandler
}

func wireHandlers(log *logger.Logger, services Services, db httpH.Pinger) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:       httpH.NewHealthHandler(db),
		Auth:         httpH.NewAuthHandler(log, services.Auth),
		User:         httpH.NewUserHandler(log, services.User, services.Assessment, services.SavedResource),
		Assessment:   httpH.NewAssessmentHandler(log, services.Assessment),
		Resource:     httpH.NewResourceHandler(log, services.SavedResource),
		Dashboard:    httpH.NewDashboardHandler(log, services.Dashboard),
		Notification: httpH.NewNotificationHandler(log, services.Notification),
		Public:       httpH.NewPublicHandler(log, services.Waitlist, services.Contact),
	}
}

func wireMiddleware(log *logger.Logger, cfg Config, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth:        httpMW.NewAuthMiddleware(log, services.Auth),
		RateLimiter: httpMW.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
	}
}

func wireRouter(log *logger.Logger, cfg Config, handlers Handlers, middleware Middleware) *gin.Engine {
	return http.NewRouter(http.RouterConfig{
		Log:                 log,
		ServiceName:         cfg.ServiceName,
		AllowedOrigins:      cfg.AllowedOrigins,
		Metrics:             observability.Current(),
		RateLimiter:         middleware.RateLimiter,
		AuthMiddleware:      middleware.Auth,
		HealthHandler:       handlers.Health,
		AuthHandler:         handlers.Auth,
		UserHandler:         handlers.User,
		AssessmentHandler:   handlers.Assessment,
		ResourceHandler:     handlers.Resource,
		DashboardHandler:    handlers.Dashboard,
		NotificationHandler: handlers.Notification,
		PublicHandler:       handlers.Public,
	})
}
