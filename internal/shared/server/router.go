package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"leadbot-backend/internal/chat"
	"leadbot-backend/internal/companies"
	"leadbot-backend/internal/documents"
	"leadbot-backend/internal/onboarding"
	"leadbot-backend/internal/services/health"
	"leadbot-backend/internal/shared/config"
	"leadbot-backend/internal/shared/metrics"
	"leadbot-backend/internal/shared/server/middleware"
	"leadbot-backend/internal/shared/server/respond"
	"leadbot-backend/internal/siteprobe"
)

// RouterDeps are the handlers mounted under /api/v1. Nil handlers are skipped.
type RouterDeps struct {
	Config            config.Config
	Health            *health.Service
	CompanyHandler    *companies.Handler
	OnboardingHandler *onboarding.Handler
	DocumentHandler   *documents.Handler
	ChatHandler       *chat.Handler
	SiteProbeHandler  *siteprobe.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		metrics.Middleware(),
	)

	r.GET("/metrics", metrics.Handler())

	healthSvc := deps.Health
	if healthSvc == nil {
		healthSvc = health.NewService(nil)
	}

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		body, ok := healthSvc.Status(c.Request.Context())
		if !ok {
			respond.JSON(c, http.StatusServiceUnavailable, body)
			return
		}
		respond.OK(c, body)
	})

	if deps.OnboardingHandler != nil {
		deps.OnboardingHandler.RegisterRoutes(api)
	}
	if deps.CompanyHandler != nil {
		deps.CompanyHandler.RegisterRoutes(api)
	}
	if deps.DocumentHandler != nil {
		deps.DocumentHandler.RegisterRoutes(api)
	}
	if deps.ChatHandler != nil {
		deps.ChatHandler.RegisterRoutes(api)
	}
	if deps.SiteProbeHandler != nil {
		deps.SiteProbeHandler.RegisterRoutes(api)
	}

	r.NoRoute(func(c *gin.Context) {
		respond.Error(c, http.StatusNotFound, "not_found", "route not found", nil)
	})

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":3000"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
