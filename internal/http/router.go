package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/pathwise/pathwise-backend/internal/http/handlers"
	httpMW "github.com/pathwise/pathwise-backend/internal/http/middleware"
	"github.com/pathwise/pathwise-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	ProfileHandler     *httpH.ProfileHandler
	PathHandler        *httpH.PathHandler
	ResourceHandler    *httpH.ResourceHandler
	InteractionHandler *httpH.InteractionHandler

	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware("pathwise-backend"))
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS())

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Onboarding
		if cfg.ProfileHandler != nil {
			api.GET("/onboarding/questionnaire", cfg.ProfileHandler.GetQuestionnaire)
			api.POST("/users/:id/onboarding", cfg.ProfileHandler.SubmitOnboarding)

			// Profile
			api.GET("/users/:id/profile", cfg.ProfileHandler.GetProfile)
			api.POST("/users/:id/profile/refresh", cfg.ProfileHandler.RefreshProfile)
			api.GET("/users/:id/behavior/aggregate", cfg.ProfileHandler.GetAggregate)
		}

		// Personalized paths
		if cfg.PathHandler != nil {
			api.GET("/users/:id/path/:concept", cfg.PathHandler.GetPersonalizedPath)
		}

		// Resource catalog
		if cfg.ResourceHandler != nil {
			api.POST("/resources", cfg.ResourceHandler.CreateResource)
			api.GET("/resources/:id/analytics", cfg.ResourceHandler.GetAnalytics)
			api.GET("/concepts/:concept", cfg.ResourceHandler.GetConcept)
			api.GET("/concepts/:concept/resources", cfg.ResourceHandler.ListForConcept)
			api.POST("/concepts/:concept/resources", cfg.ResourceHandler.LinkResource)
		}

		// Interactions
		if cfg.InteractionHandler != nil {
			api.POST("/interactions/:id/close", cfg.InteractionHandler.CloseInteraction)
		}
	}

	return r
}
