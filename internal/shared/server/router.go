package server

import (
	"github.com/gin-gonic/gin"

	"ai-engine/internal/inference"
	"ai-engine/internal/services/health"
	"ai-engine/internal/shared/config"
	"ai-engine/internal/shared/metrics"
	"ai-engine/internal/shared/server/middleware"
)

// RouterDeps carries the handlers the router mounts.
type RouterDeps struct {
	Config           config.Config
	HealthHandler    *health.Handler
	InferenceHandler *inference.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/", root)
	r.GET("/metrics", staticMetrics)
	r.GET("/metrics/prometheus", metrics.Handler())

	if deps.HealthHandler != nil {
		deps.HealthHandler.RegisterRoutes(r)
	}

	api := r.Group("/api/v1")
	if deps.InferenceHandler != nil {
		deps.InferenceHandler.RegisterRoutes(api)
	}

	return r
}
