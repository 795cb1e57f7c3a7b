package server

import (
	"github.com/gin-gonic/gin"

	"ai-engine/internal/services/health"
	"ai-engine/internal/shared/server/respond"
)

// RootResponse identifies the service on GET /.
type RootResponse struct {
	Service string `json:"service"`
	Status  string `json:"status"`
	Version string `json:"version"`
}

// MetricsSnapshot is the fixed payload served on GET /metrics. Live
// counters are exposed separately on /metrics/prometheus.
type MetricsSnapshot struct {
	InferenceRequests    int     `json:"inference_requests"`
	ActiveModels         int     `json:"active_models"`
	AverageInferenceTime float64 `json:"average_inference_time"`
}

var (
	rootResponse = RootResponse{
		Service: "AI Engine Service",
		Status:  "running",
		Version: health.Version,
	}
	metricsSnapshot = MetricsSnapshot{
		InferenceRequests:    42,
		ActiveModels:         3,
		AverageInferenceTime: 25.5,
	}
)

func root(c *gin.Context) {
	respond.OK(c, rootResponse)
}

func staticMetrics(c *gin.Context) {
	respond.OK(c, metricsSnapshot)
}
