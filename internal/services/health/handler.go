package health

import (
	"github.com/gin-gonic/gin"

	"ai-engine/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.health)
	r.GET("/service-status", h.serviceStatus)
	r.GET("/ready", h.ready)
}

func (h *Handler) health(c *gin.Context) {
	respond.OK(c, h.Svc.Health())
}

// serviceStatus always answers 200; the payload carries the outcome.
func (h *Handler) serviceStatus(c *gin.Context) {
	respond.OK(c, h.Svc.ServiceStatus(c.Request.Context()))
}

func (h *Handler) ready(c *gin.Context) {
	res, ok := h.Svc.Readiness(c.Request.Context())
	respond.Readiness(c, ok, res)
}
