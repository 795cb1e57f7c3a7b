package inference

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ai-engine/internal/shared/server/respond"
	"ai-engine/internal/shared/telemetry"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/predict", h.predict)
}

func (h *Handler) predict(c *gin.Context) {
	if h.Svc == nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "service unavailable", nil)
		return
	}

	var body inferenceBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respond.Error(c, http.StatusUnprocessableEntity, "validation_error", "invalid inference request", []map[string]string{
			{"issue": err.Error()},
		})
		return
	}
	req := body.request()
	c.Set("modelName", req.ModelName)

	resp, err := h.Svc.Predict(c.Request.Context(), req)
	if err != nil {
		telemetry.Error("predict.failed", map[string]any{
			"model_name": req.ModelName,
			"error":      err,
		})
		respond.Error(c, http.StatusInternalServerError, "prediction_failed", "prediction failed", nil)
		return
	}
	respond.OK(c, resp)
}
