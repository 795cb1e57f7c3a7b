package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// OK writes a 200 OK JSON response.
func OK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// Readiness writes payload with 200 when ready and 503 otherwise, so
// orchestrators can route on the status code alone.
func Readiness(c *gin.Context, ready bool, payload any) {
	status := http.StatusOK
	if !ready {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, payload)
}
