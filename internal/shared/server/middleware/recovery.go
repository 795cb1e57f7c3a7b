package middleware

import (
	"errors"
	"net/http"
	"runtime/debug"
	"syscall"

	"github.com/gin-gonic/gin"

	"ai-engine/internal/shared/server/respond"
	"ai-engine/internal/shared/telemetry"
)

// Recovery turns a handler panic into the internal error envelope. If the
// client has gone away or the response is already on the wire, the request
// is only aborted.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			fields := map[string]any{
				"request_id": RequestIDFromContext(c),
				"path":       c.Request.URL.Path,
				"method":     c.Request.Method,
				"error":      rec,
			}
			if modelName := c.GetString("modelName"); modelName != "" {
				fields["model_name"] = modelName
			}

			if clientGone(rec) {
				telemetry.Warn("panic.client_gone", fields)
				c.Abort()
				return
			}
			fields["stack"] = string(debug.Stack())
			telemetry.Error("panic", fields)

			if c.Writer.Written() {
				c.Abort()
				return
			}
			respond.Error(c, http.StatusInternalServerError, "internal", "Unexpected server error", nil)
		}()
		c.Next()
	}
}

func clientGone(rec any) bool {
	err, ok := rec.(error)
	if !ok {
		return false
	}
	return errors.Is(err, syscall.EPIPE) || errors.Is(err, syscall.ECONNRESET)
}
