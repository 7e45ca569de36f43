package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"orgboard/internal/idempotency"
)

// IdempotencyMiddleware fences create endpoints. Clients that set an
// Idempotency-Key header get at-most-once commit semantics for that
// key; a replay of the same key is rejected with 409. Requests
// without the header pass through unchanged.
func IdempotencyMiddleware(guard *idempotency.Guard) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("Idempotency-Key")
		if key == "" {
			c.Next()
			return
		}

		if !guard.AcquireOnce(c.Request.Context(), c.FullPath(), key) {
			c.JSON(http.StatusConflict, gin.H{"error": "duplicate request"})
			c.Abort()
			return
		}

		c.Next()
	}
}
