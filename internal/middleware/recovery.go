package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Recovery turns a handler panic into a generic JSON 500. The panic value is
// logged; nothing about it reaches the client.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, err any) {
		slog.ErrorContext(c.Request.Context(), "Server error",
			"err", err,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"id", c.GetString(RequestIDKey),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	})
}
