package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CrossOrigin adds the headers the emulator bundle needs on every response
// and answers preflight requests directly.
// COEP/COOP make the page cross-origin isolated, which the threaded cores
// require for SharedArrayBuffer.
func CrossOrigin() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cross-Origin-Embedder-Policy", "require-corp")
		c.Header("Cross-Origin-Opener-Policy", "same-origin")
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}

		c.Next()
	}
}
