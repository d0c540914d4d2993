package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// New creates the HTTP server with all routes configured. allowedOrigin is
// the single origin granted cross-origin access; empty disables CORS
// headers entirely.
func New(handler *Handler, allowedOrigin string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(corsMiddleware(allowedOrigin))

	r.POST("/analyze", handler.Analyze)
	r.POST("/danger", handler.Danger)
	r.GET("/health", handler.Health)
	r.GET("/metrics", handler.Metrics)

	return r
}

func corsMiddleware(origin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")
			c.Header("Access-Control-Allow-Credentials", "true")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
