package middleware

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

// CORS builds the cross-origin policy. Allowed origins come from
// CORS_ALLOWED_ORIGINS (comma-separated); empty means allow all, which is
// acceptable for a dashboard-facing internal service.
func CORS() gin.HandlerFunc {
	opts := cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}
	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		opts.AllowedOrigins = strings.Split(origins, ",")
	} else {
		opts.AllowedOrigins = []string{"*"}
	}

	crs := cors.New(opts)
	return func(c *gin.Context) {
		crs.HandlerFunc(c.Writer, c.Request)
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
