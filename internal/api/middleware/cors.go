package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

// CORS wraps the rs/cors handler for gin. An empty origin list allows all
// origins, which is fine for a local planning tool.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	opts := cors.Options{
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}
	if len(allowedOrigins) > 0 {
		opts.AllowedOrigins = allowedOrigins
	} else {
		opts.AllowedOrigins = []string{"*"}
	}
	h := cors.New(opts)
	return func(c *gin.Context) {
		h.HandlerFunc(c.Writer, c.Request)
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
