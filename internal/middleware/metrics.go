package middleware

import (
	"strconv"
	"time"

	"github.com/soporte-code/API-PORTALWEB/internal/infra"

	"github.com/gin-gonic/gin"
)

// Metrics records request count and latency per route template.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "sin_ruta"
		}
		infra.HTTPSolicitudes.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		infra.HTTPDuracion.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}
