package http

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	accessHTTP "github.com/clinicapp/accessgate/internal/access/http"
)

// CustomLoggerMiddleware logs one structured line per request. The subject and role are
// included once the gate has attached claims; the token itself is never logged.
func CustomLoggerMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		attrs := []slog.Attr{
			slog.String("request_id", requestid.Get(c)),
			slog.String("method", c.Request.Method),
			slog.String("path", path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("latency", time.Since(start)),
			slog.String("client_ip", c.ClientIP()),
		}

		if claims, ok := accessHTTP.GetClaims(c.Request.Context()); ok {
			attrs = append(attrs,
				slog.String("subject", claims.Subject),
				slog.String("role", string(claims.Role)),
			)
		}

		if len(c.Errors) > 0 {
			attrs = append(attrs, slog.String("errors", c.Errors.String()))
		}

		logger.LogAttrs(c.Request.Context(), slog.LevelInfo, "http request", attrs...)
	}
}
