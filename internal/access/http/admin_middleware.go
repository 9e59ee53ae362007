package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/clinicapp/accessgate/internal/access/domain"
	"github.com/clinicapp/accessgate/internal/access/service"
	apperrors "github.com/clinicapp/accessgate/internal/errors"
	"github.com/clinicapp/accessgate/internal/httputil"
)

// AdminMiddleware guards the administrative API, which the page gate exempts.
//
// The token is taken from a "Bearer" Authorization header (case-insensitive) or, when the
// header is absent, from the session cookie so an administrator's browser session works too.
// The decoded role must be admin.
//
// Error handling:
//   - Missing, malformed or undecodable token → 401 Unauthorized
//   - Role other than admin → 403 Forbidden
func AdminMiddleware(decoder service.TokenDecoder, cookieName string, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := extractToken(c, cookieName)
		if !ok {
			logger.Debug("admin authentication failed: missing or malformed token")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		payload, err := decoder.Decode(c.Request.Context(), token)
		if err != nil {
			logger.Debug("admin authentication failed", slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		claims := domain.ClaimsFromMap(payload)
		if claims.Role != domain.RoleAdmin {
			logger.Debug("admin authorization failed",
				slog.String("subject", claims.Subject),
				slog.String("role", string(claims.Role)))
			httputil.HandleErrorGin(c, apperrors.ErrForbidden, logger)
			c.Abort()
			return
		}

		c.Request = c.Request.WithContext(WithClaims(c.Request.Context(), &claims))
		c.Next()
	}
}

func extractToken(c *gin.Context, cookieName string) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		token, err := c.Cookie(cookieName)
		return token, err == nil && token != ""
	}

	const bearerPrefix = "bearer "
	if len(authHeader) < len(bearerPrefix) || !strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}

	token := strings.TrimSpace(authHeader[len(bearerPrefix):])
	return token, token != ""
}
