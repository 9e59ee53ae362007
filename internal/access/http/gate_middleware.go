package http

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/clinicapp/accessgate/internal/access/domain"
	accessUseCase "github.com/clinicapp/accessgate/internal/access/usecase"
)

// GateMiddleware runs the authorization gate before every page request.
//
// The session token is read from the cookieName cookie. Unauthenticated requests are
// redirected to the login page with the requested path preserved in "from"; authenticated
// callers without the required role are redirected to the home page. Both redirects use
// 307 so the original method is kept. Allowed requests continue with the decoded claims
// stored in the request context (see GetClaims).
//
// Paths with dot segments or repeated slashes are first redirected to their canonical form,
// so routing, the gate and the upstream only ever see the path that was authorized.
//
// Usage:
//
//	router.Use(GateMiddleware(gateUseCase, "token", logger))
func GateMiddleware(gate accessUseCase.GateUseCase, cookieName string, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if canonical := domain.CanonicalPath(path); canonical != path {
			target := url.URL{Path: canonical, RawQuery: c.Request.URL.RawQuery}
			c.Redirect(http.StatusTemporaryRedirect, target.String())
			c.Abort()
			return
		}

		// A missing cookie yields an empty token.
		token, _ := c.Cookie(cookieName)

		decision := gate.Evaluate(c.Request.Context(), path, token)

		if !decision.Allowed() {
			logger.Debug("request redirected by gate",
				slog.String("path", path),
				slog.String("outcome", string(decision.Outcome)),
				slog.String("location", decision.RedirectTo))
			c.Redirect(http.StatusTemporaryRedirect, decision.RedirectTo)
			c.Abort()
			return
		}

		if decision.Claims != nil {
			c.Request = c.Request.WithContext(WithClaims(c.Request.Context(), decision.Claims))
		}

		c.Next()
	}
}
