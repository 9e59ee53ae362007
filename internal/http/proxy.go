package http

import (
	"fmt"
	"log/slog"
	"net/http"
	stdhttputil "net/http/httputil"
	"net/url"

	accessHTTP "github.com/clinicapp/accessgate/internal/access/http"
	"github.com/clinicapp/accessgate/internal/httputil"
)

// Identity headers set on requests forwarded upstream. Client-supplied values are dropped.
const (
	HeaderAuthSubject = "X-Auth-Subject"
	HeaderAuthRole    = "X-Auth-Role"
)

// NewUpstreamProxy returns a reverse proxy to the clinic web application at rawURL. Forwarded
// requests carry the caller's subject and role when the gate attached claims.
func NewUpstreamProxy(rawURL string, logger *slog.Logger) (http.Handler, error) {
	target, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid upstream url: %w", err)
	}
	if target.Scheme == "" || target.Host == "" {
		return nil, fmt.Errorf("invalid upstream url %q: scheme and host are required", rawURL)
	}

	return &stdhttputil.ReverseProxy{
		Rewrite: func(r *stdhttputil.ProxyRequest) {
			r.SetURL(target)
			r.SetXForwarded()
			r.Out.Host = r.In.Host

			r.Out.Header.Del(HeaderAuthSubject)
			r.Out.Header.Del(HeaderAuthRole)
			if claims, ok := accessHTTP.GetClaims(r.In.Context()); ok {
				r.Out.Header.Set(HeaderAuthSubject, claims.Subject)
				r.Out.Header.Set(HeaderAuthRole, string(claims.Role))
			}
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			logger.Error("upstream request failed",
				slog.String("path", r.URL.Path),
				slog.Any("error", err))
			httputil.MakeJSONResponse(w, http.StatusBadGateway, httputil.ErrorResponse{
				Error:   "bad_gateway",
				Message: "The application is unavailable",
			})
		},
	}, nil
}
