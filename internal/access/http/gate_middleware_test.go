package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/clinicapp/accessgate/internal/access/domain"
	usecaseMocks "github.com/clinicapp/accessgate/internal/access/usecase/mocks"
)

func newGateRouter(gate *usecaseMocks.MockGateUseCase) *gin.Engine {
	router := gin.New()
	router.Use(GateMiddleware(gate, "token", discardLogger()))
	router.NoRoute(func(c *gin.Context) {
		role := "none"
		if claims, ok := GetClaims(c.Request.Context()); ok {
			role = string(claims.Role)
		}
		c.JSON(http.StatusOK, gin.H{"role": role})
	})
	return router
}

func TestGateMiddleware(t *testing.T) {
	coord := &domain.Claims{Subject: "u1", Role: domain.RoleCoord}

	tests := []struct {
		name             string
		path             string
		cookie           string
		decision         domain.Decision
		expectedStatus   int
		expectedLocation string
		expectedBody     string
	}{
		{
			name:           "Authorized request continues with claims",
			path:           "/reportes",
			cookie:         "t-coord",
			decision:       domain.Decision{Outcome: domain.OutcomeAuthorized, Claims: coord},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"role":"coord"}`,
		},
		{
			name:             "Missing cookie redirects to login",
			path:             "/reportes",
			decision:         domain.Decision{Outcome: domain.OutcomeUnauthenticated, RedirectTo: "/login?from=%2Freportes"},
			expectedStatus:   http.StatusTemporaryRedirect,
			expectedLocation: "/login?from=%2Freportes",
		},
		{
			name:             "Forbidden role redirects home",
			path:             "/finanzas",
			cookie:           "t-recepcion",
			decision:         domain.Decision{Outcome: domain.OutcomeForbidden, RedirectTo: "/"},
			expectedStatus:   http.StatusTemporaryRedirect,
			expectedLocation: "/",
		},
		{
			name:           "Exempt path continues without claims",
			path:           "/login",
			cookie:         "whatever",
			decision:       domain.Decision{Outcome: domain.OutcomeExempt},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"role":"none"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gate := &usecaseMocks.MockGateUseCase{}
			gate.On("Evaluate", mock.Anything, tt.path, tt.cookie).Return(tt.decision).Once()

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "token", Value: tt.cookie})
			}
			newGateRouter(gate).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedLocation, w.Header().Get("Location"))
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, w.Body.String())
			}
			gate.AssertExpectations(t)
		})
	}
}

func TestGateMiddleware_IgnoresOtherCookies(t *testing.T) {
	gate := &usecaseMocks.MockGateUseCase{}
	gate.On("Evaluate", mock.Anything, "/agenda", "").
		Return(domain.Decision{Outcome: domain.OutcomeUnauthenticated, RedirectTo: "/login?from=%2Fagenda"}).
		Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/agenda", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: "not-the-token"})
	newGateRouter(gate).ServeHTTP(w, req)

	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
	assert.Equal(t, "/login?from=%2Fagenda", w.Header().Get("Location"))
	gate.AssertExpectations(t)
}

func TestGateMiddleware_RedirectsToCanonicalPath(t *testing.T) {
	tests := []struct {
		name             string
		target           string
		expectedLocation string
	}{
		{"Parent segment out of the API namespace", "/api/../configuracion", "/configuracion"},
		{"Parent segment out of the login page", "/login/../finanzas", "/finanzas"},
		{"Encoded parent segment", "/api/%2e%2e/configuracion", "/configuracion"},
		{"Leading double slash", "//configuracion", "/configuracion"},
		{"Query string is kept", "/x/../reportes?mes=3", "/reportes?mes=3"},
		{"Trailing slash is kept", "/reportes//", "/reportes/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gate := &usecaseMocks.MockGateUseCase{}

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			req.AddCookie(&http.Cookie{Name: "token", Value: "t-all"})
			newGateRouter(gate).ServeHTTP(w, req)

			assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
			assert.Equal(t, tt.expectedLocation, w.Header().Get("Location"))
			gate.AssertNotCalled(t, "Evaluate", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}
