package httputil

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/clinicapp/accessgate/internal/errors"
)

func TestMakeJSONResponse(t *testing.T) {
	tests := []struct {
		name         string
		body         any
		statusCode   int
		expectedBody string
	}{
		{
			name:         "success response",
			body:         map[string]string{"status": "ok"},
			statusCode:   http.StatusOK,
			expectedBody: `{"status":"ok"}`,
		},
		{
			name:         "error response",
			body:         map[string]string{"error": "something went wrong"},
			statusCode:   http.StatusInternalServerError,
			expectedBody: `{"error":"something went wrong"}`,
		},
		{
			name: "complex object",
			body: map[string]any{
				"id":   1,
				"name": "Test",
				"data": map[string]string{"key": "value"},
			},
			statusCode:   http.StatusOK,
			expectedBody: `{"data":{"key":"value"},"id":1,"name":"Test"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			MakeJSONResponse(w, tt.statusCode, tt.body)

			assert.Equal(t, tt.statusCode, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestHandleErrorGin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedError  string
	}{
		{"not found", apperrors.Wrap(apperrors.ErrNotFound, "identity not found"), http.StatusNotFound, "not_found"},
		{"conflict", apperrors.ErrConflict, http.StatusConflict, "conflict"},
		{"invalid input", apperrors.Wrap(apperrors.ErrInvalidInput, "invalid route matrix"), http.StatusUnprocessableEntity, "invalid_input"},
		{"unauthorized", apperrors.Wrap(apperrors.ErrUnauthorized, "invalid session token"), http.StatusUnauthorized, "unauthorized"},
		{"forbidden", apperrors.ErrForbidden, http.StatusForbidden, "forbidden"},
		{"unavailable", apperrors.Wrap(apperrors.ErrUnavailable, "claims store unavailable"), http.StatusServiceUnavailable, "unavailable"},
		{"unknown", errors.New("connection reset"), http.StatusInternalServerError, "internal_error"},
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			HandleErrorGin(c, tt.err, logger)

			assert.Equal(t, tt.expectedStatus, w.Code)
			var response ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, tt.expectedError, response.Error)
		})
	}
}

func TestHandleErrorGin_InternalErrorHidesDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	HandleErrorGin(c, errors.New("pq: password authentication failed"), nil)

	assert.NotContains(t, w.Body.String(), "password")
}

func TestHandleErrorGin_NilError(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	HandleErrorGin(c, nil, nil)

	assert.Empty(t, w.Body.String())
}
