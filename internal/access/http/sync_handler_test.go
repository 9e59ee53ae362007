package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/clinicapp/accessgate/internal/access/domain"
	usecaseMocks "github.com/clinicapp/accessgate/internal/access/usecase/mocks"
)

func TestSyncHandler_SyncRolesHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		syncUseCase := &usecaseMocks.MockSyncUseCase{}
		report := &domain.SyncReport{
			Message:    "Synchronized 2 user roles",
			ValidRoles: domain.SyncRoles(),
			Details: []domain.SyncDetail{
				{Identifier: "ana@clinica.co", Role: domain.RoleAdmin},
				{Identifier: "Luis", Role: domain.RoleAll},
			},
		}
		syncUseCase.On("Sync", mock.Anything).Return(report, nil).Once()

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/api/admin/sync-roles", nil)

		NewSyncHandler(syncUseCase, discardLogger()).SyncRolesHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{
			"message": "Synchronized 2 user roles",
			"validRoles": ["admin", "coord", "recepcion", "ps", "medico", "all"],
			"details": [
				{"user": "ana@clinica.co", "role": "admin"},
				{"user": "Luis", "role": "all"}
			]
		}`, w.Body.String())
		syncUseCase.AssertExpectations(t)
	})

	t.Run("Failure surfaces message", func(t *testing.T) {
		syncUseCase := &usecaseMocks.MockSyncUseCase{}
		syncUseCase.On("Sync", mock.Anything).
			Return(nil, errors.New("failed to set role claim for Luis: identity not found")).
			Once()

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/api/admin/sync-roles", nil)

		NewSyncHandler(syncUseCase, discardLogger()).SyncRolesHandler(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{
			"error": "sync_failed",
			"message": "failed to set role claim for Luis: identity not found"
		}`, w.Body.String())
	})
}
