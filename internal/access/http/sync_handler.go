package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clinicapp/accessgate/internal/access/http/dto"
	accessUseCase "github.com/clinicapp/accessgate/internal/access/usecase"
	"github.com/clinicapp/accessgate/internal/httputil"
)

// SyncHandler handles HTTP requests that trigger the claims synchronizer.
type SyncHandler struct {
	syncUseCase accessUseCase.SyncUseCase
	logger      *slog.Logger
}

// NewSyncHandler creates a new sync handler with required dependencies.
func NewSyncHandler(syncUseCase accessUseCase.SyncUseCase, logger *slog.Logger) *SyncHandler {
	return &SyncHandler{
		syncUseCase: syncUseCase,
		logger:      logger,
	}
}

// SyncRolesHandler runs a full synchronization.
// GET /api/admin/sync-roles - Requires the admin role.
// Returns 200 OK with the report. A failed run returns 500 with the failure message; writes
// made before the failure are kept and a rerun is safe.
func (h *SyncHandler) SyncRolesHandler(c *gin.Context) {
	report, err := h.syncUseCase.Sync(c.Request.Context())
	if err != nil {
		h.logger.Error("role synchronization failed", slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, httputil.ErrorResponse{
			Error:   "sync_failed",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, dto.MapSyncReportToResponse(report))
}
