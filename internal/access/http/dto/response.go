// Package dto provides data transfer objects for the access HTTP API.
package dto

import (
	"github.com/clinicapp/accessgate/internal/access/domain"
)

// SyncDetailResponse is one synchronized user.
type SyncDetailResponse struct {
	User string `json:"user"`
	Role string `json:"role"`
}

// SyncRolesResponse is the report returned by the sync endpoint.
type SyncRolesResponse struct {
	Message    string               `json:"message"`
	ValidRoles []string             `json:"validRoles"`
	Details    []SyncDetailResponse `json:"details"`
}

// MapSyncReportToResponse converts a domain sync report to an API response.
func MapSyncReportToResponse(report *domain.SyncReport) SyncRolesResponse {
	details := make([]SyncDetailResponse, 0, len(report.Details))
	for _, detail := range report.Details {
		details = append(details, SyncDetailResponse{
			User: detail.Identifier,
			Role: string(detail.Role),
		})
	}

	return SyncRolesResponse{
		Message:    report.Message,
		ValidRoles: domain.RoleStrings(report.ValidRoles),
		Details:    details,
	}
}
