package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/clinicapp/accessgate/internal/access/domain"
)

// maxErrorBody bounds how much of an error response is kept in the returned error.
const maxErrorBody = 512

// HTTPClaimsStore writes role claims through the identity provider's admin API.
type HTTPClaimsStore struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
}

// NewHTTPClaimsStore creates a claims store for the admin API at baseURL. serviceKey is sent as
// bearer token and must carry the privilege to modify claims.
func NewHTTPClaimsStore(baseURL, serviceKey string, timeout time.Duration) *HTTPClaimsStore {
	return &HTTPClaimsStore{
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceKey: serviceKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type setClaimsRequest struct {
	Role string `json:"role"`
}

// SetRoleClaim replaces the role claim of subjectID with PUT /admin/users/{id}/claims.
func (h *HTTPClaimsStore) SetRoleClaim(ctx context.Context, subjectID string, role domain.Role) error {
	endpoint := fmt.Sprintf("%s/admin/users/%s/claims", h.baseURL, url.PathEscape(subjectID))

	payload, err := json.Marshal(setClaimsRequest{Role: string(role)})
	if err != nil {
		return fmt.Errorf("failed to marshal claims request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create claims request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+h.serviceKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrClaimsStoreUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return domain.ErrIdentityNotFound
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf(
			"%w: set claims failed with status %d: %s",
			domain.ErrClaimsStoreUnavailable,
			resp.StatusCode,
			strings.TrimSpace(string(body)),
		)
	}
}
