package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExemptions_IsExempt(t *testing.T) {
	exemptions := DefaultExemptions()

	tests := []struct {
		path     string
		expected bool
	}{
		{path: "/_next/static/chunks/main.js", expected: true},
		{path: "/favicon.ico", expected: true},
		{path: "/api", expected: true},
		{path: "/api/admin/sync-roles", expected: true},
		{path: "/login", expected: true},
		{path: "/login/recuperar", expected: true},
		{path: "/portal/citas/abc", expected: true},
		{path: "/health", expected: true},
		{path: "/loginx", expected: false},
		{path: "/apis", expected: false},
		{path: "/pacientes", expected: false},
		{path: "/", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, exemptions.IsExempt(tt.path))
		})
	}
}

func TestLoginRedirect(t *testing.T) {
	assert.Equal(t, "/login?from=%2Freportes", LoginRedirect("/reportes"))
	assert.Equal(t, "/login?from=%2Fpacientes%2F12", LoginRedirect("/pacientes/12"))
}

func TestDecision_Allowed(t *testing.T) {
	assert.True(t, Decision{Outcome: OutcomeExempt}.Allowed())
	assert.True(t, Decision{Outcome: OutcomeAuthorized}.Allowed())
	assert.False(t, Decision{Outcome: OutcomeUnauthenticated}.Allowed())
	assert.False(t, Decision{Outcome: OutcomeForbidden}.Allowed())
}

func TestProfile_Identifier(t *testing.T) {
	assert.Equal(t, "ana@clinica.co", (&Profile{ID: "u1", DisplayName: "Ana", Email: "ana@clinica.co"}).Identifier())
	assert.Equal(t, "Ana", (&Profile{ID: "u1", DisplayName: "Ana"}).Identifier())
	assert.Equal(t, "u1", (&Profile{ID: "u1"}).Identifier())
}

func TestProfile_RawRole(t *testing.T) {
	rol := "Coord"
	assert.Equal(t, "Coord", (&Profile{Rol: &rol}).RawRole())
	assert.Equal(t, "all", (&Profile{}).RawRole())
}
