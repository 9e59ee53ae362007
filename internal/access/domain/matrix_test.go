package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/clinicapp/accessgate/internal/errors"
)

func TestRouteMatrix_Match(t *testing.T) {
	m := DefaultRouteMatrix()

	tests := []struct {
		name     string
		path     string
		prefix   string
		expected bool
	}{
		{name: "Exact prefix", path: "/configuracion", prefix: "/configuracion", expected: true},
		{name: "Nested path", path: "/pacientes/123/editar", prefix: "/pacientes", expected: true},
		{name: "Plain string prefix", path: "/reportes-mensuales", prefix: "/reportes", expected: true},
		{name: "Home is unlisted", path: "/", expected: false},
		{name: "Unlisted page", path: "/perfil", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, ok := m.Match(tt.path)
			assert.Equal(t, tt.expected, ok)
			assert.Equal(t, tt.prefix, rule.Prefix)
		})
	}
}

func TestRouteMatrix_FirstMatchWins(t *testing.T) {
	m, err := NewRouteMatrix([]RouteRule{
		{Prefix: "/finanzas/caja", Roles: []Role{RoleRecepcion}},
		{Prefix: "/finanzas", Roles: []Role{RoleCoord}},
	})
	require.NoError(t, err)

	rule, ok := m.Match("/finanzas/caja/hoy")
	require.True(t, ok)
	assert.Equal(t, "/finanzas/caja", rule.Prefix)
	assert.True(t, rule.Allows(RoleRecepcion))
	assert.False(t, rule.Allows(RoleCoord))

	rule, ok = m.Match("/finanzas/facturas")
	require.True(t, ok)
	assert.Equal(t, "/finanzas", rule.Prefix)
}

func TestNewRouteMatrix_RejectsShadowedRule(t *testing.T) {
	_, err := NewRouteMatrix([]RouteRule{
		{Prefix: "/finanzas", Roles: []Role{RoleCoord}},
		{Prefix: "/finanzas/caja", Roles: []Role{RoleRecepcion}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidMatrix)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.Contains(t, err.Error(), "shadowed")
}

func TestNewRouteMatrix_Validation(t *testing.T) {
	tests := []struct {
		name  string
		rules []RouteRule
	}{
		{name: "Empty prefix", rules: []RouteRule{{Prefix: "", Roles: []Role{RoleAdmin}}}},
		{name: "Relative prefix", rules: []RouteRule{{Prefix: "pacientes", Roles: []Role{RoleAdmin}}}},
		{name: "Query in prefix", rules: []RouteRule{{Prefix: "/pacientes?x=1", Roles: []Role{RoleAdmin}}}},
		{name: "No roles", rules: []RouteRule{{Prefix: "/pacientes"}}},
		{name: "Unknown role", rules: []RouteRule{{Prefix: "/pacientes", Roles: []Role{"auditor"}}}},
		{name: "Duplicate prefix", rules: []RouteRule{
			{Prefix: "/agenda", Roles: []Role{RoleCoord}},
			{Prefix: "/agenda", Roles: []Role{RoleMedico}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRouteMatrix(tt.rules)
			assert.ErrorIs(t, err, ErrInvalidMatrix)
		})
	}
}

func TestRouteMatrix_IsImmutable(t *testing.T) {
	rules := []RouteRule{{Prefix: "/agenda", Roles: []Role{RoleCoord}}}
	m, err := NewRouteMatrix(rules)
	require.NoError(t, err)

	rules[0].Prefix = "/otro"
	rules[0].Roles[0] = RoleAll
	got := m.Rules()
	got[0].Roles[0] = RoleAll

	rule, ok := m.Match("/agenda")
	require.True(t, ok)
	assert.Equal(t, []Role{RoleCoord}, rule.Roles)
}

func TestRouteRule_Allows(t *testing.T) {
	rule := RouteRule{Prefix: "/configuracion", Roles: []Role{RoleCoord}}

	assert.True(t, rule.Allows(RoleAdmin), "admin is a universal override")
	assert.True(t, rule.Allows(RoleCoord))
	assert.False(t, rule.Allows(RoleAll))
	assert.False(t, rule.Allows(RoleMedico))
}

func TestDefaultRouteMatrix_AllHasNoProtectedAccess(t *testing.T) {
	for _, rule := range DefaultRouteMatrix().Rules() {
		assert.False(t, rule.Allows(RoleAll), rule.Prefix)
		assert.True(t, rule.Allows(RoleAdmin), rule.Prefix)
	}
}

func TestParseRouteMatrix(t *testing.T) {
	t.Run("Valid document keeps order", func(t *testing.T) {
		doc := `
routes:
  - prefix: /finanzas/caja
    roles: [Recepcion, coord]
  - prefix: /finanzas
    roles: [" coord "]
`
		m, err := ParseRouteMatrix(strings.NewReader(doc))
		require.NoError(t, err)

		rules := m.Rules()
		require.Len(t, rules, 2)
		assert.Equal(t, "/finanzas/caja", rules[0].Prefix)
		assert.Equal(t, []Role{RoleRecepcion, RoleCoord}, rules[0].Roles)
		assert.Equal(t, []Role{RoleCoord}, rules[1].Roles)
	})

	t.Run("Unknown role is rejected", func(t *testing.T) {
		doc := "routes:\n  - prefix: /agenda\n    roles: [auditor]\n"
		_, err := ParseRouteMatrix(strings.NewReader(doc))
		assert.ErrorIs(t, err, ErrInvalidMatrix)
	})

	t.Run("Unknown field is rejected", func(t *testing.T) {
		doc := "routes:\n  - path: /agenda\n    roles: [coord]\n"
		_, err := ParseRouteMatrix(strings.NewReader(doc))
		assert.ErrorIs(t, err, ErrInvalidMatrix)
	})

	t.Run("Empty document is rejected", func(t *testing.T) {
		_, err := ParseRouteMatrix(strings.NewReader("routes: []\n"))
		assert.ErrorIs(t, err, ErrInvalidMatrix)
	})
}

func TestLoadRouteMatrix(t *testing.T) {
	t.Run("Empty path returns built-in matrix", func(t *testing.T) {
		m, err := LoadRouteMatrix("")
		require.NoError(t, err)
		assert.Equal(t, DefaultRouteRules(), m.Rules())
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := LoadRouteMatrix(t.TempDir() + "/missing.yaml")
		assert.Error(t, err)
	})
}

func TestWriteRouteMatrix_ParsesBack(t *testing.T) {
	var buf strings.Builder
	require.NoError(t, WriteRouteMatrix(&buf, DefaultRouteMatrix()))

	assert.Contains(t, buf.String(), "prefix: /configuracion")
	assert.Contains(t, buf.String(), "roles: [admin, coord]")

	parsed, err := ParseRouteMatrix(strings.NewReader(buf.String()))
	require.NoError(t, err)
	assert.Equal(t, DefaultRouteRules(), parsed.Rules())
}
