package domain

import (
	"fmt"
	"slices"
	"strings"

	validation "github.com/jellydator/validation"

	appvalidation "github.com/clinicapp/accessgate/internal/validation"
)

// RouteRule maps a URL path prefix to the roles allowed under it.
type RouteRule struct {
	Prefix string `yaml:"prefix" json:"prefix"`
	Roles  []Role `yaml:"roles"  json:"roles"`
}

// Allows reports whether role may access paths covered by the rule. RoleAdmin is
// always allowed and is checked before the role set.
func (r RouteRule) Allows(role Role) bool {
	if role == RoleAdmin {
		return true
	}
	return slices.Contains(r.Roles, role)
}

// Validate checks the rule against the gate enumeration.
func (r RouteRule) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Prefix,
			validation.Required.Error("prefix is required"),
			appvalidation.RoutePrefix,
			appvalidation.NoWhitespace,
		),
		validation.Field(&r.Roles,
			validation.Required.Error("at least one role is required"),
			validation.Each(validation.By(knownRole)),
		),
	)
}

func knownRole(value any) error {
	role, _ := value.(Role)
	if !role.IsValid() {
		return validation.NewError("validation_route_role", fmt.Sprintf("unknown role %q", role))
	}
	return nil
}

// RouteMatrix is the ordered route permission table. Rules are evaluated in declaration
// order and the first rule whose prefix is a string prefix of the request path wins, so
// more specific prefixes must be declared before broader ones. A matrix is immutable
// once built.
type RouteMatrix struct {
	rules []RouteRule
}

// NewRouteMatrix validates rules and builds a matrix preserving their order. A rule that
// can never match because an earlier prefix already covers it is rejected.
func NewRouteMatrix(rules []RouteRule) (*RouteMatrix, error) {
	copied := make([]RouteRule, len(rules))
	for i, rule := range rules {
		if err := rule.Validate(); err != nil {
			return nil, fmt.Errorf("%w: routes[%d] %s: %v", ErrInvalidMatrix, i, rule.Prefix, err)
		}
		for j := 0; j < i; j++ {
			if strings.HasPrefix(rule.Prefix, copied[j].Prefix) {
				return nil, fmt.Errorf(
					"%w: routes[%d] %s is shadowed by routes[%d] %s",
					ErrInvalidMatrix, i, rule.Prefix, j, copied[j].Prefix,
				)
			}
		}
		copied[i] = RouteRule{Prefix: rule.Prefix, Roles: slices.Clone(rule.Roles)}
	}
	return &RouteMatrix{rules: copied}, nil
}

// Match returns the first rule whose prefix is a prefix of path.
func (m *RouteMatrix) Match(path string) (RouteRule, bool) {
	for _, rule := range m.rules {
		if strings.HasPrefix(path, rule.Prefix) {
			return rule, true
		}
	}
	return RouteRule{}, false
}

// Rules returns a copy of the rules in evaluation order.
func (m *RouteMatrix) Rules() []RouteRule {
	out := make([]RouteRule, len(m.rules))
	for i, rule := range m.rules {
		out[i] = RouteRule{Prefix: rule.Prefix, Roles: slices.Clone(rule.Roles)}
	}
	return out
}

// DefaultRouteRules is the clinic's built-in matrix, in evaluation order.
func DefaultRouteRules() []RouteRule {
	return []RouteRule{
		{Prefix: "/configuracion", Roles: []Role{RoleAdmin}},
		{Prefix: "/finanzas", Roles: []Role{RoleAdmin, RoleCoord}},
		{Prefix: "/reportes", Roles: []Role{RoleAdmin, RoleCoord}},
		{Prefix: "/inventario", Roles: []Role{RoleAdmin, RoleCoord, RoleEnfermeria}},
		{Prefix: "/historias", Roles: []Role{RoleAdmin, RoleMedico, RolePS, RoleEnfermeria}},
		{
			Prefix: "/pacientes",
			Roles:  []Role{RoleAdmin, RoleCoord, RoleRecepcion, RolePS, RoleMedico, RoleEnfermeria},
		},
		{
			Prefix: "/agenda",
			Roles:  []Role{RoleAdmin, RoleCoord, RoleRecepcion, RolePS, RoleMedico, RoleEnfermeria},
		},
	}
}

// DefaultRouteMatrix builds the matrix from DefaultRouteRules.
func DefaultRouteMatrix() *RouteMatrix {
	m, err := NewRouteMatrix(DefaultRouteRules())
	if err != nil {
		panic(err)
	}
	return m
}
