// Package domain defines the role-based access control model of the clinic application:
// roles, identity claims, the ordered route permission matrix, gate decisions and the
// claims synchronization report.
package domain

import (
	"slices"
	"strings"
)

// Role is a normalized authorization role carried in identity claims.
type Role string

const (
	// RoleAdmin is allowed on every protected route regardless of the matrix entry.
	RoleAdmin Role = "admin"

	// RoleCoord is the clinic coordinator.
	RoleCoord Role = "coord"

	// RoleRecepcion is front-desk staff.
	RoleRecepcion Role = "recepcion"

	// RolePS is a health professional (psychology, therapy).
	RolePS Role = "ps"

	// RoleMedico is a physician.
	RoleMedico Role = "medico"

	// RoleEnfermeria is nursing staff. It is accepted by the gate and the matrix but is
	// never written by the claims synchronizer.
	RoleEnfermeria Role = "enfermeria"

	// RoleAll is the lowest-privilege sentinel: authenticated, no special privilege.
	RoleAll Role = "all"
)

var syncRoles = []Role{RoleAdmin, RoleCoord, RoleRecepcion, RolePS, RoleMedico, RoleAll}

var gateRoles = []Role{RoleAdmin, RoleCoord, RoleRecepcion, RolePS, RoleMedico, RoleEnfermeria, RoleAll}

// SyncRoles returns the roles the claims synchronizer may persist.
func SyncRoles() []Role {
	return slices.Clone(syncRoles)
}

// GateRoles returns the roles the authorization gate trusts from a token and that
// route matrix entries may reference.
func GateRoles() []Role {
	return slices.Clone(gateRoles)
}

// NormalizeRole lower-cases and trims raw and coerces anything outside valid to RoleAll.
func NormalizeRole(raw string, valid []Role) Role {
	role := Role(strings.ToLower(strings.TrimSpace(raw)))
	if slices.Contains(valid, role) {
		return role
	}
	return RoleAll
}

// IsValid reports whether r belongs to the gate enumeration.
func (r Role) IsValid() bool {
	return slices.Contains(gateRoles, r)
}

// RoleStrings converts roles to their string form, preserving order.
func RoleStrings(roles []Role) []string {
	out := make([]string, len(roles))
	for i, r := range roles {
		out[i] = string(r)
	}
	return out
}
