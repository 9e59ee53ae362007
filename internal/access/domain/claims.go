package domain

// Claims are the identity attributes the gate reads from a decoded session token.
// Issuance metadata (iat, exp) belongs to the identity provider and is only checked
// by verifying decoders.
type Claims struct {
	Subject string
	Role    Role
}

// ClaimsFromMap extracts Claims from a decoded token payload. A missing or non-string
// "role" yields RoleAll; any other value is normalized against the gate enumeration.
func ClaimsFromMap(payload map[string]any) Claims {
	subject, _ := payload["sub"].(string)

	raw, ok := payload["role"].(string)
	if !ok {
		raw = string(RoleAll)
	}

	return Claims{
		Subject: subject,
		Role:    NormalizeRole(raw, gateRoles),
	}
}
