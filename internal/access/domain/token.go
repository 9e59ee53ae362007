package domain

import "time"

// IssuedToken is a development session token minted from the stored role claim.
type IssuedToken struct {
	Token     string
	Subject   string
	Role      Role
	ExpiresAt time.Time
}
