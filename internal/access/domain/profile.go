package domain

// Profile is a user-directory record as stored by administrators. Rol is free text and
// untrusted; nil means the field is absent.
type Profile struct {
	ID          string
	DisplayName string
	Email       string
	Rol         *string
}

// Identifier returns the value shown to operators in sync reports: the email, else the
// display name, else the subject ID.
func (p *Profile) Identifier() string {
	if p.Email != "" {
		return p.Email
	}
	if p.DisplayName != "" {
		return p.DisplayName
	}
	return p.ID
}

// RawRole returns the stored role text, or the sentinel "all" when absent.
func (p *Profile) RawRole() string {
	if p.Rol == nil {
		return string(RoleAll)
	}
	return *p.Rol
}
