package domain

import "strings"

// Exemptions lists path prefixes that bypass the gate entirely. A prefix matches the path
// itself and anything below it on a segment boundary, so "/login" covers "/login" and
// "/login/reset" but not "/loginx".
type Exemptions []string

// DefaultExemptions covers static assets, the API namespace (which carries its own guard),
// the login page, the public patient portal and the health probes.
func DefaultExemptions() Exemptions {
	return Exemptions{
		"/_next",
		"/static",
		"/assets",
		"/favicon.ico",
		"/robots.txt",
		"/api",
		"/login",
		"/portal",
		"/health",
		"/ready",
	}
}

// IsExempt reports whether path matches any exemption.
func (e Exemptions) IsExempt(path string) bool {
	for _, prefix := range e {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}
