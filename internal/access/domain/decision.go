package domain

import "net/url"

// Redirect targets used by the gate.
const (
	LoginPath = "/login"
	HomePath  = "/"
)

// Outcome is the terminal state of a gate evaluation.
type Outcome string

const (
	// OutcomeExempt means the path bypasses the gate; no token was inspected.
	OutcomeExempt Outcome = "exempt"

	// OutcomeUnauthenticated means the token is missing or could not be decoded.
	OutcomeUnauthenticated Outcome = "unauthenticated"

	// OutcomeForbidden means the caller is authenticated but the role is not allowed.
	OutcomeForbidden Outcome = "forbidden"

	// OutcomeAuthorized means the request may proceed to its handler.
	OutcomeAuthorized Outcome = "authorized"
)

// Decision is the result of evaluating one request against the gate.
type Decision struct {
	Outcome Outcome
	// Claims is set once a token has been decoded.
	Claims *Claims
	// Rule is the matrix entry that decided the request, if any.
	Rule *RouteRule
	// RedirectTo is set for unauthenticated and forbidden outcomes.
	RedirectTo string
}

// Allowed reports whether the request proceeds without a redirect.
func (d Decision) Allowed() bool {
	return d.Outcome == OutcomeExempt || d.Outcome == OutcomeAuthorized
}

// LoginRedirect builds the login URL preserving the requested path as "from".
func LoginRedirect(path string) string {
	return LoginPath + "?" + url.Values{"from": []string{path}}.Encode()
}
