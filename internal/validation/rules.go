// Package validation provides jellydator/validation rules shared by the access packages.
package validation

import (
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/clinicapp/accessgate/internal/errors"
)

// WrapValidationError wraps a validation failure as ErrInvalidInput.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NotBlank validates that a string is not empty after trimming whitespace.
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// NoWhitespace rejects any whitespace, leading, trailing or inner. Identity subjects and
// route prefixes never contain it.
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return !strings.ContainsAny(s, " \t\r\n")
	},
	validation.NewError("validation_no_whitespace", "must not contain whitespace"),
)

// RoutePrefix validates an absolute URL path without query or fragment.
var RoutePrefix = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.HasPrefix(s, "/") && !strings.ContainsAny(s, "?#")
	},
	validation.NewError("validation_route_prefix", "must be an absolute path without query or fragment"),
)
