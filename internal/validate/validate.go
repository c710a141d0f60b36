// Package validate collects field-level constraint violations for a request
// payload before anything touches the database.
package validate

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	emailPattern    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validator accumulates violations; every rule is checked so the response
// carries the full set.
type Validator struct {
	errs []FieldError
}

func New() *Validator {
	return &Validator{}
}

func (v *Validator) fail(field, format string, args ...interface{}) {
	v.errs = append(v.errs, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// Required records a violation when the field is missing from the payload.
func (v *Validator) Required(field string, present bool) {
	if !present {
		v.fail(field, "%s is required", field)
	}
}

// Length checks string length bounds in characters, not bytes, so multi-byte
// text is not penalized. Empty values are skipped so Required owns the
// missing-field message.
func (v *Validator) Length(field, value string, min, max int) {
	if value == "" {
		return
	}
	if n := utf8.RuneCountInString(value); n < min || n > max {
		v.fail(field, "%s must be between %d and %d characters", field, min, max)
	}
}

// Range checks integer bounds.
func (v *Validator) Range(field string, value, min, max int) {
	if value < min || value > max {
		v.fail(field, "%s must be between %d and %d", field, min, max)
	}
}

// OneOf checks enum membership.
func (v *Validator) OneOf(field, value string, allowed ...string) {
	if value == "" {
		return
	}
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	v.fail(field, "%s must be one of: %s", field, strings.Join(allowed, ", "))
}

// Email checks the address shape.
func (v *Validator) Email(field, value string) {
	if value == "" {
		return
	}
	if !emailPattern.MatchString(value) {
		v.fail(field, "%s must be a valid email address", field)
	}
}

// Username allows letters, digits, underscores and hyphens.
func (v *Validator) Username(field, value string) {
	if value == "" {
		return
	}
	if !usernamePattern.MatchString(value) {
		v.fail(field, "%s must be alphanumeric (underscores and hyphens allowed)", field)
	}
}

func (v *Validator) OK() bool {
	return len(v.errs) == 0
}

func (v *Validator) Errors() []FieldError {
	return v.errs
}
