// Package validation collects request-field violations into the
// field-errors map returned on HTTP 422. All rules for a request are
// evaluated before responding, so the caller sees every violated field at
// once rather than only the first.
package validation

import (
	"fmt"
	"net/mail"
	"strings"
)

// Errors maps a field name to the list of messages for that field.
// It marshals directly into the 422 response body.
type Errors map[string][]string

func New() Errors { return Errors{} }

// Add appends a message for a field.
func (e Errors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

// Any reports whether at least one violation was recorded.
func (e Errors) Any() bool { return len(e) > 0 }

// Required records a violation when value is empty after trimming.
// It returns true when the value is present so callers can chain
// format rules only for fields that exist.
func (e Errors) Required(field, value string) bool {
	if strings.TrimSpace(value) == "" {
		e.Add(field, fmt.Sprintf("The %s field is required.", field))
		return false
	}
	return true
}

// Email records a violation when value is not a syntactically valid
// address. ParseAddress accepts "Name <a@b>" forms; requiring the parsed
// address to round-trip to the input rejects those.
func (e Errors) Email(field, value string) {
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		e.Add(field, fmt.Sprintf("The %s must be a valid email address.", field))
	}
}

// MinLen records a violation when value is shorter than n characters.
func (e Errors) MinLen(field, value string, n int) {
	if len(value) < n {
		e.Add(field, fmt.Sprintf("The %s must be at least %d characters.", field, n))
	}
}

// Digits records a violation unless value is exactly n ASCII digits.
func (e Errors) Digits(field, value string, n int) {
	ok := len(value) == n
	if ok {
		for _, r := range value {
			if r < '0' || r > '9' {
				ok = false
				break
			}
		}
	}
	if !ok {
		e.Add(field, fmt.Sprintf("The %s must be %d digits.", field, n))
	}
}

// OneOf records a violation unless value equals one of the allowed
// literals.
func (e Errors) OneOf(field, value string, allowed ...string) {
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	e.Add(field, fmt.Sprintf("The selected %s is invalid.", field))
}

// Taken records a uniqueness violation for a field.
func (e Errors) Taken(field string) {
	e.Add(field, fmt.Sprintf("The %s has already been taken.", field))
}
