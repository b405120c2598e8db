// Package validation collects field-level input errors.
package validation

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is a list of field errors. A non-empty list is itself an error.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *Errors) Add(field, message string) {
	*e = append(*e, FieldError{Field: field, Message: message})
}

// Err returns nil when nothing was recorded.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

func (e *Errors) MinLength(field, value string, n int) {
	if len([]rune(strings.TrimSpace(value))) < n {
		e.Add(field, fmt.Sprintf("must be at least %d characters", n))
	}
}

func (e *Errors) Email(field, value string) {
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != strings.TrimSpace(value) {
		e.Add(field, "must be a valid email address")
	}
}

func (e *Errors) OneOf(field, value string, allowed ...string) {
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	e.Add(field, "must be one of "+strings.Join(allowed, ", "))
}

func (e *Errors) NonNegative(field string, value float64) {
	if value < 0 {
		e.Add(field, "must not be negative")
	}
}

func (e *Errors) Max(field string, value, limit float64) {
	if value > limit {
		e.Add(field, fmt.Sprintf("must be at most %.2f", limit))
	}
}

// MaxBytes bounds the encoded size of value, not its character count.
func (e *Errors) MaxBytes(field, value string, n int) {
	if len(value) > n {
		e.Add(field, fmt.Sprintf("must be at most %d bytes", n))
	}
}

// Date parses a YYYY-MM-DD value, recording an error on failure.
func (e *Errors) Date(field, value string) time.Time {
	t, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		e.Add(field, "must be a date in YYYY-MM-DD format")
		return time.Time{}
	}
	return t
}

// NormalizeEmail trims and lower-cases an address for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
