// internal/app/system/inputval/inputval.go
//
// Package inputval validates request input. A Result collects every violated
// constraint so that callers can report all problems together instead of only
// the first one encountered.
package inputval

import "strings"

// Violation is one violated field constraint.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Result accumulates violations across all checks on one input payload.
type Result struct {
	violations []Violation
}

// Add records a violated constraint for the given field.
func (r *Result) Add(field, message string) {
	r.violations = append(r.violations, Violation{Field: field, Message: message})
}

// Require adds a violation when the trimmed value is empty.
func (r *Result) Require(field, value, message string) {
	if strings.TrimSpace(value) == "" {
		r.Add(field, message)
	}
}

// HasErrors reports whether any constraint was violated.
func (r *Result) HasErrors() bool {
	return len(r.violations) > 0
}

// Violations returns the collected violations in the order they were added.
func (r *Result) Violations() []Violation {
	return r.violations
}

// First returns the first violation message, or "" when there are none.
func (r *Result) First() string {
	if len(r.violations) == 0 {
		return ""
	}
	return r.violations[0].Message
}

// IsValidEmail reports whether s looks like a plausible email address.
// Single-label domains (user@localhost) are accepted for dev and test
// environments; display-name forms ("Name <a@b>") are rejected.
func IsValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	at := strings.Index(s, "@")
	if at <= 0 || at != strings.LastIndex(s, "@") {
		return false
	}
	local, domain := s[:at], s[at+1:]
	if domain == "" {
		return false
	}
	if strings.ContainsAny(s, " \t<>") {
		return false
	}
	if strings.HasPrefix(local, ".") || strings.HasSuffix(local, ".") || strings.Contains(local, "..") {
		return false
	}
	if strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") || strings.Contains(domain, "..") {
		return false
	}
	return true
}
