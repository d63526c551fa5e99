// internal/app/system/normalize/normalize.go
//
// Package normalize provides input normalization helpers applied to request
// values before validation and storage. Each helper is a pure function.
package normalize

import "strings"

// Email trims surrounding whitespace and lowercases an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace; case is preserved.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Text trims surrounding whitespace from free-form text.
func Text(s string) string {
	return strings.TrimSpace(s)
}

// Phone trims whitespace and removes interior spaces from a contact number.
func Phone(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), " ", "")
}
