// internal/app/system/normalize/normalize.go

// Package normalize holds the canonical forms for user-entered
// identity fields. Every write path must normalize before persisting
// so that uniqueness checks and lookups agree.
package normalize

import "strings"

// Email returns the canonical form of an email address: trimmed and
// lowercased. Uniqueness on the users collection is case-insensitive
// because every write goes through this.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace but preserves case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Role returns the canonical form of a role tag: trimmed and
// lowercased.
func Role(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Title trims a product title used as a lookup key. Titles keep their
// case; product title matching is exact.
func Title(s string) string {
	return strings.TrimSpace(s)
}
