// Package bio contains the rules for member bios.
// This is part of the Functional Core - no I/O, only pure functions.
package bio

import (
	"fmt"
	"unicode/utf8"
)

// MaxLength is the longest bio accepted, in characters.
const MaxLength = 250

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string // Human-readable reason (populated when not allowed)
}

// Error returns the guard result as an error if not allowed, nil otherwise.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// CanSetBio evaluates whether text may be stored as a bio.
// Rule: at most MaxLength characters (not bytes).
func CanSetBio(text string) GuardResult {
	if n := utf8.RuneCountInString(text); n > MaxLength {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("bio is %d characters, the limit is %d", n, MaxLength),
		}
	}
	return GuardResult{Allowed: true}
}

// Render formats a bio for display in a code block.
func Render(text string) string {
	return "```" + text + "```"
}
