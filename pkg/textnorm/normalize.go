// Package textnorm canonicalizes extracted document text so that formatting
// differences do not affect hashing or vectorization.
package textnorm

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalize canonicalizes raw text for hashing and vectorization:
//  1. Unicode NFKD decomposition, so visually identical text with different
//     byte encodings canonicalizes identically
//  2. lowercasing
//  3. every whitespace run (spaces, tabs, newlines) collapses to one space,
//     with leading/trailing whitespace trimmed
//
// Normalize is idempotent and returns "" for empty input.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}

	decomposed := norm.NFKD.String(raw)
	lowered := strings.ToLower(decomposed)

	// strings.Fields splits on any run of Unicode whitespace
	return strings.Join(strings.Fields(lowered), " ")
}
