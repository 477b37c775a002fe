// Package normalize prepares free-text transaction descriptions for
// keyword matching.
package normalize

import (
	"strings"
	"unicode"
)

// Clean lowercases s and collapses every maximal run of non-alphanumeric
// characters (underscore included) to a single space, trimming the ends.
// Idempotent: Clean(Clean(s)) == Clean(s).
func Clean(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	pendingSpace := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(r)
			continue
		}
		pendingSpace = true
	}
	return b.String()
}
