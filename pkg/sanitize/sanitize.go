// Package sanitize converts display names into strings safe for use as file
// and directory names, and resolves collisions among sibling names.
//
// Cleaning is deliberately conservative: casing, spaces, and symbols that are
// legal on common filesystems are preserved so that on-disk names stay
// human-readable. Collision handling is scoped: names are only unique among
// the direct children of one directory, never globally. Each directory level
// owns a fresh [Scope], so identical display names under different parents
// keep their cleaned form.
package sanitize

import (
	"fmt"
	"strings"
	"unicode"
)

// Fallback is substituted when cleaning leaves nothing usable (empty input,
// whitespace only, all dots, or only forbidden characters).
const Fallback = "unnamed"

// forbidden are the characters rejected by common filesystems (NTFS is the
// strictest of the mainstream ones). Control characters are handled
// separately.
const forbidden = `<>:"/\|?*`

// Clean returns a version of name that is safe to use as a file or directory
// name. It strips forbidden characters and control characters, trims
// surrounding whitespace, substitutes [Fallback] when nothing remains, and
// prefixes an underscore when the result would start with a digit so the name
// cannot be mistaken for a numeric token.
//
// Clean is idempotent: Clean(Clean(s)) == Clean(s) for every s. It never
// fails and always returns a non-empty string.
func Clean(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if unicode.IsControl(r) || strings.ContainsRune(forbidden, r) {
			continue
		}
		b.WriteRune(r)
	}

	s := strings.TrimSpace(b.String())
	if s == "" || strings.Trim(s, ".") == "" {
		return Fallback
	}
	if s[0] >= '0' && s[0] <= '9' {
		s = "_" + s
	}
	return s
}

// Scope tracks the on-disk names already assigned among the direct children
// of a single directory. The zero value is not usable; construct with
// [NewScope]. A Scope must not be shared across nesting levels.
type Scope struct {
	taken map[string]struct{}
}

// NewScope returns an empty sibling scope.
func NewScope() *Scope {
	return &Scope{taken: make(map[string]struct{})}
}

// Claim returns candidate if it is unused within the scope, otherwise the
// first unused variant of the form "candidate (N)" for N = 1, 2, and so on.
// The chosen name is registered in the scope before returning.
//
// Collision detection operates on the name as given; file extensions are
// appended by the caller afterwards and do not participate.
func (s *Scope) Claim(candidate string) string {
	name := candidate
	for n := 1; ; n++ {
		if _, ok := s.taken[name]; !ok {
			break
		}
		name = fmt.Sprintf("%s (%d)", candidate, n)
	}
	s.taken[name] = struct{}{}
	return name
}

// Len reports how many names the scope has registered.
func (s *Scope) Len() int {
	return len(s.taken)
}
