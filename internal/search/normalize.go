// Package search canonicalises skill names so that spelling variants of the
// same skill compare equal.
package search

import (
	"strings"
	"unicode"
)

// NormalizeName lower-cases s, collapses whitespace and drops punctuation
// other than '+' and '#', which are significant in names like C++ and C#.
func NormalizeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	s = strings.ToLower(s)

	b := strings.Builder{}
	b.Grow(len(s))
	lastWasSpace := false

	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r) || r == '+' || r == '#':
			b.WriteRune(r)
			lastWasSpace = false
		case unicode.IsSpace(r) || r == '-' || r == '_' || r == '/':
			if b.Len() == 0 || lastWasSpace {
				continue
			}
			b.WriteByte(' ')
			lastWasSpace = true
		}
	}

	return strings.TrimSpace(b.String())
}

// Canonical maps a name to its alias root, e.g. "Golang" and "go" both
// become "go".
func Canonical(s string) string {
	n := NormalizeName(s)
	if root, ok := aliasRoot[n]; ok {
		return root
	}
	if root, ok := aliasRoot[strings.ReplaceAll(n, " ", "")]; ok {
		return root
	}
	return n
}

// Index answers membership by canonical name.
type Index map[string]struct{}

func NewIndex(names []string) Index {
	idx := make(Index, len(names))
	for _, n := range names {
		if c := Canonical(n); c != "" {
			idx[c] = struct{}{}
		}
	}
	return idx
}

func (idx Index) Contains(name string) bool {
	_, ok := idx[Canonical(name)]
	return ok
}
