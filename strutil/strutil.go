// Package strutil provides small text helpers for splitting fields on
// multiple delimiters and joining heterogeneous values for output.
package strutil

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
)

// patterns caches compiled delimiter patterns by delimiter set.
var patterns sync.Map // string -> *regexp.Regexp

// SplitAny splits s at any single rune in delimiters, absorbing any
// whitespace that follows a matched delimiter. This handles input
// where the separators (and the spacing around them) are not
// consistent:
//
//	strutil.SplitAny("a;b, c,d,      e", ",;")
//	// ["a", "b", "c", "d", "e"]
//
// Like regexp splitting in general, a leading delimiter produces a
// leading empty field; use Fields to drop empties. An empty delimiter
// set performs no splitting and returns s as the only field.
func SplitAny(s, delimiters string) []string {
	if delimiters == "" {
		return []string{s}
	}
	return delimiterPattern(delimiters).Split(s, -1)
}

// Fields splits s on commas, semicolons, and whitespace runs, with
// empty fields removed. This is the forgiving list syntax accepted by
// the CLI:
//
//	strutil.Fields("x, y; z") // ["x", "y", "z"]
func Fields(s string) []string {
	parts := delimiterPattern(",; \t\n\r").Split(s, -1)
	fields := parts[:0]
	for _, p := range parts {
		if p != "" {
			fields = append(fields, p)
		}
	}
	return fields
}

// Join formats values into a single string with sep between items and
// end appended, converting each item with the default format:
//
//	strutil.Join([]any{"ACME", 50, 91.5}, ",", "!!\n")
//	// "ACME,50,91.5!!\n"
func Join(values []any, sep, end string) string {
	var b strings.Builder
	for i, v := range values {
		if i > 0 {
			b.WriteString(sep)
		}
		fmt.Fprintf(&b, "%v", v)
	}
	b.WriteString(end)
	return b.String()
}

// delimiterPattern compiles (and caches) the character-class pattern
// for a delimiter set: one delimiter rune followed by optional
// whitespace.
func delimiterPattern(delimiters string) *regexp.Regexp {
	if re, ok := patterns.Load(delimiters); ok {
		return re.(*regexp.Regexp)
	}

	var class strings.Builder
	for _, r := range delimiters {
		// Escape the runes that are special inside a character class.
		switch r {
		case '\\', ']', '^', '-':
			class.WriteByte('\\')
		}
		class.WriteRune(r)
	}
	re := regexp.MustCompile(`[` + class.String() + `]\s*`)
	patterns.Store(delimiters, re)
	return re
}
