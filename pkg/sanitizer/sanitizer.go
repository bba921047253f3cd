package sanitizer

import (
	"regexp"
	"strings"
	"unicode"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

var reCollapseSpaces = regexp.MustCompile(`\s+`)

func trimSpace(s string) string {
	return strings.TrimSpace(s)
}

func collapseSpaces(s string) string {
	return reCollapseSpaces.ReplaceAllString(s, " ")
}

func stripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

// SanitizeTitle cleans user-entered booking titles: control characters out,
// runs of whitespace collapsed, surrounding space trimmed.
func SanitizeTitle(input string) string {
	p := Pipeline{
		stripControl,
		collapseSpaces,
		trimSpace,
	}
	return p.Apply(input)
}

// SanitizeLocation cleans room names and locations the same way as titles.
func SanitizeLocation(input string) string {
	return SanitizeTitle(input)
}

// SanitizeIdentity normalizes an acting-identity string. Identities are
// opaque ids from the auth collaborator, so only whitespace and control
// characters are removed.
func SanitizeIdentity(input string) string {
	p := Pipeline{
		stripControl,
		trimSpace,
	}
	return p.Apply(input)
}
