// Package textnorm holds the text clean-up shared by the normalizers.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// FoldAccents strips combining marks, so "Rublëv" becomes "Rublev".
func FoldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Title upper-cases the first letter of every word and lower-cases the rest.
// cases.Caser is stateful, so a fresh one is built per call.
func Title(s string) string {
	return cases.Title(language.Und).String(s)
}

// Lower lower-cases s without locale rules.
func Lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

// Squash trims s and collapses inner whitespace to single spaces.
func Squash(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// ShortName renders a full player name as "F. Last Name".
//
// Names that already contain a period are only title-cased. Hyphens become
// spaces in both paths. Single-word names are returned trimmed.
func ShortName(name string) string {
	name = Squash(strings.ReplaceAll(strings.TrimSpace(name), "-", " "))
	if name == "" {
		return ""
	}
	if strings.Contains(name, ".") {
		return Title(name)
	}

	parts := strings.Fields(name)
	if len(parts) < 2 {
		return name
	}
	initial := []rune(parts[0])[0]
	return string(unicode.ToUpper(initial)) + ". " + Title(strings.Join(parts[1:], " "))
}

// Slug lower-cases s, folds accents and joins words with hyphens.
func Slug(s string) string {
	folded := Lower(FoldAccents(s))
	var b strings.Builder
	b.Grow(len(folded))
	pendingDash := false
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}
	return b.String()
}
