// Package fuzzy scores approximate string similarity on a 0-100 scale.
//
// Scorers follow the familiar ratio family: Ratio compares whole strings,
// TokenSortRatio ignores token order, TokenSetRatio ignores duplicated and
// extra tokens, PartialRatio matches the shorter string against the best
// window of the longer one and WRatio blends them by length disparity.
package fuzzy

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	edlib "github.com/hbollon/go-edlib"
)

// Scorer returns a similarity score in [0, 100].
type Scorer func(a, b string) float64

// Match is the best candidate returned by ExtractOne.
type Match struct {
	Choice string
	Score  float64
	Index  int
}

// Ratio is the normalized Indel similarity of a and b: twice the longest
// common subsequence over the combined rune length. A substitution costs a
// deletion plus an insertion, so strings with nothing in common score 0.
func Ratio(a, b string) float64 {
	total := utf8.RuneCountInString(a) + utf8.RuneCountInString(b)
	if total == 0 {
		return 100
	}
	return float64(2*edlib.LCS(a, b)) / float64(total) * 100
}

// TokenSortRatio compares a and b after lowercasing, dropping punctuation and
// sorting tokens alphabetically.
func TokenSortRatio(a, b string) float64 {
	return Ratio(sortedTokens(a), sortedTokens(b))
}

// TokenSetRatio scores the shared token set against each side's remainder.
func TokenSetRatio(a, b string) float64 {
	ta, tb := tokenSet(a), tokenSet(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}

	var sect, onlyA, onlyB []string
	for tok := range ta {
		if _, ok := tb[tok]; ok {
			sect = append(sect, tok)
		} else {
			onlyA = append(onlyA, tok)
		}
	}
	for tok := range tb {
		if _, ok := ta[tok]; !ok {
			onlyB = append(onlyB, tok)
		}
	}
	sort.Strings(sect)
	sort.Strings(onlyA)
	sort.Strings(onlyB)

	if len(sect) > 0 && (len(onlyA) == 0 || len(onlyB) == 0) {
		return 100
	}

	base := strings.Join(sect, " ")
	combinedA := strings.TrimSpace(base + " " + strings.Join(onlyA, " "))
	combinedB := strings.TrimSpace(base + " " + strings.Join(onlyB, " "))

	best := Ratio(combinedA, combinedB)
	if base != "" {
		best = max(best, Ratio(base, combinedA), Ratio(base, combinedB))
	}
	return best
}

// PartialRatio is the best Ratio between the shorter input and any
// equal-length window of the longer input.
func PartialRatio(a, b string) float64 {
	short, long := []rune(a), []rune(b)
	if len(short) > len(long) {
		short, long = long, short
	}
	if len(short) == 0 {
		if len(long) == 0 {
			return 100
		}
		return 0
	}

	s := string(short)
	best := 0.0
	for start := 0; start+len(short) <= len(long); start++ {
		score := Ratio(s, string(long[start:start+len(short)]))
		if score > best {
			best = score
			if best == 100 {
				break
			}
		}
	}
	return best
}

// WRatio picks the strongest of the ratio family, discounting partial and
// token scores so an exact match always wins.
func WRatio(a, b string) float64 {
	pa, pb := Process(a), Process(b)
	la, lb := len([]rune(pa)), len([]rune(pb))
	if la == 0 || lb == 0 {
		return 0
	}

	base := Ratio(pa, pb)
	lenRatio := float64(max(la, lb)) / float64(min(la, lb))

	const unbaseScale = 0.95
	if lenRatio < 1.5 {
		return max(base,
			TokenSortRatio(pa, pb)*unbaseScale,
			TokenSetRatio(pa, pb)*unbaseScale,
		)
	}

	partialScale := 0.9
	if lenRatio >= 8 {
		partialScale = 0.6
	}
	return max(base,
		PartialRatio(pa, pb)*partialScale,
		PartialRatio(sortedTokens(pa), sortedTokens(pb))*unbaseScale*partialScale,
	)
}

// ExtractOne returns the highest scoring choice. Ties keep the earliest
// choice. ok is false when choices is empty.
func ExtractOne(query string, choices []string, scorer Scorer) (Match, bool) {
	if len(choices) == 0 {
		return Match{}, false
	}
	if scorer == nil {
		scorer = WRatio
	}

	best := Match{Index: -1, Score: -1}
	for i, choice := range choices {
		score := scorer(query, choice)
		if score > best.Score {
			best = Match{Choice: choice, Score: score, Index: i}
		}
	}
	return best, true
}

// Process lowercases s, replaces non alphanumeric runes with spaces and
// collapses whitespace.
func Process(s string) string {
	mapped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, s)
	return strings.Join(strings.Fields(mapped), " ")
}

func sortedTokens(s string) string {
	tokens := strings.Fields(Process(s))
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

func tokenSet(s string) map[string]struct{} {
	tokens := strings.Fields(Process(s))
	out := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		out[tok] = struct{}{}
	}
	return out
}
