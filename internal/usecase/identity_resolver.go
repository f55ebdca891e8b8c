package usecase

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/riskibarqy/matchedge/internal/domain/player"
	"github.com/riskibarqy/matchedge/internal/platform/fuzzy"
	"github.com/riskibarqy/matchedge/internal/platform/logging"
	"github.com/riskibarqy/matchedge/internal/platform/textnorm"
)

// DefaultIdentityThreshold is the token-sort score a fuzzy name match must beat.
const DefaultIdentityThreshold = 70.0

type MatchMethod string

const (
	MatchExact      MatchMethod = "exact"
	MatchFuzzy      MatchMethod = "fuzzy"
	MatchUnresolved MatchMethod = "unresolved"
)

// Resolution describes how a name was resolved. Candidate and Score are set
// for fuzzy attempts, including rejected ones.
type Resolution struct {
	ID        string
	Method    MatchMethod
	Candidate string
	Score     float64
}

func (r Resolution) Resolved() bool {
	return r.Method != MatchUnresolved
}

type nameKey struct {
	initial string
	last    string
}

// IdentityResolver maps free-text player names onto roster ids.
type IdentityResolver struct {
	roster    *player.Roster
	threshold float64
	logger    *logging.Logger

	lowerKeys []nameKey
	titleKeys []nameKey
}

func NewIdentityResolver(roster *player.Roster, threshold float64, logger *logging.Logger) *IdentityResolver {
	if logger == nil {
		logger = logging.Default()
	}
	if threshold <= 0 {
		threshold = DefaultIdentityThreshold
	}

	r := &IdentityResolver{
		roster:    roster,
		threshold: threshold,
		logger:    logger,
		lowerKeys: make([]nameKey, roster.Len()),
		titleKeys: make([]nameKey, roster.Len()),
	}
	for i, p := range roster.Players() {
		r.lowerKeys[i], _ = lowerNameKey(p.Name)
		r.titleKeys[i], _ = titleNameKey(p.Name)
	}
	return r
}

// Resolve finds the roster id for fullName. An exact initial plus last-name
// match wins; otherwise the best token-sort fuzzy match above the threshold
// is accepted. Unresolved names are logged and returned without an id.
func (r *IdentityResolver) Resolve(ctx context.Context, fullName string) Resolution {
	if key, ok := lowerNameKey(fullName); ok {
		for i, candidate := range r.lowerKeys {
			if candidate == key {
				return Resolution{ID: r.roster.Players()[i].ID, Method: MatchExact}
			}
		}
	}

	best, ok := fuzzy.ExtractOne(fullName, r.roster.Names(), fuzzy.TokenSortRatio)
	if ok && best.Score > r.threshold {
		return Resolution{
			ID:        r.roster.Players()[best.Index].ID,
			Method:    MatchFuzzy,
			Candidate: best.Choice,
			Score:     best.Score,
		}
	}

	r.logger.WarnContext(ctx, "player identity unresolved",
		"name", fullName,
		"best_candidate", best.Choice,
		"score", best.Score,
		"threshold", r.threshold,
	)
	return Resolution{Method: MatchUnresolved, Candidate: best.Choice, Score: best.Score}
}

// ResolveByInitialLastName matches "F." plus the title-cased last name only.
// It never guesses: names with fewer than two tokens or no exact match
// return false.
func (r *IdentityResolver) ResolveByInitialLastName(name string) (string, bool) {
	key, ok := titleNameKey(name)
	if !ok {
		return "", false
	}
	for i, candidate := range r.titleKeys {
		if candidate == key {
			return r.roster.Players()[i].ID, true
		}
	}
	return "", false
}

// lowerNameKey drops periods, turns hyphens into spaces and lowercases
// before taking the first initial and the last token.
func lowerNameKey(name string) (nameKey, bool) {
	normalized := strings.ToLower(strings.ReplaceAll(strings.ReplaceAll(name, "-", " "), ".", ""))
	parts := strings.Fields(normalized)
	if len(parts) == 0 {
		return nameKey{}, false
	}
	first, _ := utf8.DecodeRuneInString(parts[0])
	return nameKey{initial: string(first), last: parts[len(parts)-1]}, true
}

// titleNameKey keys "Jan-Lennard Struff" as {"J.", "Struff"}.
func titleNameKey(name string) (nameKey, bool) {
	parts := strings.Fields(name)
	if len(parts) < 2 {
		return nameKey{}, false
	}
	first, _ := utf8.DecodeRuneInString(parts[0])
	return nameKey{
		initial: strings.ToUpper(string(first)) + ".",
		last:    textnorm.Title(parts[len(parts)-1]),
	}, true
}
