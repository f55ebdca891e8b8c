// Package reference holds the fixed lookup tables the normalizers depend on.
// Tables are built once at start-up, passed by pointer and never mutated.
package reference

import (
	"github.com/riskibarqy/matchedge/internal/domain/category"
)

// SurfaceEntry maps a tournament name to its court surface. Entries are kept
// in order so fuzzy ties resolve to the earliest entry.
type SurfaceEntry struct {
	Tournament string `yaml:"tournament" validate:"required"`
	Surface    string `yaml:"surface" validate:"required"`
}

// NameCorrection rewrites a mis-scraped display name and supplies its id.
type NameCorrection struct {
	Name string `yaml:"name" validate:"required"`
	ID   string `yaml:"id" validate:"required"`
}

type Tables struct {
	Surfaces             []SurfaceEntry            `yaml:"surfaces" validate:"required,min=1,dive"`
	LevelOrder           []string                  `yaml:"level_order" validate:"required,min=1,unique,dive,required"`
	RoundOrder           []string                  `yaml:"round_order" validate:"required,min=1,unique,dive,required"`
	RoundAliases         map[string]string         `yaml:"round_aliases" validate:"dive,keys,required,endkeys,required"`
	FiveSetTournamentIDs []string                  `yaml:"five_set_tournament_ids" validate:"dive,required,numeric"`
	NameCorrections      map[string]NameCorrection `yaml:"name_corrections" validate:"dive,keys,required,endkeys"`
	ByeSentinel          string                    `yaml:"bye_sentinel" validate:"required"`
}

func (t *Tables) Levels() category.Order {
	return category.NewOrder(t.LevelOrder...)
}

func (t *Tables) Rounds() category.Order {
	return category.NewOrder(t.RoundOrder...)
}

// SurfaceNames lists tournament names of the surface table in order.
func (t *Tables) SurfaceNames() []string {
	out := make([]string, 0, len(t.Surfaces))
	for _, s := range t.Surfaces {
		out = append(out, s.Tournament)
	}
	return out
}

// IsFiveSet reports whether tournamentID plays best-of-five.
func (t *Tables) IsFiveSet(tournamentID string) bool {
	for _, id := range t.FiveSetTournamentIDs {
		if id == tournamentID {
			return true
		}
	}
	return false
}

// CanonicalRound applies the round aliases, returning raw unchanged when no
// alias exists.
func (t *Tables) CanonicalRound(raw string) string {
	if alias, ok := t.RoundAliases[raw]; ok {
		return alias
	}
	return raw
}

// Correction returns the known fix for a display name.
func (t *Tables) Correction(name string) (NameCorrection, bool) {
	c, ok := t.NameCorrections[name]
	return c, ok
}

// Clone returns a deep copy.
func (t *Tables) Clone() *Tables {
	out := *t
	out.Surfaces = append([]SurfaceEntry(nil), t.Surfaces...)
	out.LevelOrder = append([]string(nil), t.LevelOrder...)
	out.RoundOrder = append([]string(nil), t.RoundOrder...)
	out.FiveSetTournamentIDs = append([]string(nil), t.FiveSetTournamentIDs...)
	out.RoundAliases = make(map[string]string, len(t.RoundAliases))
	for k, v := range t.RoundAliases {
		out.RoundAliases[k] = v
	}
	out.NameCorrections = make(map[string]NameCorrection, len(t.NameCorrections))
	for k, v := range t.NameCorrections {
		out.NameCorrections[k] = v
	}
	return &out
}
