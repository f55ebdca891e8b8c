package player

import (
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	return v
}

// Player is a ranked athlete. Name follows the "F. LastName" convention and
// ID is the site's short code, e.g. "f324".
type Player struct {
	Rank *int   `csv:"rank" parquet:"rank,optional" validate:"omitempty,gte=1"`
	Name string `csv:"name" parquet:"name" validate:"notblank"`
	ID   string `csv:"id" parquet:"id" validate:"notblank"`
}

// Validate rejects blank names or ids and non-positive ranks.
func (p Player) Validate() error {
	return validate.Struct(p)
}

// Roster is the bidirectional name/id lookup loaded once per run.
// It is never mutated after NewRoster and is safe for concurrent reads.
type Roster struct {
	players []Player
	names   []string
	byName  map[string]string
	byID    map[string]string
}

// NewRoster indexes players in order. Entries failing Validate are skipped,
// and for duplicate names or ids the first entry wins.
func NewRoster(players []Player) *Roster {
	r := &Roster{
		players: make([]Player, 0, len(players)),
		names:   make([]string, 0, len(players)),
		byName:  make(map[string]string, len(players)),
		byID:    make(map[string]string, len(players)),
	}
	for _, p := range players {
		if p.Validate() != nil {
			continue
		}
		r.players = append(r.players, p)
		r.names = append(r.names, p.Name)
		if _, ok := r.byName[p.Name]; !ok {
			r.byName[p.Name] = p.ID
		}
		if _, ok := r.byID[p.ID]; !ok {
			r.byID[p.ID] = p.Name
		}
	}
	return r
}

func (r *Roster) Len() int {
	if r == nil {
		return 0
	}
	return len(r.players)
}

// Players returns the roster in load order. Callers must not modify it.
func (r *Roster) Players() []Player {
	if r == nil {
		return nil
	}
	return r.players
}

// Names returns display names in load order. Callers must not modify it.
func (r *Roster) Names() []string {
	if r == nil {
		return nil
	}
	return r.names
}

func (r *Roster) IDByName(name string) (string, bool) {
	if r == nil {
		return "", false
	}
	id, ok := r.byName[name]
	return id, ok
}

func (r *Roster) NameByID(id string) (string, bool) {
	if r == nil {
		return "", false
	}
	name, ok := r.byID[id]
	return name, ok
}
