package player

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoster_LookupsKeepFirstEntry(t *testing.T) {
	t.Parallel()

	r := NewRoster([]Player{
		{Name: "R. Federer", ID: "f324"},
		{Name: "R. Federer", ID: "zzzz"},
		{Name: "", ID: "nope"},
		{Name: "C. Alcaraz", ID: "a0e2"},
	})

	assert.Equal(t, 3, r.Len())
	assert.Equal(t, []string{"R. Federer", "R. Federer", "C. Alcaraz"}, r.Names())

	id, ok := r.IDByName("R. Federer")
	assert.True(t, ok)
	assert.Equal(t, "f324", id)

	name, ok := r.NameByID("zzzz")
	assert.True(t, ok)
	assert.Equal(t, "R. Federer", name)

	_, ok = r.NameByID("nope")
	assert.False(t, ok)
}

func TestRoster_NilIsEmpty(t *testing.T) {
	t.Parallel()

	var r *Roster
	assert.Zero(t, r.Len())
	assert.Nil(t, r.Names())
	_, ok := r.IDByName("x")
	assert.False(t, ok)
}

func TestPlayerValidate(t *testing.T) {
	t.Parallel()

	zero, first := 0, 1
	assert.NoError(t, Player{Name: "J. Sinner", ID: "s0ag"}.Validate())
	assert.NoError(t, Player{Rank: &first, Name: "J. Sinner", ID: "s0ag"}.Validate())
	assert.Error(t, Player{Name: "J. Sinner", ID: "  "}.Validate())
	assert.Error(t, Player{Name: "", ID: "s0ag"}.Validate())
	assert.Error(t, Player{Rank: &zero, Name: "J. Sinner", ID: "s0ag"}.Validate())
}
