package reference

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	t.Parallel()

	tables := Default()
	require.NoError(t, Validate(tables))

	assert.Len(t, tables.Surfaces, 61)
	assert.Len(t, tables.NameCorrections, 12)
	assert.True(t, tables.IsFiveSet("580"))
	assert.False(t, tables.IsFiveSet("339"))
	assert.Equal(t, "Quarter-Finals", tables.CanonicalRound("Quarterfinals"))
	assert.Equal(t, "Round of 16", tables.CanonicalRound("Round of 16"))
	assert.True(t, tables.Levels().Less("ATP 500", "Grand Slam"))
	assert.True(t, tables.Rounds().Less("Round of 128", "Round of 64"))
	assert.Equal(t, "Brisbane International presented by Evie", tables.SurfaceNames()[0])

	fix, ok := tables.Correction("F. Agustin Gomez")
	require.True(t, ok)
	assert.Equal(t, NameCorrection{Name: "F. Gomez", ID: "gj16"}, fix)
}

func TestParse_OverridesOnlyGivenKeys(t *testing.T) {
	t.Parallel()

	tables, err := Parse([]byte(`
five_set_tournament_ids: ["580", "520"]
surfaces:
  - tournament: United Cup
    surface: Hard
name_corrections:
  "A. Example Name":
    name: A. Name
    id: x001
`))
	require.NoError(t, err)

	assert.Equal(t, []string{"580", "520"}, tables.FiveSetTournamentIDs)
	assert.Equal(t, []SurfaceEntry{{Tournament: "United Cup", Surface: "Hard"}}, tables.Surfaces)
	assert.Equal(t, "Bye", tables.ByeSentinel)
	assert.Len(t, tables.RoundOrder, 11)
	_, ok := tables.Correction("A. Example Name")
	assert.True(t, ok)
}

func TestParse_RejectsInvalidTables(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"duplicate rounds":   "round_order: [Final, Final]",
		"non numeric id":     `five_set_tournament_ids: ["grand-slam"]`,
		"empty surface":      "surfaces:\n  - tournament: Wimbledon\n    surface: \"\"",
		"alias to nowhere":   "round_aliases: {Finale: Championship}",
		"missing correction": "name_corrections: {\"A. B C\": {name: A. C}}",
		"malformed yaml":     "round_order: [",
	}
	for name, body := range cases {
		_, err := Parse([]byte(body))
		assert.Error(t, err, name)
	}
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "reference.yaml")
	require.NoError(t, os.WriteFile(path, []byte("bye_sentinel: BYE\n"), 0o600))

	tables, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "BYE", tables.ByeSentinel)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestClone_IsIndependent(t *testing.T) {
	t.Parallel()

	base := Default()
	clone := base.Clone()
	clone.RoundAliases["Finals"] = "Semi-Finals"
	clone.LevelOrder[0] = "Other"

	assert.Equal(t, "Final", base.RoundAliases["Finals"])
	assert.Equal(t, "Next Gen ATP Finals", base.LevelOrder[0])
}
