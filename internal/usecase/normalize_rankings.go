package usecase

import (
	"strings"

	"github.com/riskibarqy/matchedge/internal/domain/player"
	"github.com/riskibarqy/matchedge/internal/domain/rawdata"
)

// NormalizeRankings lowercases headers and types name, id and rank. Ids are
// lowercased so they join with results and statistics.
func NormalizeRankings(table rawdata.Table) []player.Player {
	table = table.LowerHeaders()
	out := make([]player.Player, 0, table.Len())
	for _, row := range table.Rows {
		p := player.Player{
			Name: row.Get("name"),
			ID:   strings.ToLower(row.Get("id")),
		}
		if rank := parseIntCell(row.Get("rank")); rank != nil {
			v := int(*rank)
			p.Rank = &v
		}
		out = append(out, p)
	}
	return out
}
