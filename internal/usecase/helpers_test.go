package usecase

import (
	"time"

	"github.com/riskibarqy/matchedge/internal/domain/player"
	"github.com/riskibarqy/matchedge/internal/domain/rawdata"
	"github.com/riskibarqy/matchedge/internal/platform/logging"
)

func testRoster() *player.Roster {
	return player.NewRoster([]player.Player{
		{Name: "R. Federer", ID: "f324"},
		{Name: "J. Sinner", ID: "s0ag"},
		{Name: "C. Alcaraz", ID: "a0e2"},
		{Name: "J. Struff", ID: "sl28"},
		{Name: "N. Djokovic", ID: "d643"},
		{Name: "F. Gomez", ID: "gj16"},
	})
}

func nopLogger() *logging.Logger {
	return logging.NewNop()
}

// table builds a raw table from a header and positional rows.
func table(columns []string, rows ...[]string) rawdata.Table {
	t := rawdata.Table{Columns: columns}
	for _, values := range rows {
		row := make(rawdata.Row, len(columns))
		for i, col := range columns {
			if i < len(values) {
				row[col] = values[i]
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func intPtr(v int) *int {
	return &v
}

func int64Ptr(v int64) *int64 {
	return &v
}

func floatPtr(v float64) *float64 {
	return &v
}

func datePtr(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}
