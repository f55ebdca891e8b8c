package unified

import (
	"github.com/riskibarqy/matchedge/internal/domain/match"
	"github.com/riskibarqy/matchedge/internal/domain/matchstats"
)

// Record is one analysis-ready match: the result row, its tournament context
// and both players' statistics, with slots aligned across sources.
type Record struct {
	Result   match.Result       `csv:",inline" parquet:"result"`
	Level    string             `csv:"level" parquet:"level"`
	Location string             `csv:"location" parquet:"location"`
	Surface  string             `csv:"surface" parquet:"surface"`
	P1       matchstats.Metrics `csv:"p1_,inline" parquet:"p1"`
	P2       matchstats.Metrics `csv:"p2_,inline" parquet:"p2"`
}
