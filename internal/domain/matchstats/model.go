package matchstats

import "github.com/riskibarqy/matchedge/internal/domain/match"

// Metrics is one player's statistics line. Every value is optional.
// Point-outcome columns hold two-decimal ratios. BreakPointsSaved,
// BreakPointsConverted and NetPointsWon hold ratios whose denominators live in
// BreakPointOpportunities and NetPointsPlayed.
type Metrics struct {
	ServeRating                *float64 `csv:"serve_rating" parquet:"serve_rating,optional"`
	Aces                       *float64 `csv:"aces" parquet:"aces,optional"`
	DoubleFaults               *float64 `csv:"double_faults" parquet:"double_faults,optional"`
	FirstServe                 *float64 `csv:"first_serve" parquet:"first_serve,optional"`
	FirstServePointsWon        *float64 `csv:"1st_serve_points_won" parquet:"1st_serve_points_won,optional"`
	SecondServePointsWon       *float64 `csv:"2nd_serve_points_won" parquet:"2nd_serve_points_won,optional"`
	BreakPointsSaved           *float64 `csv:"break_points_saved" parquet:"break_points_saved,optional"`
	ServiceGamesPlayed         *float64 `csv:"service_games_played" parquet:"service_games_played,optional"`
	ReturnRating               *float64 `csv:"return_rating" parquet:"return_rating,optional"`
	FirstServeReturnPointsWon  *float64 `csv:"1st_serve_return_points_won" parquet:"1st_serve_return_points_won,optional"`
	SecondServeReturnPointsWon *float64 `csv:"2nd_serve_return_points_won" parquet:"2nd_serve_return_points_won,optional"`
	BreakPointsConverted       *float64 `csv:"break_points_converted" parquet:"break_points_converted,optional"`
	ReturnGamesPlayed          *float64 `csv:"return_games_played" parquet:"return_games_played,optional"`
	NetPointsWon               *float64 `csv:"net_points_won" parquet:"net_points_won,optional"`
	Winners                    *float64 `csv:"winners" parquet:"winners,optional"`
	UnforcedErrors             *float64 `csv:"unforced_errors" parquet:"unforced_errors,optional"`
	ServicePointsWon           *float64 `csv:"service_points_won" parquet:"service_points_won,optional"`
	ReturnPointsWon            *float64 `csv:"return_points_won" parquet:"return_points_won,optional"`
	TotalPointsWon             *float64 `csv:"total_points_won" parquet:"total_points_won,optional"`
	MaxSpeed                   *float64 `csv:"max_speed" parquet:"max_speed,optional"`
	FirstServeAverageSpeed     *float64 `csv:"1st_serve_average_speed" parquet:"1st_serve_average_speed,optional"`
	SecondServeAverageSpeed    *float64 `csv:"2nd_serve_average_speed" parquet:"2nd_serve_average_speed,optional"`
	BreakPointOpportunities    *float64 `csv:"break_point_opportunities" parquet:"break_point_opportunities,optional"`
	NetPointsPlayed            *float64 `csv:"net_points_played" parquet:"net_points_played,optional"`
}

// Metric column names without the player prefix.
const (
	ColServeRating                = "serve_rating"
	ColAces                       = "aces"
	ColDoubleFaults               = "double_faults"
	ColFirstServe                 = "first_serve"
	ColFirstServePointsWon        = "1st_serve_points_won"
	ColSecondServePointsWon       = "2nd_serve_points_won"
	ColBreakPointsSaved           = "break_points_saved"
	ColServiceGamesPlayed         = "service_games_played"
	ColReturnRating               = "return_rating"
	ColFirstServeReturnPointsWon  = "1st_serve_return_points_won"
	ColSecondServeReturnPointsWon = "2nd_serve_return_points_won"
	ColBreakPointsConverted       = "break_points_converted"
	ColReturnGamesPlayed          = "return_games_played"
	ColNetPointsWon               = "net_points_won"
	ColWinners                    = "winners"
	ColUnforcedErrors             = "unforced_errors"
	ColServicePointsWon           = "service_points_won"
	ColReturnPointsWon            = "return_points_won"
	ColTotalPointsWon             = "total_points_won"
	ColMaxSpeed                   = "max_speed"
	ColFirstServeAverageSpeed     = "1st_serve_average_speed"
	ColSecondServeAverageSpeed    = "2nd_serve_average_speed"
	ColBreakPointOpportunities    = "break_point_opportunities"
	ColNetPointsPlayed            = "net_points_played"
)

// ScrapedColumns are the metric columns present in the raw statistics source.
var ScrapedColumns = []string{
	ColServeRating, ColAces, ColDoubleFaults, ColFirstServe,
	ColFirstServePointsWon, ColSecondServePointsWon, ColBreakPointsSaved,
	ColServiceGamesPlayed, ColReturnRating, ColFirstServeReturnPointsWon,
	ColSecondServeReturnPointsWon, ColBreakPointsConverted, ColReturnGamesPlayed,
	ColNetPointsWon, ColWinners, ColUnforcedErrors, ColServicePointsWon,
	ColReturnPointsWon, ColTotalPointsWon, ColMaxSpeed,
	ColFirstServeAverageSpeed, ColSecondServeAverageSpeed,
}

// MetricColumns lists every metric column: the scraped ones followed by the
// denominators split out of "won/played" cells.
var MetricColumns = append(append([]string(nil), ScrapedColumns...),
	ColBreakPointOpportunities, ColNetPointsPlayed,
)

// PointOutcomeColumns are scraped as "won/played" and stored as ratios.
var PointOutcomeColumns = []string{
	ColFirstServe, ColFirstServePointsWon, ColSecondServePointsWon,
	ColFirstServeReturnPointsWon, ColServicePointsWon,
	ColSecondServeReturnPointsWon, ColReturnPointsWon, ColTotalPointsWon,
}

// Get returns the value of a metric column.
func (m *Metrics) Get(col string) (*float64, bool) {
	p := m.field(col)
	if p == nil {
		return nil, false
	}
	return *p, true
}

// Set assigns a metric column and reports whether the column exists.
func (m *Metrics) Set(col string, v *float64) bool {
	p := m.field(col)
	if p == nil {
		return false
	}
	*p = v
	return true
}

// HasPointOutcome reports whether any point-outcome metric is present.
func (m Metrics) HasPointOutcome() bool {
	for _, col := range PointOutcomeColumns {
		if v, _ := m.Get(col); v != nil {
			return true
		}
	}
	return false
}

func (m *Metrics) field(col string) **float64 {
	switch col {
	case ColServeRating:
		return &m.ServeRating
	case ColAces:
		return &m.Aces
	case ColDoubleFaults:
		return &m.DoubleFaults
	case ColFirstServe:
		return &m.FirstServe
	case ColFirstServePointsWon:
		return &m.FirstServePointsWon
	case ColSecondServePointsWon:
		return &m.SecondServePointsWon
	case ColBreakPointsSaved:
		return &m.BreakPointsSaved
	case ColServiceGamesPlayed:
		return &m.ServiceGamesPlayed
	case ColReturnRating:
		return &m.ReturnRating
	case ColFirstServeReturnPointsWon:
		return &m.FirstServeReturnPointsWon
	case ColSecondServeReturnPointsWon:
		return &m.SecondServeReturnPointsWon
	case ColBreakPointsConverted:
		return &m.BreakPointsConverted
	case ColReturnGamesPlayed:
		return &m.ReturnGamesPlayed
	case ColNetPointsWon:
		return &m.NetPointsWon
	case ColWinners:
		return &m.Winners
	case ColUnforcedErrors:
		return &m.UnforcedErrors
	case ColServicePointsWon:
		return &m.ServicePointsWon
	case ColReturnPointsWon:
		return &m.ReturnPointsWon
	case ColTotalPointsWon:
		return &m.TotalPointsWon
	case ColMaxSpeed:
		return &m.MaxSpeed
	case ColFirstServeAverageSpeed:
		return &m.FirstServeAverageSpeed
	case ColSecondServeAverageSpeed:
		return &m.SecondServeAverageSpeed
	case ColBreakPointOpportunities:
		return &m.BreakPointOpportunities
	case ColNetPointsPlayed:
		return &m.NetPointsPlayed
	default:
		return nil
	}
}

// Statistics is one normalized row of the statistics source.
type Statistics struct {
	MatchID      string  `csv:"match_id" parquet:"match_id"`
	TournamentID *int64  `csv:"tournament_id" parquet:"tournament_id,optional"`
	Player1      string  `csv:"player_1" parquet:"player_1"`
	Player2      string  `csv:"player_2" parquet:"player_2"`
	P1ID         string  `csv:"p1_id" parquet:"p1_id"`
	P2ID         string  `csv:"p2_id" parquet:"p2_id"`
	P1           Metrics `csv:"p1_,inline" parquet:"p1"`
	P2           Metrics `csv:"p2_,inline" parquet:"p2"`
}

// HasPointOutcome reports whether either player has a point-outcome metric.
func (s Statistics) HasPointOutcome() bool {
	return s.P1.HasPointOutcome() || s.P2.HasPointOutcome()
}

// Key returns the join key shared with results, or false when incomplete.
func (s Statistics) Key() (match.StatsKey, bool) {
	if s.TournamentID == nil || s.MatchID == "" || s.P1ID == "" || s.P2ID == "" {
		return match.StatsKey{}, false
	}
	return match.StatsKey{TournamentID: *s.TournamentID, MatchID: s.MatchID, P1ID: s.P1ID, P2ID: s.P2ID}, true
}
