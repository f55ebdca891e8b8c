package match

import (
	"strings"
	"time"
)

// Status is the outcome class of a match.
type Status string

const (
	StatusCompleted Status = "Completed"
	StatusRetired   Status = "RET"
	StatusWalkover  Status = "Walkover"
	StatusDefault   Status = "Default"
	StatusBye       Status = "Bye"
)

// ClassifyNote maps the free-text note printed under a score line to a Status.
func ClassifyNote(note string) Status {
	switch {
	case strings.Contains(note, "RET"):
		return StatusRetired
	case strings.Contains(note, "Walkover"), strings.Contains(note, "W/O"):
		return StatusWalkover
	case strings.Contains(note, "Default"):
		return StatusDefault
	default:
		return StatusCompleted
	}
}

// SetScores holds games won per set. Sets that were not played are nil.
type SetScores struct {
	Set1 *int `csv:"set1" parquet:"set1,optional"`
	Set2 *int `csv:"set2" parquet:"set2,optional"`
	Set3 *int `csv:"set3" parquet:"set3,optional"`
	Set4 *int `csv:"set4" parquet:"set4,optional"`
	Set5 *int `csv:"set5" parquet:"set5,optional"`
}

const MaxSets = 5

func NewSetScores(values [MaxSets]*int) SetScores {
	return SetScores{Set1: values[0], Set2: values[1], Set3: values[2], Set4: values[3], Set5: values[4]}
}

func (s SetScores) Values() [MaxSets]*int {
	return [MaxSets]*int{s.Set1, s.Set2, s.Set3, s.Set4, s.Set5}
}

// Result is one normalized row of the results source. Text fields use "" for
// missing; pointer fields use nil.
type Result struct {
	MatchDate     *time.Time `csv:"match_date" parquet:"match_date,optional"`
	TournamentID  *int64     `csv:"tournament_id" parquet:"tournament_id,optional"`
	MatchID       string     `csv:"match_id" parquet:"match_id"`
	MatchRound    string     `csv:"match_round" parquet:"match_round"`
	Player1       string     `csv:"player_1" parquet:"player_1"`
	P1ID          string     `csv:"p1_id" parquet:"p1_id"`
	Player1Scores string     `csv:"player_1_scores" parquet:"player_1_scores"`
	Player2       string     `csv:"player_2" parquet:"player_2"`
	P2ID          string     `csv:"p2_id" parquet:"p2_id"`
	Player2Scores string     `csv:"player_2_scores" parquet:"player_2_scores"`
	Winner        string     `csv:"winner" parquet:"winner"`
	WinnerID      string     `csv:"winner_id" parquet:"winner_id"`
	Status        Status     `csv:"result" parquet:"result"`
	Duration      string     `csv:"duration" parquet:"duration"`
	BestOf        int        `csv:"best_of" parquet:"best_of"`
	P1Sets        SetScores  `csv:"p1_,inline" parquet:"p1_sets"`
	P2Sets        SetScores  `csv:"p2_,inline" parquet:"p2_sets"`
	StatsLink     string     `csv:"stats_link" parquet:"stats_link"`
	Year          *int       `csv:"year" parquet:"year,optional"`
}

// Swapped returns a copy with every per-player column exchanged between the
// two slots: name, score string, id and the five set scores.
func (r Result) Swapped() Result {
	out := r
	out.Player1, out.Player2 = r.Player2, r.Player1
	out.Player1Scores, out.Player2Scores = r.Player2Scores, r.Player1Scores
	out.P1ID, out.P2ID = r.P2ID, r.P1ID
	out.P1Sets, out.P2Sets = r.P2Sets, r.P1Sets
	return out
}

// StatsKey is the composite key shared with match statistics.
type StatsKey struct {
	TournamentID int64
	MatchID      string
	P1ID         string
	P2ID         string
}

// StatsKey returns the statistics join key. Rows missing any component have
// no key and never join.
func (r Result) StatsKey() (StatsKey, bool) {
	if r.TournamentID == nil || r.MatchID == "" || r.P1ID == "" || r.P2ID == "" {
		return StatsKey{}, false
	}
	return StatsKey{TournamentID: *r.TournamentID, MatchID: r.MatchID, P1ID: r.P1ID, P2ID: r.P2ID}, true
}
