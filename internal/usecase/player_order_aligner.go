package usecase

import (
	"github.com/riskibarqy/matchedge/internal/domain/match"
	"github.com/riskibarqy/matchedge/internal/domain/matchstats"
)

// AlignDecision records what the aligner did with a result row.
type AlignDecision string

const (
	// AlignAgreed means the result slots already follow the statistics.
	AlignAgreed AlignDecision = "agreed"
	// AlignSwapped means the slots were exchanged to follow the statistics.
	AlignSwapped AlignDecision = "swapped"
	// AlignUnresolved means statistics exist for the match but neither slot
	// id matches them. The row is left unchanged.
	AlignUnresolved AlignDecision = "unresolved"
	// AlignNoStats means no statistics row refers to the match.
	AlignNoStats AlignDecision = "no_stats"
)

type matchRef struct {
	tournamentID int64
	matchID      string
}

type matchPlayerRef struct {
	tournamentID int64
	matchID      string
	playerID     string
}

type playerPairRef struct {
	tournamentID int64
	p1ID         string
	p2ID         string
}

// StatsIndex holds the four lookup sets the aligner needs. It is read-only
// after construction and safe for concurrent use.
type StatsIndex struct {
	matches     map[matchRef]struct{}
	slot1       map[matchPlayerRef]struct{}
	slot2       map[matchPlayerRef]struct{}
	playerPairs map[playerPairRef]struct{}
}

// NewStatsIndex indexes statistics rows. Components that are missing never
// enter a set, so they can never match.
func NewStatsIndex(stats []matchstats.Statistics) *StatsIndex {
	idx := &StatsIndex{
		matches:     make(map[matchRef]struct{}, len(stats)),
		slot1:       make(map[matchPlayerRef]struct{}, len(stats)),
		slot2:       make(map[matchPlayerRef]struct{}, len(stats)),
		playerPairs: make(map[playerPairRef]struct{}, len(stats)),
	}
	for _, s := range stats {
		if s.TournamentID == nil {
			continue
		}
		tid := *s.TournamentID
		if s.MatchID != "" {
			idx.matches[matchRef{tid, s.MatchID}] = struct{}{}
			if s.P1ID != "" {
				idx.slot1[matchPlayerRef{tid, s.MatchID, s.P1ID}] = struct{}{}
			}
			if s.P2ID != "" {
				idx.slot2[matchPlayerRef{tid, s.MatchID, s.P2ID}] = struct{}{}
			}
		}
		if s.P1ID != "" && s.P2ID != "" {
			idx.playerPairs[playerPairRef{tid, s.P1ID, s.P2ID}] = struct{}{}
		}
	}
	return idx
}

func (idx *StatsIndex) hasMatch(tid int64, matchID string) bool {
	_, ok := idx.matches[matchRef{tid, matchID}]
	return ok
}

func (idx *StatsIndex) inSlot1(tid int64, matchID, playerID string) bool {
	if playerID == "" {
		return false
	}
	_, ok := idx.slot1[matchPlayerRef{tid, matchID, playerID}]
	return ok
}

func (idx *StatsIndex) inSlot2(tid int64, matchID, playerID string) bool {
	if playerID == "" {
		return false
	}
	_, ok := idx.slot2[matchPlayerRef{tid, matchID, playerID}]
	return ok
}

func (idx *StatsIndex) hasPair(tid int64, p1ID, p2ID string) bool {
	if p1ID == "" || p2ID == "" {
		return false
	}
	_, ok := idx.playerPairs[playerPairRef{tid, p1ID, p2ID}]
	return ok
}

// AlignResult orders the slots of r like the statistics for the same match.
// It is pure: r is never modified and the returned row is a copy.
func AlignResult(r match.Result, idx *StatsIndex) (match.Result, AlignDecision) {
	if r.TournamentID == nil {
		return r, AlignNoStats
	}
	tid := *r.TournamentID

	if r.MatchID == "" {
		switch {
		case idx.hasPair(tid, r.P1ID, r.P2ID):
			return r, AlignAgreed
		case idx.hasPair(tid, r.P2ID, r.P1ID):
			return r.Swapped(), AlignSwapped
		default:
			return r, AlignNoStats
		}
	}

	if !idx.hasMatch(tid, r.MatchID) {
		return r, AlignNoStats
	}
	switch {
	case idx.inSlot1(tid, r.MatchID, r.P1ID) || idx.inSlot2(tid, r.MatchID, r.P2ID):
		return r, AlignAgreed
	case idx.inSlot2(tid, r.MatchID, r.P1ID) || idx.inSlot1(tid, r.MatchID, r.P2ID):
		return r.Swapped(), AlignSwapped
	default:
		return r, AlignUnresolved
	}
}
