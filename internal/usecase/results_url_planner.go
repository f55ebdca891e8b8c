package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/matchedge/internal/domain/match"
	"github.com/riskibarqy/matchedge/internal/domain/tournament"
)

const resultsArchiveBaseURL = "https://www.atptour.com/en/scores/archive/"

// PlanResultsURLs lists the results pages of tournaments ending after
// startDate. A profile URL such as ".../tournaments/brisbane/339/overview"
// yields ".../scores/archive/brisbane/339/<year>/results", with the year of
// startDate. Tournaments without an end date or a usable URL are skipped.
func PlanResultsURLs(tournaments []tournament.Tournament, startDate time.Time) []string {
	year := startDate.Year()
	out := make([]string, 0, len(tournaments))
	for _, t := range tournaments {
		if t.EndDate == nil || !t.EndDate.After(startDate) {
			continue
		}
		slug, id, ok := profileSegments(t.URL)
		if !ok {
			continue
		}
		out = append(out, fmt.Sprintf("%s%s/%s/%d/results", resultsArchiveBaseURL, slug, id, year))
	}
	return out
}

// profileSegments returns the two path segments before the last one.
func profileSegments(profileURL string) (slug, id string, ok bool) {
	parts := strings.Split(strings.TrimSpace(profileURL), "/")
	if len(parts) < 3 {
		return "", "", false
	}
	slug, id = parts[len(parts)-3], parts[len(parts)-2]
	if slug == "" || id == "" {
		return "", "", false
	}
	return slug, id, true
}

// ClassifyResultNote maps the note printed under a scraped score line to a
// match status.
func ClassifyResultNote(note string) match.Status {
	return match.ClassifyNote(note)
}
