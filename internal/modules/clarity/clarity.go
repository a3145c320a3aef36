// Package clarity derives the dashboard summary from a user's assessment history.
package clarity

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/careerpath/careerpath-backend/internal/domain"
)

const (
	BaseScore     = 10
	PerAssessment = 15
	MatchWeight   = 0.4
	MaxScore      = 100

	RecentLimit     = 3
	PlaceholderRole = "Assessment Completed"
	NoMatch         = "N/A"
)

type ActivityEntry struct {
	ID    uuid.UUID `json:"id"`
	Role  string    `json:"role"`
	Match string    `json:"match"`
	Date  time.Time `json:"date"`
}

type Summary struct {
	ClarityScore     int             `json:"clarity_score"`
	TotalAssessments int             `json:"total_assessments"`
	SavedCount       int             `json:"saved_resources"`
	PendingActions   int             `json:"pending_actions"`
	RecentActivity   []ActivityEntry `json:"recent_activity"`
}

// Compute builds the summary. The input slice and its records are left untouched.
func Compute(assessments []*domain.AssessmentRecord, savedCount int) Summary {
	records := make([]*domain.AssessmentRecord, 0, len(assessments))
	for _, a := range assessments {
		if a != nil {
			records = append(records, a)
		}
	}

	tops := make([]int, 0, len(records))
	for _, a := range records {
		top, ok := TopRecommendation(a)
		if !ok {
			tops = append(tops, 0)
			continue
		}
		tops = append(tops, top.MatchScore)
	}

	return Summary{
		ClarityScore:     Score(tops),
		TotalAssessments: len(records),
		SavedCount:       savedCount,
		PendingActions:   PendingActions(len(records), savedCount),
		RecentActivity:   RecentActivity(records),
	}
}

// Score is min(100, round(10 + 15n + 0.4*avg(top))) where top holds each
// assessment's highest match score.
func Score(topScores []int) int {
	n := len(topScores)
	if n == 0 {
		return BaseScore
	}
	sum := 0
	for _, s := range topScores {
		sum += s
	}
	avg := float64(sum) / float64(n)
	raw := math.Round(BaseScore + PerAssessment*float64(n) + MatchWeight*avg)
	if raw > MaxScore {
		return MaxScore
	}
	return int(raw)
}

// PendingActions counts the nudges shown on the dashboard: take a first quiz, then
// save a result.
func PendingActions(totalAssessments, savedCount int) int {
	pending := 0
	if totalAssessments == 0 {
		pending++
	}
	if savedCount == 0 && totalAssessments > 0 {
		pending++
	}
	return pending
}

// TopRecommendation returns the highest-scoring recommendation; ties keep the earlier one.
func TopRecommendation(a *domain.AssessmentRecord) (domain.Recommendation, bool) {
	if a == nil || len(a.Recommendations) == 0 {
		return domain.Recommendation{}, false
	}
	best := 0
	for i := 1; i < len(a.Recommendations); i++ {
		if a.Recommendations[i].MatchScore > a.Recommendations[best].MatchScore {
			best = i
		}
	}
	return a.Recommendations[best], true
}

func RecentActivity(records []*domain.AssessmentRecord) []ActivityEntry {
	ordered := make([]*domain.AssessmentRecord, len(records))
	copy(ordered, records)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt.After(ordered[j].CreatedAt)
	})
	if len(ordered) > RecentLimit {
		ordered = ordered[:RecentLimit]
	}

	out := make([]ActivityEntry, 0, len(ordered))
	for _, a := range ordered {
		entry := ActivityEntry{ID: a.ID, Role: PlaceholderRole, Match: NoMatch, Date: a.CreatedAt}
		if top, ok := TopRecommendation(a); ok {
			entry.Role = top.Title
			entry.Match = fmt.Sprintf("%d%%", top.MatchScore)
		}
		out = append(out, entry)
	}
	return out
}
