package clarity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/careerpath/careerpath-backend/internal/domain"
)

func assessmentWith(created time.Time, scores ...int) *domain.AssessmentRecord {
	a := &domain.AssessmentRecord{ID: uuid.New(), CreatedAt: created}
	for i, s := range scores {
		a.Recommendations = append(a.Recommendations, domain.Recommendation{
			Title:      string(rune('A'+i)) + "-role",
			Type:       domain.RecommendationCareer,
			MatchScore: s,
		})
	}
	return a
}

func TestComputeZeroAssessments(t *testing.T) {
	got := Compute(nil, 0)
	if got.ClarityScore != BaseScore {
		t.Fatalf("clarity: want=%d got=%d", BaseScore, got.ClarityScore)
	}
	if got.TotalAssessments != 0 {
		t.Fatalf("total: want=0 got=%d", got.TotalAssessments)
	}
	if got.RecentActivity == nil || len(got.RecentActivity) != 0 {
		t.Fatalf("recent: want empty non-nil slice got=%v", got.RecentActivity)
	}
	if got.PendingActions != 1 {
		t.Fatalf("pending: want=1 got=%d", got.PendingActions)
	}
}

func TestComputeExampleFromTopMatches(t *testing.T) {
	now := time.Now()
	history := []*domain.AssessmentRecord{
		assessmentWith(now, 40, 80, 10),
		assessmentWith(now.Add(-time.Hour), 60),
	}
	got := Compute(history, 2)
	// 10 + 15*2 + 0.4*70
	if got.ClarityScore != 68 {
		t.Fatalf("clarity: want=68 got=%d", got.ClarityScore)
	}
	if got.PendingActions != 0 {
		t.Fatalf("pending: want=0 got=%d", got.PendingActions)
	}
	if got.SavedCount != 2 {
		t.Fatalf("saved: want=2 got=%d", got.SavedCount)
	}
}

func TestComputeCapsAtMax(t *testing.T) {
	now := time.Now()
	var history []*domain.AssessmentRecord
	for i := 0; i < 7; i++ {
		history = append(history, assessmentWith(now.Add(-time.Duration(i)*time.Minute), 100))
	}
	if got := Compute(history, 0).ClarityScore; got != MaxScore {
		t.Fatalf("clarity: want=%d got=%d", MaxScore, got)
	}
}

func TestComputeAssessmentWithoutRecommendationsCountsAsZero(t *testing.T) {
	now := time.Now()
	history := []*domain.AssessmentRecord{
		assessmentWith(now),
		assessmentWith(now.Add(-time.Minute), 90),
	}
	got := Compute(history, 0)
	// 10 + 30 + 0.4*45 = 58
	if got.ClarityScore != 58 {
		t.Fatalf("clarity: want=58 got=%d", got.ClarityScore)
	}
	if got.RecentActivity[0].Role != PlaceholderRole || got.RecentActivity[0].Match != NoMatch {
		t.Fatalf("placeholder entry: got=%+v", got.RecentActivity[0])
	}
	if got.PendingActions != 1 {
		t.Fatalf("pending: want=1 got=%d", got.PendingActions)
	}
}

func TestRecentActivityOrderAndLimit(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	history := []*domain.AssessmentRecord{
		assessmentWith(base.Add(1*time.Hour), 50),
		assessmentWith(base.Add(4*time.Hour), 70),
		assessmentWith(base.Add(2*time.Hour), 30),
		assessmentWith(base.Add(3*time.Hour), 90),
	}
	got := RecentActivity(history)
	if len(got) != RecentLimit {
		t.Fatalf("len: want=%d got=%d", RecentLimit, len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].Date.After(got[i-1].Date) {
			t.Fatalf("not descending at %d: %v after %v", i, got[i].Date, got[i-1].Date)
		}
	}
	if got[0].Match != "70%" || got[1].Match != "90%" {
		t.Fatalf("matches: got=%q,%q", got[0].Match, got[1].Match)
	}
	if history[0].CreatedAt != base.Add(1*time.Hour) {
		t.Fatalf("input slice was reordered")
	}
}

func TestTopRecommendationDoesNotMutate(t *testing.T) {
	a := assessmentWith(time.Now(), 20, 95, 95, 10)
	top, ok := TopRecommendation(a)
	if !ok || top.MatchScore != 95 || top.Title != "B-role" {
		t.Fatalf("top: got=%+v ok=%v", top, ok)
	}
	if a.Recommendations[0].MatchScore != 20 {
		t.Fatalf("recommendations were reordered")
	}
}

func TestScoreBoundsProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300
	properties := gopter.NewProperties(parameters)

	properties.Property("clarity score stays within [10,100]", prop.ForAll(
		func(tops []int) bool {
			s := Score(tops)
			return s >= BaseScore && s <= MaxScore
		},
		gen.SliceOf(gen.IntRange(domain.MinMatchScore, domain.MaxMatchScore)),
	))

	properties.Property("recent activity never exceeds the limit", prop.ForAll(
		func(n int) bool {
			var history []*domain.AssessmentRecord
			for i := 0; i < n; i++ {
				history = append(history, assessmentWith(time.Unix(int64(i), 0), i%101))
			}
			return len(RecentActivity(history)) <= RecentLimit
		},
		gen.IntRange(0, 20),
	))

	properties.TestingRun(t)
}
