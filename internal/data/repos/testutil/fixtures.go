package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/careerpath/careerpath-backend/internal/domain"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:        uuid.New(),
		Email:     email,
		Password:  "pw",
		FirstName: "A",
		LastName:  "B",
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

// Rec builds a recommendation for seeding.
func Rec(t types.RecommendationType, title string, score int) types.Recommendation {
	return types.Recommendation{
		Type:        t,
		Title:       title,
		MatchScore:  score,
		MatchReason: "reason",
		Overview:    "overview",
		Skills:      datatypes.JSONSlice[string]{"skill"},
		Difficulty:  types.DifficultyModerate,
		FutureScope: types.DemandHigh,
	}
}

func SeedAssessment(tb testing.TB, ctx context.Context, tx *gorm.DB, userID *uuid.UUID, createdAt time.Time, recs ...types.Recommendation) *types.AssessmentRecord {
	tb.Helper()
	for i := range recs {
		recs[i].Position = i
	}
	a := &types.AssessmentRecord{
		UserID:          userID,
		Answers:         datatypes.JSON([]byte(`{"interests":"Art & Design"}`)),
		ResultSummary:   "summary",
		Recommendations: recs,
		CreatedAt:       createdAt,
	}
	if err := tx.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed assessment: %v", err)
	}
	return a
}

func SeedSaved(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, resourceID string, t types.RecommendationType) *types.SavedResource {
	tb.Helper()
	s := &types.SavedResource{
		UserID:     userID,
		ResourceID: resourceID,
		Type:       t,
		Title:      "title " + resourceID,
		MatchScore: 80,
		Data:       datatypes.JSON([]byte(`{}`)),
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed saved resource: %v", err)
	}
	return s
}
