package aggregates

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/careerpath/careerpath-backend/internal/data/repos/testutil"
	"github.com/careerpath/careerpath-backend/internal/domain"
	"github.com/careerpath/careerpath-backend/internal/platform/dbctx"
)

func TestSavedResourceToggleDuplicateCreateIsSaved(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	u := testutil.SeedUser(t, ctx, db, "dup@example.com")
	existing := testutil.SeedSaved(t, ctx, db, u.ID, "career-dup", domain.RecommendationCareer)

	agg := NewSavedResourceAggregate(SavedResourceAggregateDeps{BaseDeps: BaseDeps{DB: db, Log: testutil.Logger(t)}}).(*savedResourceAggregate)
	err := executeWrite(ctx, agg.deps.BaseDeps, "saved.dup", func(dbc dbctx.Context) error {
		created, dup, err := agg.createOnce(dbc, &domain.SavedResource{
			UserID:     u.ID,
			ResourceID: "career-dup",
			Type:       domain.RecommendationCareer,
			Title:      "again",
		})
		require.NoError(t, err)
		require.True(t, dup)
		require.Equal(t, existing.ID, created.ID)
		return nil
	})
	require.NoError(t, err)
}

