package saved

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/careerpath/careerpath-backend/internal/data/repos/testutil"
	types "github.com/careerpath/careerpath-backend/internal/domain"
	"github.com/careerpath/careerpath-backend/internal/platform/dbctx"
)

func TestSavedResourceRepo(t *testing.T) {
	db := testutil.DB(t)
	repo := NewSavedResourceRepo(db, testutil.Logger(t))
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx}
	u := testutil.SeedUser(t, ctx, db, "saved@example.com")

	none, err := repo.FindUnique(dbc, u.ID, "rec-1")
	require.NoError(t, err)
	require.Nil(t, none)

	created, err := repo.Create(dbc, &types.SavedResource{
		UserID: u.ID, ResourceID: "rec-1", Type: types.RecommendationCareer, Title: "UX Designer", MatchScore: 90,
	})
	require.NoError(t, err)
	testutil.SeedSaved(t, ctx, db, u.ID, "rec-2", types.RecommendationDegree)

	found, err := repo.FindUnique(dbc, u.ID, "rec-1")
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Equal(t, created.ID, found.ID)

	careers, err := repo.CountByUserAndType(dbc, u.ID, types.RecommendationCareer)
	require.NoError(t, err)
	require.EqualValues(t, 1, careers)

	total, err := repo.CountByUser(dbc, u.ID)
	require.NoError(t, err)
	require.EqualValues(t, 2, total)

	_, err = repo.Create(dbc, &types.SavedResource{
		UserID: u.ID, ResourceID: "rec-1", Type: types.RecommendationCareer, Title: "dup",
	})
	require.Error(t, err, "(user, resource) is unique")

	require.NoError(t, repo.DeleteByID(dbc, created.ID))
	gone, err := repo.FindUnique(dbc, u.ID, "rec-1")
	require.NoError(t, err)
	require.Nil(t, gone)

	list, err := repo.ListByUser(dbc, u.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	empty, err := repo.ListByUser(dbc, uuid.New())
	require.NoError(t, err)
	require.Empty(t, empty)
}
