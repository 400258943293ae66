package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forkcast/backend/internal/models"
)

func TestGetProfileNotFound(t *testing.T) {
	profiles := NewProfileService(newTestDB(t))
	_, err := profiles.GetProfile(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestUpdateProfileCreatesAndReplaces(t *testing.T) {
	profiles := NewProfileService(newTestDB(t))
	ctx := context.Background()
	userID := uuid.New()

	created, err := profiles.UpdateProfile(ctx, userID, []string{"vegan"}, []string{"Mexican"})
	require.NoError(t, err)
	assert.Equal(t, models.JSONBStringArray{"vegan"}, created.DietaryRestrictions)

	updated, err := profiles.UpdateProfile(ctx, userID, []string{"vegan", "gluten"}, nil)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID, "update must not create a second profile")
	assert.Equal(t, models.JSONBStringArray{"vegan", "gluten"}, updated.DietaryRestrictions)
	assert.Empty(t, updated.FavoriteCuisines)
}

func TestFavoritesRoundTrip(t *testing.T) {
	favorites := NewFavoritesService(newTestDB(t))
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, favorites.AddFavorite(ctx, userID, "r2"))
	require.NoError(t, favorites.AddFavorite(ctx, userID, "r1"))
	// repeat add is a no-op
	require.NoError(t, favorites.AddFavorite(ctx, userID, "r1"))

	ids, err := favorites.GetFavorites(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, []string{"r1", "r2"}, ids)

	require.NoError(t, favorites.RemoveFavorite(ctx, userID, "r1"))
	ids, err = favorites.GetFavorites(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, []string{"r2"}, ids)
}

func TestUsersWhoFavoritedExcludesCaller(t *testing.T) {
	favorites := NewFavoritesService(newTestDB(t))
	ctx := context.Background()
	caller, other := uuid.New(), uuid.New()

	require.NoError(t, favorites.AddFavorite(ctx, caller, "r1"))
	require.NoError(t, favorites.AddFavorite(ctx, other, "r1"))

	pairs, err := favorites.UsersWhoFavorited(ctx, []string{"r1"}, caller)
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.Equal(t, other, pairs[0].UserID)
}
