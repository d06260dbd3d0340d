package repositories

import (
	"context"
	"fmt"
)

// FavoritesRepository stores one favorite-id array per user, written through
// on every change.
type FavoritesRepository struct {
	store KeyValueStore
}

func NewFavoritesRepository(store KeyValueStore) *FavoritesRepository {
	return &FavoritesRepository{store: store}
}

func favoritesKey(userID int) string {
	return fmt.Sprintf("mga365:favorites:%d", userID)
}

// GetFavoriteIDs returns the user's favorites as a set. A missing or corrupt
// entry yields an empty set.
func (r *FavoritesRepository) GetFavoriteIDs(ctx context.Context, userID int) map[int]bool {
	var ids []int
	loadJSON(ctx, r.store, favoritesKey(userID), &ids)
	set := make(map[int]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

// Toggle flips the favorite state of a property and reports the new state.
func (r *FavoritesRepository) Toggle(ctx context.Context, userID, propertyID int) bool {
	set := r.GetFavoriteIDs(ctx, userID)
	liked := !set[propertyID]
	if liked {
		set[propertyID] = true
	} else {
		delete(set, propertyID)
	}
	ids := make([]int, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	saveJSON(ctx, r.store, favoritesKey(userID), ids)
	return liked
}

func (r *FavoritesRepository) IsFavorite(ctx context.Context, userID, propertyID int) bool {
	return r.GetFavoriteIDs(ctx, userID)[propertyID]
}
