package repositories

import (
	"context"
	"fmt"
	"strings"

	"mgaBack/internal/models"
)

// SavedSearchesRepository stores named filter snapshots per user.
type SavedSearchesRepository struct {
	store KeyValueStore
}

func NewSavedSearchesRepository(store KeyValueStore) *SavedSearchesRepository {
	return &SavedSearchesRepository{store: store}
}

func savedSearchesKey(userID int) string {
	return fmt.Sprintf("mga365:saved_searches:%d", userID)
}

func (r *SavedSearchesRepository) GetAll(ctx context.Context, userID int) []models.SavedSearch {
	var searches []models.SavedSearch
	loadJSON(ctx, r.store, savedSearchesKey(userID), &searches)
	return searches
}

// Save upserts a search by case-insensitive name.
func (r *SavedSearchesRepository) Save(ctx context.Context, userID int, search models.SavedSearch) []models.SavedSearch {
	searches := r.GetAll(ctx, userID)
	replaced := false
	for i, s := range searches {
		if strings.EqualFold(s.Name, search.Name) {
			searches[i] = search
			replaced = true
			break
		}
	}
	if !replaced {
		searches = append(searches, search)
	}
	saveJSON(ctx, r.store, savedSearchesKey(userID), searches)
	return searches
}

func (r *SavedSearchesRepository) Delete(ctx context.Context, userID int, name string) []models.SavedSearch {
	searches := r.GetAll(ctx, userID)
	kept := searches[:0]
	for _, s := range searches {
		if s.Name != name {
			kept = append(kept, s)
		}
	}
	saveJSON(ctx, r.store, savedSearchesKey(userID), kept)
	return kept
}
