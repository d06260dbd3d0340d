package repositories

import (
	"context"
	"testing"

	"mgaBack/internal/models"
)

func TestFavoritesRepository_Toggle(t *testing.T) {
	repo := NewFavoritesRepository(NewMemoryStore())
	ctx := context.Background()

	if liked := repo.Toggle(ctx, 3, 7); !liked {
		t.Fatal("first toggle should like")
	}
	if !repo.IsFavorite(ctx, 3, 7) {
		t.Fatal("favorite not recorded")
	}
	if liked := repo.Toggle(ctx, 3, 7); liked {
		t.Fatal("second toggle should unlike")
	}
	if repo.IsFavorite(ctx, 3, 7) {
		t.Fatal("favorite not removed")
	}
}

func TestFavoritesRepository_ScopedPerUser(t *testing.T) {
	repo := NewFavoritesRepository(NewMemoryStore())
	ctx := context.Background()

	repo.Toggle(ctx, 3, 2)
	if repo.IsFavorite(ctx, 4, 2) {
		t.Fatal("favorite leaked across users")
	}
	ids := repo.GetFavoriteIDs(ctx, 3)
	if len(ids) != 1 || !ids[2] {
		t.Fatalf("unexpected favorite set: %v", ids)
	}
}

func TestSavedSearchesRepository_UpsertByName(t *testing.T) {
	repo := NewSavedSearchesRepository(NewMemoryStore())
	ctx := context.Background()

	filters := models.DefaultFilterCriteria()
	filters.Type = models.PropertyTypeLand
	repo.Save(ctx, 3, models.SavedSearch{Name: "Đất Đại Từ", Filters: filters})

	filters.Region = "Huyện Đại Từ"
	searches := repo.Save(ctx, 3, models.SavedSearch{Name: "đất đại từ", Filters: filters})
	if len(searches) != 1 {
		t.Fatalf("case-insensitive upsert duplicated: %d entries", len(searches))
	}
	if searches[0].Filters.Region != "Huyện Đại Từ" {
		t.Fatalf("saved filters not replaced: %q", searches[0].Filters.Region)
	}
}

func TestSavedSearchesRepository_Delete(t *testing.T) {
	repo := NewSavedSearchesRepository(NewMemoryStore())
	ctx := context.Background()

	repo.Save(ctx, 3, models.SavedSearch{Name: "A", Filters: models.DefaultFilterCriteria()})
	repo.Save(ctx, 3, models.SavedSearch{Name: "B", Filters: models.DefaultFilterCriteria()})

	searches := repo.Delete(ctx, 3, "A")
	if len(searches) != 1 || searches[0].Name != "B" {
		t.Fatalf("unexpected searches after delete: %v", searches)
	}
}

func TestSettingsRepository_Defaults(t *testing.T) {
	repo := NewSettingsRepository(NewMemoryStore())
	ctx := context.Background()

	settings := repo.Get(ctx, 3)
	if !settings.AIFeatureEnabled {
		t.Fatal("AI feature should default to enabled")
	}

	settings.AIFeatureEnabled = false
	settings.APIKey = "user-key"
	repo.Save(ctx, 3, settings)

	stored := repo.Get(ctx, 3)
	if stored.AIFeatureEnabled {
		t.Fatal("saved setting not applied")
	}
	if stored.APIKey != "user-key" {
		t.Fatalf("api key not stored: %q", stored.APIKey)
	}
}
