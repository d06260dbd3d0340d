package repositories

import (
	"context"
	"fmt"

	"mgaBack/internal/models"
)

// SettingsRepository stores the per-user AI feature flag and optional API key.
type SettingsRepository struct {
	store KeyValueStore
}

func NewSettingsRepository(store KeyValueStore) *SettingsRepository {
	return &SettingsRepository{store: store}
}

func settingsKey(userID int) string {
	return fmt.Sprintf("mga365:settings:%d", userID)
}

// Get returns the stored settings, defaulting to AI enabled with no key.
func (r *SettingsRepository) Get(ctx context.Context, userID int) models.Settings {
	settings := models.Settings{AIFeatureEnabled: true}
	loadJSON(ctx, r.store, settingsKey(userID), &settings)
	return settings
}

func (r *SettingsRepository) Save(ctx context.Context, userID int, settings models.Settings) {
	saveJSON(ctx, r.store, settingsKey(userID), settings)
}
