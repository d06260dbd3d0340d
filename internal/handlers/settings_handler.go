package handlers

import (
	"encoding/json"
	"net/http"

	"mgaBack/internal/models"
	"mgaBack/internal/repositories"
)

type SettingsHandler struct {
	Repo *repositories.SettingsRepository
}

func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	settings := h.Repo.Get(r.Context(), currentUserID(r))
	json.NewEncoder(w).Encode(settings)
}

func (h *SettingsHandler) Save(w http.ResponseWriter, r *http.Request) {
	var settings models.Settings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	h.Repo.Save(r.Context(), currentUserID(r), settings)
	json.NewEncoder(w).Encode(settings)
}
