package handlers

import (
	"encoding/json"
	"net/http"

	"mgaBack/internal/repositories"
)

type FavoritesHandler struct {
	Repo *repositories.FavoritesRepository
}

// Toggle flips the favorite state of a property for the signed-in user and
// reports the new state.
func (h *FavoritesHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	userID := currentUserID(r)
	propertyID, err := getIntParam(r, "property_id")
	if err != nil {
		http.Error(w, "Invalid property_id", http.StatusBadRequest)
		return
	}
	liked := h.Repo.Toggle(r.Context(), userID, propertyID)
	json.NewEncoder(w).Encode(map[string]bool{"liked": liked})
}

func (h *FavoritesHandler) IsFavorite(w http.ResponseWriter, r *http.Request) {
	userID := currentUserID(r)
	propertyID, err := getIntParam(r, "property_id")
	if err != nil {
		http.Error(w, "Invalid property_id", http.StatusBadRequest)
		return
	}
	liked := h.Repo.IsFavorite(r.Context(), userID, propertyID)
	json.NewEncoder(w).Encode(map[string]bool{"liked": liked})
}

func (h *FavoritesHandler) GetFavorites(w http.ResponseWriter, r *http.Request) {
	userID := currentUserID(r)
	set := h.Repo.GetFavoriteIDs(r.Context(), userID)
	ids := make([]int, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	json.NewEncoder(w).Encode(map[string][]int{"favorite_ids": ids})
}
