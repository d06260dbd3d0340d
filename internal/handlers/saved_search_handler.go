package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"mgaBack/internal/models"
	"mgaBack/internal/repositories"
)

type SavedSearchHandler struct {
	Repo *repositories.SavedSearchesRepository
}

func (h *SavedSearchHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := currentUserID(r)
	json.NewEncoder(w).Encode(h.Repo.GetAll(r.Context(), userID))
}

// Save upserts a named filter snapshot for the signed-in user.
func (h *SavedSearchHandler) Save(w http.ResponseWriter, r *http.Request) {
	userID := currentUserID(r)
	var search models.SavedSearch
	if err := json.NewDecoder(r.Body).Decode(&search); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	search.Name = strings.TrimSpace(search.Name)
	if search.Name == "" {
		http.Error(w, "Search name is required", http.StatusBadRequest)
		return
	}
	searches := h.Repo.Save(r.Context(), userID, search)
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(searches)
}

func (h *SavedSearchHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := currentUserID(r)
	name := getParam(r, "name")
	if name == "" {
		http.Error(w, "Search name is required", http.StatusBadRequest)
		return
	}
	json.NewEncoder(w).Encode(h.Repo.Delete(r.Context(), userID, name))
}
