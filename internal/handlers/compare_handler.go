package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"mgaBack/internal/models"
	"mgaBack/internal/services"
)

type CompareHandler struct {
	Service *services.CompareService
}

func (h *CompareHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	userID := currentUserID(r)
	propertyID, err := getIntParam(r, "property_id")
	if err != nil {
		http.Error(w, "Invalid property_id", http.StatusBadRequest)
		return
	}
	ids, err := h.Service.Toggle(r.Context(), userID, propertyID)
	if err != nil {
		if errors.Is(err, models.ErrPropertyNotFound) {
			http.Error(w, "Property not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	json.NewEncoder(w).Encode(map[string][]int{"compare_ids": ids})
}

func (h *CompareHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := currentUserID(r)
	json.NewEncoder(w).Encode(h.Service.Compare(r.Context(), userID))
}

func (h *CompareHandler) Clear(w http.ResponseWriter, r *http.Request) {
	userID := currentUserID(r)
	h.Service.Clear(r.Context(), userID)
	w.WriteHeader(http.StatusOK)
}
