package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"mgaBack/internal/models"
	"mgaBack/internal/services"
)

type PropertyHandler struct {
	Service     *services.PropertyService
	UserService *services.UserService
}

// currentUser resolves the authenticated account, if any. Anonymous visitors
// still browse public listings.
func (h *PropertyHandler) currentUser(r *http.Request) *models.User {
	id := currentUserID(r)
	if id == 0 {
		return nil
	}
	user, err := h.UserService.GetUserByID(r.Context(), id)
	if err != nil {
		return nil
	}
	return &user
}

// Search runs the filter/sort/paginate pipeline over the collection.
func (h *PropertyHandler) Search(w http.ResponseWriter, r *http.Request) {
	req := services.PropertySearchRequest{Filters: models.DefaultFilterCriteria()}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	result := h.Service.Search(r.Context(), req, h.currentUser(r))
	json.NewEncoder(w).Encode(result)
}

func (h *PropertyHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := getIntParam(r, "id")
	if err != nil {
		http.Error(w, "Invalid property id", http.StatusBadRequest)
		return
	}
	property, err := h.Service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrPropertyNotFound) {
			http.Error(w, "Property not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to get property", http.StatusInternalServerError)
		return
	}

	// Group-restricted listings stay hidden outside their group.
	if property.Visibility == models.VisibilityGroup {
		user := h.currentUser(r)
		if user == nil || user.Group != property.Group {
			http.Error(w, "Property not found", http.StatusNotFound)
			return
		}
	}
	json.NewEncoder(w).Encode(property)
}

func (h *PropertyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var property models.Property
	if err := json.NewDecoder(r.Body).Decode(&property); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if property.Title == "" || property.Address == "" {
		http.Error(w, "Title and address are required", http.StatusBadRequest)
		return
	}
	created := h.Service.Add(r.Context(), property)
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

// Delete removes a listing. An unknown id deletes nothing and still returns
// 200: the collection ends in the requested state either way.
func (h *PropertyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getIntParam(r, "id")
	if err != nil {
		http.Error(w, "Invalid property id", http.StatusBadRequest)
		return
	}
	h.Service.Delete(r.Context(), id)
	w.WriteHeader(http.StatusOK)
}

func (h *PropertyHandler) ToggleFeatured(w http.ResponseWriter, r *http.Request) {
	id, err := getIntParam(r, "id")
	if err != nil {
		http.Error(w, "Invalid property id", http.StatusBadRequest)
		return
	}
	property, err := h.Service.ToggleFeatured(r.Context(), id)
	if err != nil {
		http.Error(w, "Property not found", http.StatusNotFound)
		return
	}
	json.NewEncoder(w).Encode(property)
}

func (h *PropertyHandler) GetRegions(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(h.Service.AvailableRegions(r.Context()))
}

func (h *PropertyHandler) GetGroups(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(h.Service.AvailableGroups(r.Context()))
}

// GetMarkers serves the map projections for the current filter state.
func (h *PropertyHandler) GetMarkers(w http.ResponseWriter, r *http.Request) {
	filters := models.DefaultFilterCriteria()
	if r.Body != nil {
		// Body is optional; an empty one keeps the defaults.
		_ = json.NewDecoder(r.Body).Decode(&filters)
	}
	markers := h.Service.Markers(r.Context(), filters, h.currentUser(r))
	json.NewEncoder(w).Encode(markers)
}

// GetByCollaborator lists the properties attached to a collaborator name.
func (h *PropertyHandler) GetByCollaborator(w http.ResponseWriter, r *http.Request) {
	name := getParam(r, "name")
	if name == "" {
		http.Error(w, "Collaborator name is required", http.StatusBadRequest)
		return
	}
	json.NewEncoder(w).Encode(h.Service.GetByCollaborator(r.Context(), name))
}

// GetByGroup lists a group's portfolio; leaders see their own group only.
func (h *PropertyHandler) GetByGroup(w http.ResponseWriter, r *http.Request) {
	group := getParam(r, "group")
	if group == "" {
		http.Error(w, "Group is required", http.StatusBadRequest)
		return
	}
	user := h.currentUser(r)
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	if user.Role != models.RoleAdmin && user.Group != group {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}
	json.NewEncoder(w).Encode(h.Service.GetByGroup(r.Context(), group))
}
