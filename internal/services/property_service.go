package services

import (
	"context"

	"mgaBack/internal/models"
	"mgaBack/internal/repositories"
)

// PropertySearchRequest is one search over the listing collection. Bounds is
// set when the "search this area" map mode is active.
type PropertySearchRequest struct {
	Filters  models.FilterCriteria `json:"filters"`
	Bounds   *models.MapBounds     `json:"bounds,omitempty"`
	Page     int                   `json:"page"`
	PageSize int                   `json:"page_size"`
}

type PropertyService struct {
	PropertyRepo  *repositories.PropertyRepository
	FavoritesRepo *repositories.FavoritesRepository
}

// Search runs the full pipeline: visibility and criteria filtering, optional
// map-bounds narrowing, sorting, then pagination. Derived views are always
// recomputed from the current collection; nothing is cached between calls.
// A page that ran past the end of a shrunken result set is clamped back.
func (s *PropertyService) Search(ctx context.Context, req PropertySearchRequest, currentUser *models.User) models.PropertyListResponse {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 {
		req.PageSize = 12
	}

	var favoriteIDs map[int]bool
	if currentUser != nil {
		favoriteIDs = s.FavoritesRepo.GetFavoriteIDs(ctx, currentUser.ID)
	}

	var filtered []models.Property
	for _, p := range s.PropertyRepo.GetAll(ctx) {
		if MatchesFilters(p, req.Filters, currentUser, favoriteIDs) {
			filtered = append(filtered, p)
		}
	}
	if req.Bounds != nil {
		filtered = FilterByBounds(filtered, *req.Bounds)
	}

	sorted := SortProperties(filtered, req.Filters.SortOrder)

	totalPages := TotalPages(len(sorted), req.PageSize)
	page := ClampPage(req.Page, totalPages)

	return models.PropertyListResponse{
		Properties: Paginate(sorted, page, req.PageSize),
		Total:      len(sorted),
		Page:       page,
		TotalPages: totalPages,
	}
}

func (s *PropertyService) GetByID(ctx context.Context, id int) (models.Property, error) {
	return s.PropertyRepo.GetByID(ctx, id)
}

func (s *PropertyService) Add(ctx context.Context, p models.Property) models.Property {
	return s.PropertyRepo.Add(ctx, p)
}

func (s *PropertyService) Delete(ctx context.Context, id int) {
	s.PropertyRepo.Delete(ctx, id)
}

func (s *PropertyService) ToggleFeatured(ctx context.Context, id int) (models.Property, error) {
	return s.PropertyRepo.ToggleFeatured(ctx, id)
}

func (s *PropertyService) AvailableRegions(ctx context.Context) []string {
	return s.PropertyRepo.AvailableRegions(ctx)
}

func (s *PropertyService) AvailableGroups(ctx context.Context) []string {
	return s.PropertyRepo.AvailableGroups(ctx)
}

// GetByCollaborator returns the listings a collaborator is responsible for.
// The match is by display name; missing accounts simply yield no listings.
func (s *PropertyService) GetByCollaborator(ctx context.Context, name string) []models.Property {
	var out []models.Property
	for _, p := range s.PropertyRepo.GetAll(ctx) {
		if p.CollaboratorName == name {
			out = append(out, p)
		}
	}
	return out
}

// GetByGroup returns the listings belonging to a leader's group.
func (s *PropertyService) GetByGroup(ctx context.Context, group string) []models.Property {
	var out []models.Property
	for _, p := range s.PropertyRepo.GetAll(ctx) {
		if p.Group == group {
			out = append(out, p)
		}
	}
	return out
}

// Markers projects the current collection for the mapping widget. Properties
// without coordinates are skipped; the widget cannot place them.
func (s *PropertyService) Markers(ctx context.Context, filters models.FilterCriteria, currentUser *models.User) []models.MapMarker {
	var favoriteIDs map[int]bool
	if currentUser != nil {
		favoriteIDs = s.FavoritesRepo.GetFavoriteIDs(ctx, currentUser.ID)
	}
	var markers []models.MapMarker
	for _, p := range s.PropertyRepo.GetAll(ctx) {
		if !p.HasLocation() {
			continue
		}
		if !MatchesFilters(p, filters, currentUser, favoriteIDs) {
			continue
		}
		markers = append(markers, models.MapMarker{
			ID:          p.ID,
			Lat:         *p.Lat,
			Lng:         *p.Lng,
			Price:       p.Price,
			RentPrice:   p.RentPrice,
			ListingType: p.ListingType,
			Type:        p.Type,
			Featured:    p.Featured,
		})
	}
	return markers
}
