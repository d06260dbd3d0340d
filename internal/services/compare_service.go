package services

import (
	"context"
	"fmt"
	"sync"

	"mgaBack/internal/models"
	"mgaBack/internal/repositories"
)

// MaxCompareItems caps the comparison tray.
const MaxCompareItems = 4

// CompareService tracks each user's comparison set and derives the
// "best value" highlights over it. The set is session state, not persisted.
type CompareService struct {
	PropertyRepo *repositories.PropertyRepository

	mu   sync.Mutex
	sets map[int]map[int]bool // user id -> compared property ids
}

func NewCompareService(propertyRepo *repositories.PropertyRepository) *CompareService {
	return &CompareService{
		PropertyRepo: propertyRepo,
		sets:         make(map[int]map[int]bool),
	}
}

// Toggle adds or removes a property from the user's comparison set. Adding
// beyond the cap is rejected.
func (s *CompareService) Toggle(ctx context.Context, userID, propertyID int) ([]int, error) {
	if _, err := s.PropertyRepo.GetByID(ctx, propertyID); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	set := s.sets[userID]
	if set == nil {
		set = make(map[int]bool)
		s.sets[userID] = set
	}
	if set[propertyID] {
		delete(set, propertyID)
	} else {
		if len(set) >= MaxCompareItems {
			return nil, fmt.Errorf("compare set is limited to %d properties", MaxCompareItems)
		}
		set[propertyID] = true
	}

	ids := make([]int, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *CompareService) Clear(ctx context.Context, userID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sets, userID)
}

// CompareResult carries the compared listings and the ids of the winners per
// dimension; a nil winner means fewer than two listings qualified.
type CompareResult struct {
	Properties      []models.Property `json:"properties"`
	BestPriceID     *int              `json:"best_price_id"`
	BestAreaID      *int              `json:"best_area_id"`
	BestPricePerSqm *int              `json:"best_price_per_sqm_id"`
}

func (s *CompareService) Compare(ctx context.Context, userID int) CompareResult {
	s.mu.Lock()
	set := s.sets[userID]
	ids := make(map[int]bool, len(set))
	for id := range set {
		ids[id] = true
	}
	s.mu.Unlock()

	var compared []models.Property
	for _, p := range s.PropertyRepo.GetAll(ctx) {
		if ids[p.ID] {
			compared = append(compared, p)
		}
	}

	var salePrices []models.Property
	var perSqm []models.Property
	for _, p := range compared {
		if p.ListingType == models.ListingTypeSale {
			salePrices = append(salePrices, p)
			if p.Price > 0 && p.Area > 0 {
				perSqm = append(perSqm, p)
			}
		}
	}

	return CompareResult{
		Properties:      compared,
		BestPriceID:     bestPropertyID(salePrices, func(p models.Property) float64 { return p.Price }, false),
		BestAreaID:      bestPropertyID(compared, func(p models.Property) float64 { return p.Area }, true),
		BestPricePerSqm: bestPropertyID(perSqm, func(p models.Property) float64 { return p.Price / p.Area }, false),
	}
}

// bestPropertyID picks the listing with the extreme value of valueFn among
// those where it is positive. With fewer than two candidates there is nothing
// to highlight.
func bestPropertyID(props []models.Property, valueFn func(models.Property) float64, max bool) *int {
	var valid []models.Property
	for _, p := range props {
		if valueFn(p) > 0 {
			valid = append(valid, p)
		}
	}
	if len(valid) < 2 {
		return nil
	}
	best := valid[0]
	for _, p := range valid[1:] {
		v := valueFn(p)
		if (max && v > valueFn(best)) || (!max && v < valueFn(best)) {
			best = p
		}
	}
	id := best.ID
	return &id
}
