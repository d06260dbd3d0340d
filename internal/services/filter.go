package services

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"mgaBack/internal/models"
)

// MatchesFilters decides whether a single property passes the active criteria.
// It is a pure conjunction of independent predicates; malformed numeric bounds
// degrade to "no bound" instead of failing the property.
func MatchesFilters(p models.Property, f models.FilterCriteria, currentUser *models.User, favoriteIDs map[int]bool) bool {
	return MatchesFiltersAt(p, f, currentUser, favoriteIDs, time.Now())
}

// MatchesFiltersAt is MatchesFilters with an explicit reference time for the
// recency window.
func MatchesFiltersAt(p models.Property, f models.FilterCriteria, currentUser *models.User, favoriteIDs map[int]bool, now time.Time) bool {
	// Group-restricted listings are only visible to members of that group.
	if p.Visibility == models.VisibilityGroup {
		if currentUser == nil || currentUser.Group != p.Group {
			return false
		}
	}

	keyword := strings.ToLower(strings.TrimSpace(f.Keyword))
	if keyword != "" {
		title := strings.ToLower(p.Title)
		address := strings.ToLower(p.Address)
		if !strings.Contains(title, keyword) && !strings.Contains(address, keyword) {
			return false
		}
	}

	if f.Type != "all" && p.Type != f.Type {
		return false
	}
	if f.Region != "all" && !strings.Contains(p.Address, f.Region) {
		return false
	}
	if f.ListingType != "all" && p.ListingType != f.ListingType {
		return false
	}

	if f.ListingType == models.ListingTypeSale || f.ListingType == "all" {
		if min, ok := parseBound(f.MinPrice); ok && p.Price < min {
			return false
		}
		// Zero price means "contact for price" and is exempt from the upper bound.
		if max, ok := parseBound(f.MaxPrice); ok && p.Price > max && p.Price > 0 {
			return false
		}
	}

	if f.ListingType == models.ListingTypeRent || f.ListingType == "all" {
		if p.ListingType == models.ListingTypeRent {
			if min, ok := parseBound(f.MinRentPrice); ok && p.RentPrice < min {
				return false
			}
			if max, ok := parseBound(f.MaxRentPrice); ok && p.RentPrice > max && p.RentPrice > 0 {
				return false
			}
		}
	}

	if f.Bedrooms > 0 && p.Bedrooms < f.Bedrooms {
		return false
	}
	if f.Bathrooms > 0 && p.Bathrooms < f.Bathrooms {
		return false
	}
	if f.MinArea != nil && p.Area < *f.MinArea {
		return false
	}
	if f.MaxArea != nil && p.Area > *f.MaxArea {
		return false
	}
	if f.Featured && !p.Featured {
		return false
	}
	if f.ShowOnlyFavorites && !favoriteIDs[p.ID] {
		return false
	}
	if f.Source != "all" && p.Source != f.Source {
		return false
	}

	if days := f.DatePostedRange.Days(); days > 0 {
		elapsed := now.Sub(p.DatePosted)
		if elapsed < 0 {
			elapsed = -elapsed
		}
		diffDays := int(math.Ceil(elapsed.Hours() / 24))
		if diffDays > days {
			return false
		}
	}

	return true
}

// parseBound reads a numeric filter bound. Empty or malformed input means the
// bound is absent.
func parseBound(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// effectivePriceAsc is the sort key for ascending price: the first non-zero of
// sale price and rent price, with "contact for price" listings pushed last.
func effectivePriceAsc(p models.Property) float64 {
	if p.Price > 0 {
		return p.Price
	}
	if p.RentPrice > 0 {
		return p.RentPrice
	}
	return math.Inf(1)
}

// effectivePriceDesc is the descending counterpart: priceless listings carry
// the smallest key, so they still sort last.
func effectivePriceDesc(p models.Property) float64 {
	if p.Price > 0 {
		return p.Price
	}
	return p.RentPrice
}

// SortProperties returns a stable-ordered copy of the input; the input slice
// is never mutated. The default order puts featured listings first and breaks
// ties by most recent posting date.
func SortProperties(properties []models.Property, order models.SortOrder) []models.Property {
	sorted := make([]models.Property, len(properties))
	copy(sorted, properties)

	switch order {
	case models.SortPriceAsc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return effectivePriceAsc(sorted[i]) < effectivePriceAsc(sorted[j])
		})
	case models.SortPriceDesc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return effectivePriceDesc(sorted[i]) > effectivePriceDesc(sorted[j])
		})
	case models.SortAreaDesc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Area > sorted[j].Area
		})
	case models.SortAreaAsc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Area < sorted[j].Area
		})
	case models.SortDateDesc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].DatePosted.After(sorted[j].DatePosted)
		})
	case models.SortDateAsc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].DatePosted.Before(sorted[j].DatePosted)
		})
	default:
		sort.SliceStable(sorted, func(i, j int) bool {
			if sorted[i].Featured != sorted[j].Featured {
				return sorted[i].Featured
			}
			return sorted[i].DatePosted.After(sorted[j].DatePosted)
		})
	}

	return sorted
}

// TotalPages computes ceil(count/pageSize) with a floor of one page.
func TotalPages(count, pageSize int) int {
	if pageSize < 1 {
		return 1
	}
	pages := (count + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// ClampPage pulls a stale page number back into range after the result set
// shrinks, so no out-of-range slice is ever requested.
func ClampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// Paginate returns the 1-indexed page of at most pageSize elements.
func Paginate(properties []models.Property, page, pageSize int) []models.Property {
	if pageSize < 1 || page < 1 {
		return nil
	}
	start := (page - 1) * pageSize
	if start >= len(properties) {
		return nil
	}
	end := start + pageSize
	if end > len(properties) {
		end = len(properties)
	}
	return properties[start:end]
}

// FilterByBounds keeps properties whose coordinates fall inside the viewport.
// Listings without coordinates never match a bounds search.
func FilterByBounds(properties []models.Property, bounds models.MapBounds) []models.Property {
	var out []models.Property
	for _, p := range properties {
		if p.HasLocation() && bounds.Contains(*p.Lat, *p.Lng) {
			out = append(out, p)
		}
	}
	return out
}
