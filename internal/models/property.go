package models

import (
	"time"
)

type PropertyType = string

const (
	PropertyTypeHouse     PropertyType = "Nhà"
	PropertyTypeLand      PropertyType = "Đất"
	PropertyTypeApartment PropertyType = "Căn hộ"
)

type ListingType = string

const (
	ListingTypeSale ListingType = "Bán"
	ListingTypeRent ListingType = "Cho Thuê"
)

type PropertySource = string

const (
	SourceIndividual PropertySource = "Ký gửi cá nhân"
	SourcePartner    PropertySource = "Đối tác MGA"
	SourceAggregated PropertySource = "Nguồn tổng hợp"
)

const (
	VisibilityPublic = "public"
	VisibilityGroup  = "group"
)

// PublicGroup marks a property as not belonging to any collaborator group.
const PublicGroup = "Công khai"

type TransactionDetails struct {
	LegalStatus string `json:"legal_status"`
	YearBuilt   int    `json:"year_built,omitempty"`
	Description string `json:"description"`
}

type PricePoint struct {
	Date  time.Time `json:"date"`
	Price float64   `json:"price"`
}

type Property struct {
	ID                 int                `json:"id"`
	Title              string             `json:"title"`
	Address            string             `json:"address"`
	Price              float64            `json:"price"` // 0 means "contact for price"
	RentPrice          float64            `json:"rent_price,omitempty"`
	ListingType        ListingType        `json:"listing_type"`
	Source             PropertySource     `json:"source"`
	Bedrooms           int                `json:"bedrooms"`
	Bathrooms          int                `json:"bathrooms"`
	Area               float64            `json:"area"` // square meters
	ImageURLs          []string           `json:"image_urls"`
	CoverImageURL      string             `json:"cover_image_url"`
	Type               PropertyType       `json:"type"`
	Featured           bool               `json:"featured,omitempty"`
	Lat                *float64           `json:"lat,omitempty"`
	Lng                *float64           `json:"lng,omitempty"`
	TransactionDetails TransactionDetails `json:"transaction_details"`
	DatePosted         time.Time          `json:"date_posted"`
	BuildingName       string             `json:"building_name,omitempty"`
	FloorNumber        int                `json:"floor_number,omitempty"`
	ApartmentNumber    string             `json:"apartment_number,omitempty"`
	CollaboratorName   string             `json:"collaborator_name,omitempty"`
	Group              string             `json:"group,omitempty"`
	Visibility         string             `json:"visibility,omitempty"`
	PriceHistory       []PricePoint       `json:"price_history,omitempty"`
}

// HasLocation reports whether the property can participate in map-bounds
// filtering. Properties without coordinates stay in list views.
func (p Property) HasLocation() bool {
	return p.Lat != nil && p.Lng != nil
}

type SortOrder string

const (
	SortPriceAsc  SortOrder = "price-asc"
	SortPriceDesc SortOrder = "price-desc"
	SortAreaDesc  SortOrder = "area-desc"
	SortAreaAsc   SortOrder = "area-asc"
	SortDateDesc  SortOrder = "date-desc"
	SortDateAsc   SortOrder = "date-asc"
	SortDefault   SortOrder = "default"
)

type DateRange string

const (
	DateRangeAll DateRange = "all"
	DateRange24h DateRange = "24h"
	DateRange7d  DateRange = "7d"
	DateRange30d DateRange = "30d"
)

// Days returns the size of the recency window, 0 meaning unbounded.
func (r DateRange) Days() int {
	switch r {
	case DateRange24h:
		return 1
	case DateRange7d:
		return 7
	case DateRange30d:
		return 30
	}
	return 0
}

// FilterCriteria is a value object: handlers build a fresh snapshot for every
// search instead of mutating a shared one. Price bounds stay strings so that
// malformed client input degrades to "no bound" rather than an error.
// LegalStatus and the year-built bounds are carried for saved searches but are
// not evaluated by the matching pipeline.
type FilterCriteria struct {
	Keyword           string    `json:"keyword"`
	Type              string    `json:"type"`         // "all" or a PropertyType
	ListingType       string    `json:"listing_type"` // "all" or a ListingType
	MinPrice          string    `json:"min_price"`
	MaxPrice          string    `json:"max_price"`
	MinRentPrice      string    `json:"min_rent_price"`
	MaxRentPrice      string    `json:"max_rent_price"`
	SortOrder         SortOrder `json:"sort_order"`
	Bedrooms          int       `json:"bedrooms"`
	Bathrooms         int       `json:"bathrooms"`
	Featured          bool      `json:"featured"`
	ShowOnlyFavorites bool      `json:"show_only_favorites"`
	LegalStatus       string    `json:"legal_status"`
	MinYearBuilt      *int      `json:"min_year_built"`
	MaxYearBuilt      *int      `json:"max_year_built"`
	MinArea           *float64  `json:"min_area"`
	MaxArea           *float64  `json:"max_area"`
	Source            string    `json:"source"` // "all" or a PropertySource
	Region            string    `json:"region"` // "all" or an address fragment
	DatePostedRange   DateRange `json:"date_posted_range"`
}

// DefaultFilterCriteria matches the initial state of the search form.
func DefaultFilterCriteria() FilterCriteria {
	return FilterCriteria{
		Type:            "all",
		ListingType:     "all",
		SortOrder:       SortDefault,
		LegalStatus:     "all",
		Source:          "all",
		Region:          "all",
		DatePostedRange: DateRangeAll,
	}
}

// QueryFilters is the partial criteria extracted from a natural-language
// search query. Nil fields were absent from the AI response and must leave
// the caller's active criteria untouched.
type QueryFilters struct {
	Location        *string  `json:"location"`
	Type            *string  `json:"type"`
	ListingType     *string  `json:"listingType"`
	MinPrice        *float64 `json:"minPrice"`
	MaxPrice        *float64 `json:"maxPrice"`
	MinRentPrice    *float64 `json:"minRentPrice"`
	MaxRentPrice    *float64 `json:"maxRentPrice"`
	MinArea         *float64 `json:"minArea"`
	MaxArea         *float64 `json:"maxArea"`
	Bedrooms        *int     `json:"bedrooms"`
	ResponseMessage string   `json:"responseMessage"`
}

type SavedSearch struct {
	Name    string         `json:"name"`
	Filters FilterCriteria `json:"filters"`
}

// MapBounds is the viewport rectangle reported by the mapping widget.
type MapBounds struct {
	South float64 `json:"south"`
	West  float64 `json:"west"`
	North float64 `json:"north"`
	East  float64 `json:"east"`
}

func (b MapBounds) Contains(lat, lng float64) bool {
	return lat >= b.South && lat <= b.North && lng >= b.West && lng <= b.East
}

// MapMarker is the projection handed to the mapping widget.
type MapMarker struct {
	ID          int      `json:"id"`
	Lat         float64  `json:"lat"`
	Lng         float64  `json:"lng"`
	Price       float64  `json:"price"`
	RentPrice   float64  `json:"rent_price,omitempty"`
	ListingType string   `json:"listing_type"`
	Type        string   `json:"type"`
	Featured    bool     `json:"featured"`
}

type PropertyListResponse struct {
	Properties []Property `json:"properties"`
	Total      int        `json:"total"`
	Page       int        `json:"page"`
	TotalPages int        `json:"total_pages"`
}

type AgentAnalysis struct {
	Strengths   string `json:"strengths"`
	Weaknesses  string `json:"weaknesses"`
	Potential   string `json:"potential"`
	SuitableFor string `json:"suitableFor"`
}

type Settings struct {
	AIFeatureEnabled bool   `json:"ai_feature_enabled"`
	APIKey           string `json:"api_key,omitempty"`
}
