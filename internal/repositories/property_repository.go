package repositories

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"mgaBack/internal/models"
)

const propertiesKey = "mga365:properties"

// PropertyRepository holds the property collection in memory and shadows every
// mutation to the key-value store. The collection is rehydrated from the store
// on startup so listings survive restarts.
type PropertyRepository struct {
	mu    sync.RWMutex
	props []models.Property
	store KeyValueStore
}

func NewPropertyRepository(store KeyValueStore) *PropertyRepository {
	r := &PropertyRepository{store: store}
	var saved []models.Property
	if loadJSON(context.Background(), store, propertiesKey, &saved) && len(saved) > 0 {
		r.props = saved
	} else {
		r.props = seedProperties()
	}
	return r
}

func (r *PropertyRepository) persist(ctx context.Context) {
	saveJSON(ctx, r.store, propertiesKey, r.props)
}

// GetAll returns a copy of the collection.
func (r *PropertyRepository) GetAll(ctx context.Context) []models.Property {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Property, len(r.props))
	copy(out, r.props)
	return out
}

func (r *PropertyRepository) GetByID(ctx context.Context, id int) (models.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.props {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Property{}, models.ErrPropertyNotFound
}

// Add assigns the next id (max existing + 1, or 1 when empty), stamps the
// posting time, defaults the cover image to the first image, and records the
// first price-history entry. Price history is append-only and only written
// here; later mutations do not touch it.
func (r *PropertyRepository) Add(ctx context.Context, p models.Property) models.Property {
	r.mu.Lock()
	defer r.mu.Unlock()

	newID := 1
	for _, existing := range r.props {
		if existing.ID >= newID {
			newID = existing.ID + 1
		}
	}
	p.ID = newID
	p.DatePosted = time.Now()
	if p.CoverImageURL == "" && len(p.ImageURLs) > 0 {
		p.CoverImageURL = p.ImageURLs[0]
	}
	if p.Visibility == "" {
		p.Visibility = models.VisibilityPublic
	}
	p.PriceHistory = []models.PricePoint{{Date: p.DatePosted, Price: p.Price}}

	r.props = append(r.props, p)
	r.persist(ctx)
	return p
}

// Delete removes the property with the given id. Deleting an unknown id is a
// no-op and reports no error.
func (r *PropertyRepository) Delete(ctx context.Context, id int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.props[:0]
	for _, p := range r.props {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(r.props) {
		return
	}
	r.props = kept
	r.persist(ctx)
}

func (r *PropertyRepository) ToggleFeatured(ctx context.Context, id int) (models.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.props {
		if r.props[i].ID == id {
			r.props[i].Featured = !r.props[i].Featured
			r.persist(ctx)
			return r.props[i], nil
		}
	}
	return models.Property{}, models.ErrPropertyNotFound
}

// UpdateDescription overwrites the generated description of a listing.
func (r *PropertyRepository) UpdateDescription(ctx context.Context, id int, description string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.props {
		if r.props[i].ID == id {
			r.props[i].TransactionDetails.Description = description
			r.persist(ctx)
			return nil
		}
	}
	return models.ErrPropertyNotFound
}

// AvailableRegions derives the region list from addresses: the second-to-last
// comma fragment, kept when it names a city, district or town.
func (r *PropertyRepository) AvailableRegions(ctx context.Context) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[string]struct{})
	for _, p := range r.props {
		parts := strings.Split(p.Address, ",")
		if len(parts) < 2 {
			continue
		}
		region := strings.TrimSpace(parts[len(parts)-2])
		if region == "" {
			continue
		}
		if strings.HasPrefix(region, "TP.") || strings.HasPrefix(region, "Huyện") || strings.HasPrefix(region, "Thị xã") {
			seen[region] = struct{}{}
		}
	}
	regions := make([]string, 0, len(seen))
	for region := range seen {
		regions = append(regions, region)
	}
	sort.Strings(regions)
	return regions
}

// AvailableGroups lists distinct collaborator groups. Shipper and AEX exist
// even before any of their listings do.
func (r *PropertyRepository) AvailableGroups(ctx context.Context) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := map[string]struct{}{
		"Shipper": {},
		"AEX":     {},
	}
	for _, p := range r.props {
		if p.Group != "" && p.Group != models.PublicGroup {
			seen[p.Group] = struct{}{}
		}
	}
	groups := make([]string, 0, len(seen))
	for g := range seen {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	return groups
}

func fptr(v float64) *float64 { return &v }

func mustTime(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return t
}

func seedProperties() []models.Property {
	return []models.Property{
		{
			ID:            1,
			Title:         "Bán nhà 3 tầng, đường Quang Trung, gần trung tâm",
			Address:       "Phường Quang Trung, TP. Thái Nguyên",
			Price:         3500000000,
			ListingType:   models.ListingTypeSale,
			Source:        models.SourcePartner,
			Bedrooms:      4,
			Bathrooms:     3,
			Area:          200,
			ImageURLs:     []string{"https://picsum.photos/seed/prop1/800/600", "https://picsum.photos/seed/prop1_2/800/600"},
			CoverImageURL: "https://picsum.photos/seed/prop1/800/600",
			Type:          models.PropertyTypeHouse,
			Featured:      true,
			Lat:           fptr(21.5934),
			Lng:           fptr(105.8451),
			TransactionDetails: models.TransactionDetails{
				LegalStatus: "Sổ đỏ chính chủ",
				YearBuilt:   2018,
			},
			DatePosted:       mustTime("2024-07-28T10:00:00Z"),
			CollaboratorName: "Nguyễn Văn Hùng",
			Group:            "Nhóm A",
			Visibility:       models.VisibilityPublic,
			PriceHistory: []models.PricePoint{
				{Date: mustTime("2024-07-01T10:00:00Z"), Price: 3400000000},
				{Date: mustTime("2024-07-28T10:00:00Z"), Price: 3500000000},
			},
		},
		{
			ID:            2,
			Title:         "Đất nền dự án view hồ Núi Cốc",
			Address:       "Xã Tân Thái, Huyện Đại Từ, Thái Nguyên",
			Price:         1200000000,
			ListingType:   models.ListingTypeSale,
			Source:        models.SourceAggregated,
			Area:          150,
			ImageURLs:     []string{"https://picsum.photos/seed/prop2/800/600", "https://picsum.photos/seed/prop2_2/800/600"},
			CoverImageURL: "https://picsum.photos/seed/prop2/800/600",
			Type:          models.PropertyTypeLand,
			Lat:           fptr(21.601),
			Lng:           fptr(105.689),
			TransactionDetails: models.TransactionDetails{
				LegalStatus: "Hợp đồng mua bán",
			},
			DatePosted: mustTime("2024-07-25T14:30:00Z"),
			Group:      models.PublicGroup,
			Visibility: models.VisibilityPublic,
		},
		{
			ID:            3,
			Title:         "Căn hộ chung cư Tecco Elite City, 2 phòng ngủ",
			Address:       "Phường Thịnh Đán, TP. Thái Nguyên",
			Price:         1850000000,
			ListingType:   models.ListingTypeSale,
			Source:        models.SourcePartner,
			Bedrooms:      2,
			Bathrooms:     2,
			Area:          75,
			ImageURLs:     []string{"https://picsum.photos/seed/prop3/800/600", "https://picsum.photos/seed/prop3_2/800/600", "https://picsum.photos/seed/prop3_3/800/600", "https://picsum.photos/seed/prop3_4/800/600"},
			CoverImageURL: "https://picsum.photos/seed/prop3/800/600",
			Type:          models.PropertyTypeApartment,
			Featured:      true,
			Lat:           fptr(21.574),
			Lng:           fptr(105.821),
			TransactionDetails: models.TransactionDetails{
				LegalStatus: "Sổ hồng lâu dài",
				YearBuilt:   2021,
			},
			DatePosted:       mustTime("2024-07-29T09:00:00Z"),
			BuildingName:     "Tecco Elite City",
			FloorNumber:      15,
			ApartmentNumber:  "A-1502",
			CollaboratorName: "Phạm Thị Dung",
			Group:            "Nhóm B",
			Visibility:       models.VisibilityPublic,
			PriceHistory: []models.PricePoint{
				{Date: mustTime("2024-06-20T09:00:00Z"), Price: 1880000000},
				{Date: mustTime("2024-07-29T09:00:00Z"), Price: 1850000000},
			},
		},
		{
			ID:            4,
			Title:         "Nhà cấp 4 có sân vườn rộng rãi, yên tĩnh",
			Address:       "Phường Gia Sàng, TP. Thái Nguyên",
			Price:         2100000000,
			ListingType:   models.ListingTypeSale,
			Source:        models.SourceIndividual,
			Bedrooms:      3,
			Bathrooms:     2,
			Area:          250,
			ImageURLs:     []string{"https://picsum.photos/seed/prop4/800/600"},
			CoverImageURL: "https://picsum.photos/seed/prop4/800/600",
			Type:          models.PropertyTypeHouse,
			Lat:           fptr(21.572),
			Lng:           fptr(105.835),
			TransactionDetails: models.TransactionDetails{
				LegalStatus: "Sổ đỏ chính chủ",
				YearBuilt:   2015,
			},
			DatePosted: mustTime("2024-07-20T11:00:00Z"),
			Group:      models.PublicGroup,
			Visibility: models.VisibilityPublic,
		},
		{
			ID:            5,
			Title:         "Bán gấp lô đất mặt tiền đường lớn, kinh doanh tốt",
			Address:       "Phường Phan Đình Phùng, TP. Thái Nguyên",
			Price:         2800000000,
			ListingType:   models.ListingTypeSale,
			Source:        models.SourceIndividual,
			Area:          120,
			ImageURLs:     []string{"https://picsum.photos/seed/prop5/800/600"},
			CoverImageURL: "https://picsum.photos/seed/prop5/800/600",
			Type:          models.PropertyTypeLand,
			Lat:           fptr(21.585),
			Lng:           fptr(105.839),
			TransactionDetails: models.TransactionDetails{
				LegalStatus: "Sổ đỏ chính chủ",
			},
			DatePosted: mustTime("2024-07-15T08:00:00Z"),
			Group:      models.PublicGroup,
			Visibility: models.VisibilityPublic,
		},
		{
			ID:            6,
			Title:         "Cho thuê căn hộ mini full nội thất, gần ĐH Sư Phạm",
			Address:       "Phường Quang Trung, TP. Thái Nguyên",
			RentPrice:     3500000,
			ListingType:   models.ListingTypeRent,
			Source:        models.SourcePartner,
			Bedrooms:      1,
			Bathrooms:     1,
			Area:          30,
			ImageURLs:     []string{"https://picsum.photos/seed/prop6/800/600"},
			CoverImageURL: "https://picsum.photos/seed/prop6/800/600",
			Type:          models.PropertyTypeApartment,
			Lat:           fptr(21.590),
			Lng:           fptr(105.842),
			TransactionDetails: models.TransactionDetails{
				LegalStatus: "Hợp đồng dài hạn",
				YearBuilt:   2022,
			},
			DatePosted:       mustTime("2024-07-27T18:00:00Z"),
			CollaboratorName: "Phạm Thị Dung",
			Group:            "Nhóm B",
			Visibility:       models.VisibilityPublic,
		},
		{
			ID:            7,
			Title:         "Đất thổ cư sổ đỏ, ngõ ô tô, tại Đồng Hỷ",
			Address:       "Xã Hóa Thượng, Huyện Đồng Hỷ, Thái Nguyên",
			Price:         850000000,
			ListingType:   models.ListingTypeSale,
			Source:        models.SourceAggregated,
			Area:          100,
			ImageURLs:     []string{"https://picsum.photos/seed/prop7/800/600"},
			CoverImageURL: "https://picsum.photos/seed/prop7/800/600",
			Type:          models.PropertyTypeLand,
			Featured:      true,
			Lat:           fptr(21.621),
			Lng:           fptr(105.865),
			TransactionDetails: models.TransactionDetails{
				LegalStatus: "Sổ đỏ chính chủ",
			},
			DatePosted: mustTime("2024-07-29T11:20:00Z"),
			Group:      models.PublicGroup,
			Visibility: models.VisibilityPublic,
			PriceHistory: []models.PricePoint{
				{Date: mustTime("2024-07-10T11:20:00Z"), Price: 830000000},
				{Date: mustTime("2024-07-29T11:20:00Z"), Price: 850000000},
			},
		},
		{
			ID:            8,
			Title:         "Cho thuê nhà nguyên căn, 2 mặt tiền, khu vực Sông Công",
			Address:       "Phường Cải Đan, TP. Sông Công, Thái Nguyên",
			RentPrice:     12000000,
			ListingType:   models.ListingTypeRent,
			Source:        models.SourceIndividual,
			Bedrooms:      5,
			Bathrooms:     4,
			Area:          300,
			ImageURLs:     []string{"https://picsum.photos/seed/prop8/800/600"},
			CoverImageURL: "https://picsum.photos/seed/prop8/800/600",
			Type:          models.PropertyTypeHouse,
			Lat:           fptr(21.500),
			Lng:           fptr(105.833),
			TransactionDetails: models.TransactionDetails{
				LegalStatus: "Hợp đồng dài hạn",
				YearBuilt:   2020,
			},
			DatePosted: mustTime("2024-07-18T16:00:00Z"),
			Group:      "Sông Công",
			Visibility: models.VisibilityPublic,
		},
	}
}
