package services

import (
	"context"
	"testing"
	"time"

	"mgaBack/internal/models"
	"mgaBack/internal/repositories"
)

func seedSet(t *testing.T) []models.Property {
	t.Helper()
	repo := repositories.NewPropertyRepository(repositories.NewMemoryStore())
	return repo.GetAll(context.Background())
}

func propertyIDs(props []models.Property) []int {
	ids := make([]int, len(props))
	for i, p := range props {
		ids[i] = p.ID
	}
	return ids
}

func sameIDs(got []int, want []int) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func matchingIDs(props []models.Property, f models.FilterCriteria) []int {
	var ids []int
	for _, p := range props {
		if MatchesFilters(p, f, nil, nil) {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

func TestMatchesFilters_Predicates(t *testing.T) {
	props := seedSet(t)

	minArea := 200.0

	cases := []struct {
		name  string
		build func(f *models.FilterCriteria)
		want  []int
	}{
		{"no criteria", func(f *models.FilterCriteria) {}, []int{1, 2, 3, 4, 5, 6, 7, 8}},
		{"land only", func(f *models.FilterCriteria) { f.Type = models.PropertyTypeLand }, []int{2, 5, 7}},
		{"land in Dai Tu", func(f *models.FilterCriteria) {
			f.Type = models.PropertyTypeLand
			f.Region = "Huyện Đại Từ"
		}, []int{2}},
		{"individual source", func(f *models.FilterCriteria) { f.Source = models.SourceIndividual }, []int{4, 5, 8}},
		{"keyword in title", func(f *models.FilterCriteria) { f.Keyword = "tecco" }, []int{3}},
		{"keyword in address", func(f *models.FilterCriteria) { f.Keyword = "sông công" }, []int{8}},
		{"rent listings", func(f *models.FilterCriteria) { f.ListingType = models.ListingTypeRent }, []int{6, 8}},
		{"three bedrooms", func(f *models.FilterCriteria) { f.Bedrooms = 3 }, []int{1, 4, 8}},
		{"min area", func(f *models.FilterCriteria) { f.MinArea = &minArea }, []int{1, 4, 8}},
		{"featured only", func(f *models.FilterCriteria) { f.Featured = true }, []int{1, 3, 7}},
		{"sale under two billion", func(f *models.FilterCriteria) {
			f.ListingType = models.ListingTypeSale
			f.MaxPrice = "2000000000"
		}, []int{2, 3, 7}},
		{"rent under five million", func(f *models.FilterCriteria) {
			f.ListingType = models.ListingTypeRent
			f.MaxRentPrice = "5000000"
		}, []int{6}},
		{"malformed max price ignored", func(f *models.FilterCriteria) { f.MaxPrice = "abc" }, []int{1, 2, 3, 4, 5, 6, 7, 8}},
		{"malformed min price ignored", func(f *models.FilterCriteria) { f.MinPrice = "1,5 tỷ" }, []int{1, 2, 3, 4, 5, 6, 7, 8}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := models.DefaultFilterCriteria()
			tc.build(&f)
			got := matchingIDs(props, f)
			if !sameIDs(got, tc.want) {
				t.Fatalf("expected %v got %v", tc.want, got)
			}
		})
	}
}

// Listings with a zero sale price are "contact for price" and must survive an
// upper price bound; they still fail a lower one.
func TestMatchesFilters_ZeroPriceExemption(t *testing.T) {
	props := seedSet(t)

	f := models.DefaultFilterCriteria()
	f.MaxPrice = "1000000000"
	got := matchingIDs(props, f)
	// 7 is the only sale listing under the bound; the two rentals carry a zero
	// sale price and pass through.
	if !sameIDs(got, []int{6, 7, 8}) {
		t.Fatalf("expected [6 7 8] got %v", got)
	}

	f = models.DefaultFilterCriteria()
	f.MinPrice = "1000000000"
	got = matchingIDs(props, f)
	if !sameIDs(got, []int{1, 2, 3, 4, 5}) {
		t.Fatalf("expected [1 2 3 4 5] got %v", got)
	}
}

func TestMatchesFilters_GroupVisibility(t *testing.T) {
	p := models.Property{
		ID:          100,
		Title:       "Nhà nội bộ Nhóm A",
		Address:     "Phường Túc Duyên, TP. Thái Nguyên",
		Price:       1000000000,
		ListingType: models.ListingTypeSale,
		Type:        models.PropertyTypeHouse,
		Group:       "Nhóm A",
		Visibility:  models.VisibilityGroup,
	}
	f := models.DefaultFilterCriteria()

	if MatchesFilters(p, f, nil, nil) {
		t.Fatal("group-restricted listing visible to anonymous visitor")
	}
	outsider := &models.User{ID: 4, Group: "Nhóm B"}
	if MatchesFilters(p, f, outsider, nil) {
		t.Fatal("group-restricted listing visible outside its group")
	}
	member := &models.User{ID: 3, Group: "Nhóm A"}
	if !MatchesFilters(p, f, member, nil) {
		t.Fatal("group-restricted listing hidden from its own group")
	}
}

func TestMatchesFilters_ShowOnlyFavorites(t *testing.T) {
	props := seedSet(t)
	f := models.DefaultFilterCriteria()
	f.ShowOnlyFavorites = true

	var got []int
	favorites := map[int]bool{3: true, 7: true}
	for _, p := range props {
		if MatchesFilters(p, f, nil, favorites) {
			got = append(got, p.ID)
		}
	}
	if !sameIDs(got, []int{3, 7}) {
		t.Fatalf("expected [3 7] got %v", got)
	}
}

func TestMatchesFiltersAt_Recency(t *testing.T) {
	props := seedSet(t)
	now := time.Date(2024, 7, 29, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name      string
		dateRange models.DateRange
		want      []int
	}{
		{"all", models.DateRangeAll, []int{1, 2, 3, 4, 5, 6, 7, 8}},
		{"24h", models.DateRange24h, []int{3, 7}},
		{"7d", models.DateRange7d, []int{1, 2, 3, 6, 7}},
		{"30d", models.DateRange30d, []int{1, 2, 3, 4, 5, 6, 7, 8}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := models.DefaultFilterCriteria()
			f.DatePostedRange = tc.dateRange
			var got []int
			for _, p := range props {
				if MatchesFiltersAt(p, f, nil, nil, now) {
					got = append(got, p.ID)
				}
			}
			if !sameIDs(got, tc.want) {
				t.Fatalf("expected %v got %v", tc.want, got)
			}
		})
	}
}

func TestSortProperties_Orders(t *testing.T) {
	props := seedSet(t)

	cases := []struct {
		name  string
		order models.SortOrder
		want  []int
	}{
		{"price descending", models.SortPriceDesc, []int{1, 5, 4, 3, 2, 7, 8, 6}},
		{"price ascending", models.SortPriceAsc, []int{6, 8, 7, 2, 3, 4, 5, 1}},
		{"area descending", models.SortAreaDesc, []int{8, 4, 1, 2, 5, 7, 3, 6}},
		{"area ascending", models.SortAreaAsc, []int{6, 3, 7, 5, 2, 1, 4, 8}},
		{"date descending", models.SortDateDesc, []int{7, 3, 1, 6, 2, 4, 8, 5}},
		{"date ascending", models.SortDateAsc, []int{5, 8, 4, 2, 6, 1, 3, 7}},
		{"default featured first", models.SortDefault, []int{7, 3, 1, 6, 2, 4, 8, 5}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := propertyIDs(SortProperties(props, tc.order))
			if !sameIDs(got, tc.want) {
				t.Fatalf("expected %v got %v", tc.want, got)
			}
		})
	}
}

func TestSortProperties_DoesNotMutateInput(t *testing.T) {
	props := seedSet(t)
	before := propertyIDs(props)
	SortProperties(props, models.SortPriceAsc)
	if !sameIDs(propertyIDs(props), before) {
		t.Fatal("input slice reordered")
	}
}

func TestSortProperties_Idempotent(t *testing.T) {
	props := seedSet(t)
	once := SortProperties(props, models.SortPriceDesc)
	twice := SortProperties(once, models.SortPriceDesc)
	if !sameIDs(propertyIDs(once), propertyIDs(twice)) {
		t.Fatalf("second sort changed order: %v vs %v", propertyIDs(once), propertyIDs(twice))
	}
}

// Listings that offer neither a sale nor a rent price sort last under
// ascending price.
func TestSortProperties_PricelessLast(t *testing.T) {
	props := append(seedSet(t), models.Property{
		ID:          99,
		Title:       "Liên hệ để biết giá",
		ListingType: models.ListingTypeSale,
		Type:        models.PropertyTypeHouse,
	})
	sorted := SortProperties(props, models.SortPriceAsc)
	if sorted[len(sorted)-1].ID != 99 {
		t.Fatalf("priceless listing not last: %v", propertyIDs(sorted))
	}
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		name     string
		count    int
		pageSize int
		want     int
	}{
		{"empty collection", 0, 12, 1},
		{"single page", 8, 12, 1},
		{"exact fit", 24, 12, 2},
		{"spill over", 25, 12, 3},
		{"invalid page size", 10, 0, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := TotalPages(tc.count, tc.pageSize); got != tc.want {
				t.Fatalf("expected %d got %d", tc.want, got)
			}
		})
	}
}

func TestClampPage(t *testing.T) {
	cases := []struct {
		name       string
		page       int
		totalPages int
		want       int
	}{
		{"in range", 2, 3, 2},
		{"past the end", 5, 3, 3},
		{"zero page", 0, 3, 1},
		{"negative page", -2, 3, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ClampPage(tc.page, tc.totalPages); got != tc.want {
				t.Fatalf("expected %d got %d", tc.want, got)
			}
		})
	}
}

// Concatenating every page in order reproduces the full sorted collection
// with no element repeated or dropped.
func TestPaginate_RoundTrip(t *testing.T) {
	sorted := SortProperties(seedSet(t), models.SortDefault)
	pageSize := 3

	var rebuilt []models.Property
	for page := 1; page <= TotalPages(len(sorted), pageSize); page++ {
		chunk := Paginate(sorted, page, pageSize)
		if len(chunk) == 0 {
			t.Fatalf("page %d came back empty", page)
		}
		if len(chunk) > pageSize {
			t.Fatalf("page %d exceeds page size: %d", page, len(chunk))
		}
		rebuilt = append(rebuilt, chunk...)
	}

	if !sameIDs(propertyIDs(rebuilt), propertyIDs(sorted)) {
		t.Fatalf("round trip mismatch: %v vs %v", propertyIDs(rebuilt), propertyIDs(sorted))
	}
}

func TestPaginate_OutOfRange(t *testing.T) {
	sorted := SortProperties(seedSet(t), models.SortDefault)
	if got := Paginate(sorted, 4, 3); got != nil {
		t.Fatalf("expected nil page, got %v", propertyIDs(got))
	}
	if got := Paginate(sorted, 0, 3); got != nil {
		t.Fatalf("expected nil for page zero, got %v", propertyIDs(got))
	}
}

func TestFilterByBounds(t *testing.T) {
	props := seedSet(t)
	// Central Thái Nguyên city; excludes Đại Từ (west), Đồng Hỷ (north) and
	// Sông Công (south).
	bounds := models.MapBounds{South: 21.56, West: 105.80, North: 21.60, East: 105.85}

	got := propertyIDs(FilterByBounds(props, bounds))
	if !sameIDs(got, []int{1, 3, 4, 5, 6}) {
		t.Fatalf("expected [1 3 4 5 6] got %v", got)
	}
}

func TestFilterByBounds_NoCoordinates(t *testing.T) {
	props := []models.Property{{ID: 1, Title: "Không có tọa độ"}}
	bounds := models.MapBounds{South: -90, West: -180, North: 90, East: 180}
	if got := FilterByBounds(props, bounds); len(got) != 0 {
		t.Fatalf("listing without coordinates matched bounds: %v", propertyIDs(got))
	}
}
