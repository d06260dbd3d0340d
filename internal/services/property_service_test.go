package services

import (
	"context"
	"testing"

	"mgaBack/internal/models"
	"mgaBack/internal/repositories"
)

func newPropertyService(t *testing.T) *PropertyService {
	t.Helper()
	store := repositories.NewMemoryStore()
	return &PropertyService{
		PropertyRepo:  repositories.NewPropertyRepository(store),
		FavoritesRepo: repositories.NewFavoritesRepository(store),
	}
}

func TestSearch_Defaults(t *testing.T) {
	svc := newPropertyService(t)

	resp := svc.Search(context.Background(), PropertySearchRequest{
		Filters: models.DefaultFilterCriteria(),
	}, nil)

	if resp.Total != 8 {
		t.Fatalf("expected 8 listings, got %d", resp.Total)
	}
	if resp.Page != 1 || resp.TotalPages != 1 {
		t.Fatalf("expected page 1 of 1, got %d of %d", resp.Page, resp.TotalPages)
	}
	got := propertyIDs(resp.Properties)
	if !sameIDs(got, []int{7, 3, 1, 6, 2, 4, 8, 5}) {
		t.Fatalf("default ordering mismatch: %v", got)
	}
}

func TestSearch_PageClamp(t *testing.T) {
	svc := newPropertyService(t)

	resp := svc.Search(context.Background(), PropertySearchRequest{
		Filters:  models.DefaultFilterCriteria(),
		Page:     9,
		PageSize: 3,
	}, nil)

	if resp.TotalPages != 3 {
		t.Fatalf("expected 3 pages, got %d", resp.TotalPages)
	}
	if resp.Page != 3 {
		t.Fatalf("expected clamp to page 3, got %d", resp.Page)
	}
	if len(resp.Properties) != 2 {
		t.Fatalf("last page should carry 2 listings, got %d", len(resp.Properties))
	}
}

func TestSearch_FavoritesAreScopedToUser(t *testing.T) {
	svc := newPropertyService(t)
	ctx := context.Background()

	svc.FavoritesRepo.Toggle(ctx, 3, 2)
	svc.FavoritesRepo.Toggle(ctx, 3, 7)

	filters := models.DefaultFilterCriteria()
	filters.ShowOnlyFavorites = true

	resp := svc.Search(ctx, PropertySearchRequest{Filters: filters}, &models.User{ID: 3, Group: "Nhóm A"})
	got := propertyIDs(resp.Properties)
	if !sameIDs(got, []int{7, 2}) {
		t.Fatalf("expected favorites [7 2], got %v", got)
	}

	// Another user's favorites stay empty.
	resp = svc.Search(ctx, PropertySearchRequest{Filters: filters}, &models.User{ID: 4, Group: "Nhóm B"})
	if resp.Total != 0 {
		t.Fatalf("expected no favorites for other user, got %d", resp.Total)
	}
}

func TestSearch_Bounds(t *testing.T) {
	svc := newPropertyService(t)

	resp := svc.Search(context.Background(), PropertySearchRequest{
		Filters: models.DefaultFilterCriteria(),
		Bounds:  &models.MapBounds{South: 21.56, West: 105.80, North: 21.60, East: 105.85},
	}, nil)

	got := propertyIDs(resp.Properties)
	if !sameIDs(got, []int{3, 1, 6, 4, 5}) {
		t.Fatalf("bounds search mismatch: %v", got)
	}
}

func TestGetByCollaborator(t *testing.T) {
	svc := newPropertyService(t)

	got := propertyIDs(svc.GetByCollaborator(context.Background(), "Phạm Thị Dung"))
	if !sameIDs(got, []int{3, 6}) {
		t.Fatalf("expected [3 6], got %v", got)
	}
	if props := svc.GetByCollaborator(context.Background(), "Không Tồn Tại"); len(props) != 0 {
		t.Fatalf("unknown collaborator yielded listings: %v", propertyIDs(props))
	}
}

func TestMarkers_SkipListingsWithoutCoordinates(t *testing.T) {
	svc := newPropertyService(t)
	ctx := context.Background()

	svc.PropertyRepo.Add(ctx, models.Property{
		Title:       "Nhà chưa định vị",
		Address:     "Phường Tân Thịnh, TP. Thái Nguyên",
		Price:       900000000,
		ListingType: models.ListingTypeSale,
		Type:        models.PropertyTypeHouse,
	})

	markers := svc.Markers(ctx, models.DefaultFilterCriteria(), nil)
	if len(markers) != 8 {
		t.Fatalf("expected 8 markers, got %d", len(markers))
	}
	for _, m := range markers {
		if m.ID == 9 {
			t.Fatal("listing without coordinates produced a marker")
		}
	}
}
