package repositories

import (
	"context"
	"errors"
	"testing"

	"mgaBack/internal/models"
)

func TestPropertyRepository_Seed(t *testing.T) {
	repo := NewPropertyRepository(NewMemoryStore())

	props := repo.GetAll(context.Background())
	if len(props) != 8 {
		t.Fatalf("expected 8 seed listings, got %d", len(props))
	}
	if props[0].ID != 1 || props[0].Title == "" {
		t.Fatalf("unexpected first listing: %+v", props[0])
	}
}

func TestPropertyRepository_Add(t *testing.T) {
	repo := NewPropertyRepository(NewMemoryStore())
	ctx := context.Background()

	added := repo.Add(ctx, models.Property{
		Title:       "Bán nhà phố mới xây",
		Address:     "Phường Tân Thịnh, TP. Thái Nguyên",
		Price:       1500000000,
		ListingType: models.ListingTypeSale,
		Type:        models.PropertyTypeHouse,
		ImageURLs:   []string{"https://picsum.photos/seed/new/800/600"},
	})

	if added.ID != 9 {
		t.Fatalf("expected id 9, got %d", added.ID)
	}
	if added.CoverImageURL != "https://picsum.photos/seed/new/800/600" {
		t.Fatalf("cover image not defaulted: %q", added.CoverImageURL)
	}
	if added.Visibility != models.VisibilityPublic {
		t.Fatalf("visibility not defaulted: %q", added.Visibility)
	}
	if added.DatePosted.IsZero() {
		t.Fatal("posting date not stamped")
	}
	if len(added.PriceHistory) != 1 || added.PriceHistory[0].Price != 1500000000 {
		t.Fatalf("expected a single opening price point, got %v", added.PriceHistory)
	}
}

// Ids never shrink back after a deletion; the next id is always max+1.
func TestPropertyRepository_AddAfterDelete(t *testing.T) {
	repo := NewPropertyRepository(NewMemoryStore())
	ctx := context.Background()

	repo.Delete(ctx, 8)
	added := repo.Add(ctx, models.Property{Title: "Nhà mới", ListingType: models.ListingTypeSale})
	if added.ID != 8 {
		t.Fatalf("expected id 8 after deleting the max, got %d", added.ID)
	}

	repo.Delete(ctx, 3)
	added = repo.Add(ctx, models.Property{Title: "Nhà nữa", ListingType: models.ListingTypeSale})
	if added.ID != 9 {
		t.Fatalf("expected id 9, got %d", added.ID)
	}
}

func TestPropertyRepository_DeleteUnknownIsNoop(t *testing.T) {
	repo := NewPropertyRepository(NewMemoryStore())
	ctx := context.Background()

	repo.Delete(ctx, 404)
	if got := len(repo.GetAll(ctx)); got != 8 {
		t.Fatalf("collection changed by unknown delete: %d", got)
	}
}

func TestPropertyRepository_ToggleFeatured(t *testing.T) {
	repo := NewPropertyRepository(NewMemoryStore())
	ctx := context.Background()

	p, err := repo.ToggleFeatured(ctx, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.Featured {
		t.Fatal("expected listing to become featured")
	}

	p, err = repo.ToggleFeatured(ctx, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Featured {
		t.Fatal("expected listing to revert")
	}

	if _, err := repo.ToggleFeatured(ctx, 404); !errors.Is(err, models.ErrPropertyNotFound) {
		t.Fatalf("expected ErrPropertyNotFound, got %v", err)
	}
}

func TestPropertyRepository_UpdateDescription(t *testing.T) {
	repo := NewPropertyRepository(NewMemoryStore())
	ctx := context.Background()

	if err := repo.UpdateDescription(ctx, 4, "Nhà vườn yên tĩnh."); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p, err := repo.GetByID(ctx, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.TransactionDetails.Description != "Nhà vườn yên tĩnh." {
		t.Fatalf("description not stored: %q", p.TransactionDetails.Description)
	}

	if err := repo.UpdateDescription(ctx, 404, "x"); !errors.Is(err, models.ErrPropertyNotFound) {
		t.Fatalf("expected ErrPropertyNotFound, got %v", err)
	}
}

func TestPropertyRepository_AvailableRegions(t *testing.T) {
	repo := NewPropertyRepository(NewMemoryStore())

	regions := repo.AvailableRegions(context.Background())
	want := []string{"Huyện Đại Từ", "Huyện Đồng Hỷ", "TP. Sông Công"}
	if len(regions) != len(want) {
		t.Fatalf("expected %v got %v", want, regions)
	}
	for i := range want {
		if regions[i] != want[i] {
			t.Fatalf("expected %v got %v", want, regions)
		}
	}
}

func TestPropertyRepository_AvailableGroups(t *testing.T) {
	repo := NewPropertyRepository(NewMemoryStore())

	groups := repo.AvailableGroups(context.Background())
	want := map[string]bool{"Nhóm A": true, "Nhóm B": true, "Sông Công": true, "Shipper": true, "AEX": true}
	if len(groups) != len(want) {
		t.Fatalf("expected %d groups, got %v", len(want), groups)
	}
	for _, g := range groups {
		if !want[g] {
			t.Fatalf("unexpected group %q in %v", g, groups)
		}
		if g == models.PublicGroup {
			t.Fatal("public marker leaked into the group list")
		}
	}
}

// A second repository over the same store sees mutations made by the first:
// the collection survives restarts.
func TestPropertyRepository_Rehydration(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	first := NewPropertyRepository(store)
	first.Delete(ctx, 1)
	added := first.Add(ctx, models.Property{Title: "Nhà giữ lại", ListingType: models.ListingTypeSale})

	second := NewPropertyRepository(store)
	if _, err := second.GetByID(ctx, 1); !errors.Is(err, models.ErrPropertyNotFound) {
		t.Fatal("deleted listing came back after rehydration")
	}
	p, err := second.GetByID(ctx, added.ID)
	if err != nil {
		t.Fatalf("added listing lost after rehydration: %v", err)
	}
	if p.Title != "Nhà giữ lại" {
		t.Fatalf("title mismatch after rehydration: %q", p.Title)
	}
}
