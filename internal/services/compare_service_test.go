package services

import (
	"context"
	"errors"
	"testing"

	"mgaBack/internal/models"
	"mgaBack/internal/repositories"
)

func newCompareService(t *testing.T) *CompareService {
	t.Helper()
	return NewCompareService(repositories.NewPropertyRepository(repositories.NewMemoryStore()))
}

func TestCompareToggle(t *testing.T) {
	svc := newCompareService(t)
	ctx := context.Background()

	ids, err := svc.Toggle(ctx, 1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 1 || ids[0] != 2 {
		t.Fatalf("expected [2], got %v", ids)
	}

	// Toggling again removes it.
	ids, err = svc.Toggle(ctx, 1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected empty set, got %v", ids)
	}
}

func TestCompareToggle_UnknownProperty(t *testing.T) {
	svc := newCompareService(t)

	_, err := svc.Toggle(context.Background(), 1, 404)
	if !errors.Is(err, models.ErrPropertyNotFound) {
		t.Fatalf("expected ErrPropertyNotFound, got %v", err)
	}
}

func TestCompareToggle_Cap(t *testing.T) {
	svc := newCompareService(t)
	ctx := context.Background()

	for _, id := range []int{1, 2, 3, 4} {
		if _, err := svc.Toggle(ctx, 1, id); err != nil {
			t.Fatalf("toggle %d: %v", id, err)
		}
	}
	if _, err := svc.Toggle(ctx, 1, 5); err == nil {
		t.Fatal("expected error when exceeding the compare cap")
	}
	// Removing is still allowed at the cap.
	if _, err := svc.Toggle(ctx, 1, 4); err != nil {
		t.Fatalf("removal at cap failed: %v", err)
	}
}

func TestCompare_BestValues(t *testing.T) {
	svc := newCompareService(t)
	ctx := context.Background()

	// 2: 1.2 billion for 150 m2, 4: 2.1 billion for 250 m2.
	for _, id := range []int{2, 4} {
		if _, err := svc.Toggle(ctx, 1, id); err != nil {
			t.Fatalf("toggle %d: %v", id, err)
		}
	}

	result := svc.Compare(ctx, 1)
	if len(result.Properties) != 2 {
		t.Fatalf("expected 2 listings, got %d", len(result.Properties))
	}
	if result.BestPriceID == nil || *result.BestPriceID != 2 {
		t.Fatalf("expected best price 2, got %v", result.BestPriceID)
	}
	if result.BestAreaID == nil || *result.BestAreaID != 4 {
		t.Fatalf("expected best area 4, got %v", result.BestAreaID)
	}
	// Per square meter: 8.0 million vs 8.4 million.
	if result.BestPricePerSqm == nil || *result.BestPricePerSqm != 2 {
		t.Fatalf("expected best price per sqm 2, got %v", result.BestPricePerSqm)
	}
}

// Rentals carry no sale price, so a single sale listing has nothing to be
// compared against on the price dimensions.
func TestCompare_RentalExcludedFromPrice(t *testing.T) {
	svc := newCompareService(t)
	ctx := context.Background()

	for _, id := range []int{4, 6} {
		if _, err := svc.Toggle(ctx, 1, id); err != nil {
			t.Fatalf("toggle %d: %v", id, err)
		}
	}

	result := svc.Compare(ctx, 1)
	if result.BestPriceID != nil {
		t.Fatalf("expected no best price, got %v", *result.BestPriceID)
	}
	if result.BestPricePerSqm != nil {
		t.Fatalf("expected no best price per sqm, got %v", *result.BestPricePerSqm)
	}
	if result.BestAreaID == nil || *result.BestAreaID != 4 {
		t.Fatalf("expected best area 4, got %v", result.BestAreaID)
	}
}

func TestCompareClear(t *testing.T) {
	svc := newCompareService(t)
	ctx := context.Background()

	if _, err := svc.Toggle(ctx, 1, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	svc.Clear(ctx, 1)
	if result := svc.Compare(ctx, 1); len(result.Properties) != 0 {
		t.Fatalf("expected empty comparison after clear, got %d listings", len(result.Properties))
	}
}
