package banners

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/asman-store/backend/internal/models"
)

func testBanner(title string, bannerType models.BannerType, market string, sortOrder int, createdAt time.Time) models.Banner {
	return models.Banner{
		ID:         uuid.New(),
		Title:      title,
		BannerType: bannerType,
		Market:     market,
		IsActive:   true,
		SortOrder:  sortOrder,
		CreatedAt:  createdAt,
	}
}

func titles(list []models.Banner) []string {
	out := make([]string, 0, len(list))
	for _, b := range list {
		out = append(out, b.Title)
	}
	return out
}

func TestListEligibleFiltersMarket(t *testing.T) {
	now := time.Now()
	store := NewInMemoryStore([]models.Banner{
		testBanner("kg hero", models.BannerTypeHero, models.MarketKG, 1, now),
		testBanner("us hero", models.BannerTypeHero, models.MarketUS, 1, now),
		testBanner("all hero", models.BannerTypeHero, models.MarketAll, 1, now),
	})

	got, err := store.ListEligible(context.Background(), models.MarketKG, now)
	if err != nil {
		t.Fatalf("ListEligible: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 banners for KG, got %v", titles(got))
	}
	for _, b := range got {
		if b.Title == "us hero" {
			t.Fatal("US banner leaked into KG results")
		}
	}

	got, err = store.ListEligible(context.Background(), models.MarketUS, now)
	if err != nil {
		t.Fatalf("ListEligible: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 banners for US, got %v", titles(got))
	}
}

func TestListEligibleExcludesInactiveAndOutOfWindow(t *testing.T) {
	now := time.Now()
	future := now.Add(24 * time.Hour)
	past := now.Add(-24 * time.Hour)

	inactive := testBanner("inactive", models.BannerTypeHero, models.MarketKG, 1, now)
	inactive.IsActive = false
	notStarted := testBanner("future", models.BannerTypePromo, models.MarketKG, 1, now)
	notStarted.StartDate = &future
	expired := testBanner("expired", models.BannerTypePromo, models.MarketKG, 1, now)
	expired.EndDate = &past

	store := NewInMemoryStore([]models.Banner{
		inactive, notStarted, expired,
		testBanner("live", models.BannerTypeHero, models.MarketKG, 1, now),
	})

	got, err := store.ListEligible(context.Background(), models.MarketKG, now)
	if err != nil {
		t.Fatalf("ListEligible: %v", err)
	}
	if len(got) != 1 || got[0].Title != "live" {
		t.Fatalf("expected only the live banner, got %v", titles(got))
	}

	// The future banner becomes eligible once now passes its start date.
	got, err = store.ListEligible(context.Background(), models.MarketKG, future.Add(time.Hour))
	if err != nil {
		t.Fatalf("ListEligible: %v", err)
	}
	found := false
	for _, b := range got {
		if b.Title == "future" {
			found = true
		}
	}
	if !found {
		t.Fatalf("future banner should be eligible after its start date, got %v", titles(got))
	}
}

func TestListEligibleOrdering(t *testing.T) {
	now := time.Now()
	store := NewInMemoryStore([]models.Banner{
		testBanner("second", models.BannerTypeHero, models.MarketKG, 2, now),
		testBanner("first", models.BannerTypeHero, models.MarketKG, 1, now),
		testBanner("tie older", models.BannerTypeHero, models.MarketKG, 1, now.Add(-time.Hour)),
	})

	got, err := store.ListEligible(context.Background(), models.MarketKG, now)
	if err != nil {
		t.Fatalf("ListEligible: %v", err)
	}
	want := []string{"first", "tie older", "second"}
	if len(got) != len(want) {
		t.Fatalf("expected %d banners, got %v", len(want), titles(got))
	}
	for i, title := range want {
		if got[i].Title != title {
			t.Fatalf("position %d: expected %q, got %v", i, title, titles(got))
		}
	}
}

func TestListEligibleByTypeAndLimit(t *testing.T) {
	now := time.Now()
	store := NewInMemoryStore([]models.Banner{
		testBanner("hero 1", models.BannerTypeHero, models.MarketKG, 1, now),
		testBanner("hero 2", models.BannerTypeHero, models.MarketKG, 2, now),
		testBanner("promo", models.BannerTypePromo, models.MarketKG, 1, now),
	})

	got, err := store.ListEligibleByType(context.Background(), models.MarketKG, models.BannerTypeHero, now, 0)
	if err != nil {
		t.Fatalf("ListEligibleByType: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 hero banners, got %v", titles(got))
	}

	got, err = store.ListEligibleByType(context.Background(), models.MarketKG, models.BannerTypeHero, now, 1)
	if err != nil {
		t.Fatalf("ListEligibleByType: %v", err)
	}
	if len(got) != 1 || got[0].Title != "hero 1" {
		t.Fatalf("expected only hero 1 with limit 1, got %v", titles(got))
	}
}
