package models

import (
	"testing"
	"time"
)

func TestCTR(t *testing.T) {
	b := Banner{ViewCount: 0, ClickCount: 10}
	if got := b.CTR(); got != 0 {
		t.Fatalf("expected CTR 0 with no views, got %v", got)
	}
	b = Banner{ViewCount: 200, ClickCount: 50}
	if got := b.CTR(); got != 25 {
		t.Fatalf("expected CTR 25, got %v", got)
	}
}

func TestEligibleAtScheduleBoundsInclusive(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	b := Banner{IsActive: true, Market: MarketKG, StartDate: &now, EndDate: &now}

	if !b.EligibleAt(now, MarketKG) {
		t.Fatal("banner starting and ending exactly now must be eligible")
	}
	if b.EligibleAt(now.Add(-time.Second), MarketKG) {
		t.Fatal("banner must not be eligible before start_date")
	}
	if b.EligibleAt(now.Add(time.Second), MarketKG) {
		t.Fatal("banner must not be eligible after end_date")
	}
}

func TestEligibleAtUnboundedSchedule(t *testing.T) {
	now := time.Now()
	b := Banner{IsActive: true, Market: MarketAll}
	if !b.EligibleAt(now, MarketUS) {
		t.Fatal("active unscheduled ALL banner must always be eligible")
	}
}

func TestEligibleAtInactive(t *testing.T) {
	b := Banner{IsActive: false, Market: MarketAll}
	if b.EligibleAt(time.Now(), MarketKG) {
		t.Fatal("inactive banner must never be eligible")
	}
}

func TestEligibleAtMarketMatch(t *testing.T) {
	b := Banner{IsActive: true, Market: MarketUS}
	now := time.Now()
	if b.EligibleAt(now, MarketKG) {
		t.Fatal("US banner must not be eligible for KG")
	}
	if !b.EligibleAt(now, MarketUS) {
		t.Fatal("US banner must be eligible for US")
	}
	all := Banner{IsActive: true, Market: MarketAll}
	if !all.EligibleAt(now, "XX") {
		t.Fatal("ALL banner must be eligible for any market code")
	}
}

func TestValidBannerType(t *testing.T) {
	for _, valid := range []BannerType{BannerTypeHero, BannerTypePromo, BannerTypeCategory} {
		if !ValidBannerType(valid) {
			t.Fatalf("expected %q to be valid", valid)
		}
	}
	if ValidBannerType("sidebar") {
		t.Fatal("expected unknown type to be invalid")
	}
}
