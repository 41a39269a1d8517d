package models

import (
	"time"

	"github.com/google/uuid"
)

// BannerType identifies the storefront slot a banner renders in.
type BannerType string

const (
	BannerTypeHero     BannerType = "hero"
	BannerTypePromo    BannerType = "promo"
	BannerTypeCategory BannerType = "category"
)

// ValidBannerType reports whether t is one of the known banner types.
func ValidBannerType(t BannerType) bool {
	switch t {
	case BannerTypeHero, BannerTypePromo, BannerTypeCategory:
		return true
	}
	return false
}

// Market codes served by the storefront. MarketAll matches every market.
const (
	MarketKG  = "KG"
	MarketUS  = "US"
	MarketAll = "ALL"
)

// Banner is a promotional banner shown on the storefront homepage.
type Banner struct {
	ID         uuid.UUID  `json:"id"`
	Title      string     `json:"title"`
	Subtitle   string     `json:"subtitle,omitempty"`
	ImageKey   string     `json:"image_key,omitempty"` // S3 object key for an uploaded image; takes precedence over ImageURL
	ImageURL   string     `json:"image_url,omitempty"`
	BannerType BannerType `json:"banner_type"`
	Market     string     `json:"market"`
	ButtonText string     `json:"button_text,omitempty"`
	LinkURL    string     `json:"link_url,omitempty"`
	IsActive   bool       `json:"is_active"`
	SortOrder  int        `json:"sort_order"`
	StartDate  *time.Time `json:"start_date,omitempty"`
	EndDate    *time.Time `json:"end_date,omitempty"`
	ViewCount  int        `json:"view_count"`
	ClickCount int        `json:"click_count"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// CTR returns the click-through rate in percent (0 when the banner has no views).
func (b *Banner) CTR() float64 {
	if b.ViewCount > 0 {
		return float64(b.ClickCount) / float64(b.ViewCount) * 100
	}
	return 0
}

// EligibleAt reports whether the banner may be shown at time now for the given
// market: active, inside its schedule window (bounds inclusive, absent bound =
// unbounded), and matching the market or flagged for all markets.
func (b *Banner) EligibleAt(now time.Time, market string) bool {
	if !b.IsActive {
		return false
	}
	if b.StartDate != nil && now.Before(*b.StartDate) {
		return false
	}
	if b.EndDate != nil && now.After(*b.EndDate) {
		return false
	}
	return b.Market == market || b.Market == MarketAll
}
