package banners

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/asman-store/backend/internal/models"
)

// Store provides read access to eligible banners. The Postgres repository is the
// production implementation; InMemoryStore backs handler tests.
type Store interface {
	// ListEligible returns every banner eligible at now for market, ordered by
	// (sort_order ascending, created_at descending).
	ListEligible(ctx context.Context, market string, now time.Time) ([]models.Banner, error)
	// ListEligibleByType is ListEligible restricted to one banner type, with an
	// optional limit (limit <= 0 means unlimited).
	ListEligibleByType(ctx context.Context, market string, bannerType models.BannerType, now time.Time, limit int) ([]models.Banner, error)
}

// InMemoryStore is a Store over a fixed slice of banners.
type InMemoryStore struct {
	mu      sync.RWMutex
	banners []models.Banner
}

// NewInMemoryStore creates an in-memory store seeded with banners.
func NewInMemoryStore(seed []models.Banner) *InMemoryStore {
	s := &InMemoryStore{banners: make([]models.Banner, len(seed))}
	copy(s.banners, seed)
	return s
}

// ListEligible implements Store.
func (s *InMemoryStore) ListEligible(_ context.Context, market string, now time.Time) ([]models.Banner, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Banner
	for _, b := range s.banners {
		if b.EligibleAt(now, market) {
			out = append(out, b)
		}
	}
	sortBanners(out)
	return out, nil
}

// ListEligibleByType implements Store.
func (s *InMemoryStore) ListEligibleByType(ctx context.Context, market string, bannerType models.BannerType, now time.Time, limit int) ([]models.Banner, error) {
	all, err := s.ListEligible(ctx, market, now)
	if err != nil {
		return nil, err
	}
	var out []models.Banner
	for _, b := range all {
		if b.BannerType != bannerType {
			continue
		}
		out = append(out, b)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func sortBanners(list []models.Banner) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].SortOrder != list[j].SortOrder {
			return list[i].SortOrder < list[j].SortOrder
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
}
