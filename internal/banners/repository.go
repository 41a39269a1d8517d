package banners

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/asman-store/backend/internal/models"
)

const bannerColumns = `id, title, COALESCE(subtitle,''), COALESCE(image_key,''), COALESCE(image_url,''),
	banner_type, market, COALESCE(button_text,''), COALESCE(link_url,''),
	is_active, sort_order, start_date, end_date, view_count, click_count, created_at, updated_at`

// Repository handles banner persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a banners repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func scanBanner(row pgx.Row) (models.Banner, error) {
	var b models.Banner
	err := row.Scan(&b.ID, &b.Title, &b.Subtitle, &b.ImageKey, &b.ImageURL,
		&b.BannerType, &b.Market, &b.ButtonText, &b.LinkURL,
		&b.IsActive, &b.SortOrder, &b.StartDate, &b.EndDate, &b.ViewCount, &b.ClickCount, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

func collectBanners(rows pgx.Rows) ([]models.Banner, error) {
	defer rows.Close()
	var list []models.Banner
	for rows.Next() {
		b, err := scanBanner(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// ListEligible returns banners eligible at now for market: active, inside the
// schedule window (inclusive bounds, NULL = unbounded), matching market or ALL.
func (r *Repository) ListEligible(ctx context.Context, market string, now time.Time) ([]models.Banner, error) {
	const q = `SELECT ` + bannerColumns + ` FROM banners
		WHERE is_active = TRUE
		  AND (start_date IS NULL OR start_date <= $2)
		  AND (end_date IS NULL OR end_date >= $2)
		  AND (market = $1 OR market = 'ALL')
		ORDER BY sort_order, created_at DESC`
	rows, err := r.pool.Query(ctx, q, market, now)
	if err != nil {
		return nil, err
	}
	return collectBanners(rows)
}

// ListEligibleByType is ListEligible restricted to one banner type; limit <= 0 means unlimited.
func (r *Repository) ListEligibleByType(ctx context.Context, market string, bannerType models.BannerType, now time.Time, limit int) ([]models.Banner, error) {
	q := `SELECT ` + bannerColumns + ` FROM banners
		WHERE is_active = TRUE
		  AND (start_date IS NULL OR start_date <= $2)
		  AND (end_date IS NULL OR end_date >= $2)
		  AND (market = $1 OR market = 'ALL')
		  AND banner_type = $3
		ORDER BY sort_order, created_at DESC`
	args := []interface{}{market, now, string(bannerType)}
	if limit > 0 {
		q += ` LIMIT $4`
		args = append(args, limit)
	}
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	return collectBanners(rows)
}

// ListAll returns every banner regardless of state, for the admin surface.
func (r *Repository) ListAll(ctx context.Context) ([]models.Banner, error) {
	const q = `SELECT ` + bannerColumns + ` FROM banners ORDER BY market, sort_order, created_at DESC`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	return collectBanners(rows)
}

// GetByID returns a banner by ID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Banner, error) {
	const q = `SELECT ` + bannerColumns + ` FROM banners WHERE id = $1`
	b, err := scanBanner(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Create inserts a new banner.
func (r *Repository) Create(ctx context.Context, b *models.Banner) error {
	const q = `INSERT INTO banners (id, title, subtitle, image_key, image_url, banner_type, market,
			button_text, link_url, is_active, sort_order, start_date, end_date)
		VALUES (gen_random_uuid(), $1, NULLIF($2,''), NULLIF($3,''), NULLIF($4,''), $5, $6,
			NULLIF($7,''), NULLIF($8,''), $9, $10, $11, $12)
		RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, q, b.Title, b.Subtitle, b.ImageKey, b.ImageURL, string(b.BannerType), b.Market,
		b.ButtonText, b.LinkURL, b.IsActive, b.SortOrder, b.StartDate, b.EndDate).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

// Update rewrites the mutable fields of a banner and touches updated_at.
func (r *Repository) Update(ctx context.Context, b *models.Banner) error {
	const q = `UPDATE banners SET title = $2, subtitle = NULLIF($3,''), image_key = NULLIF($4,''),
			image_url = NULLIF($5,''), banner_type = $6, market = $7, button_text = NULLIF($8,''),
			link_url = NULLIF($9,''), is_active = $10, sort_order = $11, start_date = $12, end_date = $13,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`
	return r.pool.QueryRow(ctx, q, b.ID, b.Title, b.Subtitle, b.ImageKey, b.ImageURL, string(b.BannerType),
		b.Market, b.ButtonText, b.LinkURL, b.IsActive, b.SortOrder, b.StartDate, b.EndDate).
		Scan(&b.UpdatedAt)
}

// ToggleActive flips is_active for a banner and returns the new value.
func (r *Repository) ToggleActive(ctx context.Context, id uuid.UUID) (bool, error) {
	const q = `UPDATE banners SET is_active = NOT is_active, updated_at = NOW() WHERE id = $1 RETURNING is_active`
	var active bool
	err := r.pool.QueryRow(ctx, q, id).Scan(&active)
	if err != nil {
		return false, err
	}
	return active, nil
}

// Delete removes a banner by ID.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM banners WHERE id = $1`
	_, err := r.pool.Exec(ctx, q, id)
	return err
}

// IncrementViewCount adds one view, atomically. Called by the analytics worker,
// never by the read path.
func (r *Repository) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	const q = `UPDATE banners SET view_count = view_count + 1 WHERE id = $1`
	_, err := r.pool.Exec(ctx, q, id)
	return err
}

// IncrementClickCount adds one click, atomically.
func (r *Repository) IncrementClickCount(ctx context.Context, id uuid.UUID) error {
	const q = `UPDATE banners SET click_count = click_count + 1 WHERE id = $1`
	_, err := r.pool.Exec(ctx, q, id)
	return err
}
