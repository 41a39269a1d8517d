package banners

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/asman-store/backend/internal/models"
	"github.com/asman-store/backend/pkg/response"
)

// GroupedResponse is the combined listing payload: eligible banners partitioned
// by type, plus the total eligible count before any per-bucket limit.
type GroupedResponse struct {
	HeroBanners     []BannerResponse `json:"hero_banners"`
	PromoBanners    []BannerResponse `json:"promo_banners"`
	CategoryBanners []BannerResponse `json:"category_banners"`
	Total           int              `json:"total"`
}

// Handler handles the public banner listing endpoints.
type Handler struct {
	store         Store
	projector     *Projector
	defaultMarket string
	logger        *zap.Logger
}

// NewHandler creates a banners handler.
func NewHandler(store Store, projector *Projector, defaultMarket string, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{store: store, projector: projector, defaultMarket: defaultMarket, logger: logger}
}

// List handles GET /banners: the grouped listing.
func (h *Handler) List(c *gin.Context) {
	market := MarketFromRequest(c, h.defaultMarket)
	limit := parseLimit(c.Query("limit"))
	now := time.Now()

	eligible, err := h.store.ListEligible(c.Request.Context(), market, now)
	if err != nil {
		h.logger.Error("list eligible banners failed", zap.Error(err), zap.String("market", market))
		response.Internal(c, "failed to load banners")
		return
	}

	var hero, promo, category []models.Banner
	for _, b := range eligible {
		switch b.BannerType {
		case models.BannerTypeHero:
			hero = append(hero, b)
		case models.BannerTypePromo:
			promo = append(promo, b)
		case models.BannerTypeCategory:
			category = append(category, b)
		}
	}

	response.OK(c, GroupedResponse{
		HeroBanners:     h.projector.ProjectAll(c.Request, applyLimit(hero, limit)),
		PromoBanners:    h.projector.ProjectAll(c.Request, applyLimit(promo, limit)),
		CategoryBanners: h.projector.ProjectAll(c.Request, applyLimit(category, limit)),
		Total:           len(eligible),
	})
}

// ListByType returns the handler for a single-type listing endpoint. An empty
// bannerType is a client error; the fixed route table never produces one.
func (h *Handler) ListByType(bannerType models.BannerType) gin.HandlerFunc {
	return func(c *gin.Context) {
		if bannerType == "" {
			response.BadRequest(c, "banner type not specified")
			return
		}
		market := MarketFromRequest(c, h.defaultMarket)
		limit := parseLimit(c.Query("limit"))

		list, err := h.store.ListEligibleByType(c.Request.Context(), market, bannerType, time.Now(), limit)
		if err != nil {
			h.logger.Error("list banners by type failed", zap.Error(err),
				zap.String("market", market), zap.String("banner_type", string(bannerType)))
			response.Internal(c, "failed to load banners")
			return
		}
		response.OK(c, h.projector.ProjectAll(c.Request, list))
	}
}

// parseLimit folds a missing, non-integer, or non-positive limit to 0 (unlimited).
func parseLimit(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0
	}
	return n
}

func applyLimit(list []models.Banner, limit int) []models.Banner {
	if limit > 0 && len(list) > limit {
		return list[:limit]
	}
	return list
}
