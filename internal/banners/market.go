package banners

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/asman-store/backend/internal/middleware"
)

// MarketHeader is the storefront market override header.
const MarketHeader = "X-Market"

// ResolveMarket picks the effective market for a request. Precedence: the
// authenticated identity's market (used verbatim), then the header value
// (uppercased), then the query value (uppercased), then the fallback. Unknown
// codes pass through untouched; they match nothing except ALL-market banners.
func ResolveMarket(identityMarket, headerMarket, queryMarket, fallback string) string {
	if identityMarket != "" {
		return identityMarket
	}
	if headerMarket != "" {
		return strings.ToUpper(headerMarket)
	}
	if queryMarket != "" {
		return strings.ToUpper(queryMarket)
	}
	return fallback
}

// MarketFromRequest resolves the market for a gin request: optional JWT identity,
// X-Market header, market query param, then fallback.
func MarketFromRequest(c *gin.Context, fallback string) string {
	identityMarket := ""
	if v, ok := c.Get(middleware.ContextUserMarket); ok {
		identityMarket, _ = v.(string)
	}
	return ResolveMarket(identityMarket, c.GetHeader(MarketHeader), c.Query("market"), fallback)
}
