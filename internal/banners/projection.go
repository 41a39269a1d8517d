package banners

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/asman-store/backend/internal/models"
)

// BannerResponse is the external representation of a banner for the storefront.
type BannerResponse struct {
	ID         uuid.UUID         `json:"id"`
	Title      string            `json:"title"`
	Subtitle   string            `json:"subtitle"`
	ImageURL   *string           `json:"image_url"`
	BannerType models.BannerType `json:"banner_type"`
	Market     string            `json:"market"`
	ButtonText string            `json:"button_text"`
	LinkURL    string            `json:"link_url"`
	SortOrder  int               `json:"sort_order"`
}

// AssetResolver turns an uploaded object key into a public URL.
type AssetResolver interface {
	BannersBucket() string
	PublicObjectURL(bucket, key string) string
}

// Projector shapes banners into their external representation, resolving the
// image URL (uploaded asset first, then the raw URL, absolutized when relative).
type Projector struct {
	assets AssetResolver // nil when object storage is not configured
}

// NewProjector creates a projector. assets may be nil.
func NewProjector(assets AssetResolver) *Projector {
	return &Projector{assets: assets}
}

// Project returns the external representation of b. req supplies the origin used
// to absolutize relative image URLs; it may be nil.
func (p *Projector) Project(req *http.Request, b models.Banner) BannerResponse {
	return BannerResponse{
		ID:         b.ID,
		Title:      b.Title,
		Subtitle:   b.Subtitle,
		ImageURL:   p.resolveImageURL(req, b),
		BannerType: b.BannerType,
		Market:     b.Market,
		ButtonText: b.ButtonText,
		LinkURL:    b.LinkURL,
		SortOrder:  b.SortOrder,
	}
}

// ProjectAll maps Project over a list. Always returns a non-nil slice so empty
// buckets serialize as [] rather than null.
func (p *Projector) ProjectAll(req *http.Request, list []models.Banner) []BannerResponse {
	out := make([]BannerResponse, 0, len(list))
	for _, b := range list {
		out = append(out, p.Project(req, b))
	}
	return out
}

func (p *Projector) resolveImageURL(req *http.Request, b models.Banner) *string {
	url := ""
	if b.ImageKey != "" && p.assets != nil {
		url = p.assets.PublicObjectURL(p.assets.BannersBucket(), b.ImageKey)
	}
	if url == "" {
		url = b.ImageURL
	}
	if url == "" {
		return nil
	}
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return &url
	}
	if req != nil {
		abs := absoluteURL(req, url)
		return &abs
	}
	return &url
}

// absoluteURL builds scheme://host/path from the current request's origin.
func absoluteURL(req *http.Request, path string) string {
	scheme := "http"
	if req.TLS != nil {
		scheme = "https"
	}
	if proto := req.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return scheme + "://" + req.Host + path
}
