package banners

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/asman-store/backend/internal/models"
	"github.com/asman-store/backend/pkg/response"
	"github.com/asman-store/backend/pkg/storage"
)

// CreateBannerRequest is the body for POST /admin/banners.
type CreateBannerRequest struct {
	Title      string     `json:"title" binding:"required"`
	Subtitle   string     `json:"subtitle"`
	ImageKey   string     `json:"image_key"`
	ImageURL   string     `json:"image_url"`
	BannerType string     `json:"banner_type" binding:"required"`
	Market     string     `json:"market"`
	ButtonText string     `json:"button_text"`
	LinkURL    string     `json:"link_url"`
	IsActive   *bool      `json:"is_active"`
	SortOrder  int        `json:"sort_order"`
	StartDate  *time.Time `json:"start_date"`
	EndDate    *time.Time `json:"end_date"`
}

// UpdateBannerRequest is the body for PATCH /admin/banners/:id. Absent fields are
// left unchanged.
type UpdateBannerRequest struct {
	Title      *string    `json:"title"`
	Subtitle   *string    `json:"subtitle"`
	ImageKey   *string    `json:"image_key"`
	ImageURL   *string    `json:"image_url"`
	BannerType *string    `json:"banner_type"`
	Market     *string    `json:"market"`
	ButtonText *string    `json:"button_text"`
	LinkURL    *string    `json:"link_url"`
	IsActive   *bool      `json:"is_active"`
	SortOrder  *int       `json:"sort_order"`
	StartDate  *time.Time `json:"start_date"`
	EndDate    *time.Time `json:"end_date"`
}

// AdminBanner is a banner with its derived click-through rate for the admin list.
type AdminBanner struct {
	models.Banner
	CTR float64 `json:"ctr"`
}

// AdminHandler handles the banner authoring endpoints (admin only).
type AdminHandler struct {
	repo   *Repository
	s3     *storage.S3
	logger *zap.Logger
}

// NewAdminHandler creates an admin banners handler. s3 may be nil when object
// storage is not configured; upload endpoints then report an error.
func NewAdminHandler(repo *Repository, s3 *storage.S3, logger *zap.Logger) *AdminHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminHandler{repo: repo, s3: s3, logger: logger}
}

// List handles GET /admin/banners: every banner in any state, with counters and CTR.
func (h *AdminHandler) List(c *gin.Context) {
	list, err := h.repo.ListAll(c.Request.Context())
	if err != nil {
		h.logger.Error("list banners failed", zap.Error(err))
		response.Internal(c, "failed to list banners")
		return
	}
	out := make([]AdminBanner, 0, len(list))
	for _, b := range list {
		out = append(out, AdminBanner{Banner: b, CTR: b.CTR()})
	}
	response.OK(c, out)
}

// Create handles POST /admin/banners.
func (h *AdminHandler) Create(c *gin.Context) {
	var req CreateBannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	bannerType := models.BannerType(req.BannerType)
	if !models.ValidBannerType(bannerType) {
		response.BadRequest(c, "invalid banner_type: must be hero, promo or category")
		return
	}
	market := req.Market
	if market == "" {
		market = models.MarketAll
	}
	if market != models.MarketKG && market != models.MarketUS && market != models.MarketAll {
		response.BadRequest(c, "invalid market: must be KG, US or ALL")
		return
	}
	if req.SortOrder < 0 {
		response.BadRequest(c, "sort_order must be >= 0")
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	b := &models.Banner{
		Title:      req.Title,
		Subtitle:   req.Subtitle,
		ImageKey:   req.ImageKey,
		ImageURL:   req.ImageURL,
		BannerType: bannerType,
		Market:     market,
		ButtonText: req.ButtonText,
		LinkURL:    req.LinkURL,
		IsActive:   isActive,
		SortOrder:  req.SortOrder,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
	}
	if err := h.repo.Create(c.Request.Context(), b); err != nil {
		h.logger.Error("create banner failed", zap.Error(err), zap.String("title", req.Title))
		response.Internal(c, "failed to create banner")
		return
	}
	response.Created(c, b)
}

// Update handles PATCH /admin/banners/:id.
func (h *AdminHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid banner id")
		return
	}
	var req UpdateBannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	b, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.NotFound(c, "banner not found")
		return
	}

	if req.Title != nil {
		b.Title = *req.Title
	}
	if req.Subtitle != nil {
		b.Subtitle = *req.Subtitle
	}
	if req.ImageKey != nil {
		b.ImageKey = *req.ImageKey
	}
	if req.ImageURL != nil {
		b.ImageURL = *req.ImageURL
	}
	if req.BannerType != nil {
		t := models.BannerType(*req.BannerType)
		if !models.ValidBannerType(t) {
			response.BadRequest(c, "invalid banner_type: must be hero, promo or category")
			return
		}
		b.BannerType = t
	}
	if req.Market != nil {
		m := *req.Market
		if m != models.MarketKG && m != models.MarketUS && m != models.MarketAll {
			response.BadRequest(c, "invalid market: must be KG, US or ALL")
			return
		}
		b.Market = m
	}
	if req.ButtonText != nil {
		b.ButtonText = *req.ButtonText
	}
	if req.LinkURL != nil {
		b.LinkURL = *req.LinkURL
	}
	if req.IsActive != nil {
		b.IsActive = *req.IsActive
	}
	if req.SortOrder != nil {
		if *req.SortOrder < 0 {
			response.BadRequest(c, "sort_order must be >= 0")
			return
		}
		b.SortOrder = *req.SortOrder
	}
	if req.StartDate != nil {
		b.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		b.EndDate = req.EndDate
	}

	if err := h.repo.Update(c.Request.Context(), b); err != nil {
		h.logger.Error("update banner failed", zap.Error(err), zap.String("banner_id", id.String()))
		response.Internal(c, "failed to update banner")
		return
	}
	response.OK(c, b)
}

// Toggle handles PATCH /admin/banners/:id/toggle.
func (h *AdminHandler) Toggle(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid banner id")
		return
	}
	active, err := h.repo.ToggleActive(c.Request.Context(), id)
	if err != nil {
		response.NotFound(c, "banner not found")
		return
	}
	response.OK(c, gin.H{"id": id, "is_active": active})
}

// Delete handles DELETE /admin/banners/:id. Removes the uploaded image object as well.
func (h *AdminHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid banner id")
		return
	}
	b, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.NotFound(c, "banner not found")
		return
	}
	if b.ImageKey != "" && h.s3 != nil {
		if err := h.s3.DeleteBannerImage(c.Request.Context(), b.ImageKey); err != nil {
			h.logger.Warn("delete banner image failed", zap.Error(err), zap.String("s3_key", b.ImageKey))
		}
	}
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		response.Internal(c, "failed to delete banner")
		return
	}
	response.NoContent(c)
}

// UploadImage handles POST /admin/banners/upload: server-side upload to the public
// banners bucket; no presigned URL, no CORS.
func (h *AdminHandler) UploadImage(c *gin.Context) {
	if h.s3 == nil {
		response.Internal(c, "S3 not configured")
		return
	}
	file, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "missing file (form field: file)")
		return
	}
	if file.Size > storage.MaxBannerFileSize {
		response.BadRequest(c, "file size exceeds 5MB limit")
		return
	}
	if !storage.ValidateImageFileType(file.Header.Get("Content-Type"), file.Filename) {
		response.BadRequest(c, "invalid file type: only jpg, png, webp and gif allowed")
		return
	}

	contentType := storage.ContentTypeForFilename(file.Filename)
	if ct := file.Header.Get("Content-Type"); ct != "" {
		if _, ok := storage.AllowedImageTypes[ct]; ok {
			contentType = ct
		}
	}

	key := storage.BannerKey(uuid.New().String(), file.Filename)
	rc, err := file.Open()
	if err != nil {
		h.logger.Error("open uploaded file failed", zap.Error(err))
		response.Internal(c, "failed to read file")
		return
	}
	defer rc.Close()

	url, err := h.s3.Upload(c.Request.Context(), h.s3.BannersBucket(), key, contentType, rc, file.Size, true)
	if err != nil {
		h.logger.Error("banner image upload failed", zap.Error(err), zap.String("bucket", h.s3.BannersBucket()))
		response.Internal(c, "S3 upload unavailable. Ensure AWS credentials (AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY) and bucket are configured.")
		return
	}

	response.OK(c, gin.H{"s3_key": key, "url": url, "content_type": contentType})
}

// GenerateUploadURLRequest is the body for POST /admin/banners/generate-upload-url.
type GenerateUploadURLRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type"`
	FileSize    int64  `json:"file_size" binding:"required,gt=0"`
}

// GenerateUploadURL handles POST /admin/banners/generate-upload-url. Presigned
// upload; prefer UploadImage for public buckets.
func (h *AdminHandler) GenerateUploadURL(c *gin.Context) {
	if h.s3 == nil {
		response.Internal(c, "S3 not configured")
		return
	}
	var req GenerateUploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if req.FileSize > storage.MaxBannerFileSize {
		response.BadRequest(c, "file size exceeds 5MB limit")
		return
	}
	if !storage.ValidateImageFileType(req.ContentType, req.Filename) {
		response.BadRequest(c, "invalid file type: only jpg, png, webp and gif allowed")
		return
	}

	contentType := storage.ContentTypeForFilename(req.Filename)
	if req.ContentType != "" {
		if _, ok := storage.AllowedImageTypes[req.ContentType]; ok {
			contentType = req.ContentType
		}
	}

	key := storage.BannerKey(uuid.New().String(), req.Filename)
	expire := h.s3.PresignExpire()
	url, err := h.s3.GeneratePresignedUploadURL(c.Request.Context(), h.s3.BannersBucket(), key, contentType, expire)
	if err != nil {
		h.logger.Error("generate presigned upload URL failed", zap.Error(err), zap.String("bucket", h.s3.BannersBucket()))
		response.Internal(c, "S3 upload unavailable. Ensure AWS credentials (AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY) and bucket are configured.")
		return
	}

	response.OK(c, gin.H{
		"upload_url":   url,
		"s3_key":       key,
		"content_type": contentType,
		"expires_in":   int(expire.Seconds()),
	})
}
