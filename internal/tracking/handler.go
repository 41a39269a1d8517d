package tracking

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/asman-store/backend/internal/banners"
	"github.com/asman-store/backend/pkg/queue"
	"github.com/asman-store/backend/pkg/response"
)

// Enqueuer enqueues banner counter events for the worker.
type Enqueuer interface {
	EnqueueBannerEvent(ctx context.Context, payload queue.BannerEventPayload) error
}

// Handler handles banner impression/click intake. Counters are incremented
// asynchronously by the worker; the serving read path never writes.
type Handler struct {
	events        Enqueuer
	defaultMarket string
	logger        *zap.Logger
}

// NewHandler creates a tracking handler.
func NewHandler(events Enqueuer, defaultMarket string, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{events: events, defaultMarket: defaultMarket, logger: logger}
}

// View handles POST /banners/:id/view.
func (h *Handler) View(c *gin.Context) {
	h.enqueue(c, queue.BannerEventView)
}

// Click handles POST /banners/:id/click.
func (h *Handler) Click(c *gin.Context) {
	h.enqueue(c, queue.BannerEventClick)
}

func (h *Handler) enqueue(c *gin.Context, kind queue.BannerEventKind) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid banner id")
		return
	}
	payload := queue.BannerEventPayload{
		BannerID:   id,
		Event:      kind,
		Market:     banners.MarketFromRequest(c, h.defaultMarket),
		OccurredAt: time.Now(),
	}
	if err := h.events.EnqueueBannerEvent(c.Request.Context(), payload); err != nil {
		h.logger.Error("enqueue banner event failed", zap.Error(err),
			zap.String("banner_id", id.String()), zap.String("event", string(kind)))
		response.Internal(c, "failed to record event")
		return
	}
	response.Accepted(c, gin.H{"banner_id": id, "event": kind})
}
