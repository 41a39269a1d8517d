package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/asman-store/backend/internal/banners"
	"github.com/asman-store/backend/pkg/queue"
)

// BannerEventProcessor applies queued view/click events to the banner counters.
type BannerEventProcessor struct {
	bannerRepo *banners.Repository
	queue      *queue.Queue
	logger     *zap.Logger
}

// NewBannerEventProcessor creates a banner counter processor.
func NewBannerEventProcessor(bannerRepo *banners.Repository, q *queue.Queue, logger *zap.Logger) *BannerEventProcessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BannerEventProcessor{bannerRepo: bannerRepo, queue: q, logger: logger}
}

// Process executes one banner event job.
func (p *BannerEventProcessor) Process(ctx context.Context, job *queue.Job) error {
	if job.Type != queue.JobTypeBannerEvent {
		return fmt.Errorf("unknown job type: %s", job.Type)
	}
	var payload queue.BannerEventPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	switch payload.Event {
	case queue.BannerEventView:
		if err := p.bannerRepo.IncrementViewCount(ctx, payload.BannerID); err != nil {
			return fmt.Errorf("increment view count: %w", err)
		}
	case queue.BannerEventClick:
		if err := p.bannerRepo.IncrementClickCount(ctx, payload.BannerID); err != nil {
			return fmt.Errorf("increment click count: %w", err)
		}
	default:
		return fmt.Errorf("unknown banner event: %s", payload.Event)
	}

	p.logger.Debug("banner event applied",
		zap.String("banner_id", payload.BannerID.String()),
		zap.String("event", string(payload.Event)),
		zap.String("market", payload.Market))
	return nil
}

// Run starts the worker loop: dequeue, process, retry on error.
func (p *BannerEventProcessor) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("banner event worker stopping")
			return
		default:
		}

		job, _, err := p.queue.Dequeue(ctx)
		if err != nil {
			p.logger.Warn("dequeue error", zap.Error(err))
			time.Sleep(queue.RetryBackoff)
			continue
		}
		if job == nil {
			continue
		}

		p.logger.Debug("processing job", zap.String("job_id", job.ID), zap.String("type", string(job.Type)))
		if err := p.Process(ctx, job); err != nil {
			p.logger.Error("job failed", zap.String("job_id", job.ID), zap.Error(err))
			if reErr := p.queue.Retry(ctx, job); reErr != nil {
				p.logger.Error("retry enqueue failed", zap.Error(reErr))
			}
			time.Sleep(queue.RetryBackoff)
			continue
		}
	}
}
