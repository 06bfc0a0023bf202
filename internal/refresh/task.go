// Package refresh schedules and handles background recomputation of the
// stored seller report, warming the Redis cache ahead of dashboard reads.
package refresh

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/salesboard/backend-insight/internal/insight"
	"github.com/salesboard/backend-insight/internal/report"
)

// TypeSellerReport is the asynq task type for a stored-report refresh.
const TypeSellerReport = "report:refresh"

// Queue is the asynq queue reports run on.
const Queue = "reports"

// Enqueuer submits refresh tasks through an asynq client.
type Enqueuer struct {
	Client  *asynq.Client
	Timeout time.Duration
}

// Enqueue schedules one refresh and returns the task id.
func (e Enqueuer) Enqueue(ctx context.Context) (string, error) {
	if e.Client == nil {
		return "", fmt.Errorf("refresh: asynq client not configured")
	}
	timeout := e.Timeout
	if timeout <= 0 {
		timeout = time.Minute
	}
	info, err := e.Client.EnqueueContext(ctx, asynq.NewTask(TypeSellerReport, nil),
		asynq.Queue(Queue),
		asynq.MaxRetry(3),
		asynq.Timeout(timeout),
	)
	if err != nil {
		return "", fmt.Errorf("refresh: enqueue: %w", err)
	}
	return info.ID, nil
}

// PerformanceSource computes the stored seller report.
type PerformanceSource interface {
	StoredSellerPerformance(ctx context.Context, names insight.StrategyNames) ([]report.SellerReport, error)
}

// Worker handles refresh tasks.
type Worker struct {
	Svc    PerformanceSource
	Logger zerolog.Logger
}

// HandleSellerReport recomputes the stored report under default strategies.
func (w Worker) HandleSellerReport(ctx context.Context, _ *asynq.Task) error {
	if w.Svc == nil {
		return fmt.Errorf("refresh: no performance source configured")
	}
	start := time.Now()
	rows, err := w.Svc.StoredSellerPerformance(ctx, insight.StrategyNames{})
	if err != nil {
		w.Logger.Error().Err(err).Msg("refresh seller report")
		return err
	}
	w.Logger.Info().
		Int("sellers", len(rows)).
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Msg("seller report refreshed")
	return nil
}
