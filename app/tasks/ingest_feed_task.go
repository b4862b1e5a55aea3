package tasks

import (
	"context"
	"log/slog"
	"sync/atomic"
)

type IngestFeedTask struct {
	Task
	collector Collector
	publisher Publisher
	enricher  *ContentEnricher
	inFlight  *atomic.Bool
}

// NewIngestTaskFactory returns a constructor for ingest tasks that share one
// in-flight guard, so overlapping ticks never publish out of order.
// enricher may be nil.
func NewIngestTaskFactory(collector Collector, publisher Publisher, enricher *ContentEnricher) func() TaskInterface {
	inFlight := &atomic.Bool{}

	return func() TaskInterface {
		return &IngestFeedTask{
			Task:      NewTask(TaskTypeIngestFeed),
			collector: collector,
			publisher: publisher,
			enricher:  enricher,
			inFlight:  inFlight,
		}
	}
}

// Execute builds a new generation and publishes it. Ingestion failures are
// contained here: the current generation stays in place and nil is
// returned.
func (t *IngestFeedTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if !t.inFlight.CompareAndSwap(false, true) {
		slog.Debug("Ingestion already running, skipping", "id", t.ID)
		return nil
	}
	defer t.inFlight.Store(false)

	records, err := t.collector.Collect(ctx)
	if err != nil {
		slog.Error("Feed ingestion failed, keeping current generation", "url", t.collector.URL(), "error", err)
		return nil
	}

	if t.enricher != nil {
		success, failed := t.enricher.Run(ctx, records)
		slog.Info("Article content extracted", "success", success, "errors", failed)
	}

	generation := t.publisher.Replace(records)

	slog.Info("Task completed",
		"type", string(t.GetType()),
		"url", t.collector.URL(),
		"duration", t.GetDuration(),
		"generation", generation.Number,
		"total", len(records))

	return nil
}
