package tasks

import (
	"context"

	"github.com/lysyi3m/turbo-items/app/feed"
	"github.com/lysyi3m/turbo-items/app/store"
)

// TaskSchedulerInterface defines the interface for task scheduling operations.
// Example usage:
//
//	scheduler := NewScheduler(newIngestTask, workerCount, refreshInterval)
//	scheduler.Start()
//	defer scheduler.Stop()
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
}

// Collector produces a full record collection or reports why it could not.
type Collector interface {
	Collect(ctx context.Context) ([]feed.Record, error)
	URL() string
}

var _ Collector = (*feed.Ingestor)(nil)

// Publisher is the write side of the record store.
type Publisher interface {
	Replace(records []feed.Record) *store.Generation
}

var _ Publisher = (*store.Store)(nil)
