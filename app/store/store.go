package store

import (
	"sync/atomic"
	"time"

	"github.com/lysyi3m/turbo-items/app/feed"
)

// Generation is one complete snapshot produced by a single ingestion pass.
// It must not be modified after it has been published.
type Generation struct {
	Number     uint64
	Records    []feed.Record
	IngestedAt time.Time
}

// Reader is the read side handed to the query layer and the API.
type Reader interface {
	Snapshot() *Generation
}

var _ Reader = (*Store)(nil)

// Store holds exactly one generation. Replacement is a single pointer swap,
// so readers see either the old or the new generation in full.
type Store struct {
	current atomic.Pointer[Generation]
}

func New() *Store {
	s := &Store{}
	s.current.Store(&Generation{Records: []feed.Record{}})
	return s
}

func (s *Store) Snapshot() *Generation {
	return s.current.Load()
}

// Replace publishes records as the next generation. The slice is owned by
// the store afterwards.
func (s *Store) Replace(records []feed.Record) *Generation {
	if records == nil {
		records = []feed.Record{}
	}

	for {
		prev := s.current.Load()
		next := &Generation{
			Number:     prev.Number + 1,
			Records:    records,
			IngestedAt: time.Now().UTC(),
		}
		if s.current.CompareAndSwap(prev, next) {
			return next
		}
	}
}
