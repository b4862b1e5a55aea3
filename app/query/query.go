// Package query implements the read-only views served by the API. Every
// function works on a snapshot and returns a new slice; the input is never
// modified.
package query

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/lysyi3m/turbo-items/app/feed"
)

const (
	SortAsc  = "asc"
	SortDesc = "desc"

	DefaultStart = 0
	DefaultLimit = 20
	DefaultSort  = SortAsc
)

// Validation error fields.
const (
	FieldSort      = "sort"
	FieldStart     = "start"
	FieldLimit     = "limit"
	FieldDates     = "startDate/endDate"
	FieldStartDate = "startDate"
	FieldEndDate   = "endDate"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("record not found")
)

// ValidationError is a rejected query parameter. It matches ErrValidation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

type keyed struct {
	record feed.Record
	at     time.Time
}

// SortAndPaginate orders records by OriginalDate and returns the window
// [start, start+limit). Records with an unparseable date follow all dated
// records in either direction, in feed order.
func SortAndPaginate(records []feed.Record, start, limit int, sort string) ([]feed.Record, error) {
	if sort != SortAsc && sort != SortDesc {
		return nil, &ValidationError{Field: FieldSort, Message: fmt.Sprintf("%q must be %q or %q", sort, SortAsc, SortDesc)}
	}
	if start < 0 {
		return nil, &ValidationError{Field: FieldStart, Message: "must be non-negative"}
	}
	if limit < 0 {
		return nil, &ValidationError{Field: FieldLimit, Message: "must be non-negative"}
	}

	sorted := sortByDate(records, sort == SortDesc)

	if start >= len(sorted) {
		return []feed.Record{}, nil
	}
	end := len(sorted)
	if limit < end-start {
		end = start + limit
	}

	return slices.Clone(sorted[start:end]), nil
}

// sortByDate orders dated records ascending and reverses them for desc, so
// ties come out mirrored. Undated records keep feed order at the end.
func sortByDate(records []feed.Record, desc bool) []feed.Record {
	dated := make([]keyed, 0, len(records))
	undated := make([]feed.Record, 0)
	for _, record := range records {
		at, ok := feed.ParseFeedDate(record.OriginalDate)
		if !ok {
			undated = append(undated, record)
			continue
		}
		dated = append(dated, keyed{record: record, at: at})
	}

	slices.SortStableFunc(dated, func(a, b keyed) int {
		return a.at.Compare(b.at)
	})
	if desc {
		slices.Reverse(dated)
	}

	sorted := make([]feed.Record, 0, len(records))
	for _, k := range dated {
		sorted = append(sorted, k.record)
	}
	return append(sorted, undated...)
}

// FilterByRange returns the records dated within [startDate, endDate], both
// given as dd.MM.yyyy. Both days are included in full.
func FilterByRange(records []feed.Record, startDate, endDate string) ([]feed.Record, error) {
	if startDate == "" || endDate == "" {
		return nil, &ValidationError{Field: FieldDates, Message: "both are required"}
	}

	from, err := feed.ParseRangeDate(startDate)
	if err != nil {
		return nil, &ValidationError{Field: FieldStartDate, Message: err.Error()}
	}
	to, err := feed.ParseRangeDate(endDate)
	if err != nil {
		return nil, &ValidationError{Field: FieldEndDate, Message: err.Error()}
	}
	to = to.AddDate(0, 0, 1).Add(-time.Nanosecond)

	filtered := make([]feed.Record, 0)
	for _, record := range records {
		at, ok := feed.ParseFeedDate(record.OriginalDate)
		if !ok {
			continue
		}
		if !at.Before(from) && !at.After(to) {
			filtered = append(filtered, record)
		}
	}

	return filtered, nil
}

func FindByID(records []feed.Record, id string) (feed.Record, error) {
	for _, record := range records {
		if record.ID == id {
			return record, nil
		}
	}
	return feed.Record{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}
