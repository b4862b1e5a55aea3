package feed

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

const (
	// DisplayLayout renders e.g. "15 January 2024, 10:30".
	DisplayLayout = "02 January 2006, 15:04"
	// RangeLayout is the dd.MM.yyyy format accepted for filter boundaries.
	RangeLayout = "02.01.2006"
)

// ParseFeedDate turns a feed-native date string (RFC 1123 and the other
// layouts found in the wild) into an instant. A zone abbreviation is only
// accepted when it is UTC/GMT or names a zone of time.Local; anything else
// would be read at offset zero.
func ParseFeedDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}

	t, err := dateparse.ParseIn(raw, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	if !knownZone(t) {
		slog.Debug("Unknown timezone abbreviation in date", "date", raw)
		return time.Time{}, false
	}
	return t, true
}

// knownZone reports false for the fixed zero-offset zone the time package
// fabricates from an abbreviation it cannot resolve.
func knownZone(t time.Time) bool {
	name, offset := t.Zone()
	if offset != 0 {
		return true
	}
	switch name {
	case "", "UTC", "GMT", "UT":
		return true
	}
	localName, _ := t.In(time.Local).Zone()
	return name == localName
}

// FormatDisplayDate renders raw with DisplayLayout in the local timezone.
// Failures are logged and degrade to fallback.
func FormatDisplayDate(raw *string, fallback string) string {
	if raw == nil {
		return fallback
	}

	t, ok := ParseFeedDate(*raw)
	if !ok {
		slog.Warn("Failed to format publication date", "date", *raw)
		return fallback
	}
	return t.In(time.Local).Format(DisplayLayout)
}

// ParseRangeDate parses a filter boundary. Unlike FormatDisplayDate it
// reports failure to the caller.
func ParseRangeDate(value string) (time.Time, error) {
	t, err := time.ParseInLocation(RangeLayout, strings.TrimSpace(value), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected dd.MM.yyyy: %w", value, err)
	}
	return t, nil
}
