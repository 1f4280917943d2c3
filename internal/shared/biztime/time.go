// Package biztime provides UTC time helpers shared by the moderation domain.
// All storage and transport use UTC. Timestamps crossing a serialisation
// boundary are ISO-8601 strings terminated with "Z".
//
// The business timezone is the location background jobs are scheduled in.
package biztime

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

const (
	// DefaultTimezone is the default business timezone.
	DefaultTimezone = "UTC"

	// ISOLayout is the wire layout for timestamps: microsecond precision, UTC, Z suffix.
	ISOLayout = "2006-01-02T15:04:05.000000Z"
)

var (
	bizLocation     *time.Location
	bizLocationOnce sync.Once
	initErr         error
)

// Init loads the business timezone. Only the first call has effect.
// An empty tz means UTC.
func Init(tz string) error {
	bizLocationOnce.Do(func() {
		if tz == "" {
			tz = DefaultTimezone
		}
		bizLocation, initErr = time.LoadLocation(tz)
	})
	return initErr
}

// Location returns the business timezone location.
func Location() *time.Location {
	if bizLocation == nil {
		if err := Init(""); err != nil {
			panic(fmt.Sprintf("biztime: failed to auto-initialize with default timezone: %v", err))
		}
	}
	return bizLocation
}

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// FormatISO renders t as an ISO-8601 UTC string ending in Z.
func FormatISO(t time.Time) string {
	return t.UTC().Format(ISOLayout)
}

var parseLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

// ParseISO parses an ISO-8601 timestamp. Values without an offset are taken as UTC.
// The result is always normalized to UTC.
func ParseISO(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp: %q", s)
}
