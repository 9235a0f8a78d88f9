// Package codec holds the wire-format helpers shared by concrete record
// types. Timestamps travel as ISO-8601 strings; nothing here performs I/O.
package codec

import (
	"errors"
	"time"
)

// layouts accepted on input, most specific first. Mobile clients commonly emit
// zone offsets without a colon and fractional seconds in milliseconds.
var iso8601Layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000-0700",
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ErrInvalidISO8601 reports input that matches no accepted ISO-8601 layout.
var ErrInvalidISO8601 = errors.New("codec: not an ISO-8601 timestamp")

// ParseISO8601 parses an ISO-8601 timestamp string.
func ParseISO8601(s string) (time.Time, error) {
	for _, layout := range iso8601Layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidISO8601
}

// FormatISO8601 renders the canonical wire form: UTC, millisecond precision,
// trailing Z.
func FormatISO8601(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}
