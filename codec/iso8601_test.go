package codec

import (
	"testing"
	"time"
)

func TestParseISO8601_AcceptedLayouts(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{"2025-01-01T00:00:00Z", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"2025-01-01T00:00:00.250Z", time.Date(2025, 1, 1, 0, 0, 0, 250_000_000, time.UTC)},
		{"2025-01-01T08:30:00.000-0700", time.Date(2025, 1, 1, 8, 30, 0, 0, time.FixedZone("", -7*3600))},
		{"2025-01-01T08:30:00", time.Date(2025, 1, 1, 8, 30, 0, 0, time.UTC)},
		{"2025-01-01", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		got, err := ParseISO8601(tc.in)
		if err != nil {
			t.Fatalf("parse %q err: %v", tc.in, err)
		}
		if !got.Equal(tc.want) {
			t.Fatalf("parse %q = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseISO8601_Rejects(t *testing.T) {
	for _, in := range []string{"", "yesterday", "01/02/2025"} {
		if _, err := ParseISO8601(in); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}

func TestFormatISO8601_Canonical(t *testing.T) {
	in := time.Date(2025, 2, 1, 9, 30, 0, 250_000_000, time.FixedZone("CET", 3600))
	got := FormatISO8601(in)
	if got != "2025-02-01T08:30:00.250Z" {
		t.Fatalf("unexpected canonical form: %s", got)
	}
}

func TestISO8601_RoundTrip(t *testing.T) {
	orig := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)
	parsed, err := ParseISO8601(FormatISO8601(orig))
	if err != nil {
		t.Fatalf("round-trip parse err: %v", err)
	}
	if !parsed.Equal(orig) {
		t.Fatalf("round-trip changed the instant: %v vs %v", parsed, orig)
	}
}
