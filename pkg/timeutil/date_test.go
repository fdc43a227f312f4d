package timeutil

import (
	"testing"
	"time"
)

func TestParseDateKeyLayouts(t *testing.T) {
	tests := []struct {
		in   string
		want DateKey
	}{
		{"2024-01-10", "2024-01-10"},
		{" 2024-01-10 ", "2024-01-10"},
		{"2024-01-10T23:30:00-05:00", "2024-01-11"},
		{"2024-01-10T01:30:00+05:00", "2024-01-09"},
		{"2024-01-10T00:00:00.000Z", "2024-01-10"},
		{"2024-01-10T08:15:00", "2024-01-10"},
	}
	for _, tt := range tests {
		got, err := ParseDateKey(tt.in)
		if err != nil {
			t.Fatalf("ParseDateKey(%q): unexpected error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseDateKey(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestParseDateKeySameInstantSameKey(t *testing.T) {
	utc, err := ParseDateKey("2024-01-11T04:30:00Z")
	if err != nil {
		t.Fatalf("ParseDateKey: %v", err)
	}
	offset, err := ParseDateKey("2024-01-10T23:30:00-05:00")
	if err != nil {
		t.Fatalf("ParseDateKey: %v", err)
	}
	if utc != offset {
		t.Fatalf("same instant keyed apart: %s vs %s", utc, offset)
	}
}

func TestParseDateKeyInvalid(t *testing.T) {
	for _, in := range []string{"", "   ", "2024-13-01", "not a date", "10/01/2024"} {
		if _, err := ParseDateKey(in); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}

func TestKeyForIgnoresLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	honolulu := time.FixedZone("HST", -10*60*60)

	a := KeyFor(time.Date(2024, 1, 10, 0, 30, 0, 0, tokyo))
	b := KeyFor(time.Date(2024, 1, 10, 23, 30, 0, 0, honolulu))
	if a != b {
		t.Fatalf("same calendar date bucketed differently: %s vs %s", a, b)
	}
	if a != "2024-01-10" {
		t.Fatalf("unexpected key %s", a)
	}
}

func TestDaysBetween(t *testing.T) {
	ref := MustKey("2024-01-10")
	tests := []struct {
		to   string
		want int
	}{
		{"2024-01-10", 0},
		{"2024-01-08", -2},
		{"2024-01-12", 2},
		{"2024-03-01", 51},
		{"1969-12-31", -19733},
	}
	for _, tt := range tests {
		if got := DaysBetween(ref, MustKey(tt.to)); got != tt.want {
			t.Fatalf("DaysBetween(%s, %s) = %d, want %d", ref, tt.to, got, tt.want)
		}
	}
	if got := DaysBetween(ref, "garbage"); got != 0 {
		t.Fatalf("expected zero distance for invalid key, got %d", got)
	}
}

func TestMonthBounds(t *testing.T) {
	first, last := MonthBounds(MustKey("2024-02-14"))
	if first != "2024-02-01" || last != "2024-02-29" {
		t.Fatalf("unexpected bounds %s..%s", first, last)
	}
}

func TestResolveDate(t *testing.T) {
	now := time.Date(2024, 1, 10, 18, 0, 0, 0, time.UTC)
	tests := []struct {
		in   string
		want DateKey
	}{
		{"today", "2024-01-10"},
		{"Tomorrow", "2024-01-11"},
		{"yesterday", "2024-01-09"},
		{"3d", "2024-01-13"},
		{"1w", "2024-01-17"},
		{"2024-02-01", "2024-02-01"},
	}
	for _, tt := range tests {
		got, err := ResolveDate(tt.in, now)
		if err != nil {
			t.Fatalf("ResolveDate(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ResolveDate(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
	if _, err := ResolveDate("soonish", now); err == nil {
		t.Fatalf("expected error for unparseable input")
	}
}
