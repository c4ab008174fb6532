package model

import (
	"sort"
	"testing"
)

func TestParseDate_Valid(t *testing.T) {
	for _, s := range []string{"2026-01-01", "2024-02-29", "1999-12-31"} {
		d, err := ParseDate(s)
		if err != nil {
			t.Errorf("ParseDate(%q): %v", s, err)
		}
		if d.String() != s {
			t.Errorf("ParseDate(%q) = %q", s, d)
		}
	}
}

func TestParseDate_Invalid(t *testing.T) {
	cases := []string{
		"",
		"2026-1-1",      // not zero-padded
		"2026-13-01",    // bad month
		"2026-02-30",    // bad day
		"01-02-2026",    // wrong order
		"2026/01/02",    // wrong separator
		"2026-01-02T00", // trailing junk
	}
	for _, s := range cases {
		if _, err := ParseDate(s); err == nil {
			t.Errorf("ParseDate(%q) accepted", s)
		}
	}
}

func TestDate_LexicalOrderIsChronological(t *testing.T) {
	dates := []Date{"2026-02-01", "2025-12-31", "2026-01-15", "2026-01-02"}
	sorted := append([]Date(nil), dates...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	for i := 1; i < len(sorted); i++ {
		if !sorted[i-1].Time().Before(sorted[i].Time()) {
			t.Errorf("lexical order broke chronology at %s >= %s", sorted[i-1], sorted[i])
		}
	}
}

func TestToday_RoundTrips(t *testing.T) {
	if _, err := ParseDate(string(Today())); err != nil {
		t.Errorf("Today() = %q does not parse: %v", Today(), err)
	}
}
