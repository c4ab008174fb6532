package cli

import (
	"testing"

	"github.com/dsakenov/minebudget/internal/model"
)

func TestFormatMoney(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1250000, "1,250,000"},
		{1250000.5, "1,250,000.50"},
		{-200000, "-200,000"},
		{0.25, "0.25"},
		{1000000.004, "1,000,000"}, // sub-cent drift rounds away
	}
	for _, tc := range cases {
		if got := FormatMoney(tc.in); got != tc.want {
			t.Errorf("FormatMoney(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatSigned(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "+0"},
		{100000, "+100,000"},
		{-200000, "-200,000"},
	}
	for _, tc := range cases {
		if got := FormatSigned(tc.in); got != tc.want {
			t.Errorf("FormatSigned(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatStage(t *testing.T) {
	cases := []struct {
		in   model.Stage
		want string
	}{
		{model.StageContract, "contract"},
		{model.StageMarketing, "marketing"},
		{model.StageNone, "-"},
	}
	for _, tc := range cases {
		if got := FormatStage(tc.in); got != tc.want {
			t.Errorf("FormatStage(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	cases := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly ten", 11, "exactly ten"},
		{"a very long project name", 10, "a very lo…"},
		{"Вентиляция шахты", 8, "Вентиля…"}, // rune-aware
	}
	for _, tc := range cases {
		if got := Truncate(tc.in, tc.max); got != tc.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tc.in, tc.max, got, tc.want)
		}
	}
}
