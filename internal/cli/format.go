// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dsakenov/minebudget/internal/model"
)

// FormatMoney formats an amount with thousands separators.
// Whole amounts print without decimals; fractional ones keep two.
// e.g., 1250000 -> "1,250,000", 1250000.5 -> "1,250,000.50"
func FormatMoney(v float64) string {
	neg := v < 0
	abs := math.Abs(v)

	whole := math.Floor(abs + 0.005)
	frac := abs - whole

	out := groupThousands(int64(whole))
	if frac >= 0.005 {
		out += fmt.Sprintf(".%02d", int(math.Round(frac*100))%100)
	}
	if neg {
		return "-" + out
	}
	return out
}

// FormatSigned formats a delta with an explicit sign.
// e.g., -200000 -> "-200,000", 0 -> "+0"
func FormatSigned(v float64) string {
	if v < 0 {
		return "-" + FormatMoney(-v)
	}
	return "+" + FormatMoney(v)
}

// FormatStage renders a financing stage for display.
func FormatStage(s model.Stage) string {
	switch s {
	case model.StageContract:
		return "contract"
	case model.StageMarketing:
		return "marketing"
	default:
		return "-"
	}
}

func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// Truncate shortens a string to max runes, appending an ellipsis.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 1 {
		return string(runes[:max])
	}
	return string(runes[:max-1]) + "…"
}
