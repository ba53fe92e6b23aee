// Package cli provides formatting, parsing and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/laosia/navi/internal/model"
)

// Currency is the symbol prefixed to money values.
var Currency = "¥"

// FormatMoney formats an amount with thousands separators.
// e.g., 1234567 -> "¥1,234,567", -5000 -> "-¥5,000"
func FormatMoney(m model.Money) string {
	if m < 0 {
		return "-" + Currency + humanize.Comma(-int64(m))
	}
	return Currency + humanize.Comma(int64(m))
}

// FormatThousands abbreviates an amount to thousands with places decimals.
// e.g., 850000 -> "¥850K"
func FormatThousands(m model.Money, places int) string {
	sign := ""
	if m < 0 {
		sign = "-"
		m = -m
	}
	return fmt.Sprintf("%s%s%.*fK", sign, Currency, places, float64(m)/1000)
}

// FormatNumber adds comma separators to an integer.
func FormatNumber(n int64) string {
	return humanize.Comma(n)
}

// FormatPercent formats a percentage (already scaled to 0-100).
func FormatPercent(pct float64, places int) string {
	return fmt.Sprintf("%.*f%%", places, pct)
}

// FormatDelta formats a money delta with an explicit sign.
func FormatDelta(d model.Money) string {
	if d >= 0 {
		return "+" + FormatMoney(d)
	}
	return FormatMoney(d)
}

// FormatPointDelta formats a change in percentage points.
func FormatPointDelta(d float64, places int) string {
	return fmt.Sprintf("%+.*fpt", places, d)
}

// FormatDayOfWeek returns a 3-letter day abbreviation from a weekday number.
func FormatDayOfWeek(weekday int) string {
	days := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	if weekday >= 0 && weekday < 7 {
		return days[weekday]
	}
	return "???"
}

// FormatLabel turns an identifier such as "needs-improvement" into
// "Needs improvement".
func FormatLabel(id string) string {
	s := strings.ReplaceAll(id, "-", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
