package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/laosia/navi/internal/finance"
	"github.com/laosia/navi/internal/model"
)

// maxAmount caps parsed amounts well below the point where monthly totals
// overflow.
const maxAmount = 1_000_000_000_000

func badInput(field, reason string) error {
	return &finance.InputError{Field: field, Reason: reason}
}

func cleanNumber(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, Currency)
	s = strings.TrimPrefix(s, "¥")
	s = strings.TrimPrefix(s, "$")
	return strings.ReplaceAll(s, ",", "")
}

// ParseMoney reads a non-negative whole amount such as "1,200" or "¥1200".
func ParseMoney(field, s string) (model.Money, error) {
	raw := cleanNumber(s)
	if raw == "" {
		return 0, badInput(field, "is required")
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, badInput(field, fmt.Sprintf("%q is not a whole amount", s))
	}
	if n < 0 {
		return 0, badInput(field, "must be non-negative")
	}
	if n > maxAmount {
		return 0, badInput(field, "is too large")
	}
	return model.Money(n), nil
}

// ParseCount reads a non-negative integer such as a staff or customer count.
// Fractions are rejected rather than rounded.
func ParseCount(field, s string) (int, error) {
	raw := cleanNumber(s)
	if raw == "" {
		return 0, badInput(field, "is required")
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, badInput(field, fmt.Sprintf("%q is not a whole number", s))
	}
	if n < 0 {
		return 0, badInput(field, "must be non-negative")
	}
	return n, nil
}

// ParsePercent reads a percentage in [0, 100), with or without a "%" suffix.
func ParsePercent(field, s string) (float64, error) {
	raw := strings.TrimSuffix(strings.TrimSpace(s), "%")
	if raw == "" {
		return 0, badInput(field, "is required")
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, badInput(field, fmt.Sprintf("%q is not a number", s))
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, badInput(field, "must be a finite number")
	}
	if f < 0 || f >= 100 {
		return 0, badInput(field, "must be within [0, 100)")
	}
	return f, nil
}

// ParseMonth reads "2025-01".
func ParseMonth(s string) (int, time.Month, error) {
	t, err := time.Parse("2006-01", strings.TrimSpace(s))
	if err != nil {
		return 0, 0, badInput("month", fmt.Sprintf("%q is not YYYY-MM", s))
	}
	return t.Year(), t.Month(), nil
}

// ParseDate reads "2025-01-15" as a calendar day.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, badInput("date", fmt.Sprintf("%q is not YYYY-MM-DD", s))
	}
	return model.DateOf(t), nil
}
