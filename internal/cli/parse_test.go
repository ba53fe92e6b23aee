package cli

import (
	"errors"
	"testing"
	"time"

	"github.com/laosia/navi/internal/finance"
	"github.com/laosia/navi/internal/model"
)

func TestParseMoney(t *testing.T) {
	for _, in := range []string{"1200", "1,200", "¥1,200", " 1200 "} {
		m, err := ParseMoney("rent", in)
		if err != nil {
			t.Fatalf("ParseMoney(%q): unexpected error: %v", in, err)
		}
		if m != 1_200 {
			t.Errorf("ParseMoney(%q) = %d, want 1200", in, m)
		}
	}

	for _, in := range []string{"", "abc", "12.5", "-1", "9223372036854775807", "1,000,000,000,001"} {
		if _, err := ParseMoney("rent", in); !errors.Is(err, finance.ErrInvalidInput) {
			t.Errorf("ParseMoney(%q) err = %v, want invalid input", in, err)
		}
	}

	m, err := ParseMoney("rent", "1,000,000,000,000")
	if err != nil || m != maxAmount {
		t.Errorf("ParseMoney(max) = %d, %v, want %d", m, err, model.Money(maxAmount))
	}
}

func TestParseCount(t *testing.T) {
	n, err := ParseCount("staff count", "3")
	if err != nil || n != 3 {
		t.Fatalf("ParseCount(3) = %d, %v, want 3", n, err)
	}

	_, err = ParseCount("staff count", "2.5")
	var ie *finance.InputError
	if !errors.As(err, &ie) || ie.Field != "staff count" {
		t.Errorf("ParseCount(2.5) err = %v, want InputError on staff count", err)
	}
}

func TestParsePercent(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"30%", 30},
		{"32.5", 32.5},
		{"0", 0},
	}
	for _, tt := range tests {
		got, err := ParsePercent("cost rate", tt.in)
		if err != nil {
			t.Fatalf("ParsePercent(%q): unexpected error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParsePercent(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	for _, in := range []string{"100", "120", "-1", "x", "NaN", "nan%", "Inf", "-Inf"} {
		if _, err := ParsePercent("cost rate", in); !errors.Is(err, finance.ErrInvalidInput) {
			t.Errorf("ParsePercent(%q) err = %v, want invalid input", in, err)
		}
	}
}

func TestParseMonthAndDate(t *testing.T) {
	y, m, err := ParseMonth("2025-02")
	if err != nil || y != 2025 || m != time.February {
		t.Errorf("ParseMonth(2025-02) = %d, %s, %v", y, m, err)
	}

	if _, _, err := ParseMonth("Feb 2025"); !errors.Is(err, finance.ErrInvalidInput) {
		t.Errorf("ParseMonth(Feb 2025) err = %v, want invalid input", err)
	}

	d, err := ParseDate("2025-01-15")
	if err != nil || !d.Equal(model.Day(2025, 1, 15)) {
		t.Errorf("ParseDate(2025-01-15) = %s, %v", d, err)
	}
}
