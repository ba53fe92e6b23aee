package cli

import (
	"testing"

	"github.com/laosia/navi/internal/model"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   model.Money
		want string
	}{
		{0, "¥0"},
		{450, "¥450"},
		{850_000, "¥850,000"},
		{1_428_571, "¥1,428,571"},
		{-249_600, "-¥249,600"},
	}
	for _, tt := range tests {
		if got := FormatMoney(tt.in); got != tt.want {
			t.Errorf("FormatMoney(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatThousands(t *testing.T) {
	tests := []struct {
		in     model.Money
		places int
		want   string
	}{
		{850_000, 0, "¥850K"},
		{2_300_000, 0, "¥2300K"},
		{1_500, 1, "¥1.5K"},
		{-80_000, 0, "-¥80K"},
	}
	for _, tt := range tests {
		if got := FormatThousands(tt.in, tt.places); got != tt.want {
			t.Errorf("FormatThousands(%d, %d) = %q, want %q", tt.in, tt.places, got, tt.want)
		}
	}
}

func TestFormatPercentAndDeltas(t *testing.T) {
	tests := []struct {
		name, got, want string
	}{
		{"FormatPercent(70.8333, 1)", FormatPercent(70.8333, 1), "70.8%"},
		{"FormatPercent(42.857, 0)", FormatPercent(42.857, 0), "43%"},
		{"FormatDelta(100)", FormatDelta(100), "+¥100"},
		{"FormatDelta(0)", FormatDelta(0), "+¥0"},
		{"FormatDelta(-50)", FormatDelta(-50), "-¥50"},
		{"FormatPointDelta(-3.94, 1)", FormatPointDelta(-3.94, 1), "-3.9pt"},
		{"FormatPointDelta(0, 1)", FormatPointDelta(0, 1), "+0.0pt"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}

func TestFormatLabel(t *testing.T) {
	tests := map[string]string{
		"needs-improvement": "Needs improvement",
		"safe":              "Safe",
		"":                  "",
	}
	for in, want := range tests {
		if got := FormatLabel(in); got != want {
			t.Errorf("FormatLabel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatDayOfWeek(t *testing.T) {
	tests := map[int]string{0: "Sun", 6: "Sat", 7: "???"}
	for in, want := range tests {
		if got := FormatDayOfWeek(in); got != want {
			t.Errorf("FormatDayOfWeek(%d) = %q, want %q", in, got, want)
		}
	}
}
