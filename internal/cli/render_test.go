package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/laosia/navi/internal/finance"
	"github.com/laosia/navi/internal/report"
	"github.com/laosia/navi/internal/session"
)

func TestRenderTable_AlignsWideCells(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"Item", "Amount"},
		Rows: [][]string{
			{"Rent", FormatMoney(150_000)},
			{"---"},
			{"Total", FormatMoney(935_000)},
		},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 7 {
		t.Fatalf("got %d lines, want 7:\n%s", len(lines), out)
	}
	width := len([]rune(lines[0]))
	for _, l := range lines[1:] {
		if w := len([]rune(l)); w != width {
			t.Errorf("line %q width = %d, want %d", l, w, width)
		}
	}
	if !strings.Contains(out, "¥935,000") {
		t.Errorf("table missing total:\n%s", out)
	}
}

func TestRenderTable_Empty(t *testing.T) {
	if out := RenderTable(Table{}); out != "" {
		t.Errorf("RenderTable(empty) = %q, want empty", out)
	}
}

func TestRenderProgressBar(t *testing.T) {
	if out := RenderProgressBar(50, 10); !strings.Contains(out, "█████░░░░░") {
		t.Errorf("RenderProgressBar(50, 10) = %q", out)
	}
	if out := RenderProgressBar(150, 4); !strings.Contains(out, "████]") {
		t.Errorf("RenderProgressBar(150, 4) = %q, want clamped full bar", out)
	}
	if out := RenderProgressBar(50, 0); out != "" {
		t.Errorf("RenderProgressBar(50, 0) = %q, want empty", out)
	}
}

func TestRenderSparkline(t *testing.T) {
	if got := RenderSparkline([]float64{0, 10}); got != "▁█" {
		t.Errorf("RenderSparkline = %q, want ▁█", got)
	}
	if got := RenderSparkline(nil); got != "" {
		t.Errorf("RenderSparkline(nil) = %q, want empty", got)
	}
}

func TestRenderCalendar(t *testing.T) {
	s, err := session.New(session.Seed())
	if err != nil {
		t.Fatal(err)
	}
	cf := report.BuildCashflow(s, finance.DefaultPolicy(), 2025, time.February)

	out := RenderCalendar(cf, 0)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// header plus two lines per week; February 2025 starts on a Saturday
	if len(lines) != 1+2*5 {
		t.Errorf("calendar has %d lines, want 11:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "Sun") {
		t.Errorf("header = %q, want weekday names", lines[0])
	}
	for _, want := range []string{"20 !", "¥3110K"} {
		if !strings.Contains(out, want) {
			t.Errorf("calendar missing %q:\n%s", want, out)
		}
	}
}
