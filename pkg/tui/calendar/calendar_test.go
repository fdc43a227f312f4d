package calendar

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"

	"tableflip.dev/shelflife/pkg/aggregate"
	"tableflip.dev/shelflife/pkg/item"
	"tableflip.dev/shelflife/pkg/urgency"
)

func TestRenderLayout(t *testing.T) {
	month := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out := ansi.Strip(Render(month, nil, DefaultOptions()))
	lines := strings.Split(out, "\n")
	// Header plus five weeks: January 2024 starts on a Monday.
	if len(lines) != 6 {
		t.Fatalf("expected 6 lines, got %d:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "Su") {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if !strings.Contains(lines[1], " 1") || strings.Contains(lines[1], "31") {
		t.Fatalf("unexpected first week %q", lines[1])
	}
	if !strings.Contains(lines[5], "31") {
		t.Fatalf("unexpected last week %q", lines[5])
	}
	width := ansi.StringWidth(lines[1])
	for i, l := range lines[1:] {
		if i < 4 && ansi.StringWidth(l) != width {
			t.Fatalf("week %d has width %d, want %d", i, ansi.StringWidth(l), width)
		}
	}
}

func TestRenderIndicators(t *testing.T) {
	month := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	opts := DefaultOptions()
	opts.MaxDots = 2
	days := []Day{
		{Day: 10, Count: 4, Indicators: []urgency.Color{urgency.ColorDanger, urgency.ColorWarning, urgency.ColorSafe}},
	}
	out := ansi.Strip(Render(month, days, opts))
	if !strings.Contains(out, "10"+Dot+Dot+" ") {
		t.Fatalf("expected two dots after day 10:\n%s", out)
	}
	if strings.Contains(out, Dot+Dot+Dot) {
		t.Fatalf("dots exceed MaxDots:\n%s", out)
	}
}

func TestRenderZeroMonth(t *testing.T) {
	if got := Render(time.Time{}, nil, DefaultOptions()); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}

func TestDaysFrom(t *testing.T) {
	cfg := aggregate.DefaultConfig()
	cfg.ReferenceDate = time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	cfg.Selected = "2024-01-20"
	agg := aggregate.Build([]item.Item{
		{ID: "a", Name: "milk", Expiry: "2024-01-10"},
		{ID: "b", Name: "ham", Expiry: "2024-01-10"},
		{ID: "c", Name: "rice", Expiry: "2024-02-03"},
	}, cfg)

	days := DaysFrom(agg, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	if len(days) != 2 {
		t.Fatalf("expected today and the selected day, got %+v", days)
	}
	byDay := map[int]Day{}
	for _, d := range days {
		byDay[d.Day] = d
	}
	today := byDay[10]
	if today.Count != 2 || !today.IsToday || len(today.Indicators) != 1 || today.Indicators[0] != urgency.ColorWarning {
		t.Fatalf("unexpected today %+v", today)
	}
	if sel := byDay[20]; !sel.IsSelected || sel.Count != 0 {
		t.Fatalf("unexpected selected day %+v", sel)
	}
}
