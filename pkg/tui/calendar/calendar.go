// Package calendar renders a month grid with per-day urgency indicators.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/shelflife/pkg/aggregate"
	"tableflip.dev/shelflife/pkg/timeutil"
	"tableflip.dev/shelflife/pkg/tui/theme"
	"tableflip.dev/shelflife/pkg/urgency"
)

// Dot is the indicator glyph.
const Dot = "●"

// Day describes a single day rendered in the calendar.
type Day struct {
	Day        int
	Count      int
	Indicators []urgency.Color
	IsToday    bool
	IsSelected bool
}

// Options controls calendar styling.
type Options struct {
	HeaderStyle   lipgloss.Style
	EmptyStyle    lipgloss.Style
	EntryStyle    lipgloss.Style
	TodayStyle    lipgloss.Style
	SelectedStyle lipgloss.Style
	Theme         theme.Theme
	// MaxDots is the indicator room reserved after each day number.
	MaxDots    int
	ShowHeader bool
}

// DefaultOptions returns the styling used for calendar rendering.
func DefaultOptions() Options {
	header := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Bold(true)
	empty := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	entry := lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	today := lipgloss.NewStyle().Underline(true)
	selected := lipgloss.NewStyle().Background(lipgloss.Color("63")).Foreground(lipgloss.Color("0"))
	return Options{
		HeaderStyle:   header,
		EmptyStyle:    empty,
		EntryStyle:    entry,
		TodayStyle:    today,
		SelectedStyle: selected,
		Theme:         theme.Default(),
		MaxDots:       aggregate.DefaultMaxIndicators,
		ShowHeader:    true,
	}
}

// DaysFrom turns the marks of agg that fall in month into calendar days.
func DaysFrom(agg *aggregate.Aggregate, month time.Time) []Day {
	var days []Day
	for _, m := range agg.Marks() {
		t, err := m.Key.Time()
		if err != nil || t.Year() != month.Year() || t.Month() != month.Month() {
			continue
		}
		d := Day{
			Day:        t.Day(),
			Count:      m.Count,
			IsToday:    m.Today,
			IsSelected: m.Selected,
		}
		for _, ind := range m.Indicators {
			d.Indicators = append(d.Indicators, ind.Color)
		}
		days = append(days, d)
	}
	return days
}

// Render produces a multi-line calendar string for the given month.
func Render(month time.Time, days []Day, opts Options) string {
	if month.IsZero() {
		return ""
	}

	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := timeutil.DaysIn(first)

	byDay := make(map[int]Day, len(days))
	for _, d := range days {
		if d.Day >= 1 && d.Day <= daysInMonth {
			byDay[d.Day] = d
		}
	}

	cell := 2 + opts.MaxDots
	var lines []string
	if opts.ShowHeader {
		var names []string
		for d := time.Sunday; d <= time.Saturday; d++ {
			names = append(names, fmt.Sprintf("%-*s", cell, d.String()[0:2]))
		}
		lines = append(lines, opts.HeaderStyle.Render(strings.Join(names, " ")))
	}

	startOffset := int(timeutil.StartDay(first))
	totalCells := startOffset + daysInMonth
	rows := (totalCells + 6) / 7

	for row := 0; row < rows; row++ {
		var cells []string
		for col := 0; col < 7; col++ {
			cellIdx := row*7 + col
			day := cellIdx - startOffset + 1
			if day < 1 || day > daysInMonth {
				cells = append(cells, opts.EmptyStyle.Render(strings.Repeat(" ", cell)))
				continue
			}
			cells = append(cells, renderDay(byDay[day], day, opts))
		}
		lines = append(lines, strings.Join(cells, " "))
	}

	return strings.Join(lines, "\n")
}

func renderDay(info Day, day int, opts Options) string {
	text := fmt.Sprintf("%2d", day)

	style := opts.EmptyStyle
	if info.Count > 0 {
		style = opts.EntryStyle
	}
	if info.IsToday {
		style = style.Inherit(opts.TodayStyle)
	}
	if info.IsSelected {
		style = opts.SelectedStyle.Inherit(style)
	}

	dots := info.Indicators
	if len(dots) > opts.MaxDots {
		dots = dots[:opts.MaxDots]
	}
	var b strings.Builder
	b.WriteString(style.Render(text))
	for _, c := range dots {
		b.WriteString(opts.Theme.Level(c).Render(Dot))
	}
	b.WriteString(strings.Repeat(" ", opts.MaxDots-len(dots)))
	return b.String()
}
