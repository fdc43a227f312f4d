package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/help"
	"github.com/charmbracelet/bubbles/v2/key"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/shelflife/pkg/aggregate"
	"tableflip.dev/shelflife/pkg/legend"
	"tableflip.dev/shelflife/pkg/pipeline"
	"tableflip.dev/shelflife/pkg/timeutil"
	"tableflip.dev/shelflife/pkg/tui/calendar"
	"tableflip.dev/shelflife/pkg/tui/theme"
	"tableflip.dev/shelflife/pkg/urgency"
)

// Controller re-runs aggregation when the calendar focus moves.
type Controller interface {
	Focus(ctx context.Context, key timeutil.DateKey, r aggregate.Range) (pipeline.Result, error)
}

// snapshotMsg carries a freshly presented aggregate into the program.
type snapshotMsg struct {
	agg    *aggregate.Aggregate
	counts legend.Counts
}

type errMsg struct{ err error }

// dayMsg reports that the wall clock moved to a new calendar date.
type dayMsg struct{ today timeutil.DateKey }

// Model is the calendar screen.
type Model struct {
	ctx   context.Context
	ctrl  Controller
	theme theme.Theme
	opts  calendar.Options
	keys  keyMap
	help  help.Model

	today    timeutil.DateKey
	selected timeutil.DateKey

	agg    *aggregate.Aggregate
	counts legend.Counts

	width  int
	height int
	status string
}

// New returns a model focused on today.
func New(ctx context.Context, ctrl Controller, today timeutil.DateKey) Model {
	return Model{
		ctx:      ctx,
		ctrl:     ctrl,
		theme:    theme.Default(),
		opts:     calendar.DefaultOptions(),
		keys:     defaultKeyMap(),
		help:     help.New(),
		today:    today,
		selected: today,
		status:   "loading",
	}
}

func (m Model) Init() tea.Cmd {
	return m.focus(m.selected)
}

// Selected returns the focused date.
func (m Model) Selected() timeutil.DateKey { return m.selected }

func (m Model) focus(key timeutil.DateKey) tea.Cmd {
	if m.ctrl == nil {
		return nil
	}
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		res, err := ctrl.Focus(ctx, key, aggregate.MonthRange(key))
		if err != nil {
			return errMsg{err}
		}
		return snapshotMsg{agg: res.Aggregate, counts: res.Counts}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case snapshotMsg:
		m.agg = msg.agg
		m.counts = msg.counts
		m.status = ""
		if msg.agg != nil {
			if !msg.agg.Selected.IsZero() {
				m.selected = msg.agg.Selected
			}
			if n := len(msg.agg.Issues); n > 0 {
				m.status = fmt.Sprintf("%d items have unreadable expiry dates", n)
			}
		}
	case errMsg:
		m.status = "ERR: " + msg.err.Error()
	case dayMsg:
		following := m.selected == m.today
		m.today = msg.today
		if following {
			m.selected = msg.today
		}
		return m, m.focus(m.selected)
	case tea.KeyPressMsg:
		next := m.selected
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Left):
			next = m.selected.AddDays(-1)
		case key.Matches(msg, m.keys.Right):
			next = m.selected.AddDays(1)
		case key.Matches(msg, m.keys.Up):
			next = m.selected.AddDays(-7)
		case key.Matches(msg, m.keys.Down):
			next = m.selected.AddDays(7)
		case key.Matches(msg, m.keys.PrevMonth):
			next = addMonths(m.selected, -1)
		case key.Matches(msg, m.keys.NextMonth):
			next = addMonths(m.selected, 1)
		case key.Matches(msg, m.keys.Today):
			next = m.today
		}
		if next != m.selected {
			m.selected = next
			return m, m.focus(next)
		}
	}
	return m, nil
}

func (m Model) View() string {
	month, err := m.selected.Time()
	if err != nil {
		return "invalid date " + string(m.selected)
	}

	title := m.theme.Panel.Title.Render(fmt.Sprintf("%s %d", month.Month(), month.Year()))
	days := calendar.DaysFrom(m.agg, month)
	cal := m.theme.Panel.Frame.Render(title + "\n\n" + calendar.Render(month, days, m.opts))
	side := m.theme.Panel.Frame.Render(m.legendView())

	body := lipgloss.JoinHorizontal(lipgloss.Top, cal, " ", side)
	body += "\n" + m.dayView()

	footer := m.theme.Footer.Help.Render(m.help.View(m.keys))
	status := m.theme.Footer.Status.Render(m.status)
	if strings.HasPrefix(m.status, "ERR: ") {
		status = m.theme.Footer.Error.Render(m.status)
	}
	return body + "\n" + footer + "\n" + status
}

func (m Model) legendView() string {
	lines := []string{m.theme.Panel.Title.Render("Legend")}
	for _, l := range urgency.Levels() {
		dot := m.theme.Level(l.Color()).Render(calendar.Dot)
		lines = append(lines, fmt.Sprintf("%s %-8s %3d", dot, l.String(), m.counts.Of(l)))
	}
	dot := m.theme.Level(urgency.None.Color()).Render(calendar.Dot)
	lines = append(lines,
		fmt.Sprintf("%s %-8s %3d", dot, "undated", m.counts.Unscheduled),
		"",
		fmt.Sprintf("this week  %3d", m.counts.ThisWeek),
		fmt.Sprintf("fridge     %3d", m.counts.PerLocation.Fridge),
		fmt.Sprintf("shelf      %3d", m.counts.PerLocation.Shelf),
		fmt.Sprintf("total      %3d", m.counts.Total),
	)
	return strings.Join(lines, "\n")
}

func (m Model) dayView() string {
	t, _ := m.selected.Time()
	head := m.theme.Panel.Title.Render(t.Format("Monday, January 2"))
	entries := m.agg.ItemsOn(m.selected)
	if len(entries) == 0 {
		return head + "\n" + m.theme.Urgency.Muted.Render("  nothing expires")
	}
	lines := []string{head}
	for _, e := range entries {
		style := m.theme.Level(e.Urgency.Color())
		line := fmt.Sprintf("  %s %s  %s",
			style.Render(calendar.Dot), e.Item.Name, style.Render(e.Urgency.Label()))
		if m.width > 0 {
			line = truncate.StringWithTail(line, uint(m.width), "…")
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func addMonths(k timeutil.DateKey, n int) timeutil.DateKey {
	t, err := k.Time()
	if err != nil {
		return k
	}
	first := time.Date(t.Year(), t.Month()+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	day := t.Day()
	if last := timeutil.DaysIn(first); day > last {
		day = last
	}
	return timeutil.KeyFor(first.AddDate(0, 0, day-1))
}
