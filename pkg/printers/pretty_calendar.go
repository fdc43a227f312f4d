package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/shelflife/pkg/aggregate"
	"tableflip.dev/shelflife/pkg/timeutil"
)

// minCellWidth fits a day number, two indicator dots and a gap.
const minCellWidth = 5

// Calendar prints the month containing month as a grid. Days with items are
// followed by their indicator dots; today is bold and the selected day is
// underlined. Cells widen to fit the most dots any day carries, which Build
// already bounds by MaxIndicatorsPerDate.
func (pp *PrettyPrint) Calendar(month timeutil.DateKey, agg *aggregate.Aggregate) {
	then, err := month.Time()
	if err != nil {
		return
	}
	marks := make(map[int]aggregate.Mark)
	for _, m := range agg.Marks() {
		t, err := m.Key.Time()
		if err != nil || t.Year() != then.Year() || t.Month() != then.Month() {
			continue
		}
		marks[t.Day()] = m
	}
	cellWidth := minCellWidth
	for _, m := range marks {
		if w := len(m.Indicators) + 3; w > cellWidth {
			cellWidth = w
		}
	}
	width := 7 * cellWidth

	tf := color.New(color.FgWhite, color.Italic)
	title := fmt.Sprintf("%s %d", then.Month(), then.Year())
	mid := (width - len(title)) / 2
	_, _ = tf.Fprintf(pp.out(), "%s%s\n", strings.Repeat(" ", mid), title)

	hf := color.New(color.Faint)
	for d := time.Sunday; d <= time.Saturday; d++ {
		_, _ = hf.Fprintf(pp.out(), "%-*s", cellWidth, d.String()[0:2])
	}
	_, _ = fmt.Fprintln(pp.out(), "")

	d := timeutil.StartDay(then)
	// Pad out the start of the month.
	for i := time.Sunday; i < d; i++ {
		_, _ = fmt.Fprint(pp.out(), strings.Repeat(" ", cellWidth))
	}

	days := timeutil.DaysIn(then)
	for i := 1; i <= days; i++ {
		m, ok := marks[i]
		printer := color.New(color.Faint, color.FgWhite)
		if ok && m.Count > 0 {
			printer = color.New(color.Bold, color.FgHiWhite)
		}
		if ok && m.Today {
			printer.Add(color.Bold)
		}
		if ok && m.Selected {
			printer.Add(color.Underline)
		}
		_, _ = printer.Fprintf(pp.out(), "%2d", i)

		dots := m.Indicators
		_, _ = fmt.Fprint(pp.out(), Dots(dots), strings.Repeat(" ", cellWidth-2-len(dots)))

		d++
		if d > time.Saturday {
			d = time.Sunday
			_, _ = fmt.Fprint(pp.out(), "\n")
		}
	}
	_, _ = fmt.Fprint(pp.out(), "\n\n")
}

// Agenda prints every dated bucket of agg with its entries, followed by the
// unscheduled items.
func (pp *PrettyPrint) Agenda(agg *aggregate.Aggregate) {
	if agg == nil || agg.Empty() {
		pp.Items()
		return
	}
	b := color.New(color.Bold)
	for _, bucket := range agg.Buckets {
		t, _ := bucket.Key.Time()
		header := fmt.Sprintf("%s %s", t.Format("Mon Jan _2"), Dots(bucket.Indicators))
		if bucket.Key == agg.Selected {
			b.Add(color.Underline)
		}
		_, _ = b.Fprintln(pp.out(), header)
		b = color.New(color.Bold)
		pp.Items(bucket.Entries...)
	}
	if agg.Unscheduled > 0 {
		pp.TitleWithCount("No expiry date", agg.Unscheduled)
		pp.Items(agg.UnscheduledEntries...)
	}
}
