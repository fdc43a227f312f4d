package printers

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/shelflife/pkg/legend"
	"tableflip.dev/shelflife/pkg/urgency"
)

// Legend prints the urgency badges with their counts, then the location and
// category breakdowns.
func (pp *PrettyPrint) Legend(c legend.Counts) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("", bold.Sprint("Status"), bold.Sprint("Items"), bold.Sprint("Meaning"))
	for _, l := range urgency.Levels() {
		col := Color(l.Color())
		tbl.AddRow(col.Sprint(Dot), col.Sprint(l.String()), c.Of(l), l.Description())
	}
	tbl.AddRow(faint.Sprint(Dot), faint.Sprint(urgency.None.String()), c.Unscheduled, urgency.None.Description())
	tbl.RightAlign(2)
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()

	summary := uitable.New()
	summary.Separator = "  "
	summary.AddRow(bold.Sprint("Total"), c.Total)
	summary.AddRow(bold.Sprint("This week"), c.ThisWeek)
	summary.AddRow(bold.Sprint("Fridge"), c.PerLocation.Fridge)
	summary.AddRow(bold.Sprint("Shelf"), c.PerLocation.Shelf)
	summary.RightAlign(1)
	_, _ = fmt.Fprintln(pp.out(), summary)

	if len(c.PerCategory) == 0 {
		return
	}
	pp.NewLine()
	cats := uitable.New()
	cats.Separator = "  "
	cats.AddRow(bold.Sprint("Category"), bold.Sprint("Items"))
	for _, cc := range c.PerCategory {
		cats.AddRow(cc.Name, cc.Count)
	}
	cats.RightAlign(1)
	_, _ = fmt.Fprintln(pp.out(), cats)
}
