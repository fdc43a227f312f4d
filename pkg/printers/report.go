package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/shelflife/pkg/app"
	"tableflip.dev/shelflife/pkg/urgency"
)

// Report prints what expires in the report window, grouped by location.
func (pp *PrettyPrint) Report(res app.ReportResult) {
	pp.TitleWithCount(fmt.Sprintf("Expiring %s to %s", res.Since, res.Until), res.Total)
	if res.Expired > 0 {
		w := Color(urgency.ColorDanger)
		_, _ = w.Fprintf(pp.out(), "%s already expired\n", plural(res.Expired, "item"))
	}
	pp.NewLine()
	if len(res.Sections) == 0 {
		pp.Items()
		return
	}
	h := color.New(color.Bold)
	for _, s := range res.Sections {
		_, _ = h.Fprintln(pp.out(), title(string(s.Location)))
		pp.Items(s.Entries...)
	}
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
