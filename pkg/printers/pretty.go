// Package printers renders inventory aggregates for the terminal.
package printers

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/shelflife/pkg/aggregate"
	"tableflip.dev/shelflife/pkg/urgency"
)

// ShortID is how many characters of an item id are shown.
const ShortID = 8

type PrettyPrint struct {
	// Out defaults to color.Output.
	Out    io.Writer
	ShowID bool
}

var (
	spacing = strings.Repeat(" ", ShortID+2)
)

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out != nil {
		return pp.Out
	}
	return color.Output
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " item")
	default:
		_, _ = c.Fprintln(pp.out(), " items")
	}
}

// Items prints one row per entry: name, quantity, location and how urgent it
// is, colored by level.
func (pp *PrettyPrint) Items(entries ...aggregate.Entry) {
	if len(entries) == 0 {
		f := color.New(color.Faint, color.Italic)
		if pp.ShowID {
			_, _ = f.Fprint(pp.out(), spacing)
		}
		_, _ = f.Fprint(pp.out(), " none\n\n")
		return
	}

	y := color.New(color.FgHiYellow, color.Italic, color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	for _, e := range entries {
		c := Color(e.Urgency.Level.Color())
		row := []interface{}{
			c.Sprint(Dot),
			e.Item.Name,
			quantity(e),
			string(e.Item.Location),
			expiry(e),
			c.Sprint(e.Urgency.Label()),
		}
		if pp.ShowID {
			row = append([]interface{}{y.Sprint(shortID(e.Item.ID))}, row...)
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// JSON writes v as indented JSON.
func (pp *PrettyPrint) JSON(v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(pp.out(), string(b))
	return err
}

func quantity(e aggregate.Entry) string {
	q := fmt.Sprintf("%g", e.Item.Quantity)
	if e.Item.Unit != "" {
		q += " " + e.Item.Unit
	}
	return q
}

func expiry(e aggregate.Entry) string {
	switch {
	case e.Urgency.Level != urgency.None:
		return string(e.Urgency.Date)
	case e.Item.HasExpiry():
		// Show what is stored so the bad value can be fixed.
		return e.Item.Expiry + "?"
	default:
		return "-"
	}
}

func shortID(id string) string {
	if len(id) > ShortID {
		return id[:ShortID]
	}
	return id
}
