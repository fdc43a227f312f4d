package printers

import (
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/shelflife/pkg/aggregate"
	"tableflip.dev/shelflife/pkg/urgency"
)

// Dot is the calendar indicator glyph.
const Dot = "●"

// Color maps an urgency color token to a terminal color.
func Color(c urgency.Color) *color.Color {
	switch c {
	case urgency.ColorDanger:
		return color.New(color.FgHiRed, color.Bold)
	case urgency.ColorWarning:
		return color.New(color.FgYellow, color.Bold)
	case urgency.ColorCaution:
		return color.New(color.FgHiYellow)
	case urgency.ColorSafe:
		return color.New(color.FgGreen)
	default:
		return color.New(color.Faint)
	}
}

// Dots renders one colored dot per indicator.
func Dots(indicators []aggregate.Indicator) string {
	var b strings.Builder
	for _, ind := range indicators {
		b.WriteString(Color(ind.Color).Sprint(Dot))
	}
	return b.String()
}
