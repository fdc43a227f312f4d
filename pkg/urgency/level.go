// Package urgency classifies items by how close they are to their expiry
// date.
package urgency

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Level is an urgency classification. Expired, Today, Soon and Safe are
// ordered from most to least urgent; None marks items with no usable expiry
// date and sits outside that ordering.
type Level int

const (
	None Level = iota
	Expired
	Today
	Soon
	Safe
)

// Color is a stable presentation token. Renderers map tokens to concrete
// colors; the pipeline never deals in palette values.
type Color string

const (
	ColorMuted   Color = "muted"
	ColorDanger  Color = "danger"
	ColorWarning Color = "warning"
	ColorCaution Color = "caution"
	ColorSafe    Color = "safe"
)

// Info is the fixed presentation record for a level.
type Info struct {
	Name        string
	Color       Color
	Description string
}

var infos = [...]Info{
	None:    {Name: "none", Color: ColorMuted, Description: "No expiry date"},
	Expired: {Name: "expired", Color: ColorDanger, Description: "Past its expiry date"},
	Today:   {Name: "today", Color: ColorWarning, Description: "Expires today"},
	Soon:    {Name: "soon", Color: ColorCaution, Description: "Expires within a few days"},
	Safe:    {Name: "safe", Color: ColorSafe, Description: "Fresh for now"},
}

// Levels returns the dated levels, most urgent first.
func Levels() []Level {
	return []Level{Expired, Today, Soon, Safe}
}

// Valid reports whether l is a known level.
func (l Level) Valid() bool {
	return l >= None && int(l) < len(infos)
}

// Info returns the presentation record for l.
func (l Level) Info() Info {
	if !l.Valid() {
		return infos[None]
	}
	return infos[l]
}

// Color returns the color token for l.
func (l Level) Color() Color { return l.Info().Color }

// Description returns the human readable description for l.
func (l Level) Description() string { return l.Info().Description }

func (l Level) String() string { return l.Info().Name }

// Rank orders levels by urgency; lower is more urgent. None ranks last.
func (l Level) Rank() int {
	switch l {
	case Expired, Today, Soon, Safe:
		return int(l) - int(Expired)
	default:
		return len(infos)
	}
}

// MoreUrgent reports whether l should be shown before other.
func (l Level) MoreUrgent(other Level) bool {
	return l.Rank() < other.Rank()
}

// ParseLevel converts a level name back into a Level.
func ParseLevel(raw string) (Level, error) {
	name := strings.ToLower(strings.TrimSpace(raw))
	for i, info := range infos {
		if info.Name == name {
			return Level(i), nil
		}
	}
	return None, fmt.Errorf("urgency: unknown level %q", raw)
}

func (l Level) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

func (l *Level) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err != nil {
		return err
	}
	parsed, err := ParseLevel(name)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// Counts tallies items per dated level.
type Counts struct {
	Expired int `json:"expired"`
	Today   int `json:"today"`
	Soon    int `json:"soon"`
	Safe    int `json:"safe"`
}

// Add counts n items at level l. None is not tallied.
func (c *Counts) Add(l Level, n int) {
	switch l {
	case Expired:
		c.Expired += n
	case Today:
		c.Today += n
	case Soon:
		c.Soon += n
	case Safe:
		c.Safe += n
	}
}

// Merge adds other into c.
func (c *Counts) Merge(other Counts) {
	c.Expired += other.Expired
	c.Today += other.Today
	c.Soon += other.Soon
	c.Safe += other.Safe
}

// Of returns the tally for l.
func (c Counts) Of(l Level) int {
	switch l {
	case Expired:
		return c.Expired
	case Today:
		return c.Today
	case Soon:
		return c.Soon
	case Safe:
		return c.Safe
	default:
		return 0
	}
}

// Total returns the sum over all dated levels.
func (c Counts) Total() int {
	return c.Expired + c.Today + c.Soon + c.Safe
}
