package item

import (
	"fmt"
	"strings"
)

// Location identifies where an item is stored.
type Location string

const (
	// Fridge is cold storage.
	Fridge Location = "fridge"
	// Shelf is pantry storage.
	Shelf Location = "shelf"
)

// AllLocations returns the list of supported storage locations.
func AllLocations() []Location {
	return []Location{Fridge, Shelf}
}

// ParseLocation converts a string to a Location or returns an error for
// unknown values. An empty string defaults to the fridge.
func ParseLocation(raw string) (Location, error) {
	l := Location(strings.ToLower(strings.TrimSpace(raw)))
	if l == "" {
		return Fridge, nil
	}
	for _, candidate := range AllLocations() {
		if candidate == l {
			return candidate, nil
		}
	}
	return Fridge, fmt.Errorf("item: unknown location %q", raw)
}

// LocationCounts tallies items per storage location.
type LocationCounts struct {
	Fridge int `json:"fridge"`
	Shelf  int `json:"shelf"`
}

// Add counts one item stored at l. Unknown locations are ignored.
func (c *LocationCounts) Add(l Location, n int) {
	switch l {
	case Fridge:
		c.Fridge += n
	case Shelf:
		c.Shelf += n
	}
}

// Merge adds other into c.
func (c *LocationCounts) Merge(other LocationCounts) {
	c.Fridge += other.Fridge
	c.Shelf += other.Shelf
}

// Total returns the number of located items.
func (c LocationCounts) Total() int {
	return c.Fridge + c.Shelf
}
