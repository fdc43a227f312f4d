// Package item defines the inventory records the expiry pipeline reads.
package item

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Item is a snapshot of one perishable record. Expiry holds the raw stored
// date; it may be empty (no expiry) or malformed, and consumers are expected
// to cope with both.
type Item struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Quantity float64   `json:"quantity"`
	Unit     string    `json:"unit,omitempty"`
	Location Location  `json:"storageLocation"`
	Category string    `json:"category,omitempty"`
	Expiry   string    `json:"expiryDate,omitempty"`
	Created  Timestamp `json:"createdAt"`
}

// New creates an item with a fresh id and creation time.
func New(name string, quantity float64, unit string, location Location) Item {
	return Item{
		ID:       uuid.NewString(),
		Name:     strings.TrimSpace(name),
		Quantity: quantity,
		Unit:     strings.TrimSpace(unit),
		Location: location,
		Created:  Timestamp{Time: time.Now().UTC()},
	}
}

// HasExpiry reports whether a (possibly malformed) expiry date is present.
func (i Item) HasExpiry() bool {
	return strings.TrimSpace(i.Expiry) != ""
}

// CategoryOrDefault returns the category used for per-category tallies.
func (i Item) CategoryOrDefault() string {
	if c := strings.TrimSpace(i.Category); c != "" {
		return c
	}
	return Uncategorized
}

// Uncategorized names the tally bucket for items without a category.
const Uncategorized = "Uncategorized"

// Validate reports the first contract problem with the record.
func (i Item) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return errors.New("item: name required")
	}
	if i.Quantity <= 0 {
		return fmt.Errorf("item: quantity must be positive, got %v", i.Quantity)
	}
	if _, err := ParseLocation(string(i.Location)); err != nil {
		return err
	}
	return nil
}

func (i Item) String() string {
	qty := fmt.Sprintf("%g", i.Quantity)
	if i.Unit != "" {
		qty += " " + i.Unit
	}
	return fmt.Sprintf("%s (%s, %s)", i.Name, qty, i.Location)
}
