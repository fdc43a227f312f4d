package item

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestNewAssignsIdentity(t *testing.T) {
	a := New("  Milk ", 1, "l", Fridge)
	b := New("Milk", 1, "l", Fridge)
	if a.ID == "" || a.ID == b.ID {
		t.Fatalf("expected distinct ids, got %q and %q", a.ID, b.ID)
	}
	if a.Name != "Milk" {
		t.Fatalf("expected trimmed name, got %q", a.Name)
	}
	if a.Created.IsZero() {
		t.Fatalf("expected creation time")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		item    Item
		wantErr string
	}{
		{"ok", Item{Name: "Eggs", Quantity: 12, Location: Fridge}, ""},
		{"empty location defaults", Item{Name: "Rice", Quantity: 1}, ""},
		{"missing name", Item{Quantity: 1, Location: Shelf}, "name required"},
		{"zero quantity", Item{Name: "Rice", Location: Shelf}, "quantity must be positive"},
		{"negative quantity", Item{Name: "Rice", Quantity: -1, Location: Shelf}, "quantity must be positive"},
		{"bad location", Item{Name: "Rice", Quantity: 1, Location: "cellar"}, "unknown location"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.item.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestCategoryOrDefault(t *testing.T) {
	if got := (Item{Category: " dairy "}).CategoryOrDefault(); got != "dairy" {
		t.Fatalf("unexpected category %q", got)
	}
	if got := (Item{}).CategoryOrDefault(); got != Uncategorized {
		t.Fatalf("unexpected default category %q", got)
	}
}

func TestItemJSONShape(t *testing.T) {
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	it := Item{
		ID:       "a1",
		Name:     "Yogurt",
		Quantity: 2,
		Location: Fridge,
		Expiry:   "2024-01-10",
		Created:  Timestamp{Time: created},
	}
	b, err := json.Marshal(it)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, want := range []string{`"expiryDate":"2024-01-10"`, `"storageLocation":"fridge"`, `"createdAt":"2024-01-02T03:04:05Z"`} {
		if !strings.Contains(string(b), want) {
			t.Fatalf("expected %s in %s", want, b)
		}
	}

	var back Item
	if err := json.Unmarshal([]byte(`{"id":"x","name":"Bread","quantity":1,"storageLocation":"shelf","createdAt":""}`), &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Created.IsZero() || back.HasExpiry() {
		t.Fatalf("expected zero creation time and no expiry, got %+v", back)
	}
}

func TestLocationCounts(t *testing.T) {
	var c LocationCounts
	c.Add(Fridge, 2)
	c.Add(Shelf, 1)
	c.Add("cellar", 5)
	var d LocationCounts
	d.Merge(c)
	if d.Fridge != 2 || d.Shelf != 1 || d.Total() != 3 {
		t.Fatalf("unexpected counts %+v", d)
	}
}
