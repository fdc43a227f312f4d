package app

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"tableflip.dev/shelflife/pkg/aggregate"
	"tableflip.dev/shelflife/pkg/item"
	"tableflip.dev/shelflife/pkg/pipeline"
	"tableflip.dev/shelflife/pkg/store"
)

type memoryPersistence struct {
	mu      sync.Mutex
	counter int
	items   map[string]item.Item
}

func newMemoryPersistence(items ...item.Item) *memoryPersistence {
	mp := &memoryPersistence{items: make(map[string]item.Item)}
	for _, it := range items {
		if it.ID == "" {
			it.ID = mp.newID()
		}
		mp.items[it.ID] = it
	}
	return mp
}

func (m *memoryPersistence) newID() string {
	m.counter++
	return fmt.Sprintf("id-%d", m.counter)
}

func (m *memoryPersistence) List(_ context.Context) []item.Item {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]item.Item, 0, len(m.items))
	for _, it := range m.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *memoryPersistence) ListAt(ctx context.Context, location item.Location) []item.Item {
	var out []item.Item
	for _, it := range m.List(ctx) {
		if it.Location == location {
			out = append(out, it)
		}
	}
	return out
}

func (m *memoryPersistence) Get(_ context.Context, id string) (item.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, it := range m.items {
		if key == id || strings.HasPrefix(key, id) {
			return it, nil
		}
	}
	return item.Item{}, store.ErrNotFound
}

func (m *memoryPersistence) Store(it *item.Item) error {
	if err := it.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if it.ID == "" {
		it.ID = m.newID()
	}
	m.items[it.ID] = *it
	return nil
}

func (m *memoryPersistence) Delete(ctx context.Context, id string) (item.Item, error) {
	it, err := m.Get(ctx, id)
	if err != nil {
		return item.Item{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, it.ID)
	return it, nil
}

func (m *memoryPersistence) Watch(context.Context) (<-chan store.Event, error) {
	return nil, errors.New("not implemented")
}

var refTime = time.Date(2024, 1, 10, 15, 0, 0, 0, time.UTC)

func newService(items ...item.Item) *Service {
	return &Service{
		Persistence: newMemoryPersistence(items...),
		Now:         func() time.Time { return refTime },
	}
}

func TestAddResolvesRelativeExpiry(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	tests := []struct {
		expires string
		want    string
	}{
		{"today", "2024-01-10"},
		{"tomorrow", "2024-01-11"},
		{"3d", "2024-01-13"},
		{"1w", "2024-01-17"},
		{"2024-02-01", "2024-02-01"},
		{"", ""},
	}
	for _, tt := range tests {
		it, err := svc.Add(ctx, AddRequest{Name: "milk", Expires: tt.expires})
		if err != nil {
			t.Fatalf("Add(%q): %v", tt.expires, err)
		}
		if it.Expiry != tt.want {
			t.Fatalf("Add(%q): expiry %q, want %q", tt.expires, it.Expiry, tt.want)
		}
		if it.Quantity != 1 || it.Location != item.Fridge {
			t.Fatalf("Add(%q): unexpected defaults %+v", tt.expires, it)
		}
	}
}

func TestAddRejectsBadInput(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	if _, err := svc.Add(ctx, AddRequest{Name: "milk", Expires: "whenever"}); err == nil {
		t.Fatalf("expected an error for an unparseable expiry")
	}
	if _, err := svc.Add(ctx, AddRequest{Name: "milk", Location: "garage"}); err == nil {
		t.Fatalf("expected an error for an unknown location")
	}
	if _, err := svc.Add(ctx, AddRequest{Name: "  "}); err == nil {
		t.Fatalf("expected an error for an empty name")
	}
}

func TestRemoveMoveSetExpiry(t *testing.T) {
	svc := newService(item.Item{ID: "a1", Name: "rice", Quantity: 1, Location: item.Fridge})
	ctx := context.Background()

	moved, err := svc.Move(ctx, "a1", "shelf")
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	if moved.Location != item.Shelf {
		t.Fatalf("expected shelf, got %q", moved.Location)
	}

	updated, err := svc.SetExpiry(ctx, "a1", "tomorrow")
	if err != nil {
		t.Fatalf("SetExpiry: %v", err)
	}
	if updated.Expiry != "2024-01-11" {
		t.Fatalf("expected 2024-01-11, got %q", updated.Expiry)
	}
	cleared, err := svc.SetExpiry(ctx, "a1", "")
	if err != nil {
		t.Fatalf("SetExpiry: %v", err)
	}
	if cleared.HasExpiry() {
		t.Fatalf("expected the expiry cleared, got %q", cleared.Expiry)
	}

	removed, err := svc.Remove(ctx, "a1")
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if removed.Name != "rice" {
		t.Fatalf("unexpected removed item %+v", removed)
	}
	if _, err := svc.Remove(ctx, "a1"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSnapshot(t *testing.T) {
	svc := newService(
		item.Item{ID: "a", Name: "milk", Quantity: 1, Location: item.Fridge, Expiry: "2024-01-10"},
		item.Item{ID: "b", Name: "yogurt", Quantity: 1, Location: item.Fridge, Expiry: "2024-01-08"},
		item.Item{ID: "c", Name: "bread", Quantity: 1, Location: item.Shelf, Expiry: "2024-01-12"},
		item.Item{ID: "d", Name: "rice", Quantity: 1, Location: item.Shelf, Expiry: "2024-03-01"},
		item.Item{ID: "e", Name: "salt", Quantity: 1, Location: item.Shelf},
	)
	snap, err := svc.Snapshot(context.Background(), aggregate.DefaultConfig())
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if snap.Aggregate.Reference != "2024-01-10" {
		t.Fatalf("expected the service clock as reference, got %q", snap.Aggregate.Reference)
	}
	c := snap.Counts
	if c.Total != 5 || c.Expired != 1 || c.Today != 1 || c.Soon != 1 || c.Safe != 1 || c.Unscheduled != 1 {
		t.Fatalf("unexpected counts %+v", c)
	}
	if c.PerLocation.Fridge != 2 || c.PerLocation.Shelf != 3 {
		t.Fatalf("unexpected location counts %+v", c.PerLocation)
	}

	bad := aggregate.DefaultConfig()
	bad.SoonDays = -1
	if _, err := svc.Snapshot(context.Background(), bad); !errors.Is(err, aggregate.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestFetchItemsIgnoresHint(t *testing.T) {
	svc := newService(
		item.Item{ID: "a", Name: "milk", Quantity: 1, Expiry: "2024-01-10"},
		item.Item{ID: "b", Name: "salt", Quantity: 1},
		item.Item{ID: "c", Name: "rice", Quantity: 1, Expiry: "2025-01-01"},
	)
	got, err := svc.FetchItems(context.Background(), pipeline.RangeHint{Start: "2024-01-01", End: "2024-01-31"})
	if err != nil {
		t.Fatalf("FetchItems: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected every item, got %d", len(got))
	}
}

func TestNoPersistence(t *testing.T) {
	svc := &Service{}
	if _, err := svc.Items(context.Background()); err == nil {
		t.Fatalf("expected an error without persistence")
	}
	if _, err := svc.Add(context.Background(), AddRequest{Name: "x"}); err == nil {
		t.Fatalf("expected an error without persistence")
	}
}

func TestReport(t *testing.T) {
	svc := newService(
		item.Item{ID: "a", Name: "milk", Quantity: 1, Location: item.Fridge, Expiry: "2024-01-10"},
		item.Item{ID: "b", Name: "yogurt", Quantity: 1, Location: item.Fridge, Expiry: "2024-01-08"},
		item.Item{ID: "c", Name: "bread", Quantity: 1, Location: item.Shelf, Expiry: "2024-01-12"},
		item.Item{ID: "d", Name: "rice", Quantity: 1, Location: item.Shelf, Expiry: "2024-03-01"},
		item.Item{ID: "f", Name: "eggs", Quantity: 1, Location: item.Fridge, Expiry: "2024-01-17"},
	)
	res, err := svc.Report(context.Background(), aggregate.DefaultConfig(), 7)
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if res.Since != "2024-01-10" || res.Until != "2024-01-17" {
		t.Fatalf("unexpected window %s..%s", res.Since, res.Until)
	}
	if res.Total != 3 || res.Expired != 1 {
		t.Fatalf("expected 3 listed and 1 expired, got %d and %d", res.Total, res.Expired)
	}
	if len(res.Sections) != 2 || res.Sections[0].Location != item.Fridge || res.Sections[1].Location != item.Shelf {
		t.Fatalf("unexpected sections %+v", res.Sections)
	}
	fridge := res.Sections[0].Entries
	if len(fridge) != 2 || fridge[0].Item.ID != "a" || fridge[1].Item.ID != "f" {
		t.Fatalf("fridge entries out of expiry order: %+v", fridge)
	}
}
