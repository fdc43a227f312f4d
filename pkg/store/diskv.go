package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/peterbourgon/diskv/v3"
	"go.uber.org/zap"

	"tableflip.dev/shelflife/pkg/item"
)

// ErrNotFound is returned when no stored item has the requested id.
var ErrNotFound = errors.New("store: item not found")

// Persistence defines the persistence contract for inventory items.
type Persistence interface {
	List(ctx context.Context) []item.Item
	ListAt(ctx context.Context, location item.Location) []item.Item
	Get(ctx context.Context, id string) (item.Item, error)
	Store(it *item.Item) error
	Delete(ctx context.Context, id string) (item.Item, error)
	Watch(ctx context.Context) (<-chan Event, error)
}

// Option customizes Load.
type Option func(*persistence)

// WithLogger routes store diagnostics to log.
func WithLogger(log *zap.Logger) Option {
	return func(p *persistence) {
		if log != nil {
			p.log = log
		}
	}
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config, opts ...Option) (Persistence, error) {
	if cfg == nil {
		fc, err := LoadConfig()
		if err != nil {
			return nil, err
		}
		cfg = fc
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path required")
	}
	p := &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath, log: zap.NewNop()}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
	log      *zap.Logger
}

func (p *persistence) read(key string) (item.Item, error) {
	val, err := p.d.Read(key)
	if err != nil {
		return item.Item{}, err
	}
	var it item.Item
	if err := json.Unmarshal(val, &it); err != nil {
		return item.Item{}, err
	}
	// The key is authoritative for identity and placement.
	pk := keyToPathTransform(key)
	it.ID = pk.FileName
	if len(pk.Path) > 0 {
		it.Location = item.Location(pk.Path[0])
	}
	return it, nil
}

func (p *persistence) List(ctx context.Context) []item.Item {
	return p.collect(ctx, func(*diskv.PathKey) bool { return true })
}

func (p *persistence) ListAt(ctx context.Context, location item.Location) []item.Item {
	return p.collect(ctx, func(pk *diskv.PathKey) bool {
		return len(pk.Path) > 0 && pk.Path[0] == string(location)
	})
}

func (p *persistence) collect(ctx context.Context, keep func(*diskv.PathKey) bool) []item.Item {
	all := make([]item.Item, 0)
	for key := range p.d.Keys(ctx.Done()) {
		if !keep(keyToPathTransform(key)) {
			continue
		}
		it, err := p.read(key)
		if err != nil {
			p.log.Warn("skipping unreadable item", zap.String("key", key), zap.Error(err))
			continue
		}
		all = append(all, it)
	}
	sortItems(all)
	return all
}

func (p *persistence) Get(ctx context.Context, id string) (item.Item, error) {
	key, ok := p.find(ctx, id)
	if !ok {
		return item.Item{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	it, err := p.read(key)
	if err != nil {
		return item.Item{}, fmt.Errorf("store: read %s: %w", id, err)
	}
	return it, nil
}

// Store writes it, assigning an id when it has none. An item that moved
// location leaves no copy behind at the old one.
func (p *persistence) Store(it *item.Item) error {
	loc, err := item.ParseLocation(string(it.Location))
	if err != nil {
		return fmt.Errorf("store: %w", err)
	}
	it.Location = loc
	if err := it.Validate(); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	if it.ID == "" {
		it.ID = uuid.NewString()
	}
	data, err := json.Marshal(it)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", it.ID, err)
	}
	key := toKey(*it)
	if err := p.d.Write(key, data); err != nil {
		return fmt.Errorf("store: write %s: %w", it.ID, err)
	}
	for _, other := range item.AllLocations() {
		if other == loc {
			continue
		}
		stale := toKey(item.Item{ID: it.ID, Location: other})
		if p.d.Has(stale) {
			if err := p.d.Erase(stale); err != nil {
				return fmt.Errorf("store: move %s: %w", it.ID, err)
			}
		}
	}
	return nil
}

// Delete removes the item with id and returns what was removed.
func (p *persistence) Delete(ctx context.Context, id string) (item.Item, error) {
	key, ok := p.find(ctx, id)
	if !ok {
		return item.Item{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	it, err := p.read(key)
	if err != nil {
		p.log.Warn("deleting unreadable item", zap.String("key", key), zap.Error(err))
		it = item.Item{ID: id}
	}
	if err := p.d.Erase(key); err != nil {
		return item.Item{}, fmt.Errorf("store: erase %s: %w", id, err)
	}
	return it, nil
}

// find resolves an id, or an unambiguous id prefix, to its key.
func (p *persistence) find(ctx context.Context, id string) (string, bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", false
	}
	for _, loc := range item.AllLocations() {
		key := toKey(item.Item{ID: id, Location: loc})
		if p.d.Has(key) {
			return key, true
		}
	}
	var match string
	for key := range p.d.Keys(ctx.Done()) {
		if strings.HasPrefix(keyToPathTransform(key).FileName, id) {
			if match != "" {
				return "", false
			}
			match = key
		}
	}
	return match, match != ""
}

func sortItems(items []item.Item) {
	sort.SliceStable(items, func(i, j int) bool {
		lt := items[i].Created.Time
		rt := items[j].Created.Time
		switch {
		case lt.IsZero() && rt.IsZero():
			return items[i].ID < items[j].ID
		case lt.IsZero():
			return false
		case rt.IsZero():
			return true
		default:
			if lt.Equal(rt) {
				return items[i].ID < items[j].ID
			}
			return lt.Before(rt)
		}
	})
}

// keyToPathTransform splits `location-id` on the first dash; ids may carry
// dashes of their own.
func keyToPathTransform(s string) *diskv.PathKey {
	loc, id, ok := strings.Cut(s, "-")
	if !ok {
		return &diskv.PathKey{FileName: s}
	}
	return &diskv.PathKey{
		Path:     []string{loc},
		FileName: id,
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	if len(pathKey.Path) == 0 {
		return pathKey.FileName
	}
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}

// toKey makes `location-id`.
func toKey(it item.Item) string {
	return fmt.Sprintf("%s-%s", it.Location, it.ID)
}

func ensureDir(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("store: ensure base path: %w", err)
	}
	return nil
}
