package urgency

import (
	"errors"
	"testing"

	"tableflip.dev/shelflife/pkg/item"
	"tableflip.dev/shelflife/pkg/timeutil"
)

var ref = timeutil.MustKey("2024-01-10")

func TestClassifyScenarios(t *testing.T) {
	tests := []struct {
		expiry    string
		wantLevel Level
		wantDays  int
		wantLabel string
	}{
		{"2024-01-10", Today, 0, "Expires today"},
		{"2024-01-08", Expired, -2, "Expired 2 days ago"},
		{"2024-01-09", Expired, -1, "Expired 1 day ago"},
		{"2024-01-11", Soon, 1, "Expires tomorrow"},
		{"2024-01-12", Soon, 2, "Expires in 2 days"},
		{"2024-01-13", Soon, 3, "Expires in 3 days"},
		{"2024-01-14", Safe, 4, "Expires in 4 days"},
		{"2024-03-01", Safe, 51, "Expires in 51 days"},
	}
	for _, tt := range tests {
		t.Run(tt.expiry, func(t *testing.T) {
			got, err := Classify(item.Item{ID: "x", Expiry: tt.expiry}, ref, DefaultThresholds())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Level != tt.wantLevel || got.DaysUntil != tt.wantDays {
				t.Fatalf("got %s/%d, want %s/%d", got.Level, got.DaysUntil, tt.wantLevel, tt.wantDays)
			}
			if got.Label() != tt.wantLabel {
				t.Fatalf("label %q, want %q", got.Label(), tt.wantLabel)
			}
			if got.Date != timeutil.DateKey(tt.expiry) {
				t.Fatalf("date %s, want %s", got.Date, tt.expiry)
			}
		})
	}
}

func TestClassifyIgnoresTimeOfDay(t *testing.T) {
	early, _ := Classify(item.Item{Expiry: "2024-01-10T00:01:00Z"}, ref, DefaultThresholds())
	late, _ := Classify(item.Item{Expiry: "2024-01-10T23:59:00Z"}, ref, DefaultThresholds())
	if early != late || early.Level != Today {
		t.Fatalf("expected identical today classifications, got %+v and %+v", early, late)
	}
}

func TestClassifyWithoutExpiry(t *testing.T) {
	got, err := Classify(item.Item{ID: "x"}, ref, DefaultThresholds())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Level != None || got.Label() != "No expiry date" {
		t.Fatalf("expected none classification, got %+v", got)
	}
}

func TestClassifyMalformed(t *testing.T) {
	got, err := Classify(item.Item{ID: "bad", Expiry: "31/31/2024"}, ref, DefaultThresholds())
	if got.Level != None {
		t.Fatalf("expected none level, got %s", got.Level)
	}
	if !errors.Is(err, ErrMalformedDate) {
		t.Fatalf("expected ErrMalformedDate, got %v", err)
	}
	var mde *MalformedDateError
	if !errors.As(err, &mde) || mde.ItemID != "bad" || mde.Raw != "31/31/2024" {
		t.Fatalf("unexpected error detail: %#v", err)
	}
}

func TestCustomSoonThreshold(t *testing.T) {
	th := Thresholds{SoonDays: 7}
	got, _ := Classify(item.Item{Expiry: "2024-01-17"}, ref, th)
	if got.Level != Soon {
		t.Fatalf("expected soon with a 7 day threshold, got %s", got.Level)
	}
	th = Thresholds{SoonDays: 0}
	got, _ = Classify(item.Item{Expiry: "2024-01-11"}, ref, th)
	if got.Level != Safe {
		t.Fatalf("expected safe with a zero threshold, got %s", got.Level)
	}
	if err := (Thresholds{SoonDays: -1}).Validate(); err == nil {
		t.Fatalf("expected negative threshold to be rejected")
	}
}

func TestLevelOrdering(t *testing.T) {
	levels := Levels()
	for i := 1; i < len(levels); i++ {
		if !levels[i-1].MoreUrgent(levels[i]) {
			t.Fatalf("%s should be more urgent than %s", levels[i-1], levels[i])
		}
	}
	if !Safe.MoreUrgent(None) {
		t.Fatalf("none must rank after every dated level")
	}
}

func TestLevelInfoIsClosed(t *testing.T) {
	seen := map[Color]bool{}
	for _, l := range append(Levels(), None) {
		info := l.Info()
		if info.Name == "" || info.Description == "" || info.Color == "" {
			t.Fatalf("level %d has incomplete info %+v", l, info)
		}
		if seen[info.Color] {
			t.Fatalf("color %s reused", info.Color)
		}
		seen[info.Color] = true
		back, err := ParseLevel(info.Name)
		if err != nil || back != l {
			t.Fatalf("round trip of %s failed: %v %v", info.Name, back, err)
		}
	}
	if Level(42).Info() != None.Info() {
		t.Fatalf("unknown level should fall back to none")
	}
}

func TestCounts(t *testing.T) {
	var c Counts
	for _, l := range []Level{Expired, Expired, Today, Soon, Safe, None} {
		c.Add(l, 1)
	}
	if c.Total() != 5 || c.Of(Expired) != 2 || c.Of(None) != 0 {
		t.Fatalf("unexpected counts %+v", c)
	}
	var d Counts
	d.Merge(c)
	if d != c {
		t.Fatalf("merge mismatch %+v vs %+v", d, c)
	}
}
