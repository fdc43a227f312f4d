package timeutil

import (
	"context"
	"sync"
	"testing"
	"time"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func TestOnRolloverFiresOncePerDay(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 1, 31, 23, 59, 0, 0, time.UTC)}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan DateKey, 4)
	done := make(chan struct{})
	go func() {
		defer close(done)
		OnRollover(ctx, clock.Now, 5*time.Millisecond, func(k DateKey) { got <- k })
	}()

	time.Sleep(20 * time.Millisecond)
	select {
	case k := <-got:
		t.Fatalf("no rollover yet, got %s", k)
	default:
	}

	clock.Set(time.Date(2024, 2, 1, 0, 0, 1, 0, time.UTC))
	select {
	case k := <-got:
		if k != "2024-02-01" {
			t.Fatalf("expected 2024-02-01, got %s", k)
		}
	case <-time.After(time.Second):
		t.Fatalf("rollover not reported")
	}

	time.Sleep(20 * time.Millisecond)
	select {
	case k := <-got:
		t.Fatalf("same day reported twice: %s", k)
	default:
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("OnRollover did not return on cancel")
	}
}
