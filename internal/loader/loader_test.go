package loader_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"chartkit/internal/chart"
	"chartkit/internal/loader"
	"chartkit/internal/logging"
)

func TestLoadRunsOnce(t *testing.T) {
	var parses atomic.Int32
	info := &chart.Descriptor{ID: 1, Title: "Authoritative"}
	l := loader.New(info, func(context.Context) (*chart.Chart, error) {
		parses.Add(1)
		time.Sleep(10 * time.Millisecond)
		c := chart.New()
		c.Elements = []*chart.Element{{Start: 100, Kind: chart.KindNote}}
		return c, nil
	}, logging.NewNop())

	const waiters = 8
	results := make([]*chart.Chart, waiters)
	var wg sync.WaitGroup
	for i := 0; i < waiters; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			c, err := l.Chart(context.Background())
			if err != nil {
				t.Errorf("Chart: %v", err)
				return
			}
			results[idx] = c
		}(i)
	}
	wg.Wait()

	if got := parses.Load(); got != 1 {
		t.Fatalf("parse ran %d times, want 1", got)
	}
	for idx, c := range results {
		if c != results[0] {
			t.Fatalf("waiter %d observed a different chart instance", idx)
		}
	}
}

func TestReconciliationIsBidirectional(t *testing.T) {
	info := &chart.Descriptor{ID: 7, Title: "Authoritative", Artist: "Keeper"}
	l := loader.New(info, func(context.Context) (*chart.Chart, error) {
		c := chart.New()
		c.Info = &chart.Descriptor{ID: 999, Title: "Stale Parsed Copy", FormatVersion: 14}
		return c, nil
	}, logging.NewNop())

	c, err := l.Chart(context.Background())
	if err != nil {
		t.Fatalf("Chart: %v", err)
	}
	if c.Info != info {
		t.Fatal("parsed chart must carry the authoritative descriptor instance")
	}
	if info.FormatVersion != 14 {
		t.Fatalf("format version not copied back, got %d", info.FormatVersion)
	}
}

func TestNilParseSubstitutesEmptyChart(t *testing.T) {
	info := &chart.Descriptor{ID: 2}
	l := loader.New(info, func(context.Context) (*chart.Chart, error) {
		return nil, nil
	}, logging.NewNop())

	c, err := l.Chart(context.Background())
	if err != nil {
		t.Fatalf("Chart: %v", err)
	}
	if c == nil || len(c.Elements) != 0 {
		t.Fatalf("expected empty chart substitute, got %#v", c)
	}
	if c.Info != info {
		t.Fatal("empty chart must still carry the authoritative descriptor")
	}
}

func TestCancelBeforeStartPreventsLoad(t *testing.T) {
	var parses atomic.Int32
	l := loader.New(&chart.Descriptor{ID: 3}, func(context.Context) (*chart.Chart, error) {
		parses.Add(1)
		return chart.New(), nil
	}, logging.NewNop())

	l.Cancel()
	c, err := l.Chart(context.Background())
	if err != nil {
		t.Fatalf("canceled load must not surface an error, got %v", err)
	}
	if c != nil {
		t.Fatalf("canceled load must yield an absent chart, got %#v", c)
	}
	if parses.Load() != 0 {
		t.Fatal("parse must never start after cancellation")
	}
}

func TestParseErrorIsMemoized(t *testing.T) {
	boom := errors.New("corrupt payload")
	var parses atomic.Int32
	l := loader.New(&chart.Descriptor{ID: 4}, func(context.Context) (*chart.Chart, error) {
		parses.Add(1)
		return nil, boom
	}, logging.NewNop())

	for i := 0; i < 3; i++ {
		if _, err := l.Chart(context.Background()); !errors.Is(err, boom) {
			t.Fatalf("call %d: expected memoized parse error, got %v", i, err)
		}
	}
	if parses.Load() != 1 {
		t.Fatalf("parse ran %d times, want 1", parses.Load())
	}
}

func TestCallerContextAbortsOnlyTheWait(t *testing.T) {
	release := make(chan struct{})
	l := loader.New(&chart.Descriptor{ID: 5}, func(context.Context) (*chart.Chart, error) {
		<-release
		return chart.New(), nil
	}, logging.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := l.Chart(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}

	close(release)
	c, err := l.Chart(context.Background())
	if err != nil {
		t.Fatalf("Chart after release: %v", err)
	}
	if c == nil {
		t.Fatal("load must still complete after an aborted wait")
	}
}

func TestLoadedReflectsCompletion(t *testing.T) {
	release := make(chan struct{})
	l := loader.New(&chart.Descriptor{ID: 6}, func(context.Context) (*chart.Chart, error) {
		<-release
		return chart.New(), nil
	}, logging.NewNop())

	if l.Loaded() {
		t.Fatal("not loaded before Begin")
	}
	l.Begin()
	if l.Loaded() {
		t.Fatal("not loaded while parse in flight")
	}
	close(release)
	if _, err := l.Chart(context.Background()); err != nil {
		t.Fatalf("Chart: %v", err)
	}
	if !l.Loaded() {
		t.Fatal("loaded after completion")
	}
}
