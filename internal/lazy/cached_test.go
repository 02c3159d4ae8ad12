package lazy_test

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"chartkit/internal/lazy"
)

type tracked struct {
	id       int
	disposed *[]int
}

func (t *tracked) Dispose() {
	if t == nil {
		return
	}
	*t.disposed = append(*t.disposed, t.id)
}

func TestGetComputesOnce(t *testing.T) {
	var calls atomic.Int32
	cache := lazy.New(func() (int, error) {
		calls.Add(1)
		return 42, nil
	})

	for i := 0; i < 3; i++ {
		value, err := cache.Get()
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if value != 42 {
			t.Fatalf("unexpected value %d", value)
		}
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("factory ran %d times, want 1", got)
	}
}

func TestConcurrentGetRunsFactoryOnce(t *testing.T) {
	var calls atomic.Int32
	cache := lazy.New(func() (int, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return 7, nil
	})

	const workers = 16
	results := make([]int, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			value, err := cache.Get()
			if err != nil {
				t.Errorf("Get: %v", err)
				return
			}
			results[idx] = value
		}(i)
	}
	wg.Wait()

	if got := calls.Load(); got != 1 {
		t.Fatalf("factory ran %d times, want 1", got)
	}
	for idx, value := range results {
		if value != 7 {
			t.Fatalf("caller %d observed %d, want 7", idx, value)
		}
	}
}

func TestAvailableLifecycle(t *testing.T) {
	cache := lazy.New(func() (string, error) { return "ready", nil })

	if cache.Available() {
		t.Fatal("expected unavailable before first Get")
	}
	if _, err := cache.Get(); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !cache.Available() {
		t.Fatal("expected available after Get")
	}
	cache.Recycle()
	if cache.Available() {
		t.Fatal("expected unavailable after Recycle")
	}
}

func TestRecycleDisposesBeforeRecompute(t *testing.T) {
	var disposed []int
	next := 0
	cache := lazy.New(func() (*tracked, error) {
		next++
		if len(disposed) >= next {
			t.Fatalf("factory %d ran after its own disposal", next)
		}
		return &tracked{id: next, disposed: &disposed}, nil
	})

	first, err := cache.Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	cache.Recycle()
	if len(disposed) != 1 || disposed[0] != first.id {
		t.Fatalf("expected first value disposed, got %v", disposed)
	}

	second, err := cache.Get()
	if err != nil {
		t.Fatalf("Get after recycle: %v", err)
	}
	if second.id != 2 {
		t.Fatalf("expected fresh value, got id %d", second.id)
	}
}

func TestRecycleEmptySlotIsNoOp(t *testing.T) {
	var calls atomic.Int32
	cache := lazy.New(func() (int, error) {
		calls.Add(1)
		return 1, nil
	})

	cache.Recycle()
	cache.Recycle()
	if calls.Load() != 0 {
		t.Fatal("recycle must not trigger computation")
	}
}

func TestValidityPredicateForcesRecompute(t *testing.T) {
	var disposed []int
	stale := false
	next := 0
	cache := lazy.New(func() (*tracked, error) {
		next++
		return &tracked{id: next, disposed: &disposed}, nil
	}, lazy.WithValidity(func(*tracked) bool { return !stale }))

	if _, err := cache.Get(); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !cache.Available() {
		t.Fatal("expected available while valid")
	}

	stale = true
	if cache.Available() {
		t.Fatal("expected unavailable once predicate rejects value")
	}

	value, err := cache.Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if value.id != 2 {
		t.Fatalf("expected recomputed value, got id %d", value.id)
	}
	if len(disposed) != 1 || disposed[0] != 1 {
		t.Fatalf("expected stale value disposed first, got %v", disposed)
	}
}

func TestFactoryErrorIsNotCached(t *testing.T) {
	boom := errors.New("boom")
	attempts := 0
	cache := lazy.New(func() (int, error) {
		attempts++
		if attempts == 1 {
			return 0, boom
		}
		return 99, nil
	})

	if _, err := cache.Get(); !errors.Is(err, boom) {
		t.Fatalf("expected factory error, got %v", err)
	}
	if cache.Available() {
		t.Fatal("slot must stay empty after a factory error")
	}

	value, err := cache.Get()
	if err != nil {
		t.Fatalf("retry Get: %v", err)
	}
	if value != 99 {
		t.Fatalf("unexpected retried value %d", value)
	}
}
