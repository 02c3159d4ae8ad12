package testsupport

import (
	"context"
	"testing"

	"chartkit/internal/chart"
	"chartkit/internal/config"
	"chartkit/internal/store"
)

// MustOpenStore opens a library store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	s, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = s.Close()
	})
	return s
}

// InsertChart stores a descriptor with an optional payload for tests.
func InsertChart(t testing.TB, s *store.Store, d *chart.Descriptor, payload []byte) int64 {
	t.Helper()

	id, err := s.Insert(context.Background(), d, payload)
	if err != nil {
		t.Fatalf("store.Insert: %v", err)
	}
	return id
}
