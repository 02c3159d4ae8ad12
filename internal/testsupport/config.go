// Package testsupport provides fixtures shared by package tests: configs
// rooted in per-test temp directories, library stores with registered
// cleanup, and sample charts.
package testsupport

import (
	"path/filepath"
	"testing"

	"chartkit/internal/config"
)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.LibraryDir = filepath.Join(base, "library")
	cfg.Paths.ExportDir = filepath.Join(base, "export")
	return &cfg
}
