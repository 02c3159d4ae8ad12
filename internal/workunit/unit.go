package workunit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/google/uuid"

	"chartkit/internal/chart"
	"chartkit/internal/chartio"
	"chartkit/internal/diag"
	"chartkit/internal/fileutil"
	"chartkit/internal/loader"
	"chartkit/internal/logging"
	"chartkit/internal/resource"
	"chartkit/internal/rules"
)

var live atomic.Int64

// Live returns the number of working units currently alive. Diagnostics
// only; not part of functional behavior.
func Live() int64 {
	return live.Load()
}

// Options configures a working unit.
type Options struct {
	// Descriptor is the authoritative identity; required.
	Descriptor *chart.Descriptor
	// Parse supplies the primary chart; nil yields an empty chart.
	Parse loader.ParseFunc
	// Registry resolves rulesets for Convert; nil falls back to the built-ins.
	Registry *rules.Registry
	// Resources supplies per-kind factories; the chart factory is ignored and
	// wired to the loader.
	Resources resource.Factories
	// PersistVersion, when set, receives the format version discovered by a
	// successful load so the backing library row stays in sync. It runs at
	// most once per unit.
	PersistVersion func(ctx context.Context, version int) error
	// TempDir receives exported files; empty uses the system temp directory.
	TempDir string
	Logger  *slog.Logger
}

// Unit is one live working unit.
type Unit struct {
	info      *chart.Descriptor
	loader    *loader.Loader
	resources *resource.Set
	registry  *rules.Registry
	logger    *slog.Logger
	tempDir   string
	persist   func(ctx context.Context, version int) error

	persisted atomic.Bool
	closed    atomic.Bool
}

// New constructs a working unit and increments the live counter.
func New(opts Options) (*Unit, error) {
	if opts.Descriptor == nil {
		return nil, errors.New("workunit: descriptor required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	registry := opts.Registry
	if registry == nil {
		registry = rules.Builtin()
	}
	parse := opts.Parse
	if parse == nil {
		parse = func(context.Context) (*chart.Chart, error) { return nil, nil }
	}

	u := &Unit{
		info:     opts.Descriptor,
		loader:   loader.New(opts.Descriptor, parse, logger),
		registry: registry,
		logger:   logger,
		tempDir:  opts.TempDir,
		persist:  opts.PersistVersion,
	}

	factories := opts.Resources
	factories.Chart = func() (*chart.Chart, error) {
		c, err := u.Chart(context.Background())
		if err != nil {
			return nil, err
		}
		if c == nil {
			// Canceled load: callers see an empty chart rather than an error.
			return chart.New(), nil
		}
		diag.ChartLoads.Inc()
		return c, nil
	}
	u.resources = resource.NewSet(opts.Descriptor, factories)

	live.Add(1)
	diag.LiveUnits.Inc()
	logger.Debug("working unit created", "id", opts.Descriptor.ID, "title", opts.Descriptor.DisplayTitle())
	return u, nil
}

// Info returns the authoritative descriptor.
func (u *Unit) Info() *chart.Descriptor { return u.info }

// BeginLoad starts the background chart load without waiting on it.
func (u *Unit) BeginLoad() { u.loader.Begin() }

// Chart blocks until the primary chart is available. A canceled load yields
// (nil, nil); a failed parse returns its memoized error on every call. The
// first successful load also writes the discovered format version back
// through the persist hook, if one is configured.
func (u *Unit) Chart(ctx context.Context) (*chart.Chart, error) {
	c, err := u.loader.Chart(ctx)
	if err != nil || c == nil {
		return c, err
	}
	u.persistVersion(ctx)
	return c, nil
}

func (u *Unit) persistVersion(ctx context.Context) {
	if u.persist == nil || !u.persisted.CompareAndSwap(false, true) {
		return
	}
	if err := u.persist(ctx, u.info.FormatVersion); err != nil {
		u.logger.Warn("format version write-back failed", "id", u.info.ID, "error", err)
	}
}

// ChartLoaded reports whether the primary chart load has completed.
func (u *Unit) ChartLoaded() bool { return u.loader.Loaded() }

// Resources exposes the unit's lazy resource set.
func (u *Unit) Resources() *resource.Set { return u.resources }

// TransferResourcesTo moves the still-valid cached audio track onto a
// successor unit when both descriptors share audio identity. The caller must
// synchronize access to both units across the move.
func (u *Unit) TransferResourcesTo(other *Unit, sameOwner bool) {
	if other == nil {
		return
	}
	u.resources.TransferTo(other.resources, sameOwner)
}

// Convert runs the conversion pipeline over this unit's loaded chart.
func (u *Unit) Convert(ctx context.Context, rulesetID string, mods ...rules.Modifier) (*rules.Playable, error) {
	source, err := u.Chart(ctx)
	if err != nil {
		return nil, fmt.Errorf("load chart: %w", err)
	}
	if source == nil {
		source = chart.New()
	}

	playable, err := u.registry.Convert(source, rulesetID, mods)
	if err != nil {
		diag.Conversions.WithLabelValues(rulesetID, "error").Inc()
		return nil, err
	}
	diag.Conversions.WithLabelValues(rulesetID, "ok").Inc()
	u.logger.Debug("chart converted",
		"id", u.info.ID,
		"ruleset", rulesetID,
		"modifiers", len(mods),
		"elements", len(playable.Chart.Elements),
	)
	return playable, nil
}

// SaveTemp serializes the currently loaded chart (loading it first if
// needed) to a freshly named temporary file and returns its absolute path.
// The caller owns cleanup.
func (u *Unit) SaveTemp(ctx context.Context) (string, error) {
	source, err := u.Chart(ctx)
	if err != nil {
		return "", fmt.Errorf("load chart: %w", err)
	}
	if source == nil {
		source = chart.New()
	}

	dir := u.tempDir
	if dir == "" {
		dir = os.TempDir()
	}
	if err := fileutil.EnsureDir(dir); err != nil {
		return "", err
	}

	path := filepath.Join(dir, uuid.NewString()+".json")
	if err := chartio.WriteFile(path, source); err != nil {
		return "", err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve path: %w", err)
	}
	u.logger.Info("chart saved", "id", u.info.ID, "path", abs)
	return abs, nil
}

// Close disposes the unit: it cancels any in-flight load and decrements the
// live counter. Closing twice is a no-op. Cached per-kind resources are left
// in place.
func (u *Unit) Close() error {
	if !u.closed.CompareAndSwap(false, true) {
		return nil
	}
	u.loader.Cancel()
	live.Add(-1)
	diag.LiveUnits.Dec()
	u.logger.Debug("working unit closed", "id", u.info.ID)
	return nil
}
