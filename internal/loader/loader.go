// Package loader produces a working unit's primary chart exactly once, on a
// background goroutine, with cooperative cancellation. Repeated requests
// share the memoized outcome; cancellation is downgraded to a soft absent
// result rather than an error.
package loader

import (
	"context"
	"log/slog"

	"chartkit/internal/chart"
	"chartkit/internal/logging"
)

// ParseFunc is the collaborator that parses the backing descriptor's content.
// Returning a nil chart with a nil error is legitimate; the loader substitutes
// an empty chart. The context carries the loader's cancellation token, though
// a parse is typically synchronous and may ignore it.
type ParseFunc func(ctx context.Context) (*chart.Chart, error)

// Loader runs one parse per lifetime and reconciles the result with the
// authoritative descriptor.
type Loader struct {
	info   *chart.Descriptor
	parse  ParseFunc
	logger *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	started chan struct{}
	done    chan struct{}

	result   *chart.Chart
	err      error
	canceled bool
}

// New constructs a loader for the given authoritative descriptor.
func New(info *chart.Descriptor, parse ParseFunc, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = logging.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Loader{
		info:    info,
		parse:   parse,
		logger:  logger,
		ctx:     ctx,
		cancel:  cancel,
		started: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
}

// Begin starts the background load. The first call wins; later calls are
// no-ops. Chart calls Begin implicitly.
func (l *Loader) Begin() {
	select {
	case l.started <- struct{}{}:
	default:
		return
	}
	go l.run()
}

// Chart blocks until the load completes and returns the reconciled chart.
// A canceled load yields (nil, nil): cancellation is a soft "unavailable"
// outcome, not an error. A parse failure is memoized and returned to every
// caller; the load is never retried within one loader lifetime. The caller's
// context aborts only the wait, not the load itself.
func (l *Loader) Chart(ctx context.Context) (*chart.Chart, error) {
	l.Begin()
	select {
	case <-l.done:
		return l.outcome()
	case <-l.ctx.Done():
		// Cancellation requested while waiting. A completed result still
		// wins; otherwise the wait resolves as soft-canceled even though the
		// parse may run to completion in the background.
		select {
		case <-l.done:
			return l.outcome()
		default:
			return nil, nil
		}
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (l *Loader) outcome() (*chart.Chart, error) {
	if l.canceled {
		return nil, nil
	}
	return l.result, l.err
}

// Loaded reports whether the load has finished, successfully or not.
func (l *Loader) Loaded() bool {
	select {
	case <-l.done:
		return true
	default:
		return false
	}
}

// Cancel requests cooperative cancellation. A load that has not started will
// never start; a load already parsing may still run to completion, because
// the underlying parse is not guaranteed to be interruptible.
func (l *Loader) Cancel() {
	l.cancel()
	// If the load never began, resolve waiters as canceled.
	select {
	case l.started <- struct{}{}:
		l.canceled = true
		close(l.done)
	default:
	}
}

func (l *Loader) run() {
	defer close(l.done)

	if l.ctx.Err() != nil {
		l.canceled = true
		return
	}

	parsed, err := l.parse(l.ctx)
	if err != nil {
		l.logger.Error("chart load failed", "id", l.descriptorID(), "error", err)
		l.err = err
		return
	}
	if parsed == nil {
		parsed = chart.New()
	}

	// Reconcile both directions: the parsed structure's descriptor summary is
	// replaced with the authoritative instance, while the raw format version
	// discovered during parsing is copied back onto it.
	version := 0
	if parsed.Info != nil {
		version = parsed.Info.FormatVersion
	}
	if l.info != nil {
		l.info.FormatVersion = version
		parsed.Info = l.info
	}

	l.result = parsed
	l.logger.Debug("chart loaded", "id", l.descriptorID(), "elements", len(parsed.Elements), "format_version", version)
}

func (l *Loader) descriptorID() int64 {
	if l.info == nil {
		return 0
	}
	return l.info.ID
}
