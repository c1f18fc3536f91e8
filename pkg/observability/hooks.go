// Package observability provides hooks for instrumenting the layout pipeline.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register hooks
// at startup to receive events about pipeline phases and warnings.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This keeps the layout library dependency-free from observability
// frameworks while allowing different backends (OpenTelemetry, Prometheus,
// plain logging) to be plugged in by the application.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetLayoutHooks(&myLayoutHooks{})
//	    // ... run application
//	}
//
// The layouter calls hooks as it runs:
//
//	observability.Layout().OnPhaseStart(ctx, "ranking")
//	// ... rank ...
//	observability.Layout().OnPhaseComplete(ctx, "ranking", duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// LayoutHooks receives events from the layout pipeline.
type LayoutHooks interface {
	// OnLayoutStart records the beginning of a full layout run.
	OnLayoutStart(ctx context.Context, nodeCount, edgeCount int)

	// OnLayoutComplete records the end of a full layout run.
	OnLayoutComplete(ctx context.Context, duration time.Duration, err error)

	// OnPhaseStart records the beginning of one pipeline phase
	// (ranking, normalize, ordering, coordinates, denormalize, routing).
	OnPhaseStart(ctx context.Context, phase string)

	// OnPhaseComplete records the end of one pipeline phase.
	OnPhaseComplete(ctx context.Context, phase string, duration time.Duration, err error)

	// OnWarning records a non-fatal condition (e.g. an edge left unrouted).
	OnWarning(ctx context.Context, warning string)
}

// NoopLayoutHooks is a no-op implementation of LayoutHooks.
type NoopLayoutHooks struct{}

func (NoopLayoutHooks) OnLayoutStart(context.Context, int, int)                          {}
func (NoopLayoutHooks) OnLayoutComplete(context.Context, time.Duration, error)           {}
func (NoopLayoutHooks) OnPhaseStart(context.Context, string)                             {}
func (NoopLayoutHooks) OnPhaseComplete(context.Context, string, time.Duration, error)    {}
func (NoopLayoutHooks) OnWarning(context.Context, string)                                {}

var (
	layoutHooks LayoutHooks = NoopLayoutHooks{}
	hooksMu     sync.RWMutex
)

// SetLayoutHooks registers custom layout hooks.
// This should be called once at application startup before any layout runs.
func SetLayoutHooks(h LayoutHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		layoutHooks = h
	}
}

// Layout returns the registered layout hooks.
func Layout() LayoutHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return layoutHooks
}

// Reset restores the no-op default hooks.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	layoutHooks = NoopLayoutHooks{}
}
