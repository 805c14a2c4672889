// Package observability provides hooks for instrumenting export runs.
//
// The exporter emits events through a globally registered [ExportHooks]
// implementation. By default the hooks are no-ops; the CLI or an embedding
// program registers its own at startup:
//
//	func main() {
//	    observability.SetExportHooks(&myHooks{})
//	    // ... run export
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Export().OnClassWritten(ctx, "core.Engine", path)
//	observability.Export().OnExportComplete(ctx, stats, nil)
//
// OnExportComplete is the completion signal of an export run. It fires once
// per run, with the error that ended the run or nil.
package observability

import (
	"context"
	"sync"
	"time"
)

// ExportStats summarizes a finished export run.
type ExportStats struct {
	Namespaces int
	Classes    int
	Missing    int
	Files      int
	Duration   time.Duration
}

// ExportHooks receives events from the exporter.
type ExportHooks interface {
	// OnExportStart records the start of a run into outputDir.
	OnExportStart(ctx context.Context, outputDir string)

	// OnNamespaceWritten records a namespace manifest write.
	OnNamespaceWritten(ctx context.Context, namespace, path string)

	// OnClassWritten records a class data file write.
	OnClassWritten(ctx context.Context, class, path string)

	// OnMissingClass records a class listed by a namespace but absent from
	// the model.
	OnMissingClass(ctx context.Context, namespace, class string)

	// OnExportComplete records the end of a run.
	OnExportComplete(ctx context.Context, stats ExportStats, err error)
}

// NoopExportHooks is a no-op implementation of ExportHooks.
type NoopExportHooks struct{}

func (NoopExportHooks) OnExportStart(context.Context, string)                {}
func (NoopExportHooks) OnNamespaceWritten(context.Context, string, string)   {}
func (NoopExportHooks) OnClassWritten(context.Context, string, string)       {}
func (NoopExportHooks) OnMissingClass(context.Context, string, string)       {}
func (NoopExportHooks) OnExportComplete(context.Context, ExportStats, error) {}

var (
	exportHooks ExportHooks = NoopExportHooks{}
	hooksMu     sync.RWMutex
)

// SetExportHooks registers custom export hooks.
// This should be called once at application startup before any export runs.
func SetExportHooks(h ExportHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		exportHooks = h
	}
}

// Export returns the registered export hooks.
func Export() ExportHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return exportHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	exportHooks = NoopExportHooks{}
}
