// Package shutdown runs cleanup steps in priority order when the process
// releases its resources.
package shutdown

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Func releases one resource.
type Func func(ctx context.Context) error

// Priorities used by the drop CLI. Lower runs earlier.
const (
	PriorityWorkers = 10 // drain background writers
	PriorityStorage = 20 // close databases and files
	PriorityLogging = 30 // flush logs last
)

type entry struct {
	name     string
	fn       Func
	priority int
}

// Registry keeps named cleanup steps. It is safe for concurrent use.
type Registry struct {
	mu      sync.Mutex
	entries []entry
	closed  bool
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds fn under name. Steps of equal priority run in registration
// order. Registering after Shutdown is a no-op.
func (r *Registry) Register(name string, priority int, fn Func) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.entries = append(r.entries, entry{name: name, fn: fn, priority: priority})
}

// Shutdown runs every step in priority order, even after failures, and
// returns the failures wrapped with the step name. Later calls do nothing.
func (r *Registry) Shutdown(ctx context.Context) []error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	sorted := r.sorted()
	r.mu.Unlock()

	var errs []error
	for _, e := range sorted {
		if err := e.fn(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", e.name, err))
		}
	}
	return errs
}

// Names lists the steps in the order Shutdown runs them.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	sorted := r.sorted()
	names := make([]string, len(sorted))
	for i, e := range sorted {
		names[i] = e.name
	}
	return names
}

// IsClosed reports whether Shutdown has run.
func (r *Registry) IsClosed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

// sorted must be called with r.mu held.
func (r *Registry) sorted() []entry {
	out := make([]entry, len(r.entries))
	copy(out, r.entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].priority < out[j].priority
	})
	return out
}
