package breaker

import (
	"io"
	"log/slog"
	"sync"
)

// Registry is a name-to-circuit map with get-or-create semantics, so
// independent call sites protecting the same dependency share one
// circuit. Safe for concurrent use.
//
// The registry is an explicit value: construct one and pass it to the
// components that need it. There is no package-level instance.
type Registry struct {
	mu       sync.RWMutex
	circuits map[string]*Circuit
	log      *slog.Logger
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithRegistryLogger sets the logger for registry lifecycle events.
func WithRegistryLogger(logger *slog.Logger) RegistryOption {
	return func(r *Registry) {
		r.log = logger
	}
}

// NewRegistry creates an empty Registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		circuits: make(map[string]*Circuit),
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Get returns the circuit registered under name, creating it with the
// given options on first lookup. Options on later lookups for the same
// name are ignored: the first registration wins, and Get is otherwise a
// no-op.
func (r *Registry) Get(name string, opts ...Option) *Circuit {
	r.mu.RLock()
	c, ok := r.circuits[name]
	r.mu.RUnlock()
	if ok {
		return c
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Double-check: another goroutine may have created it.
	if c, ok = r.circuits[name]; ok {
		return c
	}

	c = New(name, opts...)
	r.circuits[name] = c
	r.log.Info("circuit created", slog.String("circuit", name))
	return c
}

// AllStats returns a snapshot of every registered circuit.
func (r *Registry) AllStats() map[string]Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := make(map[string]Stats, len(r.circuits))
	for name, c := range r.circuits {
		stats[name] = c.Stats()
	}
	return stats
}

// Names returns the names of all registered circuits.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.circuits))
	for name := range r.circuits {
		names = append(names, name)
	}
	return names
}

// Reset forces the named circuit to closed with zeroed counters. It is
// a no-op if the name is not registered.
func (r *Registry) Reset(name string) {
	r.mu.RLock()
	c, ok := r.circuits[name]
	r.mu.RUnlock()
	if !ok {
		return
	}
	c.Reset()
	r.log.Info("circuit manually reset", slog.String("circuit", name))
}

// Remove deletes the named circuit from the registry. A later Get with
// the same name starts a fresh circuit.
func (r *Registry) Remove(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.circuits[name]; !ok {
		return
	}
	delete(r.circuits, name)
	r.log.Info("circuit removed", slog.String("circuit", name))
}
