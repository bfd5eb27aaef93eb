package backend

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/gogpu/glprogram"
)

// BackendFactory creates a new backend instance.
type BackendFactory func() Backend

// registry holds registered backends.
var (
	registryMu sync.RWMutex
	backends   = make(map[string]BackendFactory)
	// Priority order for backend selection (first that initializes wins).
	backendPriority = []string{BackendOpenGL, BackendSoft}
)

// Register registers a backend factory with the given name.
// This is typically called from init() functions in backend packages.
// If a backend with the same name is already registered, it will be replaced.
func Register(name string, factory BackendFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	backends[name] = factory
}

// Unregister removes a backend from the registry.
// This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(backends, name)
}

// Available returns the registered backend names in sorted order.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// IsRegistered checks if a backend with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := backends[name]
	return ok
}

// Get returns a backend instance by name.
// Returns nil if the backend is not registered.
func Get(name string) Backend {
	registryMu.RLock()
	defer registryMu.RUnlock()

	factory, ok := backends[name]
	if !ok {
		return nil
	}
	return factory()
}

// candidates returns one instance per registered backend, in priority order.
func candidates() []Backend {
	registryMu.RLock()
	defer registryMu.RUnlock()

	var out []Backend
	seen := make(map[string]bool, len(backends))
	for _, name := range backendPriority {
		if factory, ok := backends[name]; ok {
			seen[name] = true
			if b := factory(); b != nil {
				out = append(out, b)
			}
		}
	}
	rest := make([]string, 0, len(backends))
	for name := range backends {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	slices.Sort(rest)
	for _, name := range rest {
		if b := backends[name](); b != nil {
			out = append(out, b)
		}
	}
	return out
}

// InitDefault initializes and returns the first backend, in priority
// order, whose Init succeeds. The errors of the skipped backends are joined
// into the returned error when none succeeds.
func InitDefault() (Backend, error) {
	var errs []error
	for _, b := range candidates() {
		err := b.Init()
		if err == nil {
			return b, nil
		}
		glprogram.Logger().Debug("backend: init failed, trying next", "backend", b.Name(), "err", err)
		errs = append(errs, fmt.Errorf("%s: %w", b.Name(), err))
	}
	if len(errs) == 0 {
		return nil, ErrBackendNotAvailable
	}
	return nil, fmt.Errorf("%w: %w", ErrBackendNotAvailable, errors.Join(errs...))
}

// Open returns the named backend, initialized. An empty name selects the
// default via InitDefault.
func Open(name string) (Backend, error) {
	if name == "" {
		return InitDefault()
	}
	b := Get(name)
	if b == nil {
		return nil, fmt.Errorf("%w: %q (registered: %v)", ErrBackendNotAvailable, name, Available())
	}
	if err := b.Init(); err != nil {
		return nil, fmt.Errorf("backend %s: %w", name, err)
	}
	return b, nil
}
