package commerce

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Factory builds a client for one provider from a validated config.
type Factory func(ctx context.Context, cfg Config) (Client, error)

// Registry maps provider names to factories. Registration is explicit:
// applications call the adapter Register helpers at startup, in order,
// instead of relying on import side effects.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty provider registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a provider factory under name (case-insensitive).
// Registering an already-registered name is an error.
func (r *Registry) Register(name string, factory Factory) error {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return fmt.Errorf("%w: provider name is empty", ErrInvalidInput)
	}
	if factory == nil {
		return fmt.Errorf("%w: nil factory for provider %q", ErrInvalidInput, name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("%w: %q", ErrProviderRegistered, name)
	}
	r.factories[name] = factory
	return nil
}

// Registered reports whether a provider name is known.
func (r *Registry) Registered(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// Providers returns the registered provider names, sorted.
func (r *Registry) Providers() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New validates cfg and builds a client with the factory registered for
// cfg.Provider.
func (r *Registry) New(ctx context.Context, cfg Config) (Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	factory, ok := r.factories[cfg.Provider]
	r.mu.RUnlock()

	if !ok {
		known := strings.Join(r.Providers(), ", ")
		if known == "" {
			known = "none"
		}
		return nil, fmt.Errorf("%w: %q (registered: %s)", ErrUnknownProvider, cfg.Provider, known)
	}
	return factory(ctx, cfg)
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry the package-level
// helpers operate on.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Register adds a provider factory to the default registry.
func Register(name string, factory Factory) error {
	return defaultRegistry.Register(name, factory)
}

// NewClient builds a client from the default registry.
func NewClient(ctx context.Context, cfg Config) (Client, error) {
	return defaultRegistry.New(ctx, cfg)
}
