package backend

import (
	"sort"
	"sync"

	"github.com/mmichie/inkspect/pkg/config"
	inkerrors "github.com/mmichie/inkspect/pkg/errors"
)

// Registry manages the available backend factories
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// DefaultRegistry returns a registry with every built-in provider
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(config.ProviderClaude, NewClaude)
	r.Register(config.ProviderGemini, NewGemini)
	r.Register(config.ProviderGenAI, NewGenAI)
	return r
}

// Register adds a factory under name, replacing any previous one
func (r *Registry) Register(name string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.factories[name] = factory
}

// Create builds the named backend. Unknown names are configuration errors.
func (r *Registry) Create(name string, cfg config.ProviderConfig) (Backend, error) {
	r.mu.RLock()
	factory, exists := r.factories[name]
	r.mu.RUnlock()

	if !exists {
		return nil, inkerrors.Configurationf("unsupported provider: %s", name)
	}
	return factory(cfg)
}

// Names returns the registered provider names, sorted
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]string, 0, len(r.factories))
	for name := range r.factories {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}

// FromConfig creates the backend selected by name, falling back to the configured default
func (r *Registry) FromConfig(cfg *config.Config, name string) (Backend, string, error) {
	if name == "" {
		name = cfg.LLM.Provider
	}
	pc, _ := cfg.Provider(name)
	b, err := r.Create(name, pc)
	if err != nil {
		return nil, name, err
	}
	return b, name, nil
}
