package repositories

import (
	"fmt"

	"github.com/rios0rios0/vermap/internal/domain/entities"
	domainRepos "github.com/rios0rios0/vermap/internal/domain/repositories"
)

// SourceFactory is a constructor function that creates a SourceRepository for
// the configured upstream.
type SourceFactory func(upstream entities.UpstreamSettings) (domainRepos.SourceRepository, error)

// SourceRegistry manages all registered source implementations.
type SourceRegistry struct {
	sources map[string]SourceFactory
}

// NewSourceRegistry creates an empty source registry.
func NewSourceRegistry() *SourceRegistry {
	return &SourceRegistry{
		sources: make(map[string]SourceFactory),
	}
}

// Register adds a source factory under the given name (e.g. "git").
func (r *SourceRegistry) Register(name string, factory SourceFactory) {
	r.sources[name] = factory
}

// Get returns a configured source instance for the given name and upstream.
func (r *SourceRegistry) Get(
	name string,
	upstream entities.UpstreamSettings,
) (domainRepos.SourceRepository, error) {
	factory, ok := r.sources[name]
	if !ok {
		return nil, fmt.Errorf("unknown source type: %q", name)
	}
	return factory(upstream)
}

// Names returns the list of registered source names.
func (r *SourceRegistry) Names() []string {
	names := make([]string, 0, len(r.sources))
	for name := range r.sources {
		names = append(names, name)
	}
	return names
}
