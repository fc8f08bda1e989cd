package repositories

import (
	"fmt"

	"github.com/rios0rios0/vermap/internal/domain/entities"
	domainRepos "github.com/rios0rios0/vermap/internal/domain/repositories"
)

// TrackerFactory is a constructor function that creates a TrackerRepository
// from the tracker settings.
type TrackerFactory func(tracker entities.TrackerSettings) domainRepos.TrackerRepository

// TrackerRegistry manages all registered issue tracker implementations.
type TrackerRegistry struct {
	trackers map[string]TrackerFactory
}

// NewTrackerRegistry creates an empty tracker registry.
func NewTrackerRegistry() *TrackerRegistry {
	return &TrackerRegistry{
		trackers: make(map[string]TrackerFactory),
	}
}

// Register adds a tracker factory under the given name (e.g. "jira").
func (r *TrackerRegistry) Register(name string, factory TrackerFactory) {
	r.trackers[name] = factory
}

// Get returns a configured tracker instance for the given name and settings.
func (r *TrackerRegistry) Get(
	name string,
	tracker entities.TrackerSettings,
) (domainRepos.TrackerRepository, error) {
	factory, ok := r.trackers[name]
	if !ok {
		return nil, fmt.Errorf("unknown tracker type: %q", name)
	}
	return factory(tracker), nil
}

// Names returns the list of registered tracker names.
func (r *TrackerRegistry) Names() []string {
	names := make([]string, 0, len(r.trackers))
	for name := range r.trackers {
		names = append(names, name)
	}
	return names
}
