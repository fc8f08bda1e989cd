package repositories

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/vermap/internal/domain/entities"
	domainRepos "github.com/rios0rios0/vermap/internal/domain/repositories"
	catalogRepo "github.com/rios0rios0/vermap/internal/infrastructure/repositories/catalog"
	gitRepo "github.com/rios0rios0/vermap/internal/infrastructure/repositories/git"
	ghRepo "github.com/rios0rios0/vermap/internal/infrastructure/repositories/github"
	jiraRepo "github.com/rios0rios0/vermap/internal/infrastructure/repositories/jira"
	storeRepo "github.com/rios0rios0/vermap/internal/infrastructure/repositories/yamlstore"
)

// RegisterProviders registers all repository implementations with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register source registry with all source factories
	if err := container.Provide(func() *SourceRegistry {
		reg := NewSourceRegistry()
		reg.Register("git", func(upstream entities.UpstreamSettings) (domainRepos.SourceRepository, error) {
			return gitRepo.NewGitSourceRepository(upstream), nil
		})
		reg.Register("github", func(upstream entities.UpstreamSettings) (domainRepos.SourceRepository, error) {
			return ghRepo.NewGitHubSourceRepository(upstream)
		})
		return reg
	}); err != nil {
		return err
	}

	// Register tracker registry with all tracker factories
	if err := container.Provide(func() *TrackerRegistry {
		reg := NewTrackerRegistry()
		reg.Register("jira", func(tracker entities.TrackerSettings) domainRepos.TrackerRepository {
			return jiraRepo.NewJiraTrackerRepository(tracker)
		})
		return reg
	}); err != nil {
		return err
	}

	// Register catalogue resolver and ticket store
	if err := container.Provide(catalogRepo.NewComponentCatalogRepository); err != nil {
		return err
	}
	if err := container.Provide(storeRepo.NewYamlTicketStoreRepository); err != nil {
		return err
	}

	// Bind interfaces to implementations
	if err := container.Provide(func(impl *catalogRepo.ComponentCatalogRepository) domainRepos.CatalogRepository {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *storeRepo.YamlTicketStoreRepository) domainRepos.TicketStoreRepository {
		return impl
	}); err != nil {
		return err
	}

	return nil
}
