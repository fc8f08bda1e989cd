package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/vermap/internal/domain/entities"
	"github.com/rios0rios0/vermap/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/vermap/internal/infrastructure/repositories"
)

// Versions is the interface for the versions command (catalogue extraction).
type Versions interface {
	Execute(ctx context.Context, settings *entities.Settings, opts VersionsOptions) (string, error)
}

// VersionsOptions holds runtime options for a single extraction.
type VersionsOptions struct {
	Ref        string // Upstream tag/branch/commit; empty resolves to the newest tag
	SourceName string // If set, overrides the configured source type (CLI override)
	Format     string // simple, validation, or csv
	ShowLabels bool
	Extended   bool
}

// VersionsCommand checks out the upstream at one ref, resolves the component
// catalogue against it, and renders the spreadsheet report.
type VersionsCommand struct {
	sourceRegistry *infraRepos.SourceRegistry
	catalog        repositories.CatalogRepository
}

// NewVersionsCommand creates a new VersionsCommand with the given collaborators.
func NewVersionsCommand(
	sourceRegistry *infraRepos.SourceRegistry,
	catalog repositories.CatalogRepository,
) *VersionsCommand {
	return &VersionsCommand{
		sourceRegistry: sourceRegistry,
		catalog:        catalog,
	}
}

// Execute resolves every catalogue row at the requested ref and returns the
// rendered report.
func (it *VersionsCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts VersionsOptions,
) (string, error) {
	switch opts.Format {
	case entities.FormatSimple, entities.FormatValidation, entities.FormatCSV:
	default:
		return "", fmt.Errorf("unknown output format: %q", opts.Format)
	}

	sourceName := opts.SourceName
	if sourceName == "" {
		sourceName = settings.Upstream.Source
	}

	source, err := it.sourceRegistry.Get(sourceName, settings.Upstream)
	if err != nil {
		return "", fmt.Errorf("failed to initialize source: %w", err)
	}

	tree, err := source.Checkout(ctx, opts.Ref)
	if err != nil {
		return "", fmt.Errorf("failed to checkout %q: %w", opts.Ref, err)
	}
	defer closeTree(tree)

	logger.Infof("Extracting component versions at %s", tree.Ref())
	components := it.catalog.ResolveAll(ctx, tree, entities.CatalogOptions{Extended: opts.Extended})

	return entities.RenderComponentReport(components, opts.Format, opts.ShowLabels), nil
}

func closeTree(tree repositories.SourceTree) {
	if err := tree.Close(); err != nil {
		logger.Warnf("Failed to clean up checkout: %v", err)
	}
}
