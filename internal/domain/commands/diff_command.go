package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/vermap/internal/domain/entities"
	"github.com/rios0rios0/vermap/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/vermap/internal/infrastructure/repositories"
	"github.com/rios0rios0/vermap/internal/infrastructure/textdiff"
)

const (
	requirementsDir    = "requirements"
	unknownReleaseName = "TBD"
)

//nolint:gochecknoglobals // fixed manifest classification terms
var (
	manifestIncludeTerms = []string{"common", "build", "cuda", "rocm", "tpu"}
	manifestExcludeTerms = []string{"test", "nightly", "cpu"}
)

// Diff is the interface for the diff command (manifest reconciliation).
type Diff interface {
	Execute(ctx context.Context, settings *entities.Settings, opts DiffOptions) ([]*entities.TicketRecord, error)
}

// DiffOptions holds runtime options for a single reconciliation.
type DiffOptions struct {
	DiffFile   string // Path to a unified diff; empty means compare FromRef and ToRef
	FromRef    string
	ToRef      string
	TicketsDir string // If set, overrides the configured tickets directory (CLI override)
	SourceName string // If set, overrides the configured source type (CLI override)
}

// DiffCommand turns requirement manifest changes into drafted tracker
// tickets: obtain a unified diff, reconcile it into per-package change
// records, render ticket bodies, and persist them.
type DiffCommand struct {
	sourceRegistry *infraRepos.SourceRegistry
	store          repositories.TicketStoreRepository
}

// NewDiffCommand creates a new DiffCommand with the given collaborators.
func NewDiffCommand(
	sourceRegistry *infraRepos.SourceRegistry,
	store repositories.TicketStoreRepository,
) *DiffCommand {
	return &DiffCommand{
		sourceRegistry: sourceRegistry,
		store:          store,
	}
}

// Execute reconciles the diff and writes one ticket file per changed
// package, returning the drafted records in package order.
func (it *DiffCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts DiffOptions,
) ([]*entities.TicketRecord, error) {
	diffText, err := it.diffText(ctx, settings, opts)
	if err != nil {
		return nil, err
	}

	changes := entities.SortChanges(entities.ExtractChanges(diffText))
	if len(changes) == 0 {
		logger.Info("No package changes found")
		return nil, nil
	}
	logger.Infof("Found %d package changes", len(changes))

	release := settings.Release
	if release == "" {
		release = unknownReleaseName
		logger.Warnf("No release configured, ticket bodies will say %q", unknownReleaseName)
	}
	boilerplate := entities.TicketBoilerplate{
		Project:     settings.Upstream.Name,
		Release:     release,
		UpstreamURL: settings.Upstream.URL,
	}

	tickets := make([]*entities.TicketRecord, 0, len(changes))
	for _, change := range changes {
		tickets = append(tickets, entities.DraftTicket(change, boilerplate))
	}

	dir := opts.TicketsDir
	if dir == "" {
		dir = settings.Tickets.Dir
	}
	if err = it.store.SaveAll(dir, tickets); err != nil {
		return nil, fmt.Errorf("failed to persist tickets: %w", err)
	}
	logger.Infof("Generated %d ticket files in %s", len(tickets), dir)

	return tickets, nil
}

func (it *DiffCommand) diffText(
	ctx context.Context,
	settings *entities.Settings,
	opts DiffOptions,
) (string, error) {
	if opts.DiffFile != "" {
		data, err := os.ReadFile(opts.DiffFile)
		if err != nil {
			return "", fmt.Errorf("failed to read diff file: %w", err)
		}
		return string(data), nil
	}

	if opts.FromRef == "" || opts.ToRef == "" {
		return "", errors.New("either a diff file or both refs are required")
	}
	return it.compareRefs(ctx, settings, opts)
}

// compareRefs checks out both refs and renders a unified diff over the
// tracked requirement manifests of either tree.
func (it *DiffCommand) compareRefs(
	ctx context.Context,
	settings *entities.Settings,
	opts DiffOptions,
) (string, error) {
	sourceName := opts.SourceName
	if sourceName == "" {
		sourceName = settings.Upstream.Source
	}

	source, err := it.sourceRegistry.Get(sourceName, settings.Upstream)
	if err != nil {
		return "", fmt.Errorf("failed to initialize source: %w", err)
	}

	fromTree, err := source.Checkout(ctx, opts.FromRef)
	if err != nil {
		return "", fmt.Errorf("failed to checkout %q: %w", opts.FromRef, err)
	}
	defer closeTree(fromTree)

	toTree, err := source.Checkout(ctx, opts.ToRef)
	if err != nil {
		return "", fmt.Errorf("failed to checkout %q: %w", opts.ToRef, err)
	}
	defer closeTree(toTree)

	var sb strings.Builder
	for _, name := range trackedManifests(ctx, fromTree, toTree) {
		path := requirementsDir + "/" + name
		sb.WriteString(textdiff.Unified(
			path,
			manifestContent(ctx, fromTree, path),
			manifestContent(ctx, toTree, path),
		))
	}
	return sb.String(), nil
}

// trackedManifests unions the tracked manifest names of both trees so added
// and removed files still show up in the diff.
func trackedManifests(ctx context.Context, fromTree, toTree repositories.SourceTree) []string {
	seen := make(map[string]bool)
	for _, tree := range []repositories.SourceTree{fromTree, toTree} {
		names, err := tree.ListFiles(ctx, requirementsDir)
		if err != nil {
			logger.Warnf("Failed to list manifests at %s: %v", tree.Ref(), err)
			continue
		}
		for _, name := range names {
			if isTrackedManifest(name) {
				seen[name] = true
			}
		}
	}

	manifests := make([]string, 0, len(seen))
	for name := range seen {
		manifests = append(manifests, name)
	}
	sort.Strings(manifests)
	return manifests
}

// isTrackedManifest reports whether a requirements file feeds release
// tickets. Exclusion terms win, so rocm-test.txt stays out.
func isTrackedManifest(name string) bool {
	for _, term := range manifestExcludeTerms {
		if strings.Contains(name, term) {
			return false
		}
	}
	for _, term := range manifestIncludeTerms {
		if strings.Contains(name, term) {
			return true
		}
	}
	return false
}

func manifestContent(ctx context.Context, tree repositories.SourceTree, path string) string {
	if !tree.HasFile(ctx, path) {
		return ""
	}

	content, err := tree.GetFileContent(ctx, path)
	if err != nil {
		logger.Warnf("Failed to read %s at %s: %v", path, tree.Ref(), err)
		return ""
	}
	return content
}
