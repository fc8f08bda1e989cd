package repositories

import (
	"context"
)

// SourceRepository abstracts read access to the upstream project
// (via a local clone or a hosting API). Implementations never write
// to the upstream.
type SourceRepository interface {
	// Name returns the source identifier (e.g. "git", "github").
	Name() string

	// Checkout materializes a read-only view of the upstream at the given
	// revision (tag, branch, or commit hash). An empty ref resolves to the
	// newest semver tag.
	Checkout(ctx context.Context, ref string) (SourceTree, error)
}

// SourceTree is read access to one checked-out revision. Paths are always
// relative to the repository root, with forward slashes.
type SourceTree interface {
	// Ref returns the revision this tree was materialized from.
	Ref() string

	// GetFileContent returns the content of the file at path.
	GetFileContent(ctx context.Context, path string) (string, error)

	// HasFile checks whether a file exists at path.
	HasFile(ctx context.Context, path string) bool

	// ListFiles returns the base names of the regular files directly
	// under dir.
	ListFiles(ctx context.Context, dir string) ([]string, error)

	// Close releases whatever the checkout holds (temp dirs, handles).
	Close() error
}
