package repositories

import (
	"context"

	"github.com/rios0rios0/vermap/internal/domain/entities"
)

// CatalogRepository resolves the fixed component catalogue against one
// checked-out source tree. Resolution alone never fails the run: every
// slot degrades to its placeholder when the tree cannot answer.
type CatalogRepository interface {
	// ResolveAll answers one entry per catalogue slot, in slot order.
	ResolveAll(ctx context.Context, tree SourceTree, opts entities.CatalogOptions) []entities.ComponentEntry
}
