//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"fmt"

	"github.com/rios0rios0/vermap/internal/domain/entities"
	"github.com/rios0rios0/vermap/internal/domain/repositories"
)

// SpyTrackerRepository implements repositories.TrackerRepository as a
// configurable spy. Created tickets get sequential keys ("TEST-1", "TEST-2")
// unless a per-package failure is configured.
type SpyTrackerRepository struct {
	TrackerName string

	// --- CreateTicket ---
	CreateErr       error
	FailPackages    map[string]error
	CreatedPackages []string
	CreatedMetadata []repositories.TicketMetadata

	// --- UpdateTicketMetadata ---
	UpdateErr       error
	UpdatedKeys     []string
	UpdatedMetadata []repositories.TicketMetadata
}

var _ repositories.TrackerRepository = (*SpyTrackerRepository)(nil)

func (p *SpyTrackerRepository) Name() string {
	return p.TrackerName
}

func (p *SpyTrackerRepository) CreateTicket(
	_ context.Context,
	ticket *entities.TicketRecord,
	meta repositories.TicketMetadata,
) (string, error) {
	p.CreatedPackages = append(p.CreatedPackages, ticket.PackageName)
	p.CreatedMetadata = append(p.CreatedMetadata, meta)

	if err, ok := p.FailPackages[ticket.PackageName]; ok {
		return "", err
	}
	if p.CreateErr != nil {
		return "", p.CreateErr
	}
	return fmt.Sprintf("TEST-%d", len(p.CreatedPackages)), nil
}

func (p *SpyTrackerRepository) UpdateTicketMetadata(
	_ context.Context,
	key string,
	meta repositories.TicketMetadata,
) error {
	p.UpdatedKeys = append(p.UpdatedKeys, key)
	p.UpdatedMetadata = append(p.UpdatedMetadata, meta)
	return p.UpdateErr
}
