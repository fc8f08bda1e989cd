//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/vermap/internal/domain/entities"
	"github.com/rios0rios0/vermap/internal/domain/repositories"
)

// StubTicketStoreRepository implements repositories.TicketStoreRepository
// in memory, recording what was saved and serving configured records.
type StubTicketStoreRepository struct {
	// --- SaveAll ---
	SaveErr      error
	SavedDir     string
	SavedTickets []*entities.TicketRecord

	// --- LoadAll ---
	LoadErr     error
	LoadTickets []*entities.TicketRecord
	LoadedDirs  []string
}

var _ repositories.TicketStoreRepository = (*StubTicketStoreRepository)(nil)

func (p *StubTicketStoreRepository) SaveAll(dir string, tickets []*entities.TicketRecord) error {
	p.SavedDir = dir
	p.SavedTickets = tickets
	return p.SaveErr
}

func (p *StubTicketStoreRepository) LoadAll(dir string) ([]*entities.TicketRecord, error) {
	p.LoadedDirs = append(p.LoadedDirs, dir)
	if p.LoadErr != nil {
		return nil, p.LoadErr
	}
	return p.LoadTickets, nil
}
