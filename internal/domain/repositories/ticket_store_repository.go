package repositories

import (
	"github.com/rios0rios0/vermap/internal/domain/entities"
)

// TicketStoreRepository persists drafted tickets between the diff and
// tickets commands, one record per package.
type TicketStoreRepository interface {
	// SaveAll writes every record into dir, creating it if needed.
	SaveAll(dir string, tickets []*entities.TicketRecord) error

	// LoadAll reads every record from dir, sorted by package name.
	LoadAll(dir string) ([]*entities.TicketRecord, error)
}
