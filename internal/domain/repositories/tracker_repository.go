package repositories

import (
	"context"

	"github.com/rios0rios0/vermap/internal/domain/entities"
)

// TicketMetadata is the static assignment metadata stamped on every
// submitted ticket.
type TicketMetadata struct {
	Project    string
	Assignee   string
	Components []string
	Label      string
	Title      string
}

// TrackerRepository abstracts the issue tracker tickets are submitted to.
type TrackerRepository interface {
	// Name returns the tracker identifier (e.g. "jira").
	Name() string

	// CreateTicket files one ticket and returns its tracker key.
	// A response without an identifiable key is an error.
	CreateTicket(ctx context.Context, ticket *entities.TicketRecord, meta TicketMetadata) (string, error)

	// UpdateTicketMetadata applies the assignment metadata to an already
	// created ticket. Callers may treat a failure here as partial success.
	UpdateTicketMetadata(ctx context.Context, key string, meta TicketMetadata) error
}
