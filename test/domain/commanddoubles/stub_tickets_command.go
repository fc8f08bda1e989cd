//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/vermap/internal/domain/commands"
	"github.com/rios0rios0/vermap/internal/domain/entities"
)

// StubTicketsCommand is a stub implementation of commands.Tickets.
type StubTicketsCommand struct {
	LoadCallCount int
	LoadTickets   []*entities.TicketRecord
	LoadErr       error
	LastLoadOpts  commands.TicketsOptions

	SubmitCallCount int
	Summary         *commands.SubmitSummary
	SubmitErr       error
	LastSettings    *entities.Settings
	LastSubmitted   []*entities.TicketRecord
	LastSubmitOpts  commands.TicketsOptions
}

var _ commands.Tickets = (*StubTicketsCommand)(nil)

func (s *StubTicketsCommand) Load(
	settings *entities.Settings,
	opts commands.TicketsOptions,
) ([]*entities.TicketRecord, error) {
	s.LoadCallCount++
	s.LastSettings = settings
	s.LastLoadOpts = opts
	return s.LoadTickets, s.LoadErr
}

func (s *StubTicketsCommand) Submit(
	_ context.Context,
	settings *entities.Settings,
	tickets []*entities.TicketRecord,
	opts commands.TicketsOptions,
) (*commands.SubmitSummary, error) {
	s.SubmitCallCount++
	s.LastSettings = settings
	s.LastSubmitted = tickets
	s.LastSubmitOpts = opts
	return s.Summary, s.SubmitErr
}
