package commands

import (
	"context"
	"fmt"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/vermap/internal/domain/entities"
	"github.com/rios0rios0/vermap/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/vermap/internal/infrastructure/repositories"
)

// fakeTicketKey substitutes for a tracker key during dry runs.
const fakeTicketKey = "FAKE-123"

// Tickets is the interface for the tickets command (batch submission).
type Tickets interface {
	Load(settings *entities.Settings, opts TicketsOptions) ([]*entities.TicketRecord, error)
	Submit(
		ctx context.Context,
		settings *entities.Settings,
		tickets []*entities.TicketRecord,
		opts TicketsOptions,
	) (*SubmitSummary, error)
}

// TicketsOptions holds runtime options for a submission batch.
type TicketsOptions struct {
	TicketsDir  string // If set, overrides the configured tickets directory (CLI override)
	PackageName string // If set, only process this package (CLI override)
	DryRun      bool
}

// CreatedTicket records one successful submission.
type CreatedTicket struct {
	Package string
	Key     string
}

// FailedTicket records one failed submission.
type FailedTicket struct {
	Package string
	Reason  string
}

// SubmitSummary aggregates the outcome of a submission batch.
type SubmitSummary struct {
	Created []CreatedTicket
	Failed  []FailedTicket
	DryRun  bool
}

// TicketsCommand loads drafted tickets from disk and submits them to the
// configured tracker, one request in flight at a time.
type TicketsCommand struct {
	trackerRegistry *infraRepos.TrackerRegistry
	store           repositories.TicketStoreRepository
	submitDelay     time.Duration
}

// NewTicketsCommand creates a new TicketsCommand with the given collaborators.
func NewTicketsCommand(
	trackerRegistry *infraRepos.TrackerRegistry,
	store repositories.TicketStoreRepository,
) *TicketsCommand {
	return &TicketsCommand{
		trackerRegistry: trackerRegistry,
		store:           store,
		submitDelay:     time.Second,
	}
}

// Load reads the drafted tickets, optionally narrowed to a single package.
// Asking for a package with no ticket file is an error.
func (it *TicketsCommand) Load(
	settings *entities.Settings,
	opts TicketsOptions,
) ([]*entities.TicketRecord, error) {
	dir := opts.TicketsDir
	if dir == "" {
		dir = settings.Tickets.Dir
	}

	tickets, err := it.store.LoadAll(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load tickets: %w", err)
	}

	if opts.PackageName != "" {
		tickets = filterByPackage(tickets, opts.PackageName)
		if len(tickets) == 0 {
			return nil, fmt.Errorf("package %q not found in %s", opts.PackageName, dir)
		}
	}

	return tickets, nil
}

// Submit creates one tracker ticket per record. Per-ticket failures are
// collected instead of aborting the batch; dry runs never reach the tracker.
func (it *TicketsCommand) Submit(
	ctx context.Context,
	settings *entities.Settings,
	tickets []*entities.TicketRecord,
	opts TicketsOptions,
) (*SubmitSummary, error) {
	summary := &SubmitSummary{
		Created: nil,
		Failed:  nil,
		DryRun:  opts.DryRun,
	}

	var tracker repositories.TrackerRepository
	if opts.DryRun {
		logger.Info("DRY RUN MODE - No actual tickets will be created")
	} else {
		if err := settings.ValidateForSubmission(); err != nil {
			return nil, err
		}

		var err error
		tracker, err = it.trackerRegistry.Get(settings.Tracker.Type, settings.Tracker)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize tracker: %w", err)
		}
	}

	for i, ticket := range tickets {
		logger.Infof("Processing %s (%d/%d)", ticket.PackageName, i+1, len(tickets))

		if opts.DryRun {
			logger.Infof("[DRY RUN] Would create %q", ticket.Title(settings.Tracker.TitlePrefix))
			summary.Created = append(summary.Created, CreatedTicket{
				Package: ticket.PackageName,
				Key:     fakeTicketKey,
			})
			continue
		}

		key, err := it.submitOne(ctx, tracker, settings, ticket)
		if err != nil {
			logger.Errorf("Failed to create ticket for %s: %v", ticket.PackageName, err)
			summary.Failed = append(summary.Failed, FailedTicket{
				Package: ticket.PackageName,
				Reason:  err.Error(),
			})
		} else {
			logger.Infof("Created %s for %s", key, ticket.PackageName)
			summary.Created = append(summary.Created, CreatedTicket{
				Package: ticket.PackageName,
				Key:     key,
			})
		}

		// Pace live requests to be nice to the server
		if i < len(tickets)-1 {
			time.Sleep(it.submitDelay)
		}
	}

	return summary, nil
}

func (it *TicketsCommand) submitOne(
	ctx context.Context,
	tracker repositories.TrackerRepository,
	settings *entities.Settings,
	ticket *entities.TicketRecord,
) (string, error) {
	meta := repositories.TicketMetadata{
		Project:    settings.Tracker.Project,
		Assignee:   settings.Tracker.Assignee,
		Components: settings.Tracker.Components,
		Label:      settings.Tracker.Label,
		Title:      ticket.Title(settings.Tracker.TitlePrefix),
	}

	key, err := tracker.CreateTicket(ctx, ticket, meta)
	if err != nil {
		return "", err
	}

	// The ticket exists at this point, so a metadata failure is not fatal
	if err = tracker.UpdateTicketMetadata(ctx, key, meta); err != nil {
		logger.Warnf("Created %s but failed to apply metadata: %v", key, err)
	}

	return key, nil
}

func filterByPackage(tickets []*entities.TicketRecord, name string) []*entities.TicketRecord {
	var filtered []*entities.TicketRecord
	for _, ticket := range tickets {
		if ticket.PackageName == name {
			filtered = append(filtered, ticket)
		}
	}
	return filtered
}
