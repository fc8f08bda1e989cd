//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/vermap/internal/domain/commands"
	"github.com/rios0rios0/vermap/internal/domain/entities"
	"github.com/rios0rios0/vermap/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/vermap/internal/infrastructure/repositories"
	builders "github.com/rios0rios0/vermap/test/domain/entitybuilders"
	doubles "github.com/rios0rios0/vermap/test/infrastructure/repositorydoubles"
)

func ticketsSettings() *entities.Settings {
	return &entities.Settings{
		Tracker: entities.TrackerSettings{
			Type:        "jira",
			BaseURL:     "https://issues.example.com",
			Token:       "secret",
			Project:     "PROJ",
			Assignee:    "builder-bot",
			Components:  []string{"Packaging"},
			Label:       "release",
			TitlePrefix: "builder",
		},
		Tickets: entities.TicketsSettings{Dir: "ticket_text"},
	}
}

func draftedBatch() []*entities.TicketRecord {
	return []*entities.TicketRecord{
		builders.NewTicketRecordBuilder().WithPackageName("torch").BuildTicketRecord(),
		builders.NewTicketRecordBuilder().WithPackageName("transformers").BuildTicketRecord(),
	}
}

func newTicketsCommand(
	spy *doubles.SpyTrackerRepository,
	store *doubles.StubTicketStoreRepository,
) *commands.TicketsCommand {
	registry := infraRepos.NewTrackerRegistry()
	if spy != nil {
		registry.Register("jira", func(_ entities.TrackerSettings) repositories.TrackerRepository {
			return spy
		})
	}
	cmd := commands.NewTicketsCommand(registry, store)
	cmd.SetSubmitDelay(0)
	return cmd
}

func TestTicketsCommandLoad(t *testing.T) {
	t.Parallel()

	t.Run("should load from the configured directory", func(t *testing.T) {
		t.Parallel()

		// given
		store := &doubles.StubTicketStoreRepository{LoadTickets: draftedBatch()}
		cmd := newTicketsCommand(nil, store)

		// when
		tickets, err := cmd.Load(ticketsSettings(), commands.TicketsOptions{})

		// then
		require.NoError(t, err)
		assert.Len(t, tickets, 2)
		assert.Equal(t, []string{"ticket_text"}, store.LoadedDirs)
	})

	t.Run("should prefer the directory override", func(t *testing.T) {
		t.Parallel()

		// given
		store := &doubles.StubTicketStoreRepository{LoadTickets: draftedBatch()}
		cmd := newTicketsCommand(nil, store)
		opts := commands.TicketsOptions{TicketsDir: "custom_tickets"}

		// when
		_, err := cmd.Load(ticketsSettings(), opts)

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"custom_tickets"}, store.LoadedDirs)
	})

	t.Run("should narrow to one package", func(t *testing.T) {
		t.Parallel()

		// given
		store := &doubles.StubTicketStoreRepository{LoadTickets: draftedBatch()}
		cmd := newTicketsCommand(nil, store)
		opts := commands.TicketsOptions{PackageName: "torch"}

		// when
		tickets, err := cmd.Load(ticketsSettings(), opts)

		// then
		require.NoError(t, err)
		require.Len(t, tickets, 1)
		assert.Equal(t, "torch", tickets[0].PackageName)
	})

	t.Run("should fail when the package has no ticket", func(t *testing.T) {
		t.Parallel()

		// given
		store := &doubles.StubTicketStoreRepository{LoadTickets: draftedBatch()}
		cmd := newTicketsCommand(nil, store)
		opts := commands.TicketsOptions{PackageName: "absent"}

		// when
		_, err := cmd.Load(ticketsSettings(), opts)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), `package "absent" not found`)
	})

	t.Run("should wrap store failures", func(t *testing.T) {
		t.Parallel()

		// given
		store := &doubles.StubTicketStoreRepository{LoadErr: errors.New("disk gone")}
		cmd := newTicketsCommand(nil, store)

		// when
		_, err := cmd.Load(ticketsSettings(), commands.TicketsOptions{})

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to load tickets")
	})
}

func TestTicketsCommandSubmit(t *testing.T) {
	t.Parallel()

	t.Run("should fake keys without touching the tracker on a dry run", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &doubles.SpyTrackerRepository{TrackerName: "jira"}
		cmd := newTicketsCommand(spy, &doubles.StubTicketStoreRepository{})
		opts := commands.TicketsOptions{DryRun: true}

		// when
		summary, err := cmd.Submit(context.Background(), ticketsSettings(), draftedBatch(), opts)

		// then
		require.NoError(t, err)
		assert.True(t, summary.DryRun)
		require.Len(t, summary.Created, 2)
		assert.Equal(t, commands.FakeTicketKey, summary.Created[0].Key)
		assert.Equal(t, commands.FakeTicketKey, summary.Created[1].Key)
		assert.Empty(t, spy.CreatedPackages)
	})

	t.Run("should create tickets and apply metadata on a live run", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &doubles.SpyTrackerRepository{TrackerName: "jira"}
		cmd := newTicketsCommand(spy, &doubles.StubTicketStoreRepository{})

		// when
		summary, err := cmd.Submit(
			context.Background(), ticketsSettings(), draftedBatch(), commands.TicketsOptions{},
		)

		// then
		require.NoError(t, err)
		require.Len(t, summary.Created, 2)
		assert.Equal(t, commands.CreatedTicket{Package: "torch", Key: "TEST-1"}, summary.Created[0])
		assert.Equal(t, commands.CreatedTicket{Package: "transformers", Key: "TEST-2"}, summary.Created[1])
		assert.Empty(t, summary.Failed)
		assert.Equal(t, []string{"TEST-1", "TEST-2"}, spy.UpdatedKeys)
		require.Len(t, spy.CreatedMetadata, 2)
		assert.Equal(t, "PROJ", spy.CreatedMetadata[0].Project)
		assert.Equal(t, "builder: torch package update request", spy.CreatedMetadata[0].Title)
	})

	t.Run("should collect per-ticket failures without aborting", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &doubles.SpyTrackerRepository{
			TrackerName:  "jira",
			FailPackages: map[string]error{"torch": errors.New("request rejected")},
		}
		cmd := newTicketsCommand(spy, &doubles.StubTicketStoreRepository{})

		// when
		summary, err := cmd.Submit(
			context.Background(), ticketsSettings(), draftedBatch(), commands.TicketsOptions{},
		)

		// then
		require.NoError(t, err)
		require.Len(t, summary.Failed, 1)
		assert.Equal(t, "torch", summary.Failed[0].Package)
		assert.Contains(t, summary.Failed[0].Reason, "request rejected")
		require.Len(t, summary.Created, 1)
		assert.Equal(t, "transformers", summary.Created[0].Package)
	})

	t.Run("should count a ticket created when only metadata fails", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &doubles.SpyTrackerRepository{
			TrackerName: "jira",
			UpdateErr:   errors.New("field not on screen"),
		}
		cmd := newTicketsCommand(spy, &doubles.StubTicketStoreRepository{})
		batch := draftedBatch()[:1]

		// when
		summary, err := cmd.Submit(context.Background(), ticketsSettings(), batch, commands.TicketsOptions{})

		// then
		require.NoError(t, err)
		assert.Len(t, summary.Created, 1)
		assert.Empty(t, summary.Failed)
	})

	t.Run("should refuse a live run without tracker settings", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &doubles.SpyTrackerRepository{TrackerName: "jira"}
		cmd := newTicketsCommand(spy, &doubles.StubTicketStoreRepository{})
		settings := &entities.Settings{}

		// when
		_, err := cmd.Submit(context.Background(), settings, draftedBatch(), commands.TicketsOptions{})

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "tracker.type is required")
		assert.Empty(t, spy.CreatedPackages)
	})

	t.Run("should fail when the tracker type is not registered", func(t *testing.T) {
		t.Parallel()

		// given
		cmd := newTicketsCommand(nil, &doubles.StubTicketStoreRepository{})

		// when
		_, err := cmd.Submit(
			context.Background(), ticketsSettings(), draftedBatch(), commands.TicketsOptions{},
		)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to initialize tracker")
	})
}
