//go:build unit

package controllers_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/vermap/internal/domain/commands"
	"github.com/rios0rios0/vermap/internal/domain/entities"
	"github.com/rios0rios0/vermap/internal/infrastructure/controllers"
	commanddoubles "github.com/rios0rios0/vermap/test/domain/commanddoubles"
	builders "github.com/rios0rios0/vermap/test/domain/entitybuilders"
)

func TestDiffControllerGetBind(t *testing.T) {
	t.Parallel()

	t.Run("should bind as the diff subcommand", func(t *testing.T) {
		t.Parallel()

		// given
		controller := controllers.NewDiffController(&commanddoubles.StubDiffCommand{})

		// when
		bind := controller.GetBind()

		// then
		assert.Equal(t, "diff", bind.Use)
		assert.Contains(t, bind.Short, "Reconcile")
	})
}

func TestDiffControllerExecute(t *testing.T) {
	t.Parallel()

	t.Run("should forward flag values to the command", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubDiffCommand{
			Tickets: []*entities.TicketRecord{
				builders.NewTicketRecordBuilder().WithPackageName("torch").BuildTicketRecord(),
			},
		}
		controller := controllers.NewDiffController(stub)
		cmd := newControllerCommand(t, controller.AddFlags)
		require.NoError(t, cmd.Flags().Set("from-ref", "v0.9.0"))
		require.NoError(t, cmd.Flags().Set("to-ref", "v0.10.0"))
		require.NoError(t, cmd.Flags().Set("tickets-dir", "custom_tickets"))
		require.NoError(t, cmd.Flags().Set("source", "github"))

		// when
		controller.Execute(cmd, nil)

		// then
		assert.Equal(t, 1, stub.ExecuteCallCount)
		assert.Equal(t, commands.DiffOptions{
			DiffFile:   "",
			FromRef:    "v0.9.0",
			ToRef:      "v0.10.0",
			TicketsDir: "custom_tickets",
			SourceName: "github",
		}, stub.LastOpts)
	})

	t.Run("should pass the diff file path through", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubDiffCommand{}
		controller := controllers.NewDiffController(stub)
		cmd := newControllerCommand(t, controller.AddFlags)
		require.NoError(t, cmd.Flags().Set("diff-file", "changes.diff"))

		// when
		controller.Execute(cmd, nil)

		// then
		assert.Equal(t, "changes.diff", stub.LastOpts.DiffFile)
		assert.Empty(t, stub.LastOpts.FromRef)
	})
}
