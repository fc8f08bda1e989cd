//go:build unit

package controllers_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/vermap/internal/domain/commands"
	"github.com/rios0rios0/vermap/internal/infrastructure/controllers"
	commanddoubles "github.com/rios0rios0/vermap/test/domain/commanddoubles"
)

// newControllerCommand builds a Cobra command the way the root command wires
// subcommands: global config/verbose flags plus the controller's own flags,
// pointed at a throwaway settings file so machine state never leaks in.
func newControllerCommand(t *testing.T, addFlags func(*cobra.Command)) *cobra.Command {
	t.Helper()

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().StringP("config", "c", "", "")
	cmd.Flags().BoolP("verbose", "v", false, "")
	addFlags(cmd)

	path := filepath.Join(t.TempDir(), "vermap.yaml")
	require.NoError(t, os.WriteFile(path, []byte("release: v0.10.1\n"), 0o600))
	require.NoError(t, cmd.Flags().Set("config", path))
	return cmd
}

func TestVersionsControllerGetBind(t *testing.T) {
	t.Parallel()

	t.Run("should bind as the versions subcommand", func(t *testing.T) {
		t.Parallel()

		// given
		controller := controllers.NewVersionsController(&commanddoubles.StubVersionsCommand{})

		// when
		bind := controller.GetBind()

		// then
		assert.Equal(t, "versions", bind.Use)
		assert.Contains(t, bind.Short, "Extract component versions")
	})
}

func TestVersionsControllerExecute(t *testing.T) {
	t.Parallel()

	t.Run("should forward flag values to the command", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubVersionsCommand{Report: "2.7.0"}
		controller := controllers.NewVersionsController(stub)
		cmd := newControllerCommand(t, controller.AddFlags)
		require.NoError(t, cmd.Flags().Set("ref", "v0.10.0"))
		require.NoError(t, cmd.Flags().Set("source", "github"))
		require.NoError(t, cmd.Flags().Set("output", "csv"))
		require.NoError(t, cmd.Flags().Set("show-labels", "true"))
		require.NoError(t, cmd.Flags().Set("extended", "true"))

		// when
		controller.Execute(cmd, nil)

		// then
		assert.Equal(t, 1, stub.ExecuteCallCount)
		assert.Equal(t, commands.VersionsOptions{
			Ref:        "v0.10.0",
			SourceName: "github",
			Format:     "csv",
			ShowLabels: true,
			Extended:   true,
		}, stub.LastOpts)
		require.NotNil(t, stub.LastSettings)
		assert.Equal(t, "v0.10.1", stub.LastSettings.Release)
	})

	t.Run("should default the output format to simple", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubVersionsCommand{Report: "2.7.0"}
		controller := controllers.NewVersionsController(stub)
		cmd := newControllerCommand(t, controller.AddFlags)

		// when
		controller.Execute(cmd, nil)

		// then
		assert.Equal(t, "simple", stub.LastOpts.Format)
		assert.False(t, stub.LastOpts.ShowLabels)
		assert.Empty(t, stub.LastOpts.Ref)
	})
}
