//go:build unit

package commands_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/vermap/internal/domain/commands"
	"github.com/rios0rios0/vermap/internal/domain/entities"
	"github.com/rios0rios0/vermap/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/vermap/internal/infrastructure/repositories"
	"github.com/rios0rios0/vermap/internal/infrastructure/repositories/catalog"
	doubles "github.com/rios0rios0/vermap/test/infrastructure/repositorydoubles"
)

func versionsSettings() *entities.Settings {
	return &entities.Settings{
		Upstream: entities.UpstreamSettings{
			URL:    "https://github.com/vllm-project/vllm",
			Name:   "vLLM",
			Source: "git",
		},
	}
}

func TestVersionsCommandExecute(t *testing.T) {
	t.Parallel()

	t.Run("should reject an unknown output format", func(t *testing.T) {
		t.Parallel()

		// given
		cmd := commands.NewVersionsCommand(
			infraRepos.NewSourceRegistry(),
			catalog.NewComponentCatalogRepository(),
		)
		opts := commands.VersionsOptions{Format: "yaml"}

		// when
		_, err := cmd.Execute(context.Background(), versionsSettings(), opts)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown output format")
	})

	t.Run("should render one line per catalogue row and clean up", func(t *testing.T) {
		t.Parallel()

		// given
		tree := &doubles.StubSourceTree{TreeRef: "v0.10.0"}
		stub := &doubles.StubSourceRepository{
			SourceName: "git",
			Trees:      map[string]*doubles.StubSourceTree{"v0.10.0": tree},
		}
		registry := infraRepos.NewSourceRegistry()
		registry.Register("git", func(_ entities.UpstreamSettings) (repositories.SourceRepository, error) {
			return stub, nil
		})
		cmd := commands.NewVersionsCommand(registry, catalog.NewComponentCatalogRepository())
		opts := commands.VersionsOptions{Ref: "v0.10.0", Format: entities.FormatSimple}

		// when
		report, err := cmd.Execute(context.Background(), versionsSettings(), opts)

		// then
		require.NoError(t, err)
		assert.Len(t, strings.Split(report, "\n"), 28)
		assert.Contains(t, report, "[Spyre]")
		assert.Equal(t, []string{"v0.10.0"}, stub.CheckedOutRefs)
		assert.True(t, tree.CloseCalled)
	})

	t.Run("should prefer the source override over the settings", func(t *testing.T) {
		t.Parallel()

		// given
		gitStub := &doubles.StubSourceRepository{
			SourceName: "git",
			Trees:      map[string]*doubles.StubSourceTree{"v0.10.0": {TreeRef: "v0.10.0"}},
		}
		githubStub := &doubles.StubSourceRepository{
			SourceName: "github",
			Trees:      map[string]*doubles.StubSourceTree{"v0.10.0": {TreeRef: "v0.10.0"}},
		}
		registry := infraRepos.NewSourceRegistry()
		registry.Register("git", func(_ entities.UpstreamSettings) (repositories.SourceRepository, error) {
			return gitStub, nil
		})
		registry.Register("github", func(_ entities.UpstreamSettings) (repositories.SourceRepository, error) {
			return githubStub, nil
		})
		cmd := commands.NewVersionsCommand(registry, catalog.NewComponentCatalogRepository())
		opts := commands.VersionsOptions{
			Ref:        "v0.10.0",
			SourceName: "github",
			Format:     entities.FormatSimple,
		}

		// when
		_, err := cmd.Execute(context.Background(), versionsSettings(), opts)

		// then
		require.NoError(t, err)
		assert.Empty(t, gitStub.CheckedOutRefs)
		assert.Len(t, githubStub.CheckedOutRefs, 1)
	})

	t.Run("should fail for an unregistered source type", func(t *testing.T) {
		t.Parallel()

		// given
		cmd := commands.NewVersionsCommand(
			infraRepos.NewSourceRegistry(),
			catalog.NewComponentCatalogRepository(),
		)
		opts := commands.VersionsOptions{Format: entities.FormatSimple}

		// when
		_, err := cmd.Execute(context.Background(), versionsSettings(), opts)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to initialize source")
	})

	t.Run("should fail when the checkout fails", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &doubles.StubSourceRepository{
			SourceName:  "git",
			CheckoutErr: errors.New("network down"),
		}
		registry := infraRepos.NewSourceRegistry()
		registry.Register("git", func(_ entities.UpstreamSettings) (repositories.SourceRepository, error) {
			return stub, nil
		})
		cmd := commands.NewVersionsCommand(registry, catalog.NewComponentCatalogRepository())
		opts := commands.VersionsOptions{Ref: "v0.10.0", Format: entities.FormatSimple}

		// when
		_, err := cmd.Execute(context.Background(), versionsSettings(), opts)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to checkout")
	})
}
