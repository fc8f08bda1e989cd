package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	logger "github.com/sirupsen/logrus"
	"golang.org/x/mod/semver"

	"github.com/rios0rios0/vermap/internal/domain/entities"
	"github.com/rios0rios0/vermap/internal/domain/repositories"
)

const sourceName = "git"

// GitSourceRepository implements repositories.SourceRepository by cloning the
// upstream into a temporary directory and checking out the requested ref.
type GitSourceRepository struct {
	url   string
	token string
}

// NewGitSourceRepository creates a clone-based source for the given upstream.
func NewGitSourceRepository(upstream entities.UpstreamSettings) *GitSourceRepository {
	return &GitSourceRepository{
		url:   upstream.URL,
		token: upstream.Token,
	}
}

func (p *GitSourceRepository) Name() string { return sourceName }

// Checkout clones the upstream and checks out ref. An empty ref resolves to
// the newest version tag. The returned tree owns the clone directory until
// Close is called.
func (p *GitSourceRepository) Checkout(
	ctx context.Context,
	ref string,
) (repositories.SourceTree, error) {
	dir, err := os.MkdirTemp("", "vermap-git-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout directory: %w", err)
	}

	logger.Infof("[git] Cloning %s", p.url)
	repo, err := gogit.PlainCloneContext(ctx, dir, false, &gogit.CloneOptions{
		URL: p.cloneURL(),
	})
	if err != nil {
		_ = os.RemoveAll(dir)
		return nil, fmt.Errorf("failed to clone %s: %w", p.url, err)
	}

	if ref == "" {
		ref, err = latestTag(repo)
		if err != nil {
			_ = os.RemoveAll(dir)
			return nil, err
		}
		logger.Infof("[git] No ref given, using latest tag %s", ref)
	}

	logger.Infof("[git] Checking out %s", ref)
	hash, err := repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		_ = os.RemoveAll(dir)
		return nil, fmt.Errorf("failed to resolve ref %q: %w", ref, err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		_ = os.RemoveAll(dir)
		return nil, fmt.Errorf("failed to open worktree: %w", err)
	}
	if err = worktree.Checkout(&gogit.CheckoutOptions{Hash: *hash}); err != nil {
		_ = os.RemoveAll(dir)
		return nil, fmt.Errorf("failed to checkout %q: %w", ref, err)
	}

	return &localTree{root: dir, ref: ref}, nil
}

// cloneURL embeds the access token for HTTPS remotes. SSH and file remotes
// pass through untouched.
func (p *GitSourceRepository) cloneURL() string {
	if p.token == "" || !strings.HasPrefix(p.url, "https://") {
		return p.url
	}
	return strings.Replace(
		p.url,
		"https://",
		"https://x-access-token:"+p.token+"@",
		1,
	)
}

func latestTag(repo *gogit.Repository) (string, error) {
	iter, err := repo.Tags()
	if err != nil {
		return "", fmt.Errorf("failed to list tags: %w", err)
	}

	var tags []string
	err = iter.ForEach(func(tagRef *plumbing.Reference) error {
		tags = append(tags, tagRef.Name().Short())
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to iterate tags: %w", err)
	}
	if len(tags) == 0 {
		return "", errors.New("no tags found in repository")
	}

	sortVersionsDescending(tags)
	return tags[0], nil
}

// localTree exposes a checked-out clone directory as a SourceTree.
type localTree struct {
	root string
	ref  string
}

func (t *localTree) Ref() string { return t.ref }

func (t *localTree) GetFileContent(_ context.Context, path string) (string, error) {
	data, err := os.ReadFile(filepath.Join(t.root, filepath.FromSlash(path)))
	if err != nil {
		return "", fmt.Errorf("failed to read file %q: %w", path, err)
	}
	return string(data), nil
}

func (t *localTree) HasFile(_ context.Context, path string) bool {
	info, err := os.Stat(filepath.Join(t.root, filepath.FromSlash(path)))
	return err == nil && info.Mode().IsRegular()
}

func (t *localTree) ListFiles(_ context.Context, dir string) ([]string, error) {
	dirEntries, err := os.ReadDir(filepath.Join(t.root, filepath.FromSlash(dir)))
	if err != nil {
		return nil, fmt.Errorf("failed to list directory %q: %w", dir, err)
	}

	var names []string
	for _, entry := range dirEntries {
		if entry.Type().IsRegular() {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

func (t *localTree) Close() error {
	if err := os.RemoveAll(t.root); err != nil {
		return fmt.Errorf("failed to remove checkout directory: %w", err)
	}
	return nil
}

// --- version sorting ---

func sortVersionsDescending(versions []string) {
	sort.Slice(versions, func(i, j int) bool {
		v1 := normalizeVersion(versions[i])
		v2 := normalizeVersion(versions[j])
		if semver.IsValid(v1) && semver.IsValid(v2) {
			return semver.Compare(v1, v2) > 0
		}
		return versions[i] > versions[j]
	})
}

func normalizeVersion(version string) string {
	if strings.HasPrefix(version, "v") {
		return version
	}
	return "v" + version
}
