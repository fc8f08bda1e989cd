package github

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	gh "github.com/google/go-github/v66/github"
	logger "github.com/sirupsen/logrus"
	"golang.org/x/mod/semver"

	"github.com/rios0rios0/vermap/internal/domain/entities"
	"github.com/rios0rios0/vermap/internal/domain/repositories"
)

const (
	sourceName = "github"
	perPage    = 100
)

// GitHubSourceRepository implements repositories.SourceRepository over the
// GitHub API. No local checkout is made; file reads go through the Contents
// endpoint pinned to the resolved ref.
type GitHubSourceRepository struct {
	owner  string
	repo   string
	client *gh.Client
}

// NewGitHubSourceRepository creates an API-backed source for the given
// upstream. The upstream URL must name a github.com repository.
func NewGitHubSourceRepository(upstream entities.UpstreamSettings) (*GitHubSourceRepository, error) {
	owner, repo, err := parseRepoURL(upstream.URL)
	if err != nil {
		return nil, err
	}

	client := gh.NewClient(nil)
	if upstream.Token != "" {
		client = client.WithAuthToken(upstream.Token)
	}

	return &GitHubSourceRepository{
		owner:  owner,
		repo:   repo,
		client: client,
	}, nil
}

func (p *GitHubSourceRepository) Name() string { return sourceName }

// Checkout validates that ref exists upstream and returns a tree reading
// through the API at that ref. An empty ref resolves to the newest version
// tag.
func (p *GitHubSourceRepository) Checkout(
	ctx context.Context,
	ref string,
) (repositories.SourceTree, error) {
	if ref == "" {
		latest, err := p.latestTag(ctx)
		if err != nil {
			return nil, err
		}
		ref = latest
		logger.Infof("[github] No ref given, using latest tag %s", ref)
	}

	_, _, err := p.client.Repositories.GetCommit(ctx, p.owner, p.repo, ref, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve ref %q: %w", ref, err)
	}

	return &apiTree{
		owner:  p.owner,
		repo:   p.repo,
		ref:    ref,
		client: p.client,
	}, nil
}

func (p *GitHubSourceRepository) latestTag(ctx context.Context) (string, error) {
	var allTags []string
	opts := &gh.ListOptions{PerPage: perPage}

	for {
		tags, resp, err := p.client.Repositories.ListTags(ctx, p.owner, p.repo, opts)
		if err != nil {
			return "", fmt.Errorf("failed to list tags: %w", err)
		}

		for _, tag := range tags {
			allTags = append(allTags, tag.GetName())
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	if len(allTags) == 0 {
		return "", errors.New("no tags found in repository")
	}

	sortVersionsDescending(allTags)
	return allTags[0], nil
}

// parseRepoURL extracts owner and repository name from an upstream URL,
// accepting both HTTPS and SSH forms.
func parseRepoURL(rawURL string) (string, string, error) {
	cleaned := strings.TrimSuffix(rawURL, ".git")

	var pathPart string
	if strings.HasPrefix(cleaned, "git@") {
		parts := strings.SplitN(cleaned, ":", 2) //nolint:mnd // host:path
		if len(parts) < 2 {                      //nolint:mnd // need both parts
			return "", "", fmt.Errorf("invalid SSH URL: %s", rawURL)
		}
		pathPart = parts[1]
	} else {
		_, after, ok := strings.Cut(cleaned, "github.com")
		if !ok {
			return "", "", fmt.Errorf("hostname github.com not found in URL: %s", rawURL)
		}
		pathPart = strings.TrimPrefix(after, "/")
	}

	segments := strings.Split(pathPart, "/")
	if len(segments) < 2 { //nolint:mnd // need owner + repo
		return "", "", fmt.Errorf("cannot extract owner/repo from URL: %s", rawURL)
	}

	return segments[0], segments[1], nil
}

// apiTree reads repository files through the Contents API at a fixed ref.
type apiTree struct {
	owner  string
	repo   string
	ref    string
	client *gh.Client
}

func (t *apiTree) Ref() string { return t.ref }

func (t *apiTree) GetFileContent(ctx context.Context, path string) (string, error) {
	fileContent, _, _, err := t.client.Repositories.GetContents(
		ctx, t.owner, t.repo, path,
		&gh.RepositoryContentGetOptions{Ref: t.ref},
	)
	if err != nil {
		return "", fmt.Errorf("failed to get file %q: %w", path, err)
	}
	if fileContent == nil {
		return "", fmt.Errorf("path %q is a directory, not a file", path)
	}

	content, err := fileContent.GetContent()
	if err != nil {
		return "", fmt.Errorf("failed to decode file content: %w", err)
	}

	return content, nil
}

func (t *apiTree) HasFile(ctx context.Context, path string) bool {
	_, err := t.GetFileContent(ctx, path)
	return err == nil
}

func (t *apiTree) ListFiles(ctx context.Context, dir string) ([]string, error) {
	_, dirContents, _, err := t.client.Repositories.GetContents(
		ctx, t.owner, t.repo, dir,
		&gh.RepositoryContentGetOptions{Ref: t.ref},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list directory %q: %w", dir, err)
	}

	var names []string
	for _, entry := range dirContents {
		if entry.GetType() == "file" {
			names = append(names, entry.GetName())
		}
	}

	return names, nil
}

func (t *apiTree) Close() error { return nil }

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
