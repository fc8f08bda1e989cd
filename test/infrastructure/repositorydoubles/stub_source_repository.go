//go:build integration || unit || test

// Package repositorydoubles provides test doubles (spies, stubs, dummies) for
// repository interfaces. These are hand-crafted implementations, not mock frameworks.
package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rios0rios0/vermap/internal/domain/repositories"
)

// StubSourceTree implements repositories.SourceTree over an in-memory file map.
// Keys are slash-separated paths relative to the repository root.
type StubSourceTree struct {
	TreeRef string

	// --- GetFileContent / HasFile / ListFiles ---
	Files   map[string]string
	ReadErr error
	ListErr error

	// --- Close ---
	CloseErr    error
	CloseCalled bool
}

var _ repositories.SourceTree = (*StubSourceTree)(nil)

func (t *StubSourceTree) Ref() string {
	return t.TreeRef
}

func (t *StubSourceTree) GetFileContent(_ context.Context, path string) (string, error) {
	if t.ReadErr != nil {
		return "", t.ReadErr
	}
	content, ok := t.Files[path]
	if !ok {
		return "", fmt.Errorf("file not found: %s", path)
	}
	return content, nil
}

func (t *StubSourceTree) HasFile(_ context.Context, path string) bool {
	_, ok := t.Files[path]
	return ok
}

func (t *StubSourceTree) ListFiles(_ context.Context, dir string) ([]string, error) {
	if t.ListErr != nil {
		return nil, t.ListErr
	}

	prefix := dir + "/"
	var names []string
	for path := range t.Files {
		rest, ok := strings.CutPrefix(path, prefix)
		if ok && !strings.Contains(rest, "/") {
			names = append(names, rest)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (t *StubSourceTree) Close() error {
	t.CloseCalled = true
	return t.CloseErr
}

// StubSourceRepository implements repositories.SourceRepository serving a
// fixed tree per ref. An empty requested ref resolves to DefaultRef.
type StubSourceRepository struct {
	SourceName string
	DefaultRef string

	// --- Checkout ---
	Trees          map[string]*StubSourceTree
	CheckoutErr    error
	CheckedOutRefs []string
}

var _ repositories.SourceRepository = (*StubSourceRepository)(nil)

func (p *StubSourceRepository) Name() string {
	return p.SourceName
}

func (p *StubSourceRepository) Checkout(_ context.Context, ref string) (repositories.SourceTree, error) {
	p.CheckedOutRefs = append(p.CheckedOutRefs, ref)
	if p.CheckoutErr != nil {
		return nil, p.CheckoutErr
	}

	if ref == "" {
		ref = p.DefaultRef
	}
	tree, ok := p.Trees[ref]
	if !ok {
		return nil, fmt.Errorf("unknown ref: %q", ref)
	}
	return tree, nil
}
