package git

// LocalTree exports localTree for testing.
type LocalTree = localTree

// NewLocalTree exports the localTree constructor for testing.
func NewLocalTree(root, ref string) *LocalTree {
	return &localTree{root: root, ref: ref}
}

// SortVersionsDescending exports sortVersionsDescending for testing.
var SortVersionsDescending = sortVersionsDescending //nolint:gochecknoglobals // test export

// CloneURL exports cloneURL for testing.
func (p *GitSourceRepository) CloneURL() string {
	return p.cloneURL()
}
