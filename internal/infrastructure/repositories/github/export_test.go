package github

// ParseRepoURL exports parseRepoURL for testing.
var ParseRepoURL = parseRepoURL //nolint:gochecknoglobals // test export

// SortVersionsDescending exports sortVersionsDescending for testing.
var SortVersionsDescending = sortVersionsDescending //nolint:gochecknoglobals // test export
