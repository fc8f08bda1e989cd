package entities

import (
	"regexp"
	"strings"
)

const (
	// VersionLatest marks a declaration that carries no constraint at all.
	VersionLatest = "latest"

	// VersionUnknown marks a URL declaration whose version could not be read.
	VersionUnknown = "unknown"

	shortHashLen = 8
)

// PackageDeclaration is a single package reference parsed out of a pip
// requirements manifest line.
type PackageDeclaration struct {
	Name    string
	Version string
}

var (
	// urlNamePattern captures the package name of a "name [extras] @ URL" line.
	urlNamePattern = regexp.MustCompile(`^([^\s\[]+)(?:\[[^\]]+\])?\s*@`)

	// commitHashPattern captures a full git commit hash pinned after an @.
	commitHashPattern = regexp.MustCompile(`@([0-9a-f]{40})`)

	// urlVersionPattern captures a semantic version embedded in a URL.
	urlVersionPattern = regexp.MustCompile(`(\d+\.\d+\.\d+(?:\.dev\d+)?)`)

	// specPattern splits a standard declaration into name, optional extras,
	// and the whole constraint expression.
	specPattern = regexp.MustCompile(
		`^([a-zA-Z0-9_-]+)(?:\[[^\]]+\])?\s*([><=!]+\s*[\d.\w+]+(?:\s*,\s*[><=!]+\s*[\d.\w+]+)*)?`,
	)

	lowerBoundPattern = regexp.MustCompile(`>=?\s*(\d+\.\d+(?:\.\d+)?(?:\+\w+|\.dev\d+)?)`)
	exactPinPattern   = regexp.MustCompile(`==\s*(\d+\.\d+(?:\.\d+)?(?:\+\w+|\.dev\d+)?)`)
	upperOnlyPattern  = regexp.MustCompile(`^\s*<=?\s*[\d.]+`)
	anyVersionPattern = regexp.MustCompile(`(\d+\.\d+(?:\.\d+)?(?:\+\w+|\.dev\d+)?)`)
)

// ParseRequirementLine extracts the package declaration from one manifest line.
// It returns nil for lines that declare nothing: blanks, comments, and bare
// pip options.
//
// URL declarations ("name @ https://...") report the pinned commit hash
// shortened to 8 characters when one is present, the first semantic version
// found in the URL otherwise, and "unknown" as the last resort. Constrained
// declarations prefer the lower bound, then an exact pin; when only upper
// bounds remain the whole constraint is reported verbatim. A declaration
// without any constraint reports "latest". The parser never fails: whatever
// cannot be narrowed down is captured as raw text.
func ParseRequirementLine(line string) *PackageDeclaration {
	line = strings.TrimSpace(line)

	// Skip comments, empty lines, and pip options
	if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "--") {
		return nil
	}

	// URL-based declarations (git repos, wheel URLs)
	if strings.Contains(line, "@") && strings.Contains(line, "http") {
		if m := urlNamePattern.FindStringSubmatch(line); m != nil {
			name := m[1]

			if hash := commitHashPattern.FindStringSubmatch(line); hash != nil {
				return &PackageDeclaration{Name: name, Version: hash[1][:shortHashLen]}
			}

			if version := urlVersionPattern.FindStringSubmatch(line); version != nil {
				return &PackageDeclaration{Name: name, Version: version[1]}
			}

			return &PackageDeclaration{Name: name, Version: VersionUnknown}
		}
	}

	// Standard declarations: name, optional extras, optional constraints
	m := specPattern.FindStringSubmatch(line)
	if m == nil {
		return nil
	}

	name := m[1]
	spec := m[2]
	if spec == "" {
		return &PackageDeclaration{Name: name, Version: VersionLatest}
	}

	return &PackageDeclaration{Name: name, Version: versionFromSpec(spec)}
}

// versionFromSpec narrows a constraint expression down to a single value.
func versionFromSpec(spec string) string {
	// Lower bounds win over upper bounds
	if m := lowerBoundPattern.FindStringSubmatch(spec); m != nil {
		return m[1]
	}

	if m := exactPinPattern.FindStringSubmatch(spec); m != nil {
		return m[1]
	}

	// Only upper bounds: keep the full constraint
	if upperOnlyPattern.MatchString(strings.TrimSpace(spec)) {
		return strings.TrimSpace(spec)
	}

	if m := anyVersionPattern.FindStringSubmatch(spec); m != nil {
		return m[1]
	}

	return strings.TrimSpace(spec)
}
