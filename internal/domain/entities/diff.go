package entities

import (
	"sort"
	"strings"
)

// ChangeRecord describes what happened to one package between two revisions
// of the requirement manifests. An empty OldVersion means the package did not
// exist before; an empty NewVersion means it is gone after. Files lists the
// manifest names the change appeared in, sorted and deduplicated.
type ChangeRecord struct {
	PackageName string   `yaml:"package_name"`
	OldVersion  string   `yaml:"old_version,omitempty"`
	NewVersion  string   `yaml:"new_version,omitempty"`
	Files       []string `yaml:"files"`
}

// ExtractChanges reconciles a unified diff of requirement manifests into one
// change record per package. A `---`/`+++` header moves the file cursor to
// the header's base file name; removal lines feed the old side and addition
// lines the new side, later lines overriding earlier ones. Records whose two
// sides ended up identical are dropped: a remove-and-re-add of the same
// version is not a change.
func ExtractChanges(diffText string) map[string]*ChangeRecord {
	type accumulator struct {
		oldVersion string
		newVersion string
		files      map[string]struct{}
	}

	changes := make(map[string]*accumulator)
	currentFile := ""

	track := func(name string) *accumulator {
		acc, ok := changes[name]
		if !ok {
			acc = &accumulator{files: make(map[string]struct{})}
			changes[name] = acc
		}
		if currentFile != "" {
			acc.files[currentFile] = struct{}{}
		}
		return acc
	}

	for _, line := range strings.Split(diffText, "\n") {
		switch {
		case strings.HasPrefix(line, "--- "), strings.HasPrefix(line, "+++ "):
			currentFile = diffFileName(line[4:])

		case strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "---"):
			if decl := changedDeclaration(line[1:]); decl != nil {
				track(decl.Name).oldVersion = decl.Version
			}

		case strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++"):
			if decl := changedDeclaration(line[1:]); decl != nil {
				track(decl.Name).newVersion = decl.Version
			}
		}
	}

	records := make(map[string]*ChangeRecord, len(changes))
	for name, acc := range changes {
		if acc.oldVersion == acc.newVersion {
			continue
		}

		files := make([]string, 0, len(acc.files))
		for file := range acc.files {
			files = append(files, file)
		}
		sort.Strings(files)

		records[name] = &ChangeRecord{
			PackageName: name,
			OldVersion:  acc.oldVersion,
			NewVersion:  acc.newVersion,
			Files:       files,
		}
	}

	return records
}

// SortChanges orders records by package name for deterministic rendering.
func SortChanges(changes map[string]*ChangeRecord) []*ChangeRecord {
	records := make([]*ChangeRecord, 0, len(changes))
	for _, record := range changes {
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].PackageName < records[j].PackageName
	})
	return records
}

// changedDeclaration parses a diff content line, filtering out the "via"
// annotation noise pip-compile leaves behind.
func changedDeclaration(line string) *PackageDeclaration {
	decl := ParseRequirementLine(line)
	if decl == nil || decl.Name == "" || decl.Name == "via" {
		return nil
	}
	return decl
}

// diffFileName reduces a diff header path to its base file name, dropping
// the timestamp metadata some diff tools append after a tab.
func diffFileName(headerPath string) string {
	path := strings.TrimSpace(headerPath)
	if i := strings.LastIndex(path, "/"); i >= 0 {
		path = path[i+1:]
	}
	if i := strings.Index(path, "\t"); i >= 0 {
		path = path[:i]
	}
	return path
}
