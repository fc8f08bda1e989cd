//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/vermap/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// ChangeRecordBuilder helps create test change records with a fluent interface.
type ChangeRecordBuilder struct {
	*testkit.BaseBuilder
	packageName string
	oldVersion  string
	newVersion  string
	files       []string
}

// NewChangeRecordBuilder creates a new change record builder with sensible defaults.
func NewChangeRecordBuilder() *ChangeRecordBuilder {
	return &ChangeRecordBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		packageName: "test-package",
		oldVersion:  "1.0.0",
		newVersion:  "2.0.0",
		files:       []string{"common.txt"},
	}
}

// WithPackageName sets the package name.
func (b *ChangeRecordBuilder) WithPackageName(name string) *ChangeRecordBuilder {
	b.packageName = name
	return b
}

// WithOldVersion sets the version before the change. Empty marks an addition.
func (b *ChangeRecordBuilder) WithOldVersion(version string) *ChangeRecordBuilder {
	b.oldVersion = version
	return b
}

// WithNewVersion sets the version after the change. Empty marks a removal.
func (b *ChangeRecordBuilder) WithNewVersion(version string) *ChangeRecordBuilder {
	b.newVersion = version
	return b
}

// WithFiles sets the manifest file names the change appeared in.
func (b *ChangeRecordBuilder) WithFiles(files ...string) *ChangeRecordBuilder {
	b.files = files
	return b
}

// Build creates the change record (satisfies testkit.Builder interface).
func (b *ChangeRecordBuilder) Build() interface{} {
	return b.BuildChangeRecord()
}

// BuildChangeRecord creates the change record with a concrete return type.
func (b *ChangeRecordBuilder) BuildChangeRecord() *entities.ChangeRecord {
	return &entities.ChangeRecord{
		PackageName: b.packageName,
		OldVersion:  b.oldVersion,
		NewVersion:  b.newVersion,
		Files:       append([]string(nil), b.files...),
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *ChangeRecordBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.packageName = "test-package"
	b.oldVersion = "1.0.0"
	b.newVersion = "2.0.0"
	b.files = []string{"common.txt"}
	return b
}

// Clone creates a deep copy of the ChangeRecordBuilder.
func (b *ChangeRecordBuilder) Clone() testkit.Builder {
	return &ChangeRecordBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		packageName: b.packageName,
		oldVersion:  b.oldVersion,
		newVersion:  b.newVersion,
		files:       append([]string(nil), b.files...),
	}
}
