//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/vermap/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// TicketRecordBuilder helps create drafted test tickets with a fluent interface.
type TicketRecordBuilder struct {
	*testkit.BaseBuilder
	packageName string
	oldVersion  string
	newVersion  string
	files       []string
	body        string
}

// NewTicketRecordBuilder creates a new ticket record builder with sensible defaults.
func NewTicketRecordBuilder() *TicketRecordBuilder {
	return &TicketRecordBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		packageName: "test-package",
		oldVersion:  "1.0.0",
		newVersion:  "2.0.0",
		files:       []string{"common.txt"},
		body:        "Requested Package Name and Version:\n\ntest-package>=2.0.0\n",
	}
}

// WithPackageName sets the package name.
func (b *TicketRecordBuilder) WithPackageName(name string) *TicketRecordBuilder {
	b.packageName = name
	return b
}

// WithOldVersion sets the version before the change. Empty marks an addition.
func (b *TicketRecordBuilder) WithOldVersion(version string) *TicketRecordBuilder {
	b.oldVersion = version
	return b
}

// WithNewVersion sets the version after the change. Empty marks a removal.
func (b *TicketRecordBuilder) WithNewVersion(version string) *TicketRecordBuilder {
	b.newVersion = version
	return b
}

// WithFiles sets the manifest file names the change appeared in.
func (b *TicketRecordBuilder) WithFiles(files ...string) *TicketRecordBuilder {
	b.files = files
	return b
}

// WithBody sets the rendered ticket body.
func (b *TicketRecordBuilder) WithBody(body string) *TicketRecordBuilder {
	b.body = body
	return b
}

// Build creates the ticket record (satisfies testkit.Builder interface).
func (b *TicketRecordBuilder) Build() interface{} {
	return b.BuildTicketRecord()
}

// BuildTicketRecord creates the ticket record with a concrete return type.
func (b *TicketRecordBuilder) BuildTicketRecord() *entities.TicketRecord {
	return &entities.TicketRecord{
		PackageName: b.packageName,
		OldVersion:  b.oldVersion,
		NewVersion:  b.newVersion,
		Files:       append([]string(nil), b.files...),
		Body:        b.body,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *TicketRecordBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.packageName = "test-package"
	b.oldVersion = "1.0.0"
	b.newVersion = "2.0.0"
	b.files = []string{"common.txt"}
	b.body = "Requested Package Name and Version:\n\ntest-package>=2.0.0\n"
	return b
}

// Clone creates a deep copy of the TicketRecordBuilder.
func (b *TicketRecordBuilder) Clone() testkit.Builder {
	return &TicketRecordBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		packageName: b.packageName,
		oldVersion:  b.oldVersion,
		newVersion:  b.newVersion,
		files:       append([]string(nil), b.files...),
		body:        b.body,
	}
}
