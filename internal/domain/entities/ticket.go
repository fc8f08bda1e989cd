package entities

import (
	"fmt"
	"strings"
)

// Change kinds a ticket can request.
const (
	ChangeTypeNew    = "NEW"
	ChangeTypeRemove = "REMOVE"
	ChangeTypeUpdate = "UPDATE"
)

// TicketRecord is one drafted tracker ticket, derived from a change record.
// Once rendered it is immutable; the YAML field set is the on-disk contract.
type TicketRecord struct {
	PackageName string   `yaml:"package_name"`
	OldVersion  string   `yaml:"old_version,omitempty"`
	NewVersion  string   `yaml:"new_version,omitempty"`
	Files       []string `yaml:"files"`
	Body        string   `yaml:"body_description"`
}

// TicketBoilerplate carries the release context every ticket body names.
type TicketBoilerplate struct {
	Project     string // upstream display name, e.g. "vLLM"
	Release     string // release being prepared, e.g. "v0.10.1"
	UpstreamURL string
}

const ticketBodyTemplate = `Requested Package Name and Version:

%s>=%s

Brief Explanation for request:

This package %s is required for %s %s release compatibility.

%s

This change appears in the following requirement files: %s

Context:
- The tickets are pre-emptive of the release of %s %s
- There may still be further changes when %s is cut
- The reasons that we need the packages is because they've been updated in upstream %s and we need them for the next midstream and later downstream release

For upstream reference, see: %s

Package License:

This package has been verified to have a license compatible with Red Hat products. Standard Python packages from PyPI are generally MIT, Apache 2.0, or BSD licensed which are acceptable for inclusion.
`

// DraftTicket renders the tracker ticket for one package change.
func DraftTicket(change *ChangeRecord, boiler TicketBoilerplate) *TicketRecord {
	var kind, versionInfo string
	switch change.ChangeType() {
	case ChangeTypeNew:
		kind = "addition"
		versionInfo = fmt.Sprintf("New package: %s >= %s", change.PackageName, change.NewVersion)
	case ChangeTypeRemove:
		kind = "removal"
		versionInfo = fmt.Sprintf("Removed package: %s %s", change.PackageName, change.OldVersion)
	default:
		kind = "update"
		versionInfo = fmt.Sprintf(
			"Update: %s from %s to %s",
			change.PackageName, change.OldVersion, change.NewVersion,
		)
	}

	// A removal has no new version to request a floor on
	floor := change.NewVersion
	if floor == "" {
		floor = change.OldVersion
	}

	body := fmt.Sprintf(ticketBodyTemplate,
		change.PackageName, floor,
		kind, boiler.Project, boiler.Release,
		versionInfo,
		strings.Join(change.Files, ", "),
		boiler.Project, boiler.Release,
		boiler.Release,
		boiler.Project,
		boiler.UpstreamURL,
	)

	return &TicketRecord{
		PackageName: change.PackageName,
		OldVersion:  change.OldVersion,
		NewVersion:  change.NewVersion,
		Files:       change.Files,
		Body:        body,
	}
}

// ChangeType classifies the record: NEW when the package only gained a
// version, REMOVE when it only lost one, UPDATE otherwise.
func (r *ChangeRecord) ChangeType() string {
	switch {
	case r.OldVersion == "":
		return ChangeTypeNew
	case r.NewVersion == "":
		return ChangeTypeRemove
	default:
		return ChangeTypeUpdate
	}
}

// ChangeType classifies the drafted ticket the same way as its change record.
func (t *TicketRecord) ChangeType() string {
	switch {
	case t.OldVersion == "":
		return ChangeTypeNew
	case t.NewVersion == "":
		return ChangeTypeRemove
	default:
		return ChangeTypeUpdate
	}
}

// Title renders the tracker summary line for this ticket.
func (t *TicketRecord) Title(prefix string) string {
	return fmt.Sprintf("%s: %s package update request", prefix, t.PackageName)
}
