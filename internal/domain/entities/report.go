package entities

import (
	"fmt"
	"strings"
)

// Report formats accepted by the versions command.
const (
	FormatSimple     = "simple"
	FormatValidation = "validation"
	FormatCSV        = "csv"
)

const (
	reportWidth      = 80
	previewMaxFiles  = 2
	valueNotAvail    = "N/A"
	statusDetermined = "✓"
	statusMissing    = "⚠"
)

// RenderComponentReport formats resolved entries for copy-paste into the
// spreadsheet column, in one of the three supported formats. Entries are
// rendered in slot order.
func RenderComponentReport(entries []ComponentEntry, format string, showLabels bool) string {
	sorted := make([]ComponentEntry, len(entries))
	copy(sorted, entries)
	SortComponentEntries(sorted)

	switch format {
	case FormatValidation:
		return renderValidation(sorted)
	case FormatCSV:
		return renderDelimited(sorted)
	default:
		return renderSimple(sorted, showLabels)
	}
}

// renderSimple emits one value per line; merged rows keep their blank line
// so the paste target's row alignment survives.
func renderSimple(entries []ComponentEntry, showLabels bool) string {
	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		switch {
		case entry.Merged():
			lines = append(lines, "")
		case showLabels:
			lines = append(lines, fmt.Sprintf("%s: %s", entry.Label, entry.Value))
		default:
			lines = append(lines, entry.Value)
		}
	}
	return strings.Join(lines, "\n")
}

// renderDelimited emits row,label,value lines. The join is raw: labels keep
// their commas, the consumer is a paste target rather than a CSV parser.
func renderDelimited(entries []ComponentEntry) string {
	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Merged() {
			lines = append(lines, "")
			continue
		}
		lines = append(lines, fmt.Sprintf("%d,%s,%s", entry.Slot, entry.Label, entry.Value))
	}
	return strings.Join(lines, "\n")
}

// renderValidation emits the human verification report: one status line per
// component (merged rows skipped) and the summary counters.
func renderValidation(entries []ComponentEntry) string {
	rule := strings.Repeat("=", reportWidth)

	var lines []string
	lines = append(lines,
		rule,
		"Component Version Extraction Report",
		rule,
		fmt.Sprintf("%-5s %-45s %-20s %-10s", "Row", "Component", "Version", "Status"),
		strings.Repeat("-", reportWidth),
	)

	total, determined, spyre, tpu, tbd := 0, 0, 0, 0, 0
	for _, entry := range entries {
		if entry.Merged() {
			continue
		}

		status := statusMissing
		if entry.Determined() {
			status = statusDetermined
			determined++
		}
		total++

		switch entry.Value {
		case PlaceholderSpyre:
			spyre++
		case PlaceholderTPU:
			tpu++
		case PlaceholderTBD:
			tbd++
		}

		lines = append(lines, fmt.Sprintf(
			"%-5d %-45s %-20s %-10s",
			entry.Slot, entry.Label, entry.Value, status,
		))
	}

	lines = append(lines,
		rule,
		fmt.Sprintf("Total components: %d", total),
		fmt.Sprintf("Determined: %d", determined),
		fmt.Sprintf("Spyre plugins: %d", spyre),
		fmt.Sprintf("TPU plugins: %d", tpu),
		fmt.Sprintf("TBD: %d", tbd),
		rule,
	)

	return strings.Join(lines, "\n")
}

// RenderTicketPreview formats the drafted tickets as a fixed-width table so
// the batch can be reviewed before submission.
func RenderTicketPreview(tickets []*TicketRecord) string {
	rule := strings.Repeat("=", reportWidth)

	var lines []string
	lines = append(lines,
		rule,
		"TICKET PREVIEW",
		rule,
		fmt.Sprintf("%-25s %-15s %-15s %-12s %s",
			"Package", "Old Version", "New Version", "Change Type", "Files"),
		strings.Repeat("-", reportWidth),
	)

	for _, ticket := range tickets {
		oldVersion := ticket.OldVersion
		if oldVersion == "" {
			oldVersion = valueNotAvail
		}
		newVersion := ticket.NewVersion
		if newVersion == "" {
			newVersion = valueNotAvail
		}

		files := strings.Join(firstN(ticket.Files, previewMaxFiles), ", ")
		if len(ticket.Files) > previewMaxFiles {
			files += fmt.Sprintf(" (+%d more)", len(ticket.Files)-previewMaxFiles)
		}

		lines = append(lines, fmt.Sprintf(
			"%-25s %-15s %-15s %-12s %s",
			ticket.PackageName, oldVersion, newVersion, ticket.ChangeType(), files,
		))
	}

	lines = append(lines,
		"",
		fmt.Sprintf("Total tickets to create: %d", len(tickets)),
		rule,
	)

	return strings.Join(lines, "\n")
}

func firstN(values []string, n int) []string {
	if len(values) <= n {
		return values
	}
	return values[:n]
}
