package entities

import (
	"sort"
)

// Placeholder values a catalogue slot degrades to when its version cannot
// or must not be determined from the source tree.
const (
	PlaceholderTBD   = "[tbd]"
	PlaceholderSpyre = "[Spyre]"
	PlaceholderTPU   = "[TPU]"

	// MergedCellLabel marks spreadsheet spacer rows that carry no value.
	MergedCellLabel = "[merged cells]"
)

// ComponentEntry is one resolved catalogue slot, addressed by the
// spreadsheet row number it pastes into.
type ComponentEntry struct {
	Slot  int
	Label string
	Value string
}

// CatalogOptions selects which catalogue slots are resolved.
type CatalogOptions struct {
	// Extended appends the kernel-pin slots past the spreadsheet's
	// last row.
	Extended bool
}

// Determined reports whether the entry holds a real extracted value rather
// than a placeholder.
func (e ComponentEntry) Determined() bool {
	switch e.Value {
	case PlaceholderTBD, PlaceholderSpyre, PlaceholderTPU, "":
		return false
	default:
		return true
	}
}

// Merged reports whether the entry is a spreadsheet spacer row.
func (e ComponentEntry) Merged() bool {
	return e.Label == MergedCellLabel
}

// SortComponentEntries orders entries by slot, the paste order.
func SortComponentEntries(entries []ComponentEntry) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Slot < entries[j].Slot
	})
}
