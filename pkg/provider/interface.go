// Package provider is the seam between a symbol catalog and the front-end
// that searches it: group listing, filtering, UI metadata and insertion.
package provider

import (
	"github.com/bastiangx/symserve/pkg/catalog"
	"github.com/bastiangx/symserve/pkg/document"
)

// PreviewStyle is opaque styling for the symbol preview, passed through to
// the host UI as-is.
type PreviewStyle map[string]string

// Provider defines the interface every symbol catalog exposes to a front-end
type Provider interface {
	// GroupNames returns the selectable groups, AllGroups first
	GroupNames() []string

	// Symbols returns the symbols of a group; "" or AllGroups is the union
	Symbols(group string) []catalog.Symbol

	// Filter narrows an already group-scoped list by name or codepoint
	Filter(text string, symbols []catalog.Symbol) []catalog.Symbol

	// PlaceholderHint is shown in the empty search input
	PlaceholderHint() string

	// PreviewStyle styles the symbol preview
	PreviewStyle() PreviewStyle

	// InsertTransaction builds the document change that inserts symbol.
	// searchTerm is the text that found it.
	InsertTransaction(symbol catalog.Symbol, searchTerm string, state document.State) *document.Transaction
}
