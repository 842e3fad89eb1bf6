// Package search lists and filters catalog symbols by group, name and codepoint.
package search

import (
	"sort"
	"strings"

	"github.com/bastiangx/symserve/pkg/catalog"
	"github.com/bastiangx/symserve/pkg/codepoint"
)

// AllGroups names the union of every catalog group.
const AllGroups = catalog.AllGroupName

// Engine answers group and filter queries over one immutable catalog.
// All methods are safe for concurrent use and return fresh slices.
type Engine struct {
	groups   []catalog.Group
	byName   map[string]int
	keywords *KeywordIndex
}

// New builds an engine over c.
func New(c *catalog.Catalog) *Engine {
	groups := c.Groups()
	e := &Engine{
		groups:   groups,
		byName:   make(map[string]int, len(groups)),
		keywords: NewKeywordIndex(),
	}
	for i, g := range groups {
		e.byName[g.Name] = i
		for _, s := range g.Symbols {
			e.keywords.Add(s.Name)
		}
	}
	return e
}

// GroupNames returns AllGroups followed by the catalog group names in
// catalog order.
func (e *Engine) GroupNames() []string {
	names := make([]string, 0, len(e.groups)+1)
	names = append(names, AllGroups)
	for _, g := range e.groups {
		names = append(names, g.Name)
	}
	return names
}

// Symbols returns the symbols of the named group in catalog order. An empty
// name or AllGroups yields every symbol ordered by codepoint. Unknown groups
// yield an empty slice.
//
// Symbols sharing a codepoint keep group order, then within-group order.
// Symbols without a codepoint come last.
func (e *Engine) Symbols(group string) []catalog.Symbol {
	if group == "" || group == AllGroups {
		return e.union()
	}
	i, ok := e.byName[group]
	if !ok {
		return []catalog.Symbol{}
	}
	return cloneSymbols(e.groups[i].Symbols)
}

func (e *Engine) union() []catalog.Symbol {
	n := 0
	for _, g := range e.groups {
		n += len(g.Symbols)
	}
	all := make([]catalog.Symbol, 0, n)
	for _, g := range e.groups {
		all = append(all, cloneSymbols(g.Symbols)...)
	}
	sort.SliceStable(all, func(i, j int) bool {
		a, aok := all[i].CodepointValue()
		b, bok := all[j].CodepointValue()
		if aok != bok {
			return aok
		}
		return a < b
	})
	return all
}

// Filter narrows symbols to those matching text. See Filter.
func (e *Engine) Filter(text string, symbols []catalog.Symbol) []catalog.Symbol {
	return Filter(text, symbols)
}

// Keywords completes prefix against the words used in symbol names.
func (e *Engine) Keywords(prefix string, limit int) []string {
	return e.keywords.Complete(prefix, limit)
}

// Filter keeps the symbols whose name contains text, ignoring case, or whose
// codepoint equals the codepoint text parses as. Input order is preserved.
//
// When nothing matches but text parses as a codepoint, the result is a single
// synthesized symbol for that codepoint, named by its lowercase hex digits.
// Codepoints that are not valid scalar values (surrogates) synthesize U+FFFD as
// their value.
func Filter(text string, symbols []catalog.Symbol) []catalog.Symbol {
	cp, hasCodepoint := codepoint.Parse(text)
	needle := strings.ToUpper(text)

	matched := make([]catalog.Symbol, 0)
	for _, s := range symbols {
		if strings.Contains(strings.ToUpper(s.Name), needle) || (hasCodepoint && s.HasCodepoint(cp)) {
			matched = append(matched, cloneSymbol(s))
		}
	}

	if len(matched) == 0 && hasCodepoint {
		return []catalog.Symbol{Synthesize(cp)}
	}
	return matched
}

// Synthesize builds an ad hoc symbol for a codepoint missing from the catalog.
func Synthesize(r rune) catalog.Symbol {
	cp := r
	return catalog.Symbol{
		Name:      codepoint.Hex(r),
		Value:     string(r),
		Codepoint: &cp,
	}
}

func cloneSymbols(symbols []catalog.Symbol) []catalog.Symbol {
	out := make([]catalog.Symbol, len(symbols))
	for i, s := range symbols {
		out[i] = cloneSymbol(s)
	}
	return out
}

func cloneSymbol(s catalog.Symbol) catalog.Symbol {
	if s.Codepoint != nil {
		cp := *s.Codepoint
		s.Codepoint = &cp
	}
	return s
}
