// Package catalog holds the symbol catalog: named groups of Unicode symbols,
// validated and ordered once at load time and immutable afterwards.
package catalog

// AllGroupName is the pseudo-group that denotes the union of every group.
// No catalog group may use it.
const AllGroupName = "All"

// Symbol is a single insertable character.
type Symbol struct {
	// Name is the canonical uppercase label used for matching.
	Name string `json:"name" msgpack:"name"`
	// Value is the literal text inserted into the document.
	Value string `json:"value" msgpack:"value"`
	// Codepoint is the Unicode scalar value, when the symbol has one.
	Codepoint *rune `json:"codepoint,omitempty" msgpack:"codepoint,omitempty"`
}

// HasCodepoint reports whether s carries a codepoint equal to r.
func (s Symbol) HasCodepoint(r rune) bool {
	return s.Codepoint != nil && *s.Codepoint == r
}

// CodepointValue returns the codepoint and whether one is present.
func (s Symbol) CodepointValue() (rune, bool) {
	if s.Codepoint == nil {
		return 0, false
	}
	return *s.Codepoint, true
}

// Group is a named partition of the catalog, symbols in catalog order.
type Group struct {
	Name    string   `json:"name" msgpack:"name"`
	Symbols []Symbol `json:"symbols" msgpack:"symbols"`
}

// Catalog is the validated, name-ordered set of groups.
// The zero value is an empty catalog.
type Catalog struct {
	groups []Group
	byName map[string]int
}

// Groups returns a copy of every group in sorted order.
func (c *Catalog) Groups() []Group {
	groups := make([]Group, len(c.groups))
	for i, g := range c.groups {
		groups[i] = g.clone()
	}
	return groups
}

// GroupNames returns the group names in sorted order.
func (c *Catalog) GroupNames() []string {
	names := make([]string, len(c.groups))
	for i, g := range c.groups {
		names[i] = g.Name
	}
	return names
}

// Group returns a copy of the named group.
func (c *Catalog) Group(name string) (Group, bool) {
	i, ok := c.byName[name]
	if !ok {
		return Group{}, false
	}
	return c.groups[i].clone(), true
}

// Len returns the number of groups.
func (c *Catalog) Len() int {
	return len(c.groups)
}

// SymbolCount returns the number of symbols across all groups.
func (c *Catalog) SymbolCount() int {
	n := 0
	for _, g := range c.groups {
		n += len(g.Symbols)
	}
	return n
}

// Subset returns a catalog holding only the symbols keep accepts, in the
// same order. Groups left empty are dropped.
func (c *Catalog) Subset(keep func(Symbol) bool) *Catalog {
	sub := &Catalog{byName: make(map[string]int)}
	for _, g := range c.groups {
		var symbols []Symbol
		for _, s := range g.Symbols {
			if keep(s) {
				symbols = append(symbols, s.clone())
			}
		}
		if len(symbols) == 0 {
			continue
		}
		sub.byName[g.Name] = len(sub.groups)
		sub.groups = append(sub.groups, Group{Name: g.Name, Symbols: symbols})
	}
	return sub
}

func (g Group) clone() Group {
	symbols := make([]Symbol, len(g.Symbols))
	for i, s := range g.Symbols {
		symbols[i] = s.clone()
	}
	return Group{Name: g.Name, Symbols: symbols}
}

func (s Symbol) clone() Symbol {
	if s.Codepoint != nil {
		cp := *s.Codepoint
		s.Codepoint = &cp
	}
	return s
}
