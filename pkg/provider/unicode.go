package provider

import (
	"github.com/bastiangx/symserve/pkg/catalog"
	"github.com/bastiangx/symserve/pkg/document"
	"github.com/bastiangx/symserve/pkg/search"
	"github.com/cockroachdb/errors"
)

// Provider kinds accepted by New.
const (
	KindUnicode = "unicode"
	KindEmoji   = "emoji"
)

// Unicode serves the complete catalog.
type Unicode struct {
	engine *search.Engine
}

// NewUnicode creates a provider over every group of c.
func NewUnicode(c *catalog.Catalog) *Unicode {
	return &Unicode{engine: search.New(c)}
}

func (u *Unicode) GroupNames() []string {
	return u.engine.GroupNames()
}

func (u *Unicode) Symbols(group string) []catalog.Symbol {
	return u.engine.Symbols(group)
}

func (u *Unicode) Filter(text string, symbols []catalog.Symbol) []catalog.Symbol {
	return u.engine.Filter(text, symbols)
}

func (u *Unicode) PlaceholderHint() string {
	return "keyword or codepoint"
}

func (u *Unicode) PreviewStyle() PreviewStyle {
	return PreviewStyle{"fontSize": "28px"}
}

// InsertTransaction inserts the symbol value over the selection. The search
// term does not affect plain insertion.
func (u *Unicode) InsertTransaction(symbol catalog.Symbol, _ string, state document.State) *document.Transaction {
	return state.Tr().InsertText(symbol.Value)
}

// Keywords completes search-box input against symbol name words.
func (u *Unicode) Keywords(prefix string, limit int) []string {
	return u.engine.Keywords(prefix, limit)
}

// New creates the provider of the given kind over c.
func New(kind string, c *catalog.Catalog) (Provider, error) {
	switch kind {
	case "", KindUnicode:
		return NewUnicode(c), nil
	case KindEmoji:
		return NewEmoji(c), nil
	default:
		return nil, errors.WithHintf(errors.Newf("unknown provider kind %q", kind),
			"use %q or %q", KindUnicode, KindEmoji)
	}
}
