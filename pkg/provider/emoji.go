package provider

import (
	"unicode"
	"unicode/utf8"

	"github.com/bastiangx/symserve/pkg/catalog"
	"github.com/bastiangx/symserve/pkg/document"
	"github.com/bastiangx/symserve/pkg/search"
)

// variationSelector16 requests emoji presentation for the preceding character.
const variationSelector16 = "\uFE0F"

// emojiRanges covers the blocks that hold pictographic emoji.
var emojiRanges = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x2600, Hi: 0x27BF, Stride: 1}, // Miscellaneous Symbols, Dingbats
	},
	R32: []unicode.Range32{
		{Lo: 0x1F300, Hi: 0x1FAFF, Stride: 1},
	},
}

// Emoji serves only the catalog symbols inside the emoji blocks.
type Emoji struct {
	engine *search.Engine
}

// NewEmoji creates a provider restricted to the emoji symbols of c.
func NewEmoji(c *catalog.Catalog) *Emoji {
	return &Emoji{engine: search.New(c.Subset(IsEmoji))}
}

// IsEmoji reports whether s has a codepoint inside the emoji blocks.
func IsEmoji(s catalog.Symbol) bool {
	cp, ok := s.CodepointValue()
	return ok && unicode.Is(emojiRanges, cp)
}

func (e *Emoji) GroupNames() []string {
	return e.engine.GroupNames()
}

func (e *Emoji) Symbols(group string) []catalog.Symbol {
	return e.engine.Symbols(group)
}

// Filter matches like the Unicode provider but never offers a synthesized
// codepoint outside the emoji blocks.
func (e *Emoji) Filter(text string, symbols []catalog.Symbol) []catalog.Symbol {
	matched := e.engine.Filter(text, symbols)
	kept := matched[:0]
	for _, s := range matched {
		if IsEmoji(s) {
			kept = append(kept, s)
		}
	}
	return kept
}

func (e *Emoji) PlaceholderHint() string {
	return "emoji name or codepoint"
}

func (e *Emoji) PreviewStyle() PreviewStyle {
	return PreviewStyle{"fontSize": "32px"}
}

// InsertTransaction inserts the symbol, forcing emoji presentation for
// single characters from the older symbol blocks, which render as text by
// default.
func (e *Emoji) InsertTransaction(symbol catalog.Symbol, _ string, state document.State) *document.Transaction {
	return state.Tr().InsertText(presentation(symbol.Value))
}

func presentation(value string) string {
	r, size := utf8.DecodeRuneInString(value)
	if size != len(value) {
		return value
	}
	if r < 0x1F000 && unicode.Is(emojiRanges, r) {
		return value + variationSelector16
	}
	return value
}

// Keywords completes against the words of emoji names only.
func (e *Emoji) Keywords(prefix string, limit int) []string {
	return e.engine.Keywords(prefix, limit)
}
