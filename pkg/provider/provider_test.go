package provider

import (
	"testing"

	"github.com/bastiangx/symserve/pkg/catalog"
	"github.com/bastiangx/symserve/pkg/document"
	"github.com/bastiangx/symserve/pkg/search"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ Provider = (*Unicode)(nil)
	_ Provider = (*Emoji)(nil)
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func bundled(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Bundled()
	require.NoError(t, err)
	return c
}

func TestUnicodeProvider(t *testing.T) {
	c := bundled(t)
	var p Provider = NewUnicode(c)

	assert.Equal(t, "keyword or codepoint", p.PlaceholderHint())
	assert.Equal(t, PreviewStyle{"fontSize": "28px"}, p.PreviewStyle())
	assert.Equal(t, append([]string{search.AllGroups}, c.GroupNames()...), p.GroupNames())

	got := p.Filter("heavy black heart", p.Symbols(""))
	require.Len(t, got, 1)
	assert.True(t, got[0].HasCodepoint(0x2764))
}

func TestUnicodeInsertIgnoresSearchTerm(t *testing.T) {
	p := NewUnicode(bundled(t))
	state := document.NewState("x  y", document.Cursor(2))
	symbol := search.Synthesize(0x2192)

	a := p.InsertTransaction(symbol, "arrow", state).State()
	b := p.InsertTransaction(symbol, "U+2192", state).State()
	assert.Equal(t, a, b)
	assert.Equal(t, "x \u2192 y", a.Text)
	assert.Equal(t, document.Cursor(3), a.Selection)
}

func TestEmojiProviderRestrictsCatalog(t *testing.T) {
	p := NewEmoji(bundled(t))

	assert.Equal(t, []string{search.AllGroups, "Arrows", "Dingbats", "Emoji", "Miscellaneous Symbols"}, p.GroupNames())
	for _, s := range p.Symbols(search.AllGroups) {
		assert.True(t, IsEmoji(s), s.Name)
	}
	assert.Empty(t, p.Symbols("Greek"))
	assert.Equal(t, "emoji name or codepoint", p.PlaceholderHint())
	assert.Equal(t, PreviewStyle{"fontSize": "32px"}, p.PreviewStyle())
}

func TestEmojiFilterDropsNonEmojiFallback(t *testing.T) {
	p := NewEmoji(bundled(t))
	all := p.Symbols(search.AllGroups)

	assert.Empty(t, p.Filter("U+41", all))

	got := p.Filter("U+1F9E0", all)
	require.Len(t, got, 1)
	assert.Equal(t, "1f9e0", got[0].Name)

	hearts := p.Filter("heart", all)
	assert.NotEmpty(t, hearts)
	for _, s := range hearts {
		assert.Contains(t, s.Name, "HEART")
	}
}

func TestEmojiInsertPresentation(t *testing.T) {
	p := NewEmoji(bundled(t))
	state := document.NewState("", document.Cursor(0))

	testCases := []struct {
		value string
		want  string
	}{
		{"\u2764", "\u2764\uFE0F"},
		{"\u2764\uFE0F", "\u2764\uFE0F"},
		{"\U0001F600", "\U0001F600"},
		{"\u2192", "\u2192"},
	}
	for _, tc := range testCases {
		got := p.InsertTransaction(catalog.Symbol{Name: "X", Value: tc.value}, "", state).State()
		assert.Equal(t, tc.want, got.Text, "%q", tc.value)
	}
}

func TestNew(t *testing.T) {
	c := bundled(t)

	p, err := New("", c)
	require.NoError(t, err)
	assert.IsType(t, &Unicode{}, p)

	p, err = New(KindEmoji, c)
	require.NoError(t, err)
	assert.IsType(t, &Emoji{}, p)

	_, err = New("klingon", c)
	assert.Error(t, err)
}
