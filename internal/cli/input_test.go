package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bastiangx/symserve/pkg/catalog"
	"github.com/bastiangx/symserve/pkg/provider"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	log.SetLevel(log.FatalLevel)
}

func run(t *testing.T, limit int, input ...string) (string, *InputHandler) {
	t.Helper()
	c, err := catalog.Bundled()
	require.NoError(t, err)

	var out bytes.Buffer
	h := NewInputHandlerWithIO(provider.NewUnicode(c), catalog.AllGroupName, limit,
		strings.NewReader(strings.Join(input, "\n")+"\n"), &out)
	require.NoError(t, h.Start())
	return out.String(), h
}

func TestSearchPrintsRankedSymbols(t *testing.T) {
	out, h := run(t, 3, "heart")

	assert.Contains(t, out, "Found 8 symbols for 'heart':")
	assert.Contains(t, out, "  1. ")
	assert.Contains(t, out, "WHITE HEART SUIT")
	assert.Contains(t, out, "U+2661")
	assert.Contains(t, out, "... 5 more")
	assert.NotContains(t, out, "HEAVY BLACK HEART")
	assert.Len(t, h.results, 8)
}

func TestGroupSwitchScopesSearch(t *testing.T) {
	out, h := run(t, 24, ":group arrows", "2764", ":groups")

	assert.Equal(t, "Arrows", h.group)
	assert.Contains(t, out, "group: Arrows (14 symbols)")
	assert.Contains(t, out, "* Arrows")
	// 2764 is not in Arrows, so the codepoint is synthesized.
	require.Len(t, h.results, 1)
	assert.Equal(t, "2764", h.results[0].Name)
}

func TestPickInsertsIntoScratchDocument(t *testing.T) {
	out, h := run(t, 24, ":group Arrows", "rightwards", ":pick 1", ":pick 1", ":doc")

	assert.Equal(t, "\u2192\u2192", h.doc.Text)
	assert.Equal(t, 2, h.doc.Selection.Head)
	assert.Contains(t, out, "\u2192\u2192|")
}

func TestPickOutOfRangeKeepsDocument(t *testing.T) {
	_, h := run(t, 24, ":pick 1", "arrow", ":pick 99", ":pick x")
	assert.Empty(t, h.doc.Text)
}

func TestKeywords(t *testing.T) {
	out, _ := run(t, 2, ":keys hea")
	assert.Contains(t, out, "HEART HEAVY")
}

func TestQuitStopsReading(t *testing.T) {
	_, h := run(t, 24, ":q", "heart")
	assert.Nil(t, h.results)
}

func TestPreviewPadsToColumn(t *testing.T) {
	assert.Equal(t, "a   ", preview("a"))
	assert.Equal(t, "\U0001F600  ", preview("\U0001F600"))
	assert.Equal(t, "abcd", preview("abcdef"))
}
