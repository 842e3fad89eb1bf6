// Package cli handles cmd line input for searching a provider interactively,
// mainly for debugging catalogs and the provider behavior.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bastiangx/symserve/pkg/catalog"
	"github.com/bastiangx/symserve/pkg/document"
	"github.com/bastiangx/symserve/pkg/provider"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/mattn/go-runewidth"
)

// glyphWidth is the column reserved for the symbol preview.
const glyphWidth = 4

type keyworder interface {
	Keywords(prefix string, limit int) []string
}

// InputHandler reads search text or commands from stdin and prints matching
// symbols. Picked symbols are inserted into a scratch document so insertion
// can be checked without a host editor.
type InputHandler struct {
	provider provider.Provider
	group    string
	limit    int

	doc      document.State
	results  []catalog.Symbol
	lastTerm string

	in     io.Reader
	out    io.Writer
	name   lipgloss.Style
	muted  lipgloss.Style
	accent lipgloss.Style
}

// NewInputHandler creates a handler on stdin/stdout.
func NewInputHandler(p provider.Provider, group string, limit int) *InputHandler {
	return NewInputHandlerWithIO(p, group, limit, os.Stdin, os.Stdout)
}

// NewInputHandlerWithIO creates a handler over arbitrary streams.
func NewInputHandlerWithIO(p provider.Provider, group string, limit int, r io.Reader, w io.Writer) *InputHandler {
	renderer := lipgloss.NewRenderer(w)
	return &InputHandler{
		provider: p,
		group:    group,
		limit:    limit,
		in:       r,
		out:      w,
		name:     renderer.NewStyle().Foreground(lipgloss.Color("75")),
		muted:    renderer.NewStyle().Faint(true),
		accent:   renderer.NewStyle().Bold(true),
	}
}

// Start runs the input loop until stdin is closed or ":q" is entered.
func (h *InputHandler) Start() error {
	fmt.Fprintln(h.out, h.accent.Render("symserve CLI"))
	fmt.Fprintf(h.out, "search by %s, or :help (Ctrl+C to exit)\n", h.provider.PlaceholderHint())

	scanner := bufio.NewScanner(h.in)
	for {
		fmt.Fprintf(h.out, "[%s] > ", h.group)
		if !scanner.Scan() {
			fmt.Fprintln(h.out)
			return scanner.Err()
		}
		line := scanner.Text()
		if strings.TrimSpace(line) == ":q" {
			return nil
		}
		h.handleInput(line)
	}
}

// handleInput runs a command or, for any other line, filters the current
// group with the raw line as search text.
func (h *InputHandler) handleInput(line string) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return
	}
	if !strings.HasPrefix(trimmed, ":") {
		h.search(line)
		return
	}

	cmd, arg, _ := strings.Cut(trimmed, " ")
	arg = strings.TrimSpace(arg)
	switch cmd {
	case ":help":
		h.help()
	case ":groups":
		for _, g := range h.provider.GroupNames() {
			marker := "  "
			if g == h.group {
				marker = "* "
			}
			fmt.Fprintf(h.out, "%s%s\n", marker, g)
		}
	case ":group":
		h.setGroup(arg)
	case ":keys":
		h.keywords(arg)
	case ":pick":
		h.pick(arg)
	case ":doc":
		h.printDoc()
	default:
		log.Warnf("Unknown command: %s", cmd)
	}
}

func (h *InputHandler) help() {
	fmt.Fprintln(h.out, "  TEXT          filter the current group by name or codepoint")
	fmt.Fprintln(h.out, "  :groups       list groups")
	fmt.Fprintln(h.out, "  :group NAME   switch group")
	fmt.Fprintln(h.out, "  :keys PREFIX  complete name words")
	fmt.Fprintln(h.out, "  :pick N       insert result N into the scratch document")
	fmt.Fprintln(h.out, "  :doc          print the scratch document")
	fmt.Fprintln(h.out, "  :q            quit")
}

func (h *InputHandler) setGroup(name string) {
	for _, g := range h.provider.GroupNames() {
		if strings.EqualFold(g, name) {
			h.group = g
			h.results = nil
			fmt.Fprintf(h.out, "group: %s (%d symbols)\n", g, len(h.provider.Symbols(g)))
			return
		}
	}
	log.Errorf("Unknown group: %q", name)
}

func (h *InputHandler) search(text string) {
	start := time.Now()
	results := h.provider.Filter(text, h.provider.Symbols(h.group))
	log.Debugf("Took [ %v ] for %q", time.Since(start), text)

	h.results = results
	h.lastTerm = text
	if len(results) == 0 {
		log.Warnf("No symbols found for '%s'", text)
		return
	}

	shown := results
	if h.limit > 0 && len(shown) > h.limit {
		shown = shown[:h.limit]
	}
	fmt.Fprintf(h.out, "Found %d symbols for '%s':\n", len(results), text)
	for i, s := range shown {
		fmt.Fprintf(h.out, "%3d. %s %s %s\n", i+1, preview(s.Value), h.name.Render(s.Name), h.muted.Render(codepointLabel(s)))
	}
	if len(shown) < len(results) {
		fmt.Fprintln(h.out, h.muted.Render(fmt.Sprintf("     ... %d more", len(results)-len(shown))))
	}
}

func (h *InputHandler) keywords(prefix string) {
	k, ok := h.provider.(keyworder)
	if !ok {
		log.Warn("Provider has no keyword index")
		return
	}
	words := k.Keywords(prefix, h.limit)
	if len(words) == 0 {
		log.Warnf("No keywords for '%s'", prefix)
		return
	}
	fmt.Fprintln(h.out, strings.Join(words, " "))
}

func (h *InputHandler) pick(arg string) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(h.results) {
		log.Errorf("Nothing to pick at %q", arg)
		return
	}
	tr := h.provider.InsertTransaction(h.results[n-1], h.lastTerm, h.doc)
	h.doc = tr.State()
	h.printDoc()
}

func (h *InputHandler) printDoc() {
	runes := []rune(h.doc.Text)
	pos := h.doc.Selection.Head
	fmt.Fprintf(h.out, "%s%s%s\n", string(runes[:pos]), h.accent.Render("|"), string(runes[pos:]))
}

// preview pads the glyph to a fixed terminal width so names line up whether
// the symbol renders narrow or wide.
func preview(value string) string {
	if runewidth.StringWidth(value) > glyphWidth {
		return runewidth.Truncate(value, glyphWidth, "")
	}
	return runewidth.FillRight(value, glyphWidth)
}

func codepointLabel(s catalog.Symbol) string {
	if cp, ok := s.CodepointValue(); ok {
		return fmt.Sprintf("U+%04X", cp)
	}
	return ""
}
