// Package document is a minimal text document model: a state holding text and
// a selection, and transactions that describe changes to it. Hosts map these
// onto their own editor state.
package document

import "unicode/utf8"

// Selection is a range of rune offsets. Anchor is where the selection
// started and Head where it ends; they are equal for a plain cursor.
type Selection struct {
	Anchor int `json:"anchor" msgpack:"a"`
	Head   int `json:"head" msgpack:"h"`
}

// Cursor returns an empty selection at pos.
func Cursor(pos int) Selection {
	return Selection{Anchor: pos, Head: pos}
}

// From is the lower bound of the selection.
func (s Selection) From() int {
	return min(s.Anchor, s.Head)
}

// To is the upper bound of the selection.
func (s Selection) To() int {
	return max(s.Anchor, s.Head)
}

// Empty reports whether the selection is a cursor.
func (s Selection) Empty() bool {
	return s.Anchor == s.Head
}

// State is an immutable snapshot of a document.
type State struct {
	Text      string    `json:"text" msgpack:"text"`
	Selection Selection `json:"selection" msgpack:"sel"`
}

// NewState returns a state with sel clamped to the text.
func NewState(text string, sel Selection) State {
	n := utf8.RuneCountInString(text)
	return State{
		Text:      text,
		Selection: Selection{Anchor: clamp(sel.Anchor, n), Head: clamp(sel.Head, n)},
	}
}

// Len returns the document length in runes.
func (s State) Len() int {
	return utf8.RuneCountInString(s.Text)
}

// Tr starts a transaction on s.
func (s State) Tr() *Transaction {
	s = NewState(s.Text, s.Selection)
	return &Transaction{
		before:    s,
		doc:       []rune(s.Text),
		selection: s.Selection,
	}
}

func clamp(v, n int) int {
	return max(0, min(v, n))
}
