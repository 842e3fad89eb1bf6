package document

import (
	"github.com/cockroachdb/errors"
)

// ErrStaleState is returned when a transaction is applied to a state other
// than the one it was built from.
var ErrStaleState = errors.New("transaction does not match document state")

// Step replaces the runes in [From, To) with Text. Deleted holds the replaced
// runes so the step can be inverted.
type Step struct {
	From    int    `json:"from" msgpack:"f"`
	To      int    `json:"to" msgpack:"t"`
	Text    string `json:"text" msgpack:"x"`
	Deleted string `json:"deleted,omitempty" msgpack:"d,omitempty"`
}

// Transaction accumulates steps against a base state. It never modifies the
// base; Apply and State produce new states.
type Transaction struct {
	before    State
	doc       []rune
	selection Selection
	steps     []Step
}

// InsertText replaces the current selection with text and leaves the cursor
// after it.
func (tr *Transaction) InsertText(text string) *Transaction {
	from, to := tr.selection.From(), tr.selection.To()
	tr.ReplaceRange(from, to, text)
	end := from + len([]rune(text))
	tr.selection = Cursor(end)
	return tr
}

// ReplaceRange replaces [from, to) with text. Offsets are clamped to the
// current document. The selection is mapped through the change.
func (tr *Transaction) ReplaceRange(from, to int, text string) *Transaction {
	n := len(tr.doc)
	from, to = clamp(from, n), clamp(to, n)
	if from > to {
		from, to = to, from
	}
	inserted := []rune(text)
	step := Step{From: from, To: to, Text: text, Deleted: string(tr.doc[from:to])}

	doc := make([]rune, 0, n-(to-from)+len(inserted))
	doc = append(doc, tr.doc[:from]...)
	doc = append(doc, inserted...)
	doc = append(doc, tr.doc[to:]...)
	tr.doc = doc
	tr.steps = append(tr.steps, step)

	tr.selection = Selection{
		Anchor: mapPos(tr.selection.Anchor, step),
		Head:   mapPos(tr.selection.Head, step),
	}
	return tr
}

// SetSelection overrides the resulting selection.
func (tr *Transaction) SetSelection(sel Selection) *Transaction {
	n := len(tr.doc)
	tr.selection = Selection{Anchor: clamp(sel.Anchor, n), Head: clamp(sel.Head, n)}
	return tr
}

// Steps returns a copy of the recorded steps.
func (tr *Transaction) Steps() []Step {
	return append([]Step(nil), tr.steps...)
}

// DocChanged reports whether any step was recorded.
func (tr *Transaction) DocChanged() bool {
	return len(tr.steps) > 0
}

// Before returns the state the transaction was built from.
func (tr *Transaction) Before() State {
	return tr.before
}

// State returns the document after all steps.
func (tr *Transaction) State() State {
	return State{Text: string(tr.doc), Selection: tr.selection}
}

// Apply replays the transaction onto s, which must hold the same text as the
// base state.
func (tr *Transaction) Apply(s State) (State, error) {
	if s.Text != tr.before.Text {
		return State{}, errors.WithDetailf(ErrStaleState,
			"base has %d runes, state has %d", tr.before.Len(), s.Len())
	}
	return tr.State(), nil
}

// Inverse returns a transaction that undoes tr, starting from tr's result.
func (tr *Transaction) Inverse() *Transaction {
	inv := tr.State().Tr()
	for i := len(tr.steps) - 1; i >= 0; i-- {
		step := tr.steps[i]
		end := step.From + len([]rune(step.Text))
		inv.ReplaceRange(step.From, end, step.Deleted)
	}
	return inv.SetSelection(tr.Before().Selection)
}

// mapPos maps a position in the document before step to the document after.
func mapPos(pos int, step Step) int {
	switch {
	case pos <= step.From:
		return pos
	case pos >= step.To:
		return pos + len([]rune(step.Text)) - (step.To - step.From)
	default:
		return step.From + len([]rune(step.Text))
	}
}
