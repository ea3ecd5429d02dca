package editstack

import (
	"errors"

	"github.com/textkernel/textmodel/internal/selection"
)

var (
	// ErrNothingToUndo is returned by Undo when the past stack is empty.
	ErrNothingToUndo = errors.New("editstack: nothing to undo")
	// ErrNothingToRedo is returned by Redo when the future stack is empty.
	ErrNothingToRedo = errors.New("editstack: nothing to redo")
)

// DefaultMaxElements bounds how many stack elements are retained; the
// oldest is dropped once the bound is exceeded.
const DefaultMaxElements = 1000

// Stack is the undo/redo history for one text model. Deciding when to
// open a new group (e.g. on a cursor jump between edits) is the
// facade's job; Stack only implements the mechanics of grouping once
// told where the boundaries are.
type Stack struct {
	past    []*StackElement
	future  []*StackElement
	maxSize int
}

// NewStack returns an empty stack.
func NewStack() *Stack {
	return &Stack{maxSize: DefaultMaxElements}
}

// Reset discards all undo/redo history, used when a model's content is
// replaced wholesale (e.g. setValue) rather than edited incrementally.
func (s *Stack) Reset() {
	s.past = nil
	s.future = nil
}

// CanUndo reports whether there is a stack element with operations to
// undo. Only the open top element can be empty (see PushStackElement).
func (s *Stack) CanUndo() bool {
	n := len(s.past)
	return n > 1 || (n == 1 && len(s.past[0].Operations) > 0)
}

// CanRedo reports whether there is a stack element to redo.
func (s *Stack) CanRedo() bool { return len(s.future) > 0 }

// currentOpen returns the currently-open (still accepting more
// operations) stack element, or nil.
func (s *Stack) currentOpen() *StackElement {
	if len(s.past) == 0 {
		return nil
	}
	top := s.past[len(s.past)-1]
	if top.open {
		return top
	}
	return nil
}

// PushStackElement closes whatever element is currently open (if any)
// and starts a fresh one with the given label, so the next
// PushEditOperation call begins a new undo unit rather than merging
// into the previous one. If the open element has no operations yet, the
// call is ignored and that element stays open with its original label.
func (s *Stack) PushStackElement(label string, versionIDBefore int) {
	if el := s.currentOpen(); el != nil && len(el.Operations) == 0 {
		return
	}
	s.closeOpen()
	s.past = append(s.past, &StackElement{Label: label, VersionIDBefore: versionIDBefore, open: true})
	s.future = nil
	if len(s.past) > s.maxSize {
		s.past = s.past[1:]
	}
}

func (s *Stack) closeOpen() {
	if el := s.currentOpen(); el != nil {
		el.open = false
	}
}

// PushEditOperation appends op to the currently open stack element,
// opening a new one automatically if none is open (e.g. the very first
// edit of a session).
func (s *Stack) PushEditOperation(op Operation, versionIDAfter int) {
	el := s.currentOpen()
	if el == nil {
		s.past = append(s.past, &StackElement{open: true, VersionIDBefore: versionIDAfter})
		el = s.past[len(s.past)-1]
		s.future = nil
		if len(s.past) > s.maxSize {
			s.past = s.past[1:]
		}
	}
	el.Operations = append(el.Operations, op)
	el.VersionIDAfter = versionIDAfter
}

// Undo pops the most recent stack element, returning it (with
// Operations already in reverse-apply order: last operation first) so
// the caller can reverse-apply each one's Reverse edits and restore
// SelectionsBefore on the last operation it reverses (which corresponds
// to the selection state right before the whole element began). An
// empty element on top (opened by PushStackElement with no edit after
// it) is discarded first.
func (s *Stack) Undo() (*StackElement, error) {
	s.closeOpen()
	if n := len(s.past); n > 0 && len(s.past[n-1].Operations) == 0 {
		s.past = s.past[:n-1]
	}
	if len(s.past) == 0 {
		return nil, ErrNothingToUndo
	}
	el := s.past[len(s.past)-1]
	s.past = s.past[:len(s.past)-1]
	s.future = append(s.future, el)
	return reversedCopy(el), nil
}

// Redo pops the most recently undone stack element, returning it with
// Operations in original forward-apply order.
func (s *Stack) Redo() (*StackElement, error) {
	if len(s.future) == 0 {
		return nil, ErrNothingToRedo
	}
	el := s.future[len(s.future)-1]
	s.future = s.future[:len(s.future)-1]
	s.past = append(s.past, el)
	return el, nil
}

func reversedCopy(el *StackElement) *StackElement {
	ops := make([]Operation, len(el.Operations))
	for i, op := range el.Operations {
		ops[len(ops)-1-i] = op
	}
	return &StackElement{
		Label:           el.Label,
		Operations:      ops,
		VersionIDBefore: el.VersionIDBefore,
		VersionIDAfter:  el.VersionIDAfter,
	}
}

// ShouldTrimLine applies the near-cursors auto-whitespace-trim gate: a
// candidate line is trimmed only if no selection currently has its head
// on that same line. The check is deliberately line-wise only (it does
// not also compare columns), since a cursor anywhere on a whitespace-only
// line is a signal the user is still actively editing that line's
// indentation.
func ShouldTrimLine(line int, cursors []selection.Selection) bool {
	for _, c := range cursors {
		if c.Line() == line {
			return false
		}
	}
	return true
}
