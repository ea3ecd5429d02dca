package editstack

import (
	"github.com/textkernel/textmodel/internal/buffer"
	"github.com/textkernel/textmodel/internal/selection"
)

// Operation is one applied batch of edits plus everything needed to
// reverse it: the reverse edit operations themselves (computed by
// buffer.ApplyEdits at the time of the original edit) and the selection
// state immediately before the batch was applied.
type Operation struct {
	Forward          []buffer.EditOperation
	Reverse          []buffer.EditOperation
	SelectionsBefore []selection.Selection
	SelectionsAfter  []selection.Selection
}

// StackElement is one undo/redo unit: a label plus the operations that
// make it up, applied in order. Undoing a StackElement reverse-applies
// its operations from last to first.
type StackElement struct {
	Label             string
	Operations        []Operation
	VersionIDBefore   int
	VersionIDAfter    int
	open              bool
}
