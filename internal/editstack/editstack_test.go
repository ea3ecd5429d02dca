package editstack

import (
	"testing"

	"github.com/textkernel/textmodel/internal/buffer"
	"github.com/textkernel/textmodel/internal/selection"
)

func TestPushAndUndoSingleOperation(t *testing.T) {
	s := NewStack()
	op := Operation{
		Forward: []buffer.EditOperation{{Range: buffer.Range{Start: buffer.Position{1, 1}, End: buffer.Position{1, 1}}, Text: "a"}},
		Reverse: []buffer.EditOperation{{Range: buffer.Range{Start: buffer.Position{1, 1}, End: buffer.Position{1, 2}}, Text: ""}},
	}
	s.PushStackElement("type", 1)
	s.PushEditOperation(op, 2)

	if !s.CanUndo() {
		t.Fatalf("expected CanUndo")
	}
	el, err := s.Undo()
	if err != nil {
		t.Fatalf("Undo error: %v", err)
	}
	if len(el.Operations) != 1 || el.Operations[0].Reverse[0].Text != "" {
		t.Errorf("unexpected undo element: %+v", el)
	}
	if !s.CanRedo() {
		t.Fatalf("expected CanRedo after undo")
	}
	if _, err := s.Undo(); err != ErrNothingToUndo {
		t.Errorf("second Undo err = %v, want ErrNothingToUndo", err)
	}
}

func TestRedoRestoresForwardOrder(t *testing.T) {
	s := NewStack()
	s.PushStackElement("type", 1)
	s.PushEditOperation(Operation{Forward: []buffer.EditOperation{{Text: "a"}}}, 2)
	s.PushEditOperation(Operation{Forward: []buffer.EditOperation{{Text: "b"}}}, 3)

	undone, err := s.Undo()
	if err != nil {
		t.Fatalf("Undo error: %v", err)
	}
	if undone.Operations[0].Forward[0].Text != "b" || undone.Operations[1].Forward[0].Text != "a" {
		t.Fatalf("undo order wrong: %+v", undone.Operations)
	}

	redone, err := s.Redo()
	if err != nil {
		t.Fatalf("Redo error: %v", err)
	}
	if redone.Operations[0].Forward[0].Text != "a" || redone.Operations[1].Forward[0].Text != "b" {
		t.Fatalf("redo order wrong: %+v", redone.Operations)
	}
}

func TestNewEditAfterUndoClearsFuture(t *testing.T) {
	s := NewStack()
	s.PushStackElement("a", 1)
	s.PushEditOperation(Operation{}, 2)
	if _, err := s.Undo(); err != nil {
		t.Fatalf("Undo error: %v", err)
	}
	s.PushStackElement("b", 2)
	s.PushEditOperation(Operation{}, 3)
	if s.CanRedo() {
		t.Errorf("expected redo history cleared by new edit")
	}
}

func TestShouldTrimLineNearCursorGate(t *testing.T) {
	cursors := []selection.Selection{selection.NewCursor(buffer.Position{Line: 3, Column: 1})}
	if ShouldTrimLine(3, cursors) {
		t.Errorf("expected line 3 not trimmed (cursor present)")
	}
	if !ShouldTrimLine(4, cursors) {
		t.Errorf("expected line 4 trimmed (no cursor)")
	}
}
