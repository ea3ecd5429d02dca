package textmodel

import (
	"github.com/textkernel/textmodel/internal/buffer"
	"github.com/textkernel/textmodel/internal/editstack"
	"github.com/textkernel/textmodel/internal/selection"
)

// ApplyEdits applies ops directly, without recording them on the undo
// stack. Intended for operations a host doesn't want undoable on their
// own (e.g. applying a formatter's output as part of a save pipeline
// that records its own single undo step around the whole save).
func (m *Model) ApplyEdits(ops []buffer.EditOperation) ([]buffer.EditOperation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkWritable("ApplyEdits"); err != nil {
		return nil, err
	}
	reverse, _, _, err := m.applyLocked(ops, true)
	return reverse, err
}

// PushEditOperations applies ops as one undoable unit labeled by group,
// updates cursors to newCursors (or, if nil, adjusts the current
// cursors forward through the edit), and returns the edit's reverse
// operations.
func (m *Model) PushEditOperations(group string, ops []buffer.EditOperation, newCursors []selection.Selection) ([]buffer.EditOperation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkWritable("PushEditOperations"); err != nil {
		return nil, err
	}

	before := m.buf.Snapshot()
	beforeCursors := append([]selection.Selection(nil), m.cursors...)
	beforeVersion := m.versionID

	reverse, fwdOps, changes, err := m.applyLocked(ops, true)
	if err != nil {
		return nil, err
	}

	if newCursors != nil {
		m.cursors = newCursors
	} else {
		adjusted := make([]selection.Selection, len(m.cursors))
		for i, c := range m.cursors {
			a, aerr := selection.AdjustSelection(c, before, m.buf, changes)
			if aerr != nil {
				a = c
			}
			adjusted[i] = a
		}
		m.cursors = adjusted
	}

	m.stack.PushStackElement(group, beforeVersion)
	m.stack.PushEditOperation(editstack.Operation{
		Forward:          fwdOps,
		Reverse:          reverse,
		SelectionsBefore: beforeCursors,
		SelectionsAfter:  append([]selection.Selection(nil), m.cursors...),
	}, m.versionID)

	return reverse, nil
}

// PushStackElement closes the currently open undo-stack group (if any)
// and opens a fresh one labeled group, which the next PushEditOperations
// call fills. While that group is still empty, further PushStackElement
// calls have no effect. PushEditOperations itself already starts a new
// group on every call, so back-to-back PushEditOperations calls always
// undo separately.
func (m *Model) PushStackElement(group string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkWritable("PushStackElement"); err != nil {
		return err
	}
	m.stack.PushStackElement(group, m.versionID)
	return nil
}

// applyLocked runs the validate -> buffer edit -> decorations patch ->
// tokens patch -> emit pipeline. Caller must hold the write lock. The
// returned changes are in original-input order with rangeOffset/
// rangeLength computed against the pre-edit buffer, as needed by
// selection.AdjustSelection.
func (m *Model) applyLocked(ops []buffer.EditOperation, recordEvents bool) (reverseEdits []buffer.EditOperation, fwdOps []buffer.EditOperation, changes []buffer.ContentChange, err error) {
	if len(ops) == 0 {
		return nil, nil, nil, nil
	}

	validated := make([]buffer.EditOperation, len(ops))
	for i, op := range ops {
		start := m.validatePositionLocked(op.Range.Start)
		end := m.validatePositionLocked(op.Range.End)
		validated[i] = buffer.EditOperation{Range: buffer.NewRange(start, end), Text: op.Text, ForceMoveMarkers: op.ForceMoveMarkers}
	}

	res, berr := m.buf.ApplyEdits(validated, m.trimAutoWhitespace)
	if berr != nil {
		return nil, nil, nil, newError(KindInvalidArgument, "ApplyEdits", berr)
	}

	allOps := validated
	allChanges := res.Changes
	allRaw := res.RawChanges
	allReverse := res.ReverseEdits

	if len(res.TrimAutoWhitespaceLineNumbers) > 0 {
		var trimOps []buffer.EditOperation
		for _, line := range res.TrimAutoWhitespaceLineNumbers {
			if !editstack.ShouldTrimLine(line, m.cursors) {
				continue
			}
			maxCol, _ := m.buf.LineLength(line)
			trimOps = append(trimOps, buffer.EditOperation{
				Range: buffer.Range{Start: buffer.Position{Line: line, Column: 1}, End: buffer.Position{Line: line, Column: maxCol + 1}},
				Text:  "",
			})
		}
		if len(trimOps) > 0 {
			trimRes, terr := m.buf.ApplyEdits(trimOps, false)
			if terr == nil {
				allOps = append(allOps, trimOps...)
				allChanges = append(allChanges, trimRes.Changes...)
				allRaw = append(allRaw, trimRes.RawChanges...)
				allReverse = append(allReverse, trimRes.ReverseEdits...)
			}
		}
	}

	// The trim batch's offsets are relative to the buffer after the main
	// batch, so each batch is converted (and ordered) on its own and the
	// trim batch is applied after the main one.
	intervalEdits := editsToIntervalEdits(validated, res.Changes)
	intervalEdits = append(intervalEdits, editsToIntervalEdits(allOps[len(validated):], allChanges[len(res.Changes):])...)
	m.decorations.AcceptReplace(intervalEdits)
	applyRawChangesToTokens(m.tokens, allRaw)

	m.bumpVersion(true)

	if recordEvents {
		m.events.RecordContentChange(allChanges, m.versionID, m.alternativeVersionID, m.buf.EOL())
		if len(allRaw) > 0 {
			m.events.RecordRawContentChange(allRaw, m.versionID)
		}
		if len(intervalEdits) > 0 {
			m.events.RecordDecorationsChanged()
		}
	}
	m.scheduler.Schedule()

	return allReverse, allOps, allChanges, nil
}

func applyRawChangesToTokens(store interface {
	ApplyEdit(fromLine, toLine, newLineCount int)
}, changes []buffer.RawChange) {
	for _, c := range changes {
		switch c.Kind {
		case buffer.RawLineChanged:
			store.ApplyEdit(c.FromLine, c.FromLine, 1)
		case buffer.RawLinesInserted:
			store.ApplyEdit(c.FromLine, c.FromLine-1, len(c.Lines))
		case buffer.RawLinesDeleted:
			store.ApplyEdit(c.FromLine, c.ToLine, 0)
		case buffer.RawEOLChanged:
			// no line-count change
		}
	}
}

// Undo reverts the most recent undoable stack element.
func (m *Model) Undo() ([]selection.Selection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkWritable("Undo"); err != nil {
		return nil, err
	}
	el, uerr := m.stack.Undo()
	if uerr != nil {
		return nil, newError(KindNoOp, "Undo", ErrNothingToUndo)
	}
	m.events.SetPendingFlags(true, false, false)
	m.events.BeginDeferred()
	for _, op := range el.Operations {
		if _, _, _, err := m.applyLocked(op.Reverse, true); err != nil {
			m.events.EndDeferred()
			return nil, newError(KindInternal, "Undo", err)
		}
	}
	m.events.EndDeferred()
	// el.Operations is reverse-apply order (original-last op first); the
	// original-first op's SelectionsBefore is the selection state right
	// before the whole element began.
	elementStart := el.Operations[len(el.Operations)-1]
	m.cursors = elementStart.SelectionsBefore
	m.alternativeVersionID = el.VersionIDBefore
	return m.cursors, nil
}

// Redo reapplies the most recently undone stack element.
func (m *Model) Redo() ([]selection.Selection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkWritable("Redo"); err != nil {
		return nil, err
	}
	el, rerr := m.stack.Redo()
	if rerr != nil {
		return nil, newError(KindNoOp, "Redo", ErrNothingToRedo)
	}
	m.events.SetPendingFlags(false, true, false)
	m.events.BeginDeferred()
	for _, op := range el.Operations {
		if _, _, _, err := m.applyLocked(op.Forward, true); err != nil {
			m.events.EndDeferred()
			return nil, newError(KindInternal, "Redo", err)
		}
	}
	m.events.EndDeferred()
	last := el.Operations[len(el.Operations)-1]
	m.cursors = last.SelectionsAfter
	m.alternativeVersionID = el.VersionIDAfter
	return m.cursors, nil
}

// CanUndo reports whether Undo would succeed.
func (m *Model) CanUndo() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stack.CanUndo()
}

// CanRedo reports whether Redo would succeed.
func (m *Model) CanRedo() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stack.CanRedo()
}
