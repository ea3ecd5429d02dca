package textmodel

import (
	"testing"

	"github.com/textkernel/textmodel/internal/buffer"
	"github.com/textkernel/textmodel/internal/interval"
	"github.com/textkernel/textmodel/internal/modelevent"
)

func newTestModel(content string) *Model {
	return New(modelevent.Listener{}, WithContent(content))
}

// S1 - simple insert.
func TestScenarioSimpleInsert(t *testing.T) {
	m := New(modelevent.Listener{}, WithContent("abc\ndef"))
	before := m.VersionID()

	_, err := m.ApplyEdits([]buffer.EditOperation{
		{Range: buffer.Range{Start: buffer.Position{Line: 1, Column: 2}, End: buffer.Position{Line: 1, Column: 2}}, Text: "X"},
	})
	if err != nil {
		t.Fatalf("ApplyEdits error: %v", err)
	}

	got, err := m.GetValue(buffer.EOLPreferenceTextDefined)
	if err != nil {
		t.Fatalf("GetValue error: %v", err)
	}
	if want := "aXbc\ndef"; got != want {
		t.Errorf("GetValue() = %q, want %q", got, want)
	}
	if m.VersionID() != before+1 {
		t.Errorf("VersionID() = %d, want %d", m.VersionID(), before+1)
	}
}

// S2 - EOL normalization.
func TestScenarioEOLNormalization(t *testing.T) {
	m := New(modelevent.Listener{}, WithContent("a\r\nb"))
	if lc, _ := m.GetLineCount(); lc != 2 {
		t.Fatalf("GetLineCount() = %d, want 2", lc)
	}
	if err := m.SetEOL(buffer.LF); err != nil {
		t.Fatalf("SetEOL error: %v", err)
	}
	got, _ := m.GetValue(buffer.EOLPreferenceTextDefined)
	if want := "a\nb"; got != want {
		t.Errorf("GetValue() = %q, want %q", got, want)
	}
	if lc, _ := m.GetLineCount(); lc != 2 {
		t.Errorf("GetLineCount() after SetEOL = %d, want 2", lc)
	}
}

// S3 - decoration stickiness.
func TestScenarioDecorationStickiness(t *testing.T) {
	tests := []struct {
		name       string
		stickiness interval.Stickiness
		wantStart  buffer.Position
		wantEnd    buffer.Position
	}{
		{"NeverGrows", interval.NeverGrowsWhenTypingAtEdges, buffer.Position{Line: 1, Column: 3}, buffer.Position{Line: 1, Column: 5}},
		{"AlwaysGrows", interval.AlwaysGrowsWhenTypingAtEdges, buffer.Position{Line: 1, Column: 2}, buffer.Position{Line: 1, Column: 5}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := newTestModel("abcdef")
			ids, err := m.DeltaDecorations(0, nil, []NewDecoration{{
				Range:   buffer.Range{Start: buffer.Position{Line: 1, Column: 2}, End: buffer.Position{Line: 1, Column: 4}},
				Options: DecorationOptions{Stickiness: tc.stickiness},
			}})
			if err != nil || len(ids) != 1 {
				t.Fatalf("DeltaDecorations error: %v", err)
			}
			_, err = m.ApplyEdits([]buffer.EditOperation{
				{Range: buffer.Range{Start: buffer.Position{Line: 1, Column: 2}, End: buffer.Position{Line: 1, Column: 2}}, Text: "x"},
			})
			if err != nil {
				t.Fatalf("ApplyEdits error: %v", err)
			}
			d, ok, err := m.GetDecorationRange(ids[0])
			if err != nil || !ok {
				t.Fatalf("GetDecorationRange: ok=%v err=%v", ok, err)
			}
			if d.Range.Start != tc.wantStart || d.Range.End != tc.wantEnd {
				t.Errorf("Range = %v, want [%v, %v]", d.Range, tc.wantStart, tc.wantEnd)
			}
		})
	}
}

// S5 - bracket match.
func TestScenarioBracketMatch(t *testing.T) {
	m := newTestModel("fn(a, b)")
	m.SetBrackets([][2]string{{"(", ")"}})

	match, ok, err := m.MatchBracket(buffer.Position{Line: 1, Column: 3})
	if err != nil {
		t.Fatalf("MatchBracket error: %v", err)
	}
	if !ok {
		t.Fatal("MatchBracket: want a match")
	}
	wantOpen := buffer.Range{Start: buffer.Position{1, 3}, End: buffer.Position{1, 4}}
	wantClose := buffer.Range{Start: buffer.Position{1, 8}, End: buffer.Position{1, 9}}
	if match.Open != wantOpen {
		t.Errorf("Open = %v, want %v", match.Open, wantOpen)
	}
	if match.Close != wantClose {
		t.Errorf("Close = %v, want %v", match.Close, wantClose)
	}
}

// S6 - deferred decoration events.
func TestScenarioDeferredDecorationEvents(t *testing.T) {
	fired := 0
	m := New(modelevent.Listener{
		OnDecorationsChanged: func(modelevent.DecorationsChangedEvent) { fired++ },
	}, WithContent("abcdef"))

	err := m.ChangeDecorations(0, func(a *DecorationsAccessor) error {
		for i := 0; i < 3; i++ {
			if _, err := a.AddDecoration(buffer.Range{Start: buffer.Position{1, 1}, End: buffer.Position{1, 2}}, DecorationOptions{}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("ChangeDecorations error: %v", err)
	}
	if fired != 1 {
		t.Errorf("onDidChangeDecorations fired %d times, want 1", fired)
	}
}

// Invariant 1: offset/position round trip through the facade.
func TestInvariantOffsetPositionRoundTrip(t *testing.T) {
	m := newTestModel("ab\ncd\nef")
	positions := []buffer.Position{{1, 1}, {1, 3}, {2, 1}, {3, 3}}
	for _, pos := range positions {
		off, err := m.GetOffsetAt(pos)
		if err != nil {
			t.Fatalf("GetOffsetAt(%v) error: %v", pos, err)
		}
		got, err := m.GetPositionAt(off)
		if err != nil {
			t.Fatalf("GetPositionAt(%d) error: %v", off, err)
		}
		if got != pos {
			t.Errorf("round trip %v -> %d -> %v, want %v", pos, off, got, pos)
		}
	}
}

// Invariant 2: version monotonicity, and unchanged by a read.
func TestInvariantVersionMonotonicity(t *testing.T) {
	m := newTestModel("abc")
	v0 := m.VersionID()
	if _, err := m.ApplyEdits([]buffer.EditOperation{
		{Range: buffer.Range{Start: buffer.Position{1, 1}, End: buffer.Position{1, 1}}, Text: "x"},
	}); err != nil {
		t.Fatalf("ApplyEdits error: %v", err)
	}
	if m.VersionID() <= v0 {
		t.Errorf("VersionID() = %d, want > %d", m.VersionID(), v0)
	}

	v1 := m.VersionID()
	if _, err := m.GetLineContent(1); err != nil {
		t.Fatalf("GetLineContent error: %v", err)
	}
	if m.VersionID() != v1 {
		t.Errorf("VersionID() changed on a read: %d -> %d", v1, m.VersionID())
	}
}

// Invariant 4: reverse edits restore prior content and EOL.
func TestInvariantReverseEditInverseLaw(t *testing.T) {
	m := newTestModel("hello\nworld")
	before, err := m.GetValue(buffer.EOLPreferenceTextDefined)
	if err != nil {
		t.Fatalf("GetValue error: %v", err)
	}
	beforeEOL := m.EOL()

	reverse, err := m.ApplyEdits([]buffer.EditOperation{
		{Range: buffer.Range{Start: buffer.Position{1, 1}, End: buffer.Position{2, 6}}, Text: "goodbye\nmoon\nextra"},
	})
	if err != nil {
		t.Fatalf("ApplyEdits error: %v", err)
	}
	if _, err := m.ApplyEdits(reverse); err != nil {
		t.Fatalf("ApplyEdits(reverse) error: %v", err)
	}

	after, err := m.GetValue(buffer.EOLPreferenceTextDefined)
	if err != nil {
		t.Fatalf("GetValue error: %v", err)
	}
	if after != before {
		t.Errorf("content after reverse = %q, want %q", after, before)
	}
	if m.EOL() != beforeEOL {
		t.Errorf("EOL after reverse = %q, want %q", m.EOL(), beforeEOL)
	}
}

// Invariant 5: undo/redo restores content and version bookkeeping.
func TestInvariantUndoRedo(t *testing.T) {
	m := newTestModel("abc")
	beforeValue, _ := m.GetValue(buffer.EOLPreferenceTextDefined)

	if _, err := m.PushEditOperations("typing", []buffer.EditOperation{
		{Range: buffer.Range{Start: buffer.Position{1, 1}, End: buffer.Position{1, 1}}, Text: "X"},
	}, nil); err != nil {
		t.Fatalf("PushEditOperations error: %v", err)
	}
	afterEditVersion := m.VersionID()
	afterEditValue, _ := m.GetValue(buffer.EOLPreferenceTextDefined)

	if _, err := m.Undo(); err != nil {
		t.Fatalf("Undo error: %v", err)
	}
	undoneValue, _ := m.GetValue(buffer.EOLPreferenceTextDefined)
	if undoneValue != beforeValue {
		t.Errorf("value after undo = %q, want %q", undoneValue, beforeValue)
	}

	if _, err := m.Redo(); err != nil {
		t.Fatalf("Redo error: %v", err)
	}
	redoneValue, _ := m.GetValue(buffer.EOLPreferenceTextDefined)
	if redoneValue != afterEditValue {
		t.Errorf("value after redo = %q, want %q", redoneValue, afterEditValue)
	}
	if m.VersionID() != afterEditVersion+2 {
		t.Errorf("VersionID() after undo+redo = %d, want %d", m.VersionID(), afterEditVersion+2)
	}
}

// Invariant 6: surrogate safety.
func TestInvariantSurrogateSafety(t *testing.T) {
	m := newTestModel("a\U0001F600b")
	// The astral character occupies columns 2-3 (a high/low surrogate
	// pair); column 3 sits between them and must be nudged to 2 or 4.
	valid, err := m.ValidatePosition(buffer.Position{Line: 1, Column: 3})
	if err != nil {
		t.Fatalf("ValidatePosition error: %v", err)
	}
	if valid.Column == 3 {
		t.Errorf("ValidatePosition returned a position splitting the surrogate pair: %v", valid)
	}
}

// Invariant 7: one content event per edit, and one decorations event
// per ChangeDecorations batch.
func TestInvariantEventOrdering(t *testing.T) {
	var changeCount, decorationCount int
	m := New(modelevent.Listener{
		OnContentChanged:     func(modelevent.ContentChangedEvent) { changeCount++ },
		OnDecorationsChanged: func(modelevent.DecorationsChangedEvent) { decorationCount++ },
	}, WithContent("abc"))

	if _, err := m.ApplyEdits([]buffer.EditOperation{
		{Range: buffer.Range{Start: buffer.Position{1, 1}, End: buffer.Position{1, 1}}, Text: "x"},
	}); err != nil {
		t.Fatalf("ApplyEdits error: %v", err)
	}
	if changeCount != 1 {
		t.Errorf("onDidChangeContent fired %d times for one edit, want 1", changeCount)
	}

	if err := m.ChangeDecorations(0, func(a *DecorationsAccessor) error {
		_, err := a.AddDecoration(buffer.Range{Start: buffer.Position{1, 1}, End: buffer.Position{1, 2}}, DecorationOptions{})
		return err
	}); err != nil {
		t.Fatalf("ChangeDecorations error: %v", err)
	}
	if decorationCount != 1 {
		t.Errorf("onDidChangeDecorations fired %d times for one batch, want 1", decorationCount)
	}
}

func TestDisposeRejectsFurtherOperations(t *testing.T) {
	m := newTestModel("abc")
	m.Dispose()
	if !m.IsDisposed() {
		t.Fatal("IsDisposed() = false after Dispose")
	}
	if _, err := m.GetValue(buffer.EOLPreferenceTextDefined); err == nil {
		t.Error("GetValue after Dispose: want error")
	}
	var merr *Error
	_, err := m.GetValue(buffer.EOLPreferenceTextDefined)
	if !errorsAs(err, &merr) || merr.Kind != KindModelDisposed {
		t.Errorf("error kind = %v, want KindModelDisposed", err)
	}
}

func TestWordAtPosition(t *testing.T) {
	m := newTestModel("foo bar baz")
	if err := m.LoadLanguageConfiguration(`{"wordPattern":"[A-Za-z]+"}`); err != nil {
		t.Fatalf("LoadLanguageConfiguration error: %v", err)
	}
	w, ok, err := m.GetWordAtPosition(buffer.Position{Line: 1, Column: 6})
	if err != nil || !ok {
		t.Fatalf("GetWordAtPosition: ok=%v err=%v", ok, err)
	}
	if w.Text != "bar" {
		t.Errorf("word = %q, want %q", w.Text, "bar")
	}
}

func TestFindMatches(t *testing.T) {
	m := newTestModel("cat hat cat")
	matches, err := m.FindMatches("cat", buffer.Range{}, SearchOptions{MatchCase: true})
	if err != nil {
		t.Fatalf("FindMatches error: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("len(matches) = %d, want 2", len(matches))
	}
	if matches[0].Range.Start.Column != 1 || matches[1].Range.Start.Column != 9 {
		t.Errorf("matches = %+v", matches)
	}
}

func TestOverviewRulerOwnerFilter(t *testing.T) {
	m := newTestModel("abcdef")
	rulerOpts := DecorationOptions{OverviewRuler: &OverviewRulerOptions{Color: "#ff0000", Lane: OverviewRulerLaneFull}}

	if _, err := m.DeltaDecorations(0, nil, []NewDecoration{{
		Range:   buffer.Range{Start: buffer.Position{1, 1}, End: buffer.Position{1, 2}},
		Options: rulerOpts,
	}}); err != nil {
		t.Fatalf("DeltaDecorations (global) error: %v", err)
	}
	if _, err := m.DeltaDecorations(7, nil, []NewDecoration{{
		Range:   buffer.Range{Start: buffer.Position{1, 2}, End: buffer.Position{1, 3}},
		Options: rulerOpts,
	}}); err != nil {
		t.Fatalf("DeltaDecorations (owner 7) error: %v", err)
	}

	owned, err := m.GetOverviewRulerDecorations(7)
	if err != nil {
		t.Fatalf("GetOverviewRulerDecorations(7) error: %v", err)
	}
	if len(owned) != 2 {
		t.Errorf("GetOverviewRulerDecorations(7) = %d decorations, want 2 (own + global)", len(owned))
	}

	otherOwner, err := m.GetOverviewRulerDecorations(9)
	if err != nil {
		t.Fatalf("GetOverviewRulerDecorations(9) error: %v", err)
	}
	if len(otherOwner) != 1 {
		t.Errorf("GetOverviewRulerDecorations(9) = %d decorations, want 1 (global only)", len(otherOwner))
	}

	everything, err := m.GetOverviewRulerDecorations(0)
	if err != nil {
		t.Fatalf("GetOverviewRulerDecorations(0) error: %v", err)
	}
	if len(everything) != 2 {
		t.Errorf("GetOverviewRulerDecorations(0) = %d decorations, want 2 (everything)", len(everything))
	}
}

// errorsAs is a tiny local wrapper so this file doesn't need to import
// errors just for one assertion.
func errorsAs(err error, target **Error) bool {
	e, ok := err.(*Error)
	if !ok {
		return false
	}
	*target = e
	return true
}
