package buffer

import "testing"

func TestLineCountAndContent(t *testing.T) {
	b := NewFromString("hello\nworld\n")
	if got := b.LineCount(); got != 3 {
		t.Fatalf("LineCount() = %d, want 3", got)
	}
	for line, want := range map[int]string{1: "hello", 2: "world", 3: ""} {
		got, err := b.LineContent(line)
		if err != nil {
			t.Fatalf("LineContent(%d) error: %v", line, err)
		}
		if got != want {
			t.Errorf("LineContent(%d) = %q, want %q", line, got, want)
		}
	}
	if _, err := b.LineContent(0); err != ErrLineOutOfRange {
		t.Errorf("LineContent(0) error = %v, want ErrLineOutOfRange", err)
	}
	if _, err := b.LineContent(4); err != ErrLineOutOfRange {
		t.Errorf("LineContent(4) error = %v, want ErrLineOutOfRange", err)
	}
}

func TestOffsetPositionRoundTrip(t *testing.T) {
	b := NewFromString("ab\ncd\nef")
	cases := []struct {
		pos    Position
		offset Offset
	}{
		{Position{1, 1}, 0},
		{Position{1, 3}, 2},
		{Position{2, 1}, 3},
		{Position{2, 3}, 5},
		{Position{3, 1}, 6},
		{Position{3, 3}, 8},
	}
	for _, tc := range cases {
		got, err := b.OffsetAt(tc.pos)
		if err != nil {
			t.Fatalf("OffsetAt(%v) error: %v", tc.pos, err)
		}
		if got != tc.offset {
			t.Errorf("OffsetAt(%v) = %d, want %d", tc.pos, got, tc.offset)
		}
		pos, err := b.PositionAt(tc.offset)
		if err != nil {
			t.Fatalf("PositionAt(%d) error: %v", tc.offset, err)
		}
		if pos != tc.pos {
			t.Errorf("PositionAt(%d) = %v, want %v", tc.offset, pos, tc.pos)
		}
	}
}

func TestUTF16SurrogatePairColumn(t *testing.T) {
	// U+1F600 (grinning face) needs two UTF-16 code units.
	b := NewFromString("a\U0001F600b")
	n, err := b.LineLength(1)
	if err != nil {
		t.Fatalf("LineLength error: %v", err)
	}
	if n != 4 { // 'a' + 2 units + 'b'
		t.Errorf("LineLength() = %d, want 4", n)
	}
	v, err := b.ValueInRange(Range{Start: Position{1, 1}, End: Position{1, 2}}, EOLPreferenceTextDefined)
	if err != nil {
		t.Fatalf("ValueInRange error: %v", err)
	}
	if v != "a" {
		t.Errorf("ValueInRange = %q, want %q", v, "a")
	}
}

func TestApplyEditsSimpleInsert(t *testing.T) {
	b := NewFromString("hello world")
	res, err := b.ApplyEdits([]EditOperation{
		{Range: Range{Start: Position{1, 6}, End: Position{1, 6}}, Text: ","},
	}, false)
	if err != nil {
		t.Fatalf("ApplyEdits error: %v", err)
	}
	if got := b.GetValue(EOLPreferenceTextDefined); got != "hello, world" {
		t.Fatalf("GetValue() = %q, want %q", got, "hello, world")
	}
	if len(res.Changes) != 1 || res.Changes[0].RangeOffset != 5 {
		t.Errorf("unexpected changes: %+v", res.Changes)
	}
	if len(res.ReverseEdits) != 1 || res.ReverseEdits[0].Text != "" {
		t.Errorf("unexpected reverse edits: %+v", res.ReverseEdits)
	}
}

func TestApplyEditsMultiLineReplace(t *testing.T) {
	b := NewFromString("line1\nline2\nline3")
	res, err := b.ApplyEdits([]EditOperation{
		{Range: Range{Start: Position{1, 4}, End: Position{3, 3}}, Text: "X\nY"},
	}, false)
	if err != nil {
		t.Fatalf("ApplyEdits error: %v", err)
	}
	want := "linX\nYne3"
	if got := b.GetValue(EOLPreferenceTextDefined); got != want {
		t.Fatalf("GetValue() = %q, want %q", got, want)
	}
	if res.ReverseEdits[0].Text != "e1\nline2\nli" {
		t.Errorf("reverse edit text = %q", res.ReverseEdits[0].Text)
	}
}

func TestApplyEditsRejectsOverlap(t *testing.T) {
	b := NewFromString("abcdef")
	_, err := b.ApplyEdits([]EditOperation{
		{Range: Range{Start: Position{1, 1}, End: Position{1, 4}}, Text: "X"},
		{Range: Range{Start: Position{1, 3}, End: Position{1, 6}}, Text: "Y"},
	}, false)
	if err != ErrEditsOverlap {
		t.Fatalf("err = %v, want ErrEditsOverlap", err)
	}
}

func TestApplyEditsTrimAutoWhitespace(t *testing.T) {
	b := NewFromString("    if true {")
	res, err := b.ApplyEdits([]EditOperation{
		{Range: Range{Start: Position{1, 14}, End: Position{1, 14}}, Text: "\n    "},
	}, true)
	if err != nil {
		t.Fatalf("ApplyEdits error: %v", err)
	}
	if len(res.TrimAutoWhitespaceLineNumbers) != 1 || res.TrimAutoWhitespaceLineNumbers[0] != 2 {
		t.Errorf("TrimAutoWhitespaceLineNumbers = %v, want [2]", res.TrimAutoWhitespaceLineNumbers)
	}
}

func TestDetectLineEnding(t *testing.T) {
	if DetectLineEnding("a\r\nb\r\nc") != CRLF {
		t.Errorf("expected CRLF")
	}
	if DetectLineEnding("a\nb\nc") != LF {
		t.Errorf("expected LF")
	}
	if DetectLineEnding("a") != LF {
		t.Errorf("expected LF default")
	}
}

func TestSnapshotIsolatedFromMutation(t *testing.T) {
	b := NewFromString("original")
	snap := b.Snapshot()
	if _, err := b.ApplyEdits([]EditOperation{
		{Range: Range{Start: Position{1, 1}, End: Position{1, 9}}, Text: "changed"},
	}, false); err != nil {
		t.Fatalf("ApplyEdits error: %v", err)
	}
	if snap.Text() != "original" {
		t.Errorf("snapshot mutated: %q", snap.Text())
	}
	if b.GetValue(EOLPreferenceTextDefined) != "changed" {
		t.Errorf("live buffer = %q", b.GetValue(EOLPreferenceTextDefined))
	}
}
