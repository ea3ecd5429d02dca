package decoration

import (
	"testing"

	"github.com/textkernel/textmodel/internal/buffer"
	"github.com/textkernel/textmodel/internal/interval"
)

func TestDeltaDecorationsAddAndRemove(t *testing.T) {
	buf := buffer.NewFromString("hello world")
	tr := NewTracker("$model1")

	ids, err := tr.DeltaDecorations(buf, 0, nil, []NewDecoration{
		{Range: buffer.Range{Start: buffer.Position{1, 1}, End: buffer.Position{1, 6}}, Options: Options{ClassName: "hl"}},
	})
	if err != nil {
		t.Fatalf("DeltaDecorations error: %v", err)
	}
	if len(ids) != 1 || ids[0] != "$model1;1" {
		t.Fatalf("ids = %v, want [$model1;1]", ids)
	}

	dec, ok := tr.Resolve(buf, ids[0])
	if !ok {
		t.Fatalf("Resolve(%s) not found", ids[0])
	}
	if dec.Range.End.Column != 6 {
		t.Errorf("Range = %v, want end column 6", dec.Range)
	}

	newIDs, err := tr.DeltaDecorations(buf, 0, ids, nil)
	if err != nil {
		t.Fatalf("DeltaDecorations removal error: %v", err)
	}
	if len(newIDs) != 0 {
		t.Errorf("newIDs = %v, want empty", newIDs)
	}
	if _, ok := tr.Resolve(buf, ids[0]); ok {
		t.Errorf("decoration %s still resolves after removal", ids[0])
	}
}

func TestOverviewRulerOwnerFilter(t *testing.T) {
	buf := buffer.NewFromString("hello world")
	tr := NewTracker("$model1")

	ruler := &OverviewRulerOptions{Color: "#ff0000", Lane: OverviewRulerLaneFull}
	if _, err := tr.DeltaDecorations(buf, 1, nil, []NewDecoration{
		{Range: buffer.Range{Start: buffer.Position{1, 1}, End: buffer.Position{1, 2}}, Options: Options{OverviewRuler: ruler}},
	}); err != nil {
		t.Fatalf("DeltaDecorations owner 1 error: %v", err)
	}
	if _, err := tr.DeltaDecorations(buf, 0, nil, []NewDecoration{
		{Range: buffer.Range{Start: buffer.Position{1, 3}, End: buffer.Position{1, 4}}, Options: Options{OverviewRuler: ruler}},
	}); err != nil {
		t.Fatalf("DeltaDecorations owner 0 error: %v", err)
	}
	if _, err := tr.DeltaDecorations(buf, 2, nil, []NewDecoration{
		{Range: buffer.Range{Start: buffer.Position{1, 5}, End: buffer.Position{1, 6}}, Options: Options{OverviewRuler: ruler}},
	}); err != nil {
		t.Fatalf("DeltaDecorations owner 2 error: %v", err)
	}

	got, err := tr.GetOverviewRulerDecorations(buf, 1)
	if err != nil {
		t.Fatalf("GetOverviewRulerDecorations error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d decorations, want 2 (owner 1 + global owner 0)", len(got))
	}
	for _, d := range got {
		if d.OwnerID == 2 {
			t.Errorf("owner-2 decoration leaked into owner-1 query: %+v", d)
		}
	}
}

func TestSanitizeClassName(t *testing.T) {
	if got := SanitizeClassName("foo<script>bar"); got != "foo script bar" {
		t.Errorf("SanitizeClassName = %q", got)
	}
}

func TestValidateOverviewRulerColor(t *testing.T) {
	if !ValidateOverviewRulerColor("#ff0000") {
		t.Errorf("expected #ff0000 to be valid")
	}
	if ValidateOverviewRulerColor("not-a-color") {
		t.Errorf("expected not-a-color to be invalid")
	}
	if !ValidateOverviewRulerColor("") {
		t.Errorf("expected empty color to be valid")
	}
}

func TestAcceptReplaceShiftsDecoration(t *testing.T) {
	buf := buffer.NewFromString("hello world")
	tr := NewTracker("$model1")
	ids, _ := tr.DeltaDecorations(buf, 0, nil, []NewDecoration{
		{Range: buffer.Range{Start: buffer.Position{1, 7}, End: buffer.Position{1, 12}}, Options: Options{ClassName: "hl", Stickiness: interval.NeverGrowsWhenTypingAtEdges}},
	})
	if _, err := buf.ApplyEdits([]buffer.EditOperation{
		{Range: buffer.Range{Start: buffer.Position{1, 1}, End: buffer.Position{1, 1}}, Text: "> "},
	}, false); err != nil {
		t.Fatalf("ApplyEdits error: %v", err)
	}
	tr.AcceptReplace([]interval.Edit{{Start: 0, End: 0, NewLength: 2}})

	dec, ok := tr.Resolve(buf, ids[0])
	if !ok {
		t.Fatalf("decoration not found after edit")
	}
	if dec.Range.Start.Column != 9 {
		t.Errorf("Range.Start = %v, want column 9", dec.Range.Start)
	}
}
