package interval

import "testing"

func TestInsertAndIntervalSearch(t *testing.T) {
	tr := NewTree()
	tr.Insert(1, 10, 20, NeverGrowsWhenTypingAtEdges, "a")
	tr.Insert(2, 30, 40, NeverGrowsWhenTypingAtEdges, "b")
	tr.Insert(3, 5, 12, NeverGrowsWhenTypingAtEdges, "c")

	got := tr.IntervalSearch(11, 11)
	if len(got) != 2 {
		t.Fatalf("IntervalSearch(11,11) returned %d nodes, want 2", len(got))
	}
	ids := map[uint64]bool{}
	for _, n := range got {
		ids[n.ID] = true
	}
	if !ids[1] || !ids[3] {
		t.Errorf("expected ids {1,3}, got %v", ids)
	}

	none := tr.IntervalSearch(21, 29)
	if len(none) != 0 {
		t.Errorf("expected no overlaps, got %d", len(none))
	}
}

func TestDeleteMaintainsInvariants(t *testing.T) {
	tr := NewTree()
	var nodes []*Node
	for i := uint64(0); i < 50; i++ {
		nodes = append(nodes, tr.Insert(i, int64(i*2), int64(i*2+1), NeverGrowsWhenTypingAtEdges, nil))
	}
	if tr.Len() != 50 {
		t.Fatalf("Len() = %d, want 50", tr.Len())
	}
	for i := 0; i < 25; i++ {
		tr.Delete(nodes[i])
	}
	if tr.Len() != 25 {
		t.Fatalf("Len() after deletes = %d, want 25", tr.Len())
	}
	all := tr.All()
	for i := 1; i < len(all); i++ {
		if all[i].Start < all[i-1].Start {
			t.Fatalf("All() not sorted: %v before %v", all[i-1].Start, all[i].Start)
		}
	}
}

func TestAcceptReplaceShiftsFollowingIntervals(t *testing.T) {
	tr := NewTree()
	tr.Insert(1, 20, 25, NeverGrowsWhenTypingAtEdges, nil)
	tr.AcceptReplace([]Edit{{Start: 0, End: 5, NewLength: 10}})
	n := tr.Resolve(1)
	if n == nil {
		t.Fatalf("node 1 not found after AcceptReplace")
	}
	if n.Start != 25 || n.End != 30 {
		t.Errorf("node shifted to [%d,%d], want [25,30]", n.Start, n.End)
	}
}

func TestAcceptReplaceStickinessNeverGrows(t *testing.T) {
	tr := NewTree()
	tr.Insert(1, 10, 20, NeverGrowsWhenTypingAtEdges, nil)
	// insert 3 chars right at the decoration's start (touching left edge
	// from the decoration's perspective: edit is [10,10))
	tr.AcceptReplace([]Edit{{Start: 10, End: 10, NewLength: 3}})
	n := tr.Resolve(1)
	if n.Start != 13 || n.End != 23 {
		t.Errorf("NeverGrows node = [%d,%d], want [13,23]", n.Start, n.End)
	}
}

func TestAcceptReplaceStickinessAlwaysGrows(t *testing.T) {
	tr := NewTree()
	tr.Insert(1, 10, 20, AlwaysGrowsWhenTypingAtEdges, nil)
	tr.AcceptReplace([]Edit{{Start: 20, End: 20, NewLength: 3}})
	n := tr.Resolve(1)
	if n.Start != 10 || n.End != 23 {
		t.Errorf("AlwaysGrows node = [%d,%d], want [10,23]", n.Start, n.End)
	}
}

func TestAcceptReplaceCollapsesContainedInterval(t *testing.T) {
	tr := NewTree()
	tr.Insert(1, 10, 20, NeverGrowsWhenTypingAtEdges, nil)
	tr.AcceptReplace([]Edit{{Start: 5, End: 25, NewLength: 0}})
	n := tr.Resolve(1)
	if n.Start != 5 || n.End != 5 {
		t.Errorf("contained node = [%d,%d], want [5,5]", n.Start, n.End)
	}
}
