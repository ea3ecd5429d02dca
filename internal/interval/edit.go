package interval

// Edit describes one already-applied buffer mutation in flat-offset
// terms: the half-open region [Start, End) was replaced by NewLength
// code units of new text.
type Edit struct {
	Start            int64
	End              int64
	NewLength        int64
	ForceMoveMarkers bool
}

// AcceptReplace adjusts every interval's endpoints for a batch of edits,
// applied in the order given (which must be the same non-overlapping,
// descending-by-start order the buffer itself applied them in, so that
// earlier edits in the slice don't need their offsets re-based against
// later ones).
func (t *Tree) AcceptReplace(edits []Edit) {
	for _, e := range edits {
		t.acceptOne(e)
	}
}

func (t *Tree) acceptOne(e Edit) {
	delta := e.NewLength - (e.End - e.Start)
	nodes := t.All()
	var collapsed []*Node
	for _, n := range nodes {
		newStart, newEnd, changed := adjustEndpoints(n, e)
		if changed {
			collapsed = append(collapsed, n)
			n.Start, n.End = newStart, newEnd
		}
	}
	_ = delta
	for _, n := range collapsed {
		t.reinsert(n)
	}
}

// adjustEndpoints computes a node's new [Start, End] after edit e is
// applied, honoring its stickiness policy at touching boundaries.
// Returns changed=false when the node needs no adjustment (entirely
// before the edit).
func adjustEndpoints(n *Node, e Edit) (newStart, newEnd int64, changed bool) {
	delta := e.NewLength - (e.End - e.Start)

	switch {
	case n.End < e.Start:
		// entirely before the edit: unaffected
		return n.Start, n.End, false

	case n.Start > e.End:
		// entirely after the edit: shift by delta
		return n.Start + delta, n.End + delta, true

	case n.Start >= e.Start && n.End <= e.End:
		// fully contained in the replaced region
		if n.Stickiness == AlwaysGrowsWhenTypingAtEdges {
			return e.Start, e.Start + e.NewLength, true
		}
		return e.Start, e.Start, true

	case n.End == e.Start:
		// touches the left edge of the edit
		if e.ForceMoveMarkers || n.Stickiness == AlwaysGrowsWhenTypingAtEdges || n.Stickiness == GrowsOnlyWhenTypingAfter {
			return n.Start, e.Start + e.NewLength, true
		}
		return n.Start, n.End, false

	case n.Start == e.End:
		// touches the right edge of the edit
		if e.ForceMoveMarkers || n.Stickiness == AlwaysGrowsWhenTypingAtEdges || n.Stickiness == GrowsOnlyWhenTypingBefore {
			return e.Start, n.End + delta, true
		}
		return n.Start + delta, n.End + delta, true

	case n.Start < e.Start && n.End > e.End:
		// edit entirely inside the node: node grows by delta on its tail
		return n.Start, n.End + delta, true

	case n.Start < e.Start:
		// partial overlap on the node's trailing side
		return n.Start, e.Start + e.NewLength, true

	default:
		// partial overlap on the node's leading side (n.End > e.End)
		return e.Start, n.End + delta, true
	}
}

// reinsert removes and reinserts n to restore the tree's start-order
// invariant after its Start changed. The old *Node is invalidated by
// this call: callers must re-resolve the interval by ID afterward,
// matching how decorations are addressed by ID rather than by pointer.
func (t *Tree) reinsert(n *Node) {
	id, start, end, sticky, value := n.ID, n.Start, n.End, n.Stickiness, n.Value
	t.Delete(n)
	t.Insert(id, start, end, sticky, value)
}
