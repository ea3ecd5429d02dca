package selection

import (
	"sort"

	"github.com/textkernel/textmodel/internal/buffer"
)

// AdjustPosition recomputes pos (valid against the buffer state before
// changes were applied, captured in the before snapshot) into its
// equivalent position against the live buffer state after changes were
// applied. A position strictly inside a replaced range collapses to the
// end of that range's replacement text; a position before every change
// is untouched; a position after a change shifts by that change's
// length delta.
func AdjustPosition(pos buffer.Position, before buffer.Snapshot, after *buffer.Buffer, changes []buffer.ContentChange) (buffer.Position, error) {
	offset, err := before.ToBuffer().OffsetAt(pos)
	if err != nil {
		return buffer.Position{}, err
	}

	sorted := make([]buffer.ContentChange, len(changes))
	copy(sorted, changes)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].RangeOffset < sorted[j].RangeOffset })

	final := offset
	for _, c := range sorted {
		rangeEnd := c.RangeOffset + c.RangeLength
		newLen := buffer.Offset(utf16Units(c.Text))
		switch {
		case offset <= c.RangeOffset:
			goto done
		case offset >= rangeEnd:
			final += newLen - c.RangeLength
		default:
			final = c.RangeOffset + newLen
			goto done
		}
	}
done:
	return after.PositionAt(final)
}

// AdjustSelection applies AdjustPosition to both endpoints of sel.
func AdjustSelection(sel Selection, before buffer.Snapshot, after *buffer.Buffer, changes []buffer.ContentChange) (Selection, error) {
	anchor, err := AdjustPosition(sel.Anchor, before, after, changes)
	if err != nil {
		return Selection{}, err
	}
	if sel.IsCollapsed() {
		return NewCursor(anchor), nil
	}
	head, err := AdjustPosition(sel.Head, before, after, changes)
	if err != nil {
		return Selection{}, err
	}
	return Selection{Anchor: anchor, Head: head}, nil
}

func utf16Units(s string) int {
	n := 0
	for _, r := range s {
		if r > 0xFFFF {
			n += 2
		} else {
			n++
		}
	}
	return n
}
