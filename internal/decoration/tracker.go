package decoration

import (
	"fmt"
	"sort"

	"github.com/textkernel/textmodel/internal/buffer"
	"github.com/textkernel/textmodel/internal/interval"
)

// Tracker owns the two interval trees backing a model's decorations:
// one for decorations that paint the overview ruler, one for everything
// else. It is not safe for concurrent use; the text model facade
// serializes access.
type Tracker struct {
	instance string
	counter  uint64
	nodeID   uint64

	ruler    *interval.Tree
	nonRuler *interval.Tree

	meta map[uint64]decorationMeta
}

type decorationMeta struct {
	publicID string
	ownerID  int
	options  Options
	inRuler  bool
}

// NewTracker returns an empty tracker. instance disambiguates IDs
// allocated by trackers belonging to different model instances sharing
// one process (e.g. "$model1").
func NewTracker(instance string) *Tracker {
	return &Tracker{
		instance: instance,
		ruler:    interval.NewTree(),
		nonRuler: interval.NewTree(),
		meta:     make(map[uint64]decorationMeta),
	}
}

func (t *Tracker) nextID() (uint64, string) {
	t.counter++
	return t.counter, fmt.Sprintf("%s;%d", t.instance, t.counter)
}

// offsetsOf resolves a decoration's buffer positions into flat offsets
// via buf, the buffer the decorations belong to.
func offsetsOf(buf *buffer.Buffer, r buffer.Range) (int64, int64, error) {
	start, err := buf.OffsetAt(r.Start)
	if err != nil {
		return 0, 0, err
	}
	end, err := buf.OffsetAt(r.End)
	if err != nil {
		return 0, 0, err
	}
	return int64(start), int64(end), nil
}

// DeltaDecorations atomically removes oldIDs and adds newDecs, returning
// the IDs allocated for newDecs in the same order they were given.
// Owner 0 means no particular owner (visible to every
// GetOverviewRulerDecorations filter).
func (t *Tracker) DeltaDecorations(buf *buffer.Buffer, ownerID int, oldIDs []string, newDecs []NewDecoration) ([]string, error) {
	starts := make([]int64, len(newDecs))
	ends := make([]int64, len(newDecs))
	for i, nd := range newDecs {
		start, end, err := offsetsOf(buf, nd.Range)
		if err != nil {
			return nil, err
		}
		starts[i], ends[i] = start, end
	}
	for _, id := range oldIDs {
		t.removeByPublicID(id)
	}

	newIDs := make([]string, len(newDecs))
	for i, nd := range newDecs {
		start, end := starts[i], ends[i]
		id, publicID := t.nextID()
		tree := t.nonRuler
		inRuler := nd.Options.OverviewRuler != nil
		if inRuler {
			tree = t.ruler
		}
		tree.Insert(id, start, end, nd.Options.Stickiness, nil)
		t.meta[id] = decorationMeta{publicID: publicID, ownerID: ownerID, options: nd.Options, inRuler: inRuler}
		newIDs[i] = publicID
	}
	return newIDs, nil
}

func (t *Tracker) removeByPublicID(publicID string) {
	for id, m := range t.meta {
		if m.publicID == publicID {
			if m.inRuler {
				if n := t.ruler.Resolve(id); n != nil {
					t.ruler.Delete(n)
				}
			} else if n := t.nonRuler.Resolve(id); n != nil {
				t.nonRuler.Delete(n)
			}
			delete(t.meta, id)
			return
		}
	}
}

// Resolve rehydrates a decoration's current range and options from its
// public ID.
func (t *Tracker) Resolve(buf *buffer.Buffer, publicID string) (Decoration, bool) {
	for id, m := range t.meta {
		if m.publicID != publicID {
			continue
		}
		tree := t.nonRuler
		if m.inRuler {
			tree = t.ruler
		}
		n := tree.Resolve(id)
		if n == nil {
			return Decoration{}, false
		}
		r, err := rangeFromOffsets(buf, n.Start, n.End)
		if err != nil {
			return Decoration{}, false
		}
		return Decoration{ID: publicID, OwnerID: m.ownerID, Range: r, Options: m.options}, true
	}
	return Decoration{}, false
}

func rangeFromOffsets(buf *buffer.Buffer, start, end int64) (buffer.Range, error) {
	s, err := buf.PositionAt(buffer.Offset(start))
	if err != nil {
		return buffer.Range{}, err
	}
	e, err := buf.PositionAt(buffer.Offset(end))
	if err != nil {
		return buffer.Range{}, err
	}
	return buffer.Range{Start: s, End: e}, nil
}

// GetDecorationsInRange returns every non-overview-ruler decoration
// overlapping r.
func (t *Tracker) GetDecorationsInRange(buf *buffer.Buffer, r buffer.Range) ([]Decoration, error) {
	return t.queryTree(buf, t.nonRuler, r, 0, false)
}

// GetOverviewRulerDecorations returns every overview-ruler decoration.
// When ownerID is non-zero, only decorations owned by ownerID or by no
// owner (ownerID 0, meaning "global") are returned; ownerID 0 returns
// every decoration regardless of owner. This mirrors the editor
// convention that a per-editor-instance overview ruler shows both its
// own decorations and globally-scoped ones (language-server
// diagnostics, say) but not another editor instance's private
// decorations.
func (t *Tracker) GetOverviewRulerDecorations(buf *buffer.Buffer, ownerID int) ([]Decoration, error) {
	return t.queryTree(buf, t.ruler, buf.FullRange(), ownerID, true)
}

func (t *Tracker) queryTree(buf *buffer.Buffer, tree *interval.Tree, r buffer.Range, ownerFilter int, filterByOwner bool) ([]Decoration, error) {
	start, end, err := offsetsOf(buf, r)
	if err != nil {
		return nil, err
	}
	nodes := tree.IntervalSearch(start, end)
	out := make([]Decoration, 0, len(nodes))
	for _, n := range nodes {
		m, ok := t.meta[n.ID]
		if !ok {
			continue
		}
		if filterByOwner && ownerFilter != 0 && m.ownerID != 0 && m.ownerID != ownerFilter {
			continue
		}
		rr, err := rangeFromOffsets(buf, n.Start, n.End)
		if err != nil {
			continue
		}
		out = append(out, Decoration{ID: m.publicID, OwnerID: m.ownerID, Range: rr, Options: m.options})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Range.Start.Before(out[j].Range.Start) })
	return out, nil
}

// RemoveAllWithOwnerID deletes every decoration owned by ownerID across
// both trees and returns how many were removed.
func (t *Tracker) RemoveAllWithOwnerID(ownerID int) int {
	var toRemove []uint64
	for id, m := range t.meta {
		if m.ownerID == ownerID {
			toRemove = append(toRemove, id)
		}
	}
	for _, id := range toRemove {
		m := t.meta[id]
		tree := t.nonRuler
		if m.inRuler {
			tree = t.ruler
		}
		if n := tree.Resolve(id); n != nil {
			tree.Delete(n)
		}
		delete(t.meta, id)
	}
	return len(toRemove)
}

// AcceptReplace adjusts every decoration's range for a batch of
// already-applied buffer edits, expressed in flat-offset terms.
func (t *Tracker) AcceptReplace(edits []interval.Edit) {
	t.ruler.AcceptReplace(edits)
	t.nonRuler.AcceptReplace(edits)
}
