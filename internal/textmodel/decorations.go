package textmodel

import (
	"github.com/textkernel/textmodel/internal/buffer"
	"github.com/textkernel/textmodel/internal/decoration"
)

// Decoration, NewDecoration and Options are re-exported from
// internal/decoration so callers never need to import that package
// directly.
type (
	Decoration           = decoration.Decoration
	NewDecoration        = decoration.NewDecoration
	DecorationOptions    = decoration.Options
	OverviewRulerOptions = decoration.OverviewRulerOptions
	OverviewRulerLane    = decoration.OverviewRulerLane
)

const (
	OverviewRulerLaneLeft   = decoration.OverviewRulerLaneLeft
	OverviewRulerLaneCenter = decoration.OverviewRulerLaneCenter
	OverviewRulerLaneRight  = decoration.OverviewRulerLaneRight
	OverviewRulerLaneFull   = decoration.OverviewRulerLaneFull
)

// DeltaDecorations atomically removes oldIDs and adds newDecs, owned by
// ownerID (0 for no particular owner), and returns the IDs allocated for
// newDecs in the same order they were given.
func (m *Model) DeltaDecorations(ownerID int, oldIDs []string, newDecs []NewDecoration) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkWritable("DeltaDecorations"); err != nil {
		return nil, err
	}
	return m.deltaDecorationsLocked(ownerID, oldIDs, newDecs)
}

func (m *Model) deltaDecorationsLocked(ownerID int, oldIDs []string, newDecs []NewDecoration) ([]string, error) {
	for _, nd := range newDecs {
		if nd.Options.OverviewRuler != nil && !decoration.ValidateOverviewRulerColor(nd.Options.OverviewRuler.Color) {
			return nil, newError(KindInvalidArgument, "DeltaDecorations", ErrInvalidOverviewRulerColor)
		}
	}
	ids, err := m.decorations.DeltaDecorations(m.buf, ownerID, oldIDs, newDecs)
	if err != nil {
		return nil, newError(KindInvalidArgument, "DeltaDecorations", err)
	}
	m.events.RecordDecorationsChanged()
	return ids, nil
}

// DecorationsAccessor is the handle a ChangeDecorations callback uses to
// mutate decorations; every call it makes is batched into the single
// onDidChangeDecorations event fired when the callback returns.
type DecorationsAccessor struct {
	m       *Model
	ownerID int
}

// AddDecoration adds one decoration and returns its allocated id.
func (a *DecorationsAccessor) AddDecoration(r buffer.Range, opts DecorationOptions) (string, error) {
	ids, err := a.m.deltaDecorationsLocked(a.ownerID, nil, []NewDecoration{{Range: r, Options: opts}})
	if err != nil || len(ids) == 0 {
		return "", err
	}
	return ids[0], nil
}

// RemoveDecoration removes one decoration by id.
func (a *DecorationsAccessor) RemoveDecoration(id string) error {
	_, err := a.m.deltaDecorationsLocked(a.ownerID, []string{id}, nil)
	return err
}

// ChangeDecoration replaces a decoration's range/options in place
// (remove + re-add under a new id, since ranges are immutable once
// inserted into the interval tree).
func (a *DecorationsAccessor) ChangeDecoration(id string, r buffer.Range, opts DecorationOptions) (string, error) {
	ids, err := a.m.deltaDecorationsLocked(a.ownerID, []string{id}, []NewDecoration{{Range: r, Options: opts}})
	if err != nil || len(ids) == 0 {
		return "", err
	}
	return ids[0], nil
}

// ChangeDecorations runs cb with exclusive access to a decorations
// accessor, batching every add/remove/change it performs into a single
// onDidChangeDecorations event fired once cb returns (mirroring
// editstack's group semantics for content edits, but for decorations).
func (m *Model) ChangeDecorations(ownerID int, cb func(*DecorationsAccessor) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkWritable("ChangeDecorations"); err != nil {
		return err
	}
	m.events.BeginDeferred()
	defer m.events.EndDeferred()
	return cb(&DecorationsAccessor{m: m, ownerID: ownerID})
}

// RemoveAllDecorationsWithOwnerID removes every decoration owned by
// ownerID across both interval trees.
func (m *Model) RemoveAllDecorationsWithOwnerID(ownerID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkWritable("RemoveAllDecorationsWithOwnerID"); err != nil {
		return err
	}
	removed := m.decorations.RemoveAllWithOwnerID(ownerID)
	if removed > 0 {
		m.events.RecordDecorationsChanged()
	}
	return nil
}

// GetDecorationRange rehydrates a single decoration's current range and
// options by its public ID, reporting false if it no longer exists.
func (m *Model) GetDecorationRange(id string) (Decoration, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.checkReadable("GetDecorationRange"); err != nil {
		return Decoration{}, false, err
	}
	d, ok := m.decorations.Resolve(m.buf, id)
	return d, ok, nil
}

// GetDecorationOptions returns a single decoration's options by its
// public ID, reporting false if it no longer resolves.
func (m *Model) GetDecorationOptions(id string) (DecorationOptions, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.checkReadable("GetDecorationOptions"); err != nil {
		return DecorationOptions{}, false, err
	}
	d, ok := m.decorations.Resolve(m.buf, id)
	if !ok {
		return DecorationOptions{}, false, nil
	}
	return d.Options, true, nil
}

// GetDecorationsInRange returns every non-overview-ruler decoration
// overlapping r.
func (m *Model) GetDecorationsInRange(r buffer.Range) ([]Decoration, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.checkReadable("GetDecorationsInRange"); err != nil {
		return nil, err
	}
	valid := buffer.NewRange(m.validatePositionLocked(r.Start), m.validatePositionLocked(r.End))
	decs, err := m.decorations.GetDecorationsInRange(m.buf, valid)
	if err != nil {
		return nil, newError(KindInvalidArgument, "GetDecorationsInRange", err)
	}
	return decs, nil
}

// GetLineDecorations returns every non-overview-ruler decoration
// overlapping the given 1-based line.
func (m *Model) GetLineDecorations(line int) ([]Decoration, error) {
	return m.GetLinesDecorations(line, line)
}

// GetLinesDecorations returns every non-overview-ruler decoration
// overlapping the 1-based, inclusive line range [startLine, endLine].
func (m *Model) GetLinesDecorations(startLine, endLine int) ([]Decoration, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.checkReadable("GetLinesDecorations"); err != nil {
		return nil, err
	}
	maxCol, err := m.buf.LineLength(endLine)
	if err != nil {
		return nil, newError(KindInvalidArgument, "GetLinesDecorations", err)
	}
	r := buffer.Range{
		Start: buffer.Position{Line: startLine, Column: 1},
		End:   buffer.Position{Line: endLine, Column: maxCol + 1},
	}
	decs, derr := m.decorations.GetDecorationsInRange(m.buf, r)
	if derr != nil {
		return nil, newError(KindInvalidArgument, "GetLinesDecorations", derr)
	}
	return decs, nil
}

// GetAllDecorations returns every decoration the model holds, ruler and
// non-ruler alike, filtered by GetOverviewRulerDecorations's owner-id
// rule for the ruler half.
func (m *Model) GetAllDecorations(ownerID int) ([]Decoration, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.checkReadable("GetAllDecorations"); err != nil {
		return nil, err
	}
	nonRuler, err := m.decorations.GetDecorationsInRange(m.buf, m.buf.FullRange())
	if err != nil {
		return nil, newError(KindInvalidArgument, "GetAllDecorations", err)
	}
	ruler, err := m.decorations.GetOverviewRulerDecorations(m.buf, ownerID)
	if err != nil {
		return nil, newError(KindInvalidArgument, "GetAllDecorations", err)
	}
	return append(nonRuler, ruler...), nil
}

// GetOverviewRulerDecorations returns every overview-ruler decoration
// visible to ownerID (see decoration.Tracker.GetOverviewRulerDecorations
// for the exact owner-filter semantics).
func (m *Model) GetOverviewRulerDecorations(ownerID int) ([]Decoration, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.checkReadable("GetOverviewRulerDecorations"); err != nil {
		return nil, err
	}
	decs, err := m.decorations.GetOverviewRulerDecorations(m.buf, ownerID)
	if err != nil {
		return nil, newError(KindInvalidArgument, "GetOverviewRulerDecorations", err)
	}
	return decs, nil
}
