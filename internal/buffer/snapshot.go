package buffer

// Snapshot is an immutable, structurally-shared view of a buffer's lines
// at a point in time. Taking a snapshot is O(1); the underlying line
// slice is only copied lazily, the next time the live buffer mutates.
type Snapshot struct {
	lines []string
	eol   EOL
	bom   bool
}

// Snapshot captures the buffer's current state. The live buffer detaches
// its backing slice on the next ApplyEdits, so the snapshot is unaffected
// by subsequent writes.
func (b *Buffer) Snapshot() Snapshot {
	return Snapshot{lines: b.lines, eol: b.eol, bom: b.bom}
}

// Text reconstructs the snapshot's full text.
func (s Snapshot) Text() string {
	sep := string(s.eol)
	out := ""
	for i, l := range s.lines {
		if i > 0 {
			out += sep
		}
		out += l
	}
	return out
}

// LineCount returns the number of lines captured in the snapshot.
func (s Snapshot) LineCount() int { return len(s.lines) }

// LineContent returns the content of a 1-based line in the snapshot.
func (s Snapshot) LineContent(line int) (string, error) {
	if line < 1 || line > len(s.lines) {
		return "", ErrLineOutOfRange
	}
	return s.lines[line-1], nil
}

// ToBuffer materializes the snapshot as a standalone, independently
// mutable Buffer, for callers (position-adjustment helpers) that need
// OffsetAt/PositionAt against a point-in-time state without holding a
// lock on the live buffer across an edit.
func (s Snapshot) ToBuffer() *Buffer {
	return &Buffer{lines: s.lines, eol: s.eol, bom: s.bom, tabWidth: 4}
}

// Restore rewinds the live buffer to the state captured by the snapshot.
// Nothing in this module calls it: undo replays reverse edits instead.
func (b *Buffer) Restore(s Snapshot) {
	b.lines = s.lines
	b.eol = s.eol
	b.bom = s.bom
}
