package textmodel

import (
	"github.com/rivo/uniseg"

	"github.com/textkernel/textmodel/internal/buffer"
)

// ValidatePosition clamps pos into the document's bounds and, if it
// would land between the two halves of a UTF-16 surrogate pair, nudges
// it to the nearest boundary outside the pair.
func (m *Model) ValidatePosition(pos buffer.Position) (buffer.Position, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.checkReadable("ValidatePosition"); err != nil {
		return buffer.Position{}, err
	}
	return m.validatePositionLocked(pos), nil
}

func (m *Model) validatePositionLocked(pos buffer.Position) buffer.Position {
	clamped := m.buf.ClampPosition(pos)
	content, err := m.buf.LineContent(clamped.Line)
	if err != nil {
		return clamped
	}
	return buffer.Position{Line: clamped.Line, Column: nearestGraphemeColumn(content, clamped.Column)}
}

// nearestGraphemeColumn returns the closest UTF-16 column to col that
// falls on a grapheme cluster boundary in line, so validation never
// splits a surrogate pair (or a combining-mark cluster) in half.
func nearestGraphemeColumn(line string, col int) int {
	if col <= 1 {
		return 1
	}
	gr := uniseg.NewGraphemes(line)
	units := 1
	for gr.Next() {
		_, to := gr.Positions()
		clusterUnits := 0
		for _, r := range gr.Runes() {
			if r > 0xFFFF {
				clusterUnits += 2
			} else {
				clusterUnits++
			}
		}
		if col <= units {
			return units
		}
		if col < units+clusterUnits {
			// col lands inside this cluster: snap to the nearer edge.
			if col-units <= units+clusterUnits-col {
				return units
			}
			return units + clusterUnits
		}
		units += clusterUnits
		_ = to
	}
	return units
}

// ValidateRange validates both endpoints of r independently and
// reorders them if necessary so Start never follows End.
func (m *Model) ValidateRange(r buffer.Range) (buffer.Range, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.checkReadable("ValidateRange"); err != nil {
		return buffer.Range{}, err
	}
	start := m.validatePositionLocked(r.Start)
	end := m.validatePositionLocked(r.End)
	return buffer.NewRange(start, end), nil
}
