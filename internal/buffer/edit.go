package buffer

import (
	"sort"
	"strings"
)

// EditOperation replaces the text in Range with Text. ForceMoveMarkers
// tells decoration trees to grow a touching zero-width decoration rather
// than leave it pinned, mirroring the facade's edit option of the same
// name.
type EditOperation struct {
	Range            Range
	Text             string
	ForceMoveMarkers bool
}

// RawChangeKind discriminates the line-level events ApplyEdits reports.
type RawChangeKind uint8

const (
	RawLineChanged RawChangeKind = iota
	RawLinesInserted
	RawLinesDeleted
	RawEOLChanged
)

// RawChange is a line-level mutation event. FromLine/ToLine are 1-based
// and inclusive. For RawLinesInserted the line numbers describe the
// lines' position at the moment they were inserted (consistent with
// replaying RawChanges in emission order against a mirror buffer); for
// RawLinesDeleted they describe the lines' position immediately before
// removal.
type RawChange struct {
	Kind     RawChangeKind
	FromLine int
	ToLine   int
	Lines    []string // new content for Changed/Inserted; nil for Deleted/EOLChanged
}

// ContentChange describes one submitted edit operation's effect in both
// position and flat-offset terms, computed against the buffer state
// before the batch was applied.
type ContentChange struct {
	Range            Range
	RangeOffset      Offset
	RangeLength      Offset
	Text             string
	ForceMoveMarkers bool
}

// ApplyEditsResult is the outcome of a successful ApplyEdits call.
type ApplyEditsResult struct {
	RawChanges                    []RawChange
	Changes                       []ContentChange
	ReverseEdits                  []EditOperation
	TrimAutoWhitespaceLineNumbers []int
}

type pendingOp struct {
	op           EditOperation
	originalIdx  int
	rangeOffset  Offset
	rangeLength  Offset
	oldText      string
}

// ApplyEdits validates and applies a batch of non-overlapping edit
// operations. Operations may be submitted in any order; overlapping
// ranges return ErrEditsOverlap and leave the buffer untouched.
//
// When trimAutoWhitespace is true, ApplyEditsResult.TrimAutoWhitespaceLineNumbers
// names every line touched by the batch whose final content is entirely
// whitespace, for the edit stack to optionally strip on the next edit.
func (b *Buffer) ApplyEdits(ops []EditOperation, trimAutoWhitespace bool) (ApplyEditsResult, error) {
	if len(ops) == 0 {
		return ApplyEditsResult{}, nil
	}

	pending := make([]pendingOp, len(ops))
	for i, op := range ops {
		if op.Range.Start.After(op.Range.End) {
			return ApplyEditsResult{}, ErrRangeInvalid
		}
		rangeOffset, err := b.OffsetAt(op.Range.Start)
		if err != nil {
			return ApplyEditsResult{}, err
		}
		endOffset, err := b.OffsetAt(op.Range.End)
		if err != nil {
			return ApplyEditsResult{}, err
		}
		oldText, err := b.ValueInRange(op.Range, EOLPreferenceTextDefined)
		if err != nil {
			return ApplyEditsResult{}, err
		}
		pending[i] = pendingOp{
			op:          op,
			originalIdx: i,
			rangeOffset: rangeOffset,
			rangeLength: endOffset - rangeOffset,
			oldText:     oldText,
		}
	}

	sorted := make([]pendingOp, len(pending))
	copy(sorted, pending)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].op.Range.Start.After(sorted[j].op.Range.Start)
	})
	for i := 1; i < len(sorted); i++ {
		if sorted[i].op.Range.End.After(sorted[i-1].op.Range.Start) {
			return ApplyEditsResult{}, ErrEditsOverlap
		}
	}

	changes := make([]ContentChange, len(ops))
	for _, p := range pending {
		changes[p.originalIdx] = ContentChange{
			Range:            p.op.Range,
			RangeOffset:      p.rangeOffset,
			RangeLength:      p.rangeLength,
			Text:             p.op.Text,
			ForceMoveMarkers: p.op.ForceMoveMarkers,
		}
	}

	reverseEdits := make([]EditOperation, len(ops))
	var rawChanges []RawChange
	type touched struct{ from, to, delta int }
	var touchedRanges []touched

	for _, p := range sorted {
		lineStart := p.op.Range.Start.Line
		lineEnd := p.op.Range.End.Line
		colStart := p.op.Range.Start.Column
		colEnd := p.op.Range.End.Column

		firstLine := b.lines[lineStart-1]
		lastLine := b.lines[lineEnd-1]
		prefix := firstLine[:utf16ColumnToByteIndex(firstLine, colStart-1)]
		suffix := lastLine[utf16ColumnToByteIndex(lastLine, colEnd-1):]

		combined := prefix + normalizeToLF(p.op.Text) + suffix
		newSplit := strings.Split(combined, "\n")

		oldSpan := lineEnd - lineStart + 1
		newSpan := len(newSplit)

		newLines := make([]string, 0, len(b.lines)-oldSpan+newSpan)
		newLines = append(newLines, b.lines[:lineStart-1]...)
		newLines = append(newLines, newSplit...)
		newLines = append(newLines, b.lines[lineEnd:]...)
		b.lines = newLines

		rawChanges = append(rawChanges, lineLevelEvents(lineStart, oldSpan, newSpan, newSplit)...)
		touchedRanges = append(touchedRanges, touched{
			from:  lineStart,
			to:    lineStart + newSpan - 1,
			delta: newSpan - oldSpan,
		})

		suffixUnits := utf16Units(suffix)
		endColumn := utf16Units(newSplit[newSpan-1]) - suffixUnits + 1
		reverseEdits[p.originalIdx] = EditOperation{
			Range: Range{
				Start: p.op.Range.Start,
				End:   Position{Line: lineStart + newSpan - 1, Column: endColumn},
			},
			Text: p.oldText,
		}
	}

	var trimLines []int
	if trimAutoWhitespace {
		suffixDelta := 0
		adjusted := make([]touched, len(touchedRanges))
		for i := len(touchedRanges) - 1; i >= 0; i-- {
			t := touchedRanges[i]
			adjusted[i] = touched{from: t.from + suffixDelta, to: t.to + suffixDelta}
			suffixDelta += t.delta
		}
		seen := map[int]bool{}
		for _, t := range adjusted {
			for l := t.from; l <= t.to && l >= 1 && l <= b.LineCount(); l++ {
				content, _ := b.LineContent(l)
				if content != "" && isAllWhitespace(content) && !seen[l] {
					seen[l] = true
					trimLines = append(trimLines, l)
				}
			}
		}
		sort.Ints(trimLines)
	}

	return ApplyEditsResult{
		RawChanges:                    rawChanges,
		Changes:                       changes,
		ReverseEdits:                  reverseEdits,
		TrimAutoWhitespaceLineNumbers: trimLines,
	}, nil
}

func isAllWhitespace(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' {
			return false
		}
	}
	return true
}

// lineLevelEvents decomposes one edit operation's line-span change into
// raw change events, in an order a sequential mirror replay reproduces.
func lineLevelEvents(lineStart, oldSpan, newSpan int, newSplit []string) []RawChange {
	switch {
	case oldSpan == 1 && newSpan == 1:
		return []RawChange{{Kind: RawLineChanged, FromLine: lineStart, ToLine: lineStart, Lines: newSplit[:1]}}
	case newSpan > oldSpan:
		events := []RawChange{{Kind: RawLineChanged, FromLine: lineStart, ToLine: lineStart, Lines: newSplit[:1]}}
		inserted := newSpan - oldSpan
		events = append(events, RawChange{
			Kind:     RawLinesInserted,
			FromLine: lineStart + 1,
			ToLine:   lineStart + inserted,
			Lines:    append([]string(nil), newSplit[1:1+inserted]...),
		})
		for k := 1; k < oldSpan; k++ {
			events = append(events, RawChange{
				Kind:     RawLineChanged,
				FromLine: lineStart + inserted + k,
				ToLine:   lineStart + inserted + k,
				Lines:    newSplit[inserted+k : inserted+k+1],
			})
		}
		return events
	default: // newSpan <= oldSpan, oldSpan > 1
		events := []RawChange{{Kind: RawLineChanged, FromLine: lineStart, ToLine: lineStart, Lines: newSplit[:1]}}
		for k := 1; k < newSpan; k++ {
			events = append(events, RawChange{
				Kind:     RawLineChanged,
				FromLine: lineStart + k,
				ToLine:   lineStart + k,
				Lines:    newSplit[k : k+1],
			})
		}
		if newSpan < oldSpan {
			events = append(events, RawChange{
				Kind:     RawLinesDeleted,
				FromLine: lineStart + newSpan,
				ToLine:   lineStart + oldSpan - 1,
			})
		}
		return events
	}
}
