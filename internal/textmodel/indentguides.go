package textmodel

import "github.com/textkernel/textmodel/internal/buffer"

// indentWidth returns a line's leading-whitespace width expanded by
// tabSize (tabs advance to the next tabSize stop, spaces advance by
// one), divided by tabSize. blank reports whether the line has no
// non-whitespace content at all.
func indentWidth(content string, tabSize int) (level int, blank bool) {
	col := 0
	for _, r := range content {
		switch r {
		case '\t':
			col += tabSize - (col % tabSize)
		case ' ':
			col++
		default:
			return col / tabSize, false
		}
	}
	return 0, true
}

// GetLinesIndentGuides computes the indent-guide level for each line in
// [startLine, endLine] (1-based, inclusive). A content line's guide is
// one more than its own indent level. A blank line inherits its guide
// by sandwiching between the nearest previous and next non-blank
// lines, taking the smaller of their two levels; under the off-side
// rule (set via LoadLanguageConfiguration's "offSide" field, for
// languages where a dedented line can still open a new indented
// region) a blank line whose next content line is more indented than
// its previous one uses the next line's level instead.
func (m *Model) GetLinesIndentGuides(startLine, endLine int) ([]int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.checkReadable("GetLinesIndentGuides"); err != nil {
		return nil, err
	}
	lineCount := m.buf.LineCount()
	if startLine < 1 || endLine < startLine || endLine > lineCount {
		return nil, newError(KindInvalidArgument, "GetLinesIndentGuides", buffer.ErrLineOutOfRange)
	}

	levels := make([]int, lineCount+1)
	blank := make([]bool, lineCount+1)
	for l := 1; l <= lineCount; l++ {
		content, err := m.buf.LineContent(l)
		if err != nil {
			return nil, newError(KindInternal, "GetLinesIndentGuides", err)
		}
		lvl, isBlank := indentWidth(content, m.tabSize)
		levels[l] = lvl
		blank[l] = isBlank
	}

	out := make([]int, 0, endLine-startLine+1)
	for l := startLine; l <= endLine; l++ {
		if !blank[l] {
			out = append(out, levels[l]+1)
			continue
		}

		above, haveAbove := -1, false
		for p := l - 1; p >= 1; p-- {
			if !blank[p] {
				above, haveAbove = levels[p], true
				break
			}
		}
		below, haveBelow := -1, false
		for n := l + 1; n <= lineCount; n++ {
			if !blank[n] {
				below, haveBelow = levels[n], true
				break
			}
		}

		switch {
		case !haveAbove && !haveBelow:
			out = append(out, 0)
		case !haveAbove:
			out = append(out, below+1)
		case !haveBelow:
			out = append(out, above+1)
		case m.offSide && below > above:
			out = append(out, below+1)
		default:
			min := above
			if below < min {
				min = below
			}
			out = append(out, min+1)
		}
	}
	return out, nil
}
