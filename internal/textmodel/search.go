package textmodel

import (
	"regexp"

	"github.com/textkernel/textmodel/internal/buffer"
)

// FindMatch is one search hit.
type FindMatch struct {
	Range   buffer.Range
	Matches []string
}

// SearchOptions configures FindMatches and the FindNext/PrevMatch pair.
type SearchOptions struct {
	IsRegex            bool
	MatchCase          bool
	WholeWord          bool
	CaptureMatches     bool
	// Limit caps the result count; 0 means DefaultSearchResultLimit.
	Limit int
}

// FindMatches returns every match of searchString within r (or the
// whole document if r is the zero Range), capped at opts.Limit (or
// DefaultSearchResultLimit if unset).
func (m *Model) FindMatches(searchString string, r buffer.Range, opts SearchOptions) ([]FindMatch, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.checkReadable("FindMatches"); err != nil {
		return nil, err
	}
	re, err := compileSearch(searchString, opts)
	if err != nil {
		return nil, newError(KindInvalidArgument, "FindMatches", err)
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultSearchResultLimit
	}

	searchRange := r
	if searchRange == (buffer.Range{}) {
		searchRange = m.buf.FullRange()
	} else {
		searchRange = buffer.NewRange(m.validatePositionLocked(searchRange.Start), m.validatePositionLocked(searchRange.End))
	}

	var out []FindMatch
	for line := searchRange.Start.Line; line <= searchRange.End.Line && len(out) < limit; line++ {
		content, lerr := m.buf.LineContent(line)
		if lerr != nil {
			continue
		}
		fromCol, toCol := 1, utf16Len(content)+1
		if line == searchRange.Start.Line {
			fromCol = searchRange.Start.Column
		}
		if line == searchRange.End.Line {
			toCol = searchRange.End.Column
		}

		byteStart := columnToByte(content, fromCol)
		byteEnd := columnToByte(content, toCol)
		if byteStart > byteEnd || byteStart > len(content) {
			continue
		}
		if byteEnd > len(content) {
			byteEnd = len(content)
		}
		sub := content[byteStart:byteEnd]

		locs := re.FindAllStringSubmatchIndex(sub, -1)
		for _, loc := range locs {
			if len(out) >= limit {
				break
			}
			startCol := byteToColumn(content, byteStart+loc[0])
			endCol := byteToColumn(content, byteStart+loc[1])
			match := FindMatch{Range: buffer.Range{
				Start: buffer.Position{Line: line, Column: startCol},
				End:   buffer.Position{Line: line, Column: endCol},
			}}
			if opts.CaptureMatches {
				for g := 0; g < len(loc)/2; g++ {
					if loc[2*g] < 0 {
						match.Matches = append(match.Matches, "")
						continue
					}
					match.Matches = append(match.Matches, sub[loc[2*g]:loc[2*g+1]])
				}
			}
			out = append(out, match)
		}
	}
	return out, nil
}

// FindNextMatch returns the first match at or after pos, wrapping to
// the document start if nothing is found before the end.
func (m *Model) FindNextMatch(searchString string, pos buffer.Position, opts SearchOptions) (FindMatch, bool, error) {
	return m.findAdjacentMatch(searchString, pos, opts, true)
}

// FindPreviousMatch returns the last match that starts strictly before
// pos, wrapping to the document end if nothing is found before it.
func (m *Model) FindPreviousMatch(searchString string, pos buffer.Position, opts SearchOptions) (FindMatch, bool, error) {
	return m.findAdjacentMatch(searchString, pos, opts, false)
}

func (m *Model) findAdjacentMatch(searchString string, pos buffer.Position, opts SearchOptions, forward bool) (FindMatch, bool, error) {
	all, err := m.FindMatches(searchString, buffer.Range{}, SearchOptions{
		IsRegex: opts.IsRegex, MatchCase: opts.MatchCase, WholeWord: opts.WholeWord,
		CaptureMatches: opts.CaptureMatches, Limit: 0,
	})
	if err != nil || len(all) == 0 {
		return FindMatch{}, false, err
	}
	if forward {
		for _, fm := range all {
			if !fm.Range.Start.Before(pos) {
				return fm, true, nil
			}
		}
		return all[0], true, nil
	}
	for i := len(all) - 1; i >= 0; i-- {
		if all[i].Range.Start.Before(pos) {
			return all[i], true, nil
		}
	}
	return all[len(all)-1], true, nil
}

func compileSearch(searchString string, opts SearchOptions) (*regexp.Regexp, error) {
	pattern := searchString
	if !opts.IsRegex {
		pattern = regexp.QuoteMeta(pattern)
	}
	if opts.WholeWord {
		pattern = `\b(?:` + pattern + `)\b`
	}
	if !opts.MatchCase {
		pattern = `(?i)` + pattern
	}
	return regexp.Compile(pattern)
}

func columnToByte(line string, col int) int {
	units := 1
	for i, r := range line {
		if col <= units {
			return i
		}
		w := 1
		if r > 0xFFFF {
			w = 2
		}
		units += w
	}
	return len(line)
}

func byteToColumn(line string, byteOff int) int {
	units := 1
	i := 0
	for _, r := range line {
		if i >= byteOff {
			return units
		}
		w := 1
		if r > 0xFFFF {
			w = 2
		}
		units += w
		i += len(string(r))
	}
	return units
}
