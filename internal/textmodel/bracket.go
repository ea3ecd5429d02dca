package textmodel

import (
	"strings"

	"github.com/textkernel/textmodel/internal/buffer"
)

// bracketPair is one open/close pair from a language configuration.
type bracketPair struct {
	Open  string
	Close string
}

// maxBracketSearchLength bounds how many code units matchBracket walks
// away from the cursor before giving up, the same ±window spec.md's
// bracket matching describes for per-token scanning.
const maxBracketSearchLength = 20_000

// ignoredBracketTokenTypes lists token-type substrings that disable
// bracket matching inside them (comments, strings, regex literals).
var ignoredBracketTokenTypes = []string{"comment", "string", "regex"}

func isIgnoredBracketToken(tokenType string) bool {
	for _, s := range ignoredBracketTokenTypes {
		if strings.Contains(tokenType, s) {
			return true
		}
	}
	return false
}

// SetBrackets installs the bracket pairs used by MatchBracket and the
// bracket-aware search helpers. The open/close strings are matched as
// literal text, since no language-configuration registry exists in this
// module — see the language configuration loader in words.go for how
// this slice is usually populated.
func (m *Model) SetBrackets(pairs [][2]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.brackets = make([]bracketPair, len(pairs))
	for i, p := range pairs {
		m.brackets[i] = bracketPair{Open: p[0], Close: p[1]}
	}
}

// tokenAt returns the token covering col (1-based) on a tokenized line,
// and the token before it (prev, with prevOK reporting whether there is
// one).
func tokenAt(tokens []Token, lineLen, col int) (tok Token, ok bool, prevOK bool, prev Token) {
	for i, t := range tokens {
		end := lineLen + 1
		if i+1 < len(tokens) {
			end = tokens[i+1].StartColumn
		}
		if col >= t.StartColumn && col < end {
			if i > 0 {
				prev, prevOK = tokens[i-1], true
			}
			return t, true, prevOK, prev
		}
	}
	return Token{}, false, false, Token{}
}

// BracketMatch is a matched pair of bracket ranges.
type BracketMatch struct {
	Open  buffer.Range
	Close buffer.Range
}

// MatchBracket finds the bracket pair surrounding pos, searching in
// both directions from whichever bracket character sits at or just
// before pos. It returns ok=false if pos isn't adjacent to a bracket
// or no match is found within the search window.
func (m *Model) MatchBracket(pos buffer.Position) (BracketMatch, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.checkReadable("MatchBracket"); err != nil {
		return BracketMatch{}, false, err
	}
	if len(m.brackets) == 0 {
		return BracketMatch{}, false, nil
	}
	valid := m.validatePositionLocked(pos)

	for _, col := range []int{valid.Column, valid.Column - 1} {
		if col < 1 {
			continue
		}
		if match, ok := m.matchBracketAt(valid.Line, col); ok {
			return match, true, nil
		}
	}
	return BracketMatch{}, false, nil
}

func (m *Model) matchBracketAt(line, col int) (BracketMatch, bool) {
	content, err := m.buf.LineContent(line)
	if err != nil {
		return BracketMatch{}, false
	}
	tokens, terr := m.tokens.GetTokens(line)
	if terr != nil {
		tokens = nil
	}
	tok, ok, _, _ := tokenAt(tokens, utf16Len(content), col)
	if ok && isIgnoredBracketToken(tok.Type) {
		return BracketMatch{}, false
	}

	ch := charAtColumn(content, col)
	if ch == "" {
		return BracketMatch{}, false
	}
	for _, bp := range m.brackets {
		if ch == bp.Open {
			return m.searchBracket(line, col, bp, true)
		}
		if ch == bp.Close {
			return m.searchBracket(line, col, bp, false)
		}
	}
	return BracketMatch{}, false
}

// charAtColumn returns the character (one whole rune, two UTF-16 code
// units for an astral one) starting at the 1-based column, as a string.
// It is empty past end of line or when col falls inside a surrogate pair.
func charAtColumn(line string, col int) string {
	units := 1
	for _, r := range line {
		w := 1
		if r > 0xFFFF {
			w = 2
		}
		if col == units {
			return string(r)
		}
		units += w
	}
	return ""
}

// searchBracket walks forward (from an open bracket) or backward (from
// a close bracket), counting nested occurrences of the same pair,
// skipping ignored token types, until it finds the match or exhausts
// maxBracketSearchLength code units.
func (m *Model) searchBracket(line, col int, bp bracketPair, forward bool) (BracketMatch, bool) {
	openRange := buffer.Range{
		Start: buffer.Position{Line: line, Column: col},
		End:   buffer.Position{Line: line, Column: col + utf16Len(bp.Open)},
	}
	if !forward {
		openRange = buffer.Range{
			Start: buffer.Position{Line: line, Column: col},
			End:   buffer.Position{Line: line, Column: col + utf16Len(bp.Close)},
		}
	}

	depth := 1
	curLine := line
	scanned := 0

	lineCount := m.buf.LineCount()
	if forward {
		col += utf16Len(bp.Open)
	} else {
		col -= 1
	}

	for scanned < maxBracketSearchLength {
		content, err := m.buf.LineContent(curLine)
		if err != nil {
			return BracketMatch{}, false
		}
		lineLen := utf16Len(content)
		tokens, _ := m.tokens.GetTokens(curLine)

		if forward {
			for col <= lineLen {
				scanned++
				if scanned > maxBracketSearchLength {
					return BracketMatch{}, false
				}
				tok, ok, _, _ := tokenAt(tokens, lineLen, col)
				skip := ok && isIgnoredBracketToken(tok.Type)
				if !skip {
					if matchAt(content, col, bp.Open) {
						depth++
						col += utf16Len(bp.Open)
						continue
					}
					if matchAt(content, col, bp.Close) {
						depth--
						if depth == 0 {
							return BracketMatch{
								Open:  openRange,
								Close: buffer.Range{Start: buffer.Position{Line: curLine, Column: col}, End: buffer.Position{Line: curLine, Column: col + utf16Len(bp.Close)}},
							}, true
						}
						col += utf16Len(bp.Close)
						continue
					}
				}
				col++
			}
			curLine++
			if curLine > lineCount {
				return BracketMatch{}, false
			}
			col = 1
		} else {
			for col >= 1 {
				scanned++
				if scanned > maxBracketSearchLength {
					return BracketMatch{}, false
				}
				tok, ok, _, _ := tokenAt(tokens, lineLen, col)
				skip := ok && isIgnoredBracketToken(tok.Type)
				if !skip {
					if matchAt(content, col, bp.Close) {
						depth++
						col--
						continue
					}
					if matchAt(content, col, bp.Open) {
						depth--
						if depth == 0 {
							return BracketMatch{
								Open:  buffer.Range{Start: buffer.Position{Line: curLine, Column: col}, End: buffer.Position{Line: curLine, Column: col + utf16Len(bp.Open)}},
								Close: openRange,
							}, true
						}
						col--
						continue
					}
				}
				col--
			}
			curLine--
			if curLine < 1 {
				return BracketMatch{}, false
			}
			prevContent, perr := m.buf.LineContent(curLine)
			if perr != nil {
				return BracketMatch{}, false
			}
			col = utf16Len(prevContent)
		}
	}
	return BracketMatch{}, false
}

// FindPrevBracket scans backward from pos for the nearest bracket
// character (open or close, of any configured pair) and returns the
// pair it matches to, same as MatchBracket would from that character's
// own position.
func (m *Model) FindPrevBracket(pos buffer.Position) (BracketMatch, bool, error) {
	return m.scanForBracket(pos, false)
}

// FindNextBracket scans forward from pos for the nearest bracket
// character (open or close, of any configured pair) and returns the
// pair it matches to, same as MatchBracket would from that character's
// own position.
func (m *Model) FindNextBracket(pos buffer.Position) (BracketMatch, bool, error) {
	return m.scanForBracket(pos, true)
}

func (m *Model) scanForBracket(pos buffer.Position, forward bool) (BracketMatch, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.checkReadable("FindBracket"); err != nil {
		return BracketMatch{}, false, err
	}
	if len(m.brackets) == 0 {
		return BracketMatch{}, false, nil
	}
	valid := m.validatePositionLocked(pos)
	line := valid.Line
	col := valid.Column
	lineCount := m.buf.LineCount()
	scanned := 0

	for scanned < maxBracketSearchLength {
		content, err := m.buf.LineContent(line)
		if err != nil {
			return BracketMatch{}, false, nil
		}
		lineLen := utf16Len(content)
		if forward {
			for ; col <= lineLen; col++ {
				scanned++
				ch := charAtColumn(content, col)
				if match, ok := m.matchBracketAt(line, col); ok && ch != "" {
					return match, true, nil
				}
			}
			line++
			if line > lineCount {
				return BracketMatch{}, false, nil
			}
			col = 1
		} else {
			if col > lineLen {
				col = lineLen
			}
			for ; col >= 1; col-- {
				scanned++
				ch := charAtColumn(content, col)
				if match, ok := m.matchBracketAt(line, col); ok && ch != "" {
					return match, true, nil
				}
			}
			line--
			if line < 1 {
				return BracketMatch{}, false, nil
			}
			prevContent, perr := m.buf.LineContent(line)
			if perr != nil {
				return BracketMatch{}, false, nil
			}
			col = utf16Len(prevContent)
		}
	}
	return BracketMatch{}, false, nil
}

// matchAt reports whether needle's UTF-16 text sits at col in line.
func matchAt(line string, col int, needle string) bool {
	if needle == "" {
		return false
	}
	actual := substrAtColumn(line, col, utf16Len(needle))
	return actual == needle
}

// substrAtColumn extracts n UTF-16 code units of content starting at
// the 1-based column col.
func substrAtColumn(line string, col, n int) string {
	units := 1
	var b strings.Builder
	for _, r := range line {
		w := 1
		if r > 0xFFFF {
			w = 2
		}
		if units >= col && units < col+n {
			b.WriteRune(r)
		}
		if units >= col+n {
			break
		}
		units += w
	}
	return b.String()
}
