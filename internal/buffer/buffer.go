package buffer

import "strings"

// Buffer is a mutable sequence of lines. It is not safe for concurrent
// use; callers needing concurrency guarantees (the text model facade)
// serialize access themselves.
type Buffer struct {
	lines     []string
	eol       EOL
	eolForced bool
	bom       bool
	tabWidth  int
}

// New creates an empty single-line buffer.
func New(opts ...Option) *Buffer {
	return NewFromString("", opts...)
}

// NewFromString builds a buffer from text, auto-detecting the EOL
// sequence unless WithEOL was supplied.
func NewFromString(text string, opts ...Option) *Buffer {
	b := &Buffer{tabWidth: 4}
	for _, opt := range opts {
		opt(b)
	}
	if !b.eolForced {
		b.eol = DetectLineEnding(text)
	}
	b.lines = splitLines(text)
	return b
}

// splitLines breaks text into line contents with terminators stripped,
// normalizing any CRLF/CR to a single separator first.
func splitLines(text string) []string {
	normalized := normalizeToLF(text)
	return strings.Split(normalized, "\n")
}

// LineCount returns the number of lines in the buffer. An empty buffer
// has exactly one (empty) line, matching how a freshly-opened empty
// document is represented.
func (b *Buffer) LineCount() int { return len(b.lines) }

// LineContent returns the content of the given 1-based line, excluding
// its terminator.
func (b *Buffer) LineContent(line int) (string, error) {
	if line < 1 || line > len(b.lines) {
		return "", ErrLineOutOfRange
	}
	return b.lines[line-1], nil
}

// LineLength returns the length of the given 1-based line in UTF-16 code
// units.
func (b *Buffer) LineLength(line int) (int, error) {
	content, err := b.LineContent(line)
	if err != nil {
		return 0, err
	}
	return utf16Units(content), nil
}

// EOL returns the buffer's current line terminator.
func (b *Buffer) EOL() EOL { return b.eol }

// SetEOL overwrites the buffer's line terminator. It does not rewrite
// existing line contents (which never store terminators); it only
// changes what future serialization emits. Returns whether it changed.
func (b *Buffer) SetEOL(eol EOL) bool {
	if b.eol == eol {
		return false
	}
	b.eol = eol
	b.eolForced = true
	return true
}

// BOM reports whether the source document carried a byte-order mark.
func (b *Buffer) BOM() bool { return b.bom }

// SetBOM updates the byte-order-mark flag.
func (b *Buffer) SetBOM(present bool) { b.bom = present }

// TabWidth returns the configured tab width in columns.
func (b *Buffer) TabWidth() int { return b.tabWidth }

// SetTabWidth updates the stored tab width that TabWidth reports.
func (b *Buffer) SetTabWidth(width int) {
	if width > 0 {
		b.tabWidth = width
	}
}

// maxColumn returns the 1-based column one past the last code unit of
// the given 1-based line (i.e. its end-of-line column).
func (b *Buffer) maxColumn(line int) (int, error) {
	n, err := b.LineLength(line)
	if err != nil {
		return 0, err
	}
	return n + 1, nil
}

// ClampPosition adjusts pos into the valid range of the buffer: line
// clamped to [1, LineCount()], column clamped to [1, line length + 1].
func (b *Buffer) ClampPosition(pos Position) Position {
	if pos.Line < 1 {
		pos.Line = 1
	}
	if pos.Line > b.LineCount() {
		pos.Line = b.LineCount()
	}
	max, _ := b.maxColumn(pos.Line)
	if pos.Column < 1 {
		pos.Column = 1
	}
	if pos.Column > max {
		pos.Column = max
	}
	return pos
}

// OffsetAt converts a position into a flat UTF-16 code-unit offset.
func (b *Buffer) OffsetAt(pos Position) (Offset, error) {
	if pos.Line < 1 || pos.Line > b.LineCount() {
		return 0, ErrLineOutOfRange
	}
	max, _ := b.maxColumn(pos.Line)
	if pos.Column < 1 || pos.Column > max {
		return 0, ErrColumnOutOfRange
	}
	var offset Offset
	for l := 1; l < pos.Line; l++ {
		n, _ := b.LineLength(l)
		offset += Offset(n) + Offset(b.eol.Len())
	}
	offset += Offset(pos.Column - 1)
	return offset, nil
}

// PositionAt converts a flat UTF-16 code-unit offset into a position.
func (b *Buffer) PositionAt(offset Offset) (Position, error) {
	if offset < 0 {
		return Position{}, ErrOffsetOutOfRange
	}
	remaining := offset
	for l := 1; l <= b.LineCount(); l++ {
		n, _ := b.LineLength(l)
		lineSpan := Offset(n)
		eolSpan := Offset(b.eol.Len())
		if l == b.LineCount() {
			if remaining <= lineSpan {
				return Position{Line: l, Column: int(remaining) + 1}, nil
			}
			return Position{}, ErrOffsetOutOfRange
		}
		if remaining <= lineSpan {
			return Position{Line: l, Column: int(remaining) + 1}, nil
		}
		remaining -= lineSpan + eolSpan
		if remaining < 0 {
			// offset landed inside this line's terminator
			return Position{Line: l, Column: int(n) + 1}, nil
		}
	}
	return Position{}, ErrOffsetOutOfRange
}

// Length returns the total length of the buffer's text in UTF-16 code
// units, including terminators.
func (b *Buffer) Length() Offset {
	var total Offset
	for l := 1; l <= b.LineCount(); l++ {
		n, _ := b.LineLength(l)
		total += Offset(n)
		if l != b.LineCount() {
			total += Offset(b.eol.Len())
		}
	}
	return total
}

// ValueInRange returns the text spanned by r, using pref to choose the
// terminator emitted between lines.
func (b *Buffer) ValueInRange(r Range, pref EOLPreference) (string, error) {
	if r.Start.Line < 1 || r.End.Line > b.LineCount() {
		return "", ErrLineOutOfRange
	}
	if r.Start.After(r.End) {
		return "", ErrRangeInvalid
	}
	sep := b.eolString(pref)
	if r.Start.Line == r.End.Line {
		content, err := b.LineContent(r.Start.Line)
		if err != nil {
			return "", err
		}
		startByte := utf16ColumnToByteIndex(content, r.Start.Column-1)
		endByte := utf16ColumnToByteIndex(content, r.End.Column-1)
		return content[startByte:endByte], nil
	}
	var sb strings.Builder
	first, err := b.LineContent(r.Start.Line)
	if err != nil {
		return "", err
	}
	sb.WriteString(first[utf16ColumnToByteIndex(first, r.Start.Column-1):])
	for l := r.Start.Line + 1; l < r.End.Line; l++ {
		content, _ := b.LineContent(l)
		sb.WriteString(sep)
		sb.WriteString(content)
	}
	last, err := b.LineContent(r.End.Line)
	if err != nil {
		return "", err
	}
	sb.WriteString(sep)
	sb.WriteString(last[:utf16ColumnToByteIndex(last, r.End.Column-1)])
	return sb.String(), nil
}

// GetValue returns the buffer's entire text.
func (b *Buffer) GetValue(pref EOLPreference) string {
	full := Range{Start: Position{Line: 1, Column: 1}, End: Position{Line: b.LineCount(), Column: mustMaxColumn(b, b.LineCount())}}
	v, _ := b.ValueInRange(full, pref)
	return v
}

func mustMaxColumn(b *Buffer, line int) int {
	n, _ := b.maxColumn(line)
	return n
}

func (b *Buffer) eolString(pref EOLPreference) string {
	switch pref {
	case EOLPreferenceLF:
		return string(LF)
	case EOLPreferenceCRLF:
		return string(CRLF)
	default:
		return string(b.eol)
	}
}

// FullRange returns a range spanning the entire buffer.
func (b *Buffer) FullRange() Range {
	last := b.LineCount()
	return Range{Start: Position{Line: 1, Column: 1}, End: Position{Line: last, Column: mustMaxColumn(b, last)}}
}
