package buffer

import "unicode/utf16"

// utf16Units returns the number of UTF-16 code units s would occupy when
// re-encoded, without allocating the encoded form.
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

// utf16ColumnToByteIndex converts a 0-based UTF-16 code-unit column
// within line into the corresponding byte index into the UTF-8 string.
// A column beyond the end of the line clamps to len(line).
func utf16ColumnToByteIndex(line string, col int) int {
	if col <= 0 {
		return 0
	}
	units := 0
	for i, r := range line {
		if units >= col {
			return i
		}
		if r > 0xFFFF {
			units += 2
		} else {
			units++
		}
	}
	return len(line)
}

// byteIndexToUTF16Column converts a byte index within line (assumed to
// land on a rune boundary) into a 0-based UTF-16 code-unit column.
func byteIndexToUTF16Column(line string, byteIdx int) int {
	if byteIdx <= 0 {
		return 0
	}
	col := 0
	for i, r := range line {
		if i >= byteIdx {
			break
		}
		if r > 0xFFFF {
			col += 2
		} else {
			col++
		}
	}
	return col
}

// isLowSurrogateBoundary reports whether splitting line at UTF-16 column
// col would fall between a surrogate pair.
func isLowSurrogateBoundary(line string, col int) bool {
	if col <= 0 {
		return false
	}
	units := 0
	for _, r := range line {
		if r > 0xFFFF {
			lead, _ := utf16.EncodeRune(r)
			_ = lead
			if units+1 == col {
				return true
			}
			units += 2
		} else {
			units++
		}
		if units > col {
			return false
		}
	}
	return false
}
