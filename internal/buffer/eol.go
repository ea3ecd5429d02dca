package buffer

import "strings"

// EOL is the line terminator a buffer stores between lines. Only the two
// sequences spec'd for the document model are supported; a bare "\r" is
// normalized to LF on ingestion (see DetectLineEnding).
type EOL string

const (
	LF   EOL = "\n"
	CRLF EOL = "\r\n"
)

// Len returns the number of UTF-16 code units the terminator occupies.
func (e EOL) Len() int { return len(e) }

// DetectLineEnding inspects text and returns the dominant EOL sequence:
// CRLF if strictly more CRLF pairs than bare LFs are present, LF
// otherwise (including text with no terminator at all, and text with a
// single line).
func DetectLineEnding(text string) EOL {
	crlf := strings.Count(text, "\r\n")
	totalLF := strings.Count(text, "\n")
	if crlf > 0 && crlf == totalLF {
		return CRLF
	}
	if crlf*2 > totalLF {
		return CRLF
	}
	return LF
}

// normalizeToLF rewrites any "\r\n" or bare "\r" in s to "\n" so callers
// can split on a single separator.
func normalizeToLF(s string) string {
	if !strings.ContainsRune(s, '\r') {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return s
}
