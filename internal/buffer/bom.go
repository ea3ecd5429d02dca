package buffer

import (
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// NewFromBytes builds a buffer from raw bytes, detecting and stripping a
// UTF-8 or UTF-16 byte-order mark and decoding UTF-16 content to the
// buffer's native UTF-8 storage. WithBOM is set automatically to match
// what was found; an explicit WithBOM option overrides it.
func NewFromBytes(raw []byte, opts ...Option) (*Buffer, error) {
	text, hadBOM, err := decodeBOM(raw)
	if err != nil {
		return nil, err
	}
	b := NewFromString(text, append([]Option{WithBOM(hadBOM)}, opts...)...)
	return b, nil
}

// decodeBOM inspects raw for a UTF-8, UTF-16LE, or UTF-16BE byte-order
// mark, decodes accordingly, and reports whether one was found.
func decodeBOM(raw []byte) (string, bool, error) {
	switch {
	case len(raw) >= 3 && raw[0] == 0xEF && raw[1] == 0xBB && raw[2] == 0xBF:
		return string(raw[3:]), true, nil
	case len(raw) >= 2 && raw[0] == 0xFF && raw[1] == 0xFE:
		return decodeUTF16(raw, unicode.LittleEndian)
	case len(raw) >= 2 && raw[0] == 0xFE && raw[1] == 0xFF:
		return decodeUTF16(raw, unicode.BigEndian)
	default:
		return string(raw), false, nil
	}
}

func decodeUTF16(raw []byte, endian unicode.Endianness) (string, bool, error) {
	decoder := unicode.UTF16(endian, unicode.ExpectBOM).NewDecoder()
	out, _, err := transform.Bytes(decoder, raw)
	if err != nil {
		return "", false, err
	}
	return string(out), true, nil
}

// EncodeWithBOM serializes text, prepending a UTF-8 byte-order mark if
// b.bom is set.
func (b *Buffer) EncodeWithBOM(text string) []byte {
	if !b.bom {
		return []byte(text)
	}
	const utf8BOM = "\xef\xbb\xbf"
	return []byte(utf8BOM + text)
}
