package textmodel

import (
	"regexp"

	"github.com/tidwall/gjson"

	"github.com/textkernel/textmodel/internal/buffer"
)

// defaultWordPattern mirrors a typical default word-boundary regex:
// alphanumerics and underscore are word characters.
const defaultWordPattern = `[A-Za-z0-9_]+`

// Word is a matched word span and its text.
type Word struct {
	Range buffer.Range
	Text  string
}

// LoadLanguageConfiguration installs bracket pairs and a word-boundary
// pattern from a small JSON document:
//
//	{"brackets": [["(", ")"], ["[", "]"]], "wordPattern": "[A-Za-z_]+"}
//
// This is the model's only language-configuration input; a full
// per-language registry is out of scope.
func (m *Model) LoadLanguageConfiguration(doc string) error {
	if !gjson.Valid(doc) {
		return newError(KindInvalidArgument, "LoadLanguageConfiguration", ErrInvalidLanguageConfig)
	}
	parsed := gjson.Parse(doc)

	var pairs [][2]string
	parsed.Get("brackets").ForEach(func(_, pair gjson.Result) bool {
		arr := pair.Array()
		if len(arr) == 2 {
			pairs = append(pairs, [2]string{arr[0].String(), arr[1].String()})
		}
		return true
	})

	pattern := defaultWordPattern
	if wp := parsed.Get("wordPattern"); wp.Exists() && wp.String() != "" {
		pattern = wp.String()
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return newError(KindInvalidArgument, "LoadLanguageConfiguration", err)
	}
	offSide := parsed.Get("offSide").Bool()

	m.mu.Lock()
	if err := m.checkReadable("LoadLanguageConfiguration"); err != nil {
		m.mu.Unlock()
		return err
	}
	m.brackets = make([]bracketPair, len(pairs))
	for i, p := range pairs {
		m.brackets[i] = bracketPair{Open: p[0], Close: p[1]}
	}
	m.wordPattern = pattern
	m.wordRe = re
	m.offSide = offSide
	cb := m.onLanguageConfigurationChanged
	m.mu.Unlock()

	if cb != nil {
		cb()
	}
	return nil
}

// GetWordAtPosition returns the word under pos, if any.
func (m *Model) GetWordAtPosition(pos buffer.Position) (Word, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.checkReadable("GetWordAtPosition"); err != nil {
		return Word{}, false, err
	}
	valid := m.validatePositionLocked(pos)
	return m.wordAtLocked(valid, false)
}

// GetWordUntilPosition returns the portion of the word under pos up to
// (not including) pos itself, useful for completion-prefix matching.
func (m *Model) GetWordUntilPosition(pos buffer.Position) (Word, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.checkReadable("GetWordUntilPosition"); err != nil {
		return Word{}, false, err
	}
	valid := m.validatePositionLocked(pos)
	return m.wordAtLocked(valid, true)
}

func (m *Model) wordAtLocked(pos buffer.Position, until bool) (Word, bool, error) {
	re := m.wordRe
	if re == nil {
		re = regexp.MustCompile(defaultWordPattern)
	}
	content, err := m.buf.LineContent(pos.Line)
	if err != nil {
		return Word{}, false, newError(KindInvalidArgument, "wordAt", err)
	}

	utf16ToByte, byteToUTF16 := buildColumnIndex(content)
	col0 := pos.Column - 1
	if col0 < 0 {
		col0 = 0
	}
	if col0 > len(utf16ToByte)-1 {
		col0 = len(utf16ToByte) - 1
	}
	if col0 < 0 {
		return Word{}, false, nil
	}
	byteOff := utf16ToByte[col0]

	locs := re.FindAllStringIndex(content, -1)
	for _, loc := range locs {
		if byteOff >= loc[0] && byteOff < loc[1] {
			startCol := byteToUTF16[loc[0]] + 1
			endCol := byteToUTF16[loc[1]] + 1
			if until && pos.Column < endCol {
				endCol = pos.Column
			}
			if endCol <= startCol {
				return Word{}, false, nil
			}
			text := sliceByColumns(content, utf16ToByte, startCol, endCol)
			return Word{
				Range: buffer.Range{
					Start: buffer.Position{Line: pos.Line, Column: startCol},
					End:   buffer.Position{Line: pos.Line, Column: endCol},
				},
				Text: text,
			}, true, nil
		}
	}
	return Word{}, false, nil
}

// buildColumnIndex returns two parallel slices converting between
// 0-based UTF-16 column index and byte offset in s.
func buildColumnIndex(s string) (utf16ToByte []int, byteToUTF16 []int) {
	byteToUTF16 = make([]int, len(s)+1)
	col := 0
	i := 0
	for _, r := range s {
		utf16ToByte = append(utf16ToByte, i)
		w := 1
		if r > 0xFFFF {
			w = 2
		}
		sz := len(string(r))
		for b := 0; b < sz; b++ {
			byteToUTF16[i+b] = col
		}
		i += sz
		col += w
	}
	utf16ToByte = append(utf16ToByte, len(s))
	byteToUTF16[len(s)] = col
	return utf16ToByte, byteToUTF16
}

func sliceByColumns(content string, utf16ToByte []int, startCol, endCol int) string {
	if startCol < 0 {
		startCol = 0
	}
	if endCol > len(utf16ToByte)-1 {
		endCol = len(utf16ToByte) - 1
	}
	return content[utf16ToByte[startCol]:utf16ToByte[endCol]]
}
