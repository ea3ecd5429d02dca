package token

import "sync"

// DefaultTooLargeLineCount is the line-count threshold above which a
// buffer is marked too large to tokenize.
const DefaultTooLargeLineCount = 300_000

// DefaultTooLargeByteSize is the byte-size threshold above which a
// buffer is marked too large to tokenize.
const DefaultTooLargeByteSize = 20 * 1024 * 1024

// DefaultWarmUpLines is how many lines are tokenized synchronously as
// soon as a store is created, so the initial viewport never waits on
// the background scheduler.
const DefaultWarmUpLines = 100

type lineState struct {
	tokens   []Token
	endState State
	valid    bool
}

// Store holds per-line token caches for one buffer.
type Store struct {
	mu sync.Mutex

	tokenizer Tokenizer
	read      LineReader

	lines []lineState
	// invalidFrom is the 0-based index of the first line whose tokens
	// are stale or were never computed. Every line before it is valid.
	invalidFrom int

	tooLarge          bool
	tooLargeLineCount int
	tooLargeByteSize  int
}

// NewStore creates a token store for a buffer with lineCount lines
// totaling byteSize bytes. If either exceeds the configured threshold
// the store is marked too large and never tokenizes.
func NewStore(tokenizer Tokenizer, read LineReader, lineCount, byteSize int) *Store {
	s := &Store{
		tokenizer:         tokenizer,
		read:              read,
		tooLargeLineCount: DefaultTooLargeLineCount,
		tooLargeByteSize:  DefaultTooLargeByteSize,
	}
	s.Reset(lineCount, byteSize)
	return s
}

// Reset re-sizes the store to lineCount lines and re-evaluates the
// too-large guard, invalidating all cached tokens.
func (s *Store) Reset(lineCount, byteSize int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tooLarge = lineCount > s.tooLargeLineCount || byteSize > s.tooLargeByteSize
	s.lines = make([]lineState, lineCount)
	s.invalidFrom = 0
}

// TooLarge reports whether the buffer exceeded a tokenization
// threshold.
func (s *Store) TooLarge() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tooLarge
}

// LineCount returns the number of lines currently tracked.
func (s *Store) LineCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines)
}

// InvalidateLanguage marks every line invalid, used when the language
// configuration (and therefore the tokenizer) changes.
func (s *Store) InvalidateLanguage(tokenizer Tokenizer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokenizer = tokenizer
	for i := range s.lines {
		s.lines[i] = lineState{}
	}
	s.invalidFrom = 0
}

// ApplyEdit adjusts the line slice for an edit that replaced the span
// [fromLine, toLine] (1-based, inclusive, pre-edit numbering) with
// newLineCount lines, and marks the edited region (and everything after
// it, since lexer state can propagate arbitrarily far forward) invalid.
func (s *Store) ApplyEdit(fromLine, toLine, newLineCount int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tooLarge {
		return
	}
	from := fromLine - 1
	to := toLine - 1
	if from < 0 {
		from = 0
	}
	if to >= len(s.lines) {
		to = len(s.lines) - 1
	}
	replacement := make([]lineState, newLineCount)
	merged := make([]lineState, 0, len(s.lines)-(to-from+1)+newLineCount)
	merged = append(merged, s.lines[:from]...)
	merged = append(merged, replacement...)
	if to+1 <= len(s.lines) {
		merged = append(merged, s.lines[to+1:]...)
	}
	s.lines = merged
	for i := from + newLineCount; i < len(s.lines); i++ {
		s.lines[i].valid = false
	}
	if from < s.invalidFrom {
		s.invalidFrom = from
	}
}

// HasLinesToTokenize reports whether any line still needs tokenizing.
func (s *Store) HasLinesToTokenize() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.tooLarge && s.invalidFrom < len(s.lines)
}

// IsCheapToTokenize reports whether line (1-based) is already valid, so
// fetching its tokens requires no work.
func (s *Store) IsCheapToTokenize(line int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := line - 1
	return idx >= 0 && idx < len(s.lines) && s.lines[idx].valid
}

// TokenizeOneLine tokenizes the single line at the current invalidation
// frontier, advancing it by one. Returns false if there was nothing to
// do (too large, or no invalid lines remain).
func (s *Store) TokenizeOneLine() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokenizeOneLocked()
}

func (s *Store) tokenizeOneLocked() bool {
	if s.tooLarge || s.invalidFrom >= len(s.lines) {
		return false
	}
	idx := s.invalidFrom
	startState := s.tokenizer.InitialState()
	if idx > 0 && s.lines[idx-1].valid {
		startState = s.lines[idx-1].endState
	}
	content, err := s.read(idx + 1)
	if err != nil {
		s.invalidFrom++
		return true
	}
	tokens, endState := s.tokenizer.TokenizeLine(content, startState)
	s.lines[idx] = lineState{tokens: tokens, endState: endState, valid: true}
	s.invalidFrom++
	return true
}

// UpdateTokensUntilLine tokenizes forward, synchronously, until line
// (1-based, inclusive) is valid or there is nothing left to do.
func (s *Store) UpdateTokensUntilLine(line int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for s.invalidFrom < line && s.invalidFrom < len(s.lines) {
		if !s.tokenizeOneLocked() {
			return
		}
	}
}

// WarmUp synchronously tokenizes the first n lines (or fewer if the
// buffer is shorter), intended to run once right after a store is
// created so the initial viewport never blocks on the background
// scheduler.
func (s *Store) WarmUp(n int) {
	s.UpdateTokensUntilLine(n)
}

// GetTokens returns the tokens for line (1-based). If the line is
// already valid it returns the cached tokens; otherwise it returns a
// single-token placeholder and leaves the actual tokenizing to the
// background scheduler (or to an explicit UpdateTokensUntilLine/
// WarmUp call) — it never tokenizes synchronously itself. A too-large
// buffer always reports the placeholder, since tokenization is
// permanently disabled for it.
func (s *Store) GetTokens(line int) ([]Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if line < 1 || line > len(s.lines) {
		return nil, ErrLineOutOfRange
	}
	if s.tooLarge || !s.lines[line-1].valid {
		return placeholderTokens(), nil
	}
	return append([]Token(nil), s.lines[line-1].tokens...), nil
}
