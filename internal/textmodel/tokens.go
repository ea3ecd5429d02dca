package textmodel

// GetLineTokens returns the tokens for a 1-based line. If the line is
// already valid it returns the real tokens; otherwise it returns a
// single-token placeholder immediately and leaves actual tokenization
// to the background scheduler — callers that need a line tokenized
// right now should use ForceTokenization instead.
//
// This does not hold Model's lock while reading from the store: the
// token store manages its own locking and calls back into the buffer
// (via a line reader that takes Model's read lock internally) to fetch
// line content, so holding Model's lock here too would risk a
// same-goroutine double-RLock if a writer happened to be queued in
// between.
func (m *Model) GetLineTokens(line int) ([]Token, error) {
	if m.IsDisposed() {
		return nil, newError(KindModelDisposed, "GetLineTokens", ErrDisposed)
	}
	toks, err := m.tokens.GetTokens(line)
	if err != nil {
		return nil, newError(KindInvalidArgument, "GetLineTokens", err)
	}
	return toks, nil
}

// IsCheapToTokenizeLine reports whether line's tokens are already
// computed, with no background or synchronous work required.
func (m *Model) IsCheapToTokenizeLine(line int) bool {
	return m.tokens.IsCheapToTokenize(line)
}

// IsTooLargeForTokenization reports whether this model's content
// exceeded the tokenizer's size guard at construction time.
func (m *Model) IsTooLargeForTokenization() bool {
	return m.tokens.TooLarge()
}

// SetTokenizer replaces the tokenizer (e.g. in response to a language
// change) and invalidates every cached line.
func (m *Model) SetTokenizer(t Tokenizer) {
	m.tokens.InvalidateLanguage(t)
	m.scheduler.Schedule()
}

// ForceTokenization synchronously tokenizes every line up to and
// including line, bypassing the background scheduler's budget. Meant
// for a host that needs a line's tokens right now (e.g. printing,
// or a synchronous bracket match) rather than waiting for the next
// scheduled tick.
func (m *Model) ForceTokenization(line int) error {
	if m.IsDisposed() {
		return newError(KindModelDisposed, "ForceTokenization", ErrDisposed)
	}
	m.tokens.UpdateTokensUntilLine(line)
	return nil
}

// TokenizeIfCheap returns line's tokens only if they are already
// computed (IsCheapToTokenizeLine), and nil, false otherwise. It never
// tokenizes anything itself, so it never forces synchronous work.
func (m *Model) TokenizeIfCheap(line int) ([]Token, bool, error) {
	if m.IsDisposed() {
		return nil, false, newError(KindModelDisposed, "TokenizeIfCheap", ErrDisposed)
	}
	if !m.tokens.IsCheapToTokenize(line) {
		return nil, false, nil
	}
	toks, err := m.tokens.GetTokens(line)
	if err != nil {
		return nil, false, newError(KindInvalidArgument, "TokenizeIfCheap", err)
	}
	return toks, true, nil
}
