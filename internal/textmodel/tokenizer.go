package textmodel

import "github.com/textkernel/textmodel/internal/token"

// Tokenizer is re-exported from internal/token so callers configuring a
// Model never need to import that package directly.
type Tokenizer = token.Tokenizer

// Token is re-exported from internal/token.
type Token = token.Token

// noopTokenizer treats each line as a single untyped token; installed
// when no Tokenizer option is given so the tokenization pipeline (warm-up,
// background scheduling, invalidation) is always exercised even without a
// language plugged in.
type noopTokenizer struct{}

func (noopTokenizer) InitialState() token.State { return nil }

func (noopTokenizer) TokenizeLine(line string, startState token.State) ([]token.Token, token.State) {
	if line == "" {
		return nil, startState
	}
	return []token.Token{{StartColumn: 1, Type: "text"}}, startState
}
