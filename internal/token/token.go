package token

// State is an opaque, comparable lexer state carried from the end of
// one line to the start of the next (e.g. "inside a block comment").
// Tokenizers that are line-local can use a single shared zero value.
type State any

// Token is one lexical token within a line. StartColumn is the 1-based
// UTF-16 column where the token begins; it runs until the next token's
// StartColumn, or the end of the line for the last token.
type Token struct {
	StartColumn int
	Type        string
}

// PlaceholderTokenType is the Type GetTokens reports for a line that
// hasn't been tokenized yet (or never will be, because the buffer is
// too large): a single token spanning the whole line, standing in for
// the model's default language until the background scheduler (or a
// forced tokenization) catches up.
const PlaceholderTokenType = "default"

// placeholderTokens builds the single-token placeholder line GetTokens
// returns for an invalid or permanently-untokenized line.
func placeholderTokens() []Token {
	return []Token{{StartColumn: 1, Type: PlaceholderTokenType}}
}

// Tokenizer produces tokens for a single line given the lexer state
// carried in from the previous line, and returns the state to carry to
// the next line.
type Tokenizer interface {
	TokenizeLine(line string, startState State) (tokens []Token, endState State)
	InitialState() State
}

// LineReader fetches the content of a 1-based buffer line.
type LineReader func(line int) (string, error)
