package textmodel

import (
	"time"

	"github.com/textkernel/textmodel/internal/modelevent"
)

// Option configures a Model at construction time.
type Option func(*Model)

// WithContent seeds the model with initial text.
func WithContent(text string) Option {
	return func(m *Model) { m.initialContent = &text }
}

// WithContentBytes seeds the model from raw bytes, detecting and
// stripping a UTF-8/UTF-16 byte-order mark (see internal/buffer's
// NewFromBytes); the model remembers whether one was present so it can
// be re-emitted by a future save path.
func WithContentBytes(raw []byte) Option {
	return func(m *Model) { m.initialBytes = append([]byte(nil), raw...) }
}

// WithURI sets the model's identity URI (e.g. "file:///a/b.go"). If
// unset, the model has no URI, only its "$model{N}" ID.
func WithURI(uri string) Option {
	return func(m *Model) { m.uri = uri }
}

// WithTabSize sets the tab width in columns. Defaults to 4.
func WithTabSize(n int) Option {
	return func(m *Model) {
		if n > 0 {
			m.tabSize = n
		}
	}
}

// WithInsertSpaces controls whether Tab-driven indentation inserts
// spaces (true) or a tab character (false). Defaults to true.
func WithInsertSpaces(insert bool) Option {
	return func(m *Model) { m.insertSpaces = insert }
}

// WithTrimAutoWhitespace enables stripping whitespace-only lines an
// edit leaves behind, gated by the near-cursors heuristic. Defaults to
// true.
func WithTrimAutoWhitespace(trim bool) Option {
	return func(m *Model) { m.trimAutoWhitespace = trim }
}

// WithReadOnly marks the model read-only: every mutating operation
// returns ErrReadOnly.
func WithReadOnly() Option {
	return func(m *Model) { m.readOnly = true }
}

// WithLogger stores a diagnostic sink on the model. No code in this
// package calls it, so nothing is logged whether or not one is set; the
// model never imports a logging library itself.
func WithLogger(logf func(format string, args ...any)) Option {
	return func(m *Model) { m.logf = logf }
}

// WithTokenizer installs the Tokenizer used for line tokens. The
// too-large thresholds stay at the token package defaults; no option
// changes them.
func WithTokenizer(t Tokenizer) Option {
	return func(m *Model) { m.tokenizer = t }
}

// WithBackgroundTokenizationBudget overrides the default 20ms per-tick
// background tokenization budget.
func WithBackgroundTokenizationBudget(d time.Duration) Option {
	return func(m *Model) { m.tokenBudget = d }
}

// WithWillDisposeListener installs a callback fired once, synchronously,
// at the start of Dispose, before any internal teardown.
func WithWillDisposeListener(f func()) Option {
	return func(m *Model) { m.onWillDispose = f }
}

// WithLanguageConfigurationListener installs a callback fired after
// LoadLanguageConfiguration installs a new bracket/word-pattern set.
func WithLanguageConfigurationListener(f func()) Option {
	return func(m *Model) { m.onLanguageConfigurationChanged = f }
}

// WithOptionsListener installs a callback fired after UpdateOptions
// changes tabSize, insertSpaces, or trimAutoWhitespace.
func WithOptionsListener(f func()) Option {
	return func(m *Model) { m.onOptionsChanged = f }
}

// WithLanguageChangedListener installs a callback fired after SetMode
// changes the model's language identifier.
func WithLanguageChangedListener(f func()) Option {
	return func(m *Model) { m.onLanguageChanged = f }
}

// WithTokensChangedListener installs a callback fired after each tick
// of the background tokenizer, coalesced the same way content and
// decoration changes are. ForceTokenization and the warm-up do not fire
// it. An alternative to supplying Listener.OnTokensChanged
// directly to New.
func WithTokensChangedListener(f func(modelevent.TokensChangedEvent)) Option {
	return func(m *Model) { m.tokensChangedCB = f }
}
