// Package token maintains per-line tokenization state for a text model.
// Tokenizing every line eagerly on every edit is wasteful for large
// files, so the store keeps an "invalid line" frontier: lines below the
// frontier are known-good, lines at or above it have never been
// tokenized (or were invalidated by an edit) and are filled in lazily,
// either by an explicit synchronous call (UpdateTokensUntilLine,
// WarmUp) or by a background scheduler that tokenizes a bounded number
// of lines within a small time budget per tick, so a single huge paste
// doesn't block the editor for the time it takes to tokenize the whole
// file. Asking for a line's tokens (GetTokens) never tokenizes it.
//
// Buffers whose size or line count exceeds configured thresholds are
// marked "too large to tokenize" and never produce background work;
// GetTokens on such a buffer always reports the single-token
// placeholder, the same one an ordinary not-yet-tokenized line gets.
//
// Retokenization runs forward from the first invalidated line, one line
// at a time, each line starting from the previous line's ending lexer
// state, until the end of the buffer. It does not stop early when a
// line's ending state matches the one previously recorded for it.
package token
