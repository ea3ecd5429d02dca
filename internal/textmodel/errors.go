package textmodel

import (
	"errors"
	"fmt"
)

// Kind classifies a Model error the way a host needs to decide whether
// to surface it, retry, or silently swallow it.
type Kind uint8

const (
	// KindInvalidArgument means the caller passed a position, range, or
	// option outside what the model can represent (e.g. a negative
	// line number).
	KindInvalidArgument Kind = iota
	// KindModelDisposed means the model was already disposed; after
	// Dispose(), every Model method with an error result returns this
	// (Model.Dispose lists the accessors that do not check).
	KindModelDisposed
	// KindNoOp means the requested operation would have had no effect
	// (e.g. Undo with an empty history) and was rejected rather than
	// silently succeeding.
	KindNoOp
	// KindSilentlyIgnored means the model chose to ignore a
	// best-effort request rather than fail it (e.g. a decoration
	// referencing an ID that no longer resolves).
	KindSilentlyIgnored
	// KindInternal means an invariant the model itself is responsible
	// for maintaining was violated; it indicates a bug in this module,
	// not a caller mistake.
	KindInternal
)

// Error is the error type every Model method returns.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("textmodel: %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

var (
	// ErrDisposed is the sentinel wrapped by every KindModelDisposed error.
	ErrDisposed = errors.New("model is disposed")
	// ErrNothingToUndo is the sentinel wrapped by a KindNoOp Undo error.
	ErrNothingToUndo = errors.New("nothing to undo")
	// ErrNothingToRedo is the sentinel wrapped by a KindNoOp Redo error.
	ErrNothingToRedo = errors.New("nothing to redo")
	// ErrReadOnly is the sentinel wrapped when a write hits a read-only model.
	ErrReadOnly = errors.New("model is read-only")
	// ErrInvalidOverviewRulerColor is the sentinel wrapped when a
	// decoration's overview ruler color isn't a color go-colorful can parse.
	ErrInvalidOverviewRulerColor = errors.New("invalid overview ruler color")
	// ErrInvalidLanguageConfig is the sentinel wrapped when
	// LoadLanguageConfiguration is given malformed JSON.
	ErrInvalidLanguageConfig = errors.New("invalid language configuration")
)
