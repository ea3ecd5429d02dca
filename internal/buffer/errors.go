package buffer

import "errors"

var (
	// ErrLineOutOfRange is returned when a 1-based line number falls
	// outside [1, LineCount()].
	ErrLineOutOfRange = errors.New("buffer: line out of range")
	// ErrColumnOutOfRange is returned when a column falls outside a
	// line's valid [1, length+1] span and strict validation was requested.
	ErrColumnOutOfRange = errors.New("buffer: column out of range")
	// ErrOffsetOutOfRange is returned when an offset falls outside
	// [0, length] of the buffer.
	ErrOffsetOutOfRange = errors.New("buffer: offset out of range")
	// ErrRangeInvalid is returned when a range's end precedes its start.
	ErrRangeInvalid = errors.New("buffer: range end precedes start")
	// ErrEditsOverlap is returned by ApplyEdits when two operations in
	// the same batch touch overlapping regions.
	ErrEditsOverlap = errors.New("buffer: edit operations overlap")
	// ErrSurrogatePairSplit is returned when a column would split a
	// UTF-16 surrogate pair and strict validation was requested.
	ErrSurrogatePairSplit = errors.New("buffer: column splits a surrogate pair")
)
