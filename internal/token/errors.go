package token

import "errors"

var (
	// ErrLineOutOfRange is returned when a requested line is outside
	// [1, LineCount()].
	ErrLineOutOfRange = errors.New("token: line out of range")
)
