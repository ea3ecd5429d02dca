// Package editstack implements the undo/redo history for a text model:
// a stack of grouped edit operations ("stack elements"), each carrying
// enough information — the operations applied, their reverses, and the
// selection state immediately before and after — to undo or redo as one
// unit regardless of how many individual edits it was built from.
//
// Consecutive edits merge into the currently open stack element until
// an explicit PushStackElement call closes the group. Stack itself does
// not look at cursor positions: where group boundaries fall is decided
// entirely by its caller.
//
// Auto-whitespace trimming — stripping a line that an edit left
// containing only whitespace — is gated by a "near cursors" heuristic:
// a candidate line is only trimmed if no selection currently has a
// cursor on that same line. The heuristic is deliberately line-wise
// only (it does not also check column proximity); see the project's
// design notes for why.
package editstack
