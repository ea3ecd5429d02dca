// Package buffer implements the in-memory text storage for a text model:
// a sequence of lines addressed by 1-based (line, column) positions where
// columns count UTF-16 code units, plus conversion to and from flat
// UTF-16 offsets.
//
// The buffer stores line content as UTF-8 Go strings (no embedded line
// terminators) and tracks the document's end-of-line sequence and byte
// order mark separately. All public position and offset arithmetic is
// expressed in UTF-16 code units so that callers (LSP-style consumers,
// the text model facade) never need to reason about UTF-8 byte widths.
//
// Edits are applied in batches through ApplyEdits, which validates
// non-overlap, mutates the line slice, and reports both line-level raw
// changes (for mirror buffers that replay edits verbatim) and
// content-level changes (offset/length deltas, in original submission
// order) alongside the reverse edits needed to undo the batch.
package buffer
