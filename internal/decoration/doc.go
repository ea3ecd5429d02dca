// Package decoration tracks ranged, styled markers ("decorations") on a
// text buffer: syntax highlights, diagnostics squiggles, selection
// highlights, and overview-ruler markers. Each decoration lives in one
// of two augmented interval trees (internal/interval) split by whether
// it paints the overview ruler, so overview-ruler queries never walk
// editor-only decorations and vice versa.
//
// Decorations are addressed by an opaque string ID allocated as
// "{instance};{counter}", matching the scheme a host embedding multiple
// trackers in one process needs to keep IDs from colliding across
// instances. DeltaDecorations is the single mutation entry point: it
// removes a caller-supplied set of old IDs and adds a new set in one
// call, returning the new IDs in the same order the new decorations
// were submitted.
package decoration
