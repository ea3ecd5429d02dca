// Package selection models cursors and selections over a text buffer:
// an anchor/head pair per cursor (so a selection remembers which end the
// user is dragging), plus the handful of pure position transforms the
// edit stack and facade need to keep selections in sync with edits
// (adjusting a position for an edit that happened before it, or
// collapsing a selection to its head).
package selection
