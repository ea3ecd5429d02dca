package interval

// Stickiness controls how an interval's endpoints react when an edit's
// replacement text is inserted exactly at one of them.
type Stickiness uint8

const (
	// AlwaysGrowsWhenTypingAtEdges extends the interval to include text
	// typed at either endpoint.
	AlwaysGrowsWhenTypingAtEdges Stickiness = iota
	// NeverGrowsWhenTypingAtEdges leaves both endpoints pinned; text
	// typed at an edge lands outside the interval.
	NeverGrowsWhenTypingAtEdges
	// GrowsOnlyWhenTypingBefore extends only the start endpoint
	// backward; the end endpoint stays pinned.
	GrowsOnlyWhenTypingBefore
	// GrowsOnlyWhenTypingAfter extends only the end endpoint forward;
	// the start endpoint stays pinned.
	GrowsOnlyWhenTypingAfter
)
