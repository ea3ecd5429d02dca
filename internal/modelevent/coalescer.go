package modelevent

import "github.com/textkernel/textmodel/internal/buffer"

// ContentChangedEvent carries every content change from one flushed
// batch, plus the version the model reached after applying them.
type ContentChangedEvent struct {
	Changes          []buffer.ContentChange
	VersionID        int
	AlternativeVersionID int
	EOL              buffer.EOL
	IsUndoing        bool
	IsRedoing        bool
	IsFlush          bool
}

// DecorationsChangedEvent signals that one or more decorations changed
// during a flushed batch. It carries no detail on which ones: consumers
// that need specifics re-query the decoration tracker.
type DecorationsChangedEvent struct{}

// RawContentChangedEvent carries the line-level change records from one
// flushed batch of edits, independent of ContentChangedEvent's
// UTF-16-range changes — this is the raw line-insert/delete/change/EOL
// feed a host uses to patch its own line-indexed mirror of the buffer
// without recomputing it from scratch.
type RawContentChangedEvent struct {
	Changes   []buffer.RawChange
	VersionID int
}

// TokensChangedEvent signals that the background tokenizer ran a tick
// and may have produced new tokens for one or more lines; synchronous
// tokenization calls do not fire it. It carries no detail on which lines: consumers that need
// specifics re-query the token store.
type TokensChangedEvent struct{}

// Listener receives coalesced events. Any callback may be nil.
type Listener struct {
	OnContentChanged     func(ContentChangedEvent)
	OnRawContentChanged  func(RawContentChangedEvent)
	OnDecorationsChanged func(DecorationsChangedEvent)
	OnTokensChanged      func(TokensChangedEvent)
}

// Coalescer buffers content, raw-content, decorations-changed and
// tokens-changed notifications across a nested deferred scope, flushing
// only when the outermost scope closes.
type Coalescer struct {
	listener Listener

	depth              int
	pendingChanges     []buffer.ContentChange
	pendingRawChanges  []buffer.RawChange
	pendingDecorations bool
	pendingTokens      bool
	lastVersionID      int
	lastAltVersionID   int
	lastEOL            buffer.EOL

	pendingIsUndoing bool
	pendingIsRedoing bool
	pendingIsFlush   bool
}

// SetPendingFlags marks the isUndoing/isRedoing/isFlush flags that will
// be attached to the next ContentChangedEvent this coalescer flushes.
// Call once before the RecordContentChange calls that make up a logical
// undo, redo, or full-content-replace operation; the flags are cleared
// after each flush.
func (c *Coalescer) SetPendingFlags(isUndoing, isRedoing, isFlush bool) {
	c.pendingIsUndoing = isUndoing
	c.pendingIsRedoing = isRedoing
	c.pendingIsFlush = isFlush
}

// New returns a Coalescer that reports to listener.
func New(listener Listener) *Coalescer {
	return &Coalescer{listener: listener}
}

// SetTokensChangedListener installs or replaces the tokens-changed
// callback after construction, used by a textmodel.Option to attach a
// listener without supplying the full Listener up front.
func (c *Coalescer) SetTokensChangedListener(f func(TokensChangedEvent)) {
	c.listener.OnTokensChanged = f
}

// BeginDeferred opens a deferred scope. Every Begin must be matched by
// an EndDeferred; only the matching outermost End flushes.
func (c *Coalescer) BeginDeferred() {
	c.depth++
}

// EndDeferred closes a deferred scope, flushing buffered events once
// depth returns to zero.
func (c *Coalescer) EndDeferred() {
	if c.depth == 0 {
		return
	}
	c.depth--
	if c.depth == 0 {
		c.flush()
	}
}

// RecordContentChange enqueues changes from one applied edit batch.
// Call within a Begin/EndDeferred scope (or standalone, for a
// single-operation facade method that doesn't need nesting — it will
// flush immediately since depth never left zero).
func (c *Coalescer) RecordContentChange(changes []buffer.ContentChange, versionID, alternativeVersionID int, eol buffer.EOL) {
	c.pendingChanges = append(c.pendingChanges, changes...)
	c.lastVersionID = versionID
	c.lastAltVersionID = alternativeVersionID
	c.lastEOL = eol
	if c.depth == 0 {
		c.flush()
	}
}

// RecordRawContentChange enqueues the raw line-level change records
// from one applied edit batch, reported as a RawContentChangedEvent
// independent of the ranged ContentChangedEvent from the same batch.
func (c *Coalescer) RecordRawContentChange(changes []buffer.RawChange, versionID int) {
	c.pendingRawChanges = append(c.pendingRawChanges, changes...)
	c.lastVersionID = versionID
	if c.depth == 0 {
		c.flush()
	}
}

// RecordDecorationsChanged marks that decorations changed during the
// current scope. Repeated calls collapse into a single flushed event.
func (c *Coalescer) RecordDecorationsChanged() {
	c.pendingDecorations = true
	if c.depth == 0 {
		c.flush()
	}
}

// RecordTokensChanged marks that tokens changed during the current
// scope. Repeated calls collapse into a single flushed event.
func (c *Coalescer) RecordTokensChanged() {
	c.pendingTokens = true
	if c.depth == 0 {
		c.flush()
	}
}

func (c *Coalescer) flush() {
	if len(c.pendingChanges) > 0 {
		changes := c.pendingChanges
		c.pendingChanges = nil
		if c.listener.OnContentChanged != nil {
			c.listener.OnContentChanged(ContentChangedEvent{
				Changes:              changes,
				VersionID:            c.lastVersionID,
				AlternativeVersionID: c.lastAltVersionID,
				EOL:                  c.lastEOL,
				IsUndoing:            c.pendingIsUndoing,
				IsRedoing:            c.pendingIsRedoing,
				IsFlush:              c.pendingIsFlush,
			})
		}
		c.pendingIsUndoing = false
		c.pendingIsRedoing = false
		c.pendingIsFlush = false
	}
	if len(c.pendingRawChanges) > 0 {
		raw := c.pendingRawChanges
		c.pendingRawChanges = nil
		if c.listener.OnRawContentChanged != nil {
			c.listener.OnRawContentChanged(RawContentChangedEvent{Changes: raw, VersionID: c.lastVersionID})
		}
	}
	if c.pendingDecorations {
		c.pendingDecorations = false
		if c.listener.OnDecorationsChanged != nil {
			c.listener.OnDecorationsChanged(DecorationsChangedEvent{})
		}
	}
	if c.pendingTokens {
		c.pendingTokens = false
		if c.listener.OnTokensChanged != nil {
			c.listener.OnTokensChanged(TokensChangedEvent{})
		}
	}
}
