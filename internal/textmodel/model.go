package textmodel

import (
	"regexp"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/textkernel/textmodel/internal/buffer"
	"github.com/textkernel/textmodel/internal/decoration"
	"github.com/textkernel/textmodel/internal/editstack"
	"github.com/textkernel/textmodel/internal/interval"
	"github.com/textkernel/textmodel/internal/modelevent"
	"github.com/textkernel/textmodel/internal/selection"
	"github.com/textkernel/textmodel/internal/token"
)

// TooLargeForSyncCreation is a byte-size threshold (50 MiB) for loading
// a document fully into memory synchronously. No constructor in this
// package checks it: New loads content of any size.
const TooLargeForSyncCreation = 50 * 1024 * 1024

// LongLineThreshold is the UTF-16 code-unit length above which a line
// is treated as "long" by consumers that want to skip expensive
// per-character work on minified or generated files.
const LongLineThreshold = 10_000

// DefaultSearchResultLimit caps FindMatches when the caller supplies no
// positive SearchOptions.Limit.
const DefaultSearchResultLimit = 999

var instanceCounter int64

// Model is the text model facade: the single entry point coordinating
// the buffer, decorations, tokens, undo stack, and change events.
type Model struct {
	mu sync.RWMutex

	id  string
	uri string

	buf         *buffer.Buffer
	decorations *decoration.Tracker
	tokens      *token.Store
	scheduler   *token.Scheduler
	stack       *editstack.Stack
	events      *modelevent.Coalescer

	versionID            int
	alternativeVersionID int

	tabSize            int
	insertSpaces       bool
	trimAutoWhitespace bool
	readOnly           bool

	cursors []selection.Selection

	brackets    []bracketPair
	wordPattern string
	wordRe      *regexp.Regexp
	offSide     bool

	languageID string

	attachedCount int

	disposed  bool
	disposing bool

	logf                        func(string, ...any)
	onWillDispose               func()
	onLanguageConfigurationChanged func()
	onOptionsChanged            func()
	onLanguageChanged           func()

	// construction-only scratch fields consumed by New.
	initialContent  *string
	initialBytes    []byte
	tokenizer       Tokenizer
	tokenBudget     time.Duration
	tokensChangedCB func(modelevent.TokensChangedEvent)
}

// New creates a Model. With no options it is an empty, single-line
// document.
func New(listener modelevent.Listener, opts ...Option) *Model {
	m := &Model{
		id:                 nextInstanceID(),
		tabSize:            4,
		insertSpaces:       true,
		trimAutoWhitespace: true,
		events:             modelevent.New(listener),
		stack:              editstack.NewStack(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.tokensChangedCB != nil {
		m.events.SetTokensChangedListener(m.tokensChangedCB)
	}

	switch {
	case m.initialBytes != nil:
		buf, err := buffer.NewFromBytes(m.initialBytes, buffer.WithTabWidth(m.tabSize))
		if err != nil {
			buf = buffer.NewFromString(string(m.initialBytes), buffer.WithTabWidth(m.tabSize))
		}
		m.buf = buf
	case m.initialContent != nil:
		m.buf = buffer.NewFromString(*m.initialContent, buffer.WithTabWidth(m.tabSize))
	default:
		m.buf = buffer.NewFromString("", buffer.WithTabWidth(m.tabSize))
	}
	content := m.buf.GetValue(buffer.EOLPreferenceTextDefined)
	m.decorations = decoration.NewTracker(m.id)
	m.versionID = 1
	m.alternativeVersionID = 1

	tokenizer := m.tokenizer
	if tokenizer == nil {
		tokenizer = noopTokenizer{}
	}
	m.tokens = token.NewStore(tokenizer, m.lineReader, m.buf.LineCount(), len(content))
	m.tokens.WarmUp(token.DefaultWarmUpLines)
	m.scheduler = token.NewScheduler(m.tokens, m.tokenBudget, func() {
		m.mu.Lock()
		disposed := m.disposed
		m.mu.Unlock()
		if !disposed {
			m.events.RecordTokensChanged()
		}
	})
	m.scheduler.Schedule()

	m.cursors = []selection.Selection{selection.NewCursor(buffer.Position{Line: 1, Column: 1})}
	return m
}

func nextInstanceID() string {
	n := atomic.AddInt64(&instanceCounter, 1)
	return "$model" + itoa(n)
}

func itoa(n int64) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	neg := n < 0
	if neg {
		n = -n
	}
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// lineReader adapts the buffer's LineContent for the token store. It
// takes m's read lock, so the store must never read lines while m's
// write lock is held.
func (m *Model) lineReader(line int) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.buf.LineContent(line)
}

// ID returns the model's opaque "$model{N}" identity.
func (m *Model) ID() string { return m.id }

// URI returns the model's identity URI, or "" if none was set.
func (m *Model) URI() string { return m.uri }

// VersionID returns the current content version. It increments by
// exactly one on every successful edit, including an undo or redo.
func (m *Model) VersionID() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.versionID
}

// AlternativeVersionID returns an id for the current content state. It
// equals VersionID after every forward change (an edit, SetValue or
// SetEOL); Undo and Redo set it to the version recorded for the state
// they return to, so undoing back to an earlier state yields that
// state's earlier id.
func (m *Model) AlternativeVersionID() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.alternativeVersionID
}

// IsDisposed reports whether Dispose has been called.
func (m *Model) IsDisposed() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.disposed
}

// Dispose releases the model's background resources. After Dispose,
// every method with an error result returns a KindModelDisposed error.
// Methods without an error result (ID, URI, VersionID, EOL, BOM,
// GetOptions, CanUndo, CanRedo, GetLanguageIdentifier,
// IsAttachedToEditor, IsCheapToTokenizeLine, SetTokenizer, SetBrackets,
// OnBeforeAttached, OnBeforeDetached) do not check for disposal and
// keep answering from the model's last state. Dispose itself is
// idempotent.
func (m *Model) Dispose() {
	m.mu.Lock()
	if m.disposed {
		m.mu.Unlock()
		return
	}
	m.disposing = true
	willDispose := m.onWillDispose
	m.mu.Unlock()

	if willDispose != nil {
		willDispose()
	}

	m.scheduler.Stop()

	m.mu.Lock()
	m.disposed = true
	m.disposing = false
	m.mu.Unlock()
}

func (m *Model) checkWritable(op string) error {
	if m.disposed {
		return newError(KindModelDisposed, op, ErrDisposed)
	}
	if m.readOnly {
		return newError(KindInvalidArgument, op, ErrReadOnly)
	}
	return nil
}

func (m *Model) checkReadable(op string) error {
	if m.disposed {
		return newError(KindModelDisposed, op, ErrDisposed)
	}
	return nil
}

// GetValue returns the model's full text.
func (m *Model) GetValue(pref buffer.EOLPreference) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.checkReadable("GetValue"); err != nil {
		return "", err
	}
	return m.buf.GetValue(pref), nil
}

// GetValueInRange returns the text within r.
func (m *Model) GetValueInRange(r buffer.Range, pref buffer.EOLPreference) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.checkReadable("GetValueInRange"); err != nil {
		return "", err
	}
	valid := buffer.NewRange(m.validatePositionLocked(r.Start), m.validatePositionLocked(r.End))
	text, err := m.buf.ValueInRange(valid, pref)
	if err != nil {
		return "", newError(KindInvalidArgument, "GetValueInRange", err)
	}
	return text, nil
}

// GetLineCount returns the number of lines in the document.
func (m *Model) GetLineCount() (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.checkReadable("GetLineCount"); err != nil {
		return 0, err
	}
	return m.buf.LineCount(), nil
}

// GetLineContent returns the content of a 1-based line.
func (m *Model) GetLineContent(line int) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.checkReadable("GetLineContent"); err != nil {
		return "", err
	}
	content, err := m.buf.LineContent(line)
	if err != nil {
		return "", newError(KindInvalidArgument, "GetLineContent", err)
	}
	return content, nil
}

// GetLineMaxColumn returns the column one past the last code unit of a
// 1-based line.
func (m *Model) GetLineMaxColumn(line int) (int, error) {
	content, err := m.GetLineContent(line)
	if err != nil {
		return 0, err
	}
	return utf16Len(content) + 1, nil
}

// GetOffsetAt converts a position to a flat UTF-16 offset.
func (m *Model) GetOffsetAt(pos buffer.Position) (buffer.Offset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.checkReadable("GetOffsetAt"); err != nil {
		return 0, err
	}
	valid := m.validatePositionLocked(pos)
	off, err := m.buf.OffsetAt(valid)
	if err != nil {
		return 0, newError(KindInvalidArgument, "GetOffsetAt", err)
	}
	return off, nil
}

// GetPositionAt converts a flat UTF-16 offset to a position.
func (m *Model) GetPositionAt(offset buffer.Offset) (buffer.Position, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.checkReadable("GetPositionAt"); err != nil {
		return buffer.Position{}, err
	}
	pos, err := m.buf.PositionAt(offset)
	if err != nil {
		return buffer.Position{}, newError(KindInvalidArgument, "GetPositionAt", err)
	}
	return pos, nil
}

// BOM reports whether the model's source carried a byte-order mark.
func (m *Model) BOM() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.buf.BOM()
}

// GetValueBytes returns the model's full text encoded as bytes, with a
// UTF-8 byte-order mark prepended if BOM() is true.
func (m *Model) GetValueBytes(pref buffer.EOLPreference) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.checkReadable("GetValueBytes"); err != nil {
		return nil, err
	}
	return m.buf.EncodeWithBOM(m.buf.GetValue(pref)), nil
}

// SetValue replaces the entire document content as one flushed reset
// rather than an incremental edit: it clears undo/redo history,
// decorations, and cached tokens along with the text itself. Setting
// the same content the model already holds is a no-op.
func (m *Model) SetValue(text string) error {
	m.mu.Lock()
	warmUp := false
	defer func() {
		m.mu.Unlock()
		// The store reads lines through lineReader, which takes m.mu.
		if warmUp {
			m.tokens.WarmUp(token.DefaultWarmUpLines)
		}
	}()
	if err := m.checkWritable("SetValue"); err != nil {
		return err
	}
	if text == m.buf.GetValue(buffer.EOLPreferenceTextDefined) {
		return newError(KindNoOp, "SetValue", nil)
	}

	oldRange := m.buf.FullRange()
	oldLength := m.buf.Length()

	m.buf = buffer.NewFromString(text, buffer.WithTabWidth(m.tabSize))
	m.decorations = decoration.NewTracker(m.id)
	m.tokens.Reset(m.buf.LineCount(), len(text))
	warmUp = true
	m.stack.Reset()
	m.cursors = []selection.Selection{selection.NewCursor(buffer.Position{Line: 1, Column: 1})}
	m.bumpVersion(false)
	m.alternativeVersionID = m.versionID

	change := buffer.ContentChange{
		Range:       oldRange,
		RangeOffset: 0,
		RangeLength: oldLength,
		Text:        text,
	}
	m.events.SetPendingFlags(false, false, true)
	m.events.RecordContentChange([]buffer.ContentChange{change}, m.versionID, m.alternativeVersionID, m.buf.EOL())
	m.events.RecordRawContentChange([]buffer.RawChange{{Kind: buffer.RawLineChanged, FromLine: 1, ToLine: m.buf.LineCount(), Lines: nil}}, m.versionID)
	m.events.RecordDecorationsChanged()
	m.scheduler.Schedule()
	return nil
}

// EOL returns the model's current end-of-line sequence.
func (m *Model) EOL() buffer.EOL {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.buf.EOL()
}

// SetEOL overwrites the model's end-of-line sequence and bumps the
// version if it changed.
func (m *Model) SetEOL(eol buffer.EOL) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkWritable("SetEOL"); err != nil {
		return err
	}
	fullRange := m.buf.FullRange()
	fullLength := m.buf.Length()
	if !m.buf.SetEOL(eol) {
		return newError(KindNoOp, "SetEOL", nil)
	}
	m.bumpVersion(true)
	change := buffer.ContentChange{
		Range:       fullRange,
		RangeOffset: 0,
		RangeLength: fullLength,
		Text:        m.buf.GetValue(buffer.EOLPreferenceTextDefined),
	}
	m.events.RecordContentChange([]buffer.ContentChange{change}, m.versionID, m.alternativeVersionID, eol)
	m.events.RecordRawContentChange([]buffer.RawChange{{Kind: buffer.RawEOLChanged}}, m.versionID)
	return nil
}

func (m *Model) bumpVersion(undoable bool) {
	m.versionID++
	if undoable {
		m.alternativeVersionID = m.versionID
	}
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		if r > 0xFFFF {
			n += 2
		} else {
			n++
		}
	}
	return n
}

// editsToIntervalEdits converts one batch's content changes (all offsets
// against the buffer as it was before that batch) into interval.Edit
// values in descending start order, the order AcceptReplace expects.
func editsToIntervalEdits(edits []buffer.EditOperation, changes []buffer.ContentChange) []interval.Edit {
	out := make([]interval.Edit, len(changes))
	for i, c := range changes {
		out[i] = interval.Edit{
			Start:            int64(c.RangeOffset),
			End:              int64(c.RangeOffset + c.RangeLength),
			NewLength:        int64(utf16Len(c.Text)),
			ForceMoveMarkers: edits[i].ForceMoveMarkers,
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start > out[j].Start })
	return out
}
