// Package textmodel is the public surface of this module: a
// Monaco/VS-Code-style text model core, reusable in any Go editor host.
// It re-exports internal/textmodel.Model and its supporting types so a
// host only ever imports this one package path.
package textmodel

import (
	"github.com/textkernel/textmodel/internal/buffer"
	"github.com/textkernel/textmodel/internal/editstack"
	"github.com/textkernel/textmodel/internal/modelevent"
	"github.com/textkernel/textmodel/internal/selection"
	itm "github.com/textkernel/textmodel/internal/textmodel"
)

// Model is the text model facade: the single coordination point over a
// buffer, its decorations, its line tokens, and its undo history.
type Model = itm.Model

// New creates a Model. With no options it is an empty, single-line
// document.
func New(listener modelevent.Listener, opts ...Option) *Model {
	return itm.New(listener, opts...)
}

// Option configures a Model at construction time.
type Option = itm.Option

var (
	WithContent                     = itm.WithContent
	WithContentBytes                = itm.WithContentBytes
	WithURI                         = itm.WithURI
	WithTabSize                     = itm.WithTabSize
	WithInsertSpaces                = itm.WithInsertSpaces
	WithTrimAutoWhitespace          = itm.WithTrimAutoWhitespace
	WithReadOnly                    = itm.WithReadOnly
	WithLogger                      = itm.WithLogger
	WithTokenizer                   = itm.WithTokenizer
	WithBackgroundTokenizationBudget = itm.WithBackgroundTokenizationBudget
	WithWillDisposeListener          = itm.WithWillDisposeListener
	WithLanguageConfigurationListener = itm.WithLanguageConfigurationListener
	WithOptionsListener              = itm.WithOptionsListener
	WithLanguageChangedListener      = itm.WithLanguageChangedListener
	WithTokensChangedListener        = itm.WithTokensChangedListener
)

// Position, Range, Offset, EOL and related buffer types are re-exported
// so callers never need to import internal/buffer directly.
type (
	Position      = buffer.Position
	Range         = buffer.Range
	Offset        = buffer.Offset
	EOL           = buffer.EOL
	EOLPreference = buffer.EOLPreference
	EditOperation = buffer.EditOperation
)

const (
	EOLLF   = buffer.LF
	EOLCRLF = buffer.CRLF
)

const (
	EOLPreferenceTextDefined = buffer.EOLPreferenceTextDefined
	EOLPreferenceLF          = buffer.EOLPreferenceLF
	EOLPreferenceCRLF        = buffer.EOLPreferenceCRLF
)

// NewRange builds a Range, swapping endpoints if they arrive reversed.
func NewRange(a, b Position) Range { return buffer.NewRange(a, b) }

// Selection and Listener/event types are re-exported from their owning
// internal packages.
type (
	Selection = selection.Selection
	Listener  = modelevent.Listener

	ContentChangedEvent     = modelevent.ContentChangedEvent
	RawContentChangedEvent  = modelevent.RawContentChangedEvent
	DecorationsChangedEvent = modelevent.DecorationsChangedEvent
	TokensChangedEvent      = modelevent.TokensChangedEvent
)

// NewCursor returns a collapsed selection at pos.
func NewCursor(pos Position) Selection { return selection.NewCursor(pos) }

// Token, Tokenizer, Decoration and related types are re-exported from
// itm for convenience (itm itself re-exports them from their owning
// internal packages).
type (
	Token                = itm.Token
	Tokenizer             = itm.Tokenizer
	Decoration            = itm.Decoration
	NewDecoration         = itm.NewDecoration
	DecorationOptions     = itm.DecorationOptions
	OverviewRulerOptions  = itm.OverviewRulerOptions
	OverviewRulerLane     = itm.OverviewRulerLane
	BracketMatch          = itm.BracketMatch
	Word                  = itm.Word
	FindMatch             = itm.FindMatch
	SearchOptions         = itm.SearchOptions
	ModelOptions          = itm.ModelOptions
	OptionsUpdate         = itm.OptionsUpdate
	Error                 = itm.Error
	Kind                  = itm.Kind
	DecorationsAccessor   = itm.DecorationsAccessor
)

const (
	OverviewRulerLaneLeft   = itm.OverviewRulerLaneLeft
	OverviewRulerLaneCenter = itm.OverviewRulerLaneCenter
	OverviewRulerLaneRight  = itm.OverviewRulerLaneRight
	OverviewRulerLaneFull   = itm.OverviewRulerLaneFull

	DefaultSearchResultLimit = itm.DefaultSearchResultLimit
	TooLargeForSyncCreation  = itm.TooLargeForSyncCreation
	LongLineThreshold        = itm.LongLineThreshold

	KindInvalidArgument  = itm.KindInvalidArgument
	KindModelDisposed    = itm.KindModelDisposed
	KindNoOp             = itm.KindNoOp
	KindSilentlyIgnored  = itm.KindSilentlyIgnored
	KindInternal         = itm.KindInternal
)

var (
	ErrDisposed                  = itm.ErrDisposed
	ErrNothingToUndo             = itm.ErrNothingToUndo
	ErrNothingToRedo             = itm.ErrNothingToRedo
	ErrReadOnly                  = itm.ErrReadOnly
	ErrInvalidOverviewRulerColor = itm.ErrInvalidOverviewRulerColor
	ErrInvalidLanguageConfig     = itm.ErrInvalidLanguageConfig
)

// EditStack operation/selection types a host may need when constructing
// PushEditOperations arguments.
type (
	Operation = editstack.Operation
)
