// Package modelevent coalesces the four kinds of change notification a
// text model fires: content changes (every edit applied, in order,
// delivered together in one ContentChangedEvent per flush), raw
// line-level content changes (likewise one RawContentChangedEvent per
// flush), and decorations-changed and tokens-changed (each a single
// boolean — something changed or it didn't, with no detail on what).
//
// All four are buffered behind a nesting counter rather than fired
// synchronously on every mutation. A caller opens a deferred scope
// before a batch of operations that may each mutate the model and
// closes it after; nested scopes only flush once the outermost one
// closes, so a facade method that internally calls several
// lower-level mutators emits at most one event of each kind to its
// caller, however many changes it performed internally.
//
// This is a narrower, purpose-built counterpart to a general pub/sub
// bus: it has a fixed set of event kinds with fixed coalescing semantics
// rather than dispatching over topics, so it doesn't need a bus,
// subscriptions, or filters — callbacks are invoked directly.
package modelevent
