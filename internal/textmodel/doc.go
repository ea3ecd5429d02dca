// Package textmodel implements Model, the coordination facade over a
// text buffer, its decorations, its line tokens, and its undo history.
// Model is the only exported entry point the rest of this module
// expects a host to use directly; every other internal package is an
// implementation detail it wires together.
//
// A single sync.RWMutex guards the whole facade (write operations take
// the write lock; reads the read lock), following the teacher's
// single-writer-mutex idiom rather than finer-grained per-component
// locks: since every mutation already funnels through Model's edit
// pipeline, there is no benefit to letting sub-components lock
// independently, and real benefit (no lock-ordering bugs) to not doing
// so.
package textmodel
