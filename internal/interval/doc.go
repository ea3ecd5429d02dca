// Package interval implements an augmented red-black tree keyed by an
// interval's left endpoint, with each node additionally storing the
// maximum right endpoint ("maxEnd") of its subtree. The maxEnd
// augmentation lets overlap queries prune whole subtrees instead of
// visiting every node, giving O(log n + k) overlap search for k
// matches.
//
// Nodes also carry a mutable "stickiness" policy describing how their
// interval should react when an edit's replacement text lands exactly
// at one of the interval's endpoints: whether the endpoint should grow
// to include the new text, stay put, or grow only on one side. Applying
// a batch of edits (AcceptReplace) walks every node whose interval
// touches an edited region and recomputes its endpoints under that
// policy, then rebalances.
//
// This component has no direct analogue in the reference material this
// module was adapted from; it is new code written to the teacher's
// style (bottom-up augmentation recompute, table-driven tests) rather
// than ported from an existing interval-tree implementation.
package interval
