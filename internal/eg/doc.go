// Package eg implements an equality-saturation e-graph.
//
// An e-graph compactly represents many equivalent expressions at once by
// grouping congruent sub-terms into equivalence classes. Clients add
// expressions (trees of named operators over opaque leaf symbols), assert
// equalities between class ids, and apply pattern-based rewrite rules that
// discover and propagate new equalities.
//
// ARCHITECTURE:
//
// The graph layers three structures:
//   - a union-find forest over class ids (the dynamic equivalence relation)
//   - a hash-cons table from canonical term content to the owning class id
//   - per-class parent back-references, so that merging two classes can
//     re-canonicalize exactly the terms whose keys went stale
//
// Mutation flow:
//  1. AddTerm/AddOperation hash-cons a term, allocate a class, and register
//     the term as a parent of each child class.
//  2. Unite merges two union-find roots; the dead class's parents join the
//     dirty worklist.
//  3. RestoreInvariants drains the worklist: each dirty term is removed
//     from the table, its children are rewritten through Find, and it is
//     reinserted - or, if a structurally identical term is already present,
//     the two classes are united, which may enqueue more dirty terms.
//  4. Rewrite collects all matches of a rule against the pre-rewrite state,
//     applies the buffered unions, and restores invariants once.
//
// Evaluation is strictly single-threaded and deterministic given a fixed
// insertion order: class iteration is sorted by canonical id, matches are
// collected before any union is applied, and duplicate terms and parents
// are deduplicated during invariant restoration. Wrap the graph in an
// external mutex if concurrent access is required.
//
// Malformed usage (unknown ids, unbound rule variables) is a programming
// error and panics. Recoverable conditions are empty results or booleans.
package eg
