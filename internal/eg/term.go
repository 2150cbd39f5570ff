package eg

import (
	"strconv"
	"strings"
)

// Term is a single operator application: a name over an ordered list of
// child class ids. The key trick of the e-graph is that terms reference
// equivalence classes, not other terms.
//
// Terms are logically immutable from the client's view. The children list
// is rewritten in place during invariant restoration - a canonicalization
// step that substitutes each id by its current union-find root.
type Term struct {
	name     string
	children []ClassID
}

func newLeafTerm(name string) *Term {
	return &Term{name: name}
}

func newOperationTerm(name string, children []ClassID) *Term {
	t := &Term{name: name, children: make([]ClassID, len(children))}
	copy(t.children, children)
	return t
}

// Name returns the term's operator or symbol name.
func (t *Term) Name() string {
	return t.name
}

// Children returns the term's child class ids. The returned slice is the
// term's own storage; callers must not mutate it.
func (t *Term) Children() []ClassID {
	return t.children
}

// Arity returns the number of children.
func (t *Term) Arity() int {
	return len(t.children)
}

// key builds the hash-cons key for the term's current content. The key is
// only valid while the children list is unchanged; the rebuild loop removes
// a term from the table before canonicalizing it and reinserts afterwards.
func (t *Term) key() string {
	var b strings.Builder
	b.Grow(len(t.name) + len(t.children)*4)
	b.WriteString(t.name)
	for _, id := range t.children {
		b.WriteByte(0)
		b.WriteString(strconv.FormatInt(int64(id), 10))
	}
	return b.String()
}

// canonicalize rewrites every child id to its current union-find root.
func (t *Term) canonicalize(uf *UnionFind) {
	for i, id := range t.children {
		t.children[i] = uf.Find(id)
	}
}

// equalContent reports structural equality: same name, same child ids in
// the same positions. Pointer equality is a permitted fast path.
func (t *Term) equalContent(o *Term) bool {
	if t == o {
		return true
	}
	if t.name != o.name || len(t.children) != len(o.children) {
		return false
	}
	for i := range t.children {
		if t.children[i] != o.children[i] {
			return false
		}
	}
	return true
}

// lessContent orders terms by name, then arity, then children
// lexicographically. Used for deterministic sorting and deduplication.
func (t *Term) lessContent(o *Term) bool {
	if t.name != o.name {
		return t.name < o.name
	}
	if len(t.children) != len(o.children) {
		return len(t.children) < len(o.children)
	}
	for i := range t.children {
		if t.children[i] != o.children[i] {
			return t.children[i] < o.children[i]
		}
	}
	return false
}
