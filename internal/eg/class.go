package eg

import "sort"

// termWithLeafID pairs a term with the id it was first added under.
// The leaf id stays valid as a Find input even after the class it named
// has been absorbed; the canonical id is obtained by walking union-find.
type termWithLeafID struct {
	term   *Term
	leafID ClassID
}

// Class is an equivalence class: a set of terms known equivalent, plus
// back-references to the parent terms elsewhere in the graph that list
// this class among their children.
type Class struct {
	id      ClassID
	terms   []*Term
	parents []termWithLeafID
}

func newClass(id ClassID, seed *Term) *Class {
	return &Class{id: id, terms: []*Term{seed}}
}

// ID returns the class id assigned at construction.
func (c *Class) ID() ClassID {
	return c.id
}

// Terms returns the class's terms. The returned slice is the class's own
// storage; callers must not mutate it.
func (c *Class) Terms() []*Term {
	return c.terms
}

func (c *Class) numParents() int {
	return len(c.parents)
}

// addParent records that term (added under leafID) references this class
// among its children. Duplicates are allowed and removed during dedup.
func (c *Class) addParent(term *Term, leafID ClassID) {
	c.parents = append(c.parents, termWithLeafID{term: term, leafID: leafID})
}

// uniteWith absorbs the other class's terms and parents.
// The caller guarantees other != c.
func (c *Class) uniteWith(other *Class) {
	if other == c {
		panic("eg: class united with itself")
	}
	c.terms = append(c.terms, other.terms...)
	c.parents = append(c.parents, other.parents...)
}

// restoreInvariants rewrites every owned term's children through the
// union-find, then sorts and deduplicates terms and parents structurally.
// Dedup is required for deterministic iteration, not just asymptotics.
func (c *Class) restoreInvariants(uf *UnionFind) {
	for _, t := range c.terms {
		t.canonicalize(uf)
	}

	sort.Slice(c.terms, func(i, j int) bool {
		return c.terms[i].lessContent(c.terms[j])
	})
	c.terms = dedupTerms(c.terms)

	sort.Slice(c.parents, func(i, j int) bool {
		pi, pj := c.parents[i], c.parents[j]
		if !pi.term.equalContent(pj.term) {
			return pi.term.lessContent(pj.term)
		}
		return pi.leafID < pj.leafID
	})
	c.parents = dedupParents(c.parents)
}

func dedupTerms(terms []*Term) []*Term {
	if len(terms) < 2 {
		return terms
	}
	out := terms[:1]
	for _, t := range terms[1:] {
		if !t.equalContent(out[len(out)-1]) {
			out = append(out, t)
		}
	}
	return out
}

func dedupParents(parents []termWithLeafID) []termWithLeafID {
	if len(parents) < 2 {
		return parents
	}
	out := parents[:1]
	for _, p := range parents[1:] {
		if !p.term.equalContent(out[len(out)-1].term) {
			out = append(out, p)
		}
	}
	return out
}
