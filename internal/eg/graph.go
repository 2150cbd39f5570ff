package eg

import (
	"fmt"
	"sort"
)

// tableEntry records the term instance that owns a hash-cons key and the
// leaf id it was added under.
type tableEntry struct {
	term *Term
	id   ClassID
}

// Graph is the e-graph orchestrator. It exclusively owns the classes; terms
// are shared between the class that lists them and the parent lists of
// their child classes.
//
// The zero value is not usable; construct with New.
type Graph struct {
	unionFind UnionFind

	// classes maps canonical class id to the class. Absorbed ids are
	// removed here but stay resolvable through the union-find forever.
	classes map[ClassID]*Class

	// table is the hash-cons: canonical term content to owning term and
	// leaf id. Keys go stale when child classes merge; the rebuild loop
	// removes an entry before mutating its term.
	table map[string]tableEntry

	// leafIDs records every term instance ever added with its leaf id.
	// Entries are never removed; serialization walks this registry.
	leafIDs map[*Term]ClassID

	// dirty holds terms whose canonicalized children may have changed
	// since their table key was computed.
	dirty []termWithLeafID
}

// New creates an empty e-graph.
func New() *Graph {
	return &Graph{
		classes: make(map[ClassID]*Class),
		table:   make(map[string]tableEntry),
		leafIDs: make(map[*Term]ClassID),
	}
}

// AddTerm adds a leaf symbol and returns its class id.
// Adding the same symbol twice returns the original id.
func (g *Graph) AddTerm(name string) ClassID {
	return g.add(newLeafTerm(name))
}

// AddOperation adds an operator application over existing class ids and
// returns its class id. The children list is position-sensitive. Panics if
// a child id does not resolve to a present class.
func (g *Graph) AddOperation(name string, children []ClassID) ClassID {
	return g.add(newOperationTerm(name, children))
}

// add hash-conses the term. On a structural hit the stored id is returned;
// otherwise a fresh class is allocated, the term is registered as a parent
// of each canonical child class, and the term joins the dirty worklist.
func (g *Graph) add(t *Term) ClassID {
	if existing, ok := g.table[t.key()]; ok {
		return existing.id
	}

	newID := g.unionFind.AddSet()

	for _, childID := range t.children {
		childRoot := g.unionFind.Find(childID)
		childClass, ok := g.classes[childRoot]
		if !ok {
			panic(fmt.Sprintf("eg: child id %d has no class", childID))
		}
		childClass.addParent(t, newID)
	}

	g.classes[newID] = newClass(newID, t)
	g.table[t.key()] = tableEntry{term: t, id: newID}
	g.leafIDs[t] = newID
	g.dirty = append(g.dirty, termWithLeafID{term: t, leafID: newID})

	return newID
}

// Find returns the canonical root for id. The id must have been returned
// by AddTerm or AddOperation on this graph; unknown ids panic.
func (g *Graph) Find(id ClassID) ClassID {
	return g.unionFind.Find(id)
}

// Unite asserts that a and b are equivalent. Returns false if they already
// share a root. The class with more parents survives, which keeps the
// dirty worklist smaller in the common case; the dead class's parents are
// enqueued for re-canonicalization.
//
// Callers must follow up with RestoreInvariants before relying on
// congruence; Rewrite does so automatically.
func (g *Graph) Unite(a, b ClassID) bool {
	root1 := g.unionFind.Find(a)
	root2 := g.unionFind.Find(b)
	if root1 == root2 {
		return false
	}

	if g.classes[root1].numParents() < g.classes[root2].numParents() {
		root1, root2 = root2, root1
	}

	g.unionFind.Unite(root1, root2)

	survivor := g.classes[root1]
	dead := g.classes[root2]

	g.dirty = append(g.dirty, dead.parents...)
	survivor.uniteWith(dead)
	delete(g.classes, root2)

	return true
}

// RestoreInvariants repairs congruence closure after unions.
//
// It drains the dirty worklist to fixpoint: each term is removed from the
// hash-cons table under its stale key, has its children rewritten through
// Find, and is either reinserted or discovered to alias an existing entry,
// in which case the two classes are united - possibly enqueueing more
// dirty terms. Afterwards every class sorts and deduplicates its terms
// and parents.
//
// Terminates because each iteration either shrinks the worklist or merges
// two distinct classes, and no new terms are added here.
func (g *Graph) RestoreInvariants() {
	for len(g.dirty) > 0 {
		last := len(g.dirty) - 1
		updated := g.dirty[last]
		g.dirty = g.dirty[:last]

		// The table key depends on child canonicalization; remove the
		// entry before mutating the term.
		delete(g.table, updated.term.key())

		updated.term.canonicalize(&g.unionFind)

		if existing, ok := g.table[updated.term.key()]; ok {
			g.Unite(existing.id, updated.leafID)
		} else {
			g.table[updated.term.key()] = tableEntry{term: updated.term, id: updated.leafID}
		}
	}

	for _, c := range g.classes {
		c.restoreInvariants(&g.unionFind)
	}
}

// NumClasses reports the number of live equivalence classes.
func (g *Graph) NumClasses() int {
	return len(g.classes)
}

// NumTerms reports the number of term instances ever added.
func (g *Graph) NumTerms() int {
	return len(g.leafIDs)
}

// Classes returns the canonical ids of all live classes in ascending
// order. The slice is freshly allocated; it is a snapshot, not a view.
func (g *Graph) Classes() []ClassID {
	ids := make([]ClassID, 0, len(g.classes))
	for id := range g.classes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Class returns the class rooted at Find(id). Panics on unknown ids.
func (g *Graph) Class(id ClassID) *Class {
	root := g.unionFind.Find(id)
	c, ok := g.classes[root]
	if !ok {
		panic(fmt.Sprintf("eg: no class rooted at %d", root))
	}
	return c
}
