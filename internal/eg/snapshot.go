package eg

import (
	"fmt"
	"sort"
)

// Snapshot is the plain-data view of a graph used for serialization and
// transport. Terms are identified by leaf id; classes rebind their term
// and parent lists through leaf-id lookup on restore.
//
// A snapshot taken before RestoreInvariants reproduces the same
// not-yet-canonical state, except for the pending dirty worklist, which is
// not captured. Canonicalize first when persisting.
type Snapshot struct {
	// Parents is the raw union-find forest.
	Parents []ClassID

	// Terms lists every term instance, ascending by leaf id.
	Terms []SnapshotTerm

	// Classes lists every live class, ascending by class id.
	Classes []SnapshotClass
}

// SnapshotTerm is one term instance keyed by the id it was added under.
type SnapshotTerm struct {
	LeafID   ClassID
	Name     string
	Children []ClassID
}

// SnapshotClass is one equivalence class with its term and parent sets
// referenced by leaf id.
type SnapshotClass struct {
	ClassID       ClassID
	TermLeafIDs   []ClassID
	ParentLeafIDs []ClassID
}

// Snapshot captures the graph's current state.
func (g *Graph) Snapshot() Snapshot {
	s := Snapshot{
		Parents: make([]ClassID, len(g.unionFind.parents)),
	}
	copy(s.Parents, g.unionFind.parents)

	s.Terms = make([]SnapshotTerm, 0, len(g.leafIDs))
	for t, leafID := range g.leafIDs {
		st := SnapshotTerm{
			LeafID:   leafID,
			Name:     t.name,
			Children: make([]ClassID, len(t.children)),
		}
		copy(st.Children, t.children)
		s.Terms = append(s.Terms, st)
	}
	sort.Slice(s.Terms, func(i, j int) bool { return s.Terms[i].LeafID < s.Terms[j].LeafID })

	s.Classes = make([]SnapshotClass, 0, len(g.classes))
	for id, c := range g.classes {
		sc := SnapshotClass{ClassID: id}
		for _, t := range c.terms {
			sc.TermLeafIDs = append(sc.TermLeafIDs, g.leafIDs[t])
		}
		for _, p := range c.parents {
			sc.ParentLeafIDs = append(sc.ParentLeafIDs, p.leafID)
		}
		s.Classes = append(s.Classes, sc)
	}
	sort.Slice(s.Classes, func(i, j int) bool { return s.Classes[i].ClassID < s.Classes[j].ClassID })

	return s
}

// FromSnapshot reconstructs a graph. Terms are rebuilt by leaf id, then
// each class's term and parent lists are rebound through the term table.
// A malformed snapshot yields an error and no partial graph.
func FromSnapshot(s Snapshot) (*Graph, error) {
	g := New()
	g.unionFind.parents = make([]ClassID, len(s.Parents))
	copy(g.unionFind.parents, s.Parents)

	n := ClassID(len(s.Parents))
	for i, p := range s.Parents {
		if p < 0 || p >= n {
			return nil, fmt.Errorf("eg: union-find parent %d out of range at %d", p, i)
		}
	}

	byLeafID := make(map[ClassID]*Term, len(s.Terms))
	for _, st := range s.Terms {
		if st.LeafID < 0 || st.LeafID >= n {
			return nil, fmt.Errorf("eg: term leaf id %d out of range", st.LeafID)
		}
		t := &Term{name: st.Name, children: make([]ClassID, len(st.Children))}
		copy(t.children, st.Children)
		for _, child := range t.children {
			if child < 0 || child >= n {
				return nil, fmt.Errorf("eg: term %d child id %d out of range", st.LeafID, child)
			}
		}
		g.table[t.key()] = tableEntry{term: t, id: st.LeafID}
		g.leafIDs[t] = st.LeafID
		byLeafID[st.LeafID] = t
	}

	for _, sc := range s.Classes {
		if sc.ClassID < 0 || sc.ClassID >= n {
			return nil, fmt.Errorf("eg: class id %d out of range", sc.ClassID)
		}
		c := &Class{id: sc.ClassID}
		for _, leafID := range sc.TermLeafIDs {
			t, ok := byLeafID[leafID]
			if !ok {
				return nil, fmt.Errorf("eg: class %d references unknown term %d", sc.ClassID, leafID)
			}
			c.terms = append(c.terms, t)
		}
		for _, leafID := range sc.ParentLeafIDs {
			t, ok := byLeafID[leafID]
			if !ok {
				return nil, fmt.Errorf("eg: class %d references unknown parent %d", sc.ClassID, leafID)
			}
			c.addParent(t, leafID)
		}
		g.classes[sc.ClassID] = c
	}

	return g, nil
}
