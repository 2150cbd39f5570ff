package eg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot_RoundTripPreservesFind(t *testing.T) {
	g := New()

	a := g.AddTerm("a")
	b := g.AddTerm("b")
	c := g.AddTerm("c")
	ab := g.AddOperation("+", []ClassID{a, b})
	abc := g.AddOperation("+", []ClassID{ab, c})
	g.Unite(a, b)
	g.RestoreInvariants()

	restored, err := FromSnapshot(g.Snapshot())
	require.NoError(t, err)

	for _, id := range []ClassID{a, b, c, ab, abc} {
		assert.Equal(t, g.Find(id), restored.Find(id))
	}
	assert.Equal(t, g.NumClasses(), restored.NumClasses())
	assert.Equal(t, g.NumTerms(), restored.NumTerms())
}

func TestSnapshot_RestoredGraphKeepsWorking(t *testing.T) {
	g := New()

	a := g.AddTerm("a")
	one := g.AddTerm("1")
	a1 := g.AddOperation("*", []ClassID{a, one})
	g.RestoreInvariants()

	restored, err := FromSnapshot(g.Snapshot())
	require.NoError(t, err)

	// The restored graph accepts rewrites.
	restored.Rewrite(RewriteRule{
		LeftHand:  pt("*", va("x"), pt("1")),
		RightHand: va("x"),
	})
	assert.Equal(t, restored.Find(a), restored.Find(a1))

	// The source graph is untouched.
	assert.NotEqual(t, g.Find(a), g.Find(a1))
}

func TestSnapshot_CommutativityRoundTrip(t *testing.T) {
	g := New()

	// Two arrangements of 10+20+30+40+50.
	n10 := g.AddTerm("10")
	n20 := g.AddTerm("20")
	n30 := g.AddTerm("30")
	n40 := g.AddTerm("40")
	n50 := g.AddTerm("50")

	s1 := g.AddOperation("+", []ClassID{n10, n20})
	s2 := g.AddOperation("+", []ClassID{s1, n30})
	s3 := g.AddOperation("+", []ClassID{s2, n40})
	expr1 := g.AddOperation("+", []ClassID{s3, n50})
	expr2 := g.AddOperation("+", []ClassID{n50, s3})

	g.RestoreInvariants()
	require.NotEqual(t, g.Find(expr1), g.Find(expr2))

	g.Rewrite(RewriteRule{
		LeftHand:  pt("+", va("x"), va("y")),
		RightHand: pt("+", va("y"), va("x")),
	})
	require.Equal(t, g.Find(expr1), g.Find(expr2))

	restored, err := FromSnapshot(g.Snapshot())
	require.NoError(t, err)

	assert.Equal(t, restored.Find(expr1), restored.Find(expr2))
	assert.Equal(t, g.Find(expr1), restored.Find(expr1))
	assert.Equal(t, g.NumClasses(), restored.NumClasses())
}

func TestSnapshot_DeterministicOrdering(t *testing.T) {
	g := New()

	a := g.AddTerm("a")
	b := g.AddTerm("b")
	g.AddOperation("+", []ClassID{a, b})
	g.RestoreInvariants()

	s := g.Snapshot()
	for i := 1; i < len(s.Terms); i++ {
		assert.Less(t, s.Terms[i-1].LeafID, s.Terms[i].LeafID)
	}
	for i := 1; i < len(s.Classes); i++ {
		assert.Less(t, s.Classes[i-1].ClassID, s.Classes[i].ClassID)
	}
}

func TestFromSnapshot_RejectsMalformedInput(t *testing.T) {
	tests := []struct {
		name string
		s    Snapshot
	}{
		{
			name: "union-find parent out of range",
			s:    Snapshot{Parents: []ClassID{0, 5}},
		},
		{
			name: "term leaf id out of range",
			s: Snapshot{
				Parents: []ClassID{0},
				Terms:   []SnapshotTerm{{LeafID: 3, Name: "a"}},
			},
		},
		{
			name: "term child out of range",
			s: Snapshot{
				Parents: []ClassID{0},
				Terms:   []SnapshotTerm{{LeafID: 0, Name: "f", Children: []ClassID{9}}},
			},
		},
		{
			name: "class references unknown term",
			s: Snapshot{
				Parents: []ClassID{0},
				Terms:   []SnapshotTerm{{LeafID: 0, Name: "a"}},
				Classes: []SnapshotClass{{ClassID: 0, TermLeafIDs: []ClassID{7}}},
			},
		},
		{
			name: "class references unknown parent",
			s: Snapshot{
				Parents: []ClassID{0},
				Terms:   []SnapshotTerm{{LeafID: 0, Name: "a"}},
				Classes: []SnapshotClass{{ClassID: 0, TermLeafIDs: []ClassID{0}, ParentLeafIDs: []ClassID{4}}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := FromSnapshot(tt.s)
			assert.Error(t, err)
			assert.Nil(t, g)
		})
	}
}
