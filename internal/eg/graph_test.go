package eg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraph_AddTermIsHashConsed(t *testing.T) {
	g := New()

	a1 := g.AddTerm("a")
	a2 := g.AddTerm("a")
	b := g.AddTerm("b")

	assert.Equal(t, a1, a2)
	assert.NotEqual(t, a1, b)
	assert.Equal(t, 2, g.NumClasses())
}

func TestGraph_AddOperationIsHashConsed(t *testing.T) {
	g := New()

	a := g.AddTerm("a")
	b := g.AddTerm("b")

	ab1 := g.AddOperation("+", []ClassID{a, b})
	ab2 := g.AddOperation("+", []ClassID{a, b})
	ba := g.AddOperation("+", []ClassID{b, a})

	assert.Equal(t, ab1, ab2)
	// Argument order is structural.
	assert.NotEqual(t, ab1, ba)
	assert.Equal(t, 4, g.NumClasses())
}

func TestGraph_AddOperationUnknownChildPanics(t *testing.T) {
	g := New()
	g.AddTerm("a")

	assert.Panics(t, func() {
		g.AddOperation("+", []ClassID{0, 7})
	})
}

func TestGraph_UniteReturnsFalseWhenAlreadyEqual(t *testing.T) {
	g := New()

	a := g.AddTerm("a")
	b := g.AddTerm("b")

	assert.True(t, g.Unite(a, b))
	assert.False(t, g.Unite(a, b))
	assert.False(t, g.Unite(a, a))
	assert.Equal(t, g.Find(a), g.Find(b))
}

func TestGraph_Congruence(t *testing.T) {
	g := New()

	// given
	a := g.AddTerm("a")
	x := g.AddTerm("x")
	y := g.AddTerm("y")
	ax := g.AddOperation("*", []ClassID{a, x})
	ay := g.AddOperation("*", []ClassID{a, y})

	// when
	g.Unite(x, y)
	g.RestoreInvariants()

	// then
	assert.Equal(t, 3, g.NumClasses())
	assert.Equal(t, g.Find(x), g.Find(y))
	assert.Equal(t, g.Find(ax), g.Find(ay))
	assert.NotEqual(t, g.Find(ax), g.Find(a))

	checkInvariants(t, g)
}

func TestGraph_CongruenceCascades(t *testing.T) {
	g := New()

	// f(f(x)) and f(f(y)) must collapse transitively once x = y.
	x := g.AddTerm("x")
	y := g.AddTerm("y")
	fx := g.AddOperation("f", []ClassID{x})
	fy := g.AddOperation("f", []ClassID{y})
	ffx := g.AddOperation("f", []ClassID{fx})
	ffy := g.AddOperation("f", []ClassID{fy})

	g.Unite(x, y)
	g.RestoreInvariants()

	assert.Equal(t, g.Find(fx), g.Find(fy))
	assert.Equal(t, g.Find(ffx), g.Find(ffy))
	assert.NotEqual(t, g.Find(ffx), g.Find(fx))
	assert.Equal(t, 3, g.NumClasses())

	checkInvariants(t, g)
}

func TestGraph_LeafIDStaysValidAfterUnite(t *testing.T) {
	g := New()

	a := g.AddTerm("a")
	b := g.AddTerm("b")
	c := g.AddTerm("c")
	g.Unite(a, b)
	g.Unite(b, c)
	g.RestoreInvariants()

	// The originally returned ids still resolve.
	root := g.Find(a)
	assert.Equal(t, root, g.Find(b))
	assert.Equal(t, root, g.Find(c))
	assert.Equal(t, 1, g.NumClasses())
}

func TestGraph_ClassesIterationIsSorted(t *testing.T) {
	g := New()

	g.AddTerm("c")
	g.AddTerm("a")
	g.AddTerm("b")

	ids := g.Classes()
	require.Len(t, ids, 3)
	for i := 1; i < len(ids); i++ {
		assert.Less(t, ids[i-1], ids[i])
	}
}

func TestGraph_ClassTermsAfterMerge(t *testing.T) {
	g := New()

	x := g.AddTerm("x")
	y := g.AddTerm("y")
	g.Unite(x, y)
	g.RestoreInvariants()

	c := g.Class(x)
	require.Len(t, c.Terms(), 2)
	names := []string{c.Terms()[0].Name(), c.Terms()[1].Name()}
	assert.ElementsMatch(t, []string{"x", "y"}, names)
}
