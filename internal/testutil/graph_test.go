package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/eqsat/internal/eg"
)

func TestSumChain(t *testing.T) {
	g := eg.New()

	root := SumChain(g, "a", "b", "c")
	g.RestoreInvariants()

	// a, b, c, a+b, (a+b)+c
	assert.Equal(t, 5, g.NumClasses())
	assert.Equal(t, "+", g.Class(root).Terms()[0].Name())
}

func TestSumChain_SingleLeaf(t *testing.T) {
	g := eg.New()

	root := SumChain(g, "a")
	g.RestoreInvariants()

	assert.Equal(t, 1, g.NumClasses())
	assert.Equal(t, "a", g.Class(root).Terms()[0].Name())
}

func TestChains_ShareLeaves(t *testing.T) {
	g := eg.New()

	sum := SumChain(g, "a", "b")
	product := ProductChain(g, "a", "b")
	g.RestoreInvariants()

	assert.NotEqual(t, g.Find(sum), g.Find(product))
	// a, b, a+b, a*b - the leaves are shared.
	assert.Equal(t, 4, g.NumClasses())
}

func TestSumChain_NoNamesPanics(t *testing.T) {
	g := eg.New()
	assert.Panics(t, func() { SumChain(g) })
}
