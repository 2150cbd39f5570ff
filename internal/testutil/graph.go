// Package testutil provides shared graph fixtures for tests.
package testutil

import "github.com/roach88/eqsat/internal/eg"

// SumChain builds a left-associative sum over the named leaves, e.g.
// ((a+b)+c), and returns the root class id. With a single name it returns
// the bare leaf.
func SumChain(g *eg.Graph, names ...string) eg.ClassID {
	if len(names) == 0 {
		panic("testutil: SumChain needs at least one name")
	}
	acc := g.AddTerm(names[0])
	for _, name := range names[1:] {
		leaf := g.AddTerm(name)
		acc = g.AddOperation("+", []eg.ClassID{acc, leaf})
	}
	return acc
}

// ProductChain is SumChain with the "*" operator.
func ProductChain(g *eg.Graph, names ...string) eg.ClassID {
	if len(names) == 0 {
		panic("testutil: ProductChain needs at least one name")
	}
	acc := g.AddTerm(names[0])
	for _, name := range names[1:] {
		leaf := g.AddTerm(name)
		acc = g.AddOperation("*", []eg.ClassID{acc, leaf})
	}
	return acc
}
