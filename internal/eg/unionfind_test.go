package eg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnionFind_AddSet(t *testing.T) {
	var uf UnionFind

	assert.Equal(t, ClassID(0), uf.AddSet())
	assert.Equal(t, ClassID(1), uf.AddSet())
	assert.Equal(t, ClassID(2), uf.AddSet())
	assert.Equal(t, 3, uf.Len())
}

func TestUnionFind_FindFresh(t *testing.T) {
	var uf UnionFind

	a := uf.AddSet()
	b := uf.AddSet()

	assert.Equal(t, a, uf.Find(a))
	assert.Equal(t, b, uf.Find(b))
}

func TestUnionFind_Unite(t *testing.T) {
	var uf UnionFind

	a := uf.AddSet()
	b := uf.AddSet()
	c := uf.AddSet()

	root := uf.Unite(a, b)
	require.Equal(t, a, root)

	assert.Equal(t, a, uf.Find(b))
	assert.Equal(t, a, uf.Find(a))
	assert.Equal(t, c, uf.Find(c))
}

func TestUnionFind_FindIsIdempotent(t *testing.T) {
	var uf UnionFind

	ids := make([]ClassID, 8)
	for i := range ids {
		ids[i] = uf.AddSet()
	}
	uf.Unite(ids[0], ids[1])
	uf.Unite(ids[2], ids[3])
	uf.Unite(ids[0], ids[2])
	uf.Unite(ids[4], ids[5])

	for _, id := range ids {
		root := uf.Find(id)
		assert.Equal(t, root, uf.Find(root))
	}
}

func TestUnionFind_PathHalvingPreservesRoots(t *testing.T) {
	var uf UnionFind

	// Build a chain 3 -> 2 -> 1 -> 0 by uniting roots pairwise.
	ids := make([]ClassID, 4)
	for i := range ids {
		ids[i] = uf.AddSet()
	}
	uf.Unite(ids[2], ids[3])
	uf.Unite(ids[1], ids[2])
	uf.Unite(ids[0], ids[1])

	assert.Equal(t, ids[0], uf.Find(ids[3]))
	// Every element resolves to the same root after compression.
	for _, id := range ids {
		assert.Equal(t, ids[0], uf.Find(id))
	}
}

func TestUnionFind_FindUnknownPanics(t *testing.T) {
	var uf UnionFind
	uf.AddSet()

	assert.Panics(t, func() { uf.Find(5) })
	assert.Panics(t, func() { uf.Find(-1) })
}

func TestUnionFind_UniteNonRootPanics(t *testing.T) {
	var uf UnionFind

	a := uf.AddSet()
	b := uf.AddSet()
	c := uf.AddSet()
	uf.Unite(a, b)

	// b is no longer a root.
	assert.Panics(t, func() { uf.Unite(b, c) })
}
