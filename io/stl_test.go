package io

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const stlText = `solid tile
facet normal 0 0 1
  outer loop
    vertex 0 0 0
    vertex 2 0 0
    vertex 0 2 0
  endloop
endfacet
facet normal 0 0 1
  outer loop
    vertex 2 0 0
    vertex 2 2 0
    vertex 0 2 0
  endloop
endfacet
endsolid tile
`

func TestReadSTL(t *testing.T) {
	file := filepath.Join(t.TempDir(), "tile.stl")
	require.NoError(t, os.WriteFile(file, []byte(stlText), 0666))

	surf, err := ReadSTL(file)
	require.NoError(t, err)
	require.Len(t, surf.Tris, 2)

	assert.InDelta(t, 4.0, surf.TotalArea(), 1e-10)
	for i := range surf.Tris {
		n := surf.Tris[i].Normal
		assert.InDelta(t, 0.0, n[0], 1e-12)
		assert.InDelta(t, 0.0, n[1], 1e-12)
		assert.InDelta(t, 1.0, n[2], 1e-12)
	}
}

func TestReadSTLBadVertex(t *testing.T) {
	bad := `solid x
facet normal 0 0 1
  outer loop
    vertex 0 zero 0
    vertex 2 0 0
    vertex 0 2 0
  endloop
endfacet
endsolid x
`
	file := filepath.Join(t.TempDir(), "bad.stl")
	require.NoError(t, os.WriteFile(file, []byte(bad), 0666))

	_, err := ReadSTL(file)
	assert.Error(t, err)
}

func TestReadSTLEmpty(t *testing.T) {
	file := filepath.Join(t.TempDir(), "empty.stl")
	require.NoError(t, os.WriteFile(file, []byte("solid x\nendsolid x\n"), 0666))

	_, err := ReadSTL(file)
	assert.Error(t, err)
}
