// Package grid provides the toroidal slope lattice evolved by the simulation engine
package grid

import (
	"errors"

	"github.com/surfacelab/kpzsim/prng"
)

// ErrSizeNotPow2 is returned when a lattice or tile side is not a
// positive power of two.
var ErrSizeNotPow2 = errors.New("size must be a positive power of two")

// Node is the state of one lattice site. Dx set means the surface steps
// up by one from (x, y) to (x+1, y), clear means it steps down. Dy is
// the same along the y axis.
type Node struct {
	Dx bool
	Dy bool
}

// Grid is a square toroidal lattice of nodes. The side length is a
// power of two so coordinates wrap with a mask.
type Grid struct {
	size int
	mask int
	dx   []bool
	dy   []bool
}

// New creates a grid of the given side length with every node clear.
func New(size int) (*Grid, error) {
	if size <= 0 || size&(size-1) != 0 {
		return nil, ErrSizeNotPow2
	}
	return &Grid{
		size: size,
		mask: size - 1,
		dx:   make([]bool, size*size),
		dy:   make([]bool, size*size),
	}, nil
}

// Size returns the side length of the grid.
func (g *Grid) Size() int {
	return g.size
}

// At returns the node at (x, y). Coordinates wrap toroidally, so any
// int is valid, including negative values.
func (g *Grid) At(x, y int) Node {
	i := (y&g.mask)*g.size + (x & g.mask)
	return Node{Dx: g.dx[i], Dy: g.dy[i]}
}

// Set stores the node at (x, y), wrapping toroidally.
func (g *Grid) Set(x, y int, n Node) {
	i := (y&g.mask)*g.size + (x & g.mask)
	g.dx[i] = n.Dx
	g.dy[i] = n.Dy
}

// Randomize fills the grid from the generator state, one draw per node
// in row-major order, and returns the advanced state. Bit 0 of each
// draw becomes Dx and bit 1 becomes Dy.
func (g *Grid) Randomize(st prng.State) prng.State {
	var v uint32
	for i := range g.dx {
		st, v = st.Next()
		g.dx[i] = v&1 != 0
		g.dy[i] = v&2 != 0
	}
	return st
}

// CountNodes tallies the nodes by state. The index is the Dx bit plus
// twice the Dy bit.
func (g *Grid) CountNodes() [4]int {
	var counts [4]int
	for i := range g.dx {
		k := 0
		if g.dx[i] {
			k |= 1
		}
		if g.dy[i] {
			k |= 2
		}
		counts[k]++
	}
	return counts
}

// Tile is a square window of nodes detached from a grid. Workers mutate
// tiles privately and merge them back once a round completes. Tile
// coordinates do not wrap.
type Tile struct {
	side int
	dx   []bool
	dy   []bool
}

// NewTile creates an empty tile of the given side length.
func NewTile(side int) (*Tile, error) {
	if side <= 0 || side&(side-1) != 0 {
		return nil, ErrSizeNotPow2
	}
	return &Tile{
		side: side,
		dx:   make([]bool, side*side),
		dy:   make([]bool, side*side),
	}, nil
}

// Side returns the side length of the tile.
func (t *Tile) Side() int {
	return t.side
}

// At returns the node at (x, y). Both coordinates must lie inside the
// tile.
func (t *Tile) At(x, y int) Node {
	i := y*t.side + x
	return Node{Dx: t.dx[i], Dy: t.dy[i]}
}

// Set stores the node at (x, y). Both coordinates must lie inside the
// tile.
func (t *Tile) Set(x, y int, n Node) {
	i := y*t.side + x
	t.dx[i] = n.Dx
	t.dy[i] = n.Dy
}

// ReadWindow copies the square region whose top left corner is
// (baseX, baseY) into the tile. Each cell wraps around the grid edges
// independently, so windows that straddle an edge continue on the
// opposite side.
func (g *Grid) ReadWindow(t *Tile, baseX, baseY int) {
	for ly := 0; ly < t.side; ly++ {
		gy := (baseY + ly) & g.mask
		for lx := 0; lx < t.side; lx++ {
			gx := (baseX + lx) & g.mask
			i := gy*g.size + gx
			j := ly*t.side + lx
			t.dx[j] = g.dx[i]
			t.dy[j] = g.dy[i]
		}
	}
}

// WriteWindow copies the tile back over the region it was read from,
// wrapping each cell the same way ReadWindow does.
func (g *Grid) WriteWindow(t *Tile, baseX, baseY int) {
	for ly := 0; ly < t.side; ly++ {
		gy := (baseY + ly) & g.mask
		for lx := 0; lx < t.side; lx++ {
			gx := (baseX + lx) & g.mask
			i := gy*g.size + gx
			j := ly*t.side + lx
			g.dx[i] = t.dx[j]
			g.dy[i] = t.dy[j]
		}
	}
}
