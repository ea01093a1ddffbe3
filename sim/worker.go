package sim

import (
	"fmt"

	"github.com/surfacelab/kpzsim/grid"
	"github.com/surfacelab/kpzsim/prng"
)

// task is the unit of work one worker executes in a round: a private
// tile, the worker's two generators and a poke budget.
type task struct {
	worker int
	tile   *grid.Tile
	pos    prng.State
	prob   prng.State
	pokes  int
	p      uint32
	q      uint32
}

// result carries a finished task back to the engine by value.
type result struct {
	worker  int
	pos     prng.State
	prob    prng.State
	pyramid int
	hole    int
	err     error
}

// run executes the poke loop on the task's tile. Both generators
// advance exactly once per poke whether or not the poke lands, so
// generator consumption depends only on the budget, never on the tile
// contents. A panic is converted into an ErrWorkerFailure result.
func (t *task) run() (res result) {
	defer func() {
		if r := recover(); r != nil {
			res.err = fmt.Errorf("%w: worker %d: %v", ErrWorkerFailure, t.worker, r)
		}
	}()

	res.worker = t.worker
	side := t.tile.Side()
	mask := uint32(side - 1)

	var r1, r2 uint32
	for i := 0; i < t.pokes; i++ {
		t.pos, r1 = t.pos.Next()
		t.prob, r2 = t.prob.Next()

		x := int(r1 & mask)
		y := int((r1 >> 16) & mask)
		// The pattern looks right and down, so the far edges are
		// skipped. The draws above still count against the budget.
		if x == side-1 || y == side-1 {
			continue
		}

		pyramid, hole := applyPoke(t.tile, x, y, r2&0xFFFF, r2>>16, t.p, t.q)
		res.pyramid += pyramid
		res.hole += hole
	}

	res.pos = t.pos
	res.prob = t.prob
	return res
}

// applyPoke examines the node at (x, y) together with its right and
// down neighbors and flips an apex into a hole, or a hole into an apex,
// when the drawn probability clears the matching threshold. Exactly
// four bits change on a flip and none otherwise. Both coordinates must
// lie strictly inside the tile's far edges.
func applyPoke(tile *grid.Tile, x, y int, p1, p2, pThresh, qThresh uint32) (pyramid, hole int) {
	c := tile.At(x, y)
	r := tile.At(x+1, y)
	b := tile.At(x, y+1)

	switch {
	case c.Dx && c.Dy && !r.Dx && !b.Dy:
		if p1 < pThresh {
			tile.Set(x, y, grid.Node{})
			tile.Set(x+1, y, grid.Node{Dx: true, Dy: r.Dy})
			tile.Set(x, y+1, grid.Node{Dx: b.Dx, Dy: true})
			pyramid = 1
		}
	case !c.Dx && !c.Dy && r.Dx && b.Dy:
		if p2 < qThresh {
			tile.Set(x, y, grid.Node{Dx: true, Dy: true})
			tile.Set(x+1, y, grid.Node{Dx: false, Dy: r.Dy})
			tile.Set(x, y+1, grid.Node{Dx: b.Dx, Dy: false})
			hole = 1
		}
	}
	return pyramid, hole
}
