package grid

import "math"

// HeightField reconstructs relative surface heights from the slope
// bits, anchored at h[0][0] = 0. The first row is integrated along x
// and every column is then integrated along y, so the result is exact
// for consistent slope fields and a best-effort diagnostic otherwise.
// The returned slices are indexed [y][x].
func (g *Grid) HeightField() [][]int {
	h := make([][]int, g.size)
	for y := range h {
		h[y] = make([]int, g.size)
	}
	for x := 0; x < g.size-1; x++ {
		h[0][x+1] = h[0][x] + step(g.dx[x])
	}
	for y := 0; y < g.size-1; y++ {
		row := y * g.size
		for x := 0; x < g.size; x++ {
			h[y+1][x] = h[y][x] + step(g.dy[row+x])
		}
	}
	return h
}

// Roughness returns the root mean square deviation of the height field
// from its mean, the standard interface width of the surface.
func (g *Grid) Roughness() float64 {
	h := g.HeightField()
	n := float64(g.size * g.size)

	var sum float64
	for _, row := range h {
		for _, v := range row {
			sum += float64(v)
		}
	}
	mean := sum / n

	var sq float64
	for _, row := range h {
		for _, v := range row {
			d := float64(v) - mean
			sq += d * d
		}
	}
	return math.Sqrt(sq / n)
}

func step(up bool) int {
	if up {
		return 1
	}
	return -1
}
