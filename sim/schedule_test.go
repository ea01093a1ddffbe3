package sim

import (
	"testing"

	"github.com/surfacelab/kpzsim/config"
)

func tilingConfig(size, local, parallel, resched int) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Grid.Size = size
	cfg.Tiling.LocalSize = local
	cfg.Tiling.ParallelTasks = parallel
	cfg.Tiling.Reschedules = resched
	return cfg
}

func TestDeriveGeometry(t *testing.T) {
	tests := []struct {
		name                  string
		size                  int
		local                 int
		parallel              int
		resched               int
		tilesPerSide          int
		tasksPerIteration     int
		schedulesPerIteration int
		pokesPerTask          int
	}{
		{"default lattice", 64, 8, 8, 2, 8, 64, 8, 32},
		{"small lattice", 16, 4, 4, 2, 4, 16, 4, 8},
		{"wide tiles", 32, 8, 4, 2, 4, 16, 4, 32},
		{"many reschedules", 32, 8, 4, 4, 4, 16, 4, 16},
		{"single tile", 8, 8, 1, 1, 1, 1, 1, 64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tilingConfig(tt.size, tt.local, tt.parallel, tt.resched)
			if err := cfg.Validate(); err != nil {
				t.Fatalf("Config should be valid, got %v", err)
			}

			geo := deriveGeometry(cfg)
			if geo.tilesPerSide != tt.tilesPerSide {
				t.Errorf("Expected %d tiles per side, got %d", tt.tilesPerSide, geo.tilesPerSide)
			}
			if geo.tasksPerIteration != tt.tasksPerIteration {
				t.Errorf("Expected %d tasks per iteration, got %d", tt.tasksPerIteration, geo.tasksPerIteration)
			}
			if geo.schedulesPerIteration != tt.schedulesPerIteration {
				t.Errorf("Expected %d rounds per group, got %d", tt.schedulesPerIteration, geo.schedulesPerIteration)
			}
			if geo.pokesPerTask != tt.pokesPerTask {
				t.Errorf("Expected %d pokes per task, got %d", tt.pokesPerTask, geo.pokesPerTask)
			}
			if geo.localMask != tt.local-1 {
				t.Errorf("Expected local mask %d, got %d", tt.local-1, geo.localMask)
			}
		})
	}
}

func TestGeometryCoversLattice(t *testing.T) {
	// The rounds of one iteration group must visit every lattice cell
	// exactly once, whatever the group offset. The exactly-once count
	// also proves the windows of any single round are disjoint.
	offsets := [][2]int{{0, 0}, {3, 5}, {7, 7}}

	for _, off := range offsets {
		cfg := tilingConfig(32, 8, 4, 2)
		geo := deriveGeometry(cfg)
		mask := geo.size - 1

		seen := make([]int, geo.size*geo.size)
		for r := 0; r < geo.schedulesPerIteration; r++ {
			for w := 0; w < geo.parallelTasks; w++ {
				baseX, baseY := geo.tileOrigin(r, w, off[0], off[1])
				for ly := 0; ly < geo.local; ly++ {
					for lx := 0; lx < geo.local; lx++ {
						x := (baseX + lx) & mask
						y := (baseY + ly) & mask
						seen[y*geo.size+x]++
					}
				}
			}
		}

		for i, count := range seen {
			if count != 1 {
				t.Fatalf("Expected cell (%d, %d) to be visited once with offset %v, got %d",
					i%geo.size, i/geo.size, off, count)
			}
		}
	}
}

func TestTileOrigin(t *testing.T) {
	geo := deriveGeometry(tilingConfig(16, 4, 4, 2))

	tests := []struct {
		name       string
		round      int
		worker     int
		offX, offY int
		wantX      int
		wantY      int
	}{
		{"first tile", 0, 0, 0, 0, 0, 0},
		{"last tile of first row", 0, 3, 0, 0, 12, 0},
		{"second round wraps to next row", 1, 0, 0, 0, 0, 4},
		{"last tile", 3, 3, 0, 0, 12, 12},
		{"offset shifts the origin", 0, 1, 3, 2, 7, 2},
		{"offset on the last tile", 3, 3, 3, 3, 15, 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := geo.tileOrigin(tt.round, tt.worker, tt.offX, tt.offY)
			if x != tt.wantX || y != tt.wantY {
				t.Errorf("Expected origin (%d, %d), got (%d, %d)", tt.wantX, tt.wantY, x, y)
			}
		})
	}
}
