package sim

import "github.com/surfacelab/kpzsim/config"

// geometry carries the constants derived from one configuration. All
// of them are fixed for the lifetime of a run.
type geometry struct {
	// size and local are the lattice and tile side lengths.
	size  int
	local int

	// localMask folds an offset draw onto a tile.
	localMask int

	// tilesPerSide is how many tiles cover one lattice side.
	tilesPerSide int

	// tasksPerIteration is the total tile count of one sweep.
	tasksPerIteration int

	// schedulesPerIteration is how many rounds one sweep takes.
	schedulesPerIteration int

	// parallelTasks is the worker count per round.
	parallelTasks int

	// reschedules is how many offset draws each iteration gets.
	reschedules int

	// pokesPerTask is the update attempt budget of one task.
	pokesPerTask int
}

// deriveGeometry expands a validated configuration into the run
// constants.
func deriveGeometry(cfg *config.Config) geometry {
	size := cfg.Grid.Size
	local := cfg.Tiling.LocalSize
	tilesPerSide := size / local
	tasks := tilesPerSide * tilesPerSide

	return geometry{
		size:                  size,
		local:                 local,
		localMask:             local - 1,
		tilesPerSide:          tilesPerSide,
		tasksPerIteration:     tasks,
		schedulesPerIteration: tasks / cfg.Tiling.ParallelTasks,
		parallelTasks:         cfg.Tiling.ParallelTasks,
		reschedules:           cfg.Tiling.Reschedules,
		pokesPerTask:          local * local / cfg.Tiling.Reschedules,
	}
}

// tileOrigin returns the top left lattice corner of the tile worker w
// sweeps in round r. Tiles are assigned in row-major order and shifted
// by the iteration group offsets; windows that reach past the lattice
// edge wrap when they are read and written.
func (g geometry) tileOrigin(r, w, offX, offY int) (int, int) {
	tile := w + r*g.parallelTasks
	px := tile % g.tilesPerSide
	py := tile / g.tilesPerSide
	return px*g.local + offX, py*g.local + offY
}
