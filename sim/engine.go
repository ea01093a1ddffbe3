package sim

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/surfacelab/kpzsim/config"
	"github.com/surfacelab/kpzsim/grid"
	"github.com/surfacelab/kpzsim/register"
)

// Engine evolves the lattice held in a register file according to the
// configured update rule. The file carries all run inputs: the
// iteration count, the seed block and the initial lattice. Only the
// grid block is written back, and only after a run completes.
type Engine struct {
	cfg    *config.Config
	file   *register.File
	logger *slog.Logger
	geo    geometry
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger the engine reports progress on. The
// default is slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// NewEngine creates an engine bound to cfg and file. The file layout
// must match the configured lattice size and worker count.
func NewEngine(cfg *config.Config, file *register.File, opts ...Option) (*Engine, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if file == nil {
		return nil, ErrNilFile
	}

	want := register.Layout{
		ParallelTasks: cfg.Tiling.ParallelTasks,
		GridSize:      cfg.Grid.Size,
	}
	if got := file.Layout(); got != want {
		return nil, fmt.Errorf("%w: file is %dx%d with %d workers, configuration wants %dx%d with %d workers",
			ErrLayoutMismatch,
			got.GridSize, got.GridSize, got.ParallelTasks,
			want.GridSize, want.GridSize, want.ParallelTasks)
	}

	e := &Engine{
		cfg:    cfg,
		file:   file,
		logger: slog.Default(),
		geo:    deriveGeometry(cfg),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Run executes the simulation. It reads the iteration count and seed
// block from the register file, imports the grid, sweeps it for the
// requested iterations and stores the final grid back into the file.
//
// Cancellation is honored between rounds. A canceled or failed run
// returns before the store, so the file keeps the lattice it was
// loaded with.
func (e *Engine) Run(ctx context.Context) (*Report, error) {
	start := time.Now()

	iterations := int(e.file.Iterations())
	pos, prob, offset, err := readSeedBlock(e.file)
	if err != nil {
		return nil, err
	}

	g, err := grid.New(e.geo.size)
	if err != nil {
		return nil, err
	}
	if err := e.file.LoadGrid(g); err != nil {
		return nil, err
	}

	tiles := make([]*grid.Tile, e.geo.parallelTasks)
	for w := range tiles {
		if tiles[w], err = grid.NewTile(e.geo.local); err != nil {
			return nil, err
		}
	}
	results := make([]result, e.geo.parallelTasks)

	groups := iterations * e.geo.reschedules
	report := &Report{Iterations: iterations}

	e.logger.Info("run starting",
		"grid_size", e.geo.size,
		"tile_size", e.geo.local,
		"workers", e.geo.parallelTasks,
		"iterations", iterations,
		"iteration_groups", groups,
		"rounds_per_group", e.geo.schedulesPerIteration,
		"pokes_per_task", e.geo.pokesPerTask)

	for gi := 0; gi < groups; gi++ {
		var draw uint32
		offset, draw = offset.Next()
		offX := int(draw) & e.geo.localMask
		offY := int(draw>>16) & e.geo.localMask
		report.IterationGroups++

		e.logger.Debug("iteration group",
			"group", gi, "offset_x", offX, "offset_y", offY)

		for r := 0; r < e.geo.schedulesPerIteration; r++ {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}

			var wg sync.WaitGroup
			for w := 0; w < e.geo.parallelTasks; w++ {
				baseX, baseY := e.geo.tileOrigin(r, w, offX, offY)
				g.ReadWindow(tiles[w], baseX, baseY)

				t := &task{
					worker: w,
					tile:   tiles[w],
					pos:    pos[w],
					prob:   prob[w],
					pokes:  e.geo.pokesPerTask,
					p:      e.cfg.Probability.P,
					q:      e.cfg.Probability.Q,
				}
				wg.Add(1)
				go func(w int, t *task) {
					defer wg.Done()
					results[w] = t.run()
				}(w, t)
			}
			wg.Wait()

			for w := 0; w < e.geo.parallelTasks; w++ {
				res := results[w]
				if res.err != nil {
					return nil, res.err
				}
				pos[w] = res.pos
				prob[w] = res.prob
				report.PyramidFlips += res.pyramid
				report.HoleFlips += res.hole

				baseX, baseY := e.geo.tileOrigin(r, w, offX, offY)
				g.WriteWindow(tiles[w], baseX, baseY)
			}
			report.Rounds++
			report.Pokes += e.geo.parallelTasks * e.geo.pokesPerTask
		}
	}

	if err := e.file.StoreGrid(g); err != nil {
		return nil, err
	}

	report.Elapsed = time.Since(start)
	e.logger.Info("run complete",
		"rounds", report.Rounds,
		"pokes", report.Pokes,
		"pyramid_flips", report.PyramidFlips,
		"hole_flips", report.HoleFlips,
		"elapsed", report.Elapsed)

	return report, nil
}
