package sim

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/surfacelab/kpzsim/config"
	"github.com/surfacelab/kpzsim/grid"
	"github.com/surfacelab/kpzsim/logging"
	"github.com/surfacelab/kpzsim/prng"
	"github.com/surfacelab/kpzsim/register"
)

// Runner wires configuration, logging and seeding into a complete run
// against a freshly allocated register file. It is the host side of
// the protocol: it builds the file the engine consumes.
type Runner struct {
	cfg     *config.Config
	logger  *slog.Logger
	source  prng.Source
	initial *grid.Grid
}

// NewRunner builds a runner for cfg. A nil cfg loads configuration
// from the usual search paths and the environment.
//
// The seed source follows the configuration: deterministic runs draw
// from the published seed table, everything else from crypto/rand.
func NewRunner(cfg *config.Config) (*Runner, error) {
	if cfg == nil {
		loaded, err := config.NewLoader().AutoLoad()
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logCfg := cfg.Log
	logCfg.Level = cfg.GetLogLevel()
	logger, err := logging.New(logCfg)
	if err != nil {
		return nil, err
	}
	logger = logger.With("app", cfg.App.Name, "version", cfg.App.Version)

	var source prng.Source
	if cfg.Run.DeterministicSeed {
		source = prng.NewTableSource()
		if cfg.IsProduction() {
			logger.Warn("deterministic seeding enabled in production")
		}
	} else {
		source = prng.NewCryptoSource()
	}

	return &Runner{cfg: cfg, logger: logger, source: source}, nil
}

// NewRunnerFromProvider builds a runner from the provider's current
// configuration.
func NewRunnerFromProvider(p config.Provider) (*Runner, error) {
	cfg, err := p.Load()
	if err != nil {
		return nil, err
	}
	return NewRunner(cfg)
}

// SetSource overrides the seed source chosen by the configuration.
func (r *Runner) SetSource(src prng.Source) *Runner {
	r.source = src
	return r
}

// SetLogger overrides the logger built from the configuration.
func (r *Runner) SetLogger(logger *slog.Logger) *Runner {
	r.logger = logger
	return r
}

// SetGrid sets the initial lattice. Without it runs start from a
// cleared lattice, which the update rule never disturbs.
func (r *Runner) SetGrid(g *grid.Grid) *Runner {
	r.initial = g
	return r
}

// Run allocates a register file for the configuration, seeds it, runs
// the engine on it and returns the file alongside the run report. The
// returned file holds the final lattice.
func (r *Runner) Run(ctx context.Context) (*register.File, *Report, error) {
	file, err := register.NewFile(register.Layout{
		ParallelTasks: r.cfg.Tiling.ParallelTasks,
		GridSize:      r.cfg.Grid.Size,
	})
	if err != nil {
		return nil, nil, err
	}

	file.SetIterations(uint32(r.cfg.Run.Iterations))
	if err := WriteSeedBlock(file, r.source); err != nil {
		return nil, nil, err
	}
	if r.initial != nil {
		if err := file.StoreGrid(r.initial); err != nil {
			return nil, nil, err
		}
	}

	engine, err := NewEngine(r.cfg, file, WithLogger(r.logger))
	if err != nil {
		return nil, nil, err
	}

	report, err := engine.Run(ctx)
	if err != nil {
		return nil, nil, err
	}
	return file, report, nil
}
