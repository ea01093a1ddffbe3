package sim

import (
	"context"
	"testing"

	"github.com/surfacelab/kpzsim/grid"
	"github.com/surfacelab/kpzsim/prng"
	"github.com/surfacelab/kpzsim/register"
)

func benchmarkEngine(b *testing.B, size, local, parallel, resched, iters int) {
	cfg := tilingConfig(size, local, parallel, resched)
	cfg.Run.Iterations = iters
	logger := quietLogger()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		file, err := register.NewFile(register.Layout{
			ParallelTasks: parallel,
			GridSize:      size,
		})
		if err != nil {
			b.Fatalf("Failed to create register file: %v", err)
		}
		file.SetIterations(uint32(iters))
		if err := WriteSeedBlock(file, prng.NewTableSource()); err != nil {
			b.Fatalf("Failed to write seed block: %v", err)
		}
		g, err := grid.New(size)
		if err != nil {
			b.Fatalf("Failed to create grid: %v", err)
		}
		g.Randomize(prng.FromWords(0x89ABCDEF, 0x01234567))
		if err := file.StoreGrid(g); err != nil {
			b.Fatalf("Failed to store grid: %v", err)
		}
		engine, err := NewEngine(cfg, file, WithLogger(logger))
		if err != nil {
			b.Fatalf("Failed to create engine: %v", err)
		}
		b.StartTimer()

		if _, err := engine.Run(context.Background()); err != nil {
			b.Fatalf("Run failed: %v", err)
		}
	}
}

func BenchmarkEngineSmall(b *testing.B) {
	benchmarkEngine(b, 16, 4, 4, 2, 1)
}

func BenchmarkEngineDefault(b *testing.B) {
	benchmarkEngine(b, 64, 8, 8, 2, 1)
}

func BenchmarkEngineWide(b *testing.B) {
	benchmarkEngine(b, 128, 8, 16, 2, 1)
}
