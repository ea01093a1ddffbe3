// Package register provides tests for register file access
package register

import (
	"errors"
	"testing"

	"github.com/surfacelab/kpzsim/grid"
)

func TestLayoutAddressing(t *testing.T) {
	l := Layout{ParallelTasks: 8, GridSize: 64}

	tests := []struct {
		name string
		got  int
		want int
	}{
		{"seed words", l.SeedWords(), 34},
		{"grid base", l.GridBase(), 35},
		{"total words", l.Words(), 64*64 + 4*8 + 2 + 1},
		{"worker 0 first word", l.WorkerSeedAddr(0, 0), 1},
		{"worker 2 last word", l.WorkerSeedAddr(2, 3), 12},
		{"offset slot", l.OffsetSeedAddr(0), 33},
		{"offset slot high", l.OffsetSeedAddr(1), 34},
		{"grid origin", l.GridAddr(0, 0), 35},
		{"grid row major", l.GridAddr(1, 2), 35 + 2*64 + 1},
		{"grid last", l.GridAddr(63, 63), l.Words() - 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("Expected %d, got %d", tt.want, tt.got)
			}
		})
	}
}

func TestNewFileValidatesLayout(t *testing.T) {
	tests := []struct {
		name   string
		layout Layout
	}{
		{"zero workers", Layout{ParallelTasks: 0, GridSize: 8}},
		{"zero grid", Layout{ParallelTasks: 4, GridSize: 0}},
		{"negative workers", Layout{ParallelTasks: -1, GridSize: 8}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewFile(tt.layout); !errors.Is(err, ErrBadLayout) {
				t.Errorf("Expected ErrBadLayout, got %v", err)
			}
		})
	}
}

func TestReadWriteBounds(t *testing.T) {
	f, err := NewFile(Layout{ParallelTasks: 2, GridSize: 4})
	if err != nil {
		t.Fatalf("NewFile failed: %v", err)
	}

	if err := f.Write(5, 0xCAFEBABE); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	v, err := f.Read(5)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if v != 0xCAFEBABE {
		t.Errorf("Expected 0xCAFEBABE, got %#08x", v)
	}

	if _, err := f.Read(f.Words()); !errors.Is(err, ErrAddressOutOfRange) {
		t.Errorf("Expected ErrAddressOutOfRange, got %v", err)
	}
	if _, err := f.Read(-1); !errors.Is(err, ErrAddressOutOfRange) {
		t.Errorf("Expected ErrAddressOutOfRange, got %v", err)
	}
	if err := f.Write(f.Words(), 1); !errors.Is(err, ErrAddressOutOfRange) {
		t.Errorf("Expected ErrAddressOutOfRange, got %v", err)
	}

	// A failed write must not disturb the file.
	if v, _ := f.Read(5); v != 0xCAFEBABE {
		t.Errorf("Expected word 5 unchanged, got %#08x", v)
	}
}

func TestIterationWord(t *testing.T) {
	f, err := NewFile(Layout{ParallelTasks: 1, GridSize: 2})
	if err != nil {
		t.Fatalf("NewFile failed: %v", err)
	}

	if f.Iterations() != 0 {
		t.Errorf("Expected fresh file to hold 0 iterations, got %d", f.Iterations())
	}
	f.SetIterations(37)
	if f.Iterations() != 37 {
		t.Errorf("Expected 37 iterations, got %d", f.Iterations())
	}
	v, err := f.Read(IterationAddr)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if v != 37 {
		t.Errorf("Expected word 0 to hold 37, got %d", v)
	}
}

func TestGridRoundTrip(t *testing.T) {
	f, err := NewFile(Layout{ParallelTasks: 2, GridSize: 8})
	if err != nil {
		t.Fatalf("NewFile failed: %v", err)
	}

	g, err := grid.New(8)
	if err != nil {
		t.Fatalf("grid.New failed: %v", err)
	}
	g.Set(0, 0, grid.Node{Dx: true, Dy: true})
	g.Set(7, 0, grid.Node{Dx: true})
	g.Set(3, 5, grid.Node{Dy: true})

	if err := f.StoreGrid(g); err != nil {
		t.Fatalf("StoreGrid failed: %v", err)
	}

	got, err := grid.New(8)
	if err != nil {
		t.Fatalf("grid.New failed: %v", err)
	}
	if err := f.LoadGrid(got); err != nil {
		t.Fatalf("LoadGrid failed: %v", err)
	}

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if got.At(x, y) != g.At(x, y) {
				t.Errorf("Node (%d,%d): expected %+v, got %+v", x, y, g.At(x, y), got.At(x, y))
			}
		}
	}
}

func TestStoreGridPreservesReservedBits(t *testing.T) {
	f, err := NewFile(Layout{ParallelTasks: 1, GridSize: 4})
	if err != nil {
		t.Fatalf("NewFile failed: %v", err)
	}

	addr := f.Layout().GridAddr(2, 1)
	if err := f.Write(addr, 0xFFFFFFF0|2); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	g, err := grid.New(4)
	if err != nil {
		t.Fatalf("grid.New failed: %v", err)
	}
	if err := f.LoadGrid(g); err != nil {
		t.Fatalf("LoadGrid failed: %v", err)
	}
	if got := g.At(2, 1); got != (grid.Node{Dy: true}) {
		t.Errorf("Expected reserved bits ignored on load, got %+v", got)
	}

	g.Set(2, 1, grid.Node{Dx: true})
	if err := f.StoreGrid(g); err != nil {
		t.Fatalf("StoreGrid failed: %v", err)
	}
	v, err := f.Read(addr)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if v != 0xFFFFFFF0|1 {
		t.Errorf("Expected reserved bits preserved through store, got %#08x", v)
	}
}

func TestGridSizeMismatch(t *testing.T) {
	f, err := NewFile(Layout{ParallelTasks: 1, GridSize: 8})
	if err != nil {
		t.Fatalf("NewFile failed: %v", err)
	}
	g, err := grid.New(4)
	if err != nil {
		t.Fatalf("grid.New failed: %v", err)
	}

	if err := f.LoadGrid(g); !errors.Is(err, ErrGridSizeMismatch) {
		t.Errorf("Expected ErrGridSizeMismatch, got %v", err)
	}
	if err := f.StoreGrid(g); !errors.Is(err, ErrGridSizeMismatch) {
		t.Errorf("Expected ErrGridSizeMismatch, got %v", err)
	}
}
