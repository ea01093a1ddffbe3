// Package register provides the word-addressable memory shared between host and engine
package register

import (
	"fmt"

	"github.com/surfacelab/kpzsim/grid"
)

const (
	// IterationAddr is the address of the iteration count word.
	IterationAddr = 0

	// SeedBase is the address of the first seed word.
	SeedBase = 1

	// WordsPerWorker is the number of seed words each worker slot
	// occupies: two 32-bit halves for each of its two generators.
	WordsPerWorker = 4
)

// Layout describes how the register address space is carved up for a
// given run shape. Word 0 holds the iteration count, the seed block
// follows, and the grid occupies the rest in row-major order.
type Layout struct {
	// ParallelTasks is the number of worker seed slots.
	ParallelTasks int

	// GridSize is the side length of the lattice.
	GridSize int
}

// SeedWords returns the length of the seed block: four words per worker
// plus two for the shared offset generator.
func (l Layout) SeedWords() int {
	return WordsPerWorker*l.ParallelTasks + 2
}

// GridBase returns the address of the first grid word.
func (l Layout) GridBase() int {
	return SeedBase + l.SeedWords()
}

// Words returns the total size of the address space in words.
func (l Layout) Words() int {
	return l.GridBase() + l.GridSize*l.GridSize
}

// WorkerSeedAddr returns the address of seed word k of worker w. Words
// 0 and 1 are the halves of the position generator, words 2 and 3 the
// halves of the probability generator, low half first.
func (l Layout) WorkerSeedAddr(w, k int) int {
	return SeedBase + WordsPerWorker*w + k
}

// OffsetSeedAddr returns the address of word k of the shared offset
// generator slot, low half first.
func (l Layout) OffsetSeedAddr(k int) int {
	return SeedBase + WordsPerWorker*l.ParallelTasks + k
}

// GridAddr returns the address of the grid word for lattice coordinates
// (x, y), which must already lie inside the lattice.
func (l Layout) GridAddr(x, y int) int {
	return l.GridBase() + y*l.GridSize + x
}

// validate reports whether the layout describes a usable address space.
func (l Layout) validate() error {
	if l.ParallelTasks < 1 {
		return fmt.Errorf("%w: parallel tasks %d", ErrBadLayout, l.ParallelTasks)
	}
	if l.GridSize < 1 {
		return fmt.Errorf("%w: grid size %d", ErrBadLayout, l.GridSize)
	}
	return nil
}

// File is a flat word-addressable register memory. Any access outside
// its address space fails with ErrAddressOutOfRange; there are no side
// effects on failure.
type File struct {
	layout Layout
	words  []uint32
}

// NewFile allocates a zeroed register file for the layout.
func NewFile(layout Layout) (*File, error) {
	if err := layout.validate(); err != nil {
		return nil, err
	}
	return &File{
		layout: layout,
		words:  make([]uint32, layout.Words()),
	}, nil
}

// Layout returns the layout the file was allocated for.
func (f *File) Layout() Layout {
	return f.layout
}

// Words returns the size of the address space in words.
func (f *File) Words() int {
	return len(f.words)
}

// Read returns the word at addr.
func (f *File) Read(addr int) (uint32, error) {
	if addr < 0 || addr >= len(f.words) {
		return 0, fmt.Errorf("%w: read %d of %d words", ErrAddressOutOfRange, addr, len(f.words))
	}
	return f.words[addr], nil
}

// Write stores v at addr.
func (f *File) Write(addr int, v uint32) error {
	if addr < 0 || addr >= len(f.words) {
		return fmt.Errorf("%w: write %d of %d words", ErrAddressOutOfRange, addr, len(f.words))
	}
	f.words[addr] = v
	return nil
}

// Iterations returns the iteration count word.
func (f *File) Iterations() uint32 {
	return f.words[IterationAddr]
}

// SetIterations stores the iteration count word.
func (f *File) SetIterations(n uint32) {
	f.words[IterationAddr] = n
}

// LoadGrid decodes the grid block into g, whose size must match the
// layout. Reserved bits above the node mask are left untouched in the
// file and ignored here.
func (f *File) LoadGrid(g *grid.Grid) error {
	if g.Size() != f.layout.GridSize {
		return fmt.Errorf("%w: grid %d, layout %d", ErrGridSizeMismatch, g.Size(), f.layout.GridSize)
	}
	base := f.layout.GridBase()
	size := f.layout.GridSize
	for y := 0; y < size; y++ {
		row := base + y*size
		for x := 0; x < size; x++ {
			g.Set(x, y, DecodeNode(f.words[row+x]))
		}
	}
	return nil
}

// StoreGrid encodes g into the grid block. Only the node bits of each
// word are rewritten; reserved bits keep whatever value the host put
// there, so unknown flags survive a full run round trip.
func (f *File) StoreGrid(g *grid.Grid) error {
	if g.Size() != f.layout.GridSize {
		return fmt.Errorf("%w: grid %d, layout %d", ErrGridSizeMismatch, g.Size(), f.layout.GridSize)
	}
	base := f.layout.GridBase()
	size := f.layout.GridSize
	for y := 0; y < size; y++ {
		row := base + y*size
		for x := 0; x < size; x++ {
			f.words[row+x] = f.words[row+x]&^NodeMask | EncodeNode(g.At(x, y))
		}
	}
	return nil
}
