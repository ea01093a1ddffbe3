package sim

import (
	"fmt"

	"github.com/surfacelab/kpzsim/prng"
	"github.com/surfacelab/kpzsim/register"
)

// WriteSeedBlock draws initial generator states from src and stores
// them in the file's seed block: the position and probability
// generators of each worker in order, then the shared offset
// generator, each state as a low and high word pair. Every state is
// drawn before any word is written, so a failed draw leaves the file
// untouched.
func WriteSeedBlock(f *register.File, src prng.Source) error {
	layout := f.Layout()

	states := make([]prng.State, 2*layout.ParallelTasks+1)
	for w := 0; w < layout.ParallelTasks; w++ {
		for gen := 0; gen < 2; gen++ {
			st, err := src.State()
			if err != nil {
				return fmt.Errorf("seed worker %d: %w", w, err)
			}
			states[2*w+gen] = st
		}
	}
	offset, err := src.State()
	if err != nil {
		return fmt.Errorf("seed offset generator: %w", err)
	}
	states[2*layout.ParallelTasks] = offset

	for w := 0; w < layout.ParallelTasks; w++ {
		for gen := 0; gen < 2; gen++ {
			st := states[2*w+gen]
			if err := f.Write(layout.WorkerSeedAddr(w, 2*gen), st.Lo()); err != nil {
				return err
			}
			if err := f.Write(layout.WorkerSeedAddr(w, 2*gen+1), st.Hi()); err != nil {
				return err
			}
		}
	}
	if err := f.Write(layout.OffsetSeedAddr(0), offset.Lo()); err != nil {
		return err
	}
	return f.Write(layout.OffsetSeedAddr(1), offset.Hi())
}

// readSeedBlock loads the generator states the host placed in the
// file's seed block. Whatever the words hold is trusted as-is.
func readSeedBlock(f *register.File) (pos, prob []prng.State, offset prng.State, err error) {
	layout := f.Layout()
	pos = make([]prng.State, layout.ParallelTasks)
	prob = make([]prng.State, layout.ParallelTasks)

	for w := 0; w < layout.ParallelTasks; w++ {
		pos[w], err = readState(f, layout.WorkerSeedAddr(w, 0))
		if err != nil {
			return nil, nil, 0, err
		}
		prob[w], err = readState(f, layout.WorkerSeedAddr(w, 2))
		if err != nil {
			return nil, nil, 0, err
		}
	}

	offset, err = readState(f, layout.OffsetSeedAddr(0))
	if err != nil {
		return nil, nil, 0, err
	}
	return pos, prob, offset, nil
}

// readState assembles a generator state from two consecutive words.
func readState(f *register.File, addr int) (prng.State, error) {
	lo, err := f.Read(addr)
	if err != nil {
		return 0, fmt.Errorf("read seed block: %w", err)
	}
	hi, err := f.Read(addr + 1)
	if err != nil {
		return 0, fmt.Errorf("read seed block: %w", err)
	}
	return prng.FromWords(lo, hi), nil
}
