package sim

import "time"

// Report contains the statistics of one completed run.
type Report struct {
	// Iterations is the sweep count read from the register file
	Iterations int

	// IterationGroups is the number of offset draws performed
	IterationGroups int

	// Rounds is the number of fork join barriers crossed
	Rounds int

	// Pokes is the total number of update attempts across all workers
	Pokes int

	// PyramidFlips counts apexes toppled into holes
	PyramidFlips int

	// HoleFlips counts holes filled back into apexes
	HoleFlips int

	// Elapsed is the wall clock duration of the run
	Elapsed time.Duration
}
