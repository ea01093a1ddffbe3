// Package sim implements the surface growth simulation engine.
//
// This package provides the Engine that sweeps a toroidal lattice of
// slope nodes with parallel tile workers, the deterministic scheduling
// that assigns tiles to workers, and the Runner that wires
// configuration, logging and seeding into a complete run.
package sim
