// Package prng provides pseudo random number generation for the simulation engine
package prng

// multiplier is the multiply-with-carry constant. It is below 2^32, so
// the update x*multiplier+c always fits in 64 bits without truncation.
const multiplier = 0xFFFEB81B

// State is the complete state of one multiply-with-carry generator: the
// low 32 bits hold the current value x, the high 32 bits the carry c.
//
// State is a value type. Next returns the advanced state instead of
// mutating the receiver, so callers that thread generators through
// workers always hand over ownership explicitly.
type State uint64

// FromWords assembles a State from two 32-bit words, low word first.
func FromWords(lo, hi uint32) State {
	return State(uint64(lo) | uint64(hi)<<32)
}

// Lo returns the low 32 bits of the state.
func (s State) Lo() uint32 {
	return uint32(s)
}

// Hi returns the high 32 bits of the state.
func (s State) Hi() uint32 {
	return uint32(s >> 32)
}

// Next advances the generator one step and returns the new state along
// with the produced 32-bit value x XOR c.
func (s State) Next() (State, uint32) {
	x := uint64(s) & 0xFFFFFFFF
	c := uint64(s) >> 32
	return State(x*multiplier + c), uint32(x) ^ uint32(c)
}
