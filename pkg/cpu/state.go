// Package cpu tracks the shadowed processor flag state the decoder needs
// to know the width of immediate operands: the M (accumulator/memory
// width), X (index-register width), and E (emulation mode) bits.
package cpu

// FlagState is the processor status the decoder should assume at a given
// point in the instruction stream. It is a small value type, passed by
// value and returned by value from every transition — never mutated
// through a shared pointer — so independent sweeps from different entry
// points can carry independent flag states.
type FlagState struct {
	M bool // true = 8-bit accumulator/memory
	X bool // true = 8-bit index registers
	E bool // true = emulation mode
}

// Reset returns the power-on flag state: 8-bit A/X/Y, emulation mode.
func Reset() FlagState {
	return FlagState{M: true, X: true, E: true}
}

// Equal returns true if two flag states are identical.
func (s FlagState) Equal(o FlagState) bool {
	return s == o
}
