// Package listing drives the decoder over a ROM image to produce an
// ordered instruction stream, in linear-sweep and function-bounded-sweep
// modes.
package listing

import (
	"github.com/oisee/snes65816/pkg/addr"
	"github.com/oisee/snes65816/pkg/cpu"
	"github.com/oisee/snes65816/pkg/inst"
)

// Line pairs a DecodedLine with the flag state the decoder observed
// immediately after producing it, so callers can resume a sweep from any
// point with the correct flag context.
type Line struct {
	inst.DecodedLine
	FlagsAfter cpu.FlagState
}

// Sweep decodes consecutive instructions from image (indexed by Offset,
// via the translator) starting at start, calling fn for each produced
// Line. fn returns false to stop early. Decoding continues until fn
// returns false, the translator reports the next address unmapped, or
// the image is exhausted — the sequence is always monotonically
// increasing in logical address, since the decoder advances by the
// exact instruction length.
func Sweep(image []byte, t addr.Translator, start addr.Logical, initial cpu.FlagState, fn func(Line) bool) {
	a := start
	flags := initial
	for {
		off, err := t.Offset(a)
		if err != nil {
			return
		}
		if int(off) >= len(image) {
			return
		}
		line, next := inst.Decode(image[off:], a, flags)
		if line.Length() == 0 {
			return
		}
		if !fn(Line{DecodedLine: line, FlagsAfter: next}) {
			return
		}
		a = addr.Logical(uint32(a) + uint32(line.Length()))
		flags = next
	}
}

// LinearSweep decodes from start up to (but not including) end.
func LinearSweep(image []byte, t addr.Translator, start, end addr.Logical, initial cpu.FlagState) []Line {
	var lines []Line
	Sweep(image, t, start, initial, func(l Line) bool {
		if uint32(l.Addr) >= uint32(end) {
			return false
		}
		lines = append(lines, l)
		return true
	})
	return lines
}

// FunctionBoundedSweep decodes from start until the first RTS/RTL/RTI or
// until maxInstructions lines have been produced, whichever comes first.
func FunctionBoundedSweep(image []byte, t addr.Translator, start addr.Logical, initial cpu.FlagState, maxInstructions int) []Line {
	var lines []Line
	Sweep(image, t, start, initial, func(l Line) bool {
		lines = append(lines, l)
		if inst.IsReturn(l.Info.Mnemonic) {
			return false
		}
		return len(lines) < maxInstructions
	})
	return lines
}
