package inst

import (
	"fmt"

	"github.com/oisee/snes65816/pkg/addr"
	"github.com/oisee/snes65816/pkg/cpu"
)

// Operand is the decoded operand value attached to a DecodedLine. Kind
// distinguishes how Value should be interpreted; for OperandNone there is
// no meaningful Value.
type Operand struct {
	Kind  OperandKind
	Value int32 // sign-extended where the mode is signed
}

// OperandKind tags what Operand.Value means.
type OperandKind int

const (
	OperandNone OperandKind = iota
	OperandImmediate
	OperandAddress  // a direct/absolute/long operand address, not yet bank-resolved beyond what's encoded
	OperandPointer  // an indirect mode's pointer address (not the resolved target)
	OperandRelative // a PC-relative branch/PER target, already resolved to a logical address
	OperandBlockMove
)

// DecodedLine is one decoded instruction: its address, raw bytes, static
// Instruction metadata, and resolved operand.
type DecodedLine struct {
	Addr    addr.Logical
	Raw     []byte
	Op      byte
	Info    Info
	Operand Operand
	IsData  bool // true for truncated/unknown-opcode synthetic data bytes
}

// Length returns the number of bytes this line occupies.
func (d DecodedLine) Length() int { return len(d.Raw) }

// Decode decodes one instruction starting at logical address a from bytes
// (which must contain at least the first opcode byte). It never panics:
// truncated instructions and unknown opcodes produce a synthetic one-byte
// data line rather than an error. It returns the decoded line and the
// FlagState to use for the line that follows — unchanged unless the
// decoded instruction is REP/SEP/XCE.
func Decode(bytes []byte, a addr.Logical, flags cpu.FlagState) (DecodedLine, cpu.FlagState) {
	if len(bytes) == 0 {
		return DecodedLine{}, flags
	}

	op := bytes[0]
	info := Catalog[op]

	length, ok := operandLength(info, flags)
	if !ok || len(bytes) < length {
		return dataByte(bytes, a), flags
	}

	raw := bytes[:length]
	line := DecodedLine{Addr: a, Raw: raw, Op: op, Info: info}
	line.Operand = resolveOperand(info, raw, a, length)

	next := flags
	switch info.Mnemonic {
	case "REP":
		next = flags.REP(raw[1])
	case "SEP":
		next = flags.SEP(raw[1])
	case "XCE":
		// No runtime carry to observe here; assume it was cleared, the
		// way native-mode entry code conventionally does.
		next = flags.XCE(false)
	}

	return line, next
}

// dataByte produces the synthetic "DB $xx" fallback line for a truncated
// instruction or an opcode whose declared length exceeds the bytes
// remaining. Exactly one byte is consumed so the caller's sweep always
// makes progress.
func dataByte(bytes []byte, a addr.Logical) DecodedLine {
	return DecodedLine{
		Addr:   a,
		Raw:    bytes[:1],
		Op:     bytes[0],
		Info:   Info{Mnemonic: "DB", Mode: Implied},
		IsData: true,
	}
}

// operandLength returns the total instruction length (opcode + operand)
// for info under the given flag state, or false if the opcode has no
// known length (never happens for a populated Catalog entry, but guards
// against an accidentally-zero-value Info).
func operandLength(info Info, flags cpu.FlagState) (int, bool) {
	if info.Mode == ImmediateM {
		if flags.M {
			return 2, true
		}
		return 3, true
	}
	if info.Mode == ImmediateX {
		if flags.X {
			return 2, true
		}
		return 3, true
	}
	n, ok := fixedLength[info.Mode]
	return n, ok
}

func resolveOperand(info Info, raw []byte, a addr.Logical, length int) Operand {
	switch info.Mode {
	case Implied, Accumulator:
		return Operand{Kind: OperandNone}

	case ImmediateM, ImmediateX, ImmediateS:
		return Operand{Kind: OperandImmediate, Value: int32(readLE(raw[1:]))}

	case Relative8:
		off := int8(raw[1])
		target := int32(a) + int32(length) + int32(off)
		return Operand{Kind: OperandRelative, Value: target}

	case Relative16:
		off := int16(readLE(raw[1:]))
		target := int32(a) + int32(length) + int32(off)
		return Operand{Kind: OperandRelative, Value: target}

	case DirectIndirect, DirectIndexedIndirect, DirectIndirectIndexed,
		DirectIndirectLong, DirectIndirectLongIndexed,
		AbsoluteIndirect, AbsoluteIndirectLong, AbsoluteIndexedIndirect:
		return Operand{Kind: OperandPointer, Value: int32(readLE(raw[1:]))}

	case BlockMove:
		// Encoded source-bank then destination-bank; pack both into Value
		// as (srcBank<<8 | dstBank) since MVN/MVP never need them as a
		// little-endian integer.
		return Operand{Kind: OperandBlockMove, Value: int32(raw[1])<<8 | int32(raw[2])}

	default:
		return Operand{Kind: OperandAddress, Value: int32(readLE(raw[1:]))}
	}
}

func readLE(b []byte) uint32 {
	var v uint32
	for i, x := range b {
		v |= uint32(x) << (8 * i)
	}
	return v
}

func (d DecodedLine) String() string {
	if d.IsData {
		return fmt.Sprintf("%s  DB $%02X", d.Addr, d.Op)
	}
	return fmt.Sprintf("%s  %s", d.Addr, d.Info.Mnemonic)
}
