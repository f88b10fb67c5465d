// Package xref builds the from->to cross-reference index over a decoded
// instruction stream, classifying each reference by the operation it
// represents (call, jump, read, write, execute).
package xref

import (
	"github.com/oisee/snes65816/pkg/addr"
	"github.com/oisee/snes65816/pkg/inst"
	"github.com/oisee/snes65816/pkg/listing"
)

// Kind classifies why a cross-reference exists.
type Kind int

const (
	Read Kind = iota
	Write
	Execute
	Jump
	Call
)

func (k Kind) String() string {
	switch k {
	case Read:
		return "READ"
	case Write:
		return "WRITE"
	case Jump:
		return "JUMP"
	case Call:
		return "CALL"
	default:
		return "EXECUTE"
	}
}

// CrossReference is one from->to reference.
type CrossReference struct {
	Target    addr.Logical
	Kind      Kind
	Source    addr.Logical
	Rendering string
}

var callMnemonics = map[string]bool{"JSR": true, "JSL": true}
var jumpMnemonics = map[string]bool{"JMP": true, "JML": true, "BRA": true, "BRL": true}
var readMnemonics = map[string]bool{
	"LDA": true, "LDX": true, "LDY": true, "CMP": true, "CPX": true, "CPY": true,
	"BIT": true, "AND": true, "ORA": true, "EOR": true, "ADC": true, "SBC": true,
}
var writeMnemonics = map[string]bool{"STA": true, "STX": true, "STY": true, "STZ": true}

func classify(mnemonic string) Kind {
	switch {
	case callMnemonics[mnemonic]:
		return Call
	case jumpMnemonics[mnemonic] || inst.IsBranch(mnemonic):
		return Jump
	case readMnemonics[mnemonic]:
		return Read
	case writeMnemonics[mnemonic]:
		return Write
	default:
		return Execute
	}
}

func targetOf(l listing.Line) (addr.Logical, bool) {
	switch l.Operand.Kind {
	case inst.OperandRelative:
		return addr.Logical(uint32(l.Operand.Value)), true
	case inst.OperandAddress:
		switch l.Info.Mode {
		case inst.AbsoluteLong, inst.AbsoluteLongX:
			return addr.Logical(uint32(l.Operand.Value)), true
		default:
			return addr.New(l.Addr.Bank(), uint16(l.Operand.Value)), true
		}
	case inst.OperandPointer:
		return addr.Logical(uint32(l.Operand.Value)), true
	default:
		return 0, false
	}
}

// Index is the by-target map built while walking a decoded stream.
// Append-only within a single analysis run; nothing is ever removed.
type Index struct {
	byTarget map[addr.Logical][]CrossReference
	order    []addr.Logical
}

// New builds an empty Index.
func New() *Index {
	return &Index{byTarget: map[addr.Logical][]CrossReference{}}
}

// Add records a cross-reference, preserving insertion order within each
// target's list.
func (idx *Index) Add(ref CrossReference) {
	if _, ok := idx.byTarget[ref.Target]; !ok {
		idx.order = append(idx.order, ref.Target)
	}
	idx.byTarget[ref.Target] = append(idx.byTarget[ref.Target], ref)
}

// Targets returns every indexed target address in first-insertion order.
func (idx *Index) Targets() []addr.Logical {
	out := make([]addr.Logical, len(idx.order))
	copy(out, idx.order)
	return out
}

// At returns the cross-references recorded against target, in insertion
// order.
func (idx *Index) At(target addr.Logical) []CrossReference {
	return idx.byTarget[target]
}

// Build walks lines and produces exactly one CrossReference per decoded
// line whose operand is an address (direct, absolute, long, indirect
// pointer, or branch target). Lines with immediate or block-move operands
// produce none.
func Build(lines []listing.Line) *Index {
	idx := New()
	for _, l := range lines {
		target, ok := targetOf(l)
		if !ok {
			continue
		}
		idx.Add(CrossReference{
			Target:    target,
			Kind:      classify(l.Info.Mnemonic),
			Source:    l.Addr,
			Rendering: l.Info.Mnemonic,
		})
	}
	return idx
}
