// Package function discovers candidate function entry points from
// interrupt vectors, call targets, prologue patterns, and post-transfer
// fall-in addresses, and merges them into a single Function map keyed
// by address.
package function

import (
	"github.com/oisee/snes65816/pkg/addr"
	"github.com/oisee/snes65816/pkg/header"
	"github.com/oisee/snes65816/pkg/inst"
	"github.com/oisee/snes65816/pkg/listing"
)

// Function is a discovered (or vector-seeded) subroutine entry.
type Function struct {
	Start       addr.Logical
	End         addr.Logical // absent (zero value) unless proven
	HasEnd      bool
	Callers     map[addr.Logical]bool
	Callees     map[addr.Logical]bool
	Blocks      map[int]bool
	IsInterrupt bool
	Confidence  float64
}

func newFunction(start addr.Logical) *Function {
	return &Function{
		Start:   start,
		Callers: map[addr.Logical]bool{},
		Callees: map[addr.Logical]bool{},
		Blocks:  map[int]bool{},
	}
}

// candidate is one heuristic's proposal for a function start.
type candidate struct {
	addr        addr.Logical
	confidence  float64
	isInterrupt bool
}

// Discover runs every heuristic over lines and the header's vectors,
// merging proposals into a Function map keyed by start address. When
// more than one heuristic produces the same address, the merge keeps
// the highest confidence seen and ORs the isInterrupt flag.
func Discover(lines []listing.Line, vecs header.Vectors) map[addr.Logical]*Function {
	funcs := map[addr.Logical]*Function{}

	merge := func(c candidate) *Function {
		f, ok := funcs[c.addr]
		if !ok {
			f = newFunction(c.addr)
			funcs[c.addr] = f
		}
		if c.confidence > f.Confidence {
			f.Confidence = c.confidence
		}
		if c.isInterrupt {
			f.IsInterrupt = true
		}
		return f
	}

	for _, c := range vectorCandidates(vecs) {
		merge(c)
	}

	branchTargets := map[addr.Logical]bool{}
	for _, l := range lines {
		if target, ok := resolveStaticTarget(l); ok && (inst.IsBranch(l.Info.Mnemonic) || inst.IsUnconditionalTransfer(l.Info.Mnemonic)) {
			branchTargets[target] = true
		}
	}

	for i, l := range lines {
		if target, ok := resolveStaticTarget(l); ok && inst.IsCall(l.Info.Mnemonic) {
			c := candidate{addr: target, confidence: 0.9}
			f := merge(c)
			f.Callers[l.Addr] = true
			if caller, ok := funcContaining(funcs, l.Addr); ok {
				caller.Callees[target] = true
			}
		}

		if isPrologue(lines, i) {
			merge(candidate{addr: l.Addr, confidence: 0.7})
		}

		if i > 0 {
			prev := lines[i-1]
			if inst.IsUnconditionalTransfer(prev.Info.Mnemonic) || inst.IsReturn(prev.Info.Mnemonic) {
				if !branchTargets[l.Addr] {
					merge(candidate{addr: l.Addr, confidence: 0.6})
				}
			}
		}
	}

	return funcs
}

func vectorCandidates(v header.Vectors) []candidate {
	return []candidate{
		{addr: addr.Logical(uint32(v.COP)), confidence: 1.0, isInterrupt: true},
		{addr: addr.Logical(uint32(v.BRK)), confidence: 1.0, isInterrupt: true},
		{addr: addr.Logical(uint32(v.ABORT)), confidence: 1.0, isInterrupt: true},
		{addr: addr.Logical(uint32(v.NMI)), confidence: 1.0, isInterrupt: true},
		{addr: addr.Logical(uint32(v.RESET)), confidence: 1.0, isInterrupt: false},
		{addr: addr.Logical(uint32(v.IRQ)), confidence: 1.0, isInterrupt: true},
	}
}

func resolveStaticTarget(l listing.Line) (addr.Logical, bool) {
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
	default:
		return 0, false
	}
}

// isPrologue reports whether the three instructions starting at index i
// match one of the documented prologue patterns.
func isPrologue(lines []listing.Line, i int) bool {
	patterns := [][3]string{
		{"PHB", "PHK", "PLB"},
		{"PHA", "PHX", "PHY"},
	}
	for _, p := range patterns {
		if matchesPattern(lines, i, p[:]) {
			return true
		}
	}
	return i < len(lines) && lines[i].Info.Mnemonic == "PHP"
}

func matchesPattern(lines []listing.Line, i int, pattern []string) bool {
	if i+len(pattern) > len(lines) {
		return false
	}
	for j, m := range pattern {
		if lines[i+j].Info.Mnemonic != m {
			return false
		}
	}
	return true
}

// funcContaining finds the function a given address most recently
// belonged to by scanning backward for the nearest discovered function
// start at or before addr. This is a best-effort lookup used only to
// populate Callees; function bodies are not computed until a later pass.
func funcContaining(funcs map[addr.Logical]*Function, target addr.Logical) (*Function, bool) {
	var best *Function
	for a, f := range funcs {
		if a > target {
			continue
		}
		if best == nil || a > best.Start {
			best = f
		}
	}
	if best == nil {
		return nil, false
	}
	return best, true
}
