// Package cfg partitions a decoded instruction stream into basic blocks
// (C8) and wires the control-flow graph between them (C9). Blocks live
// in a slice-backed arena addressed by integer handles, never by
// pointer, so the graph can never contain a pointer cycle and the whole
// arena can be snapshotted or shared read-only across detectors.
package cfg

import (
	"sort"

	"github.com/oisee/snes65816/pkg/addr"
	"github.com/oisee/snes65816/pkg/inst"
	"github.com/oisee/snes65816/pkg/listing"
)

// BlockID is an opaque handle into an Arena's block slice.
type BlockID int

// BasicBlock is a maximal straight-line run of DecodedLines with a
// single entry and single exit, per the GLOSSARY definition.
type BasicBlock struct {
	ID              BlockID
	Start, End      addr.Logical // half-open
	Lines           []listing.Line
	Preds           []BlockID
	Succs           []BlockID
	IsFunctionEntry bool
	EndsWithReturn  bool
}

// Arena owns the full set of basic blocks produced by one analysis run.
type Arena struct {
	blocks []BasicBlock
}

// Block returns the block for id.
func (a *Arena) Block(id BlockID) *BasicBlock { return &a.blocks[id] }

// Len returns the number of blocks in the arena.
func (a *Arena) Len() int { return len(a.blocks) }

// Blocks returns the arena's blocks in id order.
func (a *Arena) Blocks() []BasicBlock { return a.blocks }

// resolveTarget returns the logical target address of a control-transfer
// line's operand, when statically known. Indirect modes have no
// statically resolved target at this stage; jump-table resolution comes
// later.
func resolveTarget(l listing.Line) (addr.Logical, bool) {
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

// Split partitions lines (assumed already sorted by address, as produced
// by listing.Sweep) into basic blocks, starting a block at the first
// instruction, at every control-transfer target, after every
// control-flow instruction, and at every supplied vector entry point.
func Split(lines []listing.Line, vectors []addr.Logical) *Arena {
	if len(lines) == 0 {
		return &Arena{}
	}

	byAddr := make(map[addr.Logical]int, len(lines))
	for i, l := range lines {
		byAddr[l.Addr] = i
	}

	starts := map[addr.Logical]bool{lines[0].Addr: true}
	callTargets := map[addr.Logical]bool{}

	for i, l := range lines {
		if target, ok := resolveTarget(l); ok && (inst.IsBranch(l.Info.Mnemonic) || inst.IsUnconditionalTransfer(l.Info.Mnemonic) || inst.IsCall(l.Info.Mnemonic)) {
			starts[target] = true
			if inst.IsCall(l.Info.Mnemonic) {
				callTargets[target] = true
			}
		}
		if inst.IsControlFlow(l.Info.Mnemonic) && i+1 < len(lines) {
			starts[lines[i+1].Addr] = true
		}
	}
	for _, v := range vectors {
		starts[v] = true
	}

	sortedStarts := make([]addr.Logical, 0, len(starts))
	for s := range starts {
		if _, ok := byAddr[s]; ok {
			sortedStarts = append(sortedStarts, s)
		}
	}
	sort.Slice(sortedStarts, func(i, j int) bool { return sortedStarts[i] < sortedStarts[j] })

	arena := &Arena{}
	for i, s := range sortedStarts {
		startIdx := byAddr[s]
		endIdx := len(lines)
		if i+1 < len(sortedStarts) {
			endIdx = byAddr[sortedStarts[i+1]]
		}
		blockLines := lines[startIdx:endIdx]
		last := blockLines[len(blockLines)-1]

		b := BasicBlock{
			ID:              BlockID(len(arena.blocks)),
			Start:           s,
			End:             addr.Logical(uint32(last.Addr) + uint32(last.Length())),
			Lines:           blockLines,
			IsFunctionEntry: callTargets[s],
			EndsWithReturn:  inst.IsReturn(last.Info.Mnemonic),
		}
		arena.blocks = append(arena.blocks, b)
	}

	buildEdges(arena, byAddr, sortedStarts)
	return arena
}

// blockIndexByStart maps a block's start address to its BlockID.
func blockIndexByStart(arena *Arena) map[addr.Logical]BlockID {
	m := make(map[addr.Logical]BlockID, len(arena.blocks))
	for _, b := range arena.blocks {
		m[b.Start] = b.ID
	}
	return m
}

// buildEdges wires successor/predecessor edges: returns and STP get
// none, unconditional transfers get the target, branches get target
// plus fall-through, calls and everything else fall through (the callee
// is a function entry, not a CFG successor).
func buildEdges(arena *Arena, byAddr map[addr.Logical]int, sortedStarts []addr.Logical) {
	startID := blockIndexByStart(arena)

	addEdge := func(from, to BlockID) {
		arena.blocks[from].Succs = append(arena.blocks[from].Succs, to)
		arena.blocks[to].Preds = append(arena.blocks[to].Preds, from)
	}

	for i := range arena.blocks {
		b := &arena.blocks[i]
		last := b.Lines[len(b.Lines)-1]
		m := last.Info.Mnemonic

		fallthroughID, hasFallthrough := BlockID(0), false
		if i+1 < len(arena.blocks) {
			fallthroughID, hasFallthrough = BlockID(i+1), true
		}

		switch {
		case inst.IsReturn(m) || m == "STP":
			// no successors

		case m == "JMP", m == "JML", m == "BRA", m == "BRL":
			if target, ok := resolveTarget(last); ok {
				if id, ok := startID[target]; ok {
					addEdge(b.ID, id)
				}
			}

		case inst.IsBranch(m):
			if target, ok := resolveTarget(last); ok {
				if id, ok := startID[target]; ok {
					addEdge(b.ID, id)
				}
			}
			if hasFallthrough {
				addEdge(b.ID, fallthroughID)
			}

		case inst.IsCall(m):
			if hasFallthrough {
				addEdge(b.ID, fallthroughID)
			}

		default:
			if hasFallthrough {
				addEdge(b.ID, fallthroughID)
			}
		}
	}
}
