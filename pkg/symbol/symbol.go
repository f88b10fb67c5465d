// Package symbol synthesizes a symbol table from discovery outcomes
// (functions, data structures, cross-references) and the static
// hardware-register table. At most one symbol survives per address;
// conflicts resolve by kind priority, then confidence, then insertion
// order.
package symbol

import (
	"fmt"
	"regexp"

	"github.com/oisee/snes65816/pkg/addr"
)

// Kind is the closed sum type of symbol categories.
type Kind int

const (
	Code Kind = iota
	Data
	FunctionKind
	Variable
	Constant
	Vector
	Register
)

func (k Kind) String() string {
	switch k {
	case Code:
		return "CODE"
	case Data:
		return "DATA"
	case FunctionKind:
		return "FUNCTION"
	case Variable:
		return "VARIABLE"
	case Constant:
		return "CONSTANT"
	case Vector:
		return "VECTOR"
	case Register:
		return "REGISTER"
	default:
		return "UNKNOWN"
	}
}

// priority orders Kind by synthesis precedence (1 = highest): register
// constants, then functions, data, code targets, RAM variables. Lower
// value wins on conflict.
var priority = map[Kind]int{
	Constant:     1,
	FunctionKind: 2,
	Data:         3,
	Code:         4,
	Variable:     5,
	Vector:       6,
	Register:     6,
}

// Symbol is one entry in the synthesized table.
type Symbol struct {
	Address     addr.Logical
	Name        string
	Kind        Kind
	Size        int
	HasSize     bool
	Confidence  float64
	Description string
	seq         int // insertion order, used as the first-writer tiebreak
}

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// reservedNames mirrors the emitter contract's reserved-word list; a
// synthesized name colliding with one of these is rejected.
var reservedNames = map[string]bool{
	"db": true, "dw": true, "org": true, "equ": true,
}

// ValidIdentifier reports whether name is usable as a symbol name.
func ValidIdentifier(name string) bool {
	return name != "" && identifierPattern.MatchString(name) && !reservedNames[name]
}

// Table maps address to the winning Symbol at that address.
type Table struct {
	byAddr map[addr.Logical]Symbol
	next   int
}

// NewTable builds an empty symbol table.
func NewTable() *Table {
	return &Table{byAddr: map[addr.Logical]Symbol{}}
}

// Insert attempts to add s to the table. On conflict the symbol with the
// higher priority (lower numeric value) wins; ties break by confidence,
// then by earlier insertion. Insert returns false (and leaves the
// previous entry standing) if s's name is not a valid identifier.
func (t *Table) Insert(s Symbol) bool {
	if !ValidIdentifier(s.Name) {
		return false
	}
	s.seq = t.next
	t.next++

	existing, ok := t.byAddr[s.Address]
	if !ok || wins(s, existing) {
		t.byAddr[s.Address] = s
		return true
	}
	return false
}

// wins reports whether candidate should replace current.
func wins(candidate, current Symbol) bool {
	pc, cc := priority[candidate.Kind], priority[current.Kind]
	if pc != cc {
		return pc < cc
	}
	if candidate.Confidence != current.Confidence {
		return candidate.Confidence > current.Confidence
	}
	return candidate.seq < current.seq
}

// Get returns the symbol at addr, if any.
func (t *Table) Get(a addr.Logical) (Symbol, bool) {
	s, ok := t.byAddr[a]
	return s, ok
}

// All returns every symbol in the table, in no particular order.
func (t *Table) All() []Symbol {
	out := make([]Symbol, 0, len(t.byAddr))
	for _, s := range t.byAddr {
		out = append(out, s)
	}
	return out
}

// RegisterSymbol builds the CONSTANT-kind symbol for a hardware register
// address observed in an operand.
func RegisterSymbol(a addr.Logical) (Symbol, bool) {
	name, ok := HardwareRegisters[a.Off()]
	if !ok {
		return Symbol{}, false
	}
	return Symbol{Address: a, Name: name, Kind: Constant, Confidence: 1.0}, true
}

// FunctionSymbol builds the FUNCTION-kind symbol for a discovered
// function entry.
func FunctionSymbol(a addr.Logical, isInterrupt bool, confidence float64) Symbol {
	name := fmt.Sprintf("function_%06X", uint32(a))
	if isInterrupt {
		name = fmt.Sprintf("interrupt_%06X", uint32(a))
	}
	return Symbol{Address: a, Name: name, Kind: FunctionKind, Confidence: confidence}
}

// DataSymbol builds the DATA-kind symbol for a classified data
// structure.
func DataSymbol(a addr.Logical, typeName string) Symbol {
	return Symbol{
		Address:    a,
		Name:       fmt.Sprintf("%s_%06X", typeName, uint32(a)),
		Kind:       Data,
		Confidence: 0.8,
	}
}

// CodeSymbol builds the CODE-kind symbol for a branch/call target.
// isCall selects the sub_ prefix and a higher confidence.
func CodeSymbol(a addr.Logical, isCall bool) Symbol {
	if isCall {
		return Symbol{Address: a, Name: fmt.Sprintf("sub_%06X", uint32(a)), Kind: Code, Confidence: 0.9}
	}
	return Symbol{Address: a, Name: fmt.Sprintf("loc_%06X", uint32(a)), Kind: Code, Confidence: 0.7}
}

// VariableSymbol builds the VARIABLE-kind symbol for an operand address
// in the RAM window.
func VariableSymbol(a addr.Logical) Symbol {
	return Symbol{Address: a, Name: fmt.Sprintf("ram_%06X", uint32(a)), Kind: Variable, Confidence: 0.6}
}

// UnclassifiedSymbol builds the DATA-kind symbol for a ROM-resident
// operand address that no data-structure detector classified. VARIABLE
// names are scoped to the RAM window; an xref target that instead lands
// in ROM gets a data_ name rather than being mislabeled ram_.
func UnclassifiedSymbol(a addr.Logical) Symbol {
	return Symbol{Address: a, Name: fmt.Sprintf("data_%06X", uint32(a)), Kind: Data, Confidence: 0.4}
}
