package symbol

import (
	"testing"

	"github.com/oisee/snes65816/pkg/addr"
)

// TestInsertUniqueness checks no two symbols share an address, and
// every synthesized name matches the identifier regex.
func TestInsertUniqueness(t *testing.T) {
	table := NewTable()
	a := addr.New(0, 0x8000)

	table.Insert(VariableSymbol(a))
	table.Insert(CodeSymbol(a, true)) // higher priority, should win

	s, ok := table.Get(a)
	if !ok {
		t.Fatalf("expected a symbol at %s", a)
	}
	if s.Kind != Code {
		t.Fatalf("got kind %v, want Code (higher priority than Variable)", s.Kind)
	}
	if !ValidIdentifier(s.Name) {
		t.Fatalf("synthesized name %q is not a valid identifier", s.Name)
	}
}

func TestInsertRejectsInvalidIdentifier(t *testing.T) {
	table := NewTable()
	ok := table.Insert(Symbol{Address: addr.New(0, 0x8000), Name: "1bad", Kind: Code})
	if ok {
		t.Fatalf("expected insertion of an invalid identifier to fail")
	}
	if _, found := table.Get(addr.New(0, 0x8000)); found {
		t.Fatalf("table should remain empty after a rejected insert")
	}
}

func TestConflictResolutionConfidenceTiebreak(t *testing.T) {
	table := NewTable()
	a := addr.New(0, 0x8000)
	table.Insert(CodeSymbol(a, false))          // confidence 0.7
	table.Insert(Symbol{Address: a, Name: "sub_008000", Kind: Code, Confidence: 0.95})

	s, _ := table.Get(a)
	if s.Confidence != 0.95 {
		t.Fatalf("got confidence %v, want 0.95 (higher confidence should win within same kind)", s.Confidence)
	}
}

func TestRegisterSymbolLookup(t *testing.T) {
	s, ok := RegisterSymbol(addr.New(0, 0x2100))
	if !ok {
		t.Fatalf("expected a register symbol at $2100")
	}
	if s.Name != "INIDISP" {
		t.Fatalf("got name %q, want INIDISP", s.Name)
	}
	if s.Kind != Constant {
		t.Fatalf("register symbols must be CONSTANT-kind")
	}
}

func TestFunctionSymbolNaming(t *testing.T) {
	a := addr.New(0, 0x8000)
	if got := FunctionSymbol(a, false, 1.0).Name; got != "function_008000" {
		t.Fatalf("got %q, want function_008000", got)
	}
	if got := FunctionSymbol(a, true, 1.0).Name; got != "interrupt_008000" {
		t.Fatalf("got %q, want interrupt_008000", got)
	}
}

func TestUnclassifiedSymbolNaming(t *testing.T) {
	a := addr.New(0, 0x9000)
	s := UnclassifiedSymbol(a)
	if s.Name != "data_009000" {
		t.Fatalf("got name %q, want data_009000", s.Name)
	}
	if s.Kind != Data {
		t.Fatalf("got kind %v, want Data", s.Kind)
	}
}
