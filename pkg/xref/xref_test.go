package xref

import (
	"testing"

	"github.com/oisee/snes65816/pkg/addr"
	"github.com/oisee/snes65816/pkg/cpu"
	"github.com/oisee/snes65816/pkg/listing"
)

// TestBuildCompleteness checks every decoded line with an address operand
// produces exactly one cross-ref entry targeting that operand.
func TestBuildCompleteness(t *testing.T) {
	image := make([]byte, 1<<20)
	image[0], image[1], image[2] = 0xAD, 0x00, 0x21 // LDA $2100
	image[3] = 0xE8                                 // INX (no operand)
	tr := addr.NewTranslator(addr.LoROM, uint32(len(image)))
	lines := listing.LinearSweep(image, tr, addr.New(0, 0x8000), addr.New(0, 0x8004), cpu.Reset())

	idx := Build(lines)
	refs := idx.At(addr.New(0, 0x2100))
	if len(refs) != 1 {
		t.Fatalf("got %d cross-refs at $2100, want 1", len(refs))
	}
	if refs[0].Kind != Read {
		t.Fatalf("got kind %v, want Read", refs[0].Kind)
	}
}

func TestClassifyKinds(t *testing.T) {
	cases := []struct {
		mnemonic string
		want     Kind
	}{
		{"JSR", Call}, {"JSL", Call},
		{"JMP", Jump}, {"BRA", Jump}, {"BEQ", Jump},
		{"LDA", Read}, {"CMP", Read},
		{"STA", Write}, {"STZ", Write},
		{"INX", Execute},
	}
	for _, c := range cases {
		if got := classify(c.mnemonic); got != c.want {
			t.Errorf("classify(%q) = %v, want %v", c.mnemonic, got, c.want)
		}
	}
}
