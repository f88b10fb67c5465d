package listing

import (
	"testing"

	"github.com/oisee/snes65816/pkg/addr"
	"github.com/oisee/snes65816/pkg/cpu"
)

// TestLinearSweepEmptyLoROM decodes a lone RTS at the start of an
// otherwise empty LoROM image.
func TestLinearSweepEmptyLoROM(t *testing.T) {
	image := make([]byte, 1<<20)
	image[0] = 0x60 // RTS
	tr := addr.NewTranslator(addr.LoROM, uint32(len(image)))

	lines := LinearSweep(image, tr, addr.New(0, 0x8000), addr.New(0, 0x8001), cpu.Reset())
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	if lines[0].Info.Mnemonic != "RTS" {
		t.Fatalf("got mnemonic %q, want RTS", lines[0].Info.Mnemonic)
	}
	if lines[0].Length() != 1 {
		t.Fatalf("got length %d, want 1", lines[0].Length())
	}
}

// TestLinearSweepMonotonic checks the returned lines are strictly
// increasing by address.
func TestLinearSweepMonotonic(t *testing.T) {
	image := make([]byte, 1<<20)
	image[0], image[1], image[2] = 0xA9, 0x01, 0x60 // LDA #$01; RTS
	tr := addr.NewTranslator(addr.LoROM, uint32(len(image)))

	lines := LinearSweep(image, tr, addr.New(0, 0x8000), addr.New(0, 0x8010), cpu.Reset())
	for i := 1; i < len(lines); i++ {
		if uint32(lines[i].Addr) <= uint32(lines[i-1].Addr) {
			t.Fatalf("addresses not monotonically increasing at index %d", i)
		}
	}
}

// TestFunctionBoundedSweepStopsAtReturn checks the sweep ends at the
// first return instruction.
func TestFunctionBoundedSweepStopsAtReturn(t *testing.T) {
	image := make([]byte, 1<<20)
	image[0], image[1], image[2] = 0xE8, 0xE8, 0x60 // INX; INX; RTS
	tr := addr.NewTranslator(addr.LoROM, uint32(len(image)))

	lines := FunctionBoundedSweep(image, tr, addr.New(0, 0x8000), cpu.Reset(), 100)
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	if lines[len(lines)-1].Info.Mnemonic != "RTS" {
		t.Fatalf("last line should be RTS, got %q", lines[len(lines)-1].Info.Mnemonic)
	}
}

// TestFunctionBoundedSweepRespectsCap ensures the instruction cap applies
// when no return is ever reached.
func TestFunctionBoundedSweepRespectsCap(t *testing.T) {
	image := make([]byte, 1<<20)
	for i := range image {
		image[i] = 0xE8 // INX, never returns
	}
	tr := addr.NewTranslator(addr.LoROM, uint32(len(image)))

	lines := FunctionBoundedSweep(image, tr, addr.New(0, 0x8000), cpu.Reset(), 5)
	if len(lines) != 5 {
		t.Fatalf("got %d lines, want 5", len(lines))
	}
}
