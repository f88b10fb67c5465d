package header

import "testing"

func blankRom(size int) []byte {
	rom := make([]byte, size)
	for i := range rom {
		rom[i] = 0xFF
	}
	return rom
}

func writeLoROMHeader(rom []byte, offset int, title string) {
	copy(rom[offset:offset+titleLen], title)
	for i := len(title); i < titleLen; i++ {
		rom[offset+i] = 0x20
	}
	rom[offset+fieldMapMode] = 0x20 // LoROM, slow
	rom[offset+fieldCartType] = 0x00
	rom[offset+fieldRomSize] = 0x09
	rom[offset+fieldRamSize] = 0x00
	rom[offset+fieldCountry] = 0x01
	rom[offset+fieldChecksum] = 0x34
	rom[offset+fieldChecksum+1] = 0x12
	comp := ^uint16(0x1234)
	rom[offset+fieldComplement] = byte(comp)
	rom[offset+fieldComplement+1] = byte(comp >> 8)
	// RESET vector (native) at nativeVectorBase+8
	rom[offset+nativeVectorBase+8] = 0x00
	rom[offset+nativeVectorBase+9] = 0x80
	rom[offset+nativeVectorBase+6] = 0x00 // NMI
	rom[offset+nativeVectorBase+7] = 0x81
	rom[offset+nativeVectorBase+10] = 0x00 // IRQ
	rom[offset+nativeVectorBase+11] = 0x82
}

// TestScoreMonotonicity checks that fixing the checksum complement
// never decreases the score.
func TestScoreMonotonicity(t *testing.T) {
	rom := blankRom(1 << 20)
	writeLoROMHeader(rom, OffsetLoROM, "TEST GAME")
	before := Score(rom, OffsetLoROM)

	rom[OffsetLoROM+fieldComplement] ^= 0xFF // break the complement
	broken := Score(rom, OffsetLoROM)

	if broken > before {
		t.Fatalf("breaking the checksum complement increased the score: %d -> %d", before, broken)
	}
}

// TestTieBreak checks equal scores break toward the smaller offset,
// selecting LoROM.
func TestTieBreak(t *testing.T) {
	rom := blankRom(1 << 21)
	writeLoROMHeader(rom, OffsetLoROM, "TEST GAME")
	writeLoROMHeader(rom, OffsetHiROM, "TEST GAME")
	rom[OffsetHiROM+fieldMapMode] = 0x21 // HiROM, so both candidates score the same
	if lo, hi := Score(rom, OffsetLoROM), Score(rom, OffsetHiROM); lo != hi {
		t.Fatalf("premise: LoROM and HiROM scores %d and %d are not tied", lo, hi)
	}

	cands := Best(rom)
	if cands[0].Offset != OffsetLoROM {
		t.Fatalf("expected tie to favor offset %#x, got %#x", OffsetLoROM, cands[0].Offset)
	}
}

func TestExtractVectors(t *testing.T) {
	rom := blankRom(1 << 20)
	writeLoROMHeader(rom, OffsetLoROM, "TEST GAME")
	h := Extract(rom, OffsetLoROM)
	if h.NativeVecs.RESET != 0x8000 {
		t.Fatalf("got RESET %#x, want 0x8000", h.NativeVecs.RESET)
	}
	if h.NativeVecs.NMI != 0x8100 {
		t.Fatalf("got NMI %#x, want 0x8100", h.NativeVecs.NMI)
	}
}
