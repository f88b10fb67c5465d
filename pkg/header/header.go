// Package header scores candidate header offsets inside a raw ROM image
// and extracts the Header fields from the winning candidate. It performs
// no I/O and has no side effects.
package header

// Offsets that may contain a valid SNES-style header. Scoring ties are
// broken toward the smaller offset value (see less).
const (
	OffsetLoROM      = 0x7FC0
	OffsetHiROM      = 0xFFC0
	OffsetExLoROM    = 0x81C0
	OffsetExHiROM    = 0x101C0
	titleLen         = 21
	fieldMapMode     = 0x15
	fieldCartType    = 0x16
	fieldRomSize     = 0x17
	fieldRamSize     = 0x18
	fieldCountry     = 0x19
	fieldLicensee    = 0x1A
	fieldVersion     = 0x1B
	fieldChecksum    = 0x1C
	fieldComplement  = 0x1E
	nativeVectorBase = 0x24
	emuVectorBase    = 0x34
)

// candidateOffsets is the fixed ordering used when scoring; tie-breaks
// go by offset value, not by position in this list.
var candidateOffsets = []int{OffsetLoROM, OffsetHiROM, OffsetExLoROM, OffsetExHiROM}

// Vectors holds the six 16-bit event vectors in COP, BRK, ABORT, NMI,
// RESET, IRQ order.
type Vectors struct {
	COP, BRK, ABORT, NMI, RESET, IRQ uint16
}

// Header is the set of fields extracted from a winning candidate offset.
type Header struct {
	Offset       int
	Title        [titleLen]byte
	MapMode      byte
	CartType     byte
	RomSizeCode  byte
	RamSizeCode  byte
	Country      byte
	Licensee     byte
	Version      byte
	Checksum     uint16
	Complement   uint16
	NativeVecs   Vectors
	EmulationVec Vectors
	Score        int
}

// cartridgeTypeWhitelist is the documented set of standard and known
// special-chip cartridge-type byte values.
var cartridgeTypeWhitelist = map[byte]bool{
	0x00: true, 0x01: true, 0x02: true, 0x03: true, 0x04: true, 0x05: true,
	0x13: true, 0x14: true, 0x15: true, 0x1A: true,
	0x23: true, 0x24: true, 0x25: true, 0x32: true, 0x34: true, 0x35: true,
	0x43: true, 0x45: true, 0x55: true, 0xE3: true, 0xF3: true, 0xF5: true, 0xF6: true, 0xF9: true,
}

func le16(b []byte, off int) uint16 {
	if off+1 >= len(b) {
		return 0
	}
	return uint16(b[off]) | uint16(b[off+1])<<8
}

func readVectors(b []byte, base int) Vectors {
	return Vectors{
		COP:   le16(b, base+0),
		BRK:   le16(b, base+2),
		ABORT: le16(b, base+4),
		NMI:   le16(b, base+6),
		RESET: le16(b, base+8),
		IRQ:   le16(b, base+10),
	}
}

// Extract reads the Header fields at offset from rom without scoring.
// The caller must have already verified offset+0x40 <= len(rom).
func Extract(rom []byte, offset int) Header {
	var h Header
	h.Offset = offset
	copy(h.Title[:], rom[offset:offset+titleLen])
	h.MapMode = rom[offset+fieldMapMode]
	h.CartType = rom[offset+fieldCartType]
	h.RomSizeCode = rom[offset+fieldRomSize]
	h.RamSizeCode = rom[offset+fieldRamSize]
	h.Country = rom[offset+fieldCountry]
	h.Licensee = rom[offset+fieldLicensee]
	h.Version = rom[offset+fieldVersion]
	h.Checksum = le16(rom, offset+fieldChecksum)
	h.Complement = le16(rom, offset+fieldComplement)
	h.NativeVecs = readVectors(rom, offset+nativeVectorBase)
	h.EmulationVec = readVectors(rom, offset+emuVectorBase)
	return h
}

// Score rates how plausible a header at offset is, summing weighted
// sub-scores over independent field checks; the maximum is 130. It
// returns 0 if the candidate region does not fit within rom.
func Score(rom []byte, offset int) int {
	if offset < 0 || offset+0x40 > len(rom) {
		return 0
	}
	h := Extract(rom, offset)
	score := 0
	score += titleScore(h.Title[:])
	score += mapModeScore(offset, h.MapMode)
	score += romSizeScore(h.RomSizeCode)
	if cartridgeTypeWhitelist[h.CartType] {
		score += 10
	}
	if h.Country <= 0x0D {
		score += 8
	}
	if h.Checksum^h.Complement == 0xFFFF {
		score += 15
	}
	score += vectorRangeScore(h.NativeVecs.RESET)
	score += irqNmiScore(h.NativeVecs.NMI, h.NativeVecs.IRQ)
	return score
}

func titleScore(title []byte) int {
	printable := 0
	for _, b := range title {
		if b >= 0x20 && b <= 0x7E {
			printable++
		}
	}
	ratio := float64(printable) / float64(len(title))
	switch {
	case ratio >= 0.9:
		return 35
	case ratio >= 0.8:
		return 25
	case ratio >= 0.6:
		return 15
	case ratio >= 0.4:
		return 5
	default:
		return 0
	}
}

// mapModeScore rewards agreement between the candidate offset's implied
// family (LoROM at 0x7FC0/0x81C0, HiROM at 0xFFC0/0x101C0) and the
// low-nibble family bits of the map-mode byte. A LoROM candidate whose
// bit 0 is set is still scored, since some LoROM variants set other low
// bits; the bit is soft evidence, not a hard requirement, and the
// caller logs when the top-two candidates end up close.
func mapModeScore(offset int, mapMode byte) int {
	isHiROMOffset := offset == OffsetHiROM || offset == OffsetExHiROM
	bit0Clear := mapMode&0x01 == 0
	if isHiROMOffset {
		if !bit0Clear {
			return 25
		}
		return 5
	}
	if bit0Clear {
		return 25
	}
	return 5
}

func romSizeScore(code byte) int {
	switch {
	case code >= 7 && code <= 13:
		return 15
	case code >= 5 && code <= 15:
		return 8
	default:
		return 0
	}
}

func vectorRangeScore(reset uint16) int {
	switch {
	case reset >= 0x8000:
		return 12
	case reset >= 0x4000:
		return 6
	default:
		return 0
	}
}

func irqNmiScore(nmi, irq uint16) int {
	score := 0
	if nmi >= 0x8000 {
		score += 5
	}
	if irq >= 0x8000 {
		score += 5
	}
	return score
}

// Candidate pairs a header offset with its score.
type Candidate struct {
	Offset int
	Score  int
}

// Best scores every candidate offset and returns them sorted best-first,
// with ties broken toward the smaller offset value.
func Best(rom []byte) []Candidate {
	cands := make([]Candidate, 0, len(candidateOffsets))
	for _, off := range candidateOffsets {
		cands = append(cands, Candidate{Offset: off, Score: Score(rom, off)})
	}
	for i := 1; i < len(cands); i++ {
		j := i
		for j > 0 && less(cands[j], cands[j-1]) {
			cands[j], cands[j-1] = cands[j-1], cands[j]
			j--
		}
	}
	return cands
}

// less reports whether a should sort before b: higher score first, ties
// broken toward the smaller offset.
func less(a, b Candidate) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.Offset < b.Offset
}
