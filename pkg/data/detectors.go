package data

import (
	"github.com/oisee/snes65816/pkg/addr"
	"github.com/oisee/snes65816/pkg/inst"
	"github.com/oisee/snes65816/pkg/listing"
)

// ppuDataPorts is the documented set of PPU data registers a graphics
// blob write targets.
var ppuDataPorts = map[uint16]bool{0x2104: true, 0x2118: true, 0x2119: true, 0x2122: true}

// apuIOPorts is the four APU I/O ports.
var apuIOPorts = map[uint16]bool{0x2140: true, 0x2141: true, 0x2142: true, 0x2143: true}

// vramDataPorts is the VRAM data-write port pair a tile-data blob targets.
var vramDataPorts = map[uint16]bool{0x2118: true, 0x2119: true}

// oamDataPorts is the OAM (sprite table) data-write port.
var oamDataPorts = map[uint16]bool{0x2104: true}

const windowSize = 6

// detectPointerTable matches the four-instruction idiom:
// LDA table,X ; STA ptr ; LDA table+1,X ; STA ptr+1
// with the two loads from adjacent absolute addresses.
func detectPointerTable(lines []listing.Line) []DataStructure {
	var out []DataStructure
	for i := 0; i+3 < len(lines); i++ {
		l0, l1, l2, l3 := lines[i], lines[i+1], lines[i+2], lines[i+3]
		if l0.Info.Mnemonic != "LDA" || l1.Info.Mnemonic != "STA" ||
			l2.Info.Mnemonic != "LDA" || l3.Info.Mnemonic != "STA" {
			continue
		}
		t0, ok0 := targetOf(l0)
		t2, ok2 := targetOf(l2)
		if !ok0 || !ok2 {
			continue
		}
		if uint32(t2) != uint32(t0)+1 {
			continue
		}
		out = append(out, DataStructure{
			Address:    t0,
			Kind:       PointerTable,
			Confidence: 0.7,
			Entries:    estimateSpan(lines, t0),
		})
	}
	return out
}

// estimateSpan is a coarse entry-count estimate from the span of
// observed offsets referencing base across the stream.
func estimateSpan(lines []listing.Line, base addr.Logical) int {
	maxOff := uint32(0)
	for _, l := range lines {
		if t, ok := targetOf(l); ok && uint32(t) >= uint32(base) {
			if d := uint32(t) - uint32(base); d > maxOff && d < 0x100 {
				maxOff = d
			}
		}
	}
	if maxOff == 0 {
		return 1
	}
	return int(maxOff) + 1
}

// detectJumpTable matches JMP (abs) / JMP (abs,X), emitting at the
// operand address.
func detectJumpTable(lines []listing.Line) []DataStructure {
	var out []DataStructure
	for _, l := range lines {
		if l.Info.Mnemonic != "JMP" {
			continue
		}
		switch l.Info.Mode {
		case inst.AbsoluteIndirect, inst.AbsoluteIndirectLong, inst.AbsoluteIndexedIndirect:
		default:
			continue
		}
		target, ok := targetOf(l)
		if !ok {
			continue
		}
		out = append(out, DataStructure{Address: target, Kind: JumpTable, Confidence: 0.7})
	}
	return out
}

// detectGraphicsBlob matches an STA to a PPU data port preceded within a
// short window by LDA absolute,X.
func detectGraphicsBlob(lines []listing.Line) []DataStructure {
	return detectBlob(lines, ppuDataPorts, GraphicsData, 0.6, true)
}

// detectMusicBlob matches an STA to an APU I/O port preceded by an
// unrelated LDA.
func detectMusicBlob(lines []listing.Line) []DataStructure {
	return detectBlob(lines, apuIOPorts, MusicData, 0.5, false)
}

// detectBlob looks back up to windowSize lines from each STA to ports for
// the nearest LDA; with absXOnly set, only an LDA absolute,X counts.
func detectBlob(lines []listing.Line, ports map[uint16]bool, kind Kind, confidence float64, absXOnly bool) []DataStructure {
	var out []DataStructure
	for i, l := range lines {
		if l.Info.Mnemonic != "STA" {
			continue
		}
		target, ok := targetOf(l)
		if !ok || !ports[target.Off()] {
			continue
		}
		for j := i - 1; j >= 0 && j >= i-windowSize; j-- {
			if lines[j].Info.Mnemonic == "LDA" && (!absXOnly || lines[j].Info.Mode == inst.AbsoluteX) {
				if src, ok := targetOf(lines[j]); ok {
					out = append(out, DataStructure{Address: src, Kind: kind, Confidence: confidence})
				}
				break
			}
		}
	}
	return out
}

// detectStringBlob finds four or more consecutive instruction-sized
// slots whose raw bytes are printable ASCII or a 0x00 terminator.
func detectStringBlob(lines []listing.Line) []DataStructure {
	var out []DataStructure
	run := 0
	var runStart addr.Logical
	flush := func(end int) {
		if run >= 4 {
			out = append(out, DataStructure{Address: runStart, Kind: StringTable, Confidence: 0.7, Size: end})
		}
		run = 0
	}
	for _, l := range lines {
		if isPrintableOrNul(l.Raw) {
			if run == 0 {
				runStart = l.Addr
			}
			run++
		} else {
			flush(run)
		}
	}
	flush(run)
	return out
}

func isPrintableOrNul(raw []byte) bool {
	for _, b := range raw {
		if b != 0x00 && (b < 0x20 || b > 0x7E) {
			return false
		}
	}
	return true
}

// detectPalette finds 16-bit words loaded and stored to the CGRAM data
// port ($2122), grouped in multiples of 32 bytes.
func detectPalette(lines []listing.Line) []DataStructure {
	return detectPortRun(lines, map[uint16]bool{0x2122: true}, 16, PaletteData, 0.8)
}

// detectTile finds 16-bit words loaded and stored to the VRAM data ports
// ($2118/$2119), grouped in multiples of 32 bytes (one 8x8 4bpp tile),
// mirroring detectPalette's STA-run-counting shape for the documented
// tile-record size.
func detectTile(lines []listing.Line) []DataStructure {
	return detectPortRun(lines, vramDataPorts, 16, TileData, 0.7)
}

// detectSprite finds bytes written to the OAM data port ($2104), grouped
// in multiples of 4 (the OAM primary table's X/Y/tile/attr record size).
func detectSprite(lines []listing.Line) []DataStructure {
	return detectPortRun(lines, oamDataPorts, 4, SpriteData, 0.8)
}

// detectPortRun counts STA writes to any address in ports across lines
// and, when the count reaches recordUnits, emits one DataStructure at
// the address the run's first write was sourced from. This is the
// shared shape behind detectPalette/detectTile/detectSprite: it does not
// require contiguity, only that enough writes to the port are observed
// somewhere in the stream, consistent with how detectPalette already
// treated a palette upload.
func detectPortRun(lines []listing.Line, ports map[uint16]bool, recordUnits int, kind Kind, confidence float64) []DataStructure {
	var out []DataStructure
	count := 0
	var start addr.Logical
	for i, l := range lines {
		if l.Info.Mnemonic != "STA" {
			continue
		}
		target, ok := targetOf(l)
		if !ok || !ports[target.Off()] {
			continue
		}
		if count == 0 && i > 0 {
			if src, ok := targetOf(lines[i-1]); ok {
				start = src
			}
		}
		count++
	}
	if count >= recordUnits {
		out = append(out, DataStructure{Address: start, Kind: kind, Confidence: confidence, Size: count * 2, Entries: count / recordUnits})
	}
	return out
}

// detectLevel matches four consecutive LDA reads from adjacent absolute
// addresses (a 4-byte position/hitbox record, e.g. X, Y, type, flags),
// the same adjacent-offset idiom detectPointerTable uses for 2-byte
// pointer pairs, generalized to a 4-byte stride and without the
// following STA (level tables are read, not necessarily re-stored).
func detectLevel(lines []listing.Line) []DataStructure {
	var out []DataStructure
	for i := 0; i+3 < len(lines); i++ {
		l0, l1, l2, l3 := lines[i], lines[i+1], lines[i+2], lines[i+3]
		if l0.Info.Mnemonic != "LDA" || l1.Info.Mnemonic != "LDA" ||
			l2.Info.Mnemonic != "LDA" || l3.Info.Mnemonic != "LDA" {
			continue
		}
		t0, ok0 := targetOf(l0)
		t1, ok1 := targetOf(l1)
		t2, ok2 := targetOf(l2)
		t3, ok3 := targetOf(l3)
		if !ok0 || !ok1 || !ok2 || !ok3 {
			continue
		}
		if uint32(t1) != uint32(t0)+1 || uint32(t2) != uint32(t0)+2 || uint32(t3) != uint32(t0)+3 {
			continue
		}
		out = append(out, DataStructure{
			Address:    t0,
			Kind:       LevelData,
			Confidence: 0.6,
			Entries:    estimateSpan(lines, t0) / 4,
		})
	}
	return out
}
