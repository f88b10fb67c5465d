// Package cart derives the immutable Cartridge model — mapping family,
// ROM/SRAM sizes, speed, and the descriptive memory-region map — from a
// parsed Header.
package cart

import (
	"github.com/oisee/snes65816/pkg/addr"
	"github.com/oisee/snes65816/pkg/header"
)

// Speed is the memory-access timing class selected by header bit 4 of
// the map-mode byte.
type Speed int

const (
	Slow Speed = iota
	Fast
)

func (s Speed) String() string {
	if s == Fast {
		return "Fast"
	}
	return "Slow"
}

// RegionKind classifies a MemoryRegion.
type RegionKind int

const (
	RegionROM RegionKind = iota
	RegionRAM
	RegionSRAM
	RegionIO
	RegionOpenBus
)

// MemoryRegion is a half-open logical address range with descriptive
// metadata. Regions are primarily descriptive: the address translator
// (pkg/addr) does not consult them.
type MemoryRegion struct {
	Start       addr.Logical
	End         addr.Logical // exclusive
	Kind        RegionKind
	Readable    bool
	Writable    bool
	Speed       Speed
	Description string
}

// Cartridge is the immutable model built once at load time.
type Cartridge struct {
	Family     addr.Family
	MapMode    byte
	RomSize    uint32 // bytes
	SramSize   uint32 // bytes
	HasBattery bool
	HasRTC     bool
	Speed      Speed
	Regions    []MemoryRegion
}

// specialChipFamily decodes the cartridge-type byte's coprocessor field:
// a low nibble of 3 or more means a coprocessor is present, and the high
// nibble names it. These override the map-mode family. The 0xF "custom"
// nibble is not discriminating on its own, so the known dump values are
// keyed individually.
func specialChipFamily(cartType byte) (addr.Family, bool) {
	if cartType&0x0F < 0x03 {
		return addr.Unknown, false
	}
	switch cartType >> 4 {
	case 0x0:
		return addr.DSPn, true
	case 0x1:
		return addr.SuperFX, true
	case 0x2:
		return addr.OBC1, true
	case 0x3:
		return addr.SA1, true
	case 0x4:
		return addr.SDD1, true
	case 0x5:
		return addr.SRTC, true
	case 0xE:
		return addr.BSX, true
	case 0xF:
		switch cartType {
		case 0xF3:
			return addr.CX4, true
		case 0xF5, 0xF9:
			return addr.SPC7110, true
		case 0xF6:
			return addr.STnnn, true
		}
	}
	return addr.Unknown, false
}

func mapModeFamily(mapMode byte) addr.Family {
	if mapMode&0x01 != 0 {
		return addr.HiROM
	}
	return addr.LoROM
}

func hasBattery(cartType byte) bool {
	switch cartType & 0x0F {
	case 0x02, 0x05, 0x06, 0x09, 0x0A:
		return true
	}
	return false
}

// hasRTC reports whether cartType carries a real-time clock: 0x55 is the
// S-RTC cart, 0xF9 the SPC7110 variant with the clock fitted.
func hasRTC(cartType byte) bool {
	switch cartType {
	case 0x55, 0xF9:
		return true
	}
	return false
}

// New builds the Cartridge model from h. The cartridge-type byte's
// special-chip family overrides the map-mode family when both are
// present.
func New(h header.Header) Cartridge {
	family := mapModeFamily(h.MapMode)
	if override, ok := specialChipFamily(h.CartType); ok {
		family = override
	}

	speed := Slow
	if h.MapMode&0x10 != 0 {
		speed = Fast
	}

	c := Cartridge{
		Family:     family,
		MapMode:    h.MapMode,
		RomSize:    uint32(1) << h.RomSizeCode * 1024,
		HasBattery: hasBattery(h.CartType),
		HasRTC:     hasRTC(h.CartType),
		Speed:      speed,
	}
	if h.RamSizeCode != 0 {
		c.SramSize = uint32(1) << h.RamSizeCode * 1024
	}
	c.Regions = buildRegions(family, c.SramSize > 0, speed)
	return c
}

// RegionAt returns the MemoryRegion containing a, if any. Regions never
// overlap, so at most one can match.
func (c Cartridge) RegionAt(a addr.Logical) (MemoryRegion, bool) {
	for _, r := range c.Regions {
		if a >= r.Start && a < r.End {
			return r, true
		}
	}
	return MemoryRegion{}, false
}

// bankWindows appends one region per bank in [first, last], each
// covering the half-open in-bank window [lo, hi); hi of 0x10000 runs
// through the end of the bank. Emitting one region per bank keeps the
// list free of cross-bank ranges, so a bank's ROM window can never
// swallow another bank's SRAM or RAM window.
func bankWindows(regions []MemoryRegion, first, last int, lo, hi uint32, kind RegionKind, writable bool, speed Speed, desc string) []MemoryRegion {
	for bank := first; bank <= last; bank++ {
		regions = append(regions, MemoryRegion{
			Start:       addr.Logical(uint32(bank)<<16 | lo),
			End:         addr.Logical(uint32(bank)<<16 + hi),
			Kind:        kind,
			Readable:    true,
			Writable:    writable,
			Speed:       speed,
			Description: desc,
		})
	}
	return regions
}

// buildRegions constructs the minimum MemoryRegion set the analysis
// needs for each family. Regions are non-overlapping.
func buildRegions(family addr.Family, hasSram bool, speed Speed) []MemoryRegion {
	var regions []MemoryRegion

	switch family {
	case addr.HiROM, addr.ExHiROM, addr.SPC7110:
		regions = bankWindows(regions, 0x00, 0x3F, 0x8000, 0x10000, RegionROM, false, Slow, "HiROM banks 00-3F, upper half")
		regions = bankWindows(regions, 0x40, 0x7D, 0x0000, 0x10000, RegionROM, false, Slow, "HiROM banks 40-7D, full bank")
		regions = bankWindows(regions, 0x7E, 0x7F, 0x0000, 0x10000, RegionRAM, true, Slow, "work RAM")
		regions = bankWindows(regions, 0x80, 0xBF, 0x8000, 0x10000, RegionROM, false, speed, "HiROM mirror banks 80-BF")
		regions = bankWindows(regions, 0xC0, 0xFF, 0x0000, 0x10000, RegionROM, false, speed, "HiROM mirror banks C0-FF")
		if hasSram {
			regions = bankWindows(regions, 0x20, 0x3F, 0x6000, 0x8000, RegionSRAM, true, Slow, "HiROM SRAM banks 20-3F")
		}
	default: // LoROM, ExLoROM, SA1, SuperFX, BSX, MSU1, and unmodeled specials
		regions = bankWindows(regions, 0x00, 0x7F, 0x8000, 0x10000, RegionROM, false, Slow, "LoROM banks 00-7F")
		regions = bankWindows(regions, 0x80, 0xFF, 0x8000, 0x10000, RegionROM, false, speed, "LoROM mirror banks 80-FF")
		if hasSram {
			sramFirst := 0x70
			if family == addr.SuperFX {
				sramFirst = 0x72 // banks 70-71 carry the GSU work RAM instead
			}
			regions = bankWindows(regions, sramFirst, 0x7F, 0x0000, 0x8000, RegionSRAM, true, Slow, "LoROM SRAM window")
		}
		switch family {
		case addr.SA1:
			regions = bankWindows(regions, 0x00, 0x00, 0x3000, 0x3800, RegionIO, true, Fast, "SA-1 I/O window")
		case addr.SuperFX:
			regions = bankWindows(regions, 0x70, 0x71, 0x0000, 0x8000, RegionRAM, true, Fast, "GSU work RAM")
		case addr.BSX:
			regions = bankWindows(regions, 0x00, 0x00, 0x6000, 0x8000, RegionIO, true, Slow, "BS-X satellaview I/O")
		case addr.MSU1:
			regions = bankWindows(regions, 0x00, 0x00, 0x2000, 0x2008, RegionIO, true, Fast, "MSU1 data ports")
		}
	}

	return regions
}
