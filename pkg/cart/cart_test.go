package cart

import (
	"testing"

	"github.com/oisee/snes65816/pkg/addr"
	"github.com/oisee/snes65816/pkg/header"
)

func TestNewLoROM(t *testing.T) {
	h := header.Header{MapMode: 0x20, CartType: 0x00, RomSizeCode: 9}
	c := New(h)
	if c.Family != addr.LoROM {
		t.Fatalf("got family %v, want LoROM", c.Family)
	}
	if c.RomSize != 512*1024 {
		t.Fatalf("got RomSize %d, want %d", c.RomSize, 512*1024)
	}
	if c.Speed != Slow {
		t.Fatalf("got speed %v, want Slow", c.Speed)
	}
}

func TestNewHiROMFast(t *testing.T) {
	h := header.Header{MapMode: 0x31, CartType: 0x02, RomSizeCode: 10, RamSizeCode: 3}
	c := New(h)
	if c.Family != addr.HiROM {
		t.Fatalf("got family %v, want HiROM", c.Family)
	}
	if c.Speed != Fast {
		t.Fatalf("got speed %v, want Fast", c.Speed)
	}
	if !c.HasBattery {
		t.Fatalf("cart type 0x02 should have a battery")
	}
	if c.SramSize != 8*1024 {
		t.Fatalf("got SramSize %d, want %d", c.SramSize, 8*1024)
	}
}

func TestCartTypeOverridesMapMode(t *testing.T) {
	h := header.Header{MapMode: 0x20, CartType: 0x34, RomSizeCode: 9}
	c := New(h)
	if c.Family != addr.SA1 {
		t.Fatalf("got family %v, want SA1 (cart-type override)", c.Family)
	}

	h = header.Header{MapMode: 0x20, CartType: 0x15, RomSizeCode: 9}
	c = New(h)
	if c.Family != addr.SuperFX {
		t.Fatalf("got family %v, want SuperFX (cart-type override)", c.Family)
	}

	h = header.Header{MapMode: 0x20, CartType: 0x02, RomSizeCode: 9}
	c = New(h)
	if c.Family != addr.LoROM {
		t.Fatalf("got family %v, want LoROM (low nibble below 3 means no coprocessor)", c.Family)
	}
}

func TestNewSRTC(t *testing.T) {
	h := header.Header{MapMode: 0x31, CartType: 0x55, RomSizeCode: 9}
	c := New(h)
	if !c.HasRTC {
		t.Fatalf("cart type 0x55 should set HasRTC")
	}
	if c.Family != addr.SRTC {
		t.Fatalf("got family %v, want SRTC", c.Family)
	}
}

func TestRegionsNonEmpty(t *testing.T) {
	h := header.Header{MapMode: 0x20, RomSizeCode: 9}
	c := New(h)
	if len(c.Regions) == 0 {
		t.Fatalf("expected at least one memory region")
	}
}

func TestRegionAtLoROM(t *testing.T) {
	h := header.Header{MapMode: 0x20, CartType: 0x02, RomSizeCode: 9, RamSizeCode: 1}
	c := New(h)

	rgn, ok := c.RegionAt(addr.New(0x00, 0x8000))
	if !ok || rgn.Kind != RegionROM {
		t.Fatalf("got region %+v, ok=%v, want ROM", rgn, ok)
	}

	rgn, ok = c.RegionAt(addr.New(0x70, 0x0000))
	if !ok || rgn.Kind != RegionSRAM {
		t.Fatalf("got region %+v, ok=%v, want SRAM", rgn, ok)
	}

	if _, ok := c.RegionAt(addr.New(0x00, 0x0000)); ok {
		t.Fatalf("bank 0 offset 0 is unmapped and should not match a region")
	}
}

func TestRegionAtHiROM(t *testing.T) {
	h := header.Header{MapMode: 0x21, CartType: 0x02, RomSizeCode: 10, RamSizeCode: 3}
	c := New(h)

	rgn, ok := c.RegionAt(addr.New(0xC0, 0x0000))
	if !ok || rgn.Kind != RegionROM {
		t.Fatalf("got region %+v, ok=%v, want ROM", rgn, ok)
	}

	rgn, ok = c.RegionAt(addr.New(0x20, 0x6000))
	if !ok || rgn.Kind != RegionSRAM {
		t.Fatalf("got region %+v, ok=%v, want SRAM", rgn, ok)
	}

	rgn, ok = c.RegionAt(addr.New(0x7E, 0x0000))
	if !ok || rgn.Kind != RegionRAM {
		t.Fatalf("got region %+v, ok=%v, want work RAM", rgn, ok)
	}
}

// TestRegionsNonOverlapping checks no two regions intersect, for both
// families with SRAM present.
func TestRegionsNonOverlapping(t *testing.T) {
	headers := []header.Header{
		{MapMode: 0x20, CartType: 0x02, RomSizeCode: 9, RamSizeCode: 1},
		{MapMode: 0x21, CartType: 0x02, RomSizeCode: 10, RamSizeCode: 3},
	}
	for _, h := range headers {
		c := New(h)
		for i, a := range c.Regions {
			for _, b := range c.Regions[i+1:] {
				if a.Start < b.End && b.Start < a.End {
					t.Fatalf("map mode %#x: regions %q [%s,%s) and %q [%s,%s) overlap",
						h.MapMode, a.Description, a.Start, a.End, b.Description, b.Start, b.End)
				}
			}
		}
	}
}
