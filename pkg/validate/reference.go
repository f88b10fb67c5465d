package validate

// RefEntry is one independently-authored reference-table row: the
// documented mnemonic and byte-count range used to cross-check the
// decoded stream.
type RefEntry struct {
	Mnemonic string
	MinBytes int // shortest legal encoding (immediate ops vary with flags)
	MaxBytes int
}

// Reference is the static opcode -> documented-encoding table. It is
// authored independently of pkg/inst.Catalog so that a regression in
// the catalog is still caught by cross-checking against it.
var Reference = map[byte]RefEntry{
	0x00: {"BRK", 2, 2},
	0x18: {"CLC", 1, 1},
	0x20: {"JSR", 3, 3},
	0x22: {"JSL", 4, 4},
	0x38: {"SEC", 1, 1},
	0x40: {"RTI", 1, 1},
	0x48: {"PHA", 1, 1},
	0x4C: {"JMP", 3, 3},
	0x5C: {"JML", 4, 4},
	0x60: {"RTS", 1, 1},
	0x68: {"PLA", 1, 1},
	0x69: {"ADC", 2, 3},
	0x6B: {"RTL", 1, 1},
	0x6C: {"JMP", 3, 3},
	0x80: {"BRA", 2, 2},
	0x85: {"STA", 2, 2},
	0x8D: {"STA", 3, 3},
	0xA9: {"LDA", 2, 3},
	0xA0: {"LDY", 2, 3},
	0xA2: {"LDX", 2, 3},
	0xAD: {"LDA", 3, 3},
	0xC2: {"REP", 2, 2},
	0xC9: {"CMP", 2, 3},
	0xCA: {"DEX", 1, 1},
	0xE2: {"SEP", 2, 2},
	0xE8: {"INX", 1, 1},
	0xEA: {"NOP", 1, 1},
	0xF0: {"BEQ", 2, 2},
	0xFB: {"XCE", 1, 1},
}

// registerAccess documents the access direction the hardware genuinely
// supports for a subset of named registers, keyed by in-bank offset.
// "R" read-only, "W" write-only, "RW" both.
var registerAccess = map[uint16]string{
	0x2100: "W", // INIDISP
	0x2104: "W", // OAMDATA
	0x2118: "W", // VMDATAL
	0x2119: "W", // VMDATAH
	0x2122: "W", // CGDATA
	0x2140: "RW",
	0x4210: "R", // RDNMI
	0x4211: "R", // TIMEUP
	0x4212: "R", // HVBJOY
	0x4200: "W", // NMITIMEN
	0x420B: "W", // MDMAEN
}
