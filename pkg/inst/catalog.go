package inst

// Info holds static metadata for one 65816 opcode byte.
type Info struct {
	Mnemonic string
	Mode     Mode
	Cycles   Cycles
}

// Cycles is a base cycle count plus the documented modifiers: +1 when the
// accumulator is 16-bit (+2 for read-modify-write instructions), +1 when
// index registers are 16-bit, +1 on a
// page-boundary crossing for indexed absolute modes, +1 when touching
// slow memory.
type Cycles struct {
	Base             int
	ExtraIfM16       int
	ExtraIfX16       int
	ExtraIfPageCross int
	ExtraIfSlow      int
}

// Catalog maps each of the 256 opcode bytes to its Info. The 65816 has no
// illegal opcodes — every byte is defined, including WDM ($42) which is a
// reserved 2-byte NOP-with-signature.
var Catalog [256]Info

func init() {
	set := func(op byte, mnemonic string, mode Mode, base int, mods ...int) {
		c := Cycles{Base: base}
		for i, m := range mods {
			switch i {
			case 0:
				c.ExtraIfM16 = m
			case 1:
				c.ExtraIfX16 = m
			case 2:
				c.ExtraIfPageCross = m
			case 3:
				c.ExtraIfSlow = m
			}
		}
		Catalog[op] = Info{Mnemonic: mnemonic, Mode: mode, Cycles: c}
	}

	// Row 0x0_
	set(0x00, "BRK", ImmediateS, 7)
	set(0x01, "ORA", DirectIndexedIndirect, 6, 0, 0, 0, 1)
	set(0x02, "COP", ImmediateS, 7)
	set(0x03, "ORA", StackRelative, 4, 1)
	set(0x04, "TSB", Direct, 5, 1, 0, 0, 1)
	set(0x05, "ORA", Direct, 3, 1, 0, 0, 1)
	set(0x06, "ASL", Direct, 5, 2, 0, 0, 1)
	set(0x07, "ORA", DirectIndirectLong, 6, 1, 0, 0, 1)
	set(0x08, "PHP", Implied, 3)
	set(0x09, "ORA", ImmediateM, 2, 1)
	set(0x0A, "ASL", Accumulator, 2)
	set(0x0B, "PHD", Implied, 4)
	set(0x0C, "TSB", Absolute, 6, 1, 0, 0, 1)
	set(0x0D, "ORA", Absolute, 4, 1, 0, 0, 1)
	set(0x0E, "ASL", Absolute, 6, 2, 0, 0, 1)
	set(0x0F, "ORA", AbsoluteLong, 5, 1, 0, 0, 1)

	// Row 0x1_
	set(0x10, "BPL", Relative8, 2)
	set(0x11, "ORA", DirectIndirectIndexed, 5, 0, 0, 1, 1)
	set(0x12, "ORA", DirectIndirect, 5, 1, 0, 0, 1)
	set(0x13, "ORA", StackRelativeIndirectIndexed, 7, 1)
	set(0x14, "TRB", Direct, 5, 1, 0, 0, 1)
	set(0x15, "ORA", DirectX, 4, 1, 0, 0, 1)
	set(0x16, "ASL", DirectX, 6, 2, 0, 0, 1)
	set(0x17, "ORA", DirectIndirectLongIndexed, 6, 1, 0, 0, 1)
	set(0x18, "CLC", Implied, 2)
	set(0x19, "ORA", AbsoluteY, 4, 1, 0, 1, 1)
	set(0x1A, "INC", Accumulator, 2)
	set(0x1B, "TCS", Implied, 2)
	set(0x1C, "TRB", Absolute, 6, 1, 0, 0, 1)
	set(0x1D, "ORA", AbsoluteX, 4, 1, 0, 1, 1)
	set(0x1E, "ASL", AbsoluteX, 7, 2, 0, 0, 1)
	set(0x1F, "ORA", AbsoluteLongX, 5, 1, 0, 0, 1)

	// Row 0x2_
	set(0x20, "JSR", Absolute, 6)
	set(0x21, "AND", DirectIndexedIndirect, 6, 0, 0, 0, 1)
	set(0x22, "JSL", AbsoluteLong, 8)
	set(0x23, "AND", StackRelative, 4, 1)
	set(0x24, "BIT", Direct, 3, 1, 0, 0, 1)
	set(0x25, "AND", Direct, 3, 1, 0, 0, 1)
	set(0x26, "ROL", Direct, 5, 2, 0, 0, 1)
	set(0x27, "AND", DirectIndirectLong, 6, 1, 0, 0, 1)
	set(0x28, "PLP", Implied, 4)
	set(0x29, "AND", ImmediateM, 2, 1)
	set(0x2A, "ROL", Accumulator, 2)
	set(0x2B, "PLD", Implied, 5)
	set(0x2C, "BIT", Absolute, 4, 1, 0, 0, 1)
	set(0x2D, "AND", Absolute, 4, 1, 0, 0, 1)
	set(0x2E, "ROL", Absolute, 6, 2, 0, 0, 1)
	set(0x2F, "AND", AbsoluteLong, 5, 1, 0, 0, 1)

	// Row 0x3_
	set(0x30, "BMI", Relative8, 2)
	set(0x31, "AND", DirectIndirectIndexed, 5, 0, 0, 1, 1)
	set(0x32, "AND", DirectIndirect, 5, 1, 0, 0, 1)
	set(0x33, "AND", StackRelativeIndirectIndexed, 7, 1)
	set(0x34, "BIT", DirectX, 4, 1, 0, 0, 1)
	set(0x35, "AND", DirectX, 4, 1, 0, 0, 1)
	set(0x36, "ROL", DirectX, 6, 2, 0, 0, 1)
	set(0x37, "AND", DirectIndirectLongIndexed, 6, 1, 0, 0, 1)
	set(0x38, "SEC", Implied, 2)
	set(0x39, "AND", AbsoluteY, 4, 1, 0, 1, 1)
	set(0x3A, "DEC", Accumulator, 2)
	set(0x3B, "TSC", Implied, 2)
	set(0x3C, "BIT", AbsoluteX, 4, 1, 0, 1, 1)
	set(0x3D, "AND", AbsoluteX, 4, 1, 0, 1, 1)
	set(0x3E, "ROL", AbsoluteX, 7, 2, 0, 0, 1)
	set(0x3F, "AND", AbsoluteLongX, 5, 1, 0, 0, 1)

	// Row 0x4_
	set(0x40, "RTI", Implied, 6)
	set(0x41, "EOR", DirectIndexedIndirect, 6, 0, 0, 0, 1)
	set(0x42, "WDM", ImmediateS, 2)
	set(0x43, "EOR", StackRelative, 4, 1)
	set(0x44, "MVP", BlockMove, 7)
	set(0x45, "EOR", Direct, 3, 1, 0, 0, 1)
	set(0x46, "LSR", Direct, 5, 2, 0, 0, 1)
	set(0x47, "EOR", DirectIndirectLong, 6, 1, 0, 0, 1)
	set(0x48, "PHA", Implied, 3, 1)
	set(0x49, "EOR", ImmediateM, 2, 1)
	set(0x4A, "LSR", Accumulator, 2)
	set(0x4B, "PHK", Implied, 3)
	set(0x4C, "JMP", Absolute, 3)
	set(0x4D, "EOR", Absolute, 4, 1, 0, 0, 1)
	set(0x4E, "LSR", Absolute, 6, 2, 0, 0, 1)
	set(0x4F, "EOR", AbsoluteLong, 5, 1, 0, 0, 1)

	// Row 0x5_
	set(0x50, "BVC", Relative8, 2)
	set(0x51, "EOR", DirectIndirectIndexed, 5, 0, 0, 1, 1)
	set(0x52, "EOR", DirectIndirect, 5, 1, 0, 0, 1)
	set(0x53, "EOR", StackRelativeIndirectIndexed, 7, 1)
	set(0x54, "MVN", BlockMove, 7)
	set(0x55, "EOR", DirectX, 4, 1, 0, 0, 1)
	set(0x56, "LSR", DirectX, 6, 2, 0, 0, 1)
	set(0x57, "EOR", DirectIndirectLongIndexed, 6, 1, 0, 0, 1)
	set(0x58, "CLI", Implied, 2)
	set(0x59, "EOR", AbsoluteY, 4, 1, 0, 1, 1)
	set(0x5A, "PHY", Implied, 3, 0, 1)
	set(0x5B, "TCD", Implied, 2)
	set(0x5C, "JML", AbsoluteLong, 4)
	set(0x5D, "EOR", AbsoluteX, 4, 1, 0, 1, 1)
	set(0x5E, "LSR", AbsoluteX, 7, 2, 0, 0, 1)
	set(0x5F, "EOR", AbsoluteLongX, 5, 1, 0, 0, 1)

	// Row 0x6_
	set(0x60, "RTS", Implied, 6)
	set(0x61, "ADC", DirectIndexedIndirect, 6, 0, 0, 0, 1)
	set(0x62, "PER", Relative16, 6)
	set(0x63, "ADC", StackRelative, 4, 1)
	set(0x64, "STZ", Direct, 3, 1, 0, 0, 1)
	set(0x65, "ADC", Direct, 3, 1, 0, 0, 1)
	set(0x66, "ROR", Direct, 5, 2, 0, 0, 1)
	set(0x67, "ADC", DirectIndirectLong, 6, 1, 0, 0, 1)
	set(0x68, "PLA", Implied, 4, 1)
	set(0x69, "ADC", ImmediateM, 2, 1)
	set(0x6A, "ROR", Accumulator, 2)
	set(0x6B, "RTL", Implied, 6)
	set(0x6C, "JMP", AbsoluteIndirect, 5)
	set(0x6D, "ADC", Absolute, 4, 1, 0, 0, 1)
	set(0x6E, "ROR", Absolute, 6, 2, 0, 0, 1)
	set(0x6F, "ADC", AbsoluteLong, 5, 1, 0, 0, 1)

	// Row 0x7_
	set(0x70, "BVS", Relative8, 2)
	set(0x71, "ADC", DirectIndirectIndexed, 5, 0, 0, 1, 1)
	set(0x72, "ADC", DirectIndirect, 5, 1, 0, 0, 1)
	set(0x73, "ADC", StackRelativeIndirectIndexed, 7, 1)
	set(0x74, "STZ", DirectX, 4, 1, 0, 0, 1)
	set(0x75, "ADC", DirectX, 4, 1, 0, 0, 1)
	set(0x76, "ROR", DirectX, 6, 2, 0, 0, 1)
	set(0x77, "ADC", DirectIndirectLongIndexed, 6, 1, 0, 0, 1)
	set(0x78, "SEI", Implied, 2)
	set(0x79, "ADC", AbsoluteY, 4, 1, 0, 1, 1)
	set(0x7A, "PLY", Implied, 4, 0, 1)
	set(0x7B, "TDC", Implied, 2)
	set(0x7C, "JMP", AbsoluteIndexedIndirect, 6)
	set(0x7D, "ADC", AbsoluteX, 4, 1, 0, 1, 1)
	set(0x7E, "ROR", AbsoluteX, 7, 2, 0, 0, 1)
	set(0x7F, "ADC", AbsoluteLongX, 5, 1, 0, 0, 1)

	// Row 0x8_
	set(0x80, "BRA", Relative8, 3)
	set(0x81, "STA", DirectIndexedIndirect, 6, 0, 0, 0, 1)
	set(0x82, "BRL", Relative16, 4)
	set(0x83, "STA", StackRelative, 4, 1)
	set(0x84, "STY", Direct, 3, 0, 1, 0, 1)
	set(0x85, "STA", Direct, 3, 1, 0, 0, 1)
	set(0x86, "STX", Direct, 3, 0, 1, 0, 1)
	set(0x87, "STA", DirectIndirectLong, 6, 1, 0, 0, 1)
	set(0x88, "DEY", Implied, 2)
	set(0x89, "BIT", ImmediateM, 2, 1)
	set(0x8A, "TXA", Implied, 2)
	set(0x8B, "PHB", Implied, 3)
	set(0x8C, "STY", Absolute, 4, 0, 1, 0, 1)
	set(0x8D, "STA", Absolute, 4, 1, 0, 0, 1)
	set(0x8E, "STX", Absolute, 4, 0, 1, 0, 1)
	set(0x8F, "STA", AbsoluteLong, 5, 1, 0, 0, 1)

	// Row 0x9_
	set(0x90, "BCC", Relative8, 2)
	set(0x91, "STA", DirectIndirectIndexed, 6, 1, 0, 0, 1)
	set(0x92, "STA", DirectIndirect, 5, 1, 0, 0, 1)
	set(0x93, "STA", StackRelativeIndirectIndexed, 7, 1)
	set(0x94, "STY", DirectX, 4, 0, 1, 0, 1)
	set(0x95, "STA", DirectX, 4, 1, 0, 0, 1)
	set(0x96, "STX", DirectY, 4, 0, 1, 0, 1)
	set(0x97, "STA", DirectIndirectLongIndexed, 6, 1, 0, 0, 1)
	set(0x98, "TYA", Implied, 2)
	set(0x99, "STA", AbsoluteY, 5, 1, 0, 0, 1)
	set(0x9A, "TXS", Implied, 2)
	set(0x9B, "TXY", Implied, 2)
	set(0x9C, "STZ", Absolute, 4, 1, 0, 0, 1)
	set(0x9D, "STA", AbsoluteX, 5, 1, 0, 0, 1)
	set(0x9E, "STZ", AbsoluteX, 5, 1, 0, 0, 1)
	set(0x9F, "STA", AbsoluteLongX, 5, 1, 0, 0, 1)

	// Row 0xA_
	set(0xA0, "LDY", ImmediateX, 2, 0, 1)
	set(0xA1, "LDA", DirectIndexedIndirect, 6, 1, 0, 0, 1)
	set(0xA2, "LDX", ImmediateX, 2, 0, 1)
	set(0xA3, "LDA", StackRelative, 4, 1)
	set(0xA4, "LDY", Direct, 3, 0, 1, 0, 1)
	set(0xA5, "LDA", Direct, 3, 1, 0, 0, 1)
	set(0xA6, "LDX", Direct, 3, 0, 1, 0, 1)
	set(0xA7, "LDA", DirectIndirectLong, 6, 1, 0, 0, 1)
	set(0xA8, "TAY", Implied, 2)
	set(0xA9, "LDA", ImmediateM, 2, 1)
	set(0xAA, "TAX", Implied, 2)
	set(0xAB, "PLB", Implied, 4)
	set(0xAC, "LDY", Absolute, 4, 0, 1, 0, 1)
	set(0xAD, "LDA", Absolute, 4, 1, 0, 0, 1)
	set(0xAE, "LDX", Absolute, 4, 0, 1, 0, 1)
	set(0xAF, "LDA", AbsoluteLong, 5, 1, 0, 0, 1)

	// Row 0xB_
	set(0xB0, "BCS", Relative8, 2)
	set(0xB1, "LDA", DirectIndirectIndexed, 5, 1, 0, 1, 1)
	set(0xB2, "LDA", DirectIndirect, 5, 1, 0, 0, 1)
	set(0xB3, "LDA", StackRelativeIndirectIndexed, 7, 1)
	set(0xB4, "LDY", DirectX, 4, 0, 1, 0, 1)
	set(0xB5, "LDA", DirectX, 4, 1, 0, 0, 1)
	set(0xB6, "LDX", DirectY, 4, 0, 1, 0, 1)
	set(0xB7, "LDA", DirectIndirectLongIndexed, 6, 1, 0, 0, 1)
	set(0xB8, "CLV", Implied, 2)
	set(0xB9, "LDA", AbsoluteY, 4, 1, 0, 1, 1)
	set(0xBA, "TSX", Implied, 2)
	set(0xBB, "TYX", Implied, 2)
	set(0xBC, "LDY", AbsoluteX, 4, 0, 1, 1, 1)
	set(0xBD, "LDA", AbsoluteX, 4, 1, 0, 1, 1)
	set(0xBE, "LDX", AbsoluteY, 4, 0, 1, 1, 1)
	set(0xBF, "LDA", AbsoluteLongX, 5, 1, 0, 0, 1)

	// Row 0xC_
	set(0xC0, "CPY", ImmediateX, 2, 0, 1)
	set(0xC1, "CMP", DirectIndexedIndirect, 6, 1, 0, 0, 1)
	set(0xC2, "REP", ImmediateS, 3)
	set(0xC3, "CMP", StackRelative, 4, 1)
	set(0xC4, "CPY", Direct, 3, 0, 1, 0, 1)
	set(0xC5, "CMP", Direct, 3, 1, 0, 0, 1)
	set(0xC6, "DEC", Direct, 5, 2, 0, 0, 1)
	set(0xC7, "CMP", DirectIndirectLong, 6, 1, 0, 0, 1)
	set(0xC8, "INY", Implied, 2)
	set(0xC9, "CMP", ImmediateM, 2, 1)
	set(0xCA, "DEX", Implied, 2)
	set(0xCB, "WAI", Implied, 3)
	set(0xCC, "CPY", Absolute, 4, 0, 1, 0, 1)
	set(0xCD, "CMP", Absolute, 4, 1, 0, 0, 1)
	set(0xCE, "DEC", Absolute, 6, 2, 0, 0, 1)
	set(0xCF, "CMP", AbsoluteLong, 5, 1, 0, 0, 1)

	// Row 0xD_
	set(0xD0, "BNE", Relative8, 2)
	set(0xD1, "CMP", DirectIndirectIndexed, 5, 1, 0, 1, 1)
	set(0xD2, "CMP", DirectIndirect, 5, 1, 0, 0, 1)
	set(0xD3, "CMP", StackRelativeIndirectIndexed, 7, 1)
	set(0xD4, "PEI", DirectIndirect, 6)
	set(0xD5, "CMP", DirectX, 4, 1, 0, 0, 1)
	set(0xD6, "DEC", DirectX, 6, 2, 0, 0, 1)
	set(0xD7, "CMP", DirectIndirectLongIndexed, 6, 1, 0, 0, 1)
	set(0xD8, "CLD", Implied, 2)
	set(0xD9, "CMP", AbsoluteY, 4, 1, 0, 1, 1)
	set(0xDA, "PHX", Implied, 3, 0, 1)
	set(0xDB, "STP", Implied, 3)
	set(0xDC, "JML", AbsoluteIndirectLong, 6)
	set(0xDD, "CMP", AbsoluteX, 4, 1, 0, 1, 1)
	set(0xDE, "DEC", AbsoluteX, 7, 2, 0, 0, 1)
	set(0xDF, "CMP", AbsoluteLongX, 5, 1, 0, 0, 1)

	// Row 0xE_
	set(0xE0, "CPX", ImmediateX, 2, 0, 1)
	set(0xE1, "SBC", DirectIndexedIndirect, 6, 1, 0, 0, 1)
	set(0xE2, "SEP", ImmediateS, 3)
	set(0xE3, "SBC", StackRelative, 4, 1)
	set(0xE4, "CPX", Direct, 3, 0, 1, 0, 1)
	set(0xE5, "SBC", Direct, 3, 1, 0, 0, 1)
	set(0xE6, "INC", Direct, 5, 2, 0, 0, 1)
	set(0xE7, "SBC", DirectIndirectLong, 6, 1, 0, 0, 1)
	set(0xE8, "INX", Implied, 2)
	set(0xE9, "SBC", ImmediateM, 2, 1)
	set(0xEA, "NOP", Implied, 2)
	set(0xEB, "XBA", Implied, 3)
	set(0xEC, "CPX", Absolute, 4, 0, 1, 0, 1)
	set(0xED, "SBC", Absolute, 4, 1, 0, 0, 1)
	set(0xEE, "INC", Absolute, 6, 2, 0, 0, 1)
	set(0xEF, "SBC", AbsoluteLong, 5, 1, 0, 0, 1)

	// Row 0xF_
	set(0xF0, "BEQ", Relative8, 2)
	set(0xF1, "SBC", DirectIndirectIndexed, 5, 1, 0, 1, 1)
	set(0xF2, "SBC", DirectIndirect, 5, 1, 0, 0, 1)
	set(0xF3, "SBC", StackRelativeIndirectIndexed, 7, 1)
	set(0xF4, "PEA", Absolute, 5)
	set(0xF5, "SBC", DirectX, 4, 1, 0, 0, 1)
	set(0xF6, "INC", DirectX, 6, 2, 0, 0, 1)
	set(0xF7, "SBC", DirectIndirectLongIndexed, 6, 1, 0, 0, 1)
	set(0xF8, "SED", Implied, 2)
	set(0xF9, "SBC", AbsoluteY, 4, 1, 0, 1, 1)
	set(0xFA, "PLX", Implied, 4, 0, 1)
	set(0xFB, "XCE", Implied, 2)
	set(0xFC, "JSR", AbsoluteIndexedIndirect, 8)
	set(0xFD, "SBC", AbsoluteX, 4, 1, 0, 1, 1)
	set(0xFE, "INC", AbsoluteX, 7, 2, 0, 0, 1)
	set(0xFF, "SBC", AbsoluteLongX, 5, 1, 0, 0, 1)
}

// IsBranch reports whether mnemonic m is a conditional branch (Bxx).
func IsBranch(m string) bool {
	switch m {
	case "BPL", "BMI", "BVC", "BVS", "BCC", "BCS", "BNE", "BEQ":
		return true
	}
	return false
}

// IsReturn reports whether mnemonic m ends a function (RTS/RTL/RTI).
func IsReturn(m string) bool {
	return m == "RTS" || m == "RTL" || m == "RTI"
}

// IsUnconditionalTransfer reports whether mnemonic m always transfers
// control away from the following instruction (JMP/JML/BRA/BRL), not
// counting calls.
func IsUnconditionalTransfer(m string) bool {
	switch m {
	case "JMP", "JML", "BRA", "BRL":
		return true
	}
	return false
}

// IsCall reports whether mnemonic m is a subroutine call (JSR/JSL).
func IsCall(m string) bool {
	return m == "JSR" || m == "JSL"
}

// IsControlFlow reports whether mnemonic m ends a basic block: any
// branch, jump, call, return, software interrupt, or processor halt.
func IsControlFlow(m string) bool {
	if IsBranch(m) || IsReturn(m) || IsUnconditionalTransfer(m) || IsCall(m) {
		return true
	}
	switch m {
	case "BRK", "COP", "WAI", "STP":
		return true
	}
	return false
}
