package inst

// Mode identifies how the operand bytes following an opcode resolve to an
// address or value.
type Mode int

const (
	Implied Mode = iota
	Accumulator
	ImmediateM // width follows FlagState.M (accumulator/memory group)
	ImmediateX // width follows FlagState.X (index-register group)
	ImmediateS // fixed 1-byte signature (BRK/COP/WDM)
	Direct
	DirectX
	DirectY
	DirectIndirect
	DirectIndirectLong
	DirectIndexedIndirect
	DirectIndirectIndexed
	DirectIndirectLongIndexed
	Absolute
	AbsoluteX
	AbsoluteY
	AbsoluteIndirect
	AbsoluteIndirectLong
	AbsoluteIndexedIndirect
	AbsoluteLong
	AbsoluteLongX
	StackRelative
	StackRelativeIndirectIndexed
	Relative8
	Relative16
	BlockMove
)

// fixedLength returns the total instruction length (opcode + operand) for
// modes whose length never depends on the flag state. ImmediateM and
// ImmediateX are handled separately by the decoder.
var fixedLength = map[Mode]int{
	Implied:                      1,
	Accumulator:                  1,
	ImmediateS:                   2,
	Direct:                       2,
	DirectX:                      2,
	DirectY:                      2,
	DirectIndirect:               2,
	DirectIndirectLong:           2,
	DirectIndexedIndirect:        2,
	DirectIndirectIndexed:        2,
	DirectIndirectLongIndexed:    2,
	Absolute:                     3,
	AbsoluteX:                    3,
	AbsoluteY:                    3,
	AbsoluteIndirect:             3,
	AbsoluteIndirectLong:         3,
	AbsoluteIndexedIndirect:      3,
	AbsoluteLong:                 4,
	AbsoluteLongX:                4,
	StackRelative:                2,
	StackRelativeIndirectIndexed: 2,
	Relative8:                    2,
	Relative16:                   3,
	BlockMove:                    3,
}
