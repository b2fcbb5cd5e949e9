package cpu

import "fmt"

// Condition is the condition under which a jump, call or
// return is taken.
type Condition uint8

const (
	Always Condition = iota
	NZ
	Z
	NC
	CY
)

var conditionNames = [...]string{"", "NZ", "Z", "NC", "C"}

func (cc Condition) String() string {
	return conditionNames[cc]
}

// test returns true if the condition holds for the given flags.
func (c *CPU) test(cc Condition) bool {
	switch cc {
	case NZ:
		return !c.isFlagSet(FlagZero)
	case Z:
		return c.isFlagSet(FlagZero)
	case NC:
		return !c.isFlagSet(FlagCarry)
	case CY:
		return c.isFlagSet(FlagCarry)
	}
	return true
}

type kind uint8

const (
	implemented kind = iota
	unimplemented
	illegal
)

// Instruction is a decoded opcode. The effect is a plain function
// receiving the CPU and the Instruction itself, the operands it works
// on are carried as metadata so that no closures are needed.
type Instruction struct {
	name    string
	execute func(*CPU, *Instruction)

	dst, src Target
	cond     Condition
	// n is the bit index of BIT/RES/SET, the ALU operation,
	// or the address of a RST
	n uint8

	// selfFetch is set on instructions that perform the fetch of the
	// next opcode themselves, rather than leaving it to the CPU.
	selfFetch bool

	kind     kind
	opcode   uint8
	prefixed bool
	length   uint8
}

// Name returns the mnemonic of the instruction.
func (i Instruction) Name() string {
	return i.name
}

func (i Instruction) String() string {
	return i.name
}

// Opcode returns the opcode the instruction was decoded from.
func (i Instruction) Opcode() uint8 {
	return i.opcode
}

// Prefixed returns true if the instruction belongs to the CB table.
func (i Instruction) Prefixed() bool {
	return i.prefixed
}

// SelfFetch returns true if the instruction fetches the next
// opcode itself.
func (i Instruction) SelfFetch() bool {
	return i.selfFetch
}

// Implemented returns false for the Unimplemented sentinel and for
// illegal opcodes.
func (i Instruction) Implemented() bool {
	return i.kind == implemented
}

// Illegal returns true if the opcode is one the hardware locks up on.
func (i Instruction) Illegal() bool {
	return i.kind == illegal
}

// Length returns the length of the instruction in bytes, including the
// opcode and for the CB table its prefix.
func (i Instruction) Length() uint8 {
	return i.length
}

// Unimplemented returns the sentinel for an opcode that has not been
// assigned an instruction.
func Unimplemented(opcode uint8, prefixed bool) Instruction {
	name := fmt.Sprintf("UNIMPLEMENTED %02X", opcode)
	if prefixed {
		name = fmt.Sprintf("UNIMPLEMENTED CB %02X", opcode)
	}
	return Instruction{
		name:      name,
		execute:   unimplementedOpcode,
		selfFetch: true,
		kind:      unimplemented,
		opcode:    opcode,
		prefixed:  prefixed,
		length:    1,
	}
}

// illegalInstruction returns the instruction for an opcode that
// locks up the CPU.
func illegalInstruction(opcode uint8) Instruction {
	return Instruction{
		name:      fmt.Sprintf("ILLEGAL %02X", opcode),
		execute:   illegalOpcode,
		selfFetch: true,
		kind:      illegal,
		opcode:    opcode,
		length:    1,
	}
}

var (
	// InstructionSet holds the unprefixed instructions.
	InstructionSet [256]Instruction
	// InstructionSetCB holds the CB prefixed instructions.
	InstructionSetCB [256]Instruction
)

func init() {
	for i := 0; i < 256; i++ {
		InstructionSet[i] = DecodeUnprefixed(uint8(i))
		InstructionSetCB[i] = DecodePrefixed(uint8(i))
	}
}

// instruction is a helper to build an instruction, deriving the
// length from the operands.
func instruction(name string, fn func(*CPU, *Instruction), dst, src Target) Instruction {
	return Instruction{
		name:    name,
		execute: fn,
		dst:     dst,
		src:     src,
		length:  1 + dst.Length() + src.Length(),
	}
}

// operands formats a mnemonic with its operands.
func operands(mnemonic string, ops ...string) string {
	for i, op := range ops {
		if i == 0 {
			mnemonic += " " + op
		} else {
			mnemonic += ", " + op
		}
	}
	return mnemonic
}
