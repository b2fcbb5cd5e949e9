package cpu

import (
	"fmt"

	"github.com/thelolagemann/sm83/internal/types"
)

// Target is an operand addressing mode. A Target holds no state, it
// is resolved against the registers and the memory each time it is
// accessed with get or set.
type Target uint8

const (
	// None is used for instructions without an operand.
	None Target = iota

	RegA
	RegB
	RegC
	RegD
	RegE
	RegH
	RegL

	PairAF
	PairBC
	PairDE
	PairHL
	PairSP

	IndBC    // (BC)
	IndDE    // (DE)
	IndHL    // (HL)
	IndHLInc // (HL+), post-increment
	IndHLDec // (HL-), post-decrement
	IndSPInc // (SP+), post-increment, used to pop
	IndSPDec // (-SP), pre-decrement, used to push

	HighC    // (0xFF00+C)
	HighImm8 // (0xFF00+d8)

	IndImm16 // (a16)

	Imm8
	Imm16

	// SPOffset is SP plus a signed immediate, it may only be read.
	SPOffset
)

var targetNames = [...]string{
	None:     "",
	RegA:     "A",
	RegB:     "B",
	RegC:     "C",
	RegD:     "D",
	RegE:     "E",
	RegH:     "H",
	RegL:     "L",
	PairAF:   "AF",
	PairBC:   "BC",
	PairDE:   "DE",
	PairHL:   "HL",
	PairSP:   "SP",
	IndBC:    "(BC)",
	IndDE:    "(DE)",
	IndHL:    "(HL)",
	IndHLInc: "(HL+)",
	IndHLDec: "(HL-)",
	IndSPInc: "(SP+)",
	IndSPDec: "(-SP)",
	HighC:    "(C)",
	HighImm8: "(a8)",
	IndImm16: "(a16)",
	Imm8:     "d8",
	Imm16:    "d16",
	SPOffset: "SP+r8",
}

func (t Target) String() string {
	if int(t) < len(targetNames) {
		return targetNames[t]
	}
	return fmt.Sprintf("Target(%d)", uint8(t))
}

// Length returns the number of immediate bytes the target consumes.
func (t Target) Length() uint8 {
	switch t {
	case Imm8, HighImm8, SPOffset:
		return 1
	case Imm16, IndImm16:
		return 2
	}
	return 0
}

// indirect reports whether resolving the target accesses memory
// through a register.
func (t Target) indirect() bool {
	return t >= IndBC && t <= IndImm16
}

// address resolves the memory address of an indirect target, applying
// any increment or decrement of the pointer register.
func (c *CPU) address(t Target) uint16 {
	switch t {
	case IndBC:
		return c.BC()
	case IndDE:
		return c.DE()
	case IndHL:
		return c.HL()
	case IndHLInc:
		hl := c.HL()
		c.SetHL(hl + 1)
		return hl
	case IndHLDec:
		hl := c.HL()
		c.SetHL(hl - 1)
		return hl
	case IndSPInc:
		c.SP++
		return c.SP - 1
	case IndSPDec:
		c.SP--
		return c.SP
	case HighC:
		return types.HighPage | uint16(c.C)
	case HighImm8:
		return types.HighPage | uint16(c.readOperand())
	case IndImm16:
		return c.readOperand16()
	}
	panic(fmt.Sprintf("cpu: %s is not an indirect target", t))
}

// get returns the value of the target. Registers are free, every
// memory access and every immediate byte costs one M-cycle.
func (c *CPU) get(t Target) uint16 {
	switch t {
	case RegA:
		return uint16(c.A)
	case RegB:
		return uint16(c.B)
	case RegC:
		return uint16(c.C)
	case RegD:
		return uint16(c.D)
	case RegE:
		return uint16(c.E)
	case RegH:
		return uint16(c.H)
	case RegL:
		return uint16(c.L)
	case PairAF:
		return c.AF()
	case PairBC:
		return c.BC()
	case PairDE:
		return c.DE()
	case PairHL:
		return c.HL()
	case PairSP:
		return c.SP
	case Imm8:
		return uint16(c.readOperand())
	case Imm16:
		return c.readOperand16()
	case SPOffset:
		v, fc := addSigned(c.SP, c.readOperand())
		c.applyFlags(fc)
		return v
	}
	if t.indirect() {
		return uint16(c.readByte(c.address(t)))
	}
	panic(fmt.Sprintf("cpu: cannot read from %s", t))
}

// set sets the value of the target. 8-bit targets take the low byte
// of v.
func (c *CPU) set(t Target, v uint16) {
	switch t {
	case RegA:
		c.A = uint8(v)
	case RegB:
		c.B = uint8(v)
	case RegC:
		c.C = uint8(v)
	case RegD:
		c.D = uint8(v)
	case RegE:
		c.E = uint8(v)
	case RegH:
		c.H = uint8(v)
	case RegL:
		c.L = uint8(v)
	case PairAF:
		c.SetAF(v)
	case PairBC:
		c.SetBC(v)
	case PairDE:
		c.SetDE(v)
	case PairHL:
		c.SetHL(v)
	case PairSP:
		c.SP = v
	default:
		if !t.indirect() {
			panic(fmt.Sprintf("cpu: cannot write to %s", t))
		}
		c.writeByte(c.address(t), uint8(v))
	}
}
