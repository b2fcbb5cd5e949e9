package cpu

import "github.com/thelolagemann/sm83/pkg/utils"

// aluCP is the index of CP in aluOps, the only operation whose
// result is discarded.
const aluCP = 7

// aluOps are the ALU operations on the accumulator, indexed by the y
// bitfield of the opcode.
var aluOps = [8]func(a, b uint8, carry bool) ArithmeticResult{
	func(a, b uint8, _ bool) ArithmeticResult { return add(a, b) },
	adc,
	func(a, b uint8, _ bool) ArithmeticResult { return sub(a, b) },
	sbc,
	func(a, b uint8, _ bool) ArithmeticResult { return and(a, b) },
	func(a, b uint8, _ bool) ArithmeticResult { return xor(a, b) },
	func(a, b uint8, _ bool) ArithmeticResult { return or(a, b) },
	func(a, b uint8, _ bool) ArithmeticResult { return sub(a, b) },
}

// rotations are the rotate, shift and swap operations of the CB table,
// indexed by the y bitfield of the opcode. The first four are shared
// with the accumulator rotates.
var rotations = [8]func(n uint8, carry bool) ArithmeticResult{
	func(n uint8, _ bool) ArithmeticResult { return rlc(n) },
	func(n uint8, _ bool) ArithmeticResult { return rrc(n) },
	rl,
	rr,
	func(n uint8, _ bool) ArithmeticResult { return sla(n) },
	func(n uint8, _ bool) ArithmeticResult { return sra(n) },
	func(n uint8, _ bool) ArithmeticResult { return swap(n) },
	func(n uint8, _ bool) ArithmeticResult { return srl(n) },
}

// alu performs the ALU operation i.n on the accumulator and the source.
//
//	ADD A, n
//	ADC A, n
//	SUB n
//	SBC A, n
//	AND n
//	XOR n
//	OR n
//	CP n
func alu(c *CPU, i *Instruction) {
	r := aluOps[i.n](c.A, uint8(c.get(i.src)), c.isFlagSet(FlagCarry))
	if i.n != aluCP {
		c.A = r.Value
	}
	c.applyFlags(r.Flags)
}

// inc8 increments the destination.
//
//	INC n
func inc8(c *CPU, i *Instruction) {
	r := inc(uint8(c.get(i.dst)))
	c.set(i.dst, uint16(r.Value))
	c.applyFlags(r.Flags)
}

// dec8 decrements the destination.
//
//	DEC n
func dec8(c *CPU, i *Instruction) {
	r := dec(uint8(c.get(i.dst)))
	c.set(i.dst, uint16(r.Value))
	c.applyFlags(r.Flags)
}

// inc16 increments the destination register pair. No flags are affected.
//
//	INC nn
func inc16(c *CPU, i *Instruction) {
	c.set(i.dst, c.get(i.dst)+1)
	c.tickCycle()
}

// dec16 decrements the destination register pair. No flags are affected.
//
//	DEC nn
func dec16(c *CPU, i *Instruction) {
	c.set(i.dst, c.get(i.dst)-1)
	c.tickCycle()
}

// addHL adds the source register pair to HL.
//
//	ADD HL, nn
func addHL(c *CPU, i *Instruction) {
	v, fc := add16(c.HL(), c.get(i.src))
	c.SetHL(v)
	c.applyFlags(fc)
	c.tickCycle()
}

// addSP adds the signed immediate to SP.
//
//	ADD SP, r8
func addSP(c *CPU, i *Instruction) {
	v := c.get(i.src)
	c.tickCycle()
	c.tickCycle()
	c.SP = v
}

// rotateA rotates the accumulator.
//
//	RLCA
//	RRCA
//	RLA
//	RRA
func rotateA(c *CPU, i *Instruction) {
	r := accumulator(rotations[i.n](c.A, c.isFlagSet(FlagCarry)))
	c.A = r.Value
	c.applyFlags(r.Flags)
}

// daaA decimal adjusts the accumulator.
//
//	DAA
func daaA(c *CPU, _ *Instruction) {
	r := daa(c.A, c.isFlagSet(FlagSubtract), c.isFlagSet(FlagHalfCarry), c.isFlagSet(FlagCarry))
	c.A = r.Value
	c.applyFlags(r.Flags)
}

// cplA complements the accumulator.
//
//	CPL
func cplA(c *CPU, _ *Instruction) {
	r := cpl(c.A)
	c.A = r.Value
	c.applyFlags(r.Flags)
}

// scfOp sets the carry flag.
//
//	SCF
func scfOp(c *CPU, _ *Instruction) {
	c.applyFlags(scf())
}

// ccfOp complements the carry flag.
//
//	CCF
func ccfOp(c *CPU, _ *Instruction) {
	c.applyFlags(ccf(c.isFlagSet(FlagCarry)))
}

// rotate performs the rotation, shift or swap i.n on the destination.
//
//	RLC n, RRC n, RL n, RR n
//	SLA n, SRA n, SWAP n, SRL n
func rotate(c *CPU, i *Instruction) {
	r := rotations[i.n](uint8(c.get(i.dst)), c.isFlagSet(FlagCarry))
	c.set(i.dst, uint16(r.Value))
	c.applyFlags(r.Flags)
}

// bit tests bit i.n of the destination.
//
//	BIT b, n
func bit(c *CPU, i *Instruction) {
	c.applyFlags(testBit(i.n, uint8(c.get(i.dst))).Flags)
}

// res resets bit i.n of the destination.
//
//	RES b, n
func res(c *CPU, i *Instruction) {
	c.set(i.dst, uint16(utils.ClearBit(uint8(c.get(i.dst)), i.n)))
}

// set sets bit i.n of the destination.
//
//	SET b, n
func set(c *CPU, i *Instruction) {
	c.set(i.dst, uint16(utils.SetBit(uint8(c.get(i.dst)), i.n)))
}
