package cpu

// ld loads the source operand into the destination operand.
//
//	LD n, nn
func ld(c *CPU, i *Instruction) {
	c.set(i.dst, c.get(i.src))
}

// ldDelayed is ld followed by an internal cycle, for the 16-bit loads
// that go through the ALU.
//
//	LD SP, HL
//	LD HL, SP+r8
func ldDelayed(c *CPU, i *Instruction) {
	c.set(i.dst, c.get(i.src))
	c.tickCycle()
}

// ldImm16SP stores SP at the immediate address, low byte first.
//
//	LD (a16), SP
func ldImm16SP(c *CPU, _ *Instruction) {
	address := c.readOperand16()
	c.writeByte(address, uint8(c.SP))
	c.writeByte(address+1, uint8(c.SP>>8))
}

// push pushes the source register pair onto the stack.
//
//	PUSH nn
func push(c *CPU, i *Instruction) {
	v := c.get(i.src)
	c.tickCycle()
	c.pushWord(v)
}

// pop pops two bytes off the stack into the destination register pair.
//
//	POP nn
func pop(c *CPU, i *Instruction) {
	c.set(i.dst, c.popWord())
}

// pushWord writes v to the stack, high byte first.
func (c *CPU) pushWord(v uint16) {
	c.set(IndSPDec, v>>8)
	c.set(IndSPDec, v&0xFF)
}

// popWord reads a word from the stack, low byte first.
func (c *CPU) popWord() uint16 {
	lo := c.get(IndSPInc)
	hi := c.get(IndSPInc)
	return hi<<8 | lo
}
