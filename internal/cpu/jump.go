package cpu

// jr adds the signed immediate to PC, if the condition holds.
//
//	JR r8
//	JR cc, r8
func jr(c *CPU, i *Instruction) {
	e := int8(c.get(i.src))
	if c.test(i.cond) {
		c.tickCycle()
		c.PC = uint16(int32(c.PC) + int32(e))
	}
	c.fetch()
}

// jp jumps to the immediate address, if the condition holds.
//
//	JP a16
//	JP cc, a16
func jp(c *CPU, i *Instruction) {
	address := c.get(i.src)
	if c.test(i.cond) {
		c.tickCycle()
		c.PC = address
	}
	c.fetch()
}

// jpHL jumps to the address held in HL, without any delay.
//
//	JP HL
func jpHL(c *CPU, i *Instruction) {
	c.PC = c.get(i.src)
	c.fetch()
}

// call pushes the address of the next instruction onto the stack and
// jumps to the immediate address, if the condition holds.
//
//	CALL a16
//	CALL cc, a16
func call(c *CPU, i *Instruction) {
	address := c.get(i.src)
	if c.test(i.cond) {
		c.tickCycle()
		c.pushWord(c.PC)
		c.PC = address
	}
	c.fetch()
}

// ret pops the return address off the stack, if the condition holds.
// Evaluating a condition takes an extra cycle.
//
//	RET
//	RET cc
func ret(c *CPU, i *Instruction) {
	if i.cond != Always {
		c.tickCycle()
		if !c.test(i.cond) {
			c.fetch()
			return
		}
	}
	c.PC = c.popWord()
	c.tickCycle()
	c.fetch()
}

// reti returns and enables interrupts, without the delay of EI.
//
//	RETI
func reti(c *CPU, _ *Instruction) {
	c.PC = c.popWord()
	c.tickCycle()
	c.IME = true
	c.fetch()
}

// rst pushes the address of the next instruction onto the stack and
// jumps to the fixed address i.n.
//
//	RST n
func rst(c *CPU, i *Instruction) {
	c.tickCycle()
	c.pushWord(c.PC)
	c.PC = uint16(i.n)
	c.fetch()
}
