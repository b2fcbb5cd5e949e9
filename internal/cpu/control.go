package cpu

// nop does nothing.
//
//	NOP
func nop(*CPU, *Instruction) {}

// di disables interrupts, cancelling a pending EI.
//
//	DI
func di(c *CPU, _ *Instruction) {
	c.IME = false
	c.eiPending = false
}

// ei enables interrupts after the following instruction.
//
//	EI
func ei(c *CPU, _ *Instruction) {
	c.eiPending = true
}

// halt suspends the CPU until an interrupt is pending. When one is
// already pending, the CPU doesn't halt, and fails to increment PC when
// fetching the next opcode (the halt bug). If IME was set by an EI just
// before, the interrupt is serviced at once and returns to the HALT.
//
//	HALT
func halt(c *CPU, _ *Instruction) {
	if c.irq.HasInterrupts() {
		c.log.Debugf("cpu: halt bug at %04X", c.PC-1)
		c.IR = c.readByte(c.PC)
		c.checkInterrupts()
		return
	}

	c.halted = true
	c.log.Debugf("cpu: halted at %04X", c.PC-1)
}

// stop consumes the following byte and then waits for an interrupt
// in the same way as halt.
//
//	STOP
func stop(c *CPU, i *Instruction) {
	c.get(i.src)
	c.halted = true
	c.log.Debugf("cpu: stopped at %04X", c.PC-2)
}

// prefix fetches the opcode following the CB prefix, and executes it
// from the prefixed instruction set.
//
//	PREFIX CB
func prefix(c *CPU, _ *Instruction) {
	in := &InstructionSetCB[c.readOperand()]
	c.traceInstruction(in)
	in.execute(c, in)
	if c.fault != nil {
		return
	}
	c.fetch()
}

// illegalOpcode locks up the CPU. Only a reset recovers it.
func illegalOpcode(c *CPU, i *Instruction) {
	c.lock(&IllegalOpcodeError{Opcode: i.opcode, PC: c.PC - 1})
}

// unimplementedOpcode reports the opcode without executing anything.
func unimplementedOpcode(c *CPU, i *Instruction) {
	c.fault = &UnimplementedOpcodeError{Opcode: i.opcode, Prefixed: i.prefixed}
}
