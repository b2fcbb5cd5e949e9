// Package cpu implements the SM83, the CPU core of the Game Boy.
//
// The CPU overlaps the fetch of an opcode with the execution of the
// previous instruction: when an instruction completes, the next opcode
// has already been loaded into IR and PC points past it. Interrupts are
// only checked at that boundary.
package cpu

import (
	"github.com/thelolagemann/sm83/internal/interrupts"
	"github.com/thelolagemann/sm83/internal/types"
	"github.com/thelolagemann/sm83/pkg/log"
	"github.com/thelolagemann/sm83/pkg/utils"
)

const (
	// ClockSpeed is the clock speed of the CPU in T-cycles per second.
	ClockSpeed = 4194304
)

// Memory is the bus the CPU reads and writes through. Each call
// transfers a single byte.
type Memory interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// Clock advances the rest of the system. Tick returns once one
// M-cycle worth of side effects has been applied.
type Clock interface {
	Tick()
}

// Parker is implemented by clocks that can run without the CPU taking
// part. When halted, the CPU parks itself for as long as wait blocks,
// rather than ticking through the idle cycles.
type Parker interface {
	Park(wait func())
}

// CPU represents the SM83 CPU. It is responsible for executing
// instructions, and servicing interrupts.
type CPU struct {
	// Registers contains the 8-bit registers, as well as the
	// 16-bit register pairs.
	Registers

	mem   Memory
	clock Clock
	irq   *interrupts.Bus

	halted       bool
	eiPending    bool
	fetchPending bool

	locked bool
	err    error
	// fault is set by an instruction that could not be executed
	fault error

	currentTick uint8
	cycles      uint64

	trace bool
	log   log.Logger
}

// Opt configures a CPU.
type Opt func(c *CPU)

// WithLogger sets the logger used by the CPU.
func WithLogger(l log.Logger) Opt {
	return func(c *CPU) {
		c.log = l
	}
}

// WithTrace logs every instruction executed, along with the
// registers before execution, at debug level.
func WithTrace() Opt {
	return func(c *CPU) {
		c.trace = true
	}
}

// WithRegisters sets the registers in the order A, F, B, C, D, E, H, L.
func WithRegisters(r [8]uint8) Opt {
	return func(c *CPU) {
		c.setRegisters(r)
	}
}

// WithModel sets the registers to the values left by the boot ROM of
// the given model, with execution starting at the cartridge entry point.
func WithModel(m types.Model) Opt {
	return func(c *CPU) {
		c.setRegisters(types.ModelRegisters[m])
		c.SP = 0xFFFE
		c.PC = 0x0100
		c.IR = 0x00
	}
}

// NewCPU returns a CPU reading and writing through mem, advancing
// the clock for every M-cycle, and servicing interrupts from irq.
//
// The CPU starts with IR holding a NOP, so that the first step
// fetches the opcode at PC.
func NewCPU(mem Memory, clock Clock, irq *interrupts.Bus, opts ...Opt) *CPU {
	c := &CPU{
		mem:   mem,
		clock: clock,
		irq:   irq,
		log:   log.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Step executes the instruction in IR, and fetches the next, returning
// the number of M-cycles that have elapsed. When halted, Step idles for
// a single M-cycle, or for as long as the clock lets the CPU park.
//
// Executing an illegal opcode locks the CPU: the error is returned by
// this and every following call.
func (c *CPU) Step() (uint8, error) {
	c.currentTick = 0
	if c.locked {
		return 0, c.err
	}

	switch {
	case c.fetchPending:
		// the opcode at the interrupt vector
		c.fetchPending = false
		c.IR = c.readOperand()
		return c.currentTick, nil
	case c.halted:
		if !c.irq.HasInterrupts() {
			if p, ok := c.clock.(Parker); ok {
				p.Park(c.irq.WaitForInterrupt)
			} else {
				c.tickCycle()
			}
			return c.currentTick, nil
		}

		c.halted = false
		c.log.Debugf("cpu: resumed by %v", c.irq.ActiveInterrupts())
		c.fetch()
		return c.currentTick, nil
	}

	in := &InstructionSet[c.IR]
	c.traceInstruction(in)
	in.execute(c, in)
	if c.fault != nil {
		err := c.fault
		c.fault = nil
		return c.currentTick, err
	}
	if !in.selfFetch {
		c.fetch()
	}

	return c.currentTick, nil
}

// Halted returns true if the CPU is waiting for an interrupt.
func (c *CPU) Halted() bool {
	return c.halted
}

// FetchPending returns true after an interrupt has been dispatched,
// while IR still holds the discarded opcode and the opcode at the
// vector is yet to be fetched.
func (c *CPU) FetchPending() bool {
	return c.fetchPending
}

// Locked returns true if the CPU has locked up.
func (c *CPU) Locked() bool {
	return c.locked
}

// Cycles returns the number of M-cycles elapsed since the CPU was created.
func (c *CPU) Cycles() uint64 {
	return c.cycles
}

// Jump discards the opcode in IR, and resumes execution at address.
func (c *CPU) Jump(address uint16) {
	c.PC = address
	c.halted = false
	c.fetchPending = true
}

// tickCycle advances the clock by a single M-cycle.
func (c *CPU) tickCycle() {
	c.clock.Tick()
	c.currentTick++
	c.cycles++
}

// readByte reads a byte from memory, taking one M-cycle.
func (c *CPU) readByte(address uint16) uint8 {
	c.tickCycle()
	return c.mem.Read(address)
}

// writeByte writes a byte to memory, taking one M-cycle.
func (c *CPU) writeByte(address uint16, value uint8) {
	c.tickCycle()
	c.mem.Write(address, value)
}

// readOperand reads the byte at PC and increments PC.
func (c *CPU) readOperand() uint8 {
	v := c.readByte(c.PC)
	c.PC++
	return v
}

// readOperand16 reads the little endian word at PC and increments PC
// by 2.
func (c *CPU) readOperand16() uint16 {
	lo := c.readOperand()
	hi := c.readOperand()
	return utils.BytesToUint16(hi, lo)
}

// fetch loads the next opcode into IR, then checks for interrupts.
func (c *CPU) fetch() {
	c.IR = c.readOperand()
	c.checkInterrupts()
}

// checkInterrupts services the highest priority interrupt, if IME
// was set before this boundary. A pending EI takes effect here, so
// that interrupts are serviced after the instruction following it.
func (c *CPU) checkInterrupts() {
	ime := c.IME
	if c.eiPending {
		c.eiPending = false
		c.IME = true
	}
	if ime && c.irq.HasInterrupts() {
		c.executeInterrupt()
	}
}

// executeInterrupt dispatches an interrupt, over 5 M-cycles:
//
//	M1 - the fetched opcode is discarded, PC is decremented
//	M2 - internal delay
//	M3 - PC high is pushed
//	M4 - PC low is pushed
//	M5 - the opcode at the vector is fetched (on the next Step)
//
// The interrupt is selected after the high byte has been pushed, so a
// push overwriting IE may cancel it, in which case PC is set to 0x0000.
func (c *CPU) executeInterrupt() {
	c.PC--
	c.tickCycle()

	c.set(IndSPDec, c.PC>>8)
	i, ok := c.irq.Next()
	c.set(IndSPDec, c.PC&0xFF)

	c.IME = false
	if ok {
		c.irq.Deactivate(i)
		c.PC = i.Vector()
		c.log.Debugf("cpu: servicing %s interrupt", i)
	} else {
		c.PC = 0x0000
		c.log.Debugf("cpu: interrupt cancelled")
	}
	c.fetchPending = true
}

// lock locks up the CPU with the given error.
func (c *CPU) lock(err error) {
	c.locked = true
	c.err = err
	c.fault = err
	c.log.Errorf("%v", err)
}

func (c *CPU) traceInstruction(in *Instruction) {
	if c.trace {
		c.log.Debugf("%04X %-16s %s", c.PC-1, in.name, c.Registers.String())
	}
}
