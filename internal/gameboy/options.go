package gameboy

import (
	"github.com/thelolagemann/sm83/internal/interrupts"
	"github.com/thelolagemann/sm83/internal/types"
	"github.com/thelolagemann/sm83/pkg/log"
)

// Opt is a function that modifies a GameBoy
// instance.
type Opt func(gb *GameBoy)

// Debug stops Run when the CPU is about to execute LD B, B, the
// breakpoint used by the Mooneye test suite.
func Debug() Opt {
	return func(gb *GameBoy) {
		gb.debug = true
	}
}

// AsModel sets the model whose post boot register values the CPU
// starts with.
func AsModel(m types.Model) Opt {
	return func(gb *GameBoy) {
		gb.model = m
	}
}

// WithLogger sets the logger used by every component.
func WithLogger(log log.Logger) Opt {
	return func(gb *GameBoy) {
		gb.Logger = log
	}
}

// WithDump loads a raw memory dump at 0x0000.
func WithDump(b []byte) Opt {
	return func(gb *GameBoy) {
		gb.dump = b
	}
}

// WithEntry sets the address execution starts from, rather
// than the cartridge entry point 0x0100.
func WithEntry(pc uint16) Opt {
	return func(gb *GameBoy) {
		gb.entry = pc
	}
}

// WithPeriodicInterrupt requests the interrupt every given number
// of M-cycles, standing in for the peripheral that would raise it.
func WithPeriodicInterrupt(i interrupts.Interrupt, every uint64) Opt {
	return func(gb *GameBoy) {
		if every > 0 {
			gb.periodic = append(gb.periodic, periodic{interrupt: i, every: every})
		}
	}
}

// WithLockstep clocks the CPU and the periodic interrupt sources in
// their own goroutines, synchronised every M-cycle by a barrier,
// instead of from the scheduler.
func WithLockstep() Opt {
	return func(gb *GameBoy) {
		gb.lockstep = true
	}
}

// WithTrace logs every instruction executed at debug level.
func WithTrace() Opt {
	return func(gb *GameBoy) {
		gb.trace = true
	}
}
