// Package gameboy wires the CPU to a memory, an interrupt bus and a
// clock, and runs it for a bounded number of cycles.
package gameboy

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/thelolagemann/sm83/internal/cpu"
	"github.com/thelolagemann/sm83/internal/interrupts"
	"github.com/thelolagemann/sm83/internal/lockstep"
	"github.com/thelolagemann/sm83/internal/mmu"
	"github.com/thelolagemann/sm83/internal/scheduler"
	"github.com/thelolagemann/sm83/internal/types"
	"github.com/thelolagemann/sm83/pkg/log"
)

// ErrCycleLimit is returned when Run reaches its cycle limit
// before the stop condition.
var ErrCycleLimit = errors.New("gameboy: cycle limit reached")

// breakpoint is the opcode of LD B, B.
const breakpoint = 0x40

type periodic struct {
	interrupt interrupts.Interrupt
	every     uint64
}

// GameBoy represents a Game Boy, reduced to the components the CPU
// needs to run: memory, interrupts and a clock.
type GameBoy struct {
	CPU        *cpu.CPU
	MMU        *mmu.MMU
	Interrupts *interrupts.Bus

	log.Logger

	s       *scheduler.Scheduler
	barrier *lockstep.Barrier
	clock   *parkingClock

	dump     []byte
	entry    uint16
	model    types.Model
	periodic []periodic
	lockstep bool
	trace    bool
	debug    bool
}

// NewGameBoy returns a new GameBoy, with the CPU in the state
// left by the boot ROM.
func NewGameBoy(opts ...Opt) (*GameBoy, error) {
	g := &GameBoy{
		Logger: log.NewNullLogger(),
		entry:  0x0100,
		model:  types.DMGABC,
	}
	for _, opt := range opts {
		opt(g)
	}

	g.MMU = mmu.NewMMU()
	g.MMU.Log = g.Logger
	g.Interrupts = interrupts.NewBus(g.MMU)

	if g.dump != nil {
		if err := g.MMU.Load(0x0000, g.dump); err != nil {
			return nil, fmt.Errorf("gameboy: loading dump: %w", err)
		}
	}
	g.MMU.Write(types.IF, types.ModelIF)

	var clock cpu.Clock
	if g.lockstep {
		g.barrier = lockstep.New()
		g.clock = &parkingClock{Participant: g.barrier.Join(), irq: g.Interrupts}
		clock = g.clock
	} else {
		g.s = scheduler.NewScheduler()
		for _, p := range g.periodic {
			g.schedulePeriodic(scheduler.VBlankInterrupt+scheduler.EventType(p.interrupt), p)
		}
		clock = g.s
	}

	cpuOpts := []cpu.Opt{cpu.WithLogger(g.Logger), cpu.WithModel(g.model)}
	if g.trace {
		cpuOpts = append(cpuOpts, cpu.WithTrace())
	}
	g.CPU = cpu.NewCPU(g.MMU, clock, g.Interrupts, cpuOpts...)
	g.CPU.PC = g.entry

	return g, nil
}

// schedulePeriodic registers an event requesting the interrupt,
// which reschedules itself every time it fires.
func (g *GameBoy) schedulePeriodic(event scheduler.EventType, p periodic) {
	g.s.RegisterEvent(event, func() {
		g.Interrupts.Request(p.interrupt)
		g.s.ScheduleEvent(event, p.every)
	})
	g.s.ScheduleEvent(event, p.every)
}

// Run steps the CPU until it reaches the breakpoint (when debugging),
// or until maxCycles M-cycles have elapsed, in which case ErrCycleLimit
// is returned.
func (g *GameBoy) Run(maxCycles uint64) error {
	return g.run(maxCycles, func() bool {
		return g.debug && !g.CPU.FetchPending() && g.CPU.IR == breakpoint
	})
}

// RunUntil steps the CPU until it is about to execute the
// instruction at pc.
func (g *GameBoy) RunUntil(pc uint16, maxCycles uint64) error {
	return g.run(maxCycles, func() bool {
		return g.CPU.PC == pc+1 && !g.CPU.Halted() && !g.CPU.FetchPending()
	})
}

func (g *GameBoy) run(maxCycles uint64, stop func() bool) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	limit := g.CPU.Cycles() + maxCycles
	if g.lockstep {
		defer g.startPeripherals(ctx, cancel, maxCycles)()
	}

	for {
		if stop() {
			g.Infof("gameboy: stopped at %04X after %d cycles", g.CPU.PC-1, g.CPU.Cycles())
			return nil
		}
		if g.CPU.Cycles() >= limit || ctx.Err() != nil {
			return ErrCycleLimit
		}
		if _, err := g.CPU.Step(); err != nil {
			return fmt.Errorf("gameboy: %w", err)
		}
	}
}

// startPeripherals starts a goroutine ticking alongside the CPU, which
// requests the periodic interrupts, and cancels ctx after maxCycles.
// The returned function stops it.
func (g *GameBoy) startPeripherals(ctx context.Context, cancel context.CancelFunc, maxCycles uint64) func() {
	g.clock.ctx = ctx
	p := g.barrier.Join()
	done := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer p.Leave()

		for cycle := uint64(1); ; cycle++ {
			select {
			case <-done:
				return
			default:
			}

			p.Tick()
			for _, i := range g.periodic {
				if cycle%i.every == 0 {
					g.Interrupts.Request(i.interrupt)
				}
			}
			if cycle == maxCycles {
				cancel()
			}
		}
	}()

	return func() {
		close(done)
		// the CPU leaves so that a peripheral waiting for
		// it in the barrier is released
		g.clock.Leave()
		wg.Wait()
		g.clock.Rejoin()
	}
}

// Dump returns the contents of memory.
func (g *GameBoy) Dump() []byte {
	return g.MMU.Dump()
}

// parkingClock is the CPU's participant in the barrier. While
// halted, the CPU waits for an interrupt outside of the barrier,
// giving up when the run is cancelled.
type parkingClock struct {
	*lockstep.Participant
	irq *interrupts.Bus
	ctx context.Context
}

func (p *parkingClock) Park(func()) {
	p.Participant.Park(func() {
		_ = p.irq.WaitForInterruptContext(p.ctx)
	})
}
