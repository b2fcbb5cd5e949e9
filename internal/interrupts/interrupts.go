// Package interrupts resolves the interrupt lines requested through the
// memory mapped IE and IF registers.
//
// When an interrupt is requested, the corresponding bit in the IF
// register is set. When an interrupt is enabled, the corresponding bit
// in the IE register is set. When an interrupt is requested and enabled,
// and the CPU's IME is set, the CPU will jump to the interrupt's service
// address, and the corresponding bit in the IF register will be cleared.
package interrupts

import (
	"context"
	"fmt"
	"sync"

	"github.com/thelolagemann/sm83/internal/types"
)

// Interrupt is one of the five interrupt lines.
type Interrupt uint8

const (
	// VBlank is requested every time the PPU enters VBlank mode.
	VBlank Interrupt = iota
	// LCDStat is requested by the LCD STAT register when certain
	// conditions are met.
	LCDStat
	// Timer is requested when the timer overflows.
	Timer
	// Serial is requested when a serial transfer is completed.
	Serial
	// Joypad is requested when any of the selected joypad lines
	// go from high to low.
	Joypad
)

// Priority is the order in which pending interrupts are serviced,
// highest priority first.
var Priority = [5]Interrupt{VBlank, LCDStat, Timer, Serial, Joypad}

var names = [5]string{"VBlank", "LCD", "Timer", "Serial", "Joypad"}

// Flag returns the bit of the interrupt in the IE and IF registers.
func (i Interrupt) Flag() uint8 {
	return 1 << i
}

// Vector returns the address of the interrupt's service routine.
func (i Interrupt) Vector() uint16 {
	return 0x0040 + uint16(i)*8
}

func (i Interrupt) String() string {
	if int(i) < len(names) {
		return names[i]
	}
	return fmt.Sprintf("Interrupt(%d)", uint8(i))
}

// Memory is the subset of the memory bus required by the interrupt
// Bus: single byte access, and notification of writes.
type Memory interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
	OnWrite(address uint16, fn func(address uint16, value uint8))
}

// Mapper is implemented by memories that allow a hardware register to
// be backed by custom read/write behaviour.
type Mapper interface {
	Map(address uint16, a types.Address)
}

// Bus wraps the IE and IF registers. The active set of interrupts is
// recomputed from memory on every query; the mutex and condition only
// exist to park a halted CPU until either register is written.
type Bus struct {
	mem Memory

	// flag backs the IF register when mem supports Map, it is only
	// accessed from the mapped read/write functions
	flag uint8

	mu   sync.Mutex
	cond *sync.Cond
}

// NewBus returns a Bus reading the IE and IF registers from mem.
func NewBus(mem Memory) *Bus {
	b := &Bus{mem: mem}
	b.cond = sync.NewCond(&b.mu)

	// only the lower 5 bits of IF are wired, the upper 3 bits always read 1
	if m, ok := mem.(Mapper); ok {
		m.Map(types.IF, types.Address{
			Read: func(uint16) uint8 {
				return b.flag | 0xE0
			},
			Write: func(_ uint16, v uint8) {
				b.flag = v & 0x1F
			},
		})
	}

	mem.OnWrite(types.IE, b.notify)
	mem.OnWrite(types.IF, b.notify)

	return b
}

// notify wakes any goroutine blocked in WaitForInterrupt, so that it
// may recompute the active interrupts.
func (b *Bus) notify(uint16, uint8) {
	b.mu.Lock()
	b.cond.Broadcast()
	b.mu.Unlock()
}

// active returns the interrupts that are both requested and enabled.
func (b *Bus) active() uint8 {
	return b.mem.Read(types.IE) & b.mem.Read(types.IF) & 0x1F
}

// HasInterrupts returns true if there are any interrupts
// that are requested and enabled.
func (b *Bus) HasInterrupts() bool {
	return b.active() != 0
}

// ActiveInterrupts returns the requested and enabled interrupts,
// ordered by Priority.
func (b *Bus) ActiveInterrupts() []Interrupt {
	active := b.active()
	if active == 0 {
		return nil
	}

	var pending []Interrupt
	for _, i := range Priority {
		if active&i.Flag() != 0 {
			pending = append(pending, i)
		}
	}
	return pending
}

// Next returns the highest priority active interrupt, or false if
// there are none.
func (b *Bus) Next() (Interrupt, bool) {
	active := b.active()
	for _, i := range Priority {
		if active&i.Flag() != 0 {
			return i, true
		}
	}
	return 0, false
}

// Modifier is implemented by memories that can read, modify and write
// back an address as a single access.
type Modifier interface {
	Modify(address uint16, fn func(value uint8) uint8)
}

// Request requests the specified interrupt, by setting the
// corresponding bit in the IF register.
func (b *Bus) Request(i Interrupt) {
	b.modifyIF(func(v uint8) uint8 { return v | i.Flag() })
}

// Deactivate clears the request for the specified interrupt in the
// IF register, leaving the other lines untouched.
func (b *Bus) Deactivate(i Interrupt) {
	b.modifyIF(func(v uint8) uint8 { return v &^ i.Flag() })
}

// modifyIF updates IF in a single access when the memory allows it, so
// that a peripheral requesting an interrupt from another goroutine
// can't be lost to the CPU deactivating a different one.
func (b *Bus) modifyIF(fn func(uint8) uint8) {
	if m, ok := b.mem.(Modifier); ok {
		m.Modify(types.IF, fn)
		return
	}
	b.mem.Write(types.IF, fn(b.mem.Read(types.IF)))
}

// WaitForInterrupt blocks until at least one interrupt is requested and
// enabled. It returns immediately if one already is.
func (b *Bus) WaitForInterrupt() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for !b.HasInterrupts() {
		b.cond.Wait()
	}
}

// WaitForInterruptContext is WaitForInterrupt, but gives up when ctx
// is done, returning the context's error.
func (b *Bus) WaitForInterruptContext(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() {
		b.mu.Lock()
		b.cond.Broadcast()
		b.mu.Unlock()
	})
	defer stop()

	b.mu.Lock()
	defer b.mu.Unlock()

	for !b.HasInterrupts() {
		if err := ctx.Err(); err != nil {
			return err
		}
		b.cond.Wait()
	}
	return nil
}
