// Package mmu provides a flat 64kB memory for the CPU core. The MMU is
// unaware of the other components: peripherals attach custom behaviour
// to hardware registers with Map, and observe writes with OnWrite.
package mmu

import (
	"fmt"
	"sync"

	"github.com/thelolagemann/sm83/internal/types"
	"github.com/thelolagemann/sm83/pkg/log"
)

// WriteListener is notified after a write to the address it was
// registered for has been stored.
type WriteListener func(address uint16, value uint8)

// MMU is a byte addressable 64kB memory. Reads and writes may come
// from several goroutines when the components are clocked in lockstep,
// so the storage is guarded by a mutex. Listeners are invoked after the
// mutex has been released, so they are free to read the MMU again.
type MMU struct {
	mu sync.Mutex

	raw      [65536]uint8
	mapped   [65536]*types.Address
	handlers map[uint16][]WriteListener

	Log log.Logger
}

// NewMMU returns a new MMU with all memory cleared.
func NewMMU() *MMU {
	return &MMU{
		handlers: make(map[uint16][]WriteListener),
		Log:      log.NewNullLogger(),
	}
}

// Read returns the value at the given address.
func (m *MMU) Read(address uint16) uint8 {
	m.mu.Lock()
	defer m.mu.Unlock()

	if a := m.mapped[address]; a != nil && a.Read != nil {
		return a.Read(address)
	}
	return m.raw[address]
}

// Write stores value at the given address, and then notifies any
// listeners registered for the address.
func (m *MMU) Write(address uint16, value uint8) {
	m.mu.Lock()
	if a := m.mapped[address]; a != nil && a.Write != nil {
		a.Write(address, value)
	} else {
		m.raw[address] = value
	}
	listeners := m.handlers[address]
	m.mu.Unlock()

	for _, l := range listeners {
		l(address, value)
	}
}

// Modify replaces the value at the given address with fn applied to
// it, without another access interleaving between the read and the
// write. Mapped behaviour and listeners are honoured as for Write.
func (m *MMU) Modify(address uint16, fn func(value uint8) uint8) {
	m.mu.Lock()
	a := m.mapped[address]
	var value uint8
	if a != nil && a.Read != nil {
		value = fn(a.Read(address))
	} else {
		value = fn(m.raw[address])
	}
	if a != nil && a.Write != nil {
		a.Write(address, value)
	} else {
		m.raw[address] = value
	}
	listeners := m.handlers[address]
	m.mu.Unlock()

	for _, l := range listeners {
		l(address, value)
	}
}

// OnWrite registers fn to be called after every write to address.
func (m *MMU) OnWrite(address uint16, fn func(address uint16, value uint8)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.handlers[address] = append(m.handlers[address], fn)
}

// Map attaches custom read/write behaviour to the given address. A nil
// Read or Write falls back to plain storage.
func (m *MMU) Map(address uint16, a types.Address) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.mapped[address] != nil {
		panic(fmt.Sprintf("address %04X has already been mapped", address))
	}
	m.mapped[address] = &a
}

// Get returns the raw value at the given address, ignoring any
// mapped behaviour.
func (m *MMU) Get(address uint16) uint8 {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.raw[address]
}

// Set sets the raw value at the given address. This function ignores
// mapped behaviour and does not notify listeners.
func (m *MMU) Set(address uint16, value uint8) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.raw[address] = value
}

// Load copies data into memory starting at offset. Mapped addresses
// and listeners are honoured, as if the CPU had written each byte.
func (m *MMU) Load(offset uint16, data []byte) error {
	if int(offset)+len(data) > len(m.raw) {
		return fmt.Errorf("mmu: %d bytes at %04X overflow the address space", len(data), offset)
	}
	for i, b := range data {
		m.Write(offset+uint16(i), b)
	}
	m.Log.Debugf("loaded %d bytes at %04X", len(data), offset)
	return nil
}

// Dump returns a copy of the whole address space, as seen by Read.
func (m *MMU) Dump() []byte {
	dump := make([]byte, len(m.raw))
	for i := range dump {
		dump[i] = m.Read(uint16(i))
	}
	return dump
}
