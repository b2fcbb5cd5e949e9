package scheduler

// EventType identifies a kind of event. Only one event of each
// type may be scheduled at a time.
type EventType int

const (
	// VBlankInterrupt requests the VBlank interrupt, standing in for
	// the PPU entering VBlank.
	VBlankInterrupt EventType = iota
	// LCDInterrupt requests the LCD STAT interrupt.
	LCDInterrupt
	// TimerInterrupt requests the timer interrupt, standing in for a
	// TIMA overflow.
	TimerInterrupt
	// SerialInterrupt requests the serial interrupt.
	SerialInterrupt
	// JoypadInterrupt requests the joypad interrupt.
	JoypadInterrupt
	// User is the first event type free for use by callers.
	User

	eventTypes = 32
)

// Event is a node in the scheduler's list of pending events.
type Event struct {
	cycle     uint64
	eventType EventType
	next      *Event
	scheduled bool
}

// Reset clears the event, so it may be scheduled again.
func (e *Event) Reset() {
	e.cycle = 0
	e.next = nil
	e.scheduled = false
}
