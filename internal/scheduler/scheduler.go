// Package scheduler provides a synchronous clock for the CPU core. Every
// Tick advances the machine by one M-cycle, and runs the handlers of any
// events that have come due before returning.
package scheduler

import (
	"fmt"
	"strings"
)

// Scheduler is a simple event scheduler that can be used to schedule events
// to be executed at a specific cycle.
//
// The scheduler is a linked list of events, sorted by the cycle at which
// they should be executed. When an event is scheduled, it is inserted into
// the list in the correct position, and when the scheduler is ticked, the
// next event is executed and removed from the list, if the event is scheduled
// for the current cycle.
type Scheduler struct {
	cycles uint64
	root   *Event

	eventHandlers [eventTypes]func()
	events        [eventTypes]*Event // only one event of each type can be scheduled at a time
}

// NewScheduler returns a Scheduler at cycle 0 with no events.
func NewScheduler() *Scheduler {
	s := &Scheduler{}

	// initialize the events with the number of event types
	// to avoid the cost of allocating a new event for each
	// scheduled event
	for i := range s.events {
		s.events[i] = &Event{eventType: EventType(i)}
	}

	return s
}

// Cycle returns the number of M-cycles elapsed.
func (s *Scheduler) Cycle() uint64 {
	return s.cycles
}

// RegisterEvent registers a function of the EventType to be called when
// the event is scheduled for execution. This is to avoid the cost of
// having to allocate a function for each event, which would frequently
// invoke the garbage collector, despite the functions always performing
// the same task.
func (s *Scheduler) RegisterEvent(eventType EventType, fn func()) {
	s.eventHandlers[eventType] = fn
}

// Tick advances the scheduler by one M-cycle, executing every event that
// has come due. It satisfies the CPU's Clock contract.
func (s *Scheduler) Tick() {
	s.TickN(1)
}

// TickN advances the scheduler by the given number of cycles. This will
// execute all scheduled events up to the current cycle, in the order
// they were due.
func (s *Scheduler) TickN(c uint64) {
	s.cycles += c

	for s.root != nil && s.root.cycle <= s.cycles {
		event := s.root
		s.root = event.next
		event.Reset()

		// the handler may reschedule the same event
		if fn := s.eventHandlers[event.eventType]; fn != nil {
			fn()
		}
	}
}

// ScheduleEvent schedules an event to be executed the given number of
// cycles from now. If the event is already scheduled, it is moved.
func (s *Scheduler) ScheduleEvent(eventType EventType, cycle uint64) {
	s.DescheduleEvent(eventType)

	this := s.events[eventType]
	this.cycle = s.cycles + cycle
	this.scheduled = true

	// events due on the same cycle run in the order they were scheduled
	var prev *Event
	event := s.root
	for event != nil && event.cycle <= this.cycle {
		prev = event
		event = event.next
	}

	this.next = event
	if prev == nil {
		s.root = this
	} else {
		prev.next = this
	}
}

// DescheduleEvent removes the event from the list, if it is scheduled.
func (s *Scheduler) DescheduleEvent(eventType EventType) {
	if !s.events[eventType].scheduled {
		return
	}

	var prev *Event
	for event := s.root; event != nil; event = event.next {
		if event.eventType == eventType {
			if prev == nil {
				s.root = event.next
			} else {
				prev.next = event.next
			}
			event.Reset()
			return
		}
		prev = event
	}
}

// Until returns the number of cycles until the event is due, and false
// if the event is not scheduled.
func (s *Scheduler) Until(eventType EventType) (uint64, bool) {
	e := s.events[eventType]
	if !e.scheduled {
		return 0, false
	}
	return e.cycle - s.cycles, true
}

// Skip advances the scheduler straight to the next event and executes
// it. This is useful when the CPU is halted, and nothing can happen
// until an event is due.
func (s *Scheduler) Skip() {
	if s.root == nil {
		return
	}
	s.TickN(s.root.cycle - s.cycles)
}

func (s *Scheduler) String() string {
	var b strings.Builder
	for event := s.root; event != nil; event = event.next {
		fmt.Fprintf(&b, "%d:%d->", event.eventType, event.cycle)
	}
	return b.String()
}
