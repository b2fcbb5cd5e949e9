// Package lockstep provides a clock for components that run in their own
// goroutines. Every participant calls Tick once per M-cycle, and no
// participant proceeds to the next cycle until all of them have arrived.
package lockstep

import "sync"

// Barrier is a reusable cyclic barrier whose membership may change
// between cycles.
type Barrier struct {
	mu   sync.Mutex
	cond *sync.Cond

	parties int    // participants currently joined
	arrived int    // participants waiting in the current cycle
	cycle   uint64 // completed cycles
}

// New returns a Barrier with no participants.
func New() *Barrier {
	b := &Barrier{}
	b.cond = sync.NewCond(&b.mu)
	return b
}

// Cycle returns the number of completed cycles.
func (b *Barrier) Cycle() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.cycle
}

// Join adds a participant to the barrier. The participant takes part
// from the cycle in progress onwards.
func (b *Barrier) Join() *Participant {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.parties++
	return &Participant{b: b, joined: true}
}

// release completes the current cycle. b.mu must be held.
func (b *Barrier) release() {
	b.arrived = 0
	b.cycle++
	b.cond.Broadcast()
}

// Participant is a single member of a Barrier.
type Participant struct {
	b      *Barrier
	joined bool
}

// Tick blocks until every joined participant has called Tick for the
// current cycle.
func (p *Participant) Tick() {
	b := p.b
	b.mu.Lock()
	defer b.mu.Unlock()

	if !p.joined {
		panic("lockstep: Tick called by a participant that has left")
	}

	b.arrived++
	if b.arrived == b.parties {
		b.release()
		return
	}

	cycle := b.cycle
	for cycle == b.cycle {
		b.cond.Wait()
	}
}

// Leave removes the participant from the barrier, releasing the other
// participants if they were only waiting on it.
func (p *Participant) Leave() {
	b := p.b
	b.mu.Lock()
	defer b.mu.Unlock()

	if !p.joined {
		return
	}
	p.joined = false
	b.parties--
	if b.arrived > 0 && b.arrived == b.parties {
		b.release()
	}
}

// Rejoin adds a participant that has left back to the barrier.
func (p *Participant) Rejoin() {
	b := p.b
	b.mu.Lock()
	defer b.mu.Unlock()

	if p.joined {
		return
	}
	p.joined = true
	b.parties++
}

// Park leaves the barrier for the duration of wait, so that the other
// participants keep running while this one is blocked.
func (p *Participant) Park(wait func()) {
	p.Leave()
	defer p.Rejoin()

	wait()
}
