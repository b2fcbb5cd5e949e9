package lockstep

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestBarrier_Lockstep(t *testing.T) {
	b := New()
	const parties, cycles = 3, 200

	var counts [parties]atomic.Int64
	var wg sync.WaitGroup
	errs := make(chan string, parties*cycles)

	for i := 0; i < parties; i++ {
		p := b.Join()
		wg.Add(1)
		go func(i int, p *Participant) {
			defer wg.Done()
			for c := 0; c < cycles; c++ {
				counts[i].Add(1)
				p.Tick()

				// after the rendezvous every participant has done this cycle's work
				for j := range counts {
					if counts[j].Load() < int64(c+1) {
						errs <- "participant proceeded before the others arrived"
					}
				}
			}
		}(i, p)
	}

	wg.Wait()
	close(errs)
	for e := range errs {
		t.Fatal(e)
	}
	if b.Cycle() != cycles {
		t.Errorf("expected %d cycles, got %d", cycles, b.Cycle())
	}
}

func TestParticipant_Park(t *testing.T) {
	b := New()
	cpu := b.Join()
	peripheral := b.Join()

	wake := make(chan struct{})
	parked := make(chan struct{})
	done := make(chan struct{})
	go func() {
		cpu.Tick()
		cpu.Park(func() {
			close(parked)
			<-wake
		})
		cpu.Tick()
		close(done)
	}()

	peripheral.Tick()
	<-parked

	// the peripheral must keep running alone while the CPU is parked
	finished := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			peripheral.Tick()
		}
		close(finished)
	}()
	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("peripheral blocked while the other participant was parked")
	}

	close(wake)
	for {
		b.mu.Lock()
		parties := b.parties
		b.mu.Unlock()
		if parties == 2 {
			break
		}
		time.Sleep(time.Millisecond)
	}
	go peripheral.Tick()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("parked participant did not rejoin")
	}
	if got := b.Cycle(); got != 12 {
		t.Errorf("expected 12 cycles, got %d", got)
	}
}

func TestParticipant_LeaveReleases(t *testing.T) {
	b := New()
	a := b.Join()
	c := b.Join()

	done := make(chan struct{})
	go func() {
		a.Tick()
		close(done)
	}()

	// wait until a has arrived, then leave without ticking
	for {
		b.mu.Lock()
		arrived := b.arrived
		b.mu.Unlock()
		if arrived == 1 {
			break
		}
		time.Sleep(time.Millisecond)
	}
	c.Leave()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("leaving did not release the waiting participant")
	}
}
