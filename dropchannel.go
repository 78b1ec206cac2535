// dropchannel.go - the executor -> janitor drop ring (§3, §5).
//
// Grounded on the teacher's worker-lifecycle bookkeeping in
// coprocessor_manager.go (a done channel per worker, drained by a
// supervising goroutine) - reworked here from CPU-worker teardown into
// GC-by-proxy: the audio thread only ever pushes a retired value onto the
// ring, and a separate janitor goroutine is the only thing that ever lets
// Go's GC actually reclaim it.
//
// Copyright (c) 2026 The HexoDSP-core Authors
// License: GPLv3 or later

package hexodsp

import (
	"time"

	"github.com/hexodsp/hexodsp/ringbuffer"
)

// Droppable is anything the audio thread retires and the janitor releases.
// Go's GC does the actual freeing; routing the retired value through the
// ring just guarantees it is the janitor goroutine - not the audio
// thread - that drops the last reference while the program is stopped or
// moves slowly enough to allocate (§5: "may block/allocate freely").
type Droppable struct {
	Program *Program
	Nodes   []Node
	Atom    SAtom
}

// DropRing is the SPSC ring carrying retired Programs/Nodes/atoms from the
// executor thread to the janitor thread.
type DropRing struct{ r *ringbuffer.Ring[Droppable] }

func NewDropRing() *DropRing { return &DropRing{r: ringbuffer.New[Droppable](DropRingCapacity)} }

// Push enqueues d for later release. On overflow the drop is itself
// dropped on the floor by the ring (losing only the opportunity for prompt
// release, never correctness: Go's GC will still reclaim it once the last
// reference disappears, just without the janitor's explicit book-keeping).
func (d *DropRing) Push(v Droppable) bool { return d.r.Push(v) }

func (d *DropRing) pop() (Droppable, bool) { return d.r.Pop() }

// Janitor drains a DropRing on its own goroutine until Stop is called. It
// exists only to give the audio thread somewhere wait-free to hand off
// values it must stop referencing; it performs no work beyond letting Go's
// GC do its job; a future version could eagerly zero large slices here to
// reduce peak heap before the next GC cycle.
type Janitor struct {
	ring  *DropRing
	stop  chan struct{}
	done  chan struct{}
	drain func(Droppable)
}

// NewJanitor starts a goroutine that pops from ring until Stop is called.
// drain, if non-nil, is invoked for every popped value (tests use it to
// count releases); it must not block or allocate unboundedly since a slow
// drain backs up the ring just like a slow consumer of any SPSC channel.
func NewJanitor(ring *DropRing, drain func(Droppable)) *Janitor {
	j := &Janitor{ring: ring, stop: make(chan struct{}), done: make(chan struct{}), drain: drain}
	go j.run()
	return j
}

func (j *Janitor) run() {
	defer close(j.done)
	for {
		select {
		case <-j.stop:
			j.drainRemaining()
			return
		default:
		}
		v, ok := j.ring.pop()
		if !ok {
			// Grounded on terminal_host.go's EAGAIN backoff: the janitor
			// thread is free to block/sleep (§5), unlike the audio thread.
			time.Sleep(time.Millisecond)
			continue
		}
		if j.drain != nil {
			j.drain(v)
		}
	}
}

func (j *Janitor) drainRemaining() {
	for {
		v, ok := j.ring.pop()
		if !ok {
			return
		}
		if j.drain != nil {
			j.drain(v)
		}
	}
}

// Stop signals the janitor goroutine to drain whatever remains and exit,
// then blocks until it has.
func (j *Janitor) Stop() {
	close(j.stop)
	<-j.done
}
