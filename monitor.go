// monitor.go - MonitorProcessor: the six-tap monitor pipeline (§4.6, §5).
//
// Copyright (c) 2026 The HexoDSP-core Authors
// License: GPLv3 or later

package hexodsp

import (
	"sync"

	"github.com/hexodsp/hexodsp/ringbuffer"
)

// minMaxWindowLen is the fixed number of (min, max) pairs kept per monitor
// slot, matching §4.6's "fixed-length ring of (min, max) pairs over
// time-aligned windows".
const minMaxWindowLen = 128

// MinMaxMonitorSamples is one monitor slot's windowed min/max history.
type MinMaxMonitorSamples struct {
	Min [minMaxWindowLen]float32
	Max [minMaxWindowLen]float32
	pos int
}

// MonitorProcessor runs on its own goroutine (the "monitor thread" of §5):
// it drains per-block tap samples pushed by the executor through a
// lock-free SPSC ring, accumulates them into a coarser per-window min/max,
// and exposes the result to the frontend behind a mutex - cheap since
// monitor refreshes happen at UI rate, far below audio rate.
type MonitorProcessor struct {
	ring *ringbuffer.Ring[[6]float32]

	samplesPerWindow int
	count            int
	curMin, curMax   [6]float32

	mu      sync.Mutex
	results [6]MinMaxMonitorSamples

	stop chan struct{}
	done chan struct{}
}

// NewMonitorProcessor starts the monitor goroutine with a default
// window of 64 blocks, roughly matching a typical UI refresh relative to a
// 128-frame block at 44.1kHz (~186ms).
func NewMonitorProcessor() *MonitorProcessor {
	m := &MonitorProcessor{
		ring:             ringbuffer.New[[6]float32](MonitorRingCapacity),
		samplesPerWindow: 64,
		stop:             make(chan struct{}),
		done:             make(chan struct{}),
	}
	m.resetAccum()
	go m.run()
	return m
}

func (m *MonitorProcessor) resetAccum() {
	for i := range m.curMin {
		m.curMin[i] = 0
		m.curMax[i] = 0
	}
	m.count = 0
}

// push is the executor's wait-free producer call, once per block.
func (m *MonitorProcessor) push(sample [6]float32) bool { return m.ring.Push(sample) }

func (m *MonitorProcessor) run() {
	defer close(m.done)
	for {
		select {
		case <-m.stop:
			return
		default:
		}
		sample, ok := m.ring.Pop()
		if !ok {
			continue
		}
		m.accumulate(sample)
	}
}

func (m *MonitorProcessor) accumulate(sample [6]float32) {
	if m.count == 0 {
		m.curMin = sample
		m.curMax = sample
	} else {
		for i, v := range sample {
			if v < m.curMin[i] {
				m.curMin[i] = v
			}
			if v > m.curMax[i] {
				m.curMax[i] = v
			}
		}
	}
	m.count++
	if m.count < m.samplesPerWindow {
		return
	}

	m.mu.Lock()
	for i := range m.results {
		r := &m.results[i]
		r.Min[r.pos] = m.curMin[i]
		r.Max[r.pos] = m.curMax[i]
		r.pos = (r.pos + 1) % minMaxWindowLen
	}
	m.mu.Unlock()
	m.resetAccum()
}

// Samples returns a copy of one slot's current windowed min/max history.
func (m *MonitorProcessor) Samples(slot int) MinMaxMonitorSamples {
	m.mu.Lock()
	defer m.mu.Unlock()
	if slot < 0 || slot >= len(m.results) {
		return MinMaxMonitorSamples{}
	}
	return m.results[slot]
}

// Stop halts the monitor goroutine.
func (m *MonitorProcessor) Stop() {
	close(m.stop)
	<-m.done
}
