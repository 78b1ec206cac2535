// smoother.go - per-input linear ramp smoothing (§4.4, §9 "~1 ms").
//
// Copyright (c) 2026 The HexoDSP-core Authors
// License: GPLv3 or later

package hexodsp

// smoother linearly ramps one global input's constant buffer from its
// current value to a new target over SmootherRampMS, so a set_param call
// never produces a sample-accurate discontinuity on an unconnected input
// port. A connected input is never smoothed: the upstream signal already
// varies every sample, and curInp aliases it directly (program.go
// lockBuffers).
type smoother struct {
	target   float32
	current  float32
	step     int // remaining ramp samples
	totalLen int
	active   bool
}

// smootherBank owns one smoother per global input index, capped at
// MaxSmoothers live (oldest-reused, §4.4: "capped at MAX_SMOOTHERS").
type smootherBank struct {
	bySlot map[int]*smoother
	order  []int // slot indices in acquisition order, for eviction
	sr     float32
}

func newSmootherBank(sr float32) *smootherBank {
	return &smootherBank{bySlot: map[int]*smoother{}, sr: sr}
}

func (b *smootherBank) rampLen() int {
	n := int(SmootherRampMS / 1000.0 * float64(b.sr))
	if n < 1 {
		n = 1
	}
	return n
}

// setSampleRate rescales the remaining ramp for every live smoother so an
// in-flight transition keeps roughly the same wall-clock duration across a
// sample-rate change.
func (b *smootherBank) setSampleRate(sr float32) {
	b.sr = sr
	for _, s := range b.bySlot {
		if s.active && s.totalLen > 0 {
			frac := float32(s.step) / float32(s.totalLen)
			s.totalLen = b.rampLen()
			s.step = int(frac * float32(s.totalLen))
		}
	}
}

// setTarget starts (or retargets) a ramp toward v for the input at slot.
func (b *smootherBank) setTarget(slot int, current, v float32) {
	s, ok := b.bySlot[slot]
	if !ok {
		if len(b.order) >= MaxSmoothers {
			evict := b.order[0]
			b.order = b.order[1:]
			delete(b.bySlot, evict)
		}
		s = &smoother{}
		b.bySlot[slot] = s
		b.order = append(b.order, slot)
	}
	s.current = current
	s.target = v
	s.totalLen = b.rampLen()
	s.step = s.totalLen
	s.active = true
}

// fill writes n ramped samples into buf starting from the smoother's
// current value, advancing its state. If slot has no active smoother, buf
// is left untouched and keeps the values already in it (§4.4 step 1).
func (b *smootherBank) fill(slot int, buf ProcBuf, n int) {
	s, ok := b.bySlot[slot]
	if !ok || !s.active {
		return
	}
	inc := float32(0)
	if s.step > 0 {
		inc = (s.target - s.current) / float32(s.step)
	}
	for i := 0; i < n; i++ {
		if s.step <= 0 {
			s.current = s.target
			s.active = false
			buf[i] = s.current
			continue
		}
		s.current += inc
		s.step--
		buf[i] = s.current
	}
	if s.step <= 0 {
		s.current = s.target
		s.active = false
	}
}
