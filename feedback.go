// feedback.go - SharedFeedback: the FbWr/FbRd delayed feedback ring (§4.8).
//
// Copyright (c) 2026 The HexoDSP-core Authors
// License: GPLv3 or later

package hexodsp

import (
	"math"
	"sync/atomic"
)

// SharedFeedback is a per-instance ring of atomic floats providing a fixed
// delay between one writer (an FbWr node) and any number of readers (FbRd
// nodes). Single-word atomic stores give lock-free multi-reader,
// single-writer semantics without tearing at sample granularity (§4.8, §5).
type SharedFeedback struct {
	buf   []atomic.Uint32 // float32 bits
	write int
	delay int // read offset behind write, in samples
}

// feedbackLen returns the ring length for a given sample rate, sized to
// max(MaxBlockSize, ceil(3.14ms * sr)) per §4.8.
func feedbackLen(sr float32) int {
	n := int(math.Ceil(FeedbackLineMinMS / 1000.0 * float64(sr)))
	if n < MaxBlockSize {
		n = MaxBlockSize
	}
	return n
}

// NewSharedFeedback allocates a ring sized for sr, with the read cursor one
// full ring-length behind the write cursor (maximum available delay).
func NewSharedFeedback(sr float32) *SharedFeedback {
	n := feedbackLen(sr)
	return &SharedFeedback{buf: make([]atomic.Uint32, n), delay: n}
}

// Resize reallocates the ring for a new sample rate, dropping prior
// contents (called from the executor's sample-rate-change propagation,
// §4.4 "Sample-rate changes propagate...").
func (f *SharedFeedback) Resize(sr float32) {
	n := feedbackLen(sr)
	f.buf = make([]atomic.Uint32, n)
	f.write = 0
	f.delay = n
}

// WriteSample appends one sample, advancing the write cursor.
func (f *SharedFeedback) WriteSample(v float32) {
	f.buf[f.write].Store(float32bits(v))
	f.write = (f.write + 1) % len(f.buf)
}

// ReadSample returns the sample one delay-length behind the current write
// position - FbRd's read-one-behind semantics that break graph cycles
// between FbWr/FbRd pairs (§3, §4.8).
func (f *SharedFeedback) ReadSample() float32 {
	idx := (f.write - f.delay + len(f.buf)) % len(f.buf)
	return float32frombits(f.buf[idx].Load())
}

// FeedbackStore maps a feedback-line instance key (typically the FbWr/FbRd
// pair's shared NodeId string) to its SharedFeedback ring. Owned by the
// NodeConfigurator; handed to the executor via ExecContext so node Process
// implementations can reach it without the executor exposing internals.
type FeedbackStore struct {
	lines map[string]*SharedFeedback
}

func NewFeedbackStore() *FeedbackStore { return &FeedbackStore{lines: map[string]*SharedFeedback{}} }

// Line returns (creating if necessary) the SharedFeedback for key at sr.
// FbWr and FbRd call it from Process, on the audio thread, so a line is
// allocated by the first block that touches it.
func (s *FeedbackStore) Line(key string, sr float32) *SharedFeedback {
	if l, ok := s.lines[key]; ok {
		return l
	}
	l := NewSharedFeedback(sr)
	s.lines[key] = l
	return l
}

// Get returns the existing line for key, or nil; unlike Line it never
// creates one.
func (s *FeedbackStore) Get(key string) *SharedFeedback { return s.lines[key] }
