// comb_test.go - verifies the feedback comb filter's impulse-response
// timing against §8's concrete comb-filter scenario.
//
// Copyright (c) 2026 The HexoDSP-core Authors
// License: GPLv3 or later
package nodes

import (
	"testing"

	"github.com/hexodsp/hexodsp"
)

func TestCombImpulseTiming(t *testing.T) {
	const sr = 1000 // 1 sample == 1ms, so a 100ms delay is exactly 100 samples
	c := &Comb{}
	c.SetSampleRate(sr)
	c.Reset()

	leds := &hexodsp.NodeLEDs{}
	step := func(in, g, delayMs float32) float32 {
		inp := hexodsp.ProcBuf{in}
		gain := hexodsp.ProcBuf{g}
		timeMs := hexodsp.ProcBuf{delayMs}
		out := hexodsp.ProcBuf{0}
		c.Process(hexodsp.AudioContext{SampleRate: sr, Frames: 1}, hexodsp.ExecContext{}, hexodsp.NodeContext{},
			nil, []hexodsp.ProcBuf{inp, gain, timeMs}, []hexodsp.ProcBuf{out}, leds)
		return out[0]
	}

	got := step(1, 0.75, 100)
	if got != 1.0 {
		t.Fatalf("t=0: got %v, want 1.0 (impulse passes straight through)", got)
	}

	for ms := 1; ms < 100; ms++ {
		got := step(0, 0.75, 100)
		if got != 0 {
			t.Fatalf("t=%dms: got %v, want 0 (silence before the delay elapses)", ms, got)
		}
	}

	got = step(0, 0.75, 100)
	if got != 0.75 {
		t.Fatalf("t=100ms: got %v, want 0.75 (attenuated echo of the impulse)", got)
	}
}
