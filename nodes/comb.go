// comb.go - Comb: a single feedback comb filter.
//
// Grounded on audio_chip.go's reverb comb-filter bank: a single delay
// buffer read-then-written each sample, reworked here from a bank of four
// fixed-length buffers tuned for reverb into one runtime-sized buffer
// driven by the node's own g/time ports, and from an echo-only tap (out =
// delayed) into a feedback comb whose output includes the dry input
// (out = input + g*delayed) so a single impulse shows up immediately and
// again, attenuated, after each round trip through the delay line.
//
// Copyright (c) 2026 The HexoDSP-core Authors
// License: GPLv3 or later
package nodes

import "github.com/hexodsp/hexodsp"

func init() {
	hexodsp.RegisterNode(hexodsp.RegistryEntry{
		Kind: "Comb",
		New:  func() hexodsp.Node { return &Comb{} },
		Inputs: []hexodsp.PortInfo{
			param("inp", 0, -1, 1),
			param("g", 0.75, 0, 0.999),
			param("time", 100, 0.1, 500),
		},
		Outputs: []string{"sig"},
	})
}

// Comb is a feedback comb filter: y[n] = x[n] + g*y[n - delay]. time is in
// milliseconds and is quantized to whole samples; a change in time that
// changes the delay's sample count reallocates the delay line, losing its
// prior contents.
type Comb struct {
	sr     float32
	buf    []float32
	pos    int
	timeMs float32
}

func (n *Comb) SetSampleRate(sr float32) {
	n.sr = sr
	n.resize(n.timeMs)
}

func (n *Comb) Reset() {
	for i := range n.buf {
		n.buf[i] = 0
	}
	n.pos = 0
}

func (n *Comb) resize(timeMs float32) {
	if n.sr <= 0 {
		n.sr = hexodsp.DefaultSampleRate
	}
	samples := int(timeMs / 1000 * n.sr)
	if samples < 1 {
		samples = 1
	}
	if samples != len(n.buf) {
		n.buf = make([]float32, samples)
		n.pos = 0
	}
	n.timeMs = timeMs
}

func (n *Comb) Process(actx hexodsp.AudioContext, _ hexodsp.ExecContext, _ hexodsp.NodeContext, _ []hexodsp.SAtom, inputs, outputs []hexodsp.ProcBuf, leds *hexodsp.NodeLEDs) {
	inp, g, timeMs := inputs[0], inputs[1], inputs[2]
	out := outputs[0]

	var last float32
	for i := 0; i < actx.Frames; i++ {
		if timeMs[i] != n.timeMs {
			n.resize(timeMs[i])
		}
		delayed := n.buf[n.pos]
		y := inp[i] + g[i]*delayed
		n.buf[n.pos] = y
		n.pos = (n.pos + 1) % len(n.buf)
		out[i] = y
		last = y
	}
	leds.SetLED(last)
}
