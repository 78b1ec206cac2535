// sin.go - Sin: a phase-accumulator sine oscillator.
//
// Grounded on audio_chip.go's phase-accumulator oscillator (ch.phase +=
// phaseInc, wrapped by subtraction rather than modulo), reworked here from
// a fixed TWO_PI-radian accumulator driving a LUT into a unit-interval
// accumulator driving math.Sin directly, and from a chip-wide fixed rate to
// a per-sample, per-frame frequency input (§4.3).
//
// Copyright (c) 2026 The HexoDSP-core Authors
// License: GPLv3 or later
package nodes

import (
	"math"

	"github.com/hexodsp/hexodsp"
)

func init() {
	hexodsp.RegisterNode(hexodsp.RegistryEntry{
		Kind:    "Sin",
		New:     func() hexodsp.Node { return &Sin{} },
		Inputs:  []hexodsp.PortInfo{param("freq", 440, 0.01, 22000)},
		Outputs: []string{"sig"},
	})
}

// Sin is a single sine oscillator. freq is a smoothed per-sample input, so
// FM-style modulation (via a modulated edge, §4.5) sweeps pitch cleanly.
type Sin struct {
	sr    float32
	phase float64 // unit interval [0, 1)
}

func (n *Sin) SetSampleRate(sr float32) { n.sr = sr }
func (n *Sin) Reset()                   { n.phase = 0 }

func (n *Sin) Process(actx hexodsp.AudioContext, _ hexodsp.ExecContext, _ hexodsp.NodeContext, _ []hexodsp.SAtom, inputs, outputs []hexodsp.ProcBuf, leds *hexodsp.NodeLEDs) {
	freq := inputs[0]
	out := outputs[0]
	sr := float64(n.sr)
	if sr <= 0 {
		sr = hexodsp.DefaultSampleRate
	}

	var last float32
	for i := 0; i < actx.Frames; i++ {
		v := float32(math.Sin(2 * math.Pi * n.phase))
		out[i] = v
		last = v

		n.phase += float64(freq[i]) / sr
		if n.phase >= 1 {
			n.phase -= 1
		} else if n.phase < 0 {
			n.phase += 1
		}
	}
	leds.SetLED(last)
	leds.SetPhase(float32(n.phase))
}
