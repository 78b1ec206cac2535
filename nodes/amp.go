// amp.go - Amp: a gain stage.
//
// Copyright (c) 2026 The HexoDSP-core Authors
// License: GPLv3 or later
package nodes

import "github.com/hexodsp/hexodsp"

func init() {
	hexodsp.RegisterNode(hexodsp.RegistryEntry{
		Kind: "Amp",
		New:  func() hexodsp.Node { return &Amp{} },
		Inputs: []hexodsp.PortInfo{
			param("inp", 0, -1, 1),
			param("gain", 1, 0, 4),
		},
		Outputs: []string{"sig"},
	})
}

// Amp multiplies its signal input by a gain input, both smoothed
// independently, so a gain automation never clicks on its own.
type Amp struct{ sr float32 }

func (n *Amp) SetSampleRate(sr float32) { n.sr = sr }
func (n *Amp) Reset()                   {}

func (n *Amp) Process(actx hexodsp.AudioContext, _ hexodsp.ExecContext, _ hexodsp.NodeContext, _ []hexodsp.SAtom, inputs, outputs []hexodsp.ProcBuf, leds *hexodsp.NodeLEDs) {
	inp, gain := inputs[0], inputs[1]
	out := outputs[0]

	var last float32
	for i := 0; i < actx.Frames; i++ {
		v := inp[i] * gain[i]
		out[i] = v
		last = v
	}
	leds.SetLED(last)
}
