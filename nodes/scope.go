// scope.go - Scope: a passthrough probe node exercising all six monitor
// taps (§4.6).
//
// Copyright (c) 2026 The HexoDSP-core Authors
// License: GPLv3 or later
package nodes

import "github.com/hexodsp/hexodsp"

func init() {
	hexodsp.RegisterNode(hexodsp.RegistryEntry{
		Kind: "Scope",
		New:  func() hexodsp.Node { return &Scope{} },
		Inputs: []hexodsp.PortInfo{
			param("in0", 0, -1, 1),
			param("in1", 0, -1, 1),
			param("in2", 0, -1, 1),
		},
		Outputs: []string{"out0", "out1", "out2"},
	})
}

// Scope copies each input straight to the identically indexed output. It
// exists to give the matrix façade something with three inputs and three
// outputs to point NodeConfigurator.Monitor at, exercising all six fixed
// monitor slots at once.
type Scope struct{}

func (n *Scope) SetSampleRate(float32) {}
func (n *Scope) Reset()                {}

func (n *Scope) Process(actx hexodsp.AudioContext, _ hexodsp.ExecContext, _ hexodsp.NodeContext, _ []hexodsp.SAtom, inputs, outputs []hexodsp.ProcBuf, leds *hexodsp.NodeLEDs) {
	for ch := 0; ch < 3; ch++ {
		in, out := inputs[ch], outputs[ch]
		for i := 0; i < actx.Frames; i++ {
			out[i] = in[i]
		}
	}
	if actx.Frames > 0 {
		leds.SetLED(outputs[0][actx.Frames-1])
	}
}
