// out.go - Out: the graph's stereo sink.
//
// Copyright (c) 2026 The HexoDSP-core Authors
// License: GPLv3 or later
package nodes

import "github.com/hexodsp/hexodsp"

func init() {
	hexodsp.RegisterNode(hexodsp.RegistryEntry{
		Kind: "Out",
		New:  func() hexodsp.Node { return &Out{} },
		Inputs: []hexodsp.PortInfo{
			param("ch1", 0, -1, 1),
			param("ch2", 0, -1, 1),
		},
		Outputs: []string{"ch1", "ch2"},
	})
}

// Out passes its two inputs straight through to identically named outputs,
// which is what cmd/hexodspd's audio backend and the output-feedback
// triple buffer (§4.7) actually read - a Program has no other designated
// sink. With no incoming edges and no params set, both channels are
// exactly silence (§8 "silence by default").
type Out struct{}

func (n *Out) SetSampleRate(float32) {}
func (n *Out) Reset()                {}

func (n *Out) Process(actx hexodsp.AudioContext, _ hexodsp.ExecContext, _ hexodsp.NodeContext, _ []hexodsp.SAtom, inputs, outputs []hexodsp.ProcBuf, leds *hexodsp.NodeLEDs) {
	for i := 0; i < actx.Frames; i++ {
		outputs[0][i] = inputs[0][i]
		outputs[1][i] = inputs[1][i]
	}
	if actx.Frames > 0 {
		leds.SetLED(outputs[0][actx.Frames-1])
	}
}
