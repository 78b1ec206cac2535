// mux9.go - Mux9: a 9-way selector with CV/trigger fallback (§4.3).
//
// Copyright (c) 2026 The HexoDSP-core Authors
// License: GPLv3 or later
package nodes

import "github.com/hexodsp/hexodsp"

const mux9Ways = 9

func init() {
	inputs := make([]hexodsp.PortInfo, 0, mux9Ways+1)
	inputs = append(inputs, param("sel", 0, 0, 1))
	for i := 0; i < mux9Ways; i++ {
		inputs = append(inputs, param("in", 0, -1, 1))
	}
	hexodsp.RegisterNode(hexodsp.RegistryEntry{
		Kind:    "Mux9",
		New:     func() hexodsp.Node { return &Mux9{} },
		Inputs:  inputs,
		Outputs: []string{"sig"},
	})
}

// Mux9 routes one of nine inputs to its output. When "sel" has an incoming
// edge it is read as a continuous 0..1 CV and quantized to a way index
// (CV-select mode). When "sel" is unconnected, Mux9 instead advances one
// way every time it sees a rising edge on way 0's own input, a simple
// trigger-select fallback that needs no dedicated trigger port (§4.3's
// "falls back from CV-selector to trigger-selector when its select input
// is unconnected").
type Mux9 struct {
	way      int
	prevWay0 float32
}

func (n *Mux9) SetSampleRate(float32) {}
func (n *Mux9) Reset()                { n.way = 0; n.prevWay0 = 0 }

func (n *Mux9) Process(actx hexodsp.AudioContext, _ hexodsp.ExecContext, nctx hexodsp.NodeContext, _ []hexodsp.SAtom, inputs, outputs []hexodsp.ProcBuf, leds *hexodsp.NodeLEDs) {
	sel := inputs[0]
	out := outputs[0]
	cvSelect := nctx.InputIsConnected(0)

	var last float32
	for i := 0; i < actx.Frames; i++ {
		if cvSelect {
			n.way = clampWay(int(sel[i] * float32(mux9Ways)))
		} else {
			w0 := inputs[1][i]
			if w0 > 0 && n.prevWay0 <= 0 {
				n.way = (n.way + 1) % mux9Ways
			}
			n.prevWay0 = w0
		}
		v := inputs[1+n.way][i]
		out[i] = v
		last = v
	}
	leds.SetLED(last)
	leds.SetPhase(float32(n.way) / float32(mux9Ways))
}

func clampWay(w int) int {
	if w < 0 {
		return 0
	}
	if w >= mux9Ways {
		return mux9Ways - 1
	}
	return w
}
