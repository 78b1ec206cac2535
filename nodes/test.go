// test.go - Test: a deterministic single-impulse trigger source used by
// test patches (§8 scenario 3 "Comb filter delay").
//
// Copyright (c) 2026 The HexoDSP-core Authors
// License: GPLv3 or later
package nodes

import "github.com/hexodsp/hexodsp"

func init() {
	hexodsp.RegisterNode(hexodsp.RegistryEntry{
		Kind:    "Test",
		New:     func() hexodsp.Node { return &Test{} },
		Atoms:   []hexodsp.PortInfo{atomPort("trig", "setting")},
		Outputs: []string{"tsig"},
	})
}

// Test emits one full-scale unit impulse on the very first sample after
// Reset (or after its trig atom transitions to a nonzero value), then
// silence, giving test patches a reproducible excitation signal.
type Test struct {
	fired    bool
	lastTrig int64
}

func (n *Test) SetSampleRate(float32) {}
func (n *Test) Reset()                { n.fired = false; n.lastTrig = 0 }

func (n *Test) Process(actx hexodsp.AudioContext, _ hexodsp.ExecContext, _ hexodsp.NodeContext, atoms []hexodsp.SAtom, _ []hexodsp.ProcBuf, outputs []hexodsp.ProcBuf, leds *hexodsp.NodeLEDs) {
	out := outputs[0]
	for i := range out[:actx.Frames] {
		out[i] = 0
	}

	trig := int64(0)
	if len(atoms) > 0 {
		if s, ok := atoms[0].(hexodsp.SettingAtom); ok {
			trig = s.Value
		}
	}
	fire := (!n.fired) || (trig != 0 && trig != n.lastTrig)
	n.lastTrig = trig
	if fire && actx.Frames > 0 {
		out[0] = 1
		n.fired = true
	}
	if actx.Frames > 0 {
		leds.SetLED(out[actx.Frames-1])
	}
}
