// feedback.go - FbWr/FbRd: the shared delayed feedback line pair (§4.8).
//
// Copyright (c) 2026 The HexoDSP-core Authors
// License: GPLv3 or later
package nodes

import "github.com/hexodsp/hexodsp"

func init() {
	hexodsp.RegisterNode(hexodsp.RegistryEntry{
		Kind:   "FbWr",
		New:    func() hexodsp.Node { return &FbWr{} },
		Inputs: []hexodsp.PortInfo{param("inp", 0, -1, 1)},
	})
	hexodsp.RegisterNode(hexodsp.RegistryEntry{
		Kind:    "FbRd",
		New:     func() hexodsp.Node { return &FbRd{} },
		Outputs: []string{"sig"},
	})
}

// FbWr and FbRd are a matched pair identified by sharing the same instance
// number (FbWr(0) feeds FbRd(0)): FbWr appends every sample to a
// SharedFeedback ring keyed by its own NodeId string, FbRd reads the same
// ring one delay-length behind. This gives the graph an intentional,
// cycle-breaking round trip without the topology compiler ever seeing a
// cycle (§3, §4.8).
type FbWr struct {
	id hexodsp.NodeId
	sr float32
}

func (n *FbWr) SetSampleRate(sr float32) { n.sr = sr }
func (n *FbWr) Reset()                   {}

// SetNodeId is called by the configurator's AddProgNode wiring step so the
// node knows which shared line it owns; see node.go's NodeIdentityAware.
func (n *FbWr) SetNodeId(id hexodsp.NodeId) { n.id = id }

func (n *FbWr) Process(actx hexodsp.AudioContext, ectx hexodsp.ExecContext, _ hexodsp.NodeContext, _ []hexodsp.SAtom, inputs, _ []hexodsp.ProcBuf, leds *hexodsp.NodeLEDs) {
	if ectx.Feedback == nil {
		return
	}
	line := ectx.Feedback.Line(lineKey(n.id), n.sr)
	inp := inputs[0]
	for i := 0; i < actx.Frames; i++ {
		line.WriteSample(inp[i])
	}
	if actx.Frames > 0 {
		leds.SetLED(inp[actx.Frames-1])
	}
}

type FbRd struct {
	id hexodsp.NodeId
	sr float32
}

func (n *FbRd) SetSampleRate(sr float32) { n.sr = sr }
func (n *FbRd) Reset()                   {}
func (n *FbRd) SetNodeId(id hexodsp.NodeId) {
	n.id = hexodsp.NewNodeId("FbWr", id.Instance)
}

func (n *FbRd) Process(actx hexodsp.AudioContext, ectx hexodsp.ExecContext, _ hexodsp.NodeContext, _ []hexodsp.SAtom, _ []hexodsp.ProcBuf, outputs []hexodsp.ProcBuf, leds *hexodsp.NodeLEDs) {
	out := outputs[0]
	if ectx.Feedback == nil {
		for i := range out[:actx.Frames] {
			out[i] = 0
		}
		return
	}
	line := ectx.Feedback.Line(lineKey(n.id), n.sr)
	var last float32
	for i := 0; i < actx.Frames; i++ {
		v := line.ReadSample()
		out[i] = v
		last = v
	}
	leds.SetLED(last)
}

func lineKey(id hexodsp.NodeId) string { return id.String() }
