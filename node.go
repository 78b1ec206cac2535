// node.go - the per-node DSP unit contract (§4.3).
//
// Copyright (c) 2026 The HexoDSP-core Authors
// License: GPLv3 or later

package hexodsp

import "sync/atomic"

// AudioContext carries block-wide timing information into Node.Process:
// sample rate and the number of valid frames in this block (<= MaxBlockSize
// for the final, possibly partial, block of a host callback).
type AudioContext struct {
	SampleRate float32
	Frames     int
}

// ExecContext exposes executor-wide facilities a node may need without
// giving it access to the executor itself: the feedback-line store (for
// FbWr/FbRd) and the injected MIDI event queue (for MidiP/MidiCC).
type ExecContext struct {
	Feedback *FeedbackStore
	Midi     *MidiRing
}

// NodeContext carries per-NodeOp connectivity information derived by the
// topology compiler: which inputs and outputs actually have an edge
// attached this generation. Nodes use this to specialize behavior, e.g.
// Mux9 falling back from CV-select to trigger-select when its select input
// is unconnected (§4.3).
type NodeContext struct {
	InputConnected  []bool
	OutputConnected []bool
}

func (c NodeContext) InputIsConnected(i int) bool {
	return i >= 0 && i < len(c.InputConnected) && c.InputConnected[i]
}

func (c NodeContext) OutputIsConnected(i int) bool {
	return i >= 0 && i < len(c.OutputConnected) && c.OutputConnected[i]
}

// Node is the contract every DSP unit implements. Implementations must not
// allocate, block, or panic inside Process: the audio thread calls Process
// exactly once per block for every NodeOp naming this node, and only while
// the Program containing that NodeOp is the executor's active program
// (§4.3, §9 "interior mutability of nodes").
type Node interface {
	// SetSampleRate is called once at Program installation and again
	// whenever the host's sample rate changes.
	SetSampleRate(sr float32)

	// Reset clears all internal state to a deterministic initial condition.
	Reset()

	// Process consumes atoms/inputs and writes outputs for ctx.Frames
	// samples. inputs and outputs are ProcBuf views prepared by the
	// executor for this block only; neither slice nor its length may be
	// retained past the call.
	Process(actx AudioContext, ectx ExecContext, nctx NodeContext, atoms []SAtom, inputs []ProcBuf, outputs []ProcBuf, leds *NodeLEDs)
}

// NodeLEDs holds the two atomic scalars every node publishes for UI
// consumption: a characteristic "LED" value (typically the last output
// sample) and a "phase" value (position indicator for sequencers, LFOs,
// envelopes). Both are lock-free, unordered-read-acceptable per §5.
type NodeLEDs struct {
	led   atomic.Uint32 // float32 bits
	phase atomic.Uint32 // float32 bits
}

func (l *NodeLEDs) SetLED(v float32)   { l.led.Store(float32bits(v)) }
func (l *NodeLEDs) LED() float32       { return float32frombits(l.led.Load()) }
func (l *NodeLEDs) SetPhase(v float32) { l.phase.Store(float32bits(v)) }
func (l *NodeLEDs) Phase() float32     { return float32frombits(l.phase.Load()) }

// NodeIdentityAware is implemented by nodes that need to know their own
// NodeId after construction - currently FbWr/FbRd, which derive a shared
// feedback-line key from it (§4.8). AddProgNode calls SetNodeId right after
// the registry factory returns, before the node's first Process.
type NodeIdentityAware interface {
	SetNodeId(id NodeId)
}
