// scenario_test.go - end-to-end scenarios against the real node set (§8).
//
// Copyright (c) 2026 The HexoDSP-core Authors
// License: GPLv3 or later
package hexodsp_test

import (
	"testing"

	"github.com/hexodsp/hexodsp"
	_ "github.com/hexodsp/hexodsp/nodes"
)

func newRig(sr float32) (*hexodsp.NodeConfigurator, *hexodsp.NodeExecutor) {
	cmdRing := hexodsp.NewCommandRing()
	dropRing := hexodsp.NewDropRing()
	feedback := hexodsp.NewFeedbackStore()
	cfg := hexodsp.NewNodeConfigurator(cmdRing, dropRing, feedback, sr, hexodsp.NopObserver{})
	exec := hexodsp.NewNodeExecutor(cmdRing, dropRing, feedback, nil, sr)
	return cfg, exec
}

func uploadGraph(t *testing.T, cfg *hexodsp.NodeConfigurator, ids []hexodsp.NodeId, edges []hexodsp.GraphEdge) {
	t.Helper()
	for _, id := range ids {
		if _, err := cfg.CreateNode(id); err != nil {
			t.Fatalf("CreateNode(%s): %v", id, err)
		}
	}
	order, err := hexodsp.CompileTopology(ids, edges)
	if err != nil {
		t.Fatalf("CompileTopology: %v", err)
	}
	prog, err := cfg.RebuildNodePorts(order, edges)
	if err != nil {
		t.Fatalf("RebuildNodePorts: %v", err)
	}
	for _, id := range order {
		if err := cfg.AddProgNode(prog, id); err != nil {
			t.Fatalf("AddProgNode(%s): %v", id, err)
		}
	}
	for _, e := range edges {
		err := cfg.SetProgNodeExecConnection(prog,
			hexodsp.ParamDest{Node: e.ToNode, Input: e.ToPort},
			hexodsp.ParamSrc{Node: e.FromNode, Output: e.FromPort})
		if err != nil {
			t.Fatalf("SetProgNodeExecConnection: %v", err)
		}
	}
	if err := cfg.UploadProg(prog, false); err != nil {
		t.Fatalf("UploadProg: %v", err)
	}
}

// TestSilenceByDefault covers §8's "every output sample is exactly 0.0"
// scenario: an Out node with nothing connected to it produces silence.
func TestSilenceByDefault(t *testing.T) {
	cfg, exec := newRig(44100)
	out0 := hexodsp.NewNodeId("Out", 0)
	uploadGraph(t, cfg, []hexodsp.NodeId{out0}, nil)

	ch1 := make([]float32, 64)
	ch2 := make([]float32, 64)
	exec.Render(64, [][]float32{ch1, ch2})

	for i, v := range ch1 {
		if v != 0 {
			t.Fatalf("ch1[%d] = %v, want 0", i, v)
		}
	}
	for i, v := range ch2 {
		if v != 0 {
			t.Fatalf("ch2[%d] = %v, want 0", i, v)
		}
	}
}

// TestSineThroughAmpToOut builds Sin -> Amp -> Out and checks the rendered
// signal's peak stays within the amplifier's bound and the signal is
// actually oscillating (not stuck at zero or a constant).
func TestSineThroughAmpToOut(t *testing.T) {
	const sr = 44100
	cfg, exec := newRig(sr)

	sin0 := hexodsp.NewNodeId("Sin", 0)
	amp0 := hexodsp.NewNodeId("Amp", 0)
	out0 := hexodsp.NewNodeId("Out", 0)

	ids := []hexodsp.NodeId{sin0, amp0, out0}
	edges := []hexodsp.GraphEdge{
		{FromNode: sin0, FromPort: 0, ToNode: amp0, ToPort: 0},
		{FromNode: amp0, FromPort: 0, ToNode: out0, ToPort: 0},
	}
	// Params are set before the upload so the Program starts at gain 0.5; a
	// change after upload would ramp from Amp's default gain of 1.0 over the
	// first ~1 ms of the render.
	for _, id := range ids {
		if _, err := cfg.CreateNode(id); err != nil {
			t.Fatalf("CreateNode(%v): %v", id, err)
		}
	}
	freqId := hexodsp.NewParamId(sin0, 0, "freq", false)
	if err := cfg.SetParam(freqId, hexodsp.ParamAtom{Value: 440}); err != nil {
		t.Fatalf("SetParam(freq): %v", err)
	}
	gainId := hexodsp.NewParamId(amp0, 1, "gain", false)
	if err := cfg.SetParam(gainId, hexodsp.ParamAtom{Value: 0.5}); err != nil {
		t.Fatalf("SetParam(gain): %v", err)
	}
	uploadGraph(t, cfg, ids, edges)

	ch1 := make([]float32, sr/10)
	ch2 := make([]float32, sr/10)
	for rendered := 0; rendered < len(ch1); rendered += hexodsp.MaxBlockSize {
		n := hexodsp.MaxBlockSize
		if rendered+n > len(ch1) {
			n = len(ch1) - rendered
		}
		exec.Render(n, [][]float32{ch1[rendered : rendered+n], ch2[rendered : rendered+n]})
	}

	var peak float32
	var sawPositive, sawNegative bool
	for _, v := range ch1 {
		if v > peak {
			peak = v
		}
		if v < -peak {
			peak = -v
		}
		if v > 0.01 {
			sawPositive = true
		}
		if v < -0.01 {
			sawNegative = true
		}
	}
	if peak > 0.55 {
		t.Fatalf("peak %v exceeds gain-bounded amplitude", peak)
	}
	if !sawPositive || !sawNegative {
		t.Fatalf("expected an oscillating signal, got peak=%v pos=%v neg=%v", peak, sawPositive, sawNegative)
	}
}

// TestDuplicateInputRejected covers §8's duplicate-input scenario:
// compilation fails, identifying both conflicting sources.
func TestDuplicateInputRejected(t *testing.T) {
	sin0 := hexodsp.NewNodeId("Sin", 0)
	sin1 := hexodsp.NewNodeId("Sin", 1)
	amp0 := hexodsp.NewNodeId("Amp", 0)

	edges := []hexodsp.GraphEdge{
		{FromNode: sin0, FromPort: 0, ToNode: amp0, ToPort: 0},
		{FromNode: sin1, FromPort: 0, ToNode: amp0, ToPort: 0},
	}
	_, err := hexodsp.CompileTopology([]hexodsp.NodeId{sin0, sin1, amp0}, edges)
	if err == nil {
		t.Fatal("expected DuplicatedInputError, got nil")
	}
	dupErr, ok := err.(*hexodsp.DuplicatedInputError)
	if !ok {
		t.Fatalf("expected *DuplicatedInputError, got %T: %v", err, err)
	}
	if dupErr.Dest != amp0 || dupErr.Input != 0 {
		t.Fatalf("unexpected dup error target: %+v", dupErr)
	}
}

// TestCycleRejected covers §8's cycle-rejection scenario for a direct
// cycle not broken by an FbWr/FbRd pair.
func TestCycleRejected(t *testing.T) {
	a := hexodsp.NewNodeId("Amp", 0)
	b := hexodsp.NewNodeId("Amp", 1)

	edges := []hexodsp.GraphEdge{
		{FromNode: a, FromPort: 0, ToNode: b, ToPort: 0},
		{FromNode: b, FromPort: 0, ToNode: a, ToPort: 0},
	}
	_, err := hexodsp.CompileTopology([]hexodsp.NodeId{a, b}, edges)
	if _, ok := err.(*hexodsp.CycleDetectedError); !ok {
		t.Fatalf("expected *CycleDetectedError, got %T: %v", err, err)
	}
}

// TestCreateNodeIdempotent covers §8's "create_node(id) twice returns the
// same index" invariant.
func TestCreateNodeIdempotent(t *testing.T) {
	cfg, _ := newRig(44100)
	id := hexodsp.NewNodeId("Sin", 0)

	idx1, err := cfg.CreateNode(id)
	if err != nil {
		t.Fatalf("CreateNode: %v", err)
	}
	idx2, err := cfg.CreateNode(id)
	if err != nil {
		t.Fatalf("CreateNode (2nd): %v", err)
	}
	if idx1 != idx2 {
		t.Fatalf("CreateNode not idempotent: %d != %d", idx1, idx2)
	}
}

// TestLiveModamtWithoutRebuild covers §8's "live modamt update without
// rebuild" scenario: SetParamModamt on an already-uploaded graph changes
// behavior without a new Program generation.
func TestLiveModamtWithoutRebuild(t *testing.T) {
	const sr = 44100
	cfg, exec := newRig(sr)

	sin0 := hexodsp.NewNodeId("Sin", 0)
	amp0 := hexodsp.NewNodeId("Amp", 0)
	out0 := hexodsp.NewNodeId("Out", 0)
	ids := []hexodsp.NodeId{sin0, amp0, out0}
	edges := []hexodsp.GraphEdge{
		{FromNode: sin0, FromPort: 0, ToNode: amp0, ToPort: 0},
		{FromNode: amp0, FromPort: 0, ToNode: out0, ToPort: 0},
	}

	for _, id := range ids {
		if _, err := cfg.CreateNode(id); err != nil {
			t.Fatalf("CreateNode(%s): %v", id, err)
		}
	}

	gainId := hexodsp.NewParamId(amp0, 1, "gain", false)
	if rebuildNeeded, err := cfg.SetParamModamt(gainId, floatPtr(0.1)); err != nil || !rebuildNeeded {
		t.Fatalf("initial SetParamModamt: rebuildNeeded=%v err=%v, want true,nil", rebuildNeeded, err)
	}

	// Rebuild/upload once with the modamt slot already allocated, matching
	// an already-connected port that a live value tweak should not disturb.
	uploadGraph(t, cfg, ids, edges)

	rebuildNeeded, err := cfg.SetParamModamt(gainId, floatPtr(0.25))
	if err != nil {
		t.Fatalf("SetParamModamt: %v", err)
	}
	if rebuildNeeded {
		t.Fatal("SetParamModamt updating an existing modulator slot in place should not require a rebuild")
	}

	ch1 := make([]float32, 128)
	ch2 := make([]float32, 128)
	exec.Render(128, [][]float32{ch1, ch2})
}

func floatPtr(v float32) *float32 { return &v }
