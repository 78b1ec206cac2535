// visualfilter_test.go - covers VisualFilter's sample-and-hold peak
// tracking against the fixture sequence from HexoDSP's
// VisualSamplingFilter doctest (original_source
// src/nodes/visual_sampling_filter.rs).
//
// Copyright (c) 2026 The HexoDSP-core Authors
// License: GPLv3 or later
package hexodsp

import "testing"

func TestVisualFilterPeaksMatchReferenceSequence(t *testing.T) {
	f := &VisualFilter{}

	inputs := []float32{-0.87, -0.8, 0.2, 0.75, 0.5, 0.0, 0.22}
	recalc := true
	var neg, pos float32
	for _, v := range inputs {
		neg, pos = f.Get(recalc, v)
		recalc = !recalc
	}

	if neg != 0.87 || pos != 0.75 {
		t.Fatalf("Get sequence = (%v, %v), want (0.87, 0.75)", neg, pos)
	}
}

func TestVisualFilterHoldsBetweenGateFlips(t *testing.T) {
	f := &VisualFilter{}

	neg1, pos1 := f.Get(true, 0.5)
	neg2, pos2 := f.Get(true, -0.9) // same gate value: held, not recalculated
	if neg1 != neg2 || pos1 != pos2 {
		t.Fatalf("Get held (%v,%v) then changed to (%v,%v) without a gate flip", neg1, pos1, neg2, pos2)
	}

	neg3, pos3 := f.Get(false, -0.9) // gate flips: recalculates
	if pos3 != pos1 {
		t.Fatalf("positive peak changed on a window including no positive sample: got %v, want %v", pos3, pos1)
	}
	if neg3 != 0.9 {
		t.Fatalf("negative peak = %v, want 0.9 after folding in -0.9", neg3)
	}
}

func TestFeedbackFilterTracksDistinctNodesSeparately(t *testing.T) {
	ff := newFeedbackFilter()
	sin0 := NewNodeId("Sin", 0)
	amp0 := NewNodeId("Amp", 0)

	ff.getLed(sin0, 0.6)
	ff.getLed(amp0, -0.3)
	ff.triggerRecalc()
	negSin, posSin := ff.getLed(sin0, 0.6)
	negAmp, posAmp := ff.getLed(amp0, -0.3)

	if posSin == 0 {
		t.Fatalf("sin LED filter never saw its positive sample: got (%v,%v)", negSin, posSin)
	}
	if negAmp == 0 {
		t.Fatalf("amp LED filter never saw its negative sample: got (%v,%v)", negAmp, posAmp)
	}

	negOut, posOut := ff.getOut(sin0, 1, 0.42)
	if negOut != 0 || posOut == 0 {
		t.Fatalf("out filter for (Sin0, 1) = (%v,%v), want a distinct positive-only reading", negOut, posOut)
	}
}
