// visualfilter.go - VisualFilter: the UI-side output-feedback post filter
// (§4.7).
//
// Ported from HexoDSP's VisualSamplingFilter/FeedbackFilter
// (original_source src/nodes/visual_sampling_filter.rs,
// src/nodes/feedback_filter.rs): a sample-and-hold window keyed off a
// shared recalc gate bit, so repeated UI polls within the same tick are
// cheap and every tracked value only recomputes its peaks once the
// frontend flips the gate.
//
// Copyright (c) 2026 The HexoDSP-core Authors
// License: GPLv3 or later

package hexodsp

const visualFilterWindow = 10

// VisualFilter accumulates recent samples of a single displayed value (an
// LED level or one OutFbFor reading) and reports separate negative and
// positive peaks, so level indicators read smoothly without the audio
// thread doing any UI-facing work. Get only recomputes its output when
// recalc differs from the gate state it saw on the previous call, matching
// the Rust original's "negate recalc each frame" polling discipline.
type VisualFilter struct {
	recalcState bool
	writePtr    int
	samples     [visualFilterWindow]float32
	lastNeg     float32
	lastPos     float32
}

// Get retrieves the filter's current (negative, positive) peak pair,
// pushing sample into the window and recomputing only when recalc differs
// from the gate state recorded on the previous call.
func (f *VisualFilter) Get(recalc bool, sample float32) (float32, float32) {
	if f.recalcState == recalc {
		return f.lastNeg, f.lastPos
	}
	f.recalcState = recalc

	f.writePtr = (f.writePtr + 1) % len(f.samples)
	f.samples[f.writePtr] = sample

	var neg, pos float32
	for _, v := range f.samples {
		if v >= 0 {
			if v > pos {
				pos = v
			}
		} else if -v > neg {
			neg = -v
		}
	}
	f.lastNeg, f.lastPos = neg, pos
	return neg, pos
}

// outFilterKey identifies one global-output slot's VisualFilter.
type outFilterKey struct {
	Node NodeId
	Out  int
}

// feedbackFilter owns the per-NodeId LED filter map and per-(NodeId,output)
// output filter map, and the shared recalc gate every VisualFilter polls
// against (ported from FeedbackFilter).
type feedbackFilter struct {
	ledFilters  map[NodeId]*VisualFilter
	outFilters  map[outFilterKey]*VisualFilter
	recalcState bool
}

func newFeedbackFilter() *feedbackFilter {
	return &feedbackFilter{
		ledFilters:  map[NodeId]*VisualFilter{},
		outFilters:  map[outFilterKey]*VisualFilter{},
		recalcState: true,
	}
}

func (ff *feedbackFilter) triggerRecalc() { ff.recalcState = !ff.recalcState }

// ledFilterFor and outFilterFor start a new filter on the opposite gate
// state, so its first Get records the sample instead of holding zeros.
func (ff *feedbackFilter) ledFilterFor(id NodeId) *VisualFilter {
	f, ok := ff.ledFilters[id]
	if !ok {
		f = &VisualFilter{recalcState: !ff.recalcState}
		ff.ledFilters[id] = f
	}
	return f
}

func (ff *feedbackFilter) outFilterFor(id NodeId, out int) *VisualFilter {
	key := outFilterKey{Node: id, Out: out}
	f, ok := ff.outFilters[key]
	if !ok {
		f = &VisualFilter{recalcState: !ff.recalcState}
		ff.outFilters[key] = f
	}
	return f
}

func (ff *feedbackFilter) getLed(id NodeId, sample float32) (float32, float32) {
	return ff.ledFilterFor(id).Get(ff.recalcState, sample)
}

func (ff *feedbackFilter) getOut(id NodeId, out int, sample float32) (float32, float32) {
	return ff.outFilterFor(id, out).Get(ff.recalcState, sample)
}
