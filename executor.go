// executor.go - NodeExecutor: the audio-thread block-processing loop (§4.4).
//
// Copyright (c) 2026 The HexoDSP-core Authors
// License: GPLv3 or later

package hexodsp

// NodeExecutor owns the currently active Program and every piece of state
// the audio thread needs to run one block: the smoother bank, the monitor
// tap indices, the injected MIDI queue, the feedback-line store, and the
// consumer halves of the command and drop rings. Nothing in this struct is
// ever touched from the frontend thread once the executor is handed to the
// audio callback (§5).
type NodeExecutor struct {
	prog *Program

	cmdRing  *CommandRing
	dropRing *DropRing
	feedback *FeedbackStore
	midi     *MidiRing

	smoothers *smootherBank
	monitor   *MonitorProcessor
	monBufs   [6]int

	sr float32
}

// NewNodeExecutor builds an executor with no active Program; the first
// NewProg command received supplies one.
func NewNodeExecutor(cmdRing *CommandRing, dropRing *DropRing, feedback *FeedbackStore, monitor *MonitorProcessor, sr float32) *NodeExecutor {
	bufs := [6]int{UnusedMonitorIdx, UnusedMonitorIdx, UnusedMonitorIdx, UnusedMonitorIdx, UnusedMonitorIdx, UnusedMonitorIdx}
	return &NodeExecutor{
		cmdRing:   cmdRing,
		dropRing:  dropRing,
		feedback:  feedback,
		midi:      newMidiRing(MonitorRingCapacity),
		smoothers: newSmootherBank(sr),
		monitor:   monitor,
		monBufs:   bufs,
		sr:        sr,
	}
}

// Process renders exactly one block of frames frames (<= MaxBlockSize),
// following the six numbered steps of §4.4. It allocates nothing, blocks on
// nothing, and calls no syscalls in the steady state.
func (ex *NodeExecutor) Process(frames int) {
	if frames > MaxBlockSize {
		frames = MaxBlockSize
	}

	ex.drainCommands()

	if ex.prog == nil {
		return
	}
	p := ex.prog

	for i := range p.inp {
		ex.smoothers.fill(i, p.inp[i], frames)
	}

	p.lockBuffers()

	ectx := ExecContext{Feedback: ex.feedback, Midi: ex.midi}
	actx := AudioContext{SampleRate: ex.sr, Frames: frames}

	for i := range p.prog {
		op := &p.prog[i]
		for m := op.ModStart; m < op.ModEnd; m++ {
			p.modops[m].tick(frames)
		}
		node := p.nodes[op.NodeIdx]
		node.Process(actx, ectx, op.ctx,
			p.atoms[op.AtStart:op.AtEnd],
			p.curInp[op.InStart:op.InEnd],
			p.out[op.OutStart:op.OutEnd],
			p.leds[op.NodeIdx])
	}

	ex.publishTelemetry(frames)
	p.unlockBuffers()
}

func (ex *NodeExecutor) drainCommands() {
	for {
		cmd, ok := ex.cmdRing.pop()
		if !ok {
			return
		}
		switch cmd.Kind {
		case CmdNewProg:
			ex.applyNewProg(cmd)
		case CmdParamUpdate:
			if ex.prog != nil && cmd.InputIdx < len(ex.prog.params) {
				prev := ex.prog.params[cmd.InputIdx]
				ex.prog.params[cmd.InputIdx] = cmd.Value
				ex.smoothers.setTarget(cmd.InputIdx, prev, cmd.Value)
			}
		case CmdAtomUpdate:
			if ex.prog != nil && cmd.AtomIdx < len(ex.prog.atoms) {
				ex.prog.atoms[cmd.AtomIdx] = cmd.Atom
			}
		case CmdModamtUpdate:
			if ex.prog != nil && cmd.ModIdx < len(ex.prog.modops) {
				ex.prog.modops[cmd.ModIdx].SetAmount(cmd.Amount)
			}
		case CmdSetMonitor:
			ex.monBufs = cmd.MonitorBufs
		case CmdInjectMidi:
			ex.midi.push(cmd.Midi)
		}
	}
}

// applyNewProg swaps in a freshly uploaded Program, optionally preserving
// old output buffer storage for nodes present in both generations so
// feedback paths keep playing without a click (§4.4 step 1, §8 "hot-swap
// continuity").
func (ex *NodeExecutor) applyNewProg(cmd Command) {
	prog := cmd.Prog
	prog.initializeInputBuffers()

	old := ex.prog
	if cmd.CopyOldOut && old != nil {
		for i := range prog.prog {
			id := prog.prog[i].Id
			newStart, newEnd, ok := prog.findOutputRange(id)
			if !ok {
				continue
			}
			oldStart, oldEnd, ok := old.findOutputRange(id)
			if !ok || oldEnd-oldStart != newEnd-newStart {
				continue
			}
			for k := 0; k < newEnd-newStart; k++ {
				prog.out[newStart+k] = old.out[oldStart+k]
			}
		}
	}

	ex.prog = prog
	if old != nil && ex.dropRing != nil {
		ex.dropRing.Push(Droppable{Program: old, Nodes: old.nodes})
	}
}

// publishTelemetry writes the one-sample-per-output feedback snapshot and
// feeds the six monitor taps into the monitor ring (§4.4 step 5, §4.6,
// §4.7). LED/phase atomics need no explicit publish step: nodes write them
// directly inside Process.
func (ex *NodeExecutor) publishTelemetry(frames int) {
	p := ex.prog
	if p.outFeedback != nil {
		back := p.outFeedback.Back()
		if cap(*back) < len(p.out) {
			*back = make([]float32, len(p.out))
		}
		*back = (*back)[:len(p.out)]
		for i, buf := range p.out {
			if frames > 0 {
				(*back)[i] = buf[frames-1]
			} else {
				(*back)[i] = 0
			}
		}
		p.outFeedback.Publish()
	}

	if ex.monitor == nil {
		return
	}
	var sample [6]float32
	for i, gi := range ex.monBufs {
		if gi == UnusedMonitorIdx {
			sample[i] = 0
			continue
		}
		if i < 3 {
			if gi >= 0 && gi < len(p.curInp) && p.curInp[gi] != nil && frames > 0 {
				sample[i] = p.curInp[gi][frames-1]
			}
		} else {
			if gi >= 0 && gi < len(p.out) && frames > 0 {
				sample[i] = p.out[gi][frames-1]
			}
		}
	}
	ex.monitor.push(sample)
}

// Render runs one block and copies the outputs of the Out(0) node, one per
// channel, into out, zero-filling any channel beyond Out(0)'s outputs and
// every channel while no active Program contains Out(0). This is the
// signature an audio backend's callback actually drives (§6:
// "Process(nframes, in, out)"); Process itself stays the internal
// six-step primitive so tests can call it without a destination slice.
func (ex *NodeExecutor) Render(frames int, out [][]float32) {
	ex.Process(frames)
	start, end, ok := 0, 0, false
	if ex.prog != nil {
		start, end, ok = ex.prog.findOutputRange(NewNodeId("Out", 0))
	}
	for ch, dst := range out {
		if !ok || start+ch >= end {
			for i := range dst {
				dst[i] = 0
			}
			continue
		}
		src := ex.prog.out[start+ch]
		n := frames
		if n > len(src) {
			n = len(src)
		}
		if n > len(dst) {
			n = len(dst)
		}
		copy(dst[:n], src[:n])
		for i := n; i < len(dst); i++ {
			dst[i] = 0
		}
	}
}

// SetSampleRate propagates a host sample-rate change to every node in the
// active Program, resizes every shared feedback line, and recomputes
// smoother ramp lengths (§4.4 closing paragraph).
func (ex *NodeExecutor) SetSampleRate(sr float32) {
	ex.sr = sr
	ex.smoothers.setSampleRate(sr)
	if ex.prog != nil {
		for _, n := range ex.prog.nodes {
			n.SetSampleRate(sr)
		}
	}
	if ex.feedback != nil {
		for _, l := range ex.feedback.lines {
			l.Resize(sr)
		}
	}
}
