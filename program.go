// program.go - Program: the compiled graph the configurator hands to the
// executor (§3, §4.1 step 5).
//
// Copyright (c) 2026 The HexoDSP-core Authors
// License: GPLv3 or later

package hexodsp

import "github.com/hexodsp/hexodsp/triplebuf"

// Program owns every buffer and descriptor the executor needs to run one
// compiled graph generation. Nothing inside a Program is ever mutated by
// the configurator once it has been uploaded; ownership transfers whole.
type Program struct {
	pool *procBufPool

	nodes []Node
	leds  []*NodeLEDs

	inp    []ProcBuf // smoothed per-global-input constant/target buffers
	curInp []ProcBuf // per-block alias view; nil when unlocked
	out    []ProcBuf // per-global-output buffers
	params []float32 // smoother targets, one per global input
	atoms  []SAtom
	modops []*ModOp
	prog   []NodeOp

	locked bool

	// outFeedback is this Program's producer handle onto the frontend's
	// output-feedback triple buffer (§4.7). Detached on upload_prog so a
	// fresh Program gets its own (§4.2 "detaches the program's triple-buffer
	// consumer").
	outFeedback *triplebuf.Writer[[]float32]
}

// newProgram allocates a Program sized to fit the given global counts. The
// configurator calls this from rebuild_node_ports; all buffers start
// zeroed.
func newProgram(numOut, numIn, numAtoms, numMods int) *Program {
	pool := newProcBufPool()
	p := &Program{
		pool:   pool,
		inp:    make([]ProcBuf, numIn),
		curInp: make([]ProcBuf, numIn),
		out:    make([]ProcBuf, numOut),
		params: make([]float32, numIn),
		atoms:  make([]SAtom, numAtoms),
		modops: make([]*ModOp, numMods),
	}
	for i := range p.inp {
		p.inp[i] = pool.alloc()
	}
	for i := range p.out {
		p.out[i] = pool.alloc()
	}
	for i := range p.modops {
		p.modops[i] = newModOp()
	}
	for i := range p.atoms {
		p.atoms[i] = ParamAtom{}
	}
	return p
}

// initializeInputBuffers fills inp[] with the current param targets so
// smoothers start from the right place instead of zero (§4.4 step 1,
// NewProg handling).
func (p *Program) initializeInputBuffers() {
	for i, v := range p.params {
		buf := p.inp[i]
		for f := range buf {
			buf[f] = v
		}
	}
}

// lockBuffers wires curInp[] for this block: unconnected inputs fall back
// to the smoothed constant in inp[]; connected inputs alias the upstream
// output (possibly redirected through a ModOp). Called once per block by
// the executor before running the program (§4.4 step 3).
func (p *Program) lockBuffers() {
	for _, op := range p.prog {
		for i := op.InStart; i < op.InEnd; i++ {
			p.curInp[i] = p.inp[i]
		}
		for _, e := range op.Inputs {
			local := op.InStart + e.DstInLocal
			src := p.out[e.SrcOutGlobal]
			if e.ModOpGlobal >= 0 {
				m := p.modops[e.ModOpGlobal]
				m.lock(p.inp[local], src)
				p.curInp[local] = m.modbuf
			} else {
				p.curInp[local] = src
			}
		}
	}
	p.locked = true
}

// unlockBuffers drops all curInp[] aliases and unlocks every ModOp so a
// concurrent hot swap may safely take ownership of buffers (§4.4 step 6).
func (p *Program) unlockBuffers() {
	for i := range p.curInp {
		p.curInp[i] = nil
	}
	for _, m := range p.modops {
		m.unlock()
	}
	p.locked = false
}

// findOutputRange returns the [start, end) global output range of id's
// NodeOp in p, or ok == false if p has no NodeOp for id. Used by hot-swap's
// copy_old_out buffer-pointer-swap (§4.4 step 1, §9) and by Render.
func (p *Program) findOutputRange(id NodeId) (start, end int, ok bool) {
	for _, op := range p.prog {
		if op.Id == id {
			return op.OutStart, op.OutEnd, true
		}
	}
	return 0, 0, false
}
