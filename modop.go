// modop.go - ModOp: the per-modulated-edge attenuverter (§4.5).
//
// Copyright (c) 2026 The HexoDSP-core Authors
// License: GPLv3 or later

package hexodsp

// ModOp computes, per sample, modbuf[f] = amount*outbuf[f] + inbuf[f]: the
// destination node sees modbuf as its effective input. inbuf is the
// smoothed parameter stream (what the frontend set via set_param); outbuf
// is the connected upstream signal. amount == 0 makes the connection a pure
// override plus the param value; amount == 1 makes it fully additive.
//
// amount is written directly by the executor on ModamtUpdate with no
// smoothing (§9: modulation is part of the signal path, not an async UI
// event, so clicks are accepted in exchange for responsiveness).
type ModOp struct {
	modbuf ProcBuf // owned
	inbuf  ProcBuf // aliases Program.inp[dst] while locked
	outbuf ProcBuf // aliases Program.out[src] while locked
	amount float32
	locked bool
}

func newModOp() *ModOp { return &ModOp{modbuf: newProcBuf()} }

// lock binds this ModOp to a specific edge for the duration of one block.
func (m *ModOp) lock(inbuf, outbuf ProcBuf) {
	m.inbuf = inbuf
	m.outbuf = outbuf
	m.locked = true
}

// unlock drops the aliases so the owning buffers may be swapped freely by a
// concurrent hot-swap (§4.4 step 6, §9 "locked_buffers").
func (m *ModOp) unlock() {
	m.inbuf = nil
	m.outbuf = nil
	m.locked = false
}

// tick fills modbuf for the first n frames of the block.
func (m *ModOp) tick(n int) {
	if !m.locked {
		return
	}
	amt := m.amount
	for i := 0; i < n; i++ {
		m.modbuf[i] = amt*m.outbuf[i] + m.inbuf[i]
	}
}

// SetAmount is the only audio-thread write path, called from
// NodeExecutor.drainCommands on a ModamtUpdate message.
func (m *ModOp) SetAmount(v float32) { m.amount = v }
