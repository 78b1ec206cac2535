// nodeop.go - NodeOp: one entry in a Program's compiled execution order.
//
// Copyright (c) 2026 The HexoDSP-core Authors
// License: GPLv3 or later

package hexodsp

// Edge describes one resolved incoming connection to a NodeOp: the global
// output index of the source, the local (within this node) input index of
// the destination, and the global ModOp index handling it if the
// configurator has stored a modulation amount for that port.
type Edge struct {
	SrcOutGlobal int
	DstInLocal   int
	ModOpGlobal  int // -1 if unmodulated
}

// NodeOp is one invocation in a Program's linear, topologically sorted
// execution order (§3, §4.1 step 4).
type NodeOp struct {
	NodeIdx int  // index into Program.nodes
	Id      NodeId

	OutStart, OutEnd int
	InStart, InEnd   int
	AtStart, AtEnd   int
	ModStart, ModEnd int

	Inputs []Edge

	ctx NodeContext // connectivity bitmasks handed to Node.Process
}

func (op *NodeOp) outCount() int { return op.OutEnd - op.OutStart }
func (op *NodeOp) inCount() int  { return op.InEnd - op.InStart }
func (op *NodeOp) atCount() int  { return op.AtEnd - op.AtStart }
