// Package matrixfacade implements the hex-grid patch-editing surface named
// in §4.11: a 2D placement grid mapping cells to NodeIds, plus an explicit
// connection list built by Connect, compiled through the core's topology
// compiler and realized via the NodeConfigurator API exactly as any other
// frontend would.
//
// Grounded on the teacher's save/attempt/restore discipline implicit in
// debug_snapshot.go (snapshot state, attempt a risky operation, restore on
// failure), generalized here from CPU register snapshots into a generic
// one-level undo checkpoint around grid mutation (§7 "save / attempt /
// restore pattern").
//
// Copyright (c) 2026 The HexoDSP-core Authors
// License: GPLv3 or later
package matrixfacade

import "github.com/hexodsp/hexodsp"

// Cell addresses one position in the grid.
type Cell struct{ X, Y int }

// Connection is a pending edge between two placed cells' ports, not yet
// validated by the topology compiler.
type Connection struct {
	Src     Cell
	SrcPort int
	Dst     Cell
	DstPort int
}

type snapshot struct {
	cells map[Cell]hexodsp.NodeId
	conns []Connection
}

// Matrix is the hex-grid façade: a placement surface bounded to Cols x
// Rows, plus the frontend-only connection list awaiting Sync.
type Matrix struct {
	cfg  *hexodsp.NodeConfigurator
	Cols int
	Rows int

	cells map[Cell]hexodsp.NodeId
	conns []Connection

	checkpoint *snapshot
}

// New creates an empty cols x rows matrix bound to cfg.
func New(cfg *hexodsp.NodeConfigurator, cols, rows int) *Matrix {
	return &Matrix{cfg: cfg, Cols: cols, Rows: rows, cells: map[Cell]hexodsp.NodeId{}}
}

func (m *Matrix) inRange(c Cell) bool {
	return c.X >= 0 && c.X < m.Cols && c.Y >= 0 && c.Y < m.Rows
}

// checkpointNow snapshots current cells/conns so a subsequent failed
// operation can be undone via Restore.
func (m *Matrix) checkpointNow() {
	cellsCopy := make(map[Cell]hexodsp.NodeId, len(m.cells))
	for k, v := range m.cells {
		cellsCopy[k] = v
	}
	connsCopy := append([]Connection(nil), m.conns...)
	m.checkpoint = &snapshot{cells: cellsCopy, conns: connsCopy}
}

// Restore reverts to the last checkpoint taken by Place/Remove/Connect, per
// §7's save/attempt/restore pattern and §8 scenario 4 "after a
// restore_matrix, executor is unchanged and keeps producing the prior
// program" (Restore only touches frontend grid state; the audio thread was
// never told about the rejected change because Sync never uploaded it).
func (m *Matrix) Restore() {
	if m.checkpoint == nil {
		return
	}
	m.cells = m.checkpoint.cells
	m.conns = m.checkpoint.conns
}

// Place assigns id to cell. Returns PosOutOfRangeError or NonEmptyCellError
// without mutating the grid on failure.
func (m *Matrix) Place(cell Cell, id hexodsp.NodeId) error {
	if !m.inRange(cell) {
		return &PosOutOfRangeError{Cell: cell}
	}
	if _, occupied := m.cells[cell]; occupied {
		return &NonEmptyCellError{Cell: cell}
	}
	m.checkpointNow()
	if _, err := m.cfg.CreateNode(id); err != nil {
		return err
	}
	m.cells[cell] = id
	return nil
}

// Remove clears cell, if occupied. It is not an error to remove an empty
// cell.
func (m *Matrix) Remove(cell Cell) {
	if _, ok := m.cells[cell]; !ok {
		return
	}
	m.checkpointNow()
	delete(m.cells, cell)

	kept := m.conns[:0]
	for _, c := range m.conns {
		if c.Src != cell && c.Dst != cell {
			kept = append(kept, c)
		}
	}
	m.conns = kept
}

// Connect queues a pending edge between two placed cells. Both cells must
// already hold a node; the edge is not validated until Sync.
func (m *Matrix) Connect(src Cell, srcPort int, dst Cell, dstPort int) error {
	if _, ok := m.cells[src]; !ok {
		return &PosOutOfRangeError{Cell: src}
	}
	if _, ok := m.cells[dst]; !ok {
		return &PosOutOfRangeError{Cell: dst}
	}
	m.checkpointNow()
	m.conns = append(m.conns, Connection{Src: src, SrcPort: srcPort, Dst: dst, DstPort: dstPort})
	return nil
}

// compile resolves the current grid into a NodeId set and GraphEdge list
// for the topology compiler.
func (m *Matrix) compile() ([]hexodsp.NodeId, []hexodsp.GraphEdge) {
	ids := make([]hexodsp.NodeId, 0, len(m.cells))
	for _, id := range m.cells {
		ids = append(ids, id)
	}
	edges := make([]hexodsp.GraphEdge, 0, len(m.conns))
	for _, c := range m.conns {
		edges = append(edges, hexodsp.GraphEdge{
			FromNode: m.cells[c.Src], FromPort: c.SrcPort,
			ToNode: m.cells[c.Dst], ToPort: c.DstPort,
		})
	}
	return ids, edges
}

// Sync compiles the current grid and, on success, realizes it as a new
// Program through the NodeConfigurator API and uploads it. On a
// CycleDetectedError or DuplicatedInputError, nothing is uploaded (§4.1
// "compilation is pure") and the caller should call Restore to drop
// whatever edit provoked the failure.
func (m *Matrix) Sync(copyOldOut bool) error {
	ids, edges := m.compile()
	order, err := hexodsp.CompileTopology(ids, edges)
	if err != nil {
		return err
	}

	prog, err := m.cfg.RebuildNodePorts(order, edges)
	if err != nil {
		return err
	}
	for _, id := range order {
		if err := m.cfg.AddProgNode(prog, id); err != nil {
			return err
		}
	}
	for _, c := range m.conns {
		err := m.cfg.SetProgNodeExecConnection(prog,
			hexodsp.ParamDest{Node: m.cells[c.Dst], Input: c.DstPort},
			hexodsp.ParamSrc{Node: m.cells[c.Src], Output: c.SrcPort})
		if err != nil {
			return err
		}
	}
	return m.cfg.UploadProg(prog, copyOldOut)
}
