// clipboard.go - patch copy/paste via the system clipboard.
//
// Copyright (c) 2026 The HexoDSP-core Authors
// License: GPLv3 or later
package matrixfacade

import (
	"context"
	"encoding/json"

	"golang.design/x/clipboard"

	"github.com/hexodsp/hexodsp"
)

type clipCell struct {
	X, Y     int
	Kind     string
	Instance int
}

type clipConn struct {
	SrcX, SrcY, SrcPort int
	DstX, DstY, DstPort int
}

type clipPatch struct {
	Cells []clipCell
	Conns []clipConn
}

// InitClipboard must be called once before Copy/Paste; it wraps
// clipboard.Init's platform bring-up.
func InitClipboard() error { return clipboard.Init() }

// Copy serializes the current grid to JSON and writes it to the system
// clipboard as plain text.
func (m *Matrix) Copy() error {
	patch := clipPatch{}
	for cell, id := range m.cells {
		patch.Cells = append(patch.Cells, clipCell{X: cell.X, Y: cell.Y, Kind: id.Kind, Instance: id.Instance})
	}
	for _, c := range m.conns {
		patch.Conns = append(patch.Conns, clipConn{
			SrcX: c.Src.X, SrcY: c.Src.Y, SrcPort: c.SrcPort,
			DstX: c.Dst.X, DstY: c.Dst.Y, DstPort: c.DstPort,
		})
	}
	data, err := json.Marshal(patch)
	if err != nil {
		return &hexodsp.DeserializationError{Msg: err.Error()}
	}
	clipboard.Write(clipboard.FmtText, data)
	return nil
}

// Paste reads a patch previously written by Copy from the system clipboard
// and places it at the given offset, via Place/Connect (so the usual
// bounds/occupancy checks still apply).
func (m *Matrix) Paste(ctx context.Context, offsetX, offsetY int) error {
	data := clipboard.Read(clipboard.FmtText)
	if len(data) == 0 {
		return nil
	}

	var patch clipPatch
	if err := json.Unmarshal(data, &patch); err != nil {
		return &hexodsp.DeserializationError{Msg: err.Error()}
	}

	for _, c := range patch.Cells {
		id := hexodsp.NewNodeId(c.Kind, c.Instance)
		if err := m.Place(Cell{X: c.X + offsetX, Y: c.Y + offsetY}, id); err != nil {
			return err
		}
	}
	for _, c := range patch.Conns {
		src := Cell{X: c.SrcX + offsetX, Y: c.SrcY + offsetY}
		dst := Cell{X: c.DstX + offsetX, Y: c.DstY + offsetY}
		if err := m.Connect(src, c.SrcPort, dst, c.DstPort); err != nil {
			return err
		}
	}
	return nil
}
