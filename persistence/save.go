// save.go - Save: the NodeConfigurator -> document snapshot path (§6).
//
// Copyright (c) 2026 The HexoDSP-core Authors
// License: GPLv3 or later
package persistence

import (
	"encoding/json"

	"github.com/hexodsp/hexodsp"
)

// Save serializes cfg's current param/atom state at CurrentVersion
// (normalized values, §6 "version 2 stores normalized"). cells/patterns/
// block_funs/props are editor-owned and passed through verbatim by the
// caller since the core never produces them.
func Save(cfg *hexodsp.NodeConfigurator, cells, patterns, blockFuns, props json.RawMessage) ([]byte, error) {
	_, paramSnaps, atomSnaps := cfg.Snapshot()

	doc := Document{
		Version:   CurrentVersion,
		Cells:     cells,
		Patterns:  patterns,
		BlockFuns: blockFuns,
		Props:     props,
	}

	for _, p := range paramSnaps {
		norm := p.Value
		if port, ok := cfg.ParamPortIndex(p.Node, p.Name); ok {
			if info, ok := cfg.PortInfoFor(p.Node, port); ok {
				norm = info.Normalize(p.Value)
			}
		}
		doc.Params = append(doc.Params, ParamEntry{
			NodeName: p.Node.Kind, Instance: p.Node.Instance,
			ParamName: p.Name, Value: norm, Modamt: p.Modamt,
		})
	}
	for _, a := range atomSnaps {
		doc.Atoms = append(doc.Atoms, AtomEntry{
			NodeName: a.Node.Kind, Instance: a.Node.Instance,
			ParamName: a.Name, Atom: a.Value,
		})
	}

	out, err := json.Marshal(doc)
	if err != nil {
		return nil, &hexodsp.DeserializationError{Msg: err.Error()}
	}
	return out, nil
}
