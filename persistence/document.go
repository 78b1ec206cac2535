// Package persistence implements the JSON patch format of §6: a
// VERSION-tagged document carrying cells, params, atoms, patterns,
// block_funs, and props, loaded and saved exclusively through the
// NodeConfigurator API (create_node/set_param/set_param_modamt) so the core
// never has a second, divergent mutation path.
//
// Grounded on file_io.go's load-validate-apply structure (read bytes,
// decode, sanity-check the version, then mutate live state field by field)
// and media_loader.go's async-load-with-failure-queue pattern for the
// sample-atom special case, both reworked from binary ROM/snapshot formats
// into a versioned JSON patch document.
//
// Copyright (c) 2026 The HexoDSP-core Authors
// License: GPLv3 or later
package persistence

import (
	"encoding/json"

	"github.com/hexodsp/hexodsp"
)

// CurrentVersion is the version this build writes; Version1 and
// CurrentVersion are both accepted on load (§6, §9).
const (
	Version1      = 1 // denormalized param values
	CurrentVersion = 2 // normalized param values
)

// Document is the on-disk JSON shape. cells/patterns/block_funs/props are
// opaque to the core (§6: "editor-level, not consumed by the core") and are
// round-tripped verbatim.
type Document struct {
	Version   int             `json:"VERSION"`
	Cells     json.RawMessage `json:"cells,omitempty"`
	Params    []ParamEntry    `json:"params"`
	Atoms     []AtomEntry     `json:"atoms"`
	Patterns  json.RawMessage `json:"patterns,omitempty"`
	BlockFuns json.RawMessage `json:"block_funs,omitempty"`
	Props     json.RawMessage `json:"props,omitempty"`
}

// ParamEntry is `[node_name, instance, param_name, value, optional_modamt]`.
type ParamEntry struct {
	NodeName  string
	Instance  int
	ParamName string
	Value     float32
	Modamt    *float32
}

func (p ParamEntry) MarshalJSON() ([]byte, error) {
	arr := []interface{}{p.NodeName, p.Instance, p.ParamName, p.Value}
	if p.Modamt != nil {
		arr = append(arr, *p.Modamt)
	}
	return json.Marshal(arr)
}

func (p *ParamEntry) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) < 4 {
		return &hexodsp.DeserializationError{Msg: "param entry too short"}
	}
	if err := json.Unmarshal(raw[0], &p.NodeName); err != nil {
		return err
	}
	if err := json.Unmarshal(raw[1], &p.Instance); err != nil {
		return err
	}
	if err := json.Unmarshal(raw[2], &p.ParamName); err != nil {
		return err
	}
	if err := json.Unmarshal(raw[3], &p.Value); err != nil {
		return err
	}
	if len(raw) >= 5 {
		var m float32
		if err := json.Unmarshal(raw[4], &m); err != nil {
			return err
		}
		p.Modamt = &m
	}
	return nil
}

// AtomEntry is `[node_name, instance, param_name, tagged_atom]`.
type AtomEntry struct {
	NodeName  string
	Instance  int
	ParamName string
	Atom      hexodsp.SAtom
}

func (a AtomEntry) MarshalJSON() ([]byte, error) {
	tag, err := encodeAtom(a.Atom)
	if err != nil {
		return nil, err
	}
	return json.Marshal([]interface{}{a.NodeName, a.Instance, a.ParamName, tag})
}

func (a *AtomEntry) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 4 {
		return &hexodsp.DeserializationError{Msg: "atom entry must have 4 elements"}
	}
	if err := json.Unmarshal(raw[0], &a.NodeName); err != nil {
		return err
	}
	if err := json.Unmarshal(raw[1], &a.Instance); err != nil {
		return err
	}
	if err := json.Unmarshal(raw[2], &a.ParamName); err != nil {
		return err
	}
	atom, err := decodeAtom(raw[3])
	if err != nil {
		return err
	}
	a.Atom = atom
	return nil
}
