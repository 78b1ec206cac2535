// paramid.go - ParamId: (NodeId, port index, is-atom) plus its UI/normalization
// metadata.
//
// Copyright (c) 2026 The HexoDSP-core Authors
// License: GPLv3 or later

package hexodsp

import "fmt"

// ParamId addresses one port of one node instance. IsAtom distinguishes a
// smoothed scalar input (IsAtom == false) from an atom slot (true); a given
// port is never both (§3 invariant).
type ParamId struct {
	Node   NodeId
	Port   int
	IsAtom bool
	name   string // port name, for diagnostics and persistence round-trip
}

func NewParamId(node NodeId, port int, name string, isAtom bool) ParamId {
	return ParamId{Node: node, Port: port, IsAtom: isAtom, name: name}
}

func (p ParamId) Name() string { return p.name }

func (p ParamId) String() string {
	kind := "param"
	if p.IsAtom {
		kind = "atom"
	}
	return fmt.Sprintf("%s.%s[%s#%d]", p.Node, p.name, kind, p.Port)
}

// PortInfo describes one input or atom port's static metadata, supplied by a
// node's registry.Entry and consulted by the configurator for normalization
// and by a UI for range display. Concrete node implementations own the
// actual numbers; the core only needs them to validate set_param calls.
type PortInfo struct {
	Name       string
	Default    float32
	Min, Max   float32
	Step       float32
	IsAtom     bool
	AtomKind   string // "setting", "str", "micro_sample", "audio_sample" ("" for plain params)
	SettingFmt func(int64) string
}

// Normalize maps a value in [Min, Max] linearly onto [0, 1]. Denormalize is
// its inverse. Both return the value unchanged when Max <= Min; the mapping
// is always linear, with no per-node override.
func (p PortInfo) Normalize(v float32) float32 {
	if p.Max <= p.Min {
		return v
	}
	return (v - p.Min) / (p.Max - p.Min)
}

func (p PortInfo) Denormalize(n float32) float32 {
	if p.Max <= p.Min {
		return n
	}
	return p.Min + n*(p.Max-p.Min)
}
