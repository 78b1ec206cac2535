// nodeid.go - NodeId: a tagged (node-type, instance-index) identifier.
//
// Copyright (c) 2026 The HexoDSP-core Authors
// License: GPLv3 or later

package hexodsp

import "fmt"

// NodeId identifies a node's type and its instance number within that type.
// NodeId is comparable and totally ordered (by Kind then Instance), stable
// across runs, and usable as a map key by frontend state.
type NodeId struct {
	Kind     string // e.g. "Sin", "Amp", "Out" - matches a registry.Entry key
	Instance int
}

// NewNodeId builds a NodeId for the given kind/instance pair.
func NewNodeId(kind string, instance int) NodeId { return NodeId{Kind: kind, Instance: instance} }

func (n NodeId) String() string { return fmt.Sprintf("%s(%d)", n.Kind, n.Instance) }

// Less imposes the total order used for deterministic topological tie-breaks
// and for stable iteration over frontend maps.
func (n NodeId) Less(o NodeId) bool {
	if n.Kind != o.Kind {
		return n.Kind < o.Kind
	}
	return n.Instance < o.Instance
}
