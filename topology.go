// topology.go - the topology compiler (§4.1).
//
// Copyright (c) 2026 The HexoDSP-core Authors
// License: GPLv3 or later

package hexodsp

import "sort"

// GraphEdge is the canonical edge the matrix façade / scripting layer
// hands the compiler: a connection from one node's output port to another
// node's input port (§4.1 input).
type GraphEdge struct {
	FromNode NodeId
	FromPort int
	ToNode   NodeId
	ToPort   int
}

// compileOrder runs the deterministic leaf-first topological sort over the
// given instance set and edges, per §4.1 step 2. Ties break on first-seen
// insertion order so the result is stable across platforms.
func compileOrder(ids []NodeId, edges []GraphEdge) ([]NodeId, error) {
	indexOf := make(map[NodeId]int, len(ids))
	for i, id := range ids {
		indexOf[id] = i
	}

	indeg := make([]int, len(ids))
	adj := make([][]int, len(ids))
	for _, e := range edges {
		from, fok := indexOf[e.FromNode]
		to, tok := indexOf[e.ToNode]
		if !fok || !tok {
			continue
		}
		adj[from] = append(adj[from], to)
		indeg[to]++
	}

	// Stable FIFO of currently-leaf (indegree-0) nodes, seeded and refilled
	// in first-seen insertion order for deterministic tie-breaks.
	queue := make([]int, 0, len(ids))
	for i := range ids {
		if indeg[i] == 0 {
			queue = append(queue, i)
		}
	}

	order := make([]NodeId, 0, len(ids))
	visited := make([]bool, len(ids))
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		if visited[i] {
			continue
		}
		visited[i] = true
		order = append(order, ids[i])
		for _, j := range adj[i] {
			indeg[j]--
			if indeg[j] == 0 {
				queue = append(queue, j)
			}
		}
	}

	if len(order) != len(ids) {
		var remaining []NodeId
		for i, v := range visited {
			if !v {
				remaining = append(remaining, ids[i])
			}
		}
		return nil, &CycleDetectedError{Remaining: remaining}
	}
	return order, nil
}

// checkDuplicateInputs enforces §4.1 step 1: a destination input may have
// at most one source. Returns the first offending pair found, in a
// deterministic (sorted) scan order.
func checkDuplicateInputs(edges []GraphEdge) error {
	type dst struct {
		Node NodeId
		Port int
	}
	seen := make(map[dst]GraphEdge, len(edges))

	sorted := make([]GraphEdge, len(edges))
	copy(sorted, edges)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].ToNode != sorted[j].ToNode {
			return sorted[i].ToNode.Less(sorted[j].ToNode)
		}
		return sorted[i].ToPort < sorted[j].ToPort
	})

	for _, e := range sorted {
		d := dst{e.ToNode, e.ToPort}
		if prior, ok := seen[d]; ok {
			return &DuplicatedInputError{
				Dest: e.ToNode, Input: e.ToPort,
				Output1: prior.FromNode, Output2: e.FromNode,
			}
		}
		seen[d] = e
	}
	return nil
}

// CompileTopology is the full §4.1 algorithm: duplicate check, cycle
// check/ordering, then range assignment and edge resolution delegated to
// the caller (NodeConfigurator.RebuildNodePorts), which owns the
// per-instance port-count metadata the compiler itself does not need to
// know about. Exported for the matrix façade, which owns the edge list and
// drives RebuildNodePorts/AddProgNode/SetProgNodeExecConnection/UploadProg
// with this function's result.
func CompileTopology(ids []NodeId, edges []GraphEdge) ([]NodeId, error) {
	if err := checkDuplicateInputs(edges); err != nil {
		return nil, err
	}
	return compileOrder(ids, edges)
}
