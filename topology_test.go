package hexodsp_test

import (
	"testing"

	"github.com/hexodsp/hexodsp"
)

func TestCompileTopologyOrdersLeafFirst(t *testing.T) {
	a := hexodsp.NewNodeId("Sin", 0)
	b := hexodsp.NewNodeId("Amp", 0)
	c := hexodsp.NewNodeId("Out", 0)

	edges := []hexodsp.GraphEdge{
		{FromNode: a, FromPort: 0, ToNode: b, ToPort: 0},
		{FromNode: b, FromPort: 0, ToNode: c, ToPort: 0},
	}
	order, err := hexodsp.CompileTopology([]hexodsp.NodeId{c, b, a}, edges)
	if err != nil {
		t.Fatalf("CompileTopology: %v", err)
	}
	if len(order) != 3 || order[0] != a || order[1] != b || order[2] != c {
		t.Fatalf("unexpected order: %v", order)
	}
}

func TestCompileTopologyStableTieBreak(t *testing.T) {
	// Two independent leaves with no edges between them: order must match
	// first-seen insertion order, not map iteration order.
	a := hexodsp.NewNodeId("Sin", 0)
	b := hexodsp.NewNodeId("Sin", 1)
	order, err := hexodsp.CompileTopology([]hexodsp.NodeId{b, a}, nil)
	if err != nil {
		t.Fatalf("CompileTopology: %v", err)
	}
	if order[0] != b || order[1] != a {
		t.Fatalf("tie-break not insertion-stable: %v", order)
	}
}

func TestCompileTopologyIgnoresDanglingEdgeEndpoints(t *testing.T) {
	a := hexodsp.NewNodeId("Sin", 0)
	ghost := hexodsp.NewNodeId("Sin", 99)
	edges := []hexodsp.GraphEdge{{FromNode: ghost, FromPort: 0, ToNode: a, ToPort: 0}}
	order, err := hexodsp.CompileTopology([]hexodsp.NodeId{a}, edges)
	if err != nil {
		t.Fatalf("CompileTopology: %v", err)
	}
	if len(order) != 1 || order[0] != a {
		t.Fatalf("unexpected order: %v", order)
	}
}
