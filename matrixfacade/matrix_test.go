package matrixfacade_test

import (
	"testing"

	"github.com/hexodsp/hexodsp"
	"github.com/hexodsp/hexodsp/matrixfacade"

	_ "github.com/hexodsp/hexodsp/nodes"
)

func newCfg(sr float32) *hexodsp.NodeConfigurator {
	cmdRing := hexodsp.NewCommandRing()
	dropRing := hexodsp.NewDropRing()
	feedback := hexodsp.NewFeedbackStore()
	return hexodsp.NewNodeConfigurator(cmdRing, dropRing, feedback, sr, hexodsp.NopObserver{})
}

func TestPlaceOutOfRange(t *testing.T) {
	m := matrixfacade.New(newCfg(44100), 4, 4)
	err := m.Place(matrixfacade.Cell{X: 10, Y: 0}, hexodsp.NewNodeId("Sin", 0))
	if _, ok := err.(*matrixfacade.PosOutOfRangeError); !ok {
		t.Fatalf("expected *PosOutOfRangeError, got %T: %v", err, err)
	}
}

func TestPlaceOccupiedCell(t *testing.T) {
	m := matrixfacade.New(newCfg(44100), 4, 4)
	cell := matrixfacade.Cell{X: 1, Y: 1}
	if err := m.Place(cell, hexodsp.NewNodeId("Sin", 0)); err != nil {
		t.Fatalf("Place: %v", err)
	}
	err := m.Place(cell, hexodsp.NewNodeId("Sin", 1))
	if _, ok := err.(*matrixfacade.NonEmptyCellError); !ok {
		t.Fatalf("expected *NonEmptyCellError, got %T: %v", err, err)
	}
}

func TestSyncCycleRejectedThenRestore(t *testing.T) {
	m := matrixfacade.New(newCfg(44100), 4, 4)
	a := matrixfacade.Cell{X: 0, Y: 0}
	b := matrixfacade.Cell{X: 1, Y: 0}

	if err := m.Place(a, hexodsp.NewNodeId("Amp", 0)); err != nil {
		t.Fatalf("Place a: %v", err)
	}
	if err := m.Place(b, hexodsp.NewNodeId("Amp", 1)); err != nil {
		t.Fatalf("Place b: %v", err)
	}
	if err := m.Connect(a, 0, b, 0); err != nil {
		t.Fatalf("Connect a->b: %v", err)
	}
	if err := m.Sync(false); err != nil {
		t.Fatalf("Sync (acyclic): %v", err)
	}

	if err := m.Connect(b, 0, a, 0); err != nil {
		t.Fatalf("Connect b->a: %v", err)
	}
	err := m.Sync(false)
	if _, ok := err.(*hexodsp.CycleDetectedError); !ok {
		t.Fatalf("expected *CycleDetectedError, got %T: %v", err, err)
	}

	m.Restore()
	if err := m.Sync(false); err != nil {
		t.Fatalf("Sync after Restore should succeed again: %v", err)
	}
}

func TestRemoveClearsCellAndConnections(t *testing.T) {
	m := matrixfacade.New(newCfg(44100), 4, 4)
	a := matrixfacade.Cell{X: 0, Y: 0}
	b := matrixfacade.Cell{X: 1, Y: 0}
	m.Place(a, hexodsp.NewNodeId("Amp", 0))
	m.Place(b, hexodsp.NewNodeId("Amp", 1))
	m.Connect(a, 0, b, 0)

	m.Remove(a)
	if err := m.Connect(a, 0, b, 0); err == nil {
		t.Fatal("expected Connect from a removed cell to fail")
	}
}
