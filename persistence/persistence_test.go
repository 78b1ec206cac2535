package persistence_test

import (
	"math"
	"testing"

	"github.com/hexodsp/hexodsp"
	"github.com/hexodsp/hexodsp/persistence"

	_ "github.com/hexodsp/hexodsp/nodes"
)

func newCfg(sr float32) *hexodsp.NodeConfigurator {
	cmdRing := hexodsp.NewCommandRing()
	dropRing := hexodsp.NewDropRing()
	feedback := hexodsp.NewFeedbackStore()
	return hexodsp.NewNodeConfigurator(cmdRing, dropRing, feedback, sr, hexodsp.NopObserver{})
}

func TestSaveLoadRoundTrip(t *testing.T) {
	cfg := newCfg(44100)
	amp0 := hexodsp.NewNodeId("Amp", 0)
	if _, err := cfg.CreateNode(amp0); err != nil {
		t.Fatalf("CreateNode: %v", err)
	}

	gainId := hexodsp.NewParamId(amp0, 1, "gain", false)
	if err := cfg.SetParam(gainId, hexodsp.ParamAtom{Value: 2.0}); err != nil {
		t.Fatalf("SetParam: %v", err)
	}

	raw, err := persistence.Save(cfg, nil, nil, nil, nil)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	cfg2 := newCfg(44100)
	loader := persistence.NewLoader(nil, nil)
	doc, err := persistence.Load(cfg2, loader, raw)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if doc.Version != persistence.CurrentVersion {
		t.Fatalf("Version = %d, want %d", doc.Version, persistence.CurrentVersion)
	}

	_, params, _ := cfg2.Snapshot()
	var found bool
	for _, p := range params {
		if p.Node == amp0 && p.Name == "gain" {
			found = true
			if math.Abs(float64(p.Value-2.0)) > 1e-4 {
				t.Fatalf("gain round-tripped to %v, want 2.0", p.Value)
			}
		}
	}
	if !found {
		t.Fatal("gain param missing after round-trip")
	}
}

func TestLoadRejectsBadVersion(t *testing.T) {
	cfg := newCfg(44100)
	loader := persistence.NewLoader(nil, nil)
	_, err := persistence.Load(cfg, loader, []byte(`{"VERSION": 99, "params": [], "atoms": []}`))
	if _, ok := err.(*hexodsp.BadVersionError); !ok {
		t.Fatalf("expected *BadVersionError, got %T: %v", err, err)
	}
}

func TestLoadRejectsUnknownParam(t *testing.T) {
	cfg := newCfg(44100)
	loader := persistence.NewLoader(nil, nil)
	raw := []byte(`{"VERSION": 2, "params": [["Amp", 0, "not_a_port", 0.5]], "atoms": []}`)
	_, err := persistence.Load(cfg, loader, raw)
	if _, ok := err.(*hexodsp.UnknownParamIdError); !ok {
		t.Fatalf("expected *UnknownParamIdError, got %T: %v", err, err)
	}
}
