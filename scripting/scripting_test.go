package scripting_test

import (
	"testing"

	"github.com/hexodsp/hexodsp"
	"github.com/hexodsp/hexodsp/scripting"

	_ "github.com/hexodsp/hexodsp/nodes"
)

func newCfg(sr float32) *hexodsp.NodeConfigurator {
	cmdRing := hexodsp.NewCommandRing()
	dropRing := hexodsp.NewDropRing()
	feedback := hexodsp.NewFeedbackStore()
	return hexodsp.NewNodeConfigurator(cmdRing, dropRing, feedback, sr, hexodsp.NopObserver{})
}

func TestLuaPatchUploads(t *testing.T) {
	cfg := newCfg(44100)
	eng := scripting.New(cfg)
	defer eng.Close()

	script := `
		create_node("Sin", 0)
		create_node("Amp", 0)
		create_node("Out", 0)
		connect("Sin", 0, 0, "Amp", 0, 0)
		connect("Amp", 0, 0, "Out", 0, 0)
		set_param("Amp", 0, 1, 0.5)
		upload()
	`
	if err := eng.Run(script); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if cfg.Generation() == 0 {
		t.Fatal("expected Generation() to advance after upload()")
	}
}

func TestLuaRejectsCycle(t *testing.T) {
	cfg := newCfg(44100)
	eng := scripting.New(cfg)
	defer eng.Close()

	script := `
		create_node("Amp", 0)
		create_node("Amp", 1)
		connect("Amp", 0, 0, "Amp", 1, 0)
		connect("Amp", 1, 0, "Amp", 0, 0)
		upload()
	`
	if err := eng.Run(script); err == nil {
		t.Fatal("expected Run to fail on a cyclic patch")
	}
}
