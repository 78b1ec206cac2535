// repl_test.go - exercises the REPL's command dispatch end to end against
// a real Engine.
//
// Copyright (c) 2026 The HexoDSP-core Authors
// License: GPLv3 or later
package main

import (
	"bytes"
	"strings"
	"testing"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	eng := NewEngine(44100, decodeRawFloat32)
	t.Cleanup(func() {
		if err := eng.Stop(); err != nil {
			t.Fatalf("Engine.Stop: %v", err)
		}
	})
	return eng
}

func TestReplCreateAndParam(t *testing.T) {
	eng := newTestEngine(t)
	var out bytes.Buffer
	rl := NewRepl(eng, strings.NewReader("create Sin 0\nparam Sin 0 0 440\nquit\n"), &out)
	rl.Run()

	if strings.Contains(out.String(), "error:") {
		t.Fatalf("unexpected error in REPL output: %s", out.String())
	}
}

// TestReplLedReportsFilteredPeaks covers the "led" command wired onto
// NodeConfigurator.UpdateFilters/FilteredLedFor (§4.7's visual filter).
func TestReplLedReportsFilteredPeaks(t *testing.T) {
	eng := newTestEngine(t)
	var out bytes.Buffer
	rl := NewRepl(eng, strings.NewReader("create Sin 0\nled Sin 0\nquit\n"), &out)
	rl.Run()

	if strings.Contains(out.String(), "error:") {
		t.Fatalf("unexpected error in REPL output: %s", out.String())
	}
	if !strings.Contains(out.String(), "led Sin.0") {
		t.Fatalf("expected a led report line, got: %s", out.String())
	}
}
