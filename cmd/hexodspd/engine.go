// engine.go - wires NodeConfigurator, NodeExecutor, Janitor and
// MonitorProcessor into one running daemon.
//
// Grounded on coprocessor_manager.go's supervised-goroutine lifecycle. The
// janitor and monitor start and stop their own goroutines; the Engine's
// errgroup.Group has no goroutines added to it, so Stop's Wait returns nil
// and a panic in either goroutine is not caught by it.
//
// Copyright (c) 2026 The HexoDSP-core Authors
// License: GPLv3 or later
package main

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/hexodsp/hexodsp"
	"github.com/hexodsp/hexodsp/errqueue"
	"github.com/hexodsp/hexodsp/persistence"
	"github.com/hexodsp/hexodsp/scripting"

	_ "github.com/hexodsp/hexodsp/nodes" // self-registers every built-in node kind
)

// Engine bundles one configurator, its matching executor, and the
// supporting goroutines (janitor, monitor) under one cancelable group.
type Engine struct {
	Cfg    *hexodsp.NodeConfigurator
	Exec   *hexodsp.NodeExecutor
	Errq   *errqueue.Queue
	Loader *persistence.Loader
	Lua    *scripting.Engine

	janitor *hexodsp.Janitor
	monitor *hexodsp.MonitorProcessor

	group  *errgroup.Group
	cancel context.CancelFunc
}

// NewEngine allocates every ring and thread the split-brained runtime
// needs at sampleRate, including the janitor and monitor, which run their
// own goroutines outside the errgroup.
func NewEngine(sampleRate float32, decode persistence.SampleDecoder) *Engine {
	cmdRing := hexodsp.NewCommandRing()
	dropRing := hexodsp.NewDropRing()
	feedback := hexodsp.NewFeedbackStore()
	errq := errqueue.New(errqueue.DefaultCapacity)

	monitor := hexodsp.NewMonitorProcessor()
	cfg := hexodsp.NewNodeConfigurator(cmdRing, dropRing, feedback, sampleRate, hexodsp.NopObserver{})
	exec := hexodsp.NewNodeExecutor(cmdRing, dropRing, feedback, monitor, sampleRate)

	ctx, cancel := context.WithCancel(context.Background())
	group, _ := errgroup.WithContext(ctx)

	janitor := hexodsp.NewJanitor(dropRing, nil)

	e := &Engine{
		Cfg:     cfg,
		Exec:    exec,
		Errq:    errq,
		Loader:  persistence.NewLoader(decode, errq),
		Lua:     scripting.New(cfg),
		janitor: janitor,
		monitor: monitor,
		group:   group,
		cancel:  cancel,
	}
	return e
}

// Stop shuts down the janitor goroutine and the monitor's drain goroutine,
// then releases the Lua state.
func (e *Engine) Stop() error {
	e.cancel()
	e.janitor.Stop()
	e.monitor.Stop()
	e.Lua.Close()
	return e.group.Wait()
}

// LoadPatch replays a previously saved JSON document against Cfg.
func (e *Engine) LoadPatch(raw []byte) (*persistence.Document, error) {
	return persistence.Load(e.Cfg, e.Loader, raw)
}

// SavePatch snapshots Cfg's current state into a versioned JSON document.
func (e *Engine) SavePatch() ([]byte, error) {
	return persistence.Save(e.Cfg, nil, nil, nil, nil)
}
