//go:build headless

// monitor_ui_headless.go - no-op scope window for headless/CI builds.
//
// Copyright (c) 2026 The HexoDSP-core Authors
// License: GPLv3 or later
package main

import "github.com/hexodsp/hexodsp"

type monitorUI struct{}

func newMonitorUI(cfg *hexodsp.NodeConfigurator) *monitorUI { return &monitorUI{} }

func (ui *monitorUI) Run() error { return nil }
