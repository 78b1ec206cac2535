//go:build headless

// audio_backend_headless.go - discard-everything stand-in for otoPlayer,
// grounded on audio_backend_headless.go's build-tag stub, used for CI and
// scripted/batch runs that never open a real audio device.
//
// Copyright (c) 2026 The HexoDSP-core Authors
// License: GPLv3 or later
package main

import (
	"sync/atomic"

	"github.com/hexodsp/hexodsp"
)

type otoPlayer struct {
	exec    atomic.Pointer[hexodsp.NodeExecutor]
	chans   int
	started bool
}

func newOtoPlayer(sampleRate, channels int) (*otoPlayer, error) {
	return &otoPlayer{chans: channels}, nil
}

func (op *otoPlayer) setup(exec *hexodsp.NodeExecutor) { op.exec.Store(exec) }

func (op *otoPlayer) Start() { op.started = true }

func (op *otoPlayer) Close() { op.started = false }
