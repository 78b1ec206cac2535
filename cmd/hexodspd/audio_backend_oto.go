//go:build !headless

// audio_backend_oto.go - real-time audio output via oto v3.
//
// Grounded on audio_backend_oto.go's OtoPlayer: an atomic.Pointer handoff
// between the setup goroutine and oto's own callback goroutine, and a
// pre-allocated sample buffer reused across Read calls so the audio
// callback never allocates.
//
// Copyright (c) 2026 The HexoDSP-core Authors
// License: GPLv3 or later
package main

import (
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/ebitengine/oto/v3"

	"github.com/hexodsp/hexodsp"
)

// otoPlayer drives hexodsp's NodeExecutor from oto's callback goroutine.
// Everything under Read is the audio thread as far as hexodsp is
// concerned: no locks, no allocation once sampleBuf is sized.
type otoPlayer struct {
	ctx       *oto.Context
	player    *oto.Player
	exec      atomic.Pointer[hexodsp.NodeExecutor]
	chans     int
	sampleBuf []float32
	chanBufs  [][]float32
	started   bool
	mutex     sync.Mutex
}

func newOtoPlayer(sampleRate, channels int) (*otoPlayer, error) {
	opts := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatFloat32LE,
		BufferSize:   4,
	}
	ctx, ready, err := oto.NewContext(opts)
	if err != nil {
		return nil, err
	}
	<-ready
	return &otoPlayer{ctx: ctx, chans: channels}, nil
}

func (op *otoPlayer) setup(exec *hexodsp.NodeExecutor) {
	op.mutex.Lock()
	defer op.mutex.Unlock()

	op.exec.Store(exec)
	op.player = op.ctx.NewPlayer(op)
	op.sampleBuf = make([]float32, 4096*op.chans)
	op.chanBufs = make([][]float32, op.chans)
	for i := range op.chanBufs {
		op.chanBufs[i] = make([]float32, hexodsp.MaxBlockSize)
	}
}

// Read implements io.Reader for oto.Player: it renders blocks of at most
// MaxBlockSize frames until p is full, interleaving channels itself since
// hexodsp's Render hands back planar buffers.
func (op *otoPlayer) Read(p []byte) (n int, err error) {
	exec := op.exec.Load()
	if exec == nil {
		for i := range p {
			p[i] = 0
		}
		return len(p), nil
	}

	frameBytes := 4 * op.chans
	totalFrames := len(p) / frameBytes
	if cap(op.sampleBuf) < totalFrames*op.chans {
		op.sampleBuf = make([]float32, totalFrames*op.chans)
	}
	samples := op.sampleBuf[:totalFrames*op.chans]

	rendered := 0
	for rendered < totalFrames {
		block := totalFrames - rendered
		if block > hexodsp.MaxBlockSize {
			block = hexodsp.MaxBlockSize
		}
		for c := range op.chanBufs {
			op.chanBufs[c] = op.chanBufs[c][:block]
		}
		exec.Render(block, op.chanBufs)
		for f := 0; f < block; f++ {
			for c := 0; c < op.chans; c++ {
				samples[(rendered+f)*op.chans+c] = op.chanBufs[c][f]
			}
		}
		rendered += block
	}

	copy(p, (*[1 << 30]byte)(unsafe.Pointer(&samples[0]))[:len(p)])
	return len(p), nil
}

func (op *otoPlayer) Start() {
	op.mutex.Lock()
	defer op.mutex.Unlock()
	if !op.started && op.player != nil {
		op.player.Play()
		op.started = true
	}
}

func (op *otoPlayer) Close() {
	op.mutex.Lock()
	defer op.mutex.Unlock()
	if op.player != nil {
		op.player.Close()
		op.player = nil
	}
	op.started = false
}
