// loader.go - Loader: async audio-sample loading for AudioSampleAtom (§4.2,
// §7).
//
// Grounded on media_loader.go's generation-counter async-load pattern
// (kick off a goroutine, stamp results with a generation so a superseded
// load is silently discarded), reworked here from ROM/media assets keyed by
// a path into the PCM payload an AudioSampleAtom shares read-only once
// loaded.
//
// Copyright (c) 2026 The HexoDSP-core Authors
// License: GPLv3 or later
package persistence

import (
	"os"
	"sync"
	"sync/atomic"

	"github.com/hexodsp/hexodsp"
	"github.com/hexodsp/hexodsp/errqueue"
)

// SampleDecoder turns raw file bytes into interleaved float32 PCM. Callers
// supply their own (WAV, FLAC, ...); Loader itself is format-agnostic.
type SampleDecoder func(raw []byte) ([]float32, error)

// Loader issues one goroutine per requested path and reports failures on
// errq rather than ever blocking the frontend thread that requested the
// load (§4.2 "set_param... Audio sample atoms carrying a path and no
// payload cause an out-of-thread load attempt; failures surface via an
// error queue").
type Loader struct {
	decode SampleDecoder
	errq   *errqueue.Queue
	gen    atomic.Uint64
	latest sync.Map // ParamId -> uint64: generation of the newest load per atom
}

// NewLoader wires a Loader to decode and errq. errq may be nil, in which
// case failures are simply dropped (tests that don't care about the error
// queue can use this).
func NewLoader(decode SampleDecoder, errq *errqueue.Queue) *Loader {
	return &Loader{decode: decode, errq: errq}
}

// LoadAsync reads and decodes path on its own goroutine, then calls back
// into cfg.SetParam with the loaded AudioSampleAtom. A stale load (gen
// mismatch, i.e. the atom was reassigned before this load finished) is
// silently discarded rather than clobbering a newer value.
func (l *Loader) LoadAsync(cfg *hexodsp.NodeConfigurator, id hexodsp.ParamId, path string) {
	myGen := l.gen.Add(1)
	l.latest.Store(id, myGen)
	go func() {
		raw, err := os.ReadFile(path)
		if err != nil {
			l.fail(path, err)
			return
		}
		samples, err := l.decode(raw)
		if err != nil {
			l.fail(path, err)
			return
		}
		if cur, _ := l.latest.Load(id); cur != myGen {
			return
		}
		payload := samples
		_ = cfg.SetParam(id, hexodsp.AudioSampleAtom{Name: path, Payload: &payload})
	}()
}

func (l *Loader) fail(path string, err error) {
	if l.errq != nil {
		l.errq.Push("sample load failed: " + path + ": " + err.Error())
	}
}
