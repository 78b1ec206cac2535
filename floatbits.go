// floatbits.go - float32<->uint32 bit helpers for atomic LED/phase storage.
//
// Copyright (c) 2026 The HexoDSP-core Authors
// License: GPLv3 or later

package hexodsp

import "math"

func float32bits(v float32) uint32    { return math.Float32bits(v) }
func float32frombits(b uint32) float32 { return math.Float32frombits(b) }
