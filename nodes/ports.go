// Package nodes provides the concrete DSP unit implementations registered
// against the core's node registry (§3.1, §4.3).
//
// Copyright (c) 2026 The HexoDSP-core Authors
// License: GPLv3 or later
package nodes

import "github.com/hexodsp/hexodsp"

// param is a small constructor helper so each node file's registration
// reads as a table rather than repeated struct literals.
func param(name string, def, min, max float32) hexodsp.PortInfo {
	return hexodsp.PortInfo{Name: name, Default: def, Min: min, Max: max, Step: 0}
}

func atomPort(name, kind string) hexodsp.PortInfo {
	return hexodsp.PortInfo{Name: name, IsAtom: true, AtomKind: kind}
}
