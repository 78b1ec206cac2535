// atom.go - SAtom: the untyped parameter/atom value carried across the
// configurator/executor boundary.
//
// Copyright (c) 2026 The HexoDSP-core Authors
// License: GPLv3 or later

package hexodsp

// SAtom is implemented by every value that can live in a Program's atoms[]
// slot or be smoothed into a params[] slot. A param port is either a
// smoothed scalar (ParamAtom) or a non-smoothed atom (everything else);
// never both at the same port (enforced by the registry, §3 invariant).
type SAtom interface {
	isSAtom()
	// Clone returns an independent copy safe to hand to the drop channel
	// without aliasing the original (AudioSample shares its backing slice
	// via Arc-equivalent semantics and is the one exception).
	Clone() SAtom
}

// ParamAtom carries a smoothed float parameter value (e.g. a knob position).
type ParamAtom struct{ Value float32 }

func (ParamAtom) isSAtom()         {}
func (a ParamAtom) Clone() SAtom   { return a }

// SettingAtom carries a discrete integer setting (e.g. a waveform enum).
type SettingAtom struct{ Value int64 }

func (SettingAtom) isSAtom()       {}
func (a SettingAtom) Clone() SAtom { return a }

// StrAtom carries a string atom (e.g. a file path pending load).
type StrAtom struct{ Value string }

func (StrAtom) isSAtom()         {}
func (a StrAtom) Clone() SAtom   { return a }

// MicroSampleAtom carries a small fixed-length inline waveform (8 samples),
// used by nodes that accept a tiny drawn shape rather than a loaded file.
type MicroSampleAtom struct{ Value [8]float32 }

func (MicroSampleAtom) isSAtom()       {}
func (a MicroSampleAtom) Clone() SAtom { return a }

// AudioSampleAtom carries a named sample reference and, once loaded, the
// decoded payload. Payload is shared (never copied) across Clone calls and
// across Program generations, matching the "Arc-shared read-only" ownership
// described in §3 - only the *pointer* is atomically swapped in by the
// loader goroutine, the slice itself is immutable once published.
type AudioSampleAtom struct {
	Name    string
	Payload *[]float32 // nil until the async loader publishes it
}

func (AudioSampleAtom) isSAtom() {}
func (a AudioSampleAtom) Clone() SAtom {
	return AudioSampleAtom{Name: a.Name, Payload: a.Payload}
}

// DefaultAtomFor returns the zero-value atom for a port kind, used when a
// NodeInstance is created but no explicit value has been set yet.
func DefaultAtomFor(kind string) SAtom {
	switch kind {
	case "setting":
		return SettingAtom{}
	case "str":
		return StrAtom{}
	case "micro_sample":
		return MicroSampleAtom{}
	case "audio_sample":
		return AudioSampleAtom{}
	default:
		return ParamAtom{}
	}
}
