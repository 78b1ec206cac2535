// atom.go - tagged-union encode/decode for SAtom, per §6's
// ["i",int] / ["p",f32] / ["s",string] / ["as",path] / ["ms",8×f32] atoms.
//
// Copyright (c) 2026 The HexoDSP-core Authors
// License: GPLv3 or later
package persistence

import (
	"encoding/json"

	"github.com/hexodsp/hexodsp"
)

func encodeAtom(a hexodsp.SAtom) (interface{}, error) {
	switch v := a.(type) {
	case hexodsp.SettingAtom:
		return []interface{}{"i", v.Value}, nil
	case hexodsp.ParamAtom:
		return []interface{}{"p", v.Value}, nil
	case hexodsp.StrAtom:
		return []interface{}{"s", v.Value}, nil
	case hexodsp.AudioSampleAtom:
		return []interface{}{"as", v.Name}, nil
	case hexodsp.MicroSampleAtom:
		return []interface{}{"ms", v.Value[:]}, nil
	default:
		return nil, &hexodsp.InvalidAtomError{Tag: "<unknown Go type>"}
	}
}

func decodeAtom(raw json.RawMessage) (hexodsp.SAtom, error) {
	var pair []json.RawMessage
	if err := json.Unmarshal(raw, &pair); err != nil || len(pair) != 2 {
		return nil, &hexodsp.DeserializationError{Msg: "atom must be a 2-element tagged array"}
	}
	var tag string
	if err := json.Unmarshal(pair[0], &tag); err != nil {
		return nil, &hexodsp.DeserializationError{Msg: "atom tag not a string"}
	}

	switch tag {
	case "i":
		var n int64
		if err := json.Unmarshal(pair[1], &n); err != nil {
			return nil, &hexodsp.DeserializationError{Msg: "bad \"i\" atom payload"}
		}
		return hexodsp.SettingAtom{Value: n}, nil
	case "p":
		var f float32
		if err := json.Unmarshal(pair[1], &f); err != nil {
			return nil, &hexodsp.DeserializationError{Msg: "bad \"p\" atom payload"}
		}
		return hexodsp.ParamAtom{Value: f}, nil
	case "s":
		var s string
		if err := json.Unmarshal(pair[1], &s); err != nil {
			return nil, &hexodsp.DeserializationError{Msg: "bad \"s\" atom payload"}
		}
		return hexodsp.StrAtom{Value: s}, nil
	case "as":
		var path string
		if err := json.Unmarshal(pair[1], &path); err != nil {
			return nil, &hexodsp.DeserializationError{Msg: "bad \"as\" atom payload"}
		}
		return hexodsp.AudioSampleAtom{Name: path}, nil
	case "ms":
		var vals []float32
		if err := json.Unmarshal(pair[1], &vals); err != nil || len(vals) != 8 {
			return nil, &hexodsp.DeserializationError{Msg: "\"ms\" atom must carry 8 floats"}
		}
		var m hexodsp.MicroSampleAtom
		copy(m.Value[:], vals)
		return m, nil
	default:
		return nil, &hexodsp.InvalidAtomError{Tag: tag}
	}
}
