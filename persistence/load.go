// load.go - Load: the document -> NodeConfigurator replay path (§6, §7).
//
// Copyright (c) 2026 The HexoDSP-core Authors
// License: GPLv3 or later
package persistence

import (
	"encoding/json"

	"github.com/hexodsp/hexodsp"
)

// Load decodes raw as a Document and replays it onto cfg entirely through
// the public NodeConfigurator API, so a malformed document can never leave
// cfg partially mutated by anything other than valid create_node/set_param
// calls (§7 "All fallible operations are total and leave the configurator
// consistent on error").
func Load(cfg *hexodsp.NodeConfigurator, loader *Loader, raw []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &hexodsp.DeserializationError{Msg: err.Error()}
	}
	if doc.Version != Version1 && doc.Version != CurrentVersion {
		return nil, &hexodsp.BadVersionError{Got: doc.Version}
	}

	for _, p := range doc.Params {
		id := hexodsp.NewNodeId(p.NodeName, p.Instance)
		if _, err := cfg.CreateNode(id); err != nil {
			return nil, err
		}
		port, ok := cfg.ParamPortIndex(id, p.ParamName)
		if !ok {
			return nil, &hexodsp.UnknownParamIdError{Node: id, Param: p.ParamName}
		}

		value := p.Value
		if doc.Version == CurrentVersion {
			if info, ok := cfg.PortInfoFor(id, port); ok {
				value = info.Denormalize(p.Value)
			}
		}

		paramId := hexodsp.NewParamId(id, port, p.ParamName, false)
		if err := cfg.SetParam(paramId, hexodsp.ParamAtom{Value: value}); err != nil {
			return nil, err
		}
		if p.Modamt != nil {
			if _, err := cfg.SetParamModamt(paramId, p.Modamt); err != nil {
				return nil, err
			}
		}
	}

	for _, a := range doc.Atoms {
		id := hexodsp.NewNodeId(a.NodeName, a.Instance)
		if _, err := cfg.CreateNode(id); err != nil {
			return nil, err
		}
		port, ok := cfg.AtomPortIndex(id, a.ParamName)
		if !ok {
			return nil, &hexodsp.UnknownParamIdError{Node: id, Param: a.ParamName}
		}
		atomId := hexodsp.NewParamId(id, port, a.ParamName, true)
		if err := cfg.SetParam(atomId, a.Atom); err != nil {
			return nil, err
		}

		if sample, ok := a.Atom.(hexodsp.AudioSampleAtom); ok && sample.Payload == nil && sample.Name != "" && loader != nil {
			loader.LoadAsync(cfg, atomId, sample.Name)
		}
	}

	return &doc, nil
}
