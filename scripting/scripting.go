// Package scripting exposes the NodeConfigurator API to a gopher-lua
// script, the block-language visual-programming subsystem's textual
// stand-in named in §1: a patch can be built by a Lua script calling
// create_node/set_param/connect/upload exactly as a graphical editor's
// generated code would.
//
// Copyright (c) 2026 The HexoDSP-core Authors
// License: GPLv3 or later
package scripting

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/hexodsp/hexodsp"
)

// Engine binds one Lua state to one NodeConfigurator for the duration of a
// script run. It is frontend-thread only, like the configurator itself.
type Engine struct {
	L   *lua.LState
	cfg *hexodsp.NodeConfigurator

	nodes []hexodsp.NodeId
	seen  map[hexodsp.NodeId]bool
	edges []hexodsp.GraphEdge
}

// New creates an Engine bound to cfg and registers its Go functions as Lua
// globals.
func New(cfg *hexodsp.NodeConfigurator) *Engine {
	e := &Engine{L: lua.NewState(), cfg: cfg, seen: map[hexodsp.NodeId]bool{}}
	e.L.SetGlobal("create_node", e.L.NewFunction(e.luaCreateNode))
	e.L.SetGlobal("set_param", e.L.NewFunction(e.luaSetParam))
	e.L.SetGlobal("connect", e.L.NewFunction(e.luaConnect))
	e.L.SetGlobal("upload", e.L.NewFunction(e.luaUpload))
	return e
}

// Close releases the underlying Lua state.
func (e *Engine) Close() { e.L.Close() }

// Run executes a Lua script against the bound configurator.
func (e *Engine) Run(script string) error {
	if err := e.L.DoString(script); err != nil {
		return fmt.Errorf("hexodsp/scripting: %w", err)
	}
	return nil
}

// luaCreateNode(kind, instance) -> nothing; errors raise a Lua error.
func (e *Engine) luaCreateNode(L *lua.LState) int {
	kind := L.CheckString(1)
	instance := L.CheckInt(2)
	id := hexodsp.NewNodeId(kind, instance)
	if _, err := e.cfg.CreateNode(id); err != nil {
		L.RaiseError("create_node(%s, %d): %v", kind, instance, err)
		return 0
	}
	if !e.seen[id] {
		e.seen[id] = true
		e.nodes = append(e.nodes, id)
	}
	return 0
}

// luaSetParam(kind, instance, port, value) -> nothing.
func (e *Engine) luaSetParam(L *lua.LState) int {
	kind := L.CheckString(1)
	instance := L.CheckInt(2)
	port := L.CheckInt(3)
	value := float32(L.CheckNumber(4))

	id := hexodsp.NewNodeId(kind, instance)
	paramId := hexodsp.NewParamId(id, port, "", false)
	if err := e.cfg.SetParam(paramId, hexodsp.ParamAtom{Value: value}); err != nil {
		L.RaiseError("set_param(%s, %d, %d): %v", kind, instance, port, err)
	}
	return 0
}

// luaConnect(src_kind, src_instance, src_output, dst_kind, dst_instance,
// dst_input) -> nothing; queues an edge for the next upload() call.
func (e *Engine) luaConnect(L *lua.LState) int {
	src := hexodsp.NewNodeId(L.CheckString(1), L.CheckInt(2))
	srcOut := L.CheckInt(3)
	dst := hexodsp.NewNodeId(L.CheckString(4), L.CheckInt(5))
	dstIn := L.CheckInt(6)

	e.edges = append(e.edges, hexodsp.GraphEdge{
		FromNode: src, FromPort: srcOut,
		ToNode: dst, ToPort: dstIn,
	})
	return 0
}

// luaUpload() -> nothing; compiles and uploads every node/edge accumulated
// so far, following the same RebuildNodePorts/AddProgNode/
// SetProgNodeExecConnection/UploadProg sequence any frontend must use (§6).
func (e *Engine) luaUpload(L *lua.LState) int {
	if err := e.Upload(); err != nil {
		L.RaiseError("upload(): %v", err)
	}
	return 0
}

// Upload is Upload()'s Go entry point, usable directly without going
// through Lua (e.g. from tests).
func (e *Engine) Upload() error {
	order, err := hexodsp.CompileTopology(e.nodes, e.edges)
	if err != nil {
		return err
	}
	prog, err := e.cfg.RebuildNodePorts(order, e.edges)
	if err != nil {
		return err
	}
	for _, id := range order {
		if err := e.cfg.AddProgNode(prog, id); err != nil {
			return err
		}
	}
	for _, edge := range e.edges {
		err := e.cfg.SetProgNodeExecConnection(prog,
			hexodsp.ParamDest{Node: edge.ToNode, Input: edge.ToPort},
			hexodsp.ParamSrc{Node: edge.FromNode, Output: edge.FromPort})
		if err != nil {
			return err
		}
	}
	return e.cfg.UploadProg(prog, false)
}
