// errors.go - typed errors returned by the configurator and topology compiler.
//
// Copyright (c) 2026 The HexoDSP-core Authors
// License: GPLv3 or later

package hexodsp

import "fmt"

// CycleDetectedError is returned by the topology compiler when the edge list
// contains a directed cycle not broken by an FbWr/FbRd pair.
type CycleDetectedError struct {
	Remaining []NodeId // nodes left after repeated leaf-first removal
}

func (e *CycleDetectedError) Error() string {
	return fmt.Sprintf("hexodsp: cycle detected among %d node(s)", len(e.Remaining))
}

// DuplicatedInputError is returned when a single (node, input) destination
// receives edges from two distinct outputs.
type DuplicatedInputError struct {
	Dest    NodeId
	Input   int
	Output1 NodeId
	Output2 NodeId
}

func (e *DuplicatedInputError) Error() string {
	return fmt.Sprintf("hexodsp: duplicated input %s[%d] fed by both %s and %s",
		e.Dest, e.Input, e.Output1, e.Output2)
}

// UnknownNodeError is returned when a persisted or scripted reference names a
// NodeId kind with no registry entry.
type UnknownNodeError struct {
	Name string
}

func (e *UnknownNodeError) Error() string { return fmt.Sprintf("hexodsp: unknown node %q", e.Name) }

// UnknownParamIdError is returned when a persisted param/atom name does not
// resolve against the node's registered ports.
type UnknownParamIdError struct {
	Node  NodeId
	Param string
}

func (e *UnknownParamIdError) Error() string {
	return fmt.Sprintf("hexodsp: unknown param %q on %s", e.Param, e.Node)
}

// BadVersionError is returned when a persisted document's VERSION field is
// outside the range this build understands.
type BadVersionError struct {
	Got int
}

func (e *BadVersionError) Error() string {
	return fmt.Sprintf("hexodsp: unsupported persistence version %d", e.Got)
}

// InvalidAtomError is returned when a tagged atom in a persisted document does
// not match one of the known tags ("i", "p", "s", "as", "ms").
type InvalidAtomError struct {
	Tag string
}

func (e *InvalidAtomError) Error() string { return fmt.Sprintf("hexodsp: invalid atom tag %q", e.Tag) }

// DeserializationError wraps a lower-level decode failure with context.
type DeserializationError struct {
	Msg string
}

func (e *DeserializationError) Error() string { return "hexodsp: deserialization: " + e.Msg }

// IOError wraps a file/stream failure encountered while loading or saving a
// patch. It never mutates configurator state.
type IOError struct {
	Msg string
}

func (e *IOError) Error() string { return "hexodsp: io: " + e.Msg }
