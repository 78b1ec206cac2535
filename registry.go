// registry.go - the node-kind registry: NodeId.Kind -> factory + port
// metadata (§3, §4.1).
//
// Grounded on coprocessor_manager.go's createWorker dispatch, which
// switches a small closed set of CPU-type constants to per-architecture
// constructors (createIE32Worker, create6502Worker, ...). A DSP node's kind
// set is open-ended and string-keyed rather than a fixed small enum, so the
// natural generalization of that switch is a map populated by each
// concrete node package's init(), the same self-registration idiom the Go
// standard library uses for image codecs and sql drivers.
//
// Copyright (c) 2026 The HexoDSP-core Authors
// License: GPLv3 or later

package hexodsp

// NodeFactory builds a fresh, zeroed Node instance for one kind.
type NodeFactory func() Node

// RegistryEntry is everything the configurator and topology compiler need
// to know about a node kind without importing the concrete implementation.
type RegistryEntry struct {
	Kind    string
	New     NodeFactory
	Inputs  []PortInfo
	Outputs []string
	Atoms   []PortInfo
}

var nodeRegistry = map[string]RegistryEntry{}

// RegisterNode adds kind to the global registry. Concrete node packages
// call this from an init() function; registering the same kind twice is a
// programming error and panics immediately at package-init time rather than
// surfacing as a confusing runtime failure later (mirrors database/sql's
// Register behavior for duplicate driver names).
func RegisterNode(e RegistryEntry) {
	if _, exists := nodeRegistry[e.Kind]; exists {
		panic("hexodsp: node kind already registered: " + e.Kind)
	}
	nodeRegistry[e.Kind] = e
}

// lookupNode returns the registry entry for kind, or UnknownNodeError.
func lookupNode(kind string) (RegistryEntry, error) {
	e, ok := nodeRegistry[kind]
	if !ok {
		return RegistryEntry{}, &UnknownNodeError{Name: kind}
	}
	return e, nil
}
