// commands.go - the configurator -> executor command ring (§4.4, §5).
//
// Copyright (c) 2026 The HexoDSP-core Authors
// License: GPLv3 or later

package hexodsp

import "github.com/hexodsp/hexodsp/ringbuffer"

// Command is the tagged union of messages the configurator pushes into the
// command ring. A NewProg message marks a swap boundary: every
// ParamUpdate/ModamtUpdate/AtomUpdate drained before it applies to the old
// Program, everything after applies to the new one (§5).
type Command struct {
	Kind CommandKind

	// NewProg
	Prog        *Program
	CopyOldOut  bool

	// ParamUpdate
	InputIdx int
	Value    float32

	// AtomUpdate
	AtomIdx int
	Atom    SAtom

	// ModamtUpdate
	ModIdx int
	Amount float32

	// SetMonitor
	MonitorBufs [6]int

	// InjectMidi
	Midi MidiEvent
}

type CommandKind int

const (
	CmdNewProg CommandKind = iota
	CmdParamUpdate
	CmdAtomUpdate
	CmdModamtUpdate
	CmdSetMonitor
	CmdInjectMidi
)

// CommandRing is the SPSC ring carrying Command values from the
// configurator thread to the executor thread.
type CommandRing struct{ r *ringbuffer.Ring[Command] }

func NewCommandRing() *CommandRing {
	return &CommandRing{r: ringbuffer.New[Command](CommandRingCapacity)}
}

// Push enqueues cmd; on overflow it is silently dropped (§5, §9 open
// question: no resync is attempted, the next full upload_prog overwrites
// everything - see DESIGN.md).
func (c *CommandRing) Push(cmd Command) bool { return c.r.Push(cmd) }

func (c *CommandRing) pop() (Command, bool) { return c.r.Pop() }

// MidiEvent is the minimal payload MidiP/MidiCC nodes consume.
type MidiEvent struct {
	Status byte
	Data1  byte
	Data2  byte
}

// MidiRing is a small SPSC ring feeding the audio thread's MidiP/MidiCC
// nodes, drained once per block from InjectMidi commands (§4.4 step 1).
// Exported so node implementations in other packages (e.g. "nodes") can
// drain it from ExecContext.Midi inside Process.
type MidiRing struct{ r *ringbuffer.Ring[MidiEvent] }

func newMidiRing(capacity int) *MidiRing { return &MidiRing{r: ringbuffer.New[MidiEvent](capacity)} }

func (m *MidiRing) push(e MidiEvent) bool { return m.r.Push(e) }

// Pop drains the next injected MIDI event, if any.
func (m *MidiRing) Pop() (MidiEvent, bool) { return m.r.Pop() }
