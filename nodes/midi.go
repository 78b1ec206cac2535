// midi.go - MidiP/MidiCC: MIDI-driven pitch and control-change sources.
//
// Copyright (c) 2026 The HexoDSP-core Authors
// License: GPLv3 or later
package nodes

import "github.com/hexodsp/hexodsp"

func init() {
	hexodsp.RegisterNode(hexodsp.RegistryEntry{
		Kind:    "MidiP",
		New:     func() hexodsp.Node { return &MidiP{} },
		Outputs: []string{"freq", "gate"},
	})
	hexodsp.RegisterNode(hexodsp.RegistryEntry{
		Kind:    "MidiCC",
		New:     func() hexodsp.Node { return &MidiCC{} },
		Atoms:   []hexodsp.PortInfo{atomPort("cc", "setting")},
		Outputs: []string{"sig"},
	})
}

const (
	midiStatusNoteOff = 0x80
	midiStatusNoteOn  = 0x90
	midiStatusCC      = 0xB0
)

// MidiP tracks the most recent Note On's pitch (as a 1V/oct-style Hz value
// via equal temperament from A4=440Hz) and gate state from the executor's
// injected MIDI ring. Held until a Note Off for the same key arrives.
type MidiP struct {
	freq float32
	gate float32
	note byte // key of the most recent Note On
}

func (n *MidiP) SetSampleRate(float32) {}
func (n *MidiP) Reset()                { n.freq = 0; n.gate = 0; n.note = 0 }

func (n *MidiP) Process(actx hexodsp.AudioContext, ectx hexodsp.ExecContext, _ hexodsp.NodeContext, _ []hexodsp.SAtom, _ []hexodsp.ProcBuf, outputs []hexodsp.ProcBuf, leds *hexodsp.NodeLEDs) {
	if ectx.Midi != nil {
		for {
			ev, ok := ectx.Midi.Pop()
			if !ok {
				break
			}
			n.applyEvent(ev)
		}
	}
	freqOut, gateOut := outputs[0], outputs[1]
	for i := 0; i < actx.Frames; i++ {
		freqOut[i] = n.freq
		gateOut[i] = n.gate
	}
	leds.SetLED(n.gate)
	leds.SetPhase(n.freq)
}

func (n *MidiP) applyEvent(ev hexodsp.MidiEvent) {
	switch ev.Status & 0xF0 {
	case midiStatusNoteOn:
		if ev.Data2 == 0 {
			if ev.Data1 == n.note {
				n.gate = 0
			}
			return
		}
		n.freq = noteToFreq(ev.Data1)
		n.note = ev.Data1
		n.gate = 1
	case midiStatusNoteOff:
		if ev.Data1 == n.note {
			n.gate = 0
		}
	}
}

func noteToFreq(note byte) float32 {
	const twelfthRoot2 = 1.0594630943592953
	semitones := int(note) - 69
	f := 440.0
	for i := 0; i < semitones; i++ {
		f *= twelfthRoot2
	}
	for i := 0; i > semitones; i-- {
		f /= twelfthRoot2
	}
	return float32(f)
}

// MidiCC tracks the most recent value (0..1) of one controller number,
// selected by its "cc" setting atom.
type MidiCC struct {
	value float32
}

func (n *MidiCC) SetSampleRate(float32) {}
func (n *MidiCC) Reset()                { n.value = 0 }

func (n *MidiCC) Process(actx hexodsp.AudioContext, ectx hexodsp.ExecContext, _ hexodsp.NodeContext, atoms []hexodsp.SAtom, _ []hexodsp.ProcBuf, outputs []hexodsp.ProcBuf, leds *hexodsp.NodeLEDs) {
	want := int64(-1)
	if len(atoms) > 0 {
		if s, ok := atoms[0].(hexodsp.SettingAtom); ok {
			want = s.Value
		}
	}
	if ectx.Midi != nil {
		for {
			ev, ok := ectx.Midi.Pop()
			if !ok {
				break
			}
			if ev.Status&0xF0 == midiStatusCC && int64(ev.Data1) == want {
				n.value = float32(ev.Data2) / 127
			}
		}
	}
	out := outputs[0]
	for i := 0; i < actx.Frames; i++ {
		out[i] = n.value
	}
	leds.SetLED(n.value)
}
