// observer.go - the frontend-thread mutation-notification hook (§4.2).
//
// Copyright (c) 2026 The HexoDSP-core Authors
// License: GPLv3 or later

package hexodsp

// Observer is notified of NodeConfigurator mutations so a UI can invalidate
// derived state. All callbacks run synchronously on the frontend thread
// that called the mutating method; none may block the audio thread because
// none are ever invoked from it.
type Observer interface {
	UpdateProp(id NodeId)
	UpdateMonitor()
	UpdateParam(id ParamId)
	UpdateMatrix()
	UpdateAll()
}

// NopObserver implements Observer with no-op methods, the default for a
// NodeConfigurator built without an explicit UI attached (headless use,
// tests, the scripting frontend before it wires its own).
type NopObserver struct{}

func (NopObserver) UpdateProp(NodeId)   {}
func (NopObserver) UpdateMonitor()      {}
func (NopObserver) UpdateParam(ParamId) {}
func (NopObserver) UpdateMatrix()       {}
func (NopObserver) UpdateAll()          {}
