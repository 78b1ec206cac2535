//go:build !headless

// monitor_ui_ebiten.go - a small scope window plotting the six monitor taps
// as min/max waveform columns, one per pixel column.
//
// Grounded on video_backend_ebiten.go's Update/Draw/Layout trio and its
// ebiten.RunGame bring-up; simplified down from a full framebuffer blit to
// six stacked line plots since hexodspd has no pixel video chip to mirror.
//
// Copyright (c) 2026 The HexoDSP-core Authors
// License: GPLv3 or later
package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/hexodsp/hexodsp"
)

const (
	scopeWidth  = 512
	scopeHeight = 480
	scopeTapH   = scopeHeight / 6
)

// monitorUI is an ebiten.Game pulling GetMinMaxMonitorSamples from a
// NodeConfigurator once per frame; it never touches the audio thread.
type monitorUI struct {
	cfg *hexodsp.NodeConfigurator
}

func newMonitorUI(cfg *hexodsp.NodeConfigurator) *monitorUI { return &monitorUI{cfg: cfg} }

// Run opens the scope window and blocks until it is closed.
func (ui *monitorUI) Run() error {
	ebiten.SetWindowSize(scopeWidth, scopeHeight)
	ebiten.SetWindowTitle("hexodspd scope")
	ebiten.SetWindowResizable(true)
	return ebiten.RunGame(ui)
}

func (ui *monitorUI) Update() error { return nil }

func (ui *monitorUI) Layout(outsideWidth, outsideHeight int) (int, int) {
	return scopeWidth, scopeHeight
}

func (ui *monitorUI) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	for tap := 0; tap < 6; tap++ {
		samples := ui.cfg.GetMinMaxMonitorSamples(tap)
		baseY := tap*scopeTapH + scopeTapH/2
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("tap %d", tap), 4, tap*scopeTapH)
		n := len(samples.Min)
		for x := 0; x < n && x < scopeWidth; x++ {
			lo := samples.Min[x]
			hi := samples.Max[x]
			y0 := baseY - int(hi*float32(scopeTapH/2))
			y1 := baseY - int(lo*float32(scopeTapH/2))
			if y0 == y1 {
				y1 = y0 + 1
			}
			for y := y0; y < y1; y++ {
				screen.Set(x, y, color.RGBA{R: 0x30, G: 0xd0, B: 0x80, A: 0xff})
			}
		}
	}
}
