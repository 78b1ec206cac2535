// main.go - hexodspd: a standalone daemon hosting the split-brained DSP
// graph runtime.
//
// Copyright (c) 2026 The HexoDSP-core Authors
// License: GPLv3 or later
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hexodsp/hexodsp"
)

func main() {
	sampleRate := flag.Float64("samplerate", hexodsp.DefaultSampleRate, "audio output sample rate")
	channels := flag.Int("channels", 2, "number of output channels")
	script := flag.String("script", "", "Lua patch script to run on startup")
	scope := flag.Bool("scope", false, "open a monitor/scope window")
	flag.Parse()

	eng := NewEngine(float32(*sampleRate), decodeRawFloat32)
	defer func() {
		if err := eng.Stop(); err != nil {
			fmt.Fprintf(os.Stderr, "hexodspd: shutdown: %v\n", err)
		}
	}()

	player, err := newOtoPlayer(int(*sampleRate), *channels)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hexodspd: audio init: %v\n", err)
		os.Exit(1)
	}
	player.setup(eng.Exec)
	player.Start()
	defer player.Close()

	if *script != "" {
		raw, err := readFile(*script)
		if err != nil {
			fmt.Fprintf(os.Stderr, "hexodspd: %v\n", err)
			os.Exit(1)
		}
		if err := eng.Lua.Run(string(raw)); err != nil {
			fmt.Fprintf(os.Stderr, "hexodspd: %v\n", err)
			os.Exit(1)
		}
	}

	if *scope {
		go func() {
			if err := newMonitorUI(eng.Cfg).Run(); err != nil {
				fmt.Fprintf(os.Stderr, "hexodspd: scope: %v\n", err)
			}
		}()
	}

	stdin, restoreTerm := rawStdin(os.Stdin)
	defer restoreTerm()
	NewRepl(eng, stdin, os.Stdout).Run()
}
