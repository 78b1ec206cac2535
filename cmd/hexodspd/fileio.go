// fileio.go - small os.ReadFile/WriteFile wrappers returning hexodsp's
// typed IOError so the REPL and persistence round-trip speak one error
// vocabulary (§7).
//
// Copyright (c) 2026 The HexoDSP-core Authors
// License: GPLv3 or later
package main

import (
	"os"

	"github.com/hexodsp/hexodsp"
)

func readFile(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &hexodsp.IOError{Msg: err.Error()}
	}
	return raw, nil
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &hexodsp.IOError{Msg: err.Error()}
	}
	return nil
}
