// terminal.go - raw-mode stdin for the interactive REPL.
//
// Grounded on terminal_host.go's Start/Stop lifecycle: put the real
// terminal into raw mode with golang.org/x/term so the OS stops
// line-buffering and echoing, then translate CR/DEL the same way before
// handing bytes to the line reader. Only engaged when stdin is an actual
// TTY (term.IsTerminal) - piped input (scripts, tests) is left untouched,
// same as terminal_host.go being "only instantiated in main.go for
// interactive use, never in tests".
//
// Copyright (c) 2026 The HexoDSP-core Authors
// License: GPLv3 or later
package main

import (
	"io"
	"os"

	"golang.org/x/term"
)

// rawStdin puts fd into raw mode (if it is a terminal) and returns an
// io.Reader that translates CR to LF and DEL to BS as bytes are read, plus
// a restore func that must be called before the process exits. If fd is
// not a terminal, restore is a no-op and the returned reader is fd itself.
func rawStdin(f *os.File) (io.Reader, func()) {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return f, func() {}
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return f, func() {}
	}

	restore := func() { _ = term.Restore(fd, oldState) }
	return &crTranslatingReader{r: f}, restore
}

// crTranslatingReader rewrites the byte translations raw mode needs: a
// terminal in raw mode sends CR (0x0D) for Enter and, on many terminals,
// DEL (0x7F) for Backspace, neither of which bufio.Scanner's line-splitter
// recognizes.
type crTranslatingReader struct {
	r io.Reader
}

func (t *crTranslatingReader) Read(p []byte) (int, error) {
	n, err := t.r.Read(p)
	for i := 0; i < n; i++ {
		switch p[i] {
		case '\r':
			p[i] = '\n'
		case 0x7F:
			p[i] = 0x08
		}
	}
	return n, err
}
