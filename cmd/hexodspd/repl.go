// repl.go - interactive line-mode console for live set_param/monitor
// commands.
//
// Reads whatever io.Reader main.go hands it - a raw-mode-wrapped stdin from
// terminal.go when attached to a real terminal, or a plain file/pipe
// otherwise. Simplified from terminal_host.go's byte-at-a-time MMIO routing
// down to line-buffered commands since hexodspd has no guest terminal
// device to emulate - only a human operator typing commands.
//
// Copyright (c) 2026 The HexoDSP-core Authors
// License: GPLv3 or later
package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hexodsp/hexodsp"
)

// Repl reads whitespace-separated commands from r and drives an Engine.
// Recognized commands:
//
//	create <kind> <instance>
//	param <kind> <instance> <port> <value>
//	lua <file>
//	monitor <kind> <instance> <in0> <in1> <in2> <out0> <out1> <out2>
//	led <kind> <instance>
//	errors
//	save <file>
//	load <file>
//	quit
type Repl struct {
	eng *Engine
	in  *bufio.Scanner
	out io.Writer
}

func NewRepl(eng *Engine, r io.Reader, w io.Writer) *Repl {
	return &Repl{eng: eng, in: bufio.NewScanner(r), out: w}
}

// Run processes commands until EOF or a "quit" line.
func (rl *Repl) Run() {
	fmt.Fprintln(rl.out, "hexodspd ready; type 'quit' to exit")
	for rl.in.Scan() {
		line := strings.TrimSpace(rl.in.Text())
		if line == "" {
			continue
		}
		if line == "quit" {
			return
		}
		if err := rl.dispatch(line); err != nil {
			fmt.Fprintf(rl.out, "error: %v\n", err)
		}
	}
}

func (rl *Repl) dispatch(line string) error {
	fields := strings.Fields(line)
	switch fields[0] {
	case "create":
		if len(fields) != 3 {
			return fmt.Errorf("usage: create <kind> <instance>")
		}
		instance, err := strconv.Atoi(fields[2])
		if err != nil {
			return err
		}
		id := hexodsp.NewNodeId(fields[1], instance)
		_, err = rl.eng.Cfg.CreateNode(id)
		return err

	case "param":
		if len(fields) != 5 {
			return fmt.Errorf("usage: param <kind> <instance> <port> <value>")
		}
		instance, err := strconv.Atoi(fields[2])
		if err != nil {
			return err
		}
		port, err := strconv.Atoi(fields[3])
		if err != nil {
			return err
		}
		value, err := strconv.ParseFloat(fields[4], 32)
		if err != nil {
			return err
		}
		id := hexodsp.NewNodeId(fields[1], instance)
		paramId := hexodsp.NewParamId(id, port, "", false)
		return rl.eng.Cfg.SetParam(paramId, hexodsp.ParamAtom{Value: float32(value)})

	case "lua":
		if len(fields) != 2 {
			return fmt.Errorf("usage: lua <file>")
		}
		raw, err := readFile(fields[1])
		if err != nil {
			return err
		}
		return rl.eng.Lua.Run(string(raw))

	case "monitor":
		if len(fields) != 8 {
			return fmt.Errorf("usage: monitor <kind> <instance> <in0> <in1> <in2> <out0> <out1> <out2>")
		}
		instance, err := strconv.Atoi(fields[2])
		if err != nil {
			return err
		}
		ints := make([]int, 6)
		for i := 0; i < 6; i++ {
			v, err := strconv.Atoi(fields[3+i])
			if err != nil {
				return err
			}
			ints[i] = v
		}
		id := hexodsp.NewNodeId(fields[1], instance)
		return rl.eng.Cfg.Monitor(id, ints[:3], ints[3:])

	case "led":
		if len(fields) != 3 {
			return fmt.Errorf("usage: led <kind> <instance>")
		}
		instance, err := strconv.Atoi(fields[2])
		if err != nil {
			return err
		}
		id := hexodsp.NewNodeId(fields[1], instance)
		rl.eng.Cfg.UpdateFilters()
		neg, pos := rl.eng.Cfg.FilteredLedFor(id)
		fmt.Fprintf(rl.out, "led %s.%d neg=%.4f pos=%.4f\n", id.Kind, id.Instance, neg, pos)
		return nil

	case "errors":
		for _, msg := range rl.eng.Errq.Drain() {
			fmt.Fprintln(rl.out, msg)
		}
		return nil

	case "save":
		if len(fields) != 2 {
			return fmt.Errorf("usage: save <file>")
		}
		raw, err := rl.eng.SavePatch()
		if err != nil {
			return err
		}
		return writeFile(fields[1], raw)

	case "load":
		if len(fields) != 2 {
			return fmt.Errorf("usage: load <file>")
		}
		raw, err := readFile(fields[1])
		if err != nil {
			return err
		}
		_, err = rl.eng.LoadPatch(raw)
		return err

	default:
		return fmt.Errorf("unknown command %q", fields[0])
	}
}
