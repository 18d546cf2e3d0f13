/*
 * F32SIM - Interactive debugger console (supplemental control surface).
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package console is an interactive step/break/inspect REPL for
// cmd/f32sim, gated behind -i. It is additive control-surface sugar
// (spec.md treats trace printing and a disassembler as external
// collaborators); the dispatch shape is modeled directly on
// command/parser and command/reader.
package console

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/rcornwell/f32sim/internal/cpu"
	"github.com/rcornwell/f32sim/util/hexfmt"
)

type cmd struct {
	name    string
	min     int
	process func(*console, []string) (bool, error)
}

var cmdList = []cmd{
	{name: "step", min: 1, process: (*console).step},
	{name: "continue", min: 1, process: (*console).cont},
	{name: "regs", min: 1, process: (*console).regs},
	{name: "break", min: 1, process: (*console).setBreak},
	{name: "mem", min: 1, process: (*console).mem},
	{name: "quit", min: 1, process: (*console).quit},
}

type console struct {
	m          *cpu.Machine
	breakpoint uint32
	hasBreak   bool
}

// Run starts the console REPL against m, blocking until "quit" or a
// prompt-abort (Ctrl-D/Ctrl-C).
func Run(m *cpu.Machine) {
	c := &console{m: m}

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	for {
		text, err := line.Prompt("f32> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				return
			}
			fmt.Println("error reading line:", err)
			return
		}
		line.AppendHistory(text)

		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}

		match := matchCommand(fields[0])
		if match == nil {
			fmt.Println("command not found:", fields[0])
			continue
		}

		quit, err := match.process(c, fields[1:])
		if err != nil {
			fmt.Println("error:", err)
		}
		if quit {
			return
		}
	}
}

func matchCommand(name string) *cmd {
	for i := range cmdList {
		c := &cmdList[i]
		if len(name) >= c.min && strings.HasPrefix(c.name, name) {
			return c
		}
	}
	return nil
}

func (c *console) step(args []string) (bool, error) {
	n := 1
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil {
			return false, err
		}
		n = v
	}
	for i := 0; i < n && !c.m.Halted(); i++ {
		c.m.Step()
	}
	fmt.Println("PC=" + hexfmt.Word32(c.m.PC))
	return false, nil
}

func (c *console) cont(args []string) (bool, error) {
	for !c.m.Halted() {
		if c.hasBreak && c.m.PC == c.breakpoint {
			fmt.Printf("breakpoint hit at %#08x\n", c.m.PC)
			return false, nil
		}
		c.m.Step()
	}
	fmt.Println("halted")
	return false, nil
}

func (c *console) regs([]string) (bool, error) {
	for i := 0; i < 32; i += 4 {
		fmt.Printf("r%-2d=%#08x  r%-2d=%#08x  r%-2d=%#08x  r%-2d=%#08x\n",
			i, uint32(c.m.GetReg(uint8(i))),
			i+1, uint32(c.m.GetReg(uint8(i+1))),
			i+2, uint32(c.m.GetReg(uint8(i+2))),
			i+3, uint32(c.m.GetReg(uint8(i+3))))
	}
	fmt.Printf("PC=%#08x\n", c.m.PC)
	return false, nil
}

func (c *console) setBreak(args []string) (bool, error) {
	if len(args) != 1 {
		return false, errors.New("usage: break <addr>")
	}
	v, err := strconv.ParseUint(strings.TrimPrefix(args[0], "0x"), 16, 32)
	if err != nil {
		return false, err
	}
	c.breakpoint = uint32(v)
	c.hasBreak = true
	return false, nil
}

func (c *console) mem(args []string) (bool, error) {
	if len(args) != 1 {
		return false, errors.New("usage: mem <addr>")
	}
	v, err := strconv.ParseUint(strings.TrimPrefix(args[0], "0x"), 16, 32)
	if err != nil {
		return false, err
	}
	fmt.Printf("%#08x: %#08x\n", uint32(v), c.m.Mem.ReadWord32(uint32(v)))
	return false, nil
}

func (c *console) quit([]string) (bool, error) {
	return true, nil
}
