/*
 * F32SIM - Instruction-set simulator main process.
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

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	getopt "github.com/pborman/getopt/v2"

	"github.com/rcornwell/f32sim/internal/bootimage"
	"github.com/rcornwell/f32sim/internal/console"
	"github.com/rcornwell/f32sim/internal/cpu"
	logger "github.com/rcornwell/f32sim/internal/logger"
	"github.com/rcornwell/f32sim/internal/memory"
	"github.com/rcornwell/f32sim/internal/peripheral"
	"github.com/rcornwell/f32sim/util/hexfmt"
)

const defaultTimeout = 10_000_000

func main() {
	optAbort := getopt.BoolLong("abort", 'a', "Abort the process on any in-machine exception")
	optTrace := getopt.BoolLong("trace", 't', "Enable the per-instruction trace log")
	optDebug := getopt.BoolLong("debug", 'd', "Enable debug-level logging")
	optInteractive := getopt.BoolLong("interactive", 'i', "Drop into the interactive console instead of free-running")
	optUART := getopt.StringLong("uart-in", 'u', "", "UART RX replay stream (ASCII hex, one word per line)")
	optLog := getopt.StringLong("log", 'l', "sim.log", "Log file")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	args := getopt.Args()
	if *optHelp || len(args) != 1 {
		getopt.Usage()
		os.Exit(0)
	}
	programFile := args[0]

	log, err := logger.New(*optLog, *optDebug)
	if err != nil {
		fmt.Fprintln(os.Stderr, "f32sim: cannot open log file:", err)
		os.Exit(1)
	}
	slog.SetDefault(log)

	prog, err := os.Open(programFile)
	if err != nil {
		logger.Fatal(log, "cannot open program file", "file", programFile, "error", err)
	}
	words, err := bootimage.Load(prog)
	prog.Close()
	if err != nil {
		logger.Fatal(log, "cannot load program image", "error", err)
	}

	var uartIn io.Reader
	if *optUART != "" {
		f, err := os.Open(*optUART)
		if err != nil {
			logger.Fatal(log, "cannot open UART replay stream", "file", *optUART, "error", err)
		}
		defer f.Close()
		uartIn = f
	}

	sinks := peripheral.Sinks{
		SevenSeg: childLogger(log, "sim_7seg.log", *optDebug),
		LED:      childLogger(log, "sim_led.log", *optDebug),
		UART:     childLogger(log, "sim_uart.log", *optDebug),
		Blit:     childLogger(log, "sim_blit.log", *optDebug),
		MMIO:     log,
	}
	periph := peripheral.New(sinks, os.Stdout, uartIn)
	mem := memory.New(periph)
	mem.LoadProgram(words)

	m := cpu.New(mem)
	m.AbortOnException = *optAbort
	if *optTrace {
		traceLog := childLogger(log, "sim_trace.log", true)
		m.Trace = &traceTracer{log: traceLog}
	}

	log.Info("f32sim started", "program", programFile, "words", len(words))

	if *optInteractive {
		console.Run(m)
		return
	}

	m.Run(defaultTimeout)
	if !m.Halted() {
		log.Warn("timeout exhausted, forcing halt")
	}
	dumpRegisters(log, m)
}

// childLogger opens a side log file for one peripheral sink, falling
// back to the main logger on failure so a missing log directory never
// aborts a run.
func childLogger(parent *slog.Logger, path string, debug bool) *slog.Logger {
	l, err := logger.New(path, debug)
	if err != nil {
		parent.Warn("cannot open sink log, falling back to main log", "file", path, "error", err)
		return parent
	}
	return l
}

func dumpRegisters(log *slog.Logger, m *cpu.Machine) {
	for i := 0; i < 32; i++ {
		log.Info("register", "r", i, "value", hexfmt.Word32(uint32(m.GetReg(uint8(i)))))
	}
	log.Info("final PC", "pc", hexfmt.Word32(m.PC))
	if m.LastTrap.Cause != 0 {
		log.Info("last trap", "cause", m.LastTrap.Cause, "data", hexfmt.Word32(m.LastTrap.Data))
	}
}

// traceTracer renders per-instruction events to the trace log. It is
// the minimal Tracer spec.md §1 leaves as an external collaborator's
// worth of disassembly out of scope for.
type traceTracer struct {
	log *slog.Logger
}

func (t *traceTracer) Instruction(pc uint32, word uint32) {
	t.log.Info("fetch", "pc", hexfmt.Word32(pc), "word", hexfmt.Word32(word))
}

func (t *traceTracer) RegWrite(reg uint8, value int32) {
	t.log.Info("regwrite", "r", reg, "value", hexfmt.Word32(uint32(value)))
}

func (t *traceTracer) MemWrite(addr uint32, value uint32) {
	t.log.Info("memwrite", "addr", hexfmt.Word32(addr), "value", hexfmt.Word32(value))
}
