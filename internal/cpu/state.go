/*
 * F32SIM - Machine state: registers, config registers, and the owning
 * aggregate every operator mutates.
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

// Package cpu implements the F32 decoder, executor, register file,
// config registers, and exception/interrupt dispatcher - the "hard
// part" of spec.md §1.
//
// Every piece of machine state lives on the Machine struct passed to
// every operator (spec.md §9's "Globals -> struct" design note),
// rather than in the package-level globals the teacher codebase uses
// for its own CPU state.
package cpu

import (
	"github.com/rcornwell/f32sim/internal/dmpu"
	"github.com/rcornwell/f32sim/internal/memory"
)

// Trap records the cause/data of the most recently raised exception.
// It is a plain state transition, never propagated as a Go error or
// panic (spec.md §7: "the Core never throws an error across an
// instruction boundary").
type Trap struct {
	Cause uint8
	Data  uint32
}

// Tracer receives per-instruction observability events. The real
// disassembler that renders a trace line from an instruction word is
// an external collaborator out of scope for this spec (spec.md §1);
// Tracer only carries the raw facts a disassembler-backed trace
// printer would need.
type Tracer interface {
	Instruction(pc uint32, word uint32)
	RegWrite(reg uint8, value int32)
	MemWrite(addr uint32, value uint32)
}

// NopTracer discards every event.
type NopTracer struct{}

func (NopTracer) Instruction(uint32, uint32) {}
func (NopTracer) RegWrite(uint8, int32)      {}
func (NopTracer) MemWrite(uint32, uint32)    {}

// Machine is the entire owned state of one F32 core.
type Machine struct {
	Regs [32]int32
	Cfg  [numCfgRegs]uint32
	PC   uint32

	Mem  *memory.Fabric
	Dmpu *dmpu.Unit

	Trace Tracer

	// AbortOnException halts the executor after the first in-machine
	// fault, after which cmd/f32sim dumps the registers and exits.
	// Set by cmd/f32sim's -a flag; off by default.
	AbortOnException bool

	exception bool // suppresses writeback for the current instruction
	halted    bool
	LastTrap  Trap
}

// New builds a Machine wired to the given memory fabric.
func New(mem *memory.Fabric) *Machine {
	m := &Machine{
		Mem:   mem,
		Dmpu:  &dmpu.Unit{},
		Trace: NopTracer{},
	}
	m.Reset()
	return m
}

// Reset restores the registers, config registers, PC and DMPU to their
// power-on state, per spec.md §4.6. Memory contents are left as they
// are; memory.New is what fills data RAM with the sentinel.
func (m *Machine) Reset() {
	m.Regs = [32]int32{}
	m.Regs[31] = int32(ResetSP)
	m.Cfg = [numCfgRegs]uint32{}
	m.Cfg[CfgEVEC] = ResetEVec
	m.Cfg[CfgSTATUS] = StatusSupervisor
	m.PC = ResetPC
	m.Dmpu.Clear()
	m.exception = false
	m.halted = false
}

// GetReg reads a general register; register 0 always reads 0.
func (m *Machine) GetReg(idx uint8) int32 {
	if idx == 0 {
		return 0
	}
	return m.Regs[idx]
}

// SetReg writes a general register, unless it is r0 or the current
// instruction has raised an exception (trap suppression, spec.md §3).
func (m *Machine) SetReg(idx uint8, v int32) {
	if idx == 0 || m.exception {
		return
	}
	m.Regs[idx] = v
	m.Trace.RegWrite(idx, v)
}

// Supervisor reports whether STATUS currently has the supervisor bit set.
func (m *Machine) Supervisor() bool {
	return m.Cfg[CfgSTATUS]&StatusSupervisor != 0
}

// Halted reports whether the executor should stop running.
func (m *Machine) Halted() bool {
	return m.halted
}
