/*
 * F32SIM - Fetch/decode/execute loop.
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

package cpu

// Step executes exactly one instruction, per the six-step loop of
// spec.md §4.6: clear the trap flag, service the timer, fetch,
// advance PC, decode and dispatch.
//
// Instruction fetch never consults the DMPU (spec.md §9's Open
// Question on the fetch/data asymmetry): only LD and ST go through
// load/store, which do.
func (m *Machine) Step() {
	m.exception = false
	m.checkTimer()

	word := m.Mem.ReadWord32(m.PC)
	m.Trace.Instruction(m.PC, word)
	m.PC += 4

	m.execute(decode(word))

	if m.exception {
		m.LastTrap = Trap{Cause: uint8(m.Cfg[CfgECAUSE]), Data: m.Cfg[CfgEDATA]}
		if m.AbortOnException {
			m.halted = true
		}
	}
	if m.PC == 0 {
		m.halted = true
	}
}

// Run steps the machine until it halts or n instructions have run,
// whichever comes first. n <= 0 means unbounded.
func (m *Machine) Run(n int) {
	for i := 0; (n <= 0 || i < n) && !m.halted; i++ {
		m.Step()
	}
}

// execute dispatches one decoded instruction to its kind's operator.
func (m *Machine) execute(in instruction) {
	if in.k >= uint8(numKinds) {
		m.raiseException(ExcIllegalInstr, in.raw)
		return
	}

	switch Kind(in.k) {
	case KindALU:
		m.SetReg(in.d, aluOp(in.i, m.GetReg(in.a), m.GetReg(in.b), in.c))

	case KindALUI:
		m.SetReg(in.d, aluOp(in.i, m.GetReg(in.a), in.n13, in.c))

	case KindBRA:
		if branchTaken(in.i, m.GetReg(in.a), m.GetReg(in.b)) {
			m.PC += uint32(in.n13s * 4)
		}

	case KindLD:
		addr := uint32(m.GetReg(in.a) + in.n13)
		m.SetReg(in.d, m.load(in.i, addr))

	case KindST:
		addr := uint32(m.GetReg(in.a) + in.n13s)
		m.store(in.i, addr, m.GetReg(in.b))

	case KindJMP:
		target := m.PC + uint32(in.n21*4)
		m.SetReg(in.d, int32(m.PC))
		m.PC = target

	case KindJMPR:
		target := uint32(m.GetReg(in.a) + in.n13*4)
		m.SetReg(in.d, int32(m.PC))
		m.PC = target

	case KindLDU:
		m.SetReg(in.d, in.n21<<11)

	case KindLDPC:
		m.SetReg(in.d, int32(m.PC+uint32(in.n21*4)))

	case KindMUL:
		m.SetReg(in.d, mulOp(in.i, m.GetReg(in.a), m.GetReg(in.b)))

	case KindMULI:
		m.SetReg(in.d, mulOp(in.i, m.GetReg(in.a), in.n13))

	case KindCFG:
		m.execCFG(in)

	case KindIDX:
		v, ok := idxOp(in.i, m.GetReg(in.a), m.GetReg(in.b))
		if !ok {
			m.raiseException(ExcIndexOutOfRange, uint32(m.GetReg(in.a)))
			return
		}
		m.SetReg(in.d, v)
	}
}
