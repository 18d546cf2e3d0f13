/*
 * F32SIM - Exception and interrupt dispatch.
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

// narrowFields lists the config register indices masked to 8 bits on
// write, per spec.md §4.5.
var narrowFields = map[int]bool{
	CfgECAUSE:  true,
	CfgESTATUS: true,
	CfgSTATUS:  true,
	CfgICAUSE:  true,
	CfgISTATUS: true,
}

// raiseException performs the synchronous exception dispatch of
// spec.md §4.4. It must be called with m.PC already advanced past the
// faulting instruction (the executor's step 4).
func (m *Machine) raiseException(cause uint8, data uint32) {
	m.Cfg[CfgESTATUS] = m.Cfg[CfgSTATUS] & 0xFF
	m.Cfg[CfgECAUSE] = uint32(cause) & 0xFF
	m.Cfg[CfgEDATA] = data
	m.Cfg[CfgEPC] = m.PC - 4
	m.PC = exceptionVector
	m.Cfg[CfgSTATUS] = (m.Cfg[CfgSTATUS] | StatusSupervisor) & 0xFF
	m.exception = true
}

// checkTimer decrements TIMER and, on the transition to zero, raises
// the timer interrupt, per spec.md §4.4/§4.6. Called once per
// instruction, before fetch.
func (m *Machine) checkTimer() {
	m.Cfg[CfgTIMER]--
	if m.Cfg[CfgTIMER] != 0 {
		return
	}
	m.Cfg[CfgISTATUS] = m.Cfg[CfgSTATUS] & 0xFF
	m.Cfg[CfgICAUSE] = uint32(IntCauseTimer) & 0xFF
	m.Cfg[CfgIPC] = m.PC
	m.PC = m.Cfg[CfgINTVEC]
	m.Cfg[CfgSTATUS] = (m.Cfg[CfgSTATUS] | StatusSupervisor | StatusInterrupt) & 0xFF
}

// readConfig implements CFG i=0.
func (m *Machine) readConfig(idx uint32) uint32 {
	if idx < 1 || idx >= numCfgRegs {
		return 0
	}
	return m.Cfg[idx]
}

// writeConfig implements the write half of CFG i=1, including the
// DMPU side effects of MPU_CMD/MPU_DATA and the narrow-field masking
// of spec.md §4.5.
func (m *Machine) writeConfig(idx uint32, value uint32) {
	if idx < 1 || idx >= numCfgRegs {
		return
	}
	switch int(idx) {
	case CfgMPUCmd:
		m.Dmpu.Clear()
	case CfgMPUData:
		m.Dmpu.Append(value)
	}
	if narrowFields[int(idx)] {
		value &= 0xFF
	}
	m.Cfg[idx] = value
}

// execCFG implements the four CFG sub-operations of spec.md §4.5.
func (m *Machine) execCFG(in instruction) {
	switch in.i {
	case 0: // read
		m.SetReg(in.d, int32(m.readConfig(uint32(in.n13))))
	case 1: // read-modify-write
		idx := uint32(in.n13)
		old := m.readConfig(idx)
		m.writeConfig(idx, uint32(m.GetReg(in.a)))
		m.SetReg(in.d, int32(old))
	case 2: // return
		if in.n13&1 != 0 {
			m.Cfg[CfgSTATUS] = m.Cfg[CfgISTATUS] & 0xFF
			m.PC = m.Cfg[CfgIPC]
		} else {
			m.Cfg[CfgSTATUS] = m.Cfg[CfgESTATUS] & 0xFF
			m.PC = m.Cfg[CfgEPC]
		}
	case 3: // system call
		m.raiseException(ExcSystemCall, uint32(in.n13))
	}
}
