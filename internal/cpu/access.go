/*
 * F32SIM - Byte/halfword/word data memory access.
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

// suppressedLoad is returned (then discarded by SetReg's exception
// suppression) when a load faults, per spec.md §4.3.
const suppressedLoad = -0x11111112 // bit pattern 0xEEEEEEEE as int32

// load implements LD, per spec.md §4.3: alignment, then DMPU
// permission, then lane extraction with sign extension.
func (m *Machine) load(size uint8, addr uint32) int32 {
	switch size {
	case 0:
	case 1:
		if addr&1 != 0 {
			m.raiseException(ExcLoadMisaligned, addr)
			return int32(suppressedLoad)
		}
	case 2:
		if addr&3 != 0 {
			m.raiseException(ExcLoadMisaligned, addr)
			return int32(suppressedLoad)
		}
	default:
		panic("cpu: load: invalid size code")
	}

	if !m.Supervisor() && !m.Dmpu.Allows(addr, AccessRead) {
		m.raiseException(ExcLoadAccessFault, addr)
		return int32(suppressedLoad)
	}

	word := m.Mem.ReadWord32(addr)
	lane := (addr & 3) * 8
	switch size {
	case 0:
		return int32(int8(byte(word >> lane)))
	case 1:
		return int32(int16(uint16(word >> lane)))
	default:
		return int32(word)
	}
}

// store implements ST, per spec.md §4.3: alignment, then DMPU
// permission, then a masked write of only the addressed lane.
func (m *Machine) store(size uint8, addr uint32, value int32) {
	switch size {
	case 0:
	case 1:
		if addr&1 != 0 {
			m.raiseException(ExcStoreMisaligned, addr)
			return
		}
	case 2:
		if addr&3 != 0 {
			m.raiseException(ExcStoreMisaligned, addr)
			return
		}
	default:
		panic("cpu: store: invalid size code")
	}

	if !m.Supervisor() && !m.Dmpu.Allows(addr, AccessWrite) {
		m.raiseException(ExcStoreAccessFault, addr)
		return
	}

	lane := (addr & 3) * 8
	var mask uint32
	switch size {
	case 0:
		mask = 0xFF << lane
	case 1:
		mask = 0xFFFF << lane
	default:
		mask = 0xFFFF_FFFF
	}
	m.Mem.WriteWord32(addr, uint32(value)<<lane, mask)
	m.Trace.MemWrite(addr&^3, m.Mem.ReadWord32(addr))
}
