/*
 * F32SIM - Memory fabric: routes word accesses to RAM, ROM, or MMIO.
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

// Package memory implements the F32 memory fabric: the address decode
// that routes a word-granular access to data RAM, program ROM, the
// peripheral bank, or the unmapped sentinel.
package memory

const (
	// DataRAMBase is the first address of data RAM.
	DataRAMBase uint32 = 0x0000_0000
	// DataRAMLimit is one past the last address of data RAM.
	DataRAMLimit uint32 = 0x0400_0000
	dataRAMWords        = (DataRAMLimit - DataRAMBase) / 4 // 16 Mi words

	// PeriphBase is the first address of the peripheral window.
	PeriphBase uint32 = 0xE000_0000
	// PeriphLimit is one past the last address of the peripheral window.
	PeriphLimit uint32 = 0xE001_0000

	// ROMBase is the first address of the program ROM window.
	ROMBase uint32 = 0xFFFF_0000
	romWords       = 4096  // backing store: 16 KiB
	romWordMask    = 0xFFF // wraps the 64 KiB address window onto 16 KiB of storage

	// Sentinel is returned for any read outside every mapped region, and
	// is also the reset fill value of data RAM.
	Sentinel uint32 = 0xBAADF00D
)

// Peripheral is the MMIO register bank the fabric dispatches to.
// Implemented by package peripheral; kept as an interface here so
// memory has no knowledge of device semantics.
type Peripheral interface {
	Read(offset uint32) uint32
	Write(offset uint32, value uint32, mask uint32)
}

// Fabric owns the data RAM and program ROM arrays and dispatches every
// word access by address range, per spec.md §4.3.
type Fabric struct {
	dataRAM [dataRAMWords]uint32
	progROM [romWords]uint32
	Periph  Peripheral
}

// New builds a Fabric with data RAM filled to the sentinel value, as
// required at reset.
func New(periph Peripheral) *Fabric {
	f := &Fabric{Periph: periph}
	for i := range f.dataRAM {
		f.dataRAM[i] = Sentinel
	}
	return f
}

// LoadProgram copies words into program ROM starting at word index 0,
// truncating silently if words is larger than ROM capacity - the hex
// loader that produces words is an external collaborator (spec.md §1).
func (f *Fabric) LoadProgram(words []uint32) {
	n := len(words)
	if n > romWords {
		n = romWords
	}
	copy(f.progROM[:n], words[:n])
}

// ReadWord32 returns the word at a word-aligned addr, per the address
// decode table. Used both for instruction fetch (no DMPU check applies)
// and, by the caller, as the basis for byte/halfword data loads.
func (f *Fabric) ReadWord32(addr uint32) uint32 {
	addr &^= 3
	switch {
	case addr < DataRAMLimit:
		return f.dataRAM[(addr-DataRAMBase)/4]
	case addr >= PeriphBase && addr < PeriphLimit:
		if f.Periph == nil {
			return 0xDEADBEEF
		}
		return f.Periph.Read(addr - PeriphBase)
	case addr >= ROMBase:
		return f.progROM[((addr-ROMBase)/4)&romWordMask]
	default:
		return Sentinel
	}
}

// WriteWord32 writes value into the word-aligned addr under mask (a
// mask of all-ones is a full word write). Writes outside every mapped
// region are silently ignored.
func (f *Fabric) WriteWord32(addr, value, mask uint32) {
	addr &^= 3
	switch {
	case addr < DataRAMLimit:
		idx := (addr - DataRAMBase) / 4
		f.dataRAM[idx] = (f.dataRAM[idx] &^ mask) | (value & mask)
	case addr >= PeriphBase && addr < PeriphLimit:
		if f.Periph != nil {
			f.Periph.Write(addr-PeriphBase, value, mask)
		}
	case addr >= ROMBase:
		idx := ((addr - ROMBase) / 4) & romWordMask
		f.progROM[idx] = (f.progROM[idx] &^ mask) | (value & mask)
	default:
		// Unmapped: ignored.
	}
}
