/*
 * F32SIM - Data Memory Protection Unit.
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

// Package dmpu implements the 16-entry windowed permission unit
// consulted on non-supervisor data accesses, per spec.md §3/§4.3.
package dmpu

const (
	numEntries = 16

	// Permission bits within an entry, per spec.md §3.
	Execute uint32 = 0x10
	Write   uint32 = 0x20
	Read    uint32 = 0x40

	sizeShiftMask uint32 = 0x0F
	baseMask      uint32 = 0xFFFF_F000
)

// Unit is the 16-entry DMPU table with its fill pointer.
type Unit struct {
	entries [numEntries]uint32
	ptr     int
}

// Clear empties every entry and resets the fill pointer, as CFG MPU_CMD
// does on any write.
func (u *Unit) Clear() {
	u.entries = [numEntries]uint32{}
	u.ptr = 0
}

// Append stores value at the current fill pointer and advances it
// modulo 16, as CFG MPU_DATA does on write.
func (u *Unit) Append(value uint32) {
	u.entries[u.ptr] = value
	u.ptr = (u.ptr + 1) & (numEntries - 1)
}

// Allows reports whether addr may be accessed with the given access
// bit (Read, Write, or Execute). Entries with none of the relevant
// permission bits set are skipped; an access matching no active entry
// is denied.
func (u *Unit) Allows(addr uint32, access uint32) bool {
	for _, e := range u.entries {
		if e&access == 0 {
			continue
		}
		shift := e & sizeShiftMask
		mask := baseMask << shift
		if addr&mask == e&mask {
			return true
		}
	}
	return false
}
