/*
 * F32SIM - Instruction kind and exception cause constants.
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

// Kind identifies one of the instruction families the decoder produces
// from the 6-bit k field. The assignment of numeric values to names is
// this implementation's own (spec.md leaves the encoding unspecified
// beyond "symbolic names only"); the table of thirteen rows in
// spec.md §4.1 is authoritative over its prose count of twelve.
type Kind uint8

const (
	KindALU Kind = iota
	KindALUI
	KindBRA
	KindLD
	KindST
	KindJMP
	KindJMPR
	KindLDU
	KindLDPC
	KindMUL
	KindMULI
	KindCFG
	KindIDX
	numKinds
)

// Exception causes, per spec.md §7. ECAUSE is carried as 8 bits;
// "Illegal Instruction" keeps the original's typo'd constant name
// ("ILLEGAAL") only in commentary - the numeric value 2 is what spec.md
// requires implementers preserve.
const (
	ExcInstAccessFault   uint8 = 1
	ExcIllegalInstr      uint8 = 2 // original source spells this constant "ILLEGAAL"
	ExcBreakpoint        uint8 = 3
	ExcLoadMisaligned    uint8 = 4
	ExcStoreMisaligned   uint8 = 5
	ExcLoadAccessFault   uint8 = 6
	ExcStoreAccessFault  uint8 = 7
	ExcSystemCall        uint8 = 8
	ExcIndexOutOfRange   uint8 = 9
	IntCauseTimer        uint8 = 1
)

// STATUS word bits, per spec.md §3.
const (
	StatusSupervisor uint32 = 0x1
	StatusInterrupt  uint32 = 0x2
)

// Config register indices, per spec.md §3.
const (
	CfgEPC = iota + 1
	CfgECAUSE
	CfgEDATA
	CfgESTATUS
	CfgESCRATCH
	CfgEVEC
	CfgSTATUS
	CfgIPC
	CfgICAUSE
	CfgISTATUS
	CfgINTVEC
	CfgTIMER
	CfgMPUCmd
	CfgMPUData
	numCfgRegs
)

// Reset values.
const (
	ResetPC   uint32 = 0xFFFF_0000
	ResetSP   uint32 = 0x0400_0000
	ResetEVec uint32 = 0xFFFF_0004

	// exceptionVector is the literal PC every synchronous exception
	// routes to. spec.md §4.4/§9 (Open Questions) requires this
	// hardcoded literal rather than the EVEC config register, even
	// though EVEC is writable and reset to the same value.
	exceptionVector uint32 = 0xFFFF_0004
)

// DMPU access bits, re-exported here so callers need not import dmpu
// for the common case of checking a data access.
const (
	AccessExecute uint32 = 0x10
	AccessWrite   uint32 = 0x20
	AccessRead    uint32 = 0x40
)
