package cpu

import (
	"testing"

	"github.com/rcornwell/f32sim/internal/memory"
)

func newTestMachine() *Machine {
	mem := memory.New(nil)
	m := New(mem)
	return m
}

func encodeALU(i, d, a, b uint8, c int32) uint32 {
	return uint32(0)<<26 | uint32(i)<<23 | uint32(d)<<18 | uint32(a)<<13 | (uint32(uint8(c)))<<5 | uint32(b)
}

func TestRegisterZeroAlwaysZero(t *testing.T) {
	m := newTestMachine()
	m.SetReg(0, 42)
	if got := m.GetReg(0); got != 0 {
		t.Errorf("GetReg(0) = %d, want 0", got)
	}
}

func TestStepALUAdd(t *testing.T) {
	m := newTestMachine()
	m.PC = memory.ROMBase
	m.Mem.LoadProgram([]uint32{encodeALU(4, 3, 1, 2, 0)}) // r3 = r1 + r2
	m.Regs[1] = 10
	m.Regs[2] = 5
	m.Step()

	if m.Regs[3] != 15 {
		t.Errorf("r3 = %d, want 15", m.Regs[3])
	}
	if m.PC != memory.ROMBase+4 {
		t.Errorf("PC = %#x, want %#x", m.PC, memory.ROMBase+4)
	}
}

func TestStepIllegalInstructionTraps(t *testing.T) {
	m := newTestMachine()
	m.PC = memory.ROMBase
	// k=63 is not a valid kind.
	m.Mem.LoadProgram([]uint32{uint32(63) << 26})
	m.Step()

	if m.LastTrap.Cause != ExcIllegalInstr {
		t.Errorf("ECAUSE = %d, want %d", m.LastTrap.Cause, ExcIllegalInstr)
	}
	if m.PC != exceptionVector {
		t.Errorf("PC = %#x, want exception vector", m.PC)
	}
	if !m.Supervisor() {
		t.Error("exception must force supervisor mode")
	}
}

func TestTrapSuppressesWriteback(t *testing.T) {
	m := newTestMachine()
	m.PC = memory.ROMBase
	m.Mem.LoadProgram([]uint32{uint32(63) << 26 | uint32(5)<<18}) // illegal, d=5
	m.Regs[5] = 99
	m.Step()

	if m.Regs[5] != 99 {
		t.Errorf("r5 = %d, want unchanged 99 (writeback must be suppressed)", m.Regs[5])
	}
}

func TestStoreLoadRoundTrip(t *testing.T) {
	m := newTestMachine()
	m.Cfg[CfgSTATUS] |= StatusSupervisor // bypass DMPU
	m.store(2, 0x100, int32(0x1234_5678))
	if got := m.load(2, 0x100); got != int32(0x1234_5678) {
		t.Errorf("word round trip = %#x, want %#x", uint32(got), uint32(0x1234_5678))
	}

	m.store(0, 0x200, int32(-1)) // byte, all ones
	if got := m.load(0, 0x200); got != -1 {
		t.Errorf("signed byte load = %d, want -1", got)
	}
}

func TestLoadMisaligned(t *testing.T) {
	m := newTestMachine()
	m.Cfg[CfgSTATUS] |= StatusSupervisor
	m.load(2, 0x101) // word access on non-word boundary
	if uint8(m.Cfg[CfgECAUSE]) != ExcLoadMisaligned {
		t.Errorf("ECAUSE = %d, want %d", m.Cfg[CfgECAUSE], ExcLoadMisaligned)
	}
}

func TestDmpuDeniesUserAccess(t *testing.T) {
	m := newTestMachine()
	m.Cfg[CfgSTATUS] = 0 // user mode, DMPU has no entries -> every access denied
	m.load(2, 0x100)
	if m.Cfg[CfgECAUSE] != uint32(ExcLoadAccessFault) {
		t.Errorf("ECAUSE = %d, want %d", m.Cfg[CfgECAUSE], ExcLoadAccessFault)
	}
	if m.Cfg[CfgEDATA] != 0x100 {
		t.Errorf("EDATA = %#x, want 0x100", m.Cfg[CfgEDATA])
	}
}
