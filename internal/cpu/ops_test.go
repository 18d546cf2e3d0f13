package cpu

import "testing"

func TestAluOp(t *testing.T) {
	cases := []struct {
		i    uint8
		a, b int32
		c    int32
		want int32
	}{
		{0, 0xF0, 0x0F, 0, 0},
		{1, 0xF0, 0x0F, 0, 0xFF},
		{2, 0xFF, 0x0F, 0, 0xF0},
		{3, 1, 4, 0, 16},               // shift left
		{3, -8, 1, 2, 0x7FFFFFFC},      // logical shift right
		{3, -8, 1, 3, -4},              // arithmetic shift right
		{4, 2, 3, 0, 5},
		{5, 5, 3, 0, 2},
		{6, -1, 0, 0, 1},               // signed less-than
		{7, -1, 0, 0, 0},               // unsigned less-than: 0xFFFFFFFF < 0 is false
	}
	for n, c := range cases {
		if got := aluOp(c.i, c.a, c.b, c.c); got != c.want {
			t.Errorf("case %d: aluOp(%d,%d,%d,%d) = %d, want %d", n, c.i, c.a, c.b, c.c, got, c.want)
		}
	}
}

func TestAluShiftReservedVariantZero(t *testing.T) {
	if got := aluOp(3, 8, 2, 1); got != 0 {
		t.Errorf("shift sub-op 1 must yield 0, got %d", got)
	}
}

func TestMulOpDivideByZero(t *testing.T) {
	if got := mulOp(4, 10, 0); got != -1 {
		t.Errorf("unsigned div by zero = %d, want -1", got)
	}
	if got := mulOp(5, 10, 0); got != -1 {
		t.Errorf("signed div by zero = %d, want -1", got)
	}
}

func TestMulOpModByZero(t *testing.T) {
	if got := mulOp(6, 10, 0); got != 10 {
		t.Errorf("unsigned mod by zero = %d, want 10 (dividend)", got)
	}
	if got := mulOp(7, 10, 0); got != 10 {
		t.Errorf("signed mod by zero = %d, want 10 (dividend)", got)
	}
}

func TestMulOpMinIntOverflow(t *testing.T) {
	const minInt32 = -1 << 31
	if got := mulOp(5, minInt32, -1); got != minInt32 {
		t.Errorf("MinInt32 / -1 = %d, want %d (saturated)", got, minInt32)
	}
	if got := mulOp(7, minInt32, -1); got != 0 {
		t.Errorf("MinInt32 %% -1 = %d, want 0", got)
	}
}

func TestBranchTaken(t *testing.T) {
	if !branchTaken(0, 5, 5) {
		t.Error("BEQ 5,5 should branch")
	}
	if branchTaken(0, 5, 6) {
		t.Error("BEQ 5,6 should not branch")
	}
	if !branchTaken(4, 1, -1) {
		t.Error("unsigned-less-than: 1 < 0xFFFFFFFF should branch")
	}
	if !branchTaken(6, 1, 2) {
		t.Error("unconditional branch sub-op should always branch")
	}
}

func TestIdxOpOutOfRange(t *testing.T) {
	if _, ok := idxOp(0, 5, 5); ok {
		t.Error("a==b must be out of range")
	}
	if _, ok := idxOp(0, -1, 5); ok {
		t.Error("a treated as unsigned: -1 >= 5 must be out of range")
	}
	if v, ok := idxOp(2, 3, 10); !ok || v != 12 {
		t.Errorf("idxOp(2,3,10) = (%d,%v), want (12,true)", v, ok)
	}
}
