/*
 * F32SIM - ALU, MUL, branch, and index sub-operators.
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

import "math"

// aluOp implements the eight ALU sub-operators, per spec.md §4.2.
// b is either a register value (ALU) or the n13 immediate (ALUI); c
// supplies the shift variant selector when i selects Shift.
func aluOp(i uint8, a, b int32, c int32) int32 {
	switch i {
	case 0:
		return a & b
	case 1:
		return a | b
	case 2:
		return a ^ b
	case 3:
		shamt := uint(b) & 31
		switch c & 0x3 {
		case 0:
			return int32(uint32(a) << shamt)
		case 1:
			return 0
		case 2:
			return int32(uint32(a) >> shamt)
		default:
			return a >> shamt
		}
	case 4:
		return a + b
	case 5:
		return a - b
	case 6:
		if a < b {
			return 1
		}
		return 0
	case 7:
		if uint32(a) < uint32(b) {
			return 1
		}
		return 0
	default:
		panic("aluOp: subopcode out of range")
	}
}

// mulOp implements the five MUL sub-operators, per spec.md §4.2.
func mulOp(i uint8, a, b int32) int32 {
	switch i {
	case 0:
		return a * b
	case 4:
		if b == 0 {
			return -1
		}
		return int32(uint32(a) / uint32(b))
	case 5:
		if b == 0 {
			return -1
		}
		if a == math.MinInt32 && b == -1 {
			return math.MinInt32
		}
		return a / b
	case 6:
		if b == 0 {
			return a
		}
		return int32(uint32(a) % uint32(b))
	case 7:
		if b == 0 {
			return a
		}
		if a == math.MinInt32 && b == -1 {
			return 0
		}
		return a % b
	default:
		panic("mulOp: subopcode out of range")
	}
}

// branchTaken implements the six branch conditions, per spec.md §4.2.
func branchTaken(i uint8, a, b int32) bool {
	switch i {
	case 0:
		return a == b
	case 1:
		return a != b
	case 2:
		return a < b
	case 3:
		return a >= b
	case 4:
		return uint32(a) < uint32(b)
	case 5:
		return uint32(a) >= uint32(b)
	default:
		return true
	}
}

// idxOp implements the bounds-checked index scaler, per spec.md §4.2.
// ok is false when a >= b (unsigned), in which case value is undefined
// and the caller must raise Index out of range with EDATA = a.
func idxOp(i uint8, a, b int32) (value int32, ok bool) {
	if uint32(a) >= uint32(b) {
		return 0, false
	}
	switch i {
	case 0:
		return a, true
	case 1:
		return a * 2, true
	case 2:
		return a * 4, true
	default:
		return 0, true
	}
}
