/*
 * F32SIM - Instruction decode.
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

// instruction holds the decoded fields of one 32-bit F32 instruction
// word, per spec.md §4.1.
type instruction struct {
	raw uint32

	k uint8 // bits 31..26
	i uint8 // bits 25..23
	d uint8 // bits 22..18
	a uint8 // bits 17..13
	c int32 // bits 12..5, sign-extended 8 bits
	b uint8 // bits 4..0

	n13  int32 // (c<<5)|b, sign-extended 13 bits
	n13s int32 // (c<<5)|d, sign-extended 13 bits
	n21  int32 // (c<<13)|(i<<10)|(a<<5)|b, sign-extended 21 bits
}

// signExtend sign-extends the low `bits` bits of v.
func signExtend(v uint32, bits uint) int32 {
	shift := 32 - bits
	return int32(v<<shift) >> shift
}

func decode(word uint32) instruction {
	in := instruction{raw: word}
	in.k = uint8((word >> 26) & 0x3F)
	in.i = uint8((word >> 23) & 0x7)
	in.d = uint8((word >> 18) & 0x1F)
	in.a = uint8((word >> 13) & 0x1F)
	rawC := (word >> 5) & 0xFF
	in.c = signExtend(rawC, 8)
	in.b = uint8(word & 0x1F)

	cu := uint32(rawC)
	in.n13 = signExtend((cu<<5)|uint32(in.b), 13)
	in.n13s = signExtend((cu<<5)|uint32(in.d), 13)
	in.n21 = signExtend((cu<<13)|(uint32(in.i)<<10)|(uint32(in.a)<<5)|uint32(in.b), 21)

	return in
}
