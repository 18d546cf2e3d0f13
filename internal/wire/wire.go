/*
 * F32SIM - Host framing protocol: escape detection, packet checksum.
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

// Package wire implements the host-side framing protocol of spec.md
// §4.7: command-mode escape detection, the [command][length][payload]
// [checksum] packet shape, and the two running-checksum disciplines
// the original C source uses - a byte sum for ordinary command
// packets, a word sum for the BOOT image trailer only.
package wire

import (
	"encoding/binary"
	"errors"
	"io"
)

// EscapeByte, received in normal (pass-through) mode, switches the
// host into command mode.
const EscapeByte byte = 0xB0

// Known command words, identified by the full little-endian 32-bit
// pattern (low byte is always EscapeByte), per spec.md §4.7.
const (
	CmdBoot  uint32 = 0x0000_02B0
	CmdOpen  uint32 = 0x0101_02B0
	CmdClose uint32 = 0x0102_02B0
	CmdRead  uint32 = 0x0103_02B0
	CmdWrite uint32 = 0x0104_02B0

	RespOpenOK   uint32 = 0x0201_02B0
	RespOpenFail uint32 = 0x0202_02B0

	// BootStartMarker prefixes the raw word stream cmd/f32host writes
	// when servicing CmdBoot.
	BootStartMarker uint32 = 0x0100_02B0
)

// ErrChecksumMismatch is returned by ReadPacket when the trailing
// checksum does not match the accumulated byte sum - fatal per
// spec.md §7.4.
var ErrChecksumMismatch = errors.New("wire: checksum mismatch")

// FrameReader wraps a byte stream and accumulates a running byte sum
// over everything read through it, implementing the "sum of every
// received byte since the start of the current command" rule.
type FrameReader struct {
	r   io.Reader
	sum uint32
}

// NewFrameReader builds a FrameReader. The caller is responsible for
// feeding the initial EscapeByte into it via AccumulateByte, since
// that byte is consumed by the normal-mode read loop before command
// mode is entered.
func NewFrameReader(r io.Reader) *FrameReader {
	return &FrameReader{r: r}
}

// AccumulateByte folds an already-consumed byte into the running sum,
// for the initial escape byte.
func (f *FrameReader) AccumulateByte(b byte) {
	f.sum += uint32(b)
}

// ReadByte reads and accumulates one byte.
func (f *FrameReader) ReadByte() (byte, error) {
	var buf [1]byte
	if _, err := io.ReadFull(f.r, buf[:]); err != nil {
		return 0, err
	}
	f.sum += uint32(buf[0])
	return buf[0], nil
}

// ReadU32LE reads and accumulates four bytes as a little-endian word.
func (f *FrameReader) ReadU32LE() (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(f.r, buf[:]); err != nil {
		return 0, err
	}
	for _, b := range buf {
		f.sum += uint32(b)
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

// readU32LERaw reads a little-endian word without folding it into the
// running sum - used only for the trailing checksum field itself.
func readU32LERaw(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

// Sum returns the running byte sum accumulated so far.
func (f *FrameReader) Sum() uint32 {
	return f.sum
}

// ReadCommand reads the three bytes following an already-consumed
// EscapeByte and assembles the 32-bit little-endian command word.
func (f *FrameReader) ReadCommand() (uint32, error) {
	c1, err := f.ReadByte()
	if err != nil {
		return 0, err
	}
	c2, err := f.ReadByte()
	if err != nil {
		return 0, err
	}
	c3, err := f.ReadByte()
	if err != nil {
		return 0, err
	}
	return uint32(EscapeByte) | uint32(c1)<<8 | uint32(c2)<<16 | uint32(c3)<<24, nil
}

// ReadPacket reads a [length][payload][checksum] frame following a
// command word already consumed via ReadCommand, verifying the
// trailing checksum against the byte sum accumulated since the
// command's EscapeByte.
func (f *FrameReader) ReadPacket() ([]byte, error) {
	length, err := f.ReadU32LE()
	if err != nil {
		return nil, err
	}
	payload := make([]byte, length)
	for i := range payload {
		b, err := f.ReadByte()
		if err != nil {
			return nil, err
		}
		payload[i] = b
	}
	want := f.Sum()
	got, err := readU32LERaw(f.r)
	if err != nil {
		return nil, err
	}
	if got != want {
		return nil, ErrChecksumMismatch
	}
	return payload, nil
}

// WritePacket writes a [command][length][payload][checksum] frame
// whose checksum is the sum of the payload bytes only, per spec.md
// §4.7's rule for transmitted response packets.
func WritePacket(w io.Writer, command uint32, payload []byte) error {
	if err := writeU32LE(w, command); err != nil {
		return err
	}
	if err := writeU32LE(w, uint32(len(payload))); err != nil {
		return err
	}
	if _, err := w.Write(payload); err != nil {
		return err
	}
	var sum uint32
	for _, b := range payload {
		sum += uint32(b)
	}
	return writeU32LE(w, sum)
}

func writeU32LE(w io.Writer, v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

// WordSum computes the BOOT-image trailer checksum: a running sum of
// 32-bit words, not bytes (SPEC_FULL.md's SUPPLEMENTED FEATURES, grounded
// on original_source's send_boot_image).
func WordSum(words []uint32) uint32 {
	var sum uint32
	for _, w := range words {
		sum += w
	}
	return sum
}
