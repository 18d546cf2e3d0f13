/*
 * F32SIM - ASCII hex program image loading and BOOT wire encoding.
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

// Package bootimage reads the ASCII hex program image format shared by
// cmd/f32sim (loaded straight into program memory) and cmd/f32host
// (re-encoded onto the wire as a BOOT packet), per spec.md §4.7 and
// §6's "asm.hex" external file.
package bootimage

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rcornwell/f32sim/internal/wire"
)

// Load reads one hex word per line from r, skipping blank lines, and
// returns the decoded words in file order.
func Load(r io.Reader) ([]uint32, error) {
	var words []uint32
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		v, err := strconv.ParseUint(line, 16, 32)
		if err != nil {
			return nil, fmt.Errorf("bootimage: %q: %w", line, err)
		}
		words = append(words, uint32(v))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("bootimage: no data")
	}
	return words, nil
}

// Encode builds the raw byte stream cmd/f32host writes to the serial
// port for a BOOT command: the start marker, a byte length, the image
// words, and a trailing word-sum checksum (SPEC_FULL.md's SUPPLEMENTED
// FEATURES: the BOOT trailer is a sum of words, not bytes).
func Encode(words []uint32) []byte {
	var buf bytes.Buffer
	var hdr [8]byte
	binary.LittleEndian.PutUint32(hdr[0:4], wire.BootStartMarker)
	binary.LittleEndian.PutUint32(hdr[4:8], uint32(len(words)*4))
	buf.Write(hdr[:])

	for _, w := range words {
		var wb [4]byte
		binary.LittleEndian.PutUint32(wb[:], w)
		buf.Write(wb[:])
	}

	var sum [4]byte
	binary.LittleEndian.PutUint32(sum[:], wire.WordSum(words))
	buf.Write(sum[:])
	return buf.Bytes()
}
