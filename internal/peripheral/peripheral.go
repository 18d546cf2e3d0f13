/*
 * F32SIM - Peripheral register bank.
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

// Package peripheral implements the fixed MMIO register map at
// 0xE000_0000, dispatched by a simple switch on word-aligned offset
// per spec.md §9's design note (a device-trait table is not required).
package peripheral

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
)

// Register offsets within the peripheral window, per spec.md §6.
const (
	offSevenSeg    uint32 = 0x00
	offLED         uint32 = 0x04
	offUARTTx      uint32 = 0x10
	offUARTRx      uint32 = 0x14
	offVGAY        uint32 = 0x28
	offKeyboard    uint32 = 0x2C
	offSimFlag     uint32 = 0x30
	offBlitCmd     uint32 = 0x34
	offBlitOp1     uint32 = 0x38
	offBlitOp2     uint32 = 0x3C
	offSimMode     uint32 = 0x44
	offBlitOp2Read uint32 = 0x88
)

const unmappedRead uint32 = 0xDEADBEEF

// Sinks groups the log destinations the peripheral bank writes to.
// Each may be nil, in which case the corresponding event is discarded.
type Sinks struct {
	SevenSeg *slog.Logger
	LED      *slog.Logger
	UART     *slog.Logger
	Blit     *slog.Logger
	MMIO     *slog.Logger // unknown register accesses
}

// Bank is the stateful peripheral register map.
type Bank struct {
	sinks Sinks

	uartOut io.Writer     // normally os.Stdout
	uartIn  *bufio.Reader // UART RX replay stream, one hex word per line; nil allowed

	blitOp1 uint32
	blitOp2 uint32
}

// New builds a Bank. uartIn may be nil, in which case UART RX reads
// return 0.
func New(sinks Sinks, uartOut io.Writer, uartIn io.Reader) *Bank {
	b := &Bank{sinks: sinks, uartOut: uartOut}
	if uartIn != nil {
		b.uartIn = bufio.NewReader(uartIn)
	}
	return b
}

func (b *Bank) logf(l *slog.Logger, format string, args ...any) {
	if l == nil {
		return
	}
	l.Info(fmt.Sprintf(format, args...))
}

// Read implements memory.Peripheral.
func (b *Bank) Read(offset uint32) uint32 {
	switch offset {
	case offUARTTx:
		return 0x3FF // TX FIFO always empty
	case offUARTRx:
		return b.readUART()
	case offVGAY:
		return 480
	case offKeyboard:
		return 0xFFFF_FFFF // -1
	case offSimFlag:
		return 1
	case offBlitCmd:
		return 255 // blitter FIFO always has room
	case offSimMode:
		return 1
	case offBlitOp2Read:
		return b.blitOp2
	default:
		b.logf(b.sinks.MMIO, "unknown peripheral read offset=0x%04X", offset)
		return unmappedRead
	}
}

// Write implements memory.Peripheral.
func (b *Bank) Write(offset uint32, value uint32, mask uint32) {
	switch offset {
	case offSevenSeg:
		b.logf(b.sinks.SevenSeg, "7SEG=0x%06X", value&0xFFFFFF)
	case offLED:
		b.logf(b.sinks.LED, "LED=0x%03X", value&0x3FF)
	case offUARTTx:
		if b.uartOut != nil {
			_, _ = b.uartOut.Write([]byte{byte(value)})
		}
		b.logf(b.sinks.UART, "TX=0x%02X", byte(value))
	case offBlitCmd:
		b.logf(b.sinks.Blit, "BLIT cmd=0x%08X op1=0x%08X op2=0x%08X", value, b.blitOp1, b.blitOp2)
	case offBlitOp1:
		b.blitOp1 = (b.blitOp1 &^ mask) | (value & mask)
	case offBlitOp2:
		b.blitOp2 = (b.blitOp2 &^ mask) | (value & mask)
	default:
		b.logf(b.sinks.MMIO, "unknown peripheral write offset=0x%04X value=0x%08X", offset, value)
	}
}

// readUART pulls the next hex integer from the replay stream, or
// returns 0 once it is exhausted.
func (b *Bank) readUART() uint32 {
	if b.uartIn == nil {
		return 0
	}
	line, err := b.uartIn.ReadString('\n')
	if line == "" && err != nil {
		return 0
	}
	var v uint32
	_, _ = fmt.Sscanf(line, "%x", &v)
	return v
}
