package peripheral

import (
	"bytes"
	"strings"
	"testing"
)

func TestUARTTxWritesOutAndAlwaysReportsEmpty(t *testing.T) {
	var out bytes.Buffer
	b := New(Sinks{}, &out, nil)

	if got := b.Read(offUARTTx); got != 0x3FF {
		t.Errorf("UART TX status = %#x, want 0x3FF (always empty)", got)
	}
	b.Write(offUARTTx, 'A', 0xFFFF_FFFF)
	if out.String() != "A" {
		t.Errorf("UART output = %q, want %q", out.String(), "A")
	}
}

func TestUARTRxReplaysHexStream(t *testing.T) {
	in := strings.NewReader("41\n42\n")
	b := New(Sinks{}, nil, in)

	if got := b.Read(offUARTRx); got != 0x41 {
		t.Errorf("first RX word = %#x, want 0x41", got)
	}
	if got := b.Read(offUARTRx); got != 0x42 {
		t.Errorf("second RX word = %#x, want 0x42", got)
	}
	if got := b.Read(offUARTRx); got != 0 {
		t.Errorf("RX after stream exhausted = %#x, want 0", got)
	}
}

func TestUnknownRegisterReadsSentinel(t *testing.T) {
	b := New(Sinks{}, nil, nil)
	if got := b.Read(0xFF); got != unmappedRead {
		t.Errorf("unknown register read = %#x, want %#x", got, unmappedRead)
	}
}

func TestBlitterOperandsLatchAndReadBack(t *testing.T) {
	b := New(Sinks{}, nil, nil)
	b.Write(offBlitOp2, 0xCAFE_BABE, 0xFFFF_FFFF)
	if got := b.Read(offBlitOp2Read); got != 0xCAFE_BABE {
		t.Errorf("blitter op2 readback = %#x, want 0xCAFEBABE", got)
	}
}

func TestFixedValueRegisters(t *testing.T) {
	b := New(Sinks{}, nil, nil)
	if got := b.Read(offVGAY); got != 480 {
		t.Errorf("VGA Y = %d, want 480", got)
	}
	if got := b.Read(offKeyboard); int32(got) != -1 {
		t.Errorf("keyboard = %#x, want -1", got)
	}
	if got := b.Read(offSimFlag); got != 1 {
		t.Errorf("sim flag = %d, want 1", got)
	}
}
