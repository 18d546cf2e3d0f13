package wire

import (
	"bytes"
	"testing"
)

func TestReadCommandAssemblesLittleEndianWord(t *testing.T) {
	r := bytes.NewReader([]byte{0x02, 0x01, 0x01})
	fr := NewFrameReader(r)
	fr.AccumulateByte(EscapeByte)

	got, err := fr.ReadCommand()
	if err != nil {
		t.Fatalf("ReadCommand: %v", err)
	}
	if got != CmdOpen {
		t.Errorf("command = %#08x, want %#08x", got, CmdOpen)
	}
}

func TestReadPacketVerifiesChecksum(t *testing.T) {
	payload := []byte{0x04, 0x00, 0x00, 0x00, 'a', 'b', 'c', 'd'}
	sum := uint32(EscapeByte) + uint32(0x01) + uint32(0x01) + uint32(0x02)
	for _, b := range payload {
		sum += uint32(b)
	}
	var trailer [4]byte
	trailer[0] = byte(sum)
	trailer[1] = byte(sum >> 8)
	trailer[2] = byte(sum >> 16)
	trailer[3] = byte(sum >> 24)

	buf := append(append([]byte{}, payload...), trailer[:]...)
	r := bytes.NewReader(buf)
	fr := NewFrameReader(r)
	fr.AccumulateByte(EscapeByte)
	fr.AccumulateByte(0x01)
	fr.AccumulateByte(0x01)
	fr.AccumulateByte(0x02)

	got, err := fr.ReadPacket()
	if err != nil {
		t.Fatalf("ReadPacket: %v", err)
	}
	if !bytes.Equal(got, []byte("abcd")) {
		t.Errorf("payload = %q, want %q", got, "abcd")
	}
}

func TestReadPacketRejectsBadChecksum(t *testing.T) {
	payload := []byte{0x02, 0x00, 0x00, 0x00, 'x', 'y', 0, 0, 0, 0}
	r := bytes.NewReader(payload)
	fr := NewFrameReader(r)
	fr.AccumulateByte(EscapeByte)

	_, err := fr.ReadPacket()
	if err != ErrChecksumMismatch {
		t.Errorf("err = %v, want ErrChecksumMismatch", err)
	}
}

func TestFrameReaderSumScopesToOneCommand(t *testing.T) {
	r := bytes.NewReader([]byte{0xAA, 0xBB})
	fr := NewFrameReader(r)
	fr.AccumulateByte(EscapeByte)
	if _, err := fr.ReadByte(); err != nil {
		t.Fatalf("ReadByte: %v", err)
	}
	if _, err := fr.ReadByte(); err != nil {
		t.Fatalf("ReadByte: %v", err)
	}
	want := uint32(EscapeByte) + 0xAA + 0xBB
	if fr.Sum() != want {
		t.Errorf("Sum() = %#x, want %#x", fr.Sum(), want)
	}

	// A fresh command on a fresh reader must not carry over the prior sum.
	fr2 := NewFrameReader(bytes.NewReader(nil))
	fr2.AccumulateByte(EscapeByte)
	if fr2.Sum() != uint32(EscapeByte) {
		t.Errorf("fresh FrameReader Sum() = %#x, want %#x", fr2.Sum(), EscapeByte)
	}
}

func TestWritePacketChecksumsPayloadOnly(t *testing.T) {
	var buf bytes.Buffer
	payload := []byte{1, 2, 3, 4}
	if err := WritePacket(&buf, RespOpenOK, payload); err != nil {
		t.Fatalf("WritePacket: %v", err)
	}

	out := buf.Bytes()
	if len(out) != 4+4+len(payload)+4 {
		t.Fatalf("unexpected frame length %d", len(out))
	}
	cmd := uint32(out[0]) | uint32(out[1])<<8 | uint32(out[2])<<16 | uint32(out[3])<<24
	if cmd != RespOpenOK {
		t.Errorf("command = %#08x, want %#08x", cmd, RespOpenOK)
	}
	length := uint32(out[4]) | uint32(out[5])<<8 | uint32(out[6])<<16 | uint32(out[7])<<24
	if length != uint32(len(payload)) {
		t.Errorf("length = %d, want %d", length, len(payload))
	}
	trailer := out[len(out)-4:]
	sum := uint32(trailer[0]) | uint32(trailer[1])<<8 | uint32(trailer[2])<<16 | uint32(trailer[3])<<24
	if sum != 1+2+3+4 {
		t.Errorf("checksum = %d, want %d", sum, 1+2+3+4)
	}
}

func TestWordSum(t *testing.T) {
	got := WordSum([]uint32{1, 2, 0xFFFF_FFFF})
	want := uint32(2) // 1 + 2 + 0xFFFF_FFFF, wrapped modulo 2^32
	if got != want {
		t.Errorf("WordSum = %#x, want %#x", got, want)
	}
}
