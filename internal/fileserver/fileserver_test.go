package fileserver

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/rcornwell/f32sim/internal/wire"
)

func openPayload(mode uint32, name string) []byte {
	var buf bytes.Buffer
	var m [4]byte
	binary.LittleEndian.PutUint32(m[:], mode)
	buf.Write(m[:])
	buf.WriteString(name)
	buf.WriteByte(0)
	return buf.Bytes()
}

func TestHandleOpenWriteThenRead(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.bin")

	s := New()
	defer s.Close()

	cmd, resp := s.HandleOpen(openPayload(ModeWriteBinary, path))
	if cmd != wire.RespOpenOK {
		t.Fatalf("write-open command = %#08x, want RespOpenOK", cmd)
	}
	if len(resp) != 4 {
		t.Fatalf("response payload length = %d, want 4", len(resp))
	}
	handle := binary.LittleEndian.Uint32(resp)
	if handle == 0 {
		t.Error("handle should be non-zero")
	}

	if _, err := os.Stat(path); err != nil {
		t.Errorf("file was not created: %v", err)
	}
}

func TestHandleOpenReadMissingFileFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "does-not-exist.bin")

	s := New()
	defer s.Close()

	cmd, resp := s.HandleOpen(openPayload(ModeReadBinary, path))
	if cmd != wire.RespOpenFail {
		t.Fatalf("command = %#08x, want RespOpenFail", cmd)
	}
	if len(resp) != 4 {
		t.Fatalf("error payload length = %d, want 4", len(resp))
	}
	if binary.LittleEndian.Uint32(resp) == 0 {
		t.Error("errno payload should be non-zero")
	}
}

func TestHandleOpenUnknownModeFails(t *testing.T) {
	s := New()
	defer s.Close()

	cmd, _ := s.HandleOpen(openPayload(99, "whatever"))
	if cmd != wire.RespOpenFail {
		t.Errorf("command = %#08x, want RespOpenFail", cmd)
	}
}

func TestHandleOpenTruncatedPayloadFails(t *testing.T) {
	s := New()
	defer s.Close()

	cmd, _ := s.HandleOpen([]byte{1, 2, 3})
	if cmd != wire.RespOpenFail {
		t.Errorf("command = %#08x, want RespOpenFail", cmd)
	}
}

func TestHandlesAreDistinctAndIncrement(t *testing.T) {
	dir := t.TempDir()
	s := New()
	defer s.Close()

	_, r1 := s.HandleOpen(openPayload(ModeWriteBinary, filepath.Join(dir, "a.bin")))
	_, r2 := s.HandleOpen(openPayload(ModeWriteBinary, filepath.Join(dir, "b.bin")))

	h1 := binary.LittleEndian.Uint32(r1)
	h2 := binary.LittleEndian.Uint32(r2)
	if h1 == h2 {
		t.Errorf("handles should differ: %d == %d", h1, h2)
	}
}

func TestCloseReleasesAllFiles(t *testing.T) {
	dir := t.TempDir()
	s := New()

	s.HandleOpen(openPayload(ModeWriteBinary, filepath.Join(dir, "c.bin")))
	s.Close()

	if len(s.files) != 0 {
		t.Errorf("files map should be empty after Close, has %d entries", len(s.files))
	}
}
