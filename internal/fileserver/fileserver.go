/*
 * F32SIM - OPEN/CLOSE/READ/WRITE file service exchange.
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

// Package fileserver implements the host side of the OPEN file-service
// exchange of spec.md §4.7. CLOSE/READ/WRITE are recognized command
// words the wire protocol reserves for a fuller file service; this
// repository services OPEN only and logs the rest, matching the
// "reserved" marking in spec.md's command table.
package fileserver

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"syscall"

	"github.com/rcornwell/f32sim/internal/wire"
)

// Open modes, per spec.md §4.7.
const (
	ModeReadBinary = iota
	ModeWriteBinary
	ModeAppendBinary
)

var errBadMode = errors.New("fileserver: unknown open mode")

// Server holds the opaque handle table for files opened on behalf of
// the device.
type Server struct {
	files map[uint32]*os.File
	next  uint32
}

// New builds an empty Server.
func New() *Server {
	return &Server{files: make(map[uint32]*os.File)}
}

// HandleOpen parses an OPEN request payload (a 32-bit mode followed by
// a NUL-terminated filename), opens the file, and returns the wire
// response packet to send back: (RespOpenOK, handle) on success or
// (RespOpenFail, errno) on failure.
func (s *Server) HandleOpen(payload []byte) (command uint32, respPayload []byte) {
	handle, err := s.open(payload)
	if err != nil {
		return wire.RespOpenFail, errnoPayload(err)
	}
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], handle)
	return wire.RespOpenOK, buf[:]
}

func (s *Server) open(payload []byte) (uint32, error) {
	if len(payload) < 5 {
		return 0, errBadMode
	}
	mode := binary.LittleEndian.Uint32(payload[0:4])
	nameEnd := bytes.IndexByte(payload[4:], 0)
	if nameEnd < 0 {
		nameEnd = len(payload) - 4
	}
	name := string(payload[4 : 4+nameEnd])

	var flags int
	switch mode {
	case ModeReadBinary:
		flags = os.O_RDONLY
	case ModeWriteBinary:
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	case ModeAppendBinary:
		flags = os.O_WRONLY | os.O_CREATE | os.O_APPEND
	default:
		return 0, errBadMode
	}

	f, err := os.OpenFile(name, flags, 0o644)
	if err != nil {
		return 0, err
	}

	s.next++
	handle := s.next
	s.files[handle] = f
	return handle, nil
}

// Close releases every file the server opened. Safe to call even if
// some handles were never closed by the device (CLOSE is reserved).
func (s *Server) Close() {
	for h, f := range s.files {
		_ = f.Close()
		delete(s.files, h)
	}
}

func errnoPayload(err error) []byte {
	code := uint32(1)
	var errno syscall.Errno
	if errors.As(err, &errno) {
		code = uint32(errno)
	}
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], code)
	return buf[:]
}
