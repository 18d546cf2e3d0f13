/*
 * F32SIM - Host-side serial companion: boots the device and services
 * file requests over the host framing protocol.
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

package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"

	getopt "github.com/pborman/getopt/v2"
	"golang.org/x/term"

	"github.com/rcornwell/f32sim/internal/bootimage"
	"github.com/rcornwell/f32sim/internal/fileserver"
	"github.com/rcornwell/f32sim/internal/hostio"
	logger "github.com/rcornwell/f32sim/internal/logger"
	"github.com/rcornwell/f32sim/internal/wire"
)

func main() {
	optPort := getopt.StringLong("port", 'p', "", "Serial port device name")
	optBaud := getopt.IntLong("baud", 'b', 2_000_000, "Baud rate")
	optBootFile := getopt.StringLong("boot-file", 0, "asm.hex", "BOOT command source file")
	optDump := getopt.StringLong("dump", 0, "", "Replayable hex dump of every byte written to the wire")
	optVerbose := getopt.BoolLong("verbose", 'v', "Enable debug-level logging")
	optMonitor := getopt.BoolLong("monitor", 'm', "Raw terminal pass-through: forward stdin keystrokes to the device unbuffered")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp || *optPort == "" {
		getopt.Usage()
		os.Exit(0)
	}

	log, err := logger.New("host.log", *optVerbose)
	if err != nil {
		fmt.Fprintln(os.Stderr, "f32host: cannot open log file:", err)
		os.Exit(1)
	}
	slog.SetDefault(log)

	port, err := hostio.Open(*optPort, *optBaud)
	if err != nil {
		logger.Fatal(log, "cannot open serial port", "port", *optPort, "error", err)
	}
	defer port.Close()

	var dump *os.File
	if *optDump != "" {
		dump, err = os.Create(*optDump)
		if err != nil {
			logger.Fatal(log, "cannot create dump file", "file", *optDump, "error", err)
		}
		defer dump.Close()
	}

	h := &host{
		log:      log,
		port:     port,
		dump:     dump,
		bootFile: *optBootFile,
		files:    fileserver.New(),
	}
	defer h.files.Close()

	if *optMonitor {
		restore, err := startMonitor(log, port)
		if err != nil {
			logger.Fatal(log, "cannot enable raw terminal pass-through", "error", err)
		}
		defer restore()
	}

	h.run()
}

type host struct {
	log      *slog.Logger
	port     io.ReadWriteCloser
	dump     *os.File
	bootFile string
	files    *fileserver.Server
}

// run is the normal-mode read loop of spec.md §4.7: pass bytes through
// to stdout until the escape byte is seen, then enter command mode.
func (h *host) run() {
	buf := make([]byte, 1)
	for {
		n, err := h.port.Read(buf)
		if err != nil {
			h.log.Error("serial read error", "error", err)
			return
		}
		if n == 0 {
			continue
		}
		b := buf[0]

		if b == wire.EscapeByte {
			h.commandMode()
			continue
		}
		fmt.Printf("%c", b)
	}
}

func (h *host) commandMode() {
	fr := wire.NewFrameReader(h.port)
	fr.AccumulateByte(wire.EscapeByte)

	cmd, err := fr.ReadCommand()
	if err != nil {
		h.log.Error("command read error", "error", err)
		return
	}

	switch cmd {
	case wire.CmdBoot:
		h.sendBootImage()
	case wire.CmdOpen:
		h.handleOpen(fr)
	case wire.CmdClose, wire.CmdRead, wire.CmdWrite:
		h.log.Info("reserved command received, no action taken", "command", fmt.Sprintf("%#08x", cmd))
	default:
		h.log.Warn("unknown command", "command", fmt.Sprintf("%#08x", cmd))
	}
}

func (h *host) handleOpen(fr *wire.FrameReader) {
	payload, err := fr.ReadPacket()
	if err != nil {
		logger.Fatal(h.log, "framing error servicing OPEN", "error", err)
	}
	respCmd, respPayload := h.files.HandleOpen(payload)

	var frame bytes.Buffer
	if err := wire.WritePacket(&frame, respCmd, respPayload); err != nil {
		h.log.Error("error building OPEN response", "error", err)
		return
	}
	if _, err := h.port.Write(frame.Bytes()); err != nil {
		h.log.Error("error writing OPEN response", "error", err)
		return
	}
	h.dumpBytes(frame.Bytes())
}

func (h *host) sendBootImage() {
	f, err := os.Open(h.bootFile)
	if err != nil {
		h.log.Error("cannot open boot file", "file", h.bootFile, "error", err)
		return
	}
	defer f.Close()

	words, err := bootimage.Load(f)
	if err != nil {
		h.log.Error("cannot decode boot file", "file", h.bootFile, "error", err)
		return
	}

	stream := bootimage.Encode(words)
	if _, err := h.port.Write(stream); err != nil {
		h.log.Error("error sending boot image", "error", err)
		return
	}
	h.dumpBytes(stream)
	h.log.Info("sent boot image", "file", h.bootFile, "words", len(words))
}

func (h *host) dumpByte(b byte) {
	if h.dump == nil {
		return
	}
	fmt.Fprintf(h.dump, "%x\n", b)
}

func (h *host) dumpBytes(bs []byte) {
	for _, b := range bs {
		h.dumpByte(b)
	}
}

// startMonitor puts stdin into raw mode and forwards every keystroke
// straight to the serial port, unbuffered - the run loop still owns
// reading device output back on the same port. Returns a restore
// function the caller must run before exit.
func startMonitor(log *slog.Logger, port io.Writer) (func(), error) {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}

	go func() {
		buf := make([]byte, 1)
		for {
			n, err := os.Stdin.Read(buf)
			if err != nil {
				return
			}
			if n > 0 {
				if _, err := port.Write(buf[:n]); err != nil {
					log.Error("monitor: write to device failed", "error", err)
					return
				}
			}
		}
	}()

	return func() {
		_ = term.Restore(fd, oldState)
	}, nil
}
