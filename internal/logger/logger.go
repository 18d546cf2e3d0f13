/*
 * F32SIM - Wrapper for slog
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

// Package logger adapts log/slog into the small set of plain-line sinks
// the simulator and host companion write to.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Handler writes one bracketed "[time] LEVEL sink: message key=value..."
// line per record to a file and, optionally, mirrors it to stderr. sink
// tags which of the simulator's several log files (trace, 7-segment,
// LED, UART, blitter, MMIO, host) a given record came from, since
// cmd/f32sim and cmd/f32host fan a single slog tree out across many
// sink files rather than writing to one log the way the teacher does.
type Handler struct {
	out   io.Writer
	sink  string
	attrs []slog.Attr
	mu    *sync.Mutex
	debug bool
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	if h.debug {
		return true
	}
	return level >= slog.LevelInfo
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &Handler{out: h.out, sink: h.sink, attrs: merged, mu: h.mu, debug: h.debug}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{out: h.out, sink: joinSink(h.sink, name), attrs: h.attrs, mu: h.mu, debug: h.debug}
}

func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var line strings.Builder
	line.WriteByte('[')
	line.WriteString(r.Time.Format("2006-01-02T15:04:05"))
	line.WriteString("] ")
	line.WriteString(r.Level.String())
	if h.sink != "" {
		line.WriteByte(' ')
		line.WriteString(h.sink)
		line.WriteByte(':')
	}
	line.WriteByte(' ')
	line.WriteString(r.Message)

	for _, a := range h.attrs {
		writeAttr(&line, a)
	}
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&line, a)
		return true
	})
	line.WriteByte('\n')
	b := []byte(line.String())

	h.mu.Lock()
	defer h.mu.Unlock()

	var err error
	if h.out != nil {
		_, err = h.out.Write(b)
	}
	if h.debug || r.Level >= slog.LevelWarn {
		_, err = os.Stderr.Write(b)
	}
	return err
}

func writeAttr(line *strings.Builder, a slog.Attr) {
	line.WriteByte(' ')
	line.WriteString(a.Key)
	line.WriteByte('=')
	line.WriteString(a.Value.String())
}

func joinSink(base, name string) string {
	if base == "" {
		return name
	}
	return base + "." + name
}

// SetDebug toggles stderr mirroring of sub-Warn records and enabling of
// Debug-level records.
func (h *Handler) SetDebug(debug bool) {
	h.debug = debug
}

// NewHandler builds a Handler writing to file, tagged with sink.
func NewHandler(file io.Writer, sink string, debug bool) *Handler {
	return &Handler{
		out:   file,
		sink:  sink,
		mu:    &sync.Mutex{},
		debug: debug,
	}
}

// New opens (creating/truncating) path and returns a logger writing to
// it, tagged with path's base name (extension stripped) as the sink.
// An empty path discards output silently - used for sinks the caller
// did not ask to enable.
func New(path string, debug bool) (*slog.Logger, error) {
	if path == "" {
		return slog.New(NewHandler(io.Discard, "", debug)), nil
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return slog.New(NewHandler(file, sinkName(path), debug)), nil
}

func sinkName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Fatal logs msg at Error level to l (or the default slog logger if l
// is nil) and exits the process with status 1. The command entry points
// use it for errors they do not recover from: a file or serial port that
// cannot be opened, or a framing error on the host wire.
func Fatal(l *slog.Logger, msg string, args ...any) {
	if l != nil {
		l.Error(msg, args...)
	} else {
		slog.Error(msg, args...)
	}
	os.Exit(1)
}
