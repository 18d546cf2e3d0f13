package logger

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestHandlerFormatsSinkAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, "trace", true)
	log := slog.New(h)

	log.Info("fetch", "pc", "0x00000000")

	line := buf.String()
	if !strings.Contains(line, "trace:") {
		t.Errorf("line missing sink tag: %q", line)
	}
	if !strings.Contains(line, "fetch") {
		t.Errorf("line missing message: %q", line)
	}
	if !strings.Contains(line, "pc=0x00000000") {
		t.Errorf("line missing key=value attr: %q", line)
	}
}

func TestHandlerSuppressesDebugUnlessEnabled(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, "sink", false)
	log := slog.New(h)

	log.Debug("should not appear")
	if buf.Len() != 0 {
		t.Errorf("debug record written while debug disabled: %q", buf.String())
	}

	log.Info("should appear")
	if buf.Len() == 0 {
		t.Error("info record suppressed")
	}
}

func TestHandlerWithAttrsPersistsAcrossRecords(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, "sink", true)
	log := slog.New(h).With("handle", 7)

	log.Info("open")
	if !strings.Contains(buf.String(), "handle=7") {
		t.Errorf("persisted attr missing: %q", buf.String())
	}
}

func TestHandlerWithGroupNestsSinkName(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, "sim", true)
	log := slog.New(h).WithGroup("uart")

	log.Info("rx")
	if !strings.Contains(buf.String(), "sim.uart:") {
		t.Errorf("nested sink tag missing: %q", buf.String())
	}
}

func TestSinkNameStripsExtension(t *testing.T) {
	cases := map[string]string{
		"sim.log":      "sim",
		"sim_uart.log": "sim_uart",
		"noext":        "noext",
	}
	for path, want := range cases {
		if got := sinkName(path); got != want {
			t.Errorf("sinkName(%q) = %q, want %q", path, got, want)
		}
	}
}
