package logx

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoggerWritesLevelAndMessage(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf)

	LevelVar.Set(LevelVar.Level())
	logger.Info("compiling", "file", "prog.bas")

	out := buf.String()
	if !strings.Contains(out, "LEVEL") {
		t.Errorf("expected a LEVEL line, got %q", out)
	}
	if !strings.Contains(out, "compiling") {
		t.Errorf("expected the message, got %q", out)
	}
	if !strings.Contains(out, "FILE") {
		t.Errorf("expected the attribute key upper-cased, got %q", out)
	}
}
