package logging

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestNew_DebugWritesToWriter(t *testing.T) {
	var buf bytes.Buffer
	logger := New(true, &buf)
	logger.Debug("request", zap.Int("status", 200))

	out := buf.String()
	if !strings.Contains(out, "request") || !strings.Contains(out, `"status": 200`) {
		t.Errorf("unexpected log output %q", out)
	}
}

func TestNew_NoDebugIsSilent(t *testing.T) {
	var buf bytes.Buffer
	logger := New(false, &buf)
	logger.Error("boom")

	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}
