package logger

import (
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	var sb strings.Builder
	log := NewConsoleLogger(&sb, "warn")

	log.Debugf("hidden")
	log.Infof("also hidden")
	log.Warnf("shown")
	log.Errorf("also shown")

	out := sb.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("output contains filtered messages: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "also shown") {
		t.Errorf("output missing expected messages: %q", out)
	}
}

func TestDefaultLevelIsInfo(t *testing.T) {
	var sb strings.Builder
	log := NewConsoleLogger(&sb, "bogus")

	log.Debugf("hidden")
	log.Infof("shown")

	if strings.Contains(sb.String(), "hidden") {
		t.Error("debug message leaked through default info level")
	}
	if !strings.Contains(sb.String(), "shown") {
		t.Error("info message missing at default level")
	}
}

func TestMessageFormat(t *testing.T) {
	var sb strings.Builder
	log := NewConsoleLogger(&sb, "info")

	log.Infof("sample %d/%d", 3, 30)

	out := sb.String()
	if !strings.Contains(out, "[INFO] sample 3/30") {
		t.Errorf("unexpected format: %q", out)
	}
	if !strings.HasPrefix(out, "[") {
		t.Errorf("missing timestamp prefix: %q", out)
	}
}

func TestNilWriterIsSafe(t *testing.T) {
	log := NewConsoleLogger(nil, "info")
	log.Infof("discarded") // must not panic
}
