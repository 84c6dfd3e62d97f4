package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogger_LevelPrefixes(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, false)

	log.Infof("started")
	log.Warnf("skipping line %d", 3)
	log.Errorf("boom")

	out := buf.String()
	for _, want := range []string{"INFO started", "WARN skipping line 3", "ERROR boom"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestLogger_DebugGatedByVerbose(t *testing.T) {
	var quiet bytes.Buffer
	New(&quiet, false).Debugf("hidden")
	if strings.Contains(quiet.String(), "hidden") {
		t.Error("Expected debug output suppressed without verbose")
	}

	var loud bytes.Buffer
	New(&loud, true).Debugf("shown")
	if !strings.Contains(loud.String(), "DEBUG shown") {
		t.Errorf("Expected debug output with verbose, got %q", loud.String())
	}
}

func TestLogger_WarningCounter(t *testing.T) {
	log := New(&bytes.Buffer{}, false)

	if log.Warnings() != 0 {
		t.Errorf("Expected 0 warnings initially, got %d", log.Warnings())
	}
	log.Warnf("one")
	log.Warnf("two")
	log.Infof("not a warning")
	if log.Warnings() != 2 {
		t.Errorf("Expected 2 warnings, got %d", log.Warnings())
	}
}

func TestOpen_CreatesLogFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	log, closeLog, err := Open(dir, false)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	log.Infof("hello from the run")
	if err := closeLog(); err != nil {
		t.Fatalf("Expected clean close, got %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "pipeline.log"))
	if err != nil {
		t.Fatalf("Expected pipeline.log, got %v", err)
	}
	if !strings.Contains(string(data), "INFO hello from the run") {
		t.Errorf("Expected log line in file, got:\n%s", data)
	}
}
