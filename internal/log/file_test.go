package log

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/natefinch/lumberjack.v2"
)

func TestNewFileWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "mcp.log")

	w, err := NewFileWriter(path)
	if err != nil {
		t.Fatalf("NewFileWriter() = %v", err)
	}
	l := New(w, true, false)
	l.Debug("tool call", "tool", "merge_to_main")
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if got, want := string(data), "tool call tool=merge_to_main\n"; got != want {
		t.Errorf("log file = %q, want %q", got, want)
	}
}

func TestNewFileWriter_EnvOverrides(t *testing.T) {
	t.Setenv("MERGETO_LOG_MAX_SIZE", "5")
	t.Setenv("MERGETO_LOG_MAX_BACKUPS", "0")
	t.Setenv("MERGETO_LOG_MAX_AGE", "not-a-number")

	w, err := NewFileWriter(filepath.Join(t.TempDir(), "mcp.log"))
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	lj, ok := w.(*lumberjack.Logger)
	if !ok {
		t.Fatalf("writer is %T, want *lumberjack.Logger", w)
	}
	if lj.MaxSize != 5 || lj.MaxBackups != 0 || lj.MaxAge != 30 {
		t.Errorf("limits = %d/%d/%d, want 5/0/30", lj.MaxSize, lj.MaxBackups, lj.MaxAge)
	}
}
