package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mulino/flowstate/internal/config"
)

func TestOpenDiagLogWritesNextToDatabase(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := config.Default()
	cfg.Storage.DBPath = filepath.Join(tmpDir, "data", "flowstate.db")

	log, f := openDiagLog(cfg)
	if log == nil || f == nil {
		t.Fatal("expected a live logger and file")
	}
	defer func() { _ = f.Close() }()

	log.WriteFailed("update", "task-1", os.ErrDeadlineExceeded)

	data, err := os.ReadFile(filepath.Join(tmpDir, "data", diagLogName))
	if err != nil {
		t.Fatalf("reading diag log: %v", err)
	}
	if !strings.Contains(string(data), `"event":"WRITE_FAILED"`) {
		t.Errorf("diag log = %q, want WRITE_FAILED entry", data)
	}
	if !strings.Contains(string(data), `"task_id":"task-1"`) {
		t.Errorf("diag log = %q, want task id", data)
	}
}

func TestOpenDiagLogRemoteFallsBackToTemp(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.DBPath = ""
	cfg.Remote.BaseURL = "http://localhost:8000"

	log, f := openDiagLog(cfg)
	if log == nil || f == nil {
		t.Fatal("expected a live logger and file")
	}
	defer func() { _ = f.Close() }()

	if dir := filepath.Dir(f.Name()); dir != filepath.Clean(os.TempDir()) {
		t.Errorf("diag log dir = %q, want temp dir", dir)
	}
}
