package logger

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestSetupWritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "gocube.log")

	cleanup, err := Setup(Config{Path: path, Debug: true})
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if err := IsReady(); err != nil {
		t.Fatalf("IsReady: %v", err)
	}
	if Path() != path {
		t.Errorf("Path() = %q, want %q", Path(), path)
	}

	L().Debug("move.applied", "move", "U")
	if err := cleanup(); err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	if IsReady() == nil {
		t.Error("IsReady should fail after cleanup")
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	var msgs []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var rec map[string]any
		if err := json.Unmarshal(sc.Bytes(), &rec); err != nil {
			t.Fatalf("line %q is not JSON: %v", sc.Text(), err)
		}
		msgs = append(msgs, rec["msg"].(string))
	}
	if len(msgs) != 2 || msgs[0] != "logger.initialized" || msgs[1] != "move.applied" {
		t.Errorf("logged messages = %v", msgs)
	}
}

func TestLoggerDiscardsBeforeSetup(t *testing.T) {
	if L() == nil {
		t.Fatal("L() returned nil")
	}
	L().Info("ignored")
}
