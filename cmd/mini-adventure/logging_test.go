package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetupLoggingDiscardsWithoutDebug(t *testing.T) {
	t.Chdir(t.TempDir())
	defer log.SetOutput(os.Stderr)

	if f := setupLogging(false); f != nil {
		f.Close()
		t.Fatal("expected no log file without -debug")
	}
	if log.Writer() != io.Discard {
		t.Errorf("log output = %v, want io.Discard", log.Writer())
	}
	if _, err := os.Stat(logDir); !os.IsNotExist(err) {
		t.Errorf("logs dir should not exist, stat err = %v", err)
	}
}

func TestSetupLoggingWritesFile(t *testing.T) {
	t.Chdir(t.TempDir())
	defer log.SetOutput(os.Stderr)

	f := setupLogging(true)
	if f == nil {
		t.Fatal("expected a log file with -debug")
	}
	defer f.Close()

	if w := log.Writer(); w == os.Stdout || w == os.Stderr {
		t.Error("log output must not be stdout or stderr while the terminal is active")
	}

	log.Printf("encounter: test over")
	data, err := os.ReadFile(filepath.Join(logDir, logFileName))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	for _, want := range []string{"mini-adventure started", "encounter: test over"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("log missing %q", want)
		}
	}
}

func TestSetupLoggingRotatesLargeFile(t *testing.T) {
	t.Chdir(t.TempDir())
	defer log.SetOutput(os.Stderr)

	if err := os.MkdirAll(logDir, 0755); err != nil {
		t.Fatal(err)
	}
	logPath := filepath.Join(logDir, logFileName)
	if err := os.WriteFile(logPath, make([]byte, maxLogSize+1), 0644); err != nil {
		t.Fatal(err)
	}

	f := setupLogging(true)
	if f == nil {
		t.Fatal("expected a log file")
	}
	defer f.Close()

	entries, err := os.ReadDir(logDir)
	if err != nil {
		t.Fatal(err)
	}
	rotated := 0
	for _, e := range entries {
		if e.Name() != logFileName && strings.HasPrefix(e.Name(), "mini-adventure-") {
			rotated++
		}
	}
	if rotated != 1 {
		t.Errorf("found %d rotated files, want 1", rotated)
	}

	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() > maxLogSize {
		t.Errorf("fresh log is %d bytes, want a new file", info.Size())
	}
}
