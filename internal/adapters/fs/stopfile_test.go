package fs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/notyesbut/NitroGen/internal/adapters/log"
)

func TestStopFileNotTriggeredInitially(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stop")
	s, err := NewStopFile(path, log.NewNoopLogger())
	if err != nil {
		t.Fatalf("NewStopFile: %v", err)
	}
	defer s.Close()

	if s.Triggered() {
		t.Fatal("Triggered before stop file exists")
	}
}

func TestStopFilePreexisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stop")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("write stop file: %v", err)
	}

	s, err := NewStopFile(path, log.NewNoopLogger())
	if err != nil {
		t.Fatalf("NewStopFile: %v", err)
	}
	defer s.Close()

	if !s.Triggered() {
		t.Fatal("preexisting stop file not detected")
	}
}

func TestStopFileCreatedLater(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stop")
	s, err := NewStopFile(path, log.NewNoopLogger())
	if err != nil {
		t.Fatalf("NewStopFile: %v", err)
	}
	defer s.Close()

	if s.Triggered() {
		t.Fatal("Triggered before stop file exists")
	}
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("write stop file: %v", err)
	}

	// The stat fallback makes detection immediate even if the watcher
	// event has not arrived yet.
	deadline := time.Now().Add(2 * time.Second)
	for !s.Triggered() {
		if time.Now().After(deadline) {
			t.Fatal("stop file never detected")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestStopFileLatches(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stop")
	s, err := NewStopFile(path, log.NewNoopLogger())
	if err != nil {
		t.Fatalf("NewStopFile: %v", err)
	}
	defer s.Close()

	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("write stop file: %v", err)
	}
	if !s.Triggered() {
		t.Fatal("stop file not detected")
	}

	// Removing the file after detection does not untrigger the signal.
	if err := os.Remove(path); err != nil {
		t.Fatalf("remove stop file: %v", err)
	}
	if !s.Triggered() {
		t.Fatal("signal must latch once triggered")
	}
}
