package deps

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"transcribe/internal/config"
	"transcribe/internal/services"
)

func writeStub(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stub binaries require a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "present")
	if err := os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	return path
}

func TestCheckBinaries(t *testing.T) {
	present := writeStub(t)
	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
		{Name: "Unset", Command: ""},
	}

	results := CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}
	if !results[0].Available {
		t.Fatalf("expected %s to be available: %s", results[0].Name, results[0].Detail)
	}
	if results[1].Available {
		t.Fatal("expected missing binary to be unavailable")
	}
	if results[2].Detail != "command not configured" {
		t.Fatalf("unexpected detail %q", results[2].Detail)
	}
}

func TestVerify(t *testing.T) {
	present := writeStub(t)

	if err := Verify([]Requirement{{Name: "Present", Command: present}}); err != nil {
		t.Fatalf("Verify with available binary: %v", err)
	}
	if err := Verify([]Requirement{{Name: "Opt", Command: "nope", Optional: true}}); err != nil {
		t.Fatalf("Verify should ignore optional binaries: %v", err)
	}

	err := Verify([]Requirement{{Name: "Whisper", Command: "clearly-not-present-binary"}})
	if err == nil {
		t.Fatal("expected error for missing required binary")
	}
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestForRequiresWhisperOnlyForCLIEngine(t *testing.T) {
	cfg := config.Default()
	cfg.Transcription.Engine = config.EngineWhisper
	reqs := For(&cfg)
	if len(reqs) != 2 {
		t.Fatalf("expected 2 requirements, got %d", len(reqs))
	}
	if reqs[1].Optional {
		t.Fatal("whisper should be required for the whisper engine")
	}

	cfg.Transcription.Engine = config.EngineOpenAI
	reqs = For(&cfg)
	if !reqs[1].Optional {
		t.Fatal("whisper should be optional for the openai engine")
	}
}
