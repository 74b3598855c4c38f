package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"transcribe/internal/services"
	"transcribe/internal/services/ffmpeg"
)

// fakeNormalizer writes an empty WAV at dest, or fails.
type fakeNormalizer struct {
	calls int
	err   error
	opts  ffmpeg.Options
}

func (f *fakeNormalizer) Normalize(_ context.Context, source, dest string, opts ffmpeg.Options) error {
	f.calls++
	f.opts = opts
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(dest, []byte("RIFF"), 0o644)
}

// fakeEngine writes a transcript named after the source stem, the way the
// whisper CLI does.
type fakeEngine struct {
	calls   int
	err     error
	content string
}

func (f *fakeEngine) Name() string { return "fake" }

func (f *fakeEngine) Transcribe(_ context.Context, source, outputDir, language, format string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	base := filepath.Base(source)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	produced := filepath.Join(outputDir, stem+"."+format)
	content := f.content
	if content == "" {
		content = "transcript\n"
	}
	return produced, os.WriteFile(produced, []byte(content), 0o644)
}

func writeInput(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("media"), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	return path
}

func TestRunPlacesSingleArtifactWithDatePrefix(t *testing.T) {
	input := writeInput(t, "recording.mp4")
	outDir := t.TempDir()
	p := New(&fakeNormalizer{}, &fakeEngine{}, nil)

	result, err := p.Run(context.Background(), Request{
		InputPath:    input,
		OutputDir:    outDir,
		OutputFormat: "txt",
		DatePrefix:   "2024-01-01",
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := filepath.Join(outDir, "2024-01-01-recording.txt")
	if result.TranscriptPath != want {
		t.Fatalf("transcript = %q, want %q", result.TranscriptPath, want)
	}
	entries, err := os.ReadDir(outDir)
	if err != nil {
		t.Fatalf("read output dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("output dir has %d entries, want exactly 1", len(entries))
	}
	if entries[0].Name() != "2024-01-01-recording.txt" {
		t.Fatalf("artifact name = %q", entries[0].Name())
	}
}

func TestRunWithoutDatePrefixUsesStem(t *testing.T) {
	input := writeInput(t, "talk.mkv")
	outDir := t.TempDir()
	p := New(&fakeNormalizer{}, &fakeEngine{}, nil)

	result, err := p.Run(context.Background(), Request{
		InputPath:    input,
		OutputDir:    outDir,
		OutputFormat: "srt",
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.TranscriptPath != filepath.Join(outDir, "talk.srt") {
		t.Fatalf("transcript = %q", result.TranscriptPath)
	}
}

func TestRunDefaultsOutputDirToInputDir(t *testing.T) {
	input := writeInput(t, "memo.wav")
	p := New(&fakeNormalizer{}, &fakeEngine{}, nil)

	result, err := p.Run(context.Background(), Request{InputPath: input, OutputFormat: "txt"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if filepath.Dir(result.TranscriptPath) != filepath.Dir(input) {
		t.Fatalf("transcript placed in %q, want input dir %q", filepath.Dir(result.TranscriptPath), filepath.Dir(input))
	}
}

func TestRunCleansIntermediateByDefault(t *testing.T) {
	input := writeInput(t, "a.mp4")
	outDir := t.TempDir()
	p := New(&fakeNormalizer{}, &fakeEngine{}, nil)

	result, err := p.Run(context.Background(), Request{InputPath: input, OutputDir: outDir, OutputFormat: "txt"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.IntermediatePath != "" {
		t.Fatalf("intermediate path should be empty, got %q", result.IntermediatePath)
	}
	if _, err := os.Stat(filepath.Join(outDir, "a_normalized.wav")); !os.IsNotExist(err) {
		t.Fatal("no intermediate should remain in output dir")
	}
}

func TestRunKeepsIntermediateWhenRequested(t *testing.T) {
	input := writeInput(t, "a.mp4")
	outDir := t.TempDir()
	p := New(&fakeNormalizer{}, &fakeEngine{}, nil)

	result, err := p.Run(context.Background(), Request{
		InputPath:        input,
		OutputDir:        outDir,
		OutputFormat:     "txt",
		KeepIntermediate: true,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := filepath.Join(outDir, "a_normalized.wav")
	if result.IntermediatePath != want {
		t.Fatalf("intermediate = %q, want %q", result.IntermediatePath, want)
	}
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("intermediate should exist: %v", err)
	}
}

func TestRunNormalizationFailureSkipsTranscription(t *testing.T) {
	input := writeInput(t, "a.mp4")
	outDir := t.TempDir()
	cmdErr := &services.CommandError{Command: "ffmpeg", ExitCode: 1, Stderr: "invalid data"}
	engine := &fakeEngine{}
	p := New(&fakeNormalizer{err: cmdErr}, engine, nil)

	_, err := p.Run(context.Background(), Request{InputPath: input, OutputDir: outDir, OutputFormat: "txt"})
	if !errors.Is(err, services.ErrNormalization) {
		t.Fatalf("expected normalization error, got %v", err)
	}
	if engine.calls != 0 {
		t.Fatal("transcription must not run after normalization failure")
	}
	if services.Stderr(err) != "invalid data" {
		t.Fatalf("stderr = %q", services.Stderr(err))
	}
	entries, _ := os.ReadDir(outDir)
	if len(entries) != 0 {
		t.Fatalf("no artifacts expected, found %d", len(entries))
	}
}

func TestRunTranscriptionFailureStillCleansUp(t *testing.T) {
	input := writeInput(t, "a.mp4")
	outDir := t.TempDir()
	normalizer := &fakeNormalizer{}
	cmdErr := &services.CommandError{Command: "whisper", ExitCode: 2, Stderr: "model missing"}
	p := New(normalizer, &fakeEngine{err: cmdErr}, nil)

	_, err := p.Run(context.Background(), Request{InputPath: input, OutputDir: outDir, OutputFormat: "txt"})
	if !errors.Is(err, services.ErrTranscription) {
		t.Fatalf("expected transcription error, got %v", err)
	}
	entries, readErr := os.ReadDir(outDir)
	if readErr != nil {
		t.Fatalf("read output dir: %v", readErr)
	}
	if len(entries) != 0 {
		t.Fatalf("no transcript expected, found %d entries", len(entries))
	}
}

func TestRunValidatesInput(t *testing.T) {
	p := New(&fakeNormalizer{}, &fakeEngine{}, nil)

	_, err := p.Run(context.Background(), Request{InputPath: "/nope/missing.mp4", OutputFormat: "txt"})
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	dir := t.TempDir()
	_, err = p.Run(context.Background(), Request{InputPath: dir, OutputFormat: "txt"})
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error for directory input, got %v", err)
	}
}

func TestRunMissingProducedFileIsPlacementError(t *testing.T) {
	input := writeInput(t, "a.mp4")
	outDir := t.TempDir()
	// Engine claims success but produces nothing.
	p := New(&fakeNormalizer{}, &claimingEngine{}, nil)

	_, err := p.Run(context.Background(), Request{InputPath: input, OutputDir: outDir, OutputFormat: "txt"})
	if !errors.Is(err, services.ErrPlacement) {
		t.Fatalf("expected placement error, got %v", err)
	}
}

type claimingEngine struct{}

func (claimingEngine) Name() string { return "claiming" }

func (claimingEngine) Transcribe(_ context.Context, source, outputDir, _, format string) (string, error) {
	base := filepath.Base(source)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outputDir, stem+"."+format), nil
}

func TestRunIsIdempotent(t *testing.T) {
	input := writeInput(t, "recording.mp4")
	outDir := t.TempDir()
	req := Request{InputPath: input, OutputDir: outDir, OutputFormat: "txt", DatePrefix: "2024-01-01"}

	first := New(&fakeNormalizer{}, &fakeEngine{content: "first\n"}, nil)
	if _, err := first.Run(context.Background(), req); err != nil {
		t.Fatalf("first run: %v", err)
	}
	second := New(&fakeNormalizer{}, &fakeEngine{content: "second\n"}, nil)
	result, err := second.Run(context.Background(), req)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	entries, _ := os.ReadDir(outDir)
	if len(entries) != 1 {
		t.Fatalf("output dir has %d entries after re-run, want 1", len(entries))
	}
	content, err := os.ReadFile(result.TranscriptPath)
	if err != nil {
		t.Fatalf("read transcript: %v", err)
	}
	if string(content) != "second\n" {
		t.Fatalf("re-run should overwrite, got %q", content)
	}
}

func TestRunForwardsNormalizationOptions(t *testing.T) {
	input := writeInput(t, "a.mp4")
	normalizer := &fakeNormalizer{}
	p := New(normalizer, &fakeEngine{}, nil)

	_, err := p.Run(context.Background(), Request{
		InputPath:    input,
		OutputDir:    t.TempDir(),
		OutputFormat: "txt",
		SampleRate:   44100,
		Channels:     2,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if normalizer.opts.SampleRate != 44100 || normalizer.opts.Channels != 2 {
		t.Fatalf("options not forwarded: %+v", normalizer.opts)
	}
}
