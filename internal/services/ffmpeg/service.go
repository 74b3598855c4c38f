package ffmpeg

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"transcribe/internal/services"
)

// Command is the default ffmpeg executable name.
const Command = "ffmpeg"

// Defaults for normalization. Mono 16kHz PCM is what speech models expect.
const (
	DefaultSampleRate = 16000
	DefaultChannels   = 1
)

// Options controls the normalization transcode.
type Options struct {
	// SampleRate in Hz. Zero means DefaultSampleRate.
	SampleRate int
	// Channels is the output channel count. Zero means DefaultChannels.
	Channels int
}

// Service invokes ffmpeg through an injected command runner.
type Service struct {
	binary string
	runner services.CommandRunner
}

// NewService creates an ffmpeg service. An empty binary falls back to the
// Command default; a nil runner falls back to the real ExecRunner.
func NewService(binary string, runner services.CommandRunner) *Service {
	if binary == "" {
		binary = Command
	}
	if runner == nil {
		runner = services.ExecRunner{}
	}
	return &Service{binary: binary, runner: runner}
}

// NormalizedPath returns the canonical intermediate file path for source
// inside dir.
func NormalizedPath(source, dir string) string {
	base := filepath.Base(source)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, stem+"_normalized.wav")
}

// Normalize transcodes source into a PCM WAV at dest. Video, subtitle, and
// data streams are dropped.
func (s *Service) Normalize(ctx context.Context, source, dest string, opts Options) error {
	if source == "" {
		return fmt.Errorf("normalize: source path required")
	}
	if dest == "" {
		return fmt.Errorf("normalize: dest path required")
	}
	args := buildNormalizeArgs(source, dest, opts)
	if _, err := s.runner.Run(ctx, s.binary, args...); err != nil {
		return fmt.Errorf("ffmpeg normalize: %w", err)
	}
	return nil
}

func buildNormalizeArgs(source, dest string, opts Options) []string {
	sampleRate := opts.SampleRate
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	channels := opts.Channels
	if channels <= 0 {
		channels = DefaultChannels
	}
	return []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", source,
		"-vn",
		"-sn",
		"-dn",
		"-ac", strconv.Itoa(channels),
		"-ar", strconv.Itoa(sampleRate),
		"-c:a", "pcm_s16le",
		dest,
	}
}
