package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"transcribe/internal/fileutil"
	"transcribe/internal/logging"
	"transcribe/internal/services"
	"transcribe/internal/services/ffmpeg"
	"transcribe/internal/services/whisper"
)

// Request describes one transcription run. It is immutable for the run's
// duration.
type Request struct {
	InputPath        string
	OutputDir        string
	OutputFormat     string
	Language         string
	DatePrefix       string
	KeepIntermediate bool
	SampleRate       int
	Channels         int
}

// Result reports where a successful run placed its artifacts.
type Result struct {
	// TranscriptPath is the final transcript location.
	TranscriptPath string
	// IntermediatePath is the kept normalized WAV; empty unless the request
	// asked to keep it.
	IntermediatePath string
	// Text holds the transcript text for JSON output, when parseable.
	Text string
}

// Normalizer converts source media into the canonical WAV intermediate.
type Normalizer interface {
	Normalize(ctx context.Context, source, dest string, opts ffmpeg.Options) error
}

// Engine produces a transcript file for a normalized WAV inside outputDir
// and returns the produced path.
type Engine interface {
	Name() string
	Transcribe(ctx context.Context, source, outputDir, language, format string) (string, error)
}

// Pipeline runs requests through normalize, transcribe, place, and cleanup.
type Pipeline struct {
	normalizer Normalizer
	engine     Engine
	logger     *slog.Logger
}

// New builds a pipeline. A nil logger is replaced with a no-op logger.
func New(normalizer Normalizer, engine Engine, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Pipeline{
		normalizer: normalizer,
		engine:     engine,
		logger:     logger.With("component", "pipeline"),
	}
}

// Stage names used in error context.
const (
	stageValidate   = "validate"
	stageNormalize  = "normalize"
	stageTranscribe = "transcribe"
	stagePlace      = "place"
)

// Run executes one transcription run. Every stage failure aborts immediately
// with the stage's sentinel error; nothing is retried.
func (p *Pipeline) Run(ctx context.Context, req Request) (Result, error) {
	var result Result

	input, outputDir, err := p.validate(req)
	if err != nil {
		return result, err
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return result, services.Wrap(services.ErrPlacement, stagePlace, "", "create output directory", err)
	}

	workDir := outputDir
	if !req.KeepIntermediate {
		tempDir, err := os.MkdirTemp("", "transcribe-")
		if err != nil {
			return result, services.Wrap(services.ErrNormalization, stageNormalize, "", "create work directory", err)
		}
		workDir = tempDir
		defer func() {
			if err := os.RemoveAll(tempDir); err != nil {
				p.logger.Warn("cleanup of intermediate artifacts failed", "path", tempDir, "error", err)
			}
		}()
	}

	wavPath := ffmpeg.NormalizedPath(input, workDir)
	p.logger.Info("normalizing media", "input", input, "intermediate", wavPath)
	opts := ffmpeg.Options{SampleRate: req.SampleRate, Channels: req.Channels}
	if err := p.normalizer.Normalize(ctx, input, wavPath, opts); err != nil {
		return result, services.Wrap(services.ErrNormalization, stageNormalize, "ffmpeg", "", err)
	}

	p.logger.Info("transcribing", "engine", p.engine.Name(), "format", req.OutputFormat)
	produced, err := p.engine.Transcribe(ctx, wavPath, outputDir, req.Language, req.OutputFormat)
	if err != nil {
		return result, services.Wrap(services.ErrTranscription, stageTranscribe, p.engine.Name(), "", err)
	}

	target := placementTarget(outputDir, input, req.DatePrefix, req.OutputFormat)
	if _, err := os.Stat(produced); err != nil {
		return result, services.Wrap(services.ErrPlacement, stagePlace, "",
			fmt.Sprintf("expected transcript %s was not produced", produced), err)
	}
	if produced != target {
		if err := fileutil.MoveFile(produced, target); err != nil {
			return result, services.Wrap(services.ErrPlacement, stagePlace, "", "move transcript", err)
		}
	}
	result.TranscriptPath = target
	p.logger.Info("transcript placed", "path", target)

	if req.OutputFormat == "json" {
		if text, err := whisper.TranscriptText(target); err == nil {
			result.Text = text
		}
	}
	if req.KeepIntermediate {
		result.IntermediatePath = wavPath
	}
	return result, nil
}

func (p *Pipeline) validate(req Request) (input, outputDir string, err error) {
	input = strings.TrimSpace(req.InputPath)
	if input == "" {
		return "", "", services.Wrap(services.ErrValidation, stageValidate, "", "input path required", nil)
	}
	input, err = filepath.Abs(input)
	if err != nil {
		return "", "", services.Wrap(services.ErrValidation, stageValidate, "", "resolve input path", err)
	}
	info, err := os.Stat(input)
	if err != nil {
		return "", "", services.Wrap(services.ErrValidation, stageValidate, "", fmt.Sprintf("input file not found: %s", input), err)
	}
	if info.IsDir() {
		return "", "", services.Wrap(services.ErrValidation, stageValidate, "", fmt.Sprintf("%s is a directory", input), nil)
	}
	if req.OutputFormat == "" {
		return "", "", services.Wrap(services.ErrValidation, stageValidate, "", "output format required", nil)
	}

	outputDir = req.OutputDir
	if outputDir == "" {
		outputDir = filepath.Dir(input)
	}
	return input, outputDir, nil
}

// placementTarget derives the final transcript path: the input stem plus the
// format extension, optionally date-prefixed. Existing targets are replaced,
// so re-running with the same flags is idempotent.
func placementTarget(outputDir, input, datePrefix, format string) string {
	base := filepath.Base(input)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	name := stem + "." + format
	if prefix := strings.TrimSpace(datePrefix); prefix != "" {
		name = prefix + "-" + name
	}
	return filepath.Join(outputDir, name)
}
