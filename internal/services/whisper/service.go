package whisper

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	langpkg "transcribe/internal/language"
	"transcribe/internal/services"
)

// Service invokes the Whisper CLI through an injected command runner.
type Service struct {
	cfg    Config
	binary string
	runner services.CommandRunner
}

// NewService creates a Whisper service. An empty binary falls back to the
// Command default; a nil runner falls back to the real ExecRunner.
func NewService(cfg Config, binary string, runner services.CommandRunner) *Service {
	if binary == "" {
		binary = Command
	}
	if runner == nil {
		runner = services.ExecRunner{}
	}
	return &Service{cfg: cfg, binary: binary, runner: runner}
}

// Name identifies the engine in logs and summaries.
func (s *Service) Name() string {
	return "whisper"
}

// Model returns the configured model name for logging.
func (s *Service) Model() string {
	if s.cfg.Model != "" {
		return s.cfg.Model
	}
	return DefaultModel
}

// Transcribe runs the Whisper CLI on source and returns the path of the
// produced transcript file inside outputDir. The source should be the
// normalized WAV intermediate.
func (s *Service) Transcribe(ctx context.Context, source, outputDir, language, format string) (string, error) {
	if source == "" {
		return "", fmt.Errorf("transcribe: source path required")
	}
	if outputDir == "" {
		outputDir = filepath.Dir(source)
	}
	if !ValidFormat(format) {
		return "", fmt.Errorf("transcribe: unsupported output format %q", format)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("transcribe: ensure output dir: %w", err)
	}

	args := s.buildArgs(source, outputDir, language, format)
	if _, err := s.runner.Run(ctx, s.binary, args...); err != nil {
		return "", fmt.Errorf("whisper: %w", err)
	}

	base := filepath.Base(source)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outputDir, stem+"."+format), nil
}

func (s *Service) buildArgs(source, outputDir, language, format string) []string {
	task := s.cfg.Task
	if task == "" {
		task = TaskTranscribe
	}

	args := []string{
		source,
		"--model", s.Model(),
		"--output_dir", outputDir,
		"--output_format", format,
		"--task", task,
	}
	if s.cfg.ModelDir != "" {
		args = append(args, "--model_dir", s.cfg.ModelDir)
	}
	if lang := langpkg.ToISO2(language); lang != "" {
		args = append(args, "--language", lang)
	}
	return args
}

// Segment is one transcribed span from Whisper JSON output.
type Segment struct {
	ID    int     `json:"id"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

type payload struct {
	Text     string    `json:"text"`
	Segments []Segment `json:"segments"`
}

// LoadSegments loads segments from a Whisper JSON transcript.
func LoadSegments(jsonPath string) ([]Segment, error) {
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, err
	}
	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse whisper json: %w", err)
	}
	return p.Segments, nil
}

// TranscriptText loads and concatenates segment text from a Whisper JSON
// transcript, falling back to the top-level text field.
func TranscriptText(jsonPath string) (string, error) {
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return "", err
	}
	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		return "", fmt.Errorf("parse whisper json: %w", err)
	}
	var parts []string
	for _, seg := range p.Segments {
		if text := strings.TrimSpace(seg.Text); text != "" {
			parts = append(parts, text)
		}
	}
	if len(parts) == 0 {
		return strings.TrimSpace(p.Text), nil
	}
	return strings.Join(parts, " "), nil
}
