package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gopenai "github.com/sashabaranov/go-openai"

	langpkg "transcribe/internal/language"
	"transcribe/internal/services"
)

// DefaultModel is the hosted transcription model.
const DefaultModel = gopenai.Whisper1

// Config captures connection settings for the OpenAI engine.
type Config struct {
	// APIKey authenticates against the API. Falls back to OPENAI_API_KEY.
	APIKey string
	// Model overrides DefaultModel.
	Model string
	// BaseURL overrides the API endpoint (tests point it at a local server).
	BaseURL string
}

// Service transcribes audio through the OpenAI API.
type Service struct {
	cfg    Config
	client *gopenai.Client
}

// NewService creates an OpenAI engine. It fails when no API key is available.
func NewService(cfg Config) (*Service, error) {
	key := strings.TrimSpace(cfg.APIKey)
	if key == "" {
		key = strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	}
	if key == "" {
		return nil, services.Wrap(services.ErrConfiguration, "transcribe", "openai",
			"api key required: set openai.api_key in the config or the OPENAI_API_KEY environment variable", nil)
	}

	clientCfg := gopenai.DefaultConfig(key)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &Service{cfg: cfg, client: gopenai.NewClientWithConfig(clientCfg)}, nil
}

// Name identifies the engine in logs and summaries.
func (s *Service) Name() string {
	return "openai"
}

// Model returns the configured model name for logging.
func (s *Service) Model() string {
	if s.cfg.Model != "" {
		return s.cfg.Model
	}
	return DefaultModel
}

// ValidFormat reports whether the API can produce format. The API has no TSV
// response format.
func ValidFormat(format string) bool {
	switch format {
	case "txt", "json", "srt", "vtt":
		return true
	default:
		return false
	}
}

// Transcribe uploads source and writes the transcript into outputDir,
// returning the produced file path. Naming mirrors the Whisper CLI: the
// source stem plus the format extension.
func (s *Service) Transcribe(ctx context.Context, source, outputDir, language, format string) (string, error) {
	if source == "" {
		return "", fmt.Errorf("transcribe: source path required")
	}
	if outputDir == "" {
		outputDir = filepath.Dir(source)
	}
	if !ValidFormat(format) {
		return "", fmt.Errorf("transcribe: openai engine cannot produce %q output", format)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("transcribe: ensure output dir: %w", err)
	}

	req := gopenai.AudioRequest{
		Model:    s.Model(),
		FilePath: source,
	}
	if lang := langpkg.ToISO2(language); lang != "" {
		req.Language = lang
	}
	switch format {
	case "txt":
		req.Format = gopenai.AudioResponseFormatText
	case "json":
		req.Format = gopenai.AudioResponseFormatVerboseJSON
	case "srt":
		req.Format = gopenai.AudioResponseFormatSRT
	case "vtt":
		req.Format = gopenai.AudioResponseFormatVTT
	}

	resp, err := s.client.CreateTranscription(ctx, req)
	if err != nil {
		return "", fmt.Errorf("openai transcription: %w", err)
	}

	content, err := renderResponse(resp, format)
	if err != nil {
		return "", err
	}

	base := filepath.Base(source)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	produced := filepath.Join(outputDir, stem+"."+format)
	if err := os.WriteFile(produced, content, 0o644); err != nil {
		return "", fmt.Errorf("write transcript: %w", err)
	}
	return produced, nil
}

// jsonSegment matches the Whisper CLI JSON layout so downstream parsing works
// on transcripts from either engine.
type jsonSegment struct {
	ID    int     `json:"id"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

type jsonPayload struct {
	Text     string        `json:"text"`
	Language string        `json:"language,omitempty"`
	Segments []jsonSegment `json:"segments"`
}

func renderResponse(resp gopenai.AudioResponse, format string) ([]byte, error) {
	if format != "json" {
		text := resp.Text
		if !strings.HasSuffix(text, "\n") {
			text += "\n"
		}
		return []byte(text), nil
	}

	payload := jsonPayload{
		Text:     resp.Text,
		Language: resp.Language,
		Segments: make([]jsonSegment, 0, len(resp.Segments)),
	}
	for _, seg := range resp.Segments {
		payload.Segments = append(payload.Segments, jsonSegment{
			ID:    seg.ID,
			Start: seg.Start,
			End:   seg.End,
			Text:  seg.Text,
		})
	}
	content, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode transcript json: %w", err)
	}
	return append(content, '\n'), nil
}
