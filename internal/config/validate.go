package config

import (
	"errors"
	"fmt"
	"strings"
)

var outputFormats = []string{"txt", "json", "srt", "vtt", "tsv"}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateTools(); err != nil {
		return err
	}
	if err := c.validateTranscription(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateTools() error {
	if strings.TrimSpace(c.Tools.FFmpeg) == "" {
		return errors.New("tools.ffmpeg must be set")
	}
	if c.Transcription.Engine == EngineWhisper && strings.TrimSpace(c.Tools.Whisper) == "" {
		return errors.New("tools.whisper must be set when transcription.engine is \"whisper\"")
	}
	return nil
}

func (c *Config) validateTranscription() error {
	switch c.Transcription.Engine {
	case EngineWhisper, EngineOpenAI:
	default:
		return fmt.Errorf("transcription.engine must be %q or %q, got %q", EngineWhisper, EngineOpenAI, c.Transcription.Engine)
	}
	switch c.Transcription.Task {
	case "transcribe", "translate":
	default:
		return fmt.Errorf("transcription.task must be \"transcribe\" or \"translate\", got %q", c.Transcription.Task)
	}
	if !validOutputFormat(c.Transcription.OutputFormat) {
		return fmt.Errorf("transcription.output_format must be one of %s, got %q",
			strings.Join(outputFormats, ", "), c.Transcription.OutputFormat)
	}
	if c.Transcription.Engine == EngineOpenAI && c.Transcription.OutputFormat == "tsv" {
		return errors.New("transcription.output_format \"tsv\" is not available with the openai engine")
	}
	if c.Transcription.SampleRate <= 0 {
		return errors.New("transcription.sample_rate must be positive")
	}
	if c.Transcription.Channels <= 0 {
		return errors.New("transcription.channels must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be \"console\" or \"json\", got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}

func validOutputFormat(format string) bool {
	for _, f := range outputFormats {
		if f == format {
			return true
		}
	}
	return false
}
