package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"transcribe/internal/config"
	"transcribe/internal/deps"
	langpkg "transcribe/internal/language"
	"transcribe/internal/pipeline"
	"transcribe/internal/services"
	"transcribe/internal/services/ffmpeg"
	"transcribe/internal/services/openai"
	"transcribe/internal/services/whisper"
)

// requestFlags holds the per-run flags shared by the root and batch commands.
type requestFlags struct {
	outputDir        string
	engine           string
	model            string
	modelDir         string
	language         string
	task             string
	outputFormat     string
	datePrefix       string
	sampleRate       int
	channels         int
	keepIntermediate bool
}

func addRequestFlags(cmd *cobra.Command, flags *requestFlags) {
	f := cmd.Flags()
	f.StringVarP(&flags.outputDir, "output-dir", "o", "", "Directory for transcripts (defaults to the input directory)")
	f.StringVar(&flags.engine, "engine", "", "Transcription engine (whisper, openai)")
	f.StringVar(&flags.model, "model", "", "Model name for the selected engine")
	f.StringVar(&flags.modelDir, "model-dir", "", "Cache directory for downloaded Whisper models")
	f.StringVar(&flags.language, "language", "", "Language hint (e.g. en, eng, english)")
	f.StringVar(&flags.task, "task", "", "Whisper task (transcribe, translate)")
	f.StringVar(&flags.outputFormat, "output-format", "", "Transcript format (txt, json, srt, vtt, tsv)")
	f.StringVar(&flags.datePrefix, "date-prefix", time.Now().Format("2006-01-02"), "Prefix for transcript filenames; pass an empty string to disable")
	f.IntVar(&flags.sampleRate, "sample-rate", 0, "Sample rate for normalization in Hz")
	f.IntVar(&flags.channels, "channels", 0, "Channel count for normalization")
	f.BoolVar(&flags.keepIntermediate, "keep-intermediate", false, "Keep the normalized WAV in the output directory")
}

// effectiveConfig layers changed flags over the loaded configuration and
// re-validates the result.
func (r *requestFlags) effectiveConfig(cmd *cobra.Command, cfg *config.Config) (*config.Config, error) {
	out := *cfg
	changed := cmd.Flags().Changed

	if changed("output-dir") {
		expanded, err := config.ExpandPath(r.outputDir)
		if err != nil {
			return nil, err
		}
		out.Paths.OutputDir = expanded
	}
	if changed("engine") {
		out.Transcription.Engine = strings.ToLower(strings.TrimSpace(r.engine))
	}
	if changed("model") {
		if out.Transcription.Engine == config.EngineOpenAI {
			out.OpenAI.Model = r.model
		} else {
			out.Transcription.Model = r.model
		}
	}
	if changed("model-dir") {
		expanded, err := config.ExpandPath(r.modelDir)
		if err != nil {
			return nil, err
		}
		out.Transcription.ModelDir = expanded
	}
	if changed("language") {
		out.Transcription.Language = r.language
	}
	if changed("task") {
		out.Transcription.Task = strings.ToLower(strings.TrimSpace(r.task))
	}
	if changed("output-format") {
		out.Transcription.OutputFormat = strings.ToLower(strings.TrimSpace(r.outputFormat))
	}
	if changed("sample-rate") {
		out.Transcription.SampleRate = r.sampleRate
	}
	if changed("channels") {
		out.Transcription.Channels = r.channels
	}

	if err := out.Validate(); err != nil {
		return nil, services.Wrap(services.ErrValidation, "validate", "", "", err)
	}
	return &out, nil
}

// request builds a pipeline request for one input from the effective config.
func (r *requestFlags) request(cfg *config.Config, input string) pipeline.Request {
	return pipeline.Request{
		InputPath:        input,
		OutputDir:        cfg.Paths.OutputDir,
		OutputFormat:     cfg.Transcription.OutputFormat,
		Language:         cfg.Transcription.Language,
		DatePrefix:       r.datePrefix,
		KeepIntermediate: r.keepIntermediate,
		SampleRate:       cfg.Transcription.SampleRate,
		Channels:         cfg.Transcription.Channels,
	}
}

// buildPipeline wires the services selected by the effective config.
func buildPipeline(ctx *commandContext, cfg *config.Config) (*pipeline.Pipeline, error) {
	if err := deps.Verify(deps.For(cfg)); err != nil {
		return nil, err
	}

	logger, err := ctx.ensureLogger()
	if err != nil {
		return nil, err
	}

	runner := services.ExecRunner{}
	normalizer := ffmpeg.NewService(cfg.Tools.FFmpeg, runner)

	var engine pipeline.Engine
	switch cfg.Transcription.Engine {
	case config.EngineOpenAI:
		engine, err = openai.NewService(openai.Config{
			APIKey:  cfg.OpenAI.APIKey,
			Model:   cfg.OpenAI.Model,
			BaseURL: cfg.OpenAI.BaseURL,
		})
		if err != nil {
			return nil, err
		}
	default:
		engine = whisper.NewService(whisper.Config{
			Model:    cfg.Transcription.Model,
			ModelDir: cfg.Transcription.ModelDir,
			Task:     cfg.Transcription.Task,
		}, cfg.Tools.Whisper, runner)
	}

	return pipeline.New(normalizer, engine, logger), nil
}

func runTranscription(cmd *cobra.Command, ctx *commandContext, flags *requestFlags, input string) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	effective, err := flags.effectiveConfig(cmd, cfg)
	if err != nil {
		return err
	}

	p, err := buildPipeline(ctx, effective)
	if err != nil {
		return err
	}

	if lang := effective.Transcription.Language; lang != "" {
		if logger, err := ctx.ensureLogger(); err == nil {
			logger.Debug("language hint", "hint", lang, "resolved", langpkg.Describe(lang))
		}
	}

	result, err := p.Run(cmd.Context(), flags.request(effective, input))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Transcription saved to: %s\n", result.TranscriptPath)
	if result.IntermediatePath != "" {
		fmt.Fprintf(out, "Normalized audio kept at: %s\n", result.IntermediatePath)
	}
	return nil
}
