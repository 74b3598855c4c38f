package config

const (
	defaultFFmpegBinary  = "ffmpeg"
	defaultWhisperBinary = "whisper"
	defaultEngine        = EngineWhisper
	defaultModel         = "medium"
	defaultTask          = "transcribe"
	defaultOutputFormat  = "txt"
	defaultSampleRate    = 16000
	defaultChannels      = 1
	defaultOpenAIModel   = "whisper-1"
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Tools: Tools{
			FFmpeg:  defaultFFmpegBinary,
			Whisper: defaultWhisperBinary,
		},
		Transcription: Transcription{
			Engine:       defaultEngine,
			Model:        defaultModel,
			Task:         defaultTask,
			OutputFormat: defaultOutputFormat,
			SampleRate:   defaultSampleRate,
			Channels:     defaultChannels,
		},
		OpenAI: OpenAI{
			Model: defaultOpenAIModel,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
