package whisper

// Config captures runtime settings for the Whisper CLI.
type Config struct {
	// Model is the Whisper model size (e.g. "medium", "large-v3").
	Model string
	// ModelDir optionally caches downloaded models.
	ModelDir string
	// Task selects transcription or translation.
	Task string
}

const (
	// Command is the default Whisper executable name.
	Command = "whisper"
	// DefaultModel matches the Whisper CLI default most users run locally.
	DefaultModel = "medium"

	TaskTranscribe = "transcribe"
	TaskTranslate  = "translate"
)

// Formats lists the output formats the Whisper CLI can produce, in the order
// the CLI documents them.
var Formats = []string{"txt", "json", "srt", "vtt", "tsv"}

// ValidFormat reports whether the Whisper CLI can produce format.
func ValidFormat(format string) bool {
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}

// ValidTask reports whether task is a recognized Whisper task.
func ValidTask(task string) bool {
	return task == TaskTranscribe || task == TaskTranslate
}
