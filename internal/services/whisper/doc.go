// Package whisper invokes the Whisper CLI to transcribe normalized audio.
//
// The tool writes its own output files named after the input stem into the
// requested directory; Transcribe derives and returns that produced path so
// the pipeline can place it. JSON transcripts can be parsed back into
// segments for logging and text extraction.
package whisper
