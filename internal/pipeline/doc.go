// Package pipeline sequences one transcription run: normalize the source
// media with ffmpeg, transcribe the intermediate WAV with the selected
// engine, place the transcript into the output directory, and clean up.
//
// Control flow is strictly linear. Each stage failure aborts the run with a
// classifiable error carrying the failing tool's output; only cleanup
// failures are downgraded to warnings, since the transcript is already
// safely placed by then.
package pipeline
