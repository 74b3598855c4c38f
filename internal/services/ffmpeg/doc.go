// Package ffmpeg normalizes source media into the canonical intermediate
// form the transcription engines consume: a PCM WAV at a configurable
// channel count and sample rate.
package ffmpeg
