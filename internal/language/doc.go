// Package language canonicalizes user-supplied language hints to the
// ISO 639-1 codes the transcription engines accept.
package language
