// Package services defines shared plumbing for the external tools the
// pipeline shells out to.
//
// Key responsibilities:
//   - Structured error markers plus the Wrap helper so each pipeline stage
//     fails with a classifiable error.
//   - The CommandRunner abstraction that makes subprocess execution an
//     injected capability instead of an ambient dependency on PATH, so tests
//     can substitute a fake process runner.
//   - CommandError, which carries the failing tool's command line, exit code,
//     and captured stderr all the way to the user.
//
// Tool-specific services (ffmpeg, whisper, openai) live in subpackages and
// build on these helpers so failure handling stays uniform across stages.
package services
