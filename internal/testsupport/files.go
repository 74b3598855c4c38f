package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// StubScripts are behaving stand-ins for the external tools: the ffmpeg stub
// creates its last argument (the normalized WAV), the whisper stub writes a
// transcript named after its input stem into --output_dir.
var StubScripts = map[string]string{
	"ffmpeg": `#!/bin/sh
for last; do :; done
: > "$last"
`,
	"whisper": `#!/bin/sh
input="$1"
shift
out_dir="."
fmt="txt"
while [ $# -gt 0 ]; do
  case "$1" in
    --output_dir) out_dir="$2"; shift 2 ;;
    --output_format) fmt="$2"; shift 2 ;;
    *) shift ;;
  esac
done
base=$(basename "$input")
stem="${base%.*}"
echo "stub transcript" > "$out_dir/$stem.$fmt"
`,
}

// WriteExecutable writes script to path with execute permissions.
func WriteExecutable(t testing.TB, path, script string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write executable %s: %v", path, err)
	}
}

// WriteMedia creates a small placeholder media file at path.
func WriteMedia(t testing.TB, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte("media"), 0o644); err != nil {
		t.Fatalf("write media %s: %v", path, err)
	}
}
