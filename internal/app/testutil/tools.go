package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"testing"
)

// fakeFFmpeg mimics the ffmpeg invocation used by audio.Extractor: the input follows -i,
// the output is the last argument. Every invocation is appended to $0.log.
const fakeFFmpeg = `#!/bin/sh
echo "$@" >> "$0.log"
in=""
prev=""
out=""
for a in "$@"; do
  if [ "$prev" = "-i" ]; then in="$a"; fi
  prev="$a"
  out="$a"
done
if [ ! -r "$in" ]; then
  echo "$in: No such file or directory" >&2
  exit 1
fi
printf 'RIFF-fake-wav' > "$out"
`

// fakeFFprobe prints a fixed duration for "-show_entries" calls and a fixed stream
// description for "-print_format json" calls.
const fakeFFprobe = `#!/bin/sh
for last in "$@"; do :; done
if [ ! -r "$last" ]; then
  echo "$last: No such file or directory" >&2
  exit 1
fi
case "$*" in
  *print_format*)
    printf '{"streams":[{"codec_type":"audio","codec_name":"pcm_s16le","sample_rate":"16000","channels":1,"bits_per_sample":16}],"format":{"duration":"%s"}}' "__DURATION__"
    ;;
  *)
    echo "__DURATION__"
    ;;
esac
`

// fakeWhisperCLI mimics the whisper.cpp CLI: it writes "$TEXT" to <-of>.txt.
const fakeWhisperCLI = `#!/bin/sh
of=""
in=""
prev=""
for a in "$@"; do
  if [ "$prev" = "-of" ]; then of="$a"; fi
  if [ "$prev" = "-f" ]; then in="$a"; fi
  prev="$a"
done
if [ ! -r "$in" ]; then
  echo "error: failed to open '$in'" >&2
  exit 2
fi
printf '  %s\n' "__TEXT__" > "$of.txt"
`

// SkipIfNoShell skips tests that rely on the shell fakes.
func SkipIfNoShell(t testing.TB) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell fakes need /bin/sh")
	}
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("shell fakes need /bin/sh")
	}
}

// FakeFFmpeg writes a fake ffmpeg to a temp dir and returns its path.
func FakeFFmpeg(t testing.TB) string {
	t.Helper()
	return writeScript(t, "ffmpeg", fakeFFmpeg)
}

// FakeFFprobe writes a fake ffprobe reporting duration (e.g. "12.6").
func FakeFFprobe(t testing.TB, duration string) string {
	t.Helper()
	return writeScript(t, "ffprobe", strings.ReplaceAll(fakeFFprobe, "__DURATION__", duration))
}

// FakeWhisperCLI writes a fake whisper.cpp binary that always transcribes to text.
func FakeWhisperCLI(t testing.TB, text string) string {
	t.Helper()
	return writeScript(t, "whisper-cli", strings.ReplaceAll(fakeWhisperCLI, "__TEXT__", text))
}

// FailingTool writes a script that prints msg to stderr and exits with code.
func FailingTool(t testing.TB, name, msg string, code int) string {
	t.Helper()
	body := "#!/bin/sh\necho '" + msg + "' >&2\nexit " + strconv.Itoa(code) + "\n"
	return writeScript(t, name, body)
}

// Invocations returns the argument lines recorded by a fake tool.
func Invocations(t testing.TB, toolPath string) []string {
	t.Helper()
	data, err := os.ReadFile(toolPath + ".log")
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatalf("read invocation log: %v", err)
	}
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func writeScript(t testing.TB, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o755); err != nil {
		t.Fatalf("write fake %s: %v", name, err)
	}
	return path
}
