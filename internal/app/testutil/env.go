package testutil

import (
	"os"
	"testing"
)

// ConfigEnv lists every variable config.Load reads.
var ConfigEnv = []string{
	"V2T_MODEL", "V2T_MODEL_SIZE", "V2T_MODEL_PATH", "V2T_MODELS_DIR", "V2T_DATA_DIR",
	"V2T_FFMPEG", "V2T_FFPROBE", "V2T_LANGUAGE", "V2T_PROMPT", "V2T_THREADS", "V2T_NO_HISTORY",
	"WHISPER_CPP_BINARY", "WHISPER_CPP_MODEL", "OPENAI_API_KEY", "OPENAI_BASE_URL", "GEMINI_API_KEY",
}

// IsolateConfig clears the config variables and runs the test from an empty
// directory, so no .env or v2t.yaml of the developer leaks in. It returns that
// directory. Tests using it must not run in parallel.
func IsolateConfig(t *testing.T) string {
	t.Helper()
	for _, key := range ConfigEnv {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}
