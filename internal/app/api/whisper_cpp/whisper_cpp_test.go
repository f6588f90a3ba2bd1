package whisper_cpp

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"v2t/internal/app/api/provider"
	apperrors "v2t/internal/app/errors"
	"v2t/internal/app/testutil"
)

func setup(t *testing.T, text string) (provider.Settings, string) {
	t.Helper()
	testutil.SkipIfNoShell(t)

	modelsDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(modelsDir, "ggml-tiny.bin"), []byte("ggml"), 0o644))

	settings := provider.Settings{
		ModelSize:  "tiny",
		ModelsDir:  modelsDir,
		BinaryPath: testutil.FakeWhisperCLI(t, text),
		TempDir:    t.TempDir(),
	}.WithDefaults()
	return settings, testutil.SineWAV(t, t.TempDir(), "speech.wav", time.Second)
}

func TestRegistered(t *testing.T) {
	assert.Contains(t, provider.Default().Registered(), provider.FamilyWhisperCpp)
}

func TestCreateWhisperCppProvider(t *testing.T) {
	settings, _ := setup(t, "hello")

	m, err := createWhisperCppProvider(context.Background(), settings, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "ggml-tiny.bin", m.Name())
	assert.NoError(t, m.Close())
}

func TestCreateWhisperCppProvider_Unavailable(t *testing.T) {
	settings, _ := setup(t, "hello")

	t.Run("missing binary", func(t *testing.T) {
		s := settings
		s.BinaryPath = filepath.Join(t.TempDir(), "no-such-whisper")
		_, err := createWhisperCppProvider(context.Background(), s, zap.NewNop())
		assert.True(t, errors.Is(err, apperrors.ErrModelUnavailable))
	})

	t.Run("missing model", func(t *testing.T) {
		s := settings
		s.ModelSize = "medium"
		_, err := createWhisperCppProvider(context.Background(), s, zap.NewNop())
		assert.True(t, errors.Is(err, apperrors.ErrModelUnavailable))
		assert.True(t, errors.Is(err, apperrors.ErrFileNotFound))
	})
}

func TestLocalTranscriber_Transcribe(t *testing.T) {
	settings, wavPath := setup(t, "hello from whisper")
	settings.Prompt = "Transcript:"
	settings.Threads = 2

	m, err := createWhisperCppProvider(context.Background(), settings, zap.NewNop())
	require.NoError(t, err)

	res, err := m.Transcribe(context.Background(), wavPath)
	require.NoError(t, err)
	assert.Equal(t, "hello from whisper", res.Text)

	entries, err := os.ReadDir(settings.TempDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "transcript file is removed after reading")
}

func TestLocalTranscriber_Errors(t *testing.T) {
	settings, _ := setup(t, "unused")
	m, err := createWhisperCppProvider(context.Background(), settings, zap.NewNop())
	require.NoError(t, err)

	_, err = m.Transcribe(context.Background(), filepath.Join(t.TempDir(), "missing.wav"))
	assert.True(t, os.IsNotExist(err))

	failing := NewLocalTranscriber(testutil.FailingTool(t, "whisper-cli", "failed to initialize whisper context", 3), "ggml-tiny.bin", nil)
	wav := testutil.SineWAV(t, t.TempDir(), "a.wav", 100*time.Millisecond)
	_, err = failing.Transcribe(context.Background(), wav)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to initialize whisper context")
	var exitErr *exec.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 3, exitErr.ExitCode())
}

func TestBuildArgs(t *testing.T) {
	lt := &LocalTranscriber{modelPath: "/m/ggml-base.bin", language: "en", prompt: "Hi", threads: 4}
	assert.Equal(t, []string{
		"-m", "/m/ggml-base.bin",
		"-l", "en",
		"-t", "4",
		"--prompt", "Hi",
		"-otxt",
		"-f", "in.wav",
		"-of", "out",
	}, lt.buildArgs("in.wav", "out"))

	lt = &LocalTranscriber{modelPath: "m.bin"}
	assert.Equal(t, []string{"-m", "m.bin", "-l", "auto", "-otxt", "-f", "in.wav", "-of", "out"}, lt.buildArgs("in.wav", "out"))
}
